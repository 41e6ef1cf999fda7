package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/suez-scraper/internal/models"
)

// Header lists the exported columns. The icon id is not exported.
var Header = []string{
	"service_name",
	"latitude",
	"longitude",
	"service_type",
	"service_icon",
	"last_updated_at_UTC",
}

// WriteCSV writes records to path as UTF-8 CSV with a header row.
// The data goes to a temporary file in the same directory which then replaces path,
// so a failed write leaves any previous export untouched.
func WriteCSV(path string, records []models.ServiceRecord) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary export file: %w", err)
	}
	tmpName := tmp.Name()

	if err = writeRecords(tmp, records); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}

	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close export file: %w", err)
	}

	if err = os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to set export file mode: %w", err)
	}

	if err = os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace export file %s: %w", path, err)
	}

	return nil
}

func writeRecords(file *os.File, records []models.ServiceRecord) error {
	writer := csv.NewWriter(file)

	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for idx, rec := range records {
		row := []string{
			rec.ServiceName,
			formatFloat(rec.Latitude),
			formatFloat(rec.Longitude),
			rec.ServiceType,
			rec.ServiceIcon,
			rec.LastUpdatedAtUTC,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row %d: %w", idx, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}

	return nil
}

// formatFloat renders the shortest decimal that round-trips, keeping a ".0" suffix on
// integral values so coordinate columns always read as floats.
func formatFloat(value float64) string {
	out := strconv.FormatFloat(value, 'f', -1, 64)
	if !strings.ContainsAny(out, ".NI") {
		out += ".0"
	}

	return out
}

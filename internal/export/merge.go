package export

import (
	"time"

	"github.com/UnknownOlympus/suez-scraper/internal/models"
)

// TimestampLayout is the capture timestamp format, e.g. "07-Mar-2025 04:05:06".
const TimestampLayout = "02-Jan-2006 15:04:05"

// Merge left-joins locations onto types by icon id. Every location yields one row per
// matching type, in the order the types were extracted, or a single row with empty type
// fields when nothing matches. capturedAt is converted to UTC and shared by all rows.
func Merge(
	locations []models.ServiceLocation,
	types []models.ServiceType,
	capturedAt time.Time,
) []models.ServiceRecord {
	stamp := capturedAt.UTC().Format(TimestampLayout)

	byIcon := make(map[string][]models.ServiceType, len(types))
	for _, st := range types {
		byIcon[st.IconID] = append(byIcon[st.IconID], st)
	}

	records := make([]models.ServiceRecord, 0, len(locations))
	for _, loc := range locations {
		matches := byIcon[loc.IconID]
		if len(matches) == 0 {
			records = append(records, newRecord(loc, models.ServiceType{}, stamp))
			continue
		}

		for _, st := range matches {
			records = append(records, newRecord(loc, st, stamp))
		}
	}

	return records
}

func newRecord(loc models.ServiceLocation, st models.ServiceType, stamp string) models.ServiceRecord {
	return models.ServiceRecord{
		ServiceName:      loc.ServiceName,
		Latitude:         loc.Latitude,
		Longitude:        loc.Longitude,
		ServiceType:      st.ServiceType,
		ServiceIcon:      st.ServiceIcon,
		LastUpdatedAtUTC: stamp,
	}
}

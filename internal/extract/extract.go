// Package extract projects the raw location map document into typed records.
// Both extractors are all-or-nothing: the first missing key or mistyped value aborts
// the whole collection.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/UnknownOlympus/suez-scraper/internal/models"
)

// Source document keys.
const (
	LocationsKey = "PoiItem"
	TypesKey     = "MapIcon"
)

var (
	ErrMissingKey   = errors.New("missing key")
	ErrInvalidField = errors.New("invalid field")
)

var braces = strings.NewReplacer("{", "", "}", "")

var (
	locationFields = []string{"IconId", "Name", "Lat", "Lng"}
	typeFields     = []string{"Id", "Legend", "Image"}
)

type poiItem struct {
	IconID string `json:"IconId"`
	Name   string `json:"Name"`
	models.Coordinates
}

type mapIcon struct {
	ID     string `json:"Id"`
	Legend string `json:"Legend"`
	Image  string `json:"Image"`
}

// NormalizeIconID strips every brace from id, so "{ABC-123}" and "ABC-123" compare equal.
func NormalizeIconID(id string) string {
	return braces.Replace(id)
}

// Locations returns one ServiceLocation per entry of the PoiItem array, in source order.
func Locations(doc models.MapDocument) ([]models.ServiceLocation, error) {
	entries, err := collection(doc, LocationsKey, locationFields)
	if err != nil {
		return nil, err
	}

	locations := make([]models.ServiceLocation, 0, len(entries))
	for idx, raw := range entries {
		var item poiItem
		if err = json.Unmarshal(raw, &item); err != nil {
			return nil, fmt.Errorf("%w: %s[%d]: %w", ErrInvalidField, LocationsKey, idx, err)
		}

		locations = append(locations, models.ServiceLocation{
			IconID:      NormalizeIconID(item.IconID),
			ServiceName: item.Name,
			Coordinates: item.Coordinates,
		})
	}

	return locations, nil
}

// Types returns one ServiceType per entry of the MapIcon array, in source order.
func Types(doc models.MapDocument) ([]models.ServiceType, error) {
	entries, err := collection(doc, TypesKey, typeFields)
	if err != nil {
		return nil, err
	}

	types := make([]models.ServiceType, 0, len(entries))
	for idx, raw := range entries {
		var icon mapIcon
		if err = json.Unmarshal(raw, &icon); err != nil {
			return nil, fmt.Errorf("%w: %s[%d]: %w", ErrInvalidField, TypesKey, idx, err)
		}

		types = append(types, models.ServiceType{
			IconID:      NormalizeIconID(icon.ID),
			ServiceType: icon.Legend,
			ServiceIcon: icon.Image,
		})
	}

	return types, nil
}

// collection returns the entries of the array stored under key after checking that
// every entry carries each of the required fields. The id field (first in required)
// and numeric fields may not be null.
func collection(doc models.MapDocument, key string, required []string) ([]json.RawMessage, error) {
	raw, ok := doc[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingKey, key)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil || isNull(raw) {
		return nil, fmt.Errorf("%w: %s is not an array", ErrInvalidField, key)
	}

	for idx, entry := range entries {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(entry, &fields); err != nil || fields == nil {
			return nil, fmt.Errorf("%w: %s[%d] is not an object", ErrInvalidField, key, idx)
		}

		for pos, name := range required {
			value, found := fields[name]
			if !found {
				return nil, fmt.Errorf("%w: %s[%d].%s", ErrMissingKey, key, idx, name)
			}
			if isNull(value) && (pos == 0 || name == "Lat" || name == "Lng") {
				return nil, fmt.Errorf("%w: %s[%d].%s is null", ErrInvalidField, key, idx, name)
			}
		}
	}

	return entries, nil
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}

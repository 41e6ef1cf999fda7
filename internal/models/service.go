package models

import "encoding/json"

// MapDocument is the top-level object returned by the location map endpoint.
// Values are kept raw until an extractor reads the collection it needs.
type MapDocument map[string]json.RawMessage

// ServiceLocation is a single point of interest on the map.
type ServiceLocation struct {
	IconID      string // IconID is the brace-stripped identifier of the legend icon.
	ServiceName string // ServiceName is the display name of the site.
	Coordinates
}

// ServiceType is a legend entry describing what a map icon stands for.
type ServiceType struct {
	IconID      string // IconID is the brace-stripped identifier of the icon.
	ServiceType string // ServiceType is the legend label.
	ServiceIcon string // ServiceIcon is the image reference of the icon.
}

// ServiceRecord is one exported row: a location joined with its service type.
// Type fields are empty when the location's icon has no legend entry.
type ServiceRecord struct {
	ServiceName      string
	Latitude         float64
	Longitude        float64
	ServiceType      string
	ServiceIcon      string
	LastUpdatedAtUTC string
}

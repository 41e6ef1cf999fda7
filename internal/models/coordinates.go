package models

// Coordinates represents a geographical point defined by its longitude and latitude.
type Coordinates struct {
	Latitude  float64 `json:"Lat"` // Latitude of the geographical point.
	Longitude float64 `json:"Lng"` // Longitude of the geographical point.
}

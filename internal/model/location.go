package model

import "fmt"

// Coordinate is a geographic latitude/longitude pair. Immutable once
// obtained; replaced wholesale on each new resolution.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the coordinate lies in the usual ranges.
func (c Coordinate) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// NumericLabel renders the coordinate as a fixed-precision display string,
// used when reverse geocoding fails.
func (c Coordinate) NumericLabel() string {
	return fmt.Sprintf("lat: %.4f, lon: %.4f", c.Latitude, c.Longitude)
}

// Place binds a human-readable label to a resolved coordinate. The label is
// purely descriptive and never used for computation.
type Place struct {
	Coordinate Coordinate `json:"coordinate"`
	Label      string     `json:"label"`
}

package domain

// A geographic point. Waypoints on a resolved route carry these so stored
// trips can be drawn on a map.
type Coordinates struct {
	Lon float64
	Lat float64
}

// CoordsToList returns the point as [lon, lat], the order routing APIs and
// GeoJSON expect.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

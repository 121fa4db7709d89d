package models

// Planet is a planet in the catalog.
type Planet struct {
	ID             int64
	Name           string
	Climate        string
	Diameter       string
	Gravity        string
	OrbitalPeriod  string
	RotationPeriod string
	Population     string
	SurfaceWater   string
	Terrain        string
	Description    string
}

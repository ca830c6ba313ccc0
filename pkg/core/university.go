// pkg/core/university.go
package core

// Geodetic is a WGS84 geographic coordinate in decimal degrees.
type Geodetic struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Position3D is a Cartesian world position in meters (earth-centered, earth-fixed).
type Position3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns p translated by the scaled direction vector d.
func (p Position3D) Add(d Position3D, scale float64) Position3D {
	return Position3D{
		X: p.X + d.X*scale,
		Y: p.Y + d.Y*scale,
		Z: p.Z + d.Z*scale,
	}
}

// Program holds discipline-specific admission details for one university.
type Program struct {
	Requirements       string `json:"requirements"`
	Fees               string `json:"fees"`
	ApplicationProcess string `json:"applicationProcess"`
}

// University is a ranked geographic point of interest. Rank 0 means
// unranked; unranked universities sort after all ranked ones.
type University struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Rank     uint               `json:"rank,omitempty"`
	Location Geodetic           `json:"location"`
	Programs map[string]Program `json:"programs,omitempty"` // keyed by discipline name
}

// Mentor is a directory entry connecting students with an advisor.
// Matching/search over mentors is out of scope; they are stored and listed.
type Mentor struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Expertise    []string `json:"expertise,omitempty"`
	UniversityID string   `json:"universityId,omitempty"`
	Bio          string   `json:"bio,omitempty"`
	Contact      string   `json:"contact,omitempty"`
}

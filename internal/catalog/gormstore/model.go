// internal/catalog/gormstore/model.go
package gormstore

import (
	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DatabaseModels lists every struct representing a table in the catalog schema.
var DatabaseModels = []interface{}{
	&University{},
	&Mentor{},
}

// University is the database model for one university. Location is stored as
// an EPSG:3857 point in WKB; Programs is the discipline→program map as JSON.
type University struct {
	gorm.Model
	UID      string         `json:"id" gorm:"uniqueIndex;size:64"`
	Name     string         `json:"name" gorm:"size:255"`
	Rank     uint           `json:"rank" gorm:"index:idx_university_rank"`
	Location geom.Point     `json:"location"`
	Programs datatypes.JSON `json:"programs" gorm:"type:jsonb;default:'{}'"`
}

func (*University) TableName() string {
	return "universities"
}

// Mentor is the database model for one mentor directory entry.
type Mentor struct {
	gorm.Model
	UID           string         `json:"id" gorm:"uniqueIndex;size:64"`
	Name          string         `json:"name" gorm:"size:255"`
	Expertise     datatypes.JSON `json:"expertise" gorm:"type:jsonb;default:'[]'"`
	UniversityUID string         `json:"universityId" gorm:"size:64;index:idx_mentor_university"`
	Bio           string         `json:"bio" gorm:"size:2047"`
	Contact       string         `json:"contact" gorm:"size:255"`
}

func (*Mentor) TableName() string {
	return "mentors"
}

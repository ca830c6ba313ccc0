// internal/catalog/gormstore/convert.go
package gormstore

import (
	"encoding/json"
	"fmt"

	"github.com/unimap/globe/internal/geo"
	"github.com/unimap/globe/pkg/core"
)

// toRecord converts a domain university to its database model.
func toRecord(u core.University) (University, error) {
	programs := u.Programs
	if programs == nil {
		programs = map[string]core.Program{}
	}
	raw, err := json.Marshal(programs)
	if err != nil {
		return University{}, fmt.Errorf("marshal programs for %s: %w", u.ID, err)
	}

	location, err := geo.Point3857From4326(u.Location)
	if err != nil {
		return University{}, fmt.Errorf("location for %s: %w", u.ID, err)
	}

	return University{
		UID:      u.ID,
		Name:     u.Name,
		Rank:     u.Rank,
		Location: location,
		Programs: raw,
	}, nil
}

// toCore converts a database model back to the domain type.
func toCore(rec University) (core.University, error) {
	location, err := geo.Geodetic4326From3857(rec.Location)
	if err != nil {
		return core.University{}, fmt.Errorf("location for %s: %w", rec.UID, err)
	}

	var programs map[string]core.Program
	if len(rec.Programs) > 0 {
		if err := json.Unmarshal(rec.Programs, &programs); err != nil {
			return core.University{}, fmt.Errorf("unmarshal programs for %s: %w", rec.UID, err)
		}
	}

	return core.University{
		ID:       rec.UID,
		Name:     rec.Name,
		Rank:     rec.Rank,
		Location: location,
		Programs: programs,
	}, nil
}

// toMentorRecord converts a domain mentor to its database model.
func toMentorRecord(m core.Mentor) (Mentor, error) {
	expertise := m.Expertise
	if expertise == nil {
		expertise = []string{}
	}
	raw, err := json.Marshal(expertise)
	if err != nil {
		return Mentor{}, fmt.Errorf("marshal expertise for %s: %w", m.ID, err)
	}

	return Mentor{
		UID:           m.ID,
		Name:          m.Name,
		Expertise:     raw,
		UniversityUID: m.UniversityID,
		Bio:           m.Bio,
		Contact:       m.Contact,
	}, nil
}

// toMentorCore converts a mentor database model back to the domain type.
func toMentorCore(rec Mentor) (core.Mentor, error) {
	var expertise []string
	if len(rec.Expertise) > 0 {
		if err := json.Unmarshal(rec.Expertise, &expertise); err != nil {
			return core.Mentor{}, fmt.Errorf("unmarshal expertise for %s: %w", rec.UID, err)
		}
	}
	return core.Mentor{
		ID:           rec.UID,
		Name:         rec.Name,
		Expertise:    expertise,
		UniversityID: rec.UniversityUID,
		Bio:          rec.Bio,
		Contact:      rec.Contact,
	}, nil
}

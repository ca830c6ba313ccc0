package gormstore

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/unimap/globe/internal/catalog"
	"github.com/unimap/globe/pkg/core"

	"github.com/rs/zerolog"
)

// newTestStore opens a throwaway SQLite-backed store.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	s := New(zerolog.Nop(), filepath.Join(t.TempDir(), "catalog.db"))
	db, err := s.getSqliteDB(s.SqliteFilePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	s.DB = db
	s.ShouldSaveLocal = true
	if err := s.setup(); err != nil {
		t.Fatalf("setup: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleUniversities() []core.University {
	return []core.University{
		{ID: "u2", Name: "Beta", Rank: 2, Location: core.Geodetic{Lon: 10, Lat: 50},
			Programs: map[string]core.Program{"engineering": {Fees: "12000"}}},
		{ID: "u1", Name: "Alpha", Rank: 1, Location: core.Geodetic{Lon: -0.12, Lat: 51.5},
			Programs: map[string]core.Program{"engineering": {}, "law": {}}},
		{ID: "u0", Name: "Unranked", Location: core.Geodetic{Lon: 2.35, Lat: 48.85},
			Programs: map[string]core.Program{"engineering": {}}},
	}
}

func TestStore_ReplaceAndTopByDiscipline(t *testing.T) {
	s := newTestStore(t)

	if err := s.ReplaceUniversities(sampleUniversities()); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := s.TopByDiscipline("engineering", 2)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].ID != "u1" || got[1].ID != "u2" {
		t.Errorf("expected [u1 u2], got [%s %s]", got[0].ID, got[1].ID)
	}
}

func TestStore_UniversityByID_RoundTripsLocation(t *testing.T) {
	s := newTestStore(t)
	if err := s.ReplaceUniversities(sampleUniversities()); err != nil {
		t.Fatalf("replace: %v", err)
	}

	u, err := s.UniversityByID("u1")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if math.Abs(u.Location.Lon-(-0.12)) > 1e-6 || math.Abs(u.Location.Lat-51.5) > 1e-6 {
		t.Errorf("location did not survive 3857 round trip: %+v", u.Location)
	}
	if u.Programs["engineering"] == (core.Program{}) && len(u.Programs) != 2 {
		t.Errorf("programs did not round trip: %+v", u.Programs)
	}
}

func TestStore_UniversityByID_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.UniversityByID("missing")
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_AddUniversity_UpsertsByUID(t *testing.T) {
	s := newTestStore(t)

	u := core.University{ID: "u1", Name: "Old", Location: core.Geodetic{Lon: 1, Lat: 1}}
	if err := s.AddUniversity(u); err != nil {
		t.Fatalf("add: %v", err)
	}
	u.Name = "New"
	if err := s.AddUniversity(u); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := s.UniversityByID("u1")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got.Name != "New" {
		t.Errorf("expected upserted name, got %s", got.Name)
	}

	all, _ := s.TopByDiscipline("", 0)
	if len(all) != 1 {
		t.Errorf("expected 1 row after upsert, got %d", len(all))
	}
}

func TestStore_Disciplines(t *testing.T) {
	s := newTestStore(t)
	if err := s.ReplaceUniversities(sampleUniversities()); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := s.Disciplines()
	if err != nil {
		t.Fatalf("disciplines: %v", err)
	}
	want := []string{"engineering", "law"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestStore_Mentors(t *testing.T) {
	s := newTestStore(t)

	m := core.Mentor{ID: "m1", Name: "Dr. Adams", Expertise: []string{"engineering"}, UniversityID: "u1"}
	if err := s.AddMentor(m); err != nil {
		t.Fatalf("add mentor: %v", err)
	}

	got, err := s.ListMentors()
	if err != nil {
		t.Fatalf("list mentors: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 mentor, got %d", len(got))
	}
	if got[0].Name != "Dr. Adams" || len(got[0].Expertise) != 1 {
		t.Errorf("mentor did not round trip: %+v", got[0])
	}
}

func TestConvert_RoundTrip(t *testing.T) {
	in := core.University{
		ID:       "u9",
		Name:     "Round Trip",
		Rank:     9,
		Location: core.Geodetic{Lon: 151.2, Lat: -33.9},
		Programs: map[string]core.Program{
			"medicine": {Requirements: "MCAT", Fees: "50000", ApplicationProcess: "rolling"},
		},
	}

	rec, err := toRecord(in)
	if err != nil {
		t.Fatalf("toRecord: %v", err)
	}
	out, err := toCore(rec)
	if err != nil {
		t.Fatalf("toCore: %v", err)
	}

	if out.ID != in.ID || out.Name != in.Name || out.Rank != in.Rank {
		t.Errorf("fields did not round trip: %+v", out)
	}
	if math.Abs(out.Location.Lon-in.Location.Lon) > 1e-6 ||
		math.Abs(out.Location.Lat-in.Location.Lat) > 1e-6 {
		t.Errorf("location did not round trip: %+v", out.Location)
	}
	if out.Programs["medicine"].Requirements != "MCAT" {
		t.Errorf("programs did not round trip: %+v", out.Programs)
	}
}

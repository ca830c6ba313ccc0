// internal/catalog/catalog.go
package catalog

import (
	"errors"
	"sort"

	"github.com/unimap/globe/pkg/core"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Backend is the interface all catalog storage implementations must satisfy.
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// University management
	ReplaceUniversities(universities []core.University) error
	AddUniversity(u core.University) error
	UniversityByID(id string) (core.University, error)
	Disciplines() ([]string, error)

	// TopByDiscipline returns the highest-ranked universities offering the
	// given discipline, rank ascending, unranked last. limit <= 0 means all.
	TopByDiscipline(discipline string, limit int) ([]core.University, error)

	// Mentor directory (stored and listed; matching is out of scope)
	AddMentor(m core.Mentor) error
	ListMentors() ([]core.Mentor, error)
}

// RankLess orders universities rank ascending with unranked (0) after all
// ranked entries; ties break by name for stable output.
func RankLess(a, b core.University) bool {
	switch {
	case a.Rank == 0 && b.Rank == 0:
		return a.Name < b.Name
	case a.Rank == 0:
		return false
	case b.Rank == 0:
		return true
	case a.Rank != b.Rank:
		return a.Rank < b.Rank
	default:
		return a.Name < b.Name
	}
}

// SortByRank sorts in place per RankLess.
func SortByRank(universities []core.University) {
	sort.SliceStable(universities, func(i, j int) bool {
		return RankLess(universities[i], universities[j])
	})
}

// OffersDiscipline reports whether the university has a program entry for
// the discipline. Empty discipline matches everything.
func OffersDiscipline(u core.University, discipline string) bool {
	if discipline == "" {
		return true
	}
	_, ok := u.Programs[discipline]
	return ok
}

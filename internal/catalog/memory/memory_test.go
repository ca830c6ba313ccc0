package memory

import (
	"errors"
	"testing"

	"github.com/unimap/globe/internal/catalog"
	"github.com/unimap/globe/pkg/core"
)

func seedBackend(t *testing.T) *Backend {
	t.Helper()
	b := New()
	err := b.ReplaceUniversities([]core.University{
		{ID: "u3", Name: "Gamma", Rank: 3, Programs: map[string]core.Program{
			"engineering": {}, "medicine": {},
		}},
		{ID: "u1", Name: "Alpha", Rank: 1, Programs: map[string]core.Program{
			"engineering": {},
		}},
		{ID: "u0", Name: "Unranked", Programs: map[string]core.Program{
			"engineering": {},
		}},
		{ID: "u2", Name: "Beta", Rank: 2, Programs: map[string]core.Program{
			"law": {},
		}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return b
}

func TestTopByDiscipline_RankOrder(t *testing.T) {
	b := seedBackend(t)

	got, err := b.TopByDiscipline("engineering", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantIDs := []string{"u1", "u3", "u0"}
	if len(got) != len(wantIDs) {
		t.Fatalf("expected %d results, got %d", len(wantIDs), len(got))
	}
	for i, want := range wantIDs {
		if got[i].ID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, got[i].ID)
		}
	}
}

func TestTopByDiscipline_UnrankedSortsLast(t *testing.T) {
	b := seedBackend(t)

	got, _ := b.TopByDiscipline("engineering", 0)
	if got[len(got)-1].ID != "u0" {
		t.Errorf("expected unranked last, got %s", got[len(got)-1].ID)
	}
}

func TestTopByDiscipline_LimitApplied(t *testing.T) {
	b := seedBackend(t)

	got, _ := b.TopByDiscipline("engineering", 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].ID != "u1" || got[1].ID != "u3" {
		t.Errorf("expected [u1 u3], got [%s %s]", got[0].ID, got[1].ID)
	}
}

func TestTopByDiscipline_EmptyDisciplineMatchesAll(t *testing.T) {
	b := seedBackend(t)

	got, _ := b.TopByDiscipline("", 0)
	if len(got) != 4 {
		t.Errorf("expected 4 results, got %d", len(got))
	}
}

func TestTopByDiscipline_UnknownDisciplineEmpty(t *testing.T) {
	b := seedBackend(t)

	got, _ := b.TopByDiscipline("astrology", 0)
	if len(got) != 0 {
		t.Errorf("expected no results, got %d", len(got))
	}
}

func TestUniversityByID_Found(t *testing.T) {
	b := seedBackend(t)

	u, err := b.UniversityByID("u2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Name != "Beta" {
		t.Errorf("expected Beta, got %s", u.Name)
	}
}

func TestUniversityByID_NotFound(t *testing.T) {
	b := seedBackend(t)

	_, err := b.UniversityByID("nope")
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDisciplines_SortedUnique(t *testing.T) {
	b := seedBackend(t)

	got, err := b.Disciplines()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"engineering", "law", "medicine"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
			break
		}
	}
}

func TestReplaceUniversities_DropsDuplicateIDs(t *testing.T) {
	b := New()
	_ = b.ReplaceUniversities([]core.University{
		{ID: "u1", Name: "First"},
		{ID: "u1", Name: "Shadow"},
	})

	u, err := b.UniversityByID("u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Name != "First" {
		t.Errorf("expected first occurrence kept, got %s", u.Name)
	}
}

func TestMentors_AddAndList(t *testing.T) {
	b := New()
	_ = b.AddMentor(core.Mentor{ID: "m1", Name: "Dr. Adams"})
	_ = b.AddMentor(core.Mentor{ID: "m2", Name: "Prof. Baker"})

	got, err := b.ListMentors()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "m1" || got[1].ID != "m2" {
		t.Errorf("unexpected mentor list: %+v", got)
	}
}

func TestListMentors_ReturnsCopy(t *testing.T) {
	b := New()
	_ = b.AddMentor(core.Mentor{ID: "m1", Name: "Dr. Adams"})

	got, _ := b.ListMentors()
	got[0].Name = "mutated"

	again, _ := b.ListMentors()
	if again[0].Name != "Dr. Adams" {
		t.Error("ListMentors leaked internal slice")
	}
}

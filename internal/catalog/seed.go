// internal/catalog/seed.go
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/unimap/globe/pkg/core"
)

// Seed is the JSON seed-file shape used to bootstrap a backend.
type Seed struct {
	Universities []core.University `json:"universities"`
	Mentors      []core.Mentor     `json:"mentors"`
}

// LoadSeed reads and decodes a seed file.
func LoadSeed(path string) (Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("reading seed file: %w", err)
	}
	var s Seed
	if err := json.Unmarshal(data, &s); err != nil {
		return Seed{}, fmt.Errorf("decoding seed file: %w", err)
	}
	return s, nil
}

// ApplySeed loads the seed content into a backend, replacing any existing
// universities and appending mentors.
func ApplySeed(b Backend, s Seed) error {
	if err := b.ReplaceUniversities(s.Universities); err != nil {
		return fmt.Errorf("seeding universities: %w", err)
	}
	for _, m := range s.Mentors {
		if err := b.AddMentor(m); err != nil {
			return fmt.Errorf("seeding mentor %s: %w", m.ID, err)
		}
	}
	return nil
}

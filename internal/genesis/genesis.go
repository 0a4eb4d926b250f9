// Package genesis seeds a fresh registry from a recorded list of creatures.
// Entries carry explicit dna and gender so replaying the same file on any
// replica produces byte-identical state.
package genesis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/thornvale/menagerie/internal/creature"
	"github.com/thornvale/menagerie/internal/registry"
)

// Entry is one creature in a genesis file.
type Entry struct {
	Owner  string `json:"owner"`
	DNA    string `json:"dna"`
	Gender string `json:"gender"`
}

// Load decodes a genesis file: a JSON array of entries.
func Load(r io.Reader) ([]Entry, error) {
	var entries []Entry
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode genesis entries: %w", err)
	}
	return entries, nil
}

// Build replays the entries into the registry in file order. Any invalid
// or conflicting entry aborts the build; partial state from earlier
// entries is already committed, so genesis files are expected to be
// applied to an empty registry.
func Build(ctx context.Context, svc *registry.Service, entries []Entry) ([]creature.ID, error) {
	ids := make([]creature.ID, 0, len(entries))
	for i, entry := range entries {
		dna, err := creature.ParseDNA(entry.DNA)
		if err != nil {
			return ids, fmt.Errorf("genesis entry %d: %w", i, err)
		}
		gender, err := creature.ParseGender(entry.Gender)
		if err != nil {
			return ids, fmt.Errorf("genesis entry %d: %w", i, err)
		}
		if entry.Owner == "" {
			return ids, fmt.Errorf("genesis entry %d: owner is required", i)
		}

		id, err := svc.MintWith(ctx, entry.Owner, &dna, gender)
		if err != nil {
			return ids, fmt.Errorf("genesis entry %d: %w", i, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

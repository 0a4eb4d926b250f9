package genesis

import (
	"context"
	"strings"
	"testing"

	"github.com/thornvale/menagerie/internal/event"
	"github.com/thornvale/menagerie/internal/ledger"
	"github.com/thornvale/menagerie/internal/random"
	"github.com/thornvale/menagerie/internal/registry"
	"github.com/thornvale/menagerie/internal/storage"
	"github.com/thornvale/menagerie/internal/storage/memory"
)

func newTestRegistry(t *testing.T) *registry.Service {
	t.Helper()

	seq := &random.StepSequencer{}
	rng, err := random.NewContextSource([32]byte{7}, seq)
	if err != nil {
		t.Fatalf("new context source: %v", err)
	}

	svc, err := registry.New(registry.Config{
		Store:      memory.New(storage.Caps{}),
		Ledger:     ledger.NewMemory(1),
		Randomness: rng,
		Sequencer:  seq,
		Events:     event.NewEmitter(event.NewJournal()),
	})
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	return svc
}

const genesisFile = `[
  {"owner": "alice", "dna": "000102030405060708090a0b0c0d0e0f", "gender": "male"},
  {"owner": "bob", "dna": "ffeeddccbbaa99887766554433221100", "gender": "female"}
]`

func TestLoadAndBuild(t *testing.T) {
	entries, err := Load(strings.NewReader(genesisFile))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	svc := newTestRegistry(t)
	ids, err := Build(context.Background(), svc, entries)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 minted ids, got %d", len(ids))
	}

	count, err := svc.Count(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected count 2, got %d", count)
	}

	c, err := svc.Creature(context.Background(), ids[0])
	if err != nil {
		t.Fatalf("get creature: %v", err)
	}
	if c.Owner != "alice" || c.DNA.String() != "000102030405060708090a0b0c0d0e0f" {
		t.Fatalf("unexpected first creature: owner %q dna %s", c.Owner, c.DNA)
	}
}

func TestBuildDeterministicAcrossReplicas(t *testing.T) {
	entries, err := Load(strings.NewReader(genesisFile))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	idsA, err := Build(context.Background(), newTestRegistry(t), entries)
	if err != nil {
		t.Fatalf("build a: %v", err)
	}
	idsB, err := Build(context.Background(), newTestRegistry(t), entries)
	if err != nil {
		t.Fatalf("build b: %v", err)
	}

	for i := range idsA {
		if idsA[i] != idsB[i] {
			t.Fatalf("replica state diverged at entry %d: %s vs %s", i, idsA[i], idsB[i])
		}
	}
}

func TestBuildRejectsBadEntries(t *testing.T) {
	svc := newTestRegistry(t)

	tests := []struct {
		name string
		file string
	}{
		{"bad dna", `[{"owner": "alice", "dna": "zz", "gender": "male"}]`},
		{"bad gender", `[{"owner": "alice", "dna": "000102030405060708090a0b0c0d0e0f", "gender": "robot"}]`},
		{"missing owner", `[{"owner": "", "dna": "000102030405060708090a0b0c0d0e0f", "gender": "male"}]`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			entries, err := Load(strings.NewReader(tc.file))
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if _, err := Build(context.Background(), svc, entries); err == nil {
				t.Fatal("expected build to fail")
			}
		})
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	_, err := Load(strings.NewReader(`[{"owner": "alice", "dna": "00", "gender": "male", "extra": true}]`))
	if err == nil {
		t.Fatal("expected unknown field to be rejected")
	}
}

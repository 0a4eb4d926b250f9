package memory

import (
	"context"
	"errors"
	"testing"

	"pgregory.net/rapid"

	"github.com/thornvale/menagerie/internal/creature"
	"github.com/thornvale/menagerie/internal/storage"
)

func testID(b byte) creature.ID {
	var id creature.ID
	id[0] = b
	return id
}

func testDNA(b byte) creature.DNA {
	var d creature.DNA
	d[0] = b
	return d
}

func TestPutGetRoundtrip(t *testing.T) {
	store := New(storage.Caps{})
	id := testID(1)
	c := creature.Creature{
		DNA:    testDNA(7),
		Gender: creature.GenderFemale,
		Owner:  "alice",
	}

	err := store.Update(context.Background(), func(tx storage.Tx) error {
		return tx.Put(id, c)
	})
	if err != nil {
		t.Fatalf("put creature: %v", err)
	}

	err = store.View(context.Background(), func(tx storage.ReadTx) error {
		loaded, err := tx.Get(id)
		if err != nil {
			return err
		}
		if loaded.Owner != "alice" || loaded.DNA != c.DNA || loaded.Gender != c.Gender {
			t.Fatalf("unexpected creature %+v", loaded)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
}

func TestGetNotFound(t *testing.T) {
	store := New(storage.Caps{})

	err := store.View(context.Background(), func(tx storage.ReadTx) error {
		_, err := tx.Get(testID(9))
		return err
	})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAppendOwnedCapacity(t *testing.T) {
	store := New(storage.Caps{MaxOwned: 2})

	err := store.Update(context.Background(), func(tx storage.Tx) error {
		if err := tx.AppendOwned("alice", testID(1)); err != nil {
			return err
		}
		return tx.AppendOwned("alice", testID(2))
	})
	if err != nil {
		t.Fatalf("fill owner index: %v", err)
	}

	err = store.Update(context.Background(), func(tx storage.Tx) error {
		return tx.AppendOwned("alice", testID(3))
	})
	if !errors.Is(err, storage.ErrOwnerCapacity) {
		t.Fatalf("expected ErrOwnerCapacity, got %v", err)
	}

	err = store.View(context.Background(), func(tx storage.ReadTx) error {
		ids, err := tx.OwnedBy("alice")
		if err != nil {
			return err
		}
		if len(ids) != 2 {
			t.Fatalf("expected 2 owned ids after rejected append, got %d", len(ids))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
}

func TestRemoveOwnedMissing(t *testing.T) {
	store := New(storage.Caps{})

	err := store.Update(context.Background(), func(tx storage.Tx) error {
		return tx.RemoveOwned("alice", testID(1))
	})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateRollbackDiscardsMutations(t *testing.T) {
	store := New(storage.Caps{})
	boom := errors.New("boom")

	err := store.Update(context.Background(), func(tx storage.Tx) error {
		if err := tx.Put(testID(1), creature.Creature{Owner: "alice"}); err != nil {
			return err
		}
		if err := tx.AppendOwned("alice", testID(1)); err != nil {
			return err
		}
		if err := tx.MapDNA(testDNA(1), testID(1)); err != nil {
			return err
		}
		if _, err := tx.IncrementCount(); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected transaction error, got %v", err)
	}

	err = store.View(context.Background(), func(tx storage.ReadTx) error {
		if _, err := tx.Get(testID(1)); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("expected creature rollback, got %v", err)
		}
		ids, err := tx.OwnedBy("alice")
		if err != nil {
			return err
		}
		if len(ids) != 0 {
			t.Fatalf("expected owner index rollback, got %d ids", len(ids))
		}
		if _, ok, err := tx.IDByDNA(testDNA(1)); err != nil || ok {
			t.Fatalf("expected dna index rollback, got ok=%v err=%v", ok, err)
		}
		count, err := tx.Count()
		if err != nil {
			return err
		}
		if count != 0 {
			t.Fatalf("expected counter rollback, got %d", count)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
}

func TestIncrementCount(t *testing.T) {
	store := New(storage.Caps{})

	for want := uint64(1); want <= 3; want++ {
		err := store.Update(context.Background(), func(tx storage.Tx) error {
			got, err := tx.IncrementCount()
			if err != nil {
				return err
			}
			if got != want {
				t.Fatalf("expected count %d, got %d", want, got)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("increment: %v", err)
		}
	}
}

func TestMapDNAOverwrites(t *testing.T) {
	store := New(storage.Caps{})
	dna := testDNA(5)

	err := store.Update(context.Background(), func(tx storage.Tx) error {
		if err := tx.MapDNA(dna, testID(1)); err != nil {
			return err
		}
		return tx.MapDNA(dna, testID(2))
	})
	if err != nil {
		t.Fatalf("map dna: %v", err)
	}

	err = store.View(context.Background(), func(tx storage.ReadTx) error {
		id, ok, err := tx.IDByDNA(dna)
		if err != nil {
			return err
		}
		if !ok || id != testID(2) {
			t.Fatalf("expected newer mapping to win, got ok=%v id=%s", ok, id)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
}

// Removal uses swap-with-last, so tests assert set membership, never order.
func TestRemoveOwnedMembership(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		store := New(storage.Caps{})

		n := rapid.IntRange(1, 20).Draw(rt, "n")
		ids := make([]creature.ID, n)
		for i := range ids {
			ids[i] = testID(byte(i + 1))
		}
		victim := ids[rapid.IntRange(0, n-1).Draw(rt, "victim")]

		err := store.Update(context.Background(), func(tx storage.Tx) error {
			for _, id := range ids {
				if err := tx.AppendOwned("alice", id); err != nil {
					return err
				}
			}
			return tx.RemoveOwned("alice", victim)
		})
		if err != nil {
			rt.Fatalf("update: %v", err)
		}

		err = store.View(context.Background(), func(tx storage.ReadTx) error {
			remaining, err := tx.OwnedBy("alice")
			if err != nil {
				return err
			}
			if len(remaining) != n-1 {
				rt.Fatalf("expected %d ids, got %d", n-1, len(remaining))
			}
			seen := make(map[creature.ID]bool, len(remaining))
			for _, id := range remaining {
				if id == victim {
					rt.Fatalf("victim still present after removal")
				}
				if seen[id] {
					rt.Fatalf("duplicate id %s after removal", id)
				}
				seen[id] = true
			}
			return nil
		})
		if err != nil {
			rt.Fatalf("view: %v", err)
		}
	})
}

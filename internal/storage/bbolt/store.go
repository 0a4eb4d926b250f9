// Package bbolt provides a BoltDB-backed registry store. Each logical map
// lives in its own bucket and every Update runs inside a single BoltDB
// write transaction, so a failed transition rolls back completely.
package bbolt

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"github.com/thornvale/menagerie/internal/creature"
	"github.com/thornvale/menagerie/internal/storage"
)

const (
	creatureBucket = "creature"
	ownerBucket    = "owner"
	dnaBucket      = "dna"
	metaBucket     = "meta"

	countKey = "count"
)

// Store provides a BoltDB-backed registry store.
type Store struct {
	db   *bbolt.DB
	caps storage.Caps
}

// Open opens a BoltDB-backed store at the provided path.
func Open(path string, caps storage.Caps) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	store := &Store{db: db, caps: caps.Normalize()}
	if err := store.ensureBuckets(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying BoltDB database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// View runs fn against a read-only snapshot.
func (s *Store) View(ctx context.Context, fn func(storage.ReadTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}

	return s.db.View(func(btx *bbolt.Tx) error {
		return fn(&tx{tx: btx, caps: s.caps})
	})
}

// Update runs fn inside a write transaction; any error discards every
// mutation.
func (s *Store) Update(ctx context.Context, fn func(storage.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}

	return s.db.Update(func(btx *bbolt.Tx) error {
		return fn(&tx{tx: btx, caps: s.caps})
	})
}

func (s *Store) ensureBuckets() error {
	return s.db.Update(func(btx *bbolt.Tx) error {
		for _, name := range []string{creatureBucket, ownerBucket, dnaBucket, metaBucket} {
			if _, err := btx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("create %s bucket: %w", name, err)
			}
		}
		return nil
	})
}

// tx implements storage.Tx over a BoltDB transaction.
type tx struct {
	tx   *bbolt.Tx
	caps storage.Caps
}

func (t *tx) Get(id creature.ID) (creature.Creature, error) {
	bucket := t.tx.Bucket([]byte(creatureBucket))
	if bucket == nil {
		return creature.Creature{}, fmt.Errorf("creature bucket is missing")
	}

	payload := bucket.Get(id[:])
	if payload == nil {
		return creature.Creature{}, storage.ErrNotFound
	}

	var c creature.Creature
	if err := json.Unmarshal(payload, &c); err != nil {
		return creature.Creature{}, fmt.Errorf("unmarshal creature: %w", err)
	}
	return c, nil
}

func (t *tx) OwnedBy(owner string) ([]creature.ID, error) {
	bucket := t.tx.Bucket([]byte(ownerBucket))
	if bucket == nil {
		return nil, fmt.Errorf("owner bucket is missing")
	}

	payload := bucket.Get([]byte(owner))
	if payload == nil {
		return nil, nil
	}

	var ids []creature.ID
	if err := json.Unmarshal(payload, &ids); err != nil {
		return nil, fmt.Errorf("unmarshal owner index: %w", err)
	}
	return ids, nil
}

func (t *tx) IDByDNA(dna creature.DNA) (creature.ID, bool, error) {
	bucket := t.tx.Bucket([]byte(dnaBucket))
	if bucket == nil {
		return creature.ID{}, false, fmt.Errorf("dna bucket is missing")
	}

	payload := bucket.Get(dna[:])
	if payload == nil {
		return creature.ID{}, false, nil
	}
	if len(payload) != creature.IDLength {
		return creature.ID{}, false, fmt.Errorf("dna index entry has %d bytes", len(payload))
	}

	var id creature.ID
	copy(id[:], payload)
	return id, true, nil
}

func (t *tx) Count() (uint64, error) {
	bucket := t.tx.Bucket([]byte(metaBucket))
	if bucket == nil {
		return 0, fmt.Errorf("meta bucket is missing")
	}

	payload := bucket.Get([]byte(countKey))
	if payload == nil {
		return 0, nil
	}
	if len(payload) != 8 {
		return 0, fmt.Errorf("count entry has %d bytes", len(payload))
	}
	return binary.BigEndian.Uint64(payload), nil
}

func (t *tx) Put(id creature.ID, c creature.Creature) error {
	bucket := t.tx.Bucket([]byte(creatureBucket))
	if bucket == nil {
		return fmt.Errorf("creature bucket is missing")
	}

	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal creature: %w", err)
	}
	return bucket.Put(id[:], payload)
}

func (t *tx) AppendOwned(owner string, id creature.ID) error {
	ids, err := t.OwnedBy(owner)
	if err != nil {
		return err
	}
	if len(ids) >= t.caps.MaxOwned {
		return storage.ErrOwnerCapacity
	}
	return t.putOwned(owner, append(ids, id))
}

func (t *tx) RemoveOwned(owner string, id creature.ID) error {
	ids, err := t.OwnedBy(owner)
	if err != nil {
		return err
	}

	ids, removed := storage.SwapRemove(ids, id)
	if !removed {
		return storage.ErrNotFound
	}

	if len(ids) == 0 {
		bucket := t.tx.Bucket([]byte(ownerBucket))
		if bucket == nil {
			return fmt.Errorf("owner bucket is missing")
		}
		return bucket.Delete([]byte(owner))
	}
	return t.putOwned(owner, ids)
}

func (t *tx) putOwned(owner string, ids []creature.ID) error {
	bucket := t.tx.Bucket([]byte(ownerBucket))
	if bucket == nil {
		return fmt.Errorf("owner bucket is missing")
	}

	payload, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("marshal owner index: %w", err)
	}
	return bucket.Put([]byte(owner), payload)
}

func (t *tx) MapDNA(dna creature.DNA, id creature.ID) error {
	bucket := t.tx.Bucket([]byte(dnaBucket))
	if bucket == nil {
		return fmt.Errorf("dna bucket is missing")
	}
	return bucket.Put(dna[:], id[:])
}

func (t *tx) IncrementCount() (uint64, error) {
	count, err := t.Count()
	if err != nil {
		return 0, err
	}
	if count == math.MaxUint64 {
		return 0, storage.ErrCounterOverflow
	}

	bucket := t.tx.Bucket([]byte(metaBucket))
	if bucket == nil {
		return 0, fmt.Errorf("meta bucket is missing")
	}

	next := count + 1
	var payload [8]byte
	binary.BigEndian.PutUint64(payload[:], next)
	if err := bucket.Put([]byte(countKey), payload[:]); err != nil {
		return 0, err
	}
	return next, nil
}

// Package registryd parses registry daemon flags and bootstraps the
// registry runtime: store, ledger, randomness, genesis replay.
package registryd

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/thornvale/menagerie/internal/creature"
	"github.com/thornvale/menagerie/internal/event"
	"github.com/thornvale/menagerie/internal/genesis"
	"github.com/thornvale/menagerie/internal/ledger"
	"github.com/thornvale/menagerie/internal/platform/config"
	platformotel "github.com/thornvale/menagerie/internal/platform/otel"
	"github.com/thornvale/menagerie/internal/random"
	"github.com/thornvale/menagerie/internal/registry"
	"github.com/thornvale/menagerie/internal/storage"
	bboltstore "github.com/thornvale/menagerie/internal/storage/bbolt"
)

// ParseConfig parses environment and flags into a config. Flags override
// the environment.
func ParseConfig(fs *flag.FlagSet, args []string) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "registry database file")
	fs.StringVar(&cfg.GenesisPath, "genesis", cfg.GenesisPath, "genesis file applied to an empty registry")
	fs.StringVar(&cfg.SeedHex, "seed", cfg.SeedHex, "hex-encoded 32-byte epoch seed (empty for random)")
	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// Run bootstraps the registry: open the store, apply genesis to an empty
// registry, and report the resulting state.
func Run(ctx context.Context, cfg config.Config) error {
	otelShutdown, err := platformotel.Setup(ctx, "menagerie-registryd")
	if err != nil {
		return fmt.Errorf("telemetry setup: %w", err)
	}
	defer func() {
		if err := otelShutdown(context.Background()); err != nil {
			log.Printf("telemetry shutdown: %v", err)
		}
	}()

	store, err := bboltstore.Open(cfg.DBPath, storage.Caps{MaxOwned: cfg.MaxOwned})
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close store: %v", err)
		}
	}()

	seed, err := epochSeed(cfg.SeedHex)
	if err != nil {
		return err
	}
	seq := &random.StepSequencer{}
	rng, err := random.NewContextSource(seed, seq)
	if err != nil {
		return fmt.Errorf("randomness source: %w", err)
	}

	journal := event.NewJournal()
	svc, err := registry.New(registry.Config{
		Store:      store,
		Ledger:     ledger.NewMemory(creature.Amount(cfg.MinBalance)),
		Randomness: rng,
		Sequencer:  seq,
		Events:     event.NewEmitter(journal),
		Caps: registry.Caps{
			MinNameLength: cfg.MinNameLength,
			MaxNameLength: cfg.MaxNameLength,
		},
	})
	if err != nil {
		return fmt.Errorf("registry: %w", err)
	}

	count, err := svc.Count(ctx)
	if err != nil {
		return fmt.Errorf("count: %w", err)
	}

	if cfg.GenesisPath != "" && count == 0 {
		minted, err := applyGenesis(ctx, svc, cfg.GenesisPath)
		if err != nil {
			return fmt.Errorf("apply genesis: %w", err)
		}
		count, err = svc.Count(ctx)
		if err != nil {
			return fmt.Errorf("count: %w", err)
		}
		log.Printf("genesis applied: %d creatures from %s", minted, cfg.GenesisPath)
	}

	log.Printf("registry ready: db=%s creatures=%d events=%d", cfg.DBPath, count, len(journal.Records()))
	return nil
}

func applyGenesis(ctx context.Context, svc *registry.Service, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	entries, err := genesis.Load(f)
	if err != nil {
		return 0, err
	}
	ids, err := genesis.Build(ctx, svc, entries)
	if err != nil {
		return len(ids), err
	}
	return len(ids), nil
}

func epochSeed(seedHex string) ([32]byte, error) {
	if seedHex == "" {
		return random.NewSeed()
	}

	var seed [32]byte
	raw, err := hex.DecodeString(seedHex)
	if err != nil {
		return seed, fmt.Errorf("decode seed: %w", err)
	}
	if len(raw) != len(seed) {
		return seed, fmt.Errorf("seed must be %d bytes, got %d", len(seed), len(raw))
	}
	copy(seed[:], raw)
	return seed, nil
}

// Package random provides the deterministic randomness port.
//
// # Determinism
//
// Draws are deterministic with respect to the epoch seed, the call
// position (block number and operation index), and the domain tag. Every
// replica computing the same call at the same position derives the same
// bytes; the output is reproducible, not secret.
//
// # Domain separation
//
// Independent draws from the same source are separated by a fixed domain
// tag mixed into the digest, so the "dna" and "gender" streams never
// correlate even within a single call.
package random

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// Source supplies domain-separated pseudo-random byte strings tied to the
// call context.
type Source interface {
	// Random returns a 32-byte draw for the given domain tag.
	Random(domainTag []byte) ([32]byte, error)
}

// Sequencer reports the position of the call being executed.
type Sequencer interface {
	// Block returns the current block (or sequence batch) number.
	Block() uint64
	// OpIndex returns the index of the current operation within the
	// block.
	OpIndex() uint32
}

// StepSequencer is a Sequencer advanced explicitly by whatever orders the
// calls. The zero value starts at block 0, operation 0.
type StepSequencer struct {
	block   uint64
	opIndex uint32
}

// Block returns the current block number.
func (s *StepSequencer) Block() uint64 {
	return s.block
}

// OpIndex returns the current operation index.
func (s *StepSequencer) OpIndex() uint32 {
	return s.opIndex
}

// Advance moves to the next operation within the block.
func (s *StepSequencer) Advance() {
	s.opIndex++
}

// NextBlock moves to the next block and resets the operation index.
func (s *StepSequencer) NextBlock() {
	s.block++
	s.opIndex = 0
}

// ContextSource derives draws from an epoch seed and the call position
// reported by a Sequencer.
type ContextSource struct {
	seed [32]byte
	seq  Sequencer
}

// NewContextSource creates a deterministic source for the given epoch seed.
func NewContextSource(seed [32]byte, seq Sequencer) (*ContextSource, error) {
	if seq == nil {
		return nil, fmt.Errorf("sequencer is required")
	}
	return &ContextSource{seed: seed, seq: seq}, nil
}

// Random returns the draw for the current call position and domain tag.
func (s *ContextSource) Random(domainTag []byte) ([32]byte, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return [32]byte{}, fmt.Errorf("randomness digest: %w", err)
	}

	var position [12]byte
	binary.BigEndian.PutUint64(position[:8], s.seq.Block())
	binary.BigEndian.PutUint32(position[8:], s.seq.OpIndex())

	h.Write(s.seed[:])
	h.Write(position[:])
	h.Write(domainTag)

	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out, nil
}

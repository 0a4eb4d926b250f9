// Package creature defines the core breedable asset tracked by the registry:
// its immutable genetic identity, its mutable ownership and sale state, and
// the deterministic derivations (content-hash id, dna digest, crossover)
// every replica must compute identically.
package creature

import (
	"encoding/hex"
	"fmt"
)

// Amount is a fungible balance amount in the smallest ledger unit.
type Amount uint64

// Gender describes a creature's breeding sex.
type Gender int

const (
	// GenderUnspecified means the gender should be derived at mint time.
	GenderUnspecified Gender = iota
	// GenderMale indicates a male creature.
	GenderMale
	// GenderFemale indicates a female creature.
	GenderFemale
)

// Valid reports whether the gender is an assignable value.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// String returns a human-readable gender label.
func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	default:
		return "unspecified"
	}
}

// ParseGender maps a textual gender label to its domain value.
func ParseGender(s string) (Gender, error) {
	switch s {
	case "male":
		return GenderMale, nil
	case "female":
		return GenderFemale, nil
	default:
		return GenderUnspecified, fmt.Errorf("unknown gender %q", s)
	}
}

// DNALength is the fixed width of a creature's genetic material in bytes.
const DNALength = 16

// DNA is a creature's genetic material. It is immutable after creation.
type DNA [DNALength]byte

// ParseDNA decodes a hex-encoded dna string.
func ParseDNA(s string) (DNA, error) {
	var d DNA
	raw, err := hex.DecodeString(s)
	if err != nil {
		return DNA{}, fmt.Errorf("decode dna: %w", err)
	}
	if len(raw) != DNALength {
		return DNA{}, fmt.Errorf("dna must be %d bytes, got %d", DNALength, len(raw))
	}
	copy(d[:], raw)
	return d, nil
}

// String returns the hex encoding of the dna.
func (d DNA) String() string {
	return hex.EncodeToString(d[:])
}

// MarshalText implements encoding.TextMarshaler.
func (d DNA) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *DNA) UnmarshalText(text []byte) error {
	parsed, err := ParseDNA(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (d DNA) MarshalBinary() ([]byte, error) {
	out := make([]byte, DNALength)
	copy(out, d[:])
	return out, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (d *DNA) UnmarshalBinary(data []byte) error {
	if len(data) != DNALength {
		return fmt.Errorf("dna must be %d bytes, got %d", DNALength, len(data))
	}
	copy(d[:], data)
	return nil
}

// IDLength is the fixed width of a creature id in bytes.
const IDLength = 32

// ID is a creature's primary key: the content hash of its full encoded
// state at creation time. Immutable once assigned.
type ID [IDLength]byte

// ParseID decodes a hex-encoded creature id.
func ParseID(s string) (ID, error) {
	var id ID
	raw, err := hex.DecodeString(s)
	if err != nil {
		return ID{}, fmt.Errorf("decode id: %w", err)
	}
	if len(raw) != IDLength {
		return ID{}, fmt.Errorf("id must be %d bytes, got %d", IDLength, len(raw))
	}
	copy(id[:], raw)
	return id, nil
}

// String returns the hex encoding of the id.
func (id ID) String() string {
	return hex.EncodeToString(id[:])
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := ParseID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Creature is the registry's core entity. The id is not a field: it is
// derived from the encoded creature via DeriveID, so two byte-identical
// creatures collide on id by construction.
type Creature struct {
	DNA    DNA     `json:"dna" cbor:"dna"`
	Gender Gender  `json:"gender" cbor:"gender"`
	Owner  string  `json:"owner" cbor:"owner"`
	Price  *Amount `json:"price,omitempty" cbor:"price"`
	Name   []byte  `json:"name,omitempty" cbor:"name"`
}

// ForSale reports whether the creature has an ask price set.
func (c Creature) ForSale() bool {
	return c.Price != nil
}

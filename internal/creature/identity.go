package creature

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"
)

// canonicalEnc encodes hash preimages. Core deterministic mode guarantees
// byte-identical output for equal values, which every replica depends on
// when deriving ids and dna.
var canonicalEnc cbor.EncMode

func init() {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("cbor deterministic encoder: %v", err))
	}
	canonicalEnc = em
}

// DeriveID computes a creature's id as the blake2b-256 digest of its full
// canonical encoding. All fields participate, so any difference in dna,
// gender, owner, price, or name yields a different id.
func DeriveID(c Creature) (ID, error) {
	preimage, err := canonicalEnc.Marshal(c)
	if err != nil {
		return ID{}, fmt.Errorf("encode creature: %w", err)
	}
	return ID(blake2b.Sum256(preimage)), nil
}

// derivationPayload binds a random draw to its call position so every
// replica derives the same dna for the same historical operation.
type derivationPayload struct {
	Draw    [32]byte `cbor:"draw"`
	OpIndex uint32   `cbor:"op_index"`
	Block   uint64   `cbor:"block"`
}

// DeriveDNA digests a domain-tagged random draw together with the call
// position into a fresh 16-byte dna value.
func DeriveDNA(draw [32]byte, opIndex uint32, block uint64) (DNA, error) {
	payload, err := canonicalEnc.Marshal(derivationPayload{
		Draw:    draw,
		OpIndex: opIndex,
		Block:   block,
	})
	if err != nil {
		return DNA{}, fmt.Errorf("encode dna payload: %w", err)
	}

	h, err := blake2b.New(DNALength, nil)
	if err != nil {
		return DNA{}, fmt.Errorf("dna digest: %w", err)
	}
	h.Write(payload)

	var d DNA
	copy(d[:], h.Sum(nil))
	return d, nil
}

// GenderFromDraw selects a gender from one byte of an independently tagged
// random draw.
func GenderFromDraw(b byte) Gender {
	if b%2 == 0 {
		return GenderMale
	}
	return GenderFemale
}

// Crossover combines two parents' dna under a random mask: each bit of the
// child is inherited from parent1 where the mask bit is 1, else from
// parent2. Parents are never mutated.
func Crossover(mask DNA, parent1 DNA, parent2 DNA) DNA {
	var child DNA
	for i := range child {
		child[i] = (mask[i] & parent1[i]) | (^mask[i] & parent2[i])
	}
	return child
}

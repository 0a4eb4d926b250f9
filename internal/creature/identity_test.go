package creature

import (
	"testing"

	"pgregory.net/rapid"
)

func amount(v Amount) *Amount {
	return &v
}

func TestDeriveIDDeterministic(t *testing.T) {
	dna, err := ParseDNA("000102030405060708090a0b0c0d0e0f")
	if err != nil {
		t.Fatalf("parse dna: %v", err)
	}
	c := Creature{
		DNA:    dna,
		Gender: GenderMale,
		Owner:  "alice",
	}

	first, err := DeriveID(c)
	if err != nil {
		t.Fatalf("derive id: %v", err)
	}
	second, err := DeriveID(c)
	if err != nil {
		t.Fatalf("derive id: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical ids for identical creatures")
	}
}

func TestDeriveIDCoversAllFields(t *testing.T) {
	dna, err := ParseDNA("000102030405060708090a0b0c0d0e0f")
	if err != nil {
		t.Fatalf("parse dna: %v", err)
	}
	base := Creature{
		DNA:    dna,
		Gender: GenderMale,
		Owner:  "alice",
	}

	otherDNA := dna
	otherDNA[0] ^= 0xff

	variants := map[string]Creature{
		"dna":    {DNA: otherDNA, Gender: base.Gender, Owner: base.Owner},
		"gender": {DNA: base.DNA, Gender: GenderFemale, Owner: base.Owner},
		"owner":  {DNA: base.DNA, Gender: base.Gender, Owner: "bob"},
		"price":  {DNA: base.DNA, Gender: base.Gender, Owner: base.Owner, Price: amount(100)},
		"name":   {DNA: base.DNA, Gender: base.Gender, Owner: base.Owner, Name: []byte("Mochi")},
	}

	baseID, err := DeriveID(base)
	if err != nil {
		t.Fatalf("derive base id: %v", err)
	}

	for field, variant := range variants {
		id, err := DeriveID(variant)
		if err != nil {
			t.Fatalf("derive %s variant id: %v", field, err)
		}
		if id == baseID {
			t.Fatalf("expected %s change to alter the id", field)
		}
	}
}

func TestDeriveDNADeterministic(t *testing.T) {
	var draw [32]byte
	for i := range draw {
		draw[i] = byte(i)
	}

	first, err := DeriveDNA(draw, 3, 42)
	if err != nil {
		t.Fatalf("derive dna: %v", err)
	}
	second, err := DeriveDNA(draw, 3, 42)
	if err != nil {
		t.Fatalf("derive dna: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical dna for identical call position")
	}

	shifted, err := DeriveDNA(draw, 4, 42)
	if err != nil {
		t.Fatalf("derive dna: %v", err)
	}
	if shifted == first {
		t.Fatalf("expected op index to alter derived dna")
	}

	nextBlock, err := DeriveDNA(draw, 3, 43)
	if err != nil {
		t.Fatalf("derive dna: %v", err)
	}
	if nextBlock == first {
		t.Fatalf("expected block number to alter derived dna")
	}
}

func TestGenderFromDraw(t *testing.T) {
	if got := GenderFromDraw(0); got != GenderMale {
		t.Fatalf("expected even byte to yield male, got %v", got)
	}
	if got := GenderFromDraw(7); got != GenderFemale {
		t.Fatalf("expected odd byte to yield female, got %v", got)
	}
}

func TestCrossoverMaskSelection(t *testing.T) {
	var p1, p2, mask DNA
	for i := range p1 {
		p1[i] = 0xff
	}
	// p2 stays all zero.

	if got := Crossover(mask, p1, p2); got != p2 {
		t.Fatalf("zero mask should inherit everything from parent2, got %s", got)
	}

	for i := range mask {
		mask[i] = 0xff
	}
	if got := Crossover(mask, p1, p2); got != p1 {
		t.Fatalf("full mask should inherit everything from parent1, got %s", got)
	}
}

func TestCrossoverBitsComeFromParents(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		var mask, p1, p2 DNA
		copy(mask[:], rapid.SliceOfN(rapid.Byte(), DNALength, DNALength).Draw(rt, "mask"))
		copy(p1[:], rapid.SliceOfN(rapid.Byte(), DNALength, DNALength).Draw(rt, "p1"))
		copy(p2[:], rapid.SliceOfN(rapid.Byte(), DNALength, DNALength).Draw(rt, "p2"))

		child := Crossover(mask, p1, p2)

		for i := 0; i < DNALength; i++ {
			for bit := 0; bit < 8; bit++ {
				b := byte(1) << bit
				childBit := child[i] & b
				if childBit != p1[i]&b && childBit != p2[i]&b {
					rt.Fatalf("byte %d bit %d not inherited from either parent", i, bit)
				}
			}
		}
	})
}

package pow_test

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/pow"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

// =============================================================================

func TestSearch(t *testing.T) {
	type table struct {
		name       string
		prevProof  uint64
		difficulty uint
	}

	tt := []table{
		{name: "genesis", prevProof: 100, difficulty: 4},
		{name: "easy", prevProof: 35293, difficulty: 1},
		{name: "medium", prevProof: 7, difficulty: 3},
		{name: "zero", prevProof: 42, difficulty: 0},
	}

	t.Log("Given the need to solve the proof of work puzzle.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				t.Logf("\tTest %d:\tWhen searching with prevProof %d and difficulty %d.", testID, tst.prevProof, tst.difficulty)
				{
					proof := pow.Search(tst.prevProof, tst.difficulty, nil)

					if !pow.Valid(tst.prevProof, proof, tst.difficulty) {
						t.Fatalf("\t%s\tTest %d:\tShould find a valid proof: %d", failed, testID, proof)
					}
					t.Logf("\t%s\tTest %d:\tShould find a valid proof.", success, testID)

					if exp := referenceSearch(tst.prevProof, tst.difficulty); proof != exp {
						t.Logf("\t%s\tTest %d:\tgot: %d", failed, testID, proof)
						t.Logf("\t%s\tTest %d:\texp: %d", failed, testID, exp)
						t.Fatalf("\t%s\tTest %d:\tShould match an independent implementation.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould match an independent implementation.", success, testID)

					if again := pow.Search(tst.prevProof, tst.difficulty, nil); again != proof {
						t.Fatalf("\t%s\tTest %d:\tShould get back the same proof twice.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get back the same proof twice.", success, testID)
				}
			}

			t.Run(tst.name, f)
		}
	}
}

func TestKnownProof(t *testing.T) {
	t.Log("Given the need to match the well known genesis solution.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen mining on top of proof 100 with difficulty 4.", testID)
		{
			proof := pow.Search(100, 4, nil)
			if proof != 35293 {
				t.Logf("\t%s\tTest %d:\tgot: %d", failed, testID, proof)
				t.Logf("\t%s\tTest %d:\texp: %d", failed, testID, 35293)
				t.Fatalf("\t%s\tTest %d:\tShould get back the known proof.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould get back the known proof.", success, testID)

			if h := pow.Hash(100, proof); !strings.HasPrefix(h, "0000") {
				t.Fatalf("\t%s\tTest %d:\tShould have four leading zeros: %s", failed, testID, h)
			}
			t.Logf("\t%s\tTest %d:\tShould have four leading zeros.", success, testID)

			if pow.Valid(100, proof-1, 4) {
				t.Fatalf("\t%s\tTest %d:\tShould not accept a proof below the first solution.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould not accept a proof below the first solution.", success, testID)
		}
	}
}

func TestSearchEvents(t *testing.T) {
	t.Log("Given the need to report mining progress.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen an event handler is provided.", testID)
		{
			var events []string
			ev := func(v string, args ...any) {
				events = append(events, fmt.Sprintf(v, args...))
			}

			pow.Search(100, 2, ev)

			if len(events) < 2 {
				t.Fatalf("\t%s\tTest %d:\tShould report the start and the solution: %v", failed, testID, events)
			}
			t.Logf("\t%s\tTest %d:\tShould report the start and the solution.", success, testID)

			if !strings.Contains(events[len(events)-1], "SOLVED") {
				t.Fatalf("\t%s\tTest %d:\tShould report the solution last: %s", failed, testID, events[len(events)-1])
			}
			t.Logf("\t%s\tTest %d:\tShould report the solution last.", success, testID)
		}
	}
}

// =============================================================================

// referenceSearch is a direct, string based rendition of the puzzle.
func referenceSearch(prevProof uint64, difficulty uint) uint64 {
	target := strings.Repeat("0", int(difficulty))

	for proof := uint64(0); ; proof++ {
		sum := sha256.Sum256([]byte(fmt.Sprintf("%d%d", prevProof, proof)))
		if strings.HasPrefix(hex.EncodeToString(sum[:]), target) {
			return proof
		}
	}
}

// Package pow implements the proof of work puzzle used to mine new blocks.
// A proof is valid when the SHA-256 hash of the previous proof followed by
// the candidate proof, both written as decimal text, has the required number
// of leading zero characters in its hexadecimal form.
package pow

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// reportEvery is the number of attempts between progress events.
const reportEvery = 1_000_000

// =============================================================================

// Search performs the proof of work for the specified previous proof. It
// starts at zero and walks up until a solution is found. There is no upper
// bound and no way to cancel the search. The result is deterministic for the
// same inputs.
func Search(prevProof uint64, difficulty uint, evHandler func(v string, args ...any)) uint64 {
	ev := func(v string, args ...any) {
		if evHandler != nil {
			evHandler(v, args...)
		}
	}

	ev("pow: Search: MINING: started: prevProof[%d]: difficulty[%d]", prevProof, difficulty)

	buf := make([]byte, 0, 40)
	prefix := strconv.AppendUint(buf, prevProof, 10)
	n := len(prefix)

	var proof uint64
	for {
		if proof > 0 && proof%reportEvery == 0 {
			ev("pow: Search: MINING: attempts[%d]", proof)
		}

		guess := strconv.AppendUint(prefix[:n], proof, 10)
		hash := sha256.Sum256(guess)
		if isHashSolved(difficulty, hash) {
			ev("pow: Search: MINING: SOLVED: proof[%d]: hash[%x]", proof, hash)
			return proof
		}

		proof++
	}
}

// Valid checks if the proof solves the puzzle for the previous proof.
func Valid(prevProof uint64, proof uint64, difficulty uint) bool {
	return isHashSolved(difficulty, sum(prevProof, proof))
}

// Hash returns the hex encoded hash for the previous proof and proof pair.
func Hash(prevProof uint64, proof uint64) string {
	hash := sum(prevProof, proof)
	return hex.EncodeToString(hash[:])
}

// =============================================================================

// sum calculates the hash for the previous proof and proof pair.
func sum(prevProof uint64, proof uint64) [sha256.Size]byte {
	guess := strconv.AppendUint(nil, prevProof, 10)
	guess = strconv.AppendUint(guess, proof, 10)

	return sha256.Sum256(guess)
}

// isHashSolved checks the hash to make sure it complies with the POW rules.
// We need to match a difficulty number of 0's in the hex representation,
// which is two per zero byte and one for a byte with a zero high nibble.
func isHashSolved(difficulty uint, hash [sha256.Size]byte) bool {
	if difficulty > 2*sha256.Size {
		return false
	}

	var zeros uint
	for _, b := range hash {
		if zeros >= difficulty {
			return true
		}

		switch {
		case b == 0:
			zeros += 2
		case b < 0x10:
			return zeros+1 >= difficulty
		default:
			return zeros >= difficulty
		}
	}

	return zeros >= difficulty
}

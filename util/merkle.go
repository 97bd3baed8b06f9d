package util

import (
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

// BuildMerkleRoot computes the Bitcoin merkle root of leaves, given in wire byte order.
// A level with an odd number of nodes pairs its last node with itself.
// The root of a single leaf is the leaf, the root of no leaves is the zero hash.
func BuildMerkleRoot(leaves []chainhash.Hash) chainhash.Hash {
	if len(leaves) == 0 {
		return chainhash.Hash{}
	}

	level := make([]chainhash.Hash, len(leaves))
	copy(level, leaves)

	var concat [chainhash.HashSize * 2]byte

	for len(level) > 1 {
		if len(level)%2 == 1 {
			level = append(level, level[len(level)-1])
		}

		next := level[:len(level)/2]

		for i := 0; i < len(level); i += 2 {
			copy(concat[:chainhash.HashSize], level[i][:])
			copy(concat[chainhash.HashSize:], level[i+1][:])
			next[i/2] = Sha256d(concat[:])
		}

		level = next
	}

	return level[0]
}

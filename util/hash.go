package util

import (
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

// Sha256d is the double SHA-256 used for transaction ids, block hashes and merkle nodes.
func Sha256d(b []byte) chainhash.Hash {
	return chainhash.DoubleHashH(b)
}

package model

import (
	"github.com/bsv-blockchain/blockdecoder/chaincfg"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type blockHeaderJSON struct {
	Hash              Hash256  `json:"hash"`
	Version           uint32   `json:"version"`
	PreviousBlockHash Hash256  `json:"previous_block_hash"`
	MerkleRoot        Hash256  `json:"merkle_root"`
	Timestamp         uint32   `json:"timestamp"`
	Time              string   `json:"time"`
	Bits              ByteBlob `json:"bits"`
	Nonce             ByteBlob `json:"nonce"`
}

type transactionJSON struct {
	TxID          Hash256        `json:"txid"`
	WTxID         Hash256        `json:"wtxid"`
	Version       uint32         `json:"version"`
	Size          int            `json:"size"`
	VirtualSize   int            `json:"vsize"`
	Weight        int            `json:"weight"`
	LockTime      uint32         `json:"lock_time"`
	HasWitness    bool           `json:"has_witness"`
	IsCoinbase    bool           `json:"is_coinbase"`
	Inputs        []*TxInput     `json:"inputs"`
	Outputs       []*TxOutput    `json:"outputs"`
	WitnessStacks []WitnessStack `json:"witnesses"`
}

type blockJSON struct {
	Hash             Hash256          `json:"hash"`
	Network          chaincfg.Network `json:"network"`
	Size             uint32           `json:"size"`
	TransactionCount int              `json:"transaction_count"`
	Header           *BlockHeader     `json:"header"`
	Transactions     []*Transaction   `json:"transactions"`
}

func (bh *BlockHeader) MarshalJSON() ([]byte, error) {
	return json.Marshal(blockHeaderJSON{
		Hash:              bh.Hash(),
		Version:           bh.Version,
		PreviousBlockHash: bh.PreviousBlockHash,
		MerkleRoot:        bh.MerkleRoot,
		Timestamp:         bh.Timestamp,
		Time:              bh.Time,
		Bits:              bh.Bits,
		Nonce:             bh.Nonce,
	})
}

// MarshalJSON renders hashes in display order and scripts and witnesses as hex.
// witnesses is null for a transaction without the segwit marker.
func (tx *Transaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(transactionJSON{
		TxID:          tx.TxID(),
		WTxID:         tx.WTxID(),
		Version:       tx.Version,
		Size:          tx.Size(),
		VirtualSize:   tx.VirtualSize(),
		Weight:        tx.Weight(),
		LockTime:      tx.LockTime,
		HasWitness:    tx.HasWitness,
		IsCoinbase:    tx.IsCoinbase,
		Inputs:        tx.Inputs,
		Outputs:       tx.Outputs,
		WitnessStacks: tx.WitnessStacks,
	})
}

func (b *Block) MarshalJSON() ([]byte, error) {
	return json.Marshal(blockJSON{
		Hash:             b.Hash(),
		Network:          b.Network,
		Size:             b.DeclaredSize,
		TransactionCount: len(b.Transactions),
		Header:           b.Header,
		Transactions:     b.Transactions,
	})
}

package model

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/bsv-blockchain/blockdecoder/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Blocks taken from a Bitcoin SV regtest chain.
var (
	block1       = "0000002006226e46111a0b59caaf126043eb5bbf28c34f3a5e332a1fc7b2b73cf188910f1633819a69afbd7ce1f1a01c3b786fcbb023274f3b15172b24feadd4c80e6c6a8b491267ffff7f20040000000102000000010000000000000000000000000000000000000000000000000000000000000000ffffffff03510101ffffffff0100f2052a01000000232103656065e6886ca1e947de3471c9e723673ab6ba34724476417fa9fcef8bafa604ac00000000"
	block1Header = block1[:160]

	// block 34424, a coinbase and three P2PKH spends
	blockBytes, _ = hex.DecodeString("00000020a324e51a37547c5957868beb9f97d34f9b32ae96427513f4fe79ab3ee30f271a8acb3554ad71fbdc6070e6358ea9048c05bc83f1b962cf24295d9d07583d81698b5e3b67ffff7f20010000000402000000010000000000000000000000000000000000000000000000000000000000000000ffffffff06037886000101ffffffff01a82f000000000000232103a920b957d6d2268812e02dfd8799ed2a867e2df86c4f8d1eaecb4c35266692b5ac000000000200000001afb41c129af22ca5c05cc677993e7d8e040b2610baaca5778e7f71549fa74b89010000006b483045022100914fac419890679f1f4ba2efe22ac9721416283f4fd150f0af169026056d2f780220109a8787d494d9aa71ac0198651458f4930cb998ed6029c0221a42e2044470334121030cfa8aaa20d16e6c1f8e42ca3a0a80c6b9496d2fa39182d7ea9a0c44298c6877feffffff0200e1f505000000001976a91462e907b15cbf27d5425399ebf6f0fb50ebb88f1888ac80d7b0c4000000001976a91432dd05fe95dbc4172cc6b8335f180cdd987f278588ac778600000200000001a11489634e961ebed5143033c539675cb0682fb30d4b42e2b3ff3b71f01f359b0000000049483045022100f051603a90395cd56ab752a1124838d18d1f56d5382889c22aaf298ee6b0cc89022046a23b5d21f45bba54bf3e33942c9305c3507f0da3aa16cc2ca869d3377ca7b441feffffff0200e1f505000000001976a91462e907b15cbf27d5425399ebf6f0fb50ebb88f1888ac00021024010000001976a91442f37d99df083ec79802c38e00a21fe6b1f4583588ac778600000200000001dc1011b70ec59e1e0d24d15018fae10e0428d03ced79d2bcdf855ecf3b4f1ff700000000494830450221008de2576427d3cdada7037dcc739391ed5a732b3b02fe727942d703bc2c9c4abf02201b2a563f313914727523f81890566a25bb760b21d704c8a5747b5a9847fb450e41feffffff0200021024010000001976a9144fb3e816665c1daf8130ba9bc446b29e15b1f83788ac00e1f505000000001976a91462e907b15cbf27d5425399ebf6f0fb50ebb88f1888ac77860000")
)

func TestNewBlockHeaderFromBytes(t *testing.T) {
	t.Run("block 1 from bytes", func(t *testing.T) {
		blockHeaderBytes, _ := hex.DecodeString(block1Header)
		blockHeader, err := NewBlockHeaderFromBytes(blockHeaderBytes)
		require.NoError(t, err)

		assert.Equal(t, uint32(0x20000000), blockHeader.Version)
		assert.Equal(t, "0f9188f13cb7b2c71f2a335e3a4fc328bf5beb436012afca590b1a11466e2206", blockHeader.PreviousBlockHash.String())
		assert.Equal(t, "6a6c0ec8d4adfe242b17153b4f2723b0cb6f783b1ca0f1e17cbdaf699a813316", blockHeader.MerkleRoot.String())
		assert.Equal(t, uint32(1729251723), blockHeader.Timestamp)
		assert.Equal(t, "Fri, 18 Oct 2024 11:42:03 +0000", blockHeader.Time)
		assert.Equal(t, "ffff7f20", blockHeader.Bits.String())
		assert.Equal(t, "04000000", blockHeader.Nonce.String())
	})

	t.Run("block 1 from string", func(t *testing.T) {
		blockHeader, err := NewBlockHeaderFromString(block1Header)
		require.NoError(t, err)

		assert.Equal(t, uint32(0x20000000), blockHeader.Version)
		assert.Equal(t, "4c74e0128fef1a01469380c05b215afaf4cfe51183461f4a7996a84295b6925a", blockHeader.Hash().String())
	})

	t.Run("block 1 bytes", func(t *testing.T) {
		blockHeaderBytes, _ := hex.DecodeString(block1Header)
		blockHeader, err := NewBlockHeaderFromBytes(blockHeaderBytes)
		require.NoError(t, err)

		assert.Equal(t, blockHeaderBytes, blockHeader.Bytes())
	})

	t.Run("block hash - block 1", func(t *testing.T) {
		hashPrevBlock, _ := NewHash256FromStr("0f9188f13cb7b2c71f2a335e3a4fc328bf5beb436012afca590b1a11466e2206")
		hashMerkleRoot, _ := NewHash256FromStr("6a6c0ec8d4adfe242b17153b4f2723b0cb6f783b1ca0f1e17cbdaf699a813316")
		blockHeader := &BlockHeader{
			Version:           0x20000000,
			PreviousBlockHash: hashPrevBlock,
			MerkleRoot:        hashMerkleRoot,
			Timestamp:         1729251723,
			Bits:              ByteBlob{0xff, 0xff, 0x7f, 0x20},
			Nonce:             ByteBlob{0x04, 0x00, 0x00, 0x00},
		}

		assert.Equal(t, "4c74e0128fef1a01469380c05b215afaf4cfe51183461f4a7996a84295b6925a", blockHeader.Hash().String())
	})

	t.Run("block 34424", func(t *testing.T) {
		blockHeader, err := NewBlockHeaderFromBytes(blockBytes[:BlockHeaderSize])
		require.NoError(t, err)

		assert.Equal(t, "611fd97881064670555ac01db182c46134e770aa47d1a794b7df2767e42f3f89", blockHeader.Hash().String())
		assert.Equal(t, "Mon, 18 Nov 2024 15:34:35 +0000", blockHeader.Time)
		assert.Equal(t, "01000000", blockHeader.Nonce.String())
		assert.Equal(t, blockBytes[:BlockHeaderSize], blockHeader.Bytes())
	})

	t.Run("fields do not alias the input", func(t *testing.T) {
		blockHeaderBytes, _ := hex.DecodeString(block1Header)
		blockHeader, err := NewBlockHeaderFromBytes(blockHeaderBytes)
		require.NoError(t, err)

		blockHeaderBytes[72] = 0x00
		blockHeaderBytes[76] = 0xff

		assert.Equal(t, "ffff7f20", blockHeader.Bits.String())
		assert.Equal(t, "04000000", blockHeader.Nonce.String())
	})
}

func TestNewBlockHeaderFromBytes_Errors(t *testing.T) {
	blockHeaderBytes, _ := hex.DecodeString(block1Header)

	t.Run("short", func(t *testing.T) {
		_, err := NewBlockHeaderFromBytes(blockHeaderBytes[:79])
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrInsufficientInput))

		offset, ok := errors.Offset(err)
		require.True(t, ok)
		assert.Equal(t, 0, offset)
	})

	t.Run("long", func(t *testing.T) {
		_, err := NewBlockHeaderFromBytes(append(blockHeaderBytes, 0x00))
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrMalformed))

		offset, ok := errors.Offset(err)
		require.True(t, ok)
		assert.Equal(t, BlockHeaderSize, offset)
	})

	t.Run("bad hex", func(t *testing.T) {
		_, err := NewBlockHeaderFromString("zz")
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
	})
}

func TestReadBlockHeader(t *testing.T) {
	blockHeader, rest, err := ReadBlockHeader(blockBytes)
	require.NoError(t, err)

	assert.Equal(t, "611fd97881064670555ac01db182c46134e770aa47d1a794b7df2767e42f3f89", blockHeader.Hash().String())
	assert.Equal(t, blockBytes[BlockHeaderSize:], rest)
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "Thu, 01 Jan 1970 00:00:00 +0000", FormatTimestamp(0))
	assert.Equal(t, "Sat, 03 Jan 2009 18:15:05 +0000", FormatTimestamp(1231006505))
	assert.Equal(t, "Sun, 07 Feb 2106 06:28:15 +0000", FormatTimestamp(0xffffffff))
}

func TestBlockHeader_Target(t *testing.T) {
	blockHeader, err := NewBlockHeaderFromString(block1Header)
	require.NoError(t, err)

	expected := new(big.Int).Lsh(big.NewInt(0x7fffff), 8*(0x20-3))
	assert.Equal(t, 0, expected.Cmp(blockHeader.Target()))
}

func TestBlockHeader_HasMetTargetDifficulty(t *testing.T) {
	t.Run("regtest block", func(t *testing.T) {
		blockHeader, err := NewBlockHeaderFromBytes(blockBytes[:BlockHeaderSize])
		require.NoError(t, err)

		ok, hash, err := blockHeader.HasMetTargetDifficulty()
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "611fd97881064670555ac01db182c46134e770aa47d1a794b7df2767e42f3f89", hash.String())
	})

	t.Run("mainnet difficulty not met", func(t *testing.T) {
		blockHeader, err := NewBlockHeaderFromString(block1Header)
		require.NoError(t, err)

		blockHeader.Bits = ByteBlob{0xff, 0xff, 0x00, 0x1d}

		ok, hash, err := blockHeader.HasMetTargetDifficulty()
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, "07dca2ef602904c03f89c8a6837f118d2305b1e5f432a3ce6864d47236ff4acc", hash.String())
	})

	t.Run("invalid bits", func(t *testing.T) {
		blockHeader, err := NewBlockHeaderFromString(block1Header)
		require.NoError(t, err)

		blockHeader.Bits = ByteBlob{0x00, 0x00, 0x00, 0x00}

		_, _, err = blockHeader.HasMetTargetDifficulty()
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrBlockInvalid))
	})
}

func TestBlockHeader_MarshalJSON(t *testing.T) {
	blockHeader, err := NewBlockHeaderFromString(block1Header)
	require.NoError(t, err)

	b, err := json.Marshal(blockHeader)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"hash": "4c74e0128fef1a01469380c05b215afaf4cfe51183461f4a7996a84295b6925a",
		"version": 536870912,
		"previous_block_hash": "0f9188f13cb7b2c71f2a335e3a4fc328bf5beb436012afca590b1a11466e2206",
		"merkle_root": "6a6c0ec8d4adfe242b17153b4f2723b0cb6f783b1ca0f1e17cbdaf699a813316",
		"timestamp": 1729251723,
		"time": "Fri, 18 Oct 2024 11:42:03 +0000",
		"bits": "ffff7f20",
		"nonce": "04000000"
	}`, string(b))
}

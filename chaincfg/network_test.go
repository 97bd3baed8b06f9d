package chaincfg

import (
	"encoding/json"
	"testing"

	"github.com/bsv-blockchain/blockdecoder/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetworkFromMagic(t *testing.T) {
	tests := []struct {
		magic    uint32
		expected Network
		name     string
	}{
		{0xD9B4BEF9, MainNet, "mainnet"},
		{0x0709110B, TestNet, "testnet"},
		{0xDAB5BFFA, RegTest, "regtest"},
		{0xFEB4BEF9, NameCoin, "namecoin"},
		{0xE8F3E1E3, UnknownNet, "unknown"},
		{0, UnknownNet, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			network := NetworkFromMagic(tt.magic)
			assert.Equal(t, tt.expected, network)
			assert.Equal(t, tt.name, network.String())
		})
	}
}

func TestNetworkMagic(t *testing.T) {
	for _, n := range []Network{MainNet, TestNet, RegTest, NameCoin} {
		assert.Equal(t, n, NetworkFromMagic(n.Magic()))
	}

	assert.Equal(t, uint32(0), UnknownNet.Magic())
}

func TestNetworkFromName(t *testing.T) {
	n, err := NetworkFromName("mainnet")
	require.NoError(t, err)
	assert.Equal(t, MainNet, n)

	n, err = NetworkFromName(" TestNet3 ")
	require.NoError(t, err)
	assert.Equal(t, TestNet, n)

	n, err = NetworkFromName("regtest")
	require.NoError(t, err)
	assert.Equal(t, RegTest, n)

	_, err = NetworkFromName("stn")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConfiguration))
}

func TestNetworkString(t *testing.T) {
	assert.Equal(t, "Network(42)", Network(42).String())
}

func TestNetworkJSON(t *testing.T) {
	b, err := json.Marshal(map[string]Network{"chain": RegTest})
	require.NoError(t, err)
	assert.JSONEq(t, `{"chain":"regtest"}`, string(b))

	var decoded map[string]Network
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, RegTest, decoded["chain"])

	assert.Error(t, json.Unmarshal([]byte(`{"chain":"moon"}`), &decoded))
}

// Package chaincfg identifies the network a block belongs to from the magic
// value that precedes it in block storage files.
package chaincfg

import (
	"fmt"
	"strings"

	"github.com/bsv-blockchain/blockdecoder/errors"
)

// Network is the chain a block was recorded for.
type Network uint8

const (
	UnknownNet Network = iota
	MainNet
	TestNet
	RegTest
	NameCoin
)

// Magic values as they appear, little endian, at the start of each block record
// in blk*.dat files.
const (
	MainNetMagic  uint32 = 0xD9B4BEF9
	TestNetMagic  uint32 = 0x0709110B
	RegTestMagic  uint32 = 0xDAB5BFFA
	NameCoinMagic uint32 = 0xFEB4BEF9
)

var networkNames = map[Network]string{
	UnknownNet: "unknown",
	MainNet:    "mainnet",
	TestNet:    "testnet",
	RegTest:    "regtest",
	NameCoin:   "namecoin",
}

var networkMagics = map[uint32]Network{
	MainNetMagic:  MainNet,
	TestNetMagic:  TestNet,
	RegTestMagic:  RegTest,
	NameCoinMagic: NameCoin,
}

// NetworkFromMagic never fails; an unrecognised magic yields UnknownNet.
func NetworkFromMagic(magic uint32) Network {
	if n, ok := networkMagics[magic]; ok {
		return n
	}

	return UnknownNet
}

// NetworkFromName parses a configured network name, case insensitively.
// "testnet3" is accepted as an alias of testnet.
func NetworkFromName(name string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mainnet", "main":
		return MainNet, nil
	case "testnet", "testnet3", "test":
		return TestNet, nil
	case "regtest":
		return RegTest, nil
	case "namecoin":
		return NameCoin, nil
	case "unknown":
		return UnknownNet, nil
	default:
		return UnknownNet, errors.NewConfigurationError("unknown network %s", name)
	}
}

func (n Network) String() string {
	if name, ok := networkNames[n]; ok {
		return name
	}

	return fmt.Sprintf("Network(%d)", uint8(n))
}

// Magic returns the storage magic of n, or 0 for UnknownNet.
func (n Network) Magic() uint32 {
	for magic, network := range networkMagics {
		if network == n {
			return magic
		}
	}

	return 0
}

func (n Network) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

func (n *Network) UnmarshalText(text []byte) error {
	network, err := NetworkFromName(string(text))
	if err != nil {
		return err
	}

	*n = network

	return nil
}

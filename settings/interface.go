package settings

import (
	"time"

	"github.com/bsv-blockchain/blockdecoder/chaincfg"
)

type DecoderSettings struct {
	// Network labels unframed blocks, framed blocks are labelled from their magic.
	Network          chaincfg.Network
	FramedBlocks     bool
	Concurrency      int
	CacheEnabled     bool
	CacheTTL         time.Duration
	CacheSize        int
	VerifyMerkleRoot bool
}

type TracingSettings struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
	SampleRate  float64
}

type Settings struct {
	LogLevel          string
	LoggerType        string
	PrometheusEnabled bool
	Decoder           DecoderSettings
	Tracing           TracingSettings
}

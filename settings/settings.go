package settings

import (
	"runtime"
	"time"

	"github.com/bsv-blockchain/blockdecoder/chaincfg"
)

func NewSettings() *Settings {
	network, err := chaincfg.NetworkFromName(getString("decoder_network", "mainnet"))
	if err != nil {
		panic(err)
	}

	return &Settings{
		LogLevel:          getString("logLevel", "INFO"),
		LoggerType:        getString("logger_type", "zerolog"),
		PrometheusEnabled: getBool("prometheus_enabled", true),
		Decoder: DecoderSettings{
			Network:          network,
			FramedBlocks:     getBool("decoder_framedBlocks", false),
			Concurrency:      getInt("decoder_concurrency", runtime.NumCPU()),
			CacheEnabled:     getBool("decoder_cacheEnabled", false),
			CacheTTL:         getDuration("decoder_cacheTTL", 10*time.Minute),
			CacheSize:        getInt("decoder_cacheSize", 1000),
			VerifyMerkleRoot: getBool("decoder_verifyMerkleRoot", true),
		},
		Tracing: TracingSettings{
			Enabled:     getBool("tracing_enabled", false),
			Endpoint:    getString("tracing_endpoint", "localhost:4318"),
			ServiceName: getString("tracing_serviceName", "blockdecoder"),
			SampleRate:  getFloat64("tracing_sampleRate", 0.01),
		},
	}
}

package decoder

import (
	"sync"

	"github.com/bsv-blockchain/blockdecoder/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	prometheusDecoderBlocks          prometheus.Counter
	prometheusDecoderTransactions    prometheus.Counter
	prometheusDecoderErrors          *prometheus.CounterVec
	prometheusDecoderDecodeBlock     prometheus.Histogram
	prometheusDecoderDecodeTx        prometheus.Histogram
	prometheusDecoderDecodeBlockFile prometheus.Histogram
	prometheusDecoderBlockSize       prometheus.Histogram
	prometheusDecoderTxSize          prometheus.Histogram
	prometheusDecoderCachedBlocks    prometheus.Gauge
)

var (
	prometheusMetricsInitOnce sync.Once
)

// initPrometheusMetrics registers the decoder metrics once per process. When
// enabled is false on the first call the metrics are created unregistered, so
// the decoder can keep updating them without exposing anything.
func initPrometheusMetrics(enabled bool) {
	prometheusMetricsInitOnce.Do(func() {
		registerer := prometheus.DefaultRegisterer
		if !enabled {
			registerer = nil
		}

		_initPrometheusMetrics(promauto.With(registerer))
	})
}

func _initPrometheusMetrics(factory promauto.Factory) {
	prometheusDecoderBlocks = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: "blockdecoder",
			Subsystem: "decoder",
			Name:      "blocks",
			Help:      "Number of blocks decoded",
		},
	)

	prometheusDecoderTransactions = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: "blockdecoder",
			Subsystem: "decoder",
			Name:      "transactions",
			Help:      "Number of transactions decoded, including those inside blocks",
		},
	)

	prometheusDecoderErrors = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "blockdecoder",
			Subsystem: "decoder",
			Name:      "errors",
			Help:      "Number of failed decodes by input kind and error category",
		},
		[]string{"kind", "category"},
	)

	prometheusDecoderDecodeBlock = factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "blockdecoder",
			Subsystem: "decoder",
			Name:      "decode_block",
			Help:      "Histogram of block decode duration",
			Buckets:   util.MetricsBucketsMilliSeconds,
		},
	)

	prometheusDecoderDecodeTx = factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "blockdecoder",
			Subsystem: "decoder",
			Name:      "decode_transaction",
			Help:      "Histogram of transaction decode duration",
			Buckets:   util.MetricsBucketsMicroSeconds,
		},
	)

	prometheusDecoderDecodeBlockFile = factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "blockdecoder",
			Subsystem: "decoder",
			Name:      "decode_block_file",
			Help:      "Histogram of block file decode duration",
			Buckets:   util.MetricsBucketsMilliSeconds,
		},
	)

	prometheusDecoderBlockSize = factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "blockdecoder",
			Subsystem: "decoder",
			Name:      "block_size",
			Help:      "Histogram of decoded block sizes in bytes",
			Buckets:   util.MetricsBucketsBlockSize,
		},
	)

	prometheusDecoderTxSize = factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "blockdecoder",
			Subsystem: "decoder",
			Name:      "transaction_size",
			Help:      "Histogram of decoded transaction sizes in bytes",
			Buckets:   util.MetricsBucketsSize,
		},
	)

	prometheusDecoderCachedBlocks = factory.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "blockdecoder",
			Subsystem: "decoder",
			Name:      "cached_blocks",
			Help:      "Number of verified blocks held in the decoder cache",
		},
	)
}

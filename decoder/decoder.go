// Package decoder is the service layer over the model decoders. It adds
// configuration, parallel batch decoding, merkle verification, a cache of
// verified blocks, metrics and tracing.
package decoder

import (
	"context"
	"strconv"

	"github.com/bsv-blockchain/blockdecoder/chaincfg"
	"github.com/bsv-blockchain/blockdecoder/errors"
	"github.com/bsv-blockchain/blockdecoder/model"
	"github.com/bsv-blockchain/blockdecoder/settings"
	"github.com/bsv-blockchain/blockdecoder/tracing"
	"github.com/bsv-blockchain/blockdecoder/ulogger"
	"github.com/bsv-blockchain/blockdecoder/util"
	"github.com/ordishs/gocore"
	"golang.org/x/sync/errgroup"
)

type Decoder struct {
	logger           ulogger.Logger
	settings         *settings.Settings
	network          chaincfg.Network
	framed           bool
	concurrency      int
	verifyMerkleRoot bool
	cache            *blockCache
	stats            *gocore.Stat
}

type Option func(*Decoder)

// WithNetwork sets the network recorded on unframed blocks.
func WithNetwork(network chaincfg.Network) Option {
	return func(d *Decoder) {
		d.network = network
	}
}

// WithFramedBlocks selects whether DecodeBlock expects magic | size | block records.
func WithFramedBlocks(framed bool) Option {
	return func(d *Decoder) {
		d.framed = framed
	}
}

func WithConcurrency(concurrency int) Option {
	return func(d *Decoder) {
		d.concurrency = concurrency
	}
}

func WithMerkleVerification(verify bool) Option {
	return func(d *Decoder) {
		d.verifyMerkleRoot = verify
	}
}

// New returns a decoder configured from tSettings, with opts applied on top.
func New(logger ulogger.Logger, tSettings *settings.Settings, opts ...Option) *Decoder {
	initPrometheusMetrics(tSettings.PrometheusEnabled)

	d := &Decoder{
		logger:           logger,
		settings:         tSettings,
		network:          tSettings.Decoder.Network,
		framed:           tSettings.Decoder.FramedBlocks,
		concurrency:      tSettings.Decoder.Concurrency,
		verifyMerkleRoot: tSettings.Decoder.VerifyMerkleRoot,
		stats:            gocore.NewStat("decoder"),
	}

	for _, opt := range opts {
		opt(d)
	}

	if tSettings.Decoder.CacheEnabled {
		if d.verifyMerkleRoot {
			d.cache = newBlockCache(tSettings.Decoder.CacheTTL, tSettings.Decoder.CacheSize)
			logger.Infof("[Decoder] caching up to %d verified blocks for %s", tSettings.Decoder.CacheSize, tSettings.Decoder.CacheTTL)
		} else {
			logger.Warnf("[Decoder] block cache disabled, only merkle verified blocks are cached")
		}
	}

	return d
}

// NewFromSettings is New with a logger built from the logLevel and logger_type settings.
func NewFromSettings(tSettings *settings.Settings, opts ...Option) *Decoder {
	logger := ulogger.New("decoder",
		ulogger.WithLevel(tSettings.LogLevel),
		ulogger.WithLoggerType(tSettings.LoggerType),
	)

	return New(logger, tSettings, opts...)
}

// Stop releases the cache expiry goroutine.
func (d *Decoder) Stop() {
	if d.cache != nil {
		d.cache.stop()
	}
}

// DecodeBlock decodes one block, framed or not depending on configuration. With
// verification enabled the merkle root is checked and repeated txids are rejected.
func (d *Decoder) DecodeBlock(ctx context.Context, raw []byte) (block *model.Block, err error) {
	ctx, _, deferFn := tracing.StartTracing(ctx, "DecodeBlock",
		tracing.WithParentStat(d.stats),
		tracing.WithHistogram(prometheusDecoderDecodeBlock),
		tracing.WithTag("framed", strconv.FormatBool(d.framed)),
	)

	defer func() {
		deferFn(err)
	}()

	if err = ctx.Err(); err != nil {
		return nil, errors.NewContextCanceledError("[DecodeBlock] context done", err)
	}

	if d.framed {
		block, err = model.NewFramedBlockFromBytes(raw)
	} else {
		block, err = model.NewBlockFromBytes(raw, d.network)
	}

	if err != nil {
		return nil, d.decodeFailed("block", err)
	}

	if err = d.blockDecoded(block, len(raw)); err != nil {
		return nil, err
	}

	return block, nil
}

// blockDecoded verifies, counts and caches a freshly decoded block.
func (d *Decoder) blockDecoded(block *model.Block, size int) error {
	if d.verifyMerkleRoot {
		if err := block.CheckMerkleRoot(); err != nil {
			return d.decodeFailed("block", err)
		}

		// repeating the last transactions of a level keeps the merkle root
		if err := block.CheckDuplicateTransactions(); err != nil {
			return d.decodeFailed("block", err)
		}
	}

	prometheusDecoderBlocks.Inc()
	prometheusDecoderTransactions.Add(float64(len(block.Transactions)))
	prometheusDecoderBlockSize.Observe(float64(size))

	if d.cache != nil {
		d.cache.set(block)
	}

	d.logger.Debugf("[DecodeBlock] decoded block %s on %s with %d transactions, %d bytes", block.Hash(), block.Network, len(block.Transactions), size)

	if d.logger.LogLevel() == int(gocore.DEBUG) {
		d.logger.Debugf("[DecodeBlock] %s", block.Dump())
	}

	return nil
}

// DecodeTransaction decodes one transaction that must occupy all of raw.
func (d *Decoder) DecodeTransaction(ctx context.Context, raw []byte) (tx *model.Transaction, err error) {
	ctx, _, deferFn := tracing.StartTracing(ctx, "DecodeTransaction",
		tracing.WithParentStat(d.stats),
		tracing.WithHistogram(prometheusDecoderDecodeTx),
	)

	defer func() {
		deferFn(err)
	}()

	if err = ctx.Err(); err != nil {
		return nil, errors.NewContextCanceledError("[DecodeTransaction] context done", err)
	}

	if tx, err = model.NewTransactionFromBytes(raw); err != nil {
		return nil, d.decodeFailed("transaction", err)
	}

	prometheusDecoderTransactions.Inc()
	prometheusDecoderTxSize.Observe(float64(len(raw)))

	return tx, nil
}

// DecodeBlocks decodes raws in parallel. The result is in input order. The first
// failure cancels the remaining work and is returned with the index of the block.
func (d *Decoder) DecodeBlocks(ctx context.Context, raws [][]byte) ([]*model.Block, error) {
	blocks := make([]*model.Block, len(raws))

	g, gCtx := errgroup.WithContext(ctx)
	util.SafeSetLimit(g, d.concurrency)

	for i, raw := range raws {
		if gCtx.Err() != nil {
			break
		}

		g.Go(func() error {
			block, err := d.DecodeBlock(gCtx, raw)
			if err != nil {
				return errors.WithOffset(err, "[DecodeBlocks] block %d", i)
			}

			blocks[i] = block

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// cancelled before any work failed
	if err := ctx.Err(); err != nil {
		return nil, errors.NewContextCanceledError("[DecodeBlocks] context done", err)
	}

	return blocks, nil
}

// DecodeTransactions is DecodeBlocks for standalone transactions.
func (d *Decoder) DecodeTransactions(ctx context.Context, raws [][]byte) ([]*model.Transaction, error) {
	txs := make([]*model.Transaction, len(raws))

	g, gCtx := errgroup.WithContext(ctx)
	util.SafeSetLimit(g, d.concurrency)

	for i, raw := range raws {
		if gCtx.Err() != nil {
			break
		}

		g.Go(func() error {
			tx, err := d.DecodeTransaction(gCtx, raw)
			if err != nil {
				return errors.WithOffset(err, "[DecodeTransactions] transaction %d", i)
			}

			txs[i] = tx

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.NewContextCanceledError("[DecodeTransactions] context done", err)
	}

	return txs, nil
}

// DecodeBlockFile decodes every framed record of a blk*.dat file image, in
// file order, regardless of the framing setting.
func (d *Decoder) DecodeBlockFile(ctx context.Context, data []byte) (blocks []*model.Block, err error) {
	ctx, _, deferFn := tracing.StartTracing(ctx, "DecodeBlockFile",
		tracing.WithParentStat(d.stats),
		tracing.WithHistogram(prometheusDecoderDecodeBlockFile),
		tracing.WithLogMessage(d.logger, "[DecodeBlockFile] decoding %d bytes", len(data)),
	)

	defer func() {
		deferFn(err)
	}()

	if err = ctx.Err(); err != nil {
		return nil, errors.NewContextCanceledError("[DecodeBlockFile] context done", err)
	}

	if blocks, err = model.ReadBlockFile(data); err != nil {
		return nil, d.decodeFailed("block_file", err)
	}

	for i, block := range blocks {
		if err = d.blockDecoded(block, int(block.DeclaredSize)); err != nil {
			return nil, errors.WithOffset(err, "[DecodeBlockFile] record %d", i)
		}
	}

	return blocks, nil
}

// GetBlock returns a previously decoded and verified block from the cache.
func (d *Decoder) GetBlock(hash model.Hash256) (*model.Block, bool) {
	if d.cache == nil {
		return nil, false
	}

	return d.cache.get(hash)
}

func (d *Decoder) decodeFailed(kind string, err error) error {
	prometheusDecoderErrors.WithLabelValues(kind, errors.GetErrorCategory(err)).Inc()

	if offset, ok := errors.Offset(err); ok {
		d.logger.Debugf("[Decoder] failed to decode %s at offset %d: %v", kind, offset, err)
	} else {
		d.logger.Debugf("[Decoder] failed to decode %s: %v", kind, err)
	}

	return err
}

package lang

import (
	"bytes"
	"context"
	"encoding/gob"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// globalCache stores compiled rolls keyed by (source_hash ^ options_hash).
// A compiled Roll is immutable, so one cached instance serves all callers.
var globalCache sync.Map

// cacheState guards one cache slot so each source compiles exactly once
// even under concurrent first use.
type cacheState struct {
	once sync.Once
	roll *Roll
	err  error
}

// hashConfig encodes the cache-relevant configuration using gob and hashes
// it with xxh3.
func hashConfig(cfg config) uint64 {
	var buf bytes.Buffer

	enc := gob.NewEncoder(&buf)

	_ = enc.Encode(cfg.maxDepth)

	return xxh3.Hash(buf.Bytes())
}

// Obtain returns the compiled roll for source, compiling it on first use and
// serving the cached instance thereafter. Options that cannot participate in
// the cache key (a custom roller or logger) bypass the cache and compile
// fresh.
func Obtain(ctx context.Context, source string, opts ...Option) (*Roll, error) {
	var cfg config

	applyDefaults(&cfg)
	applyOptions(&cfg, opts...)

	if cfg.nocache {
		cfg.logger.TraceContext(
			ctx,
			"cache bypass",
			slog.Int("max_depth", cfg.maxDepth),
		)

		return CompileString(ctx, source, opts...)
	}

	sourceHash := xxh3.Hash([]byte(source))
	cfgHash := hashConfig(cfg)
	cacheKey := strconv.FormatUint(sourceHash^cfgHash, 36)

	entry := new(cacheState)
	value, cacheHit := globalCache.LoadOrStore(cacheKey, entry)

	slot, ok := value.(*cacheState)
	if !ok {
		return nil, NewError("invalid entry type in compile cache").With(
			slog.String("cache_key", cacheKey),
		)
	}

	cfg.logger.TraceContext(
		ctx,
		"cache lookup",
		slog.String("source_hash", strconv.FormatUint(sourceHash, 16)),
		slog.String("config_hash", strconv.FormatUint(cfgHash, 16)),
		slog.Bool("cache_hit", cacheHit),
	)

	slot.once.Do(func() {
		roll, err := CompileString(ctx, source, opts...)
		if err != nil {
			slot.err = WrapError(err).With(
				slog.Int("source_length", len(source)),
			)

			return
		}

		slot.roll = roll
	})

	return slot.roll, slot.err
}

// RollReader reads one dice expression from r, compiles it through the
// cache, and invokes it once. The reader is wrapped with async read-ahead
// so input is pre-fetched while earlier chunks are consumed.
func RollReader(
	ctx context.Context,
	r io.Reader,
	bindings Bindings,
	opts ...InvokeOption,
) (Value, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return Value{}, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	source := string(bytes.TrimSpace(data))

	roll, err := Obtain(ctx, source)
	if err != nil {
		return Value{}, err
	}

	return roll.Invoke(ctx, bindings, opts...)
}

// ClearCache removes all cached compiled rolls. This is primarily useful
// for testing or when memory needs to be reclaimed.
func ClearCache() {
	globalCache = sync.Map{}
}

package uigrad

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/uigrad/internal/cache"
)

// ErrUnsupportedMaterial is reported when a base material lacks one of the
// render-state properties a pooled variant must set.
var ErrUnsupportedMaterial = errors.New("uigrad: material does not support render-state variants")

// variantProps are the float properties every poolable base must declare.
var variantProps = [...]string{PropCullMode, PropZTestMode, PropUseUIFog}

// VariantKey identifies one render-state variant of a base material.
// Two keys are equal when all four fields are equal.
type VariantKey struct {
	Base         uint64 // Material.ID of the base material
	Cull         gputypes.CullMode
	DepthCompare gputypes.CompareFunction
	Fog          bool
}

// Label returns the human-readable name given to the variant of a base
// material called baseName.
func (k VariantKey) Label(baseName string) string {
	return fmt.Sprintf("Cull Mode:%s, Compare Function:%s, Use Fog:%d (%s)",
		k.Cull, k.DepthCompare, fogValue(k.Fog), baseName)
}

func fogValue(fog bool) int {
	if fog {
		return 1
	}
	return 0
}

// PoolOption configures a MaterialPool during creation.
type PoolOption func(*poolOptions)

type poolOptions struct {
	logger func() *slog.Logger
	quiet  func() bool
}

func defaultPoolOptions() poolOptions {
	return poolOptions{
		logger: Logger,
		quiet:  BatchMode,
	}
}

// WithPoolLogger makes the pool log to l instead of the package logger.
func WithPoolLogger(l *slog.Logger) PoolOption {
	return func(o *poolOptions) {
		if l == nil {
			l = newNopLogger()
		}
		o.logger = func() *slog.Logger { return l }
	}
}

// WithBatchMode fixes whether the pool suppresses diagnostics, overriding
// the process-wide SetBatchMode setting.
func WithBatchMode(enabled bool) PoolOption {
	return func(o *poolOptions) {
		o.quiet = func() bool { return enabled }
	}
}

// MaterialPool shares render-state variants of base materials. Every
// Acquire of an equal VariantKey returns the same *Material; the variant is
// destroyed when the last holder releases it.
//
// The pool owns every variant it creates: callers must not Destroy them and
// must call Release exactly once per successful Acquire.
//
// MaterialPool is safe for concurrent use.
type MaterialPool struct {
	table *cache.Table[VariantKey, *Material]
	opts  poolOptions
}

// NewMaterialPool creates an empty pool.
func NewMaterialPool(opts ...PoolOption) *MaterialPool {
	o := defaultPoolOptions()
	for _, opt := range opts {
		opt(&o)
	}
	p := &MaterialPool{opts: o}
	p.table = cache.New(func(key VariantKey, m *Material) {
		p.opts.logger().Debug("uigrad: destroying material variant",
			slog.String("name", m.Name()), slog.Uint64("base", key.Base))
		m.Destroy()
	})
	return p
}

// Acquire returns the shared variant of base with the given render state,
// creating it on first use.
//
// If base does not declare _CullMode, _ZTestMode and _UseUIFog as float
// properties, no variant is created: a warning is logged (unless in batch
// mode) and base itself is returned so rendering can continue. Releasing
// that fallback is a no-op. A nil base returns nil.
func (p *MaterialPool) Acquire(base *Material, cull gputypes.CullMode, depth gputypes.CompareFunction, fog bool) *Material {
	if base == nil {
		return nil
	}

	key := VariantKey{Base: base.ID(), Cull: cull, DepthCompare: depth, Fog: fog}
	m, created, err := p.table.Acquire(key, func() (*Material, error) {
		return newVariant(base, key)
	})
	if err != nil {
		if !p.opts.quiet() {
			p.opts.logger().Warn("uigrad: using base material without render-state variant",
				slog.String("material", base.Name()), slog.Any("err", err))
		}
		return base
	}
	if created {
		p.opts.logger().Debug("uigrad: created material variant", slog.String("name", m.Name()))
	}
	return m
}

// newVariant clones base and applies the render state in key.
func newVariant(base *Material, key VariantKey) (*Material, error) {
	props := base.Properties()
	for _, name := range variantProps {
		if !props.Has(name, PropertyFloat) {
			return nil, fmt.Errorf("material %s doesn't have %s property: %w", base.Name(), name, ErrUnsupportedMaterial)
		}
	}

	m := base.Clone()
	m.SetName(key.Label(base.Name()))
	// The property checks above make these infallible.
	_ = m.SetFloat(PropCullMode, float32(key.Cull))
	_ = m.SetFloat(PropZTestMode, float32(key.DepthCompare))
	_ = m.SetFloat(PropUseUIFog, float32(fogValue(key.Fog)))
	return m, nil
}

// Release gives back one reference to a variant obtained from Acquire.
// When the last reference is released the variant is destroyed.
// Releasing nil or a material the pool does not track is a no-op.
func (p *MaterialPool) Release(m *Material) {
	if m == nil {
		return
	}
	p.table.Release(m)
}

// Refs returns the reference count of m, or 0 if the pool does not track it.
func (p *MaterialPool) Refs(m *Material) int {
	return p.table.Refs(m)
}

// Lookup returns the live variant for key without acquiring it.
func (p *MaterialPool) Lookup(key VariantKey) (*Material, bool) {
	return p.table.Lookup(key)
}

// Len returns the number of live variants.
func (p *MaterialPool) Len() int {
	return p.table.Len()
}

// PoolStats contains pool statistics.
type PoolStats struct {
	Variants  int     // Live variants
	Refs      int     // Sum of all reference counts
	Hits      uint64  // Acquires served by an existing variant
	Misses    uint64  // Acquires that tried to create a variant
	HitRate   float64 // Hits / (Hits + Misses)
	Destroyed uint64  // Variants destroyed so far
}

// Stats returns pool statistics.
func (p *MaterialPool) Stats() PoolStats {
	s := p.table.Stats()
	return PoolStats{
		Variants:  s.Len,
		Refs:      s.Refs,
		Hits:      s.Hits,
		Misses:    s.Misses,
		HitRate:   s.HitRate,
		Destroyed: s.Destructions,
	}
}

// Close destroys every remaining variant, whatever its count.
// The pool stays usable afterwards.
func (p *MaterialPool) Close() {
	if n := p.table.Clear(); n > 0 {
		p.opts.logger().Debug("uigrad: material pool closed", slog.Int("destroyed", n))
	}
}

var (
	defaultPool     *MaterialPool
	defaultPoolOnce sync.Once
)

// DefaultPool returns the process-wide pool, creating it empty on first use.
func DefaultPool() *MaterialPool {
	defaultPoolOnce.Do(func() {
		defaultPool = NewMaterialPool()
	})
	return defaultPool
}

// AcquireVariant acquires a variant from DefaultPool.
func AcquireVariant(base *Material, cull gputypes.CullMode, depth gputypes.CompareFunction, fog bool) *Material {
	return DefaultPool().Acquire(base, cull, depth, fog)
}

// ReleaseVariant releases a variant to DefaultPool.
func ReleaseVariant(m *Material) {
	DefaultPool().Release(m)
}

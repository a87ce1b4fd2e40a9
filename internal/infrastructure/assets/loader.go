// Package assets carga el membrete y la firma de la tagihan.
//
// Un asset que no se puede obtener nunca aborta la exportación: se registra,
// se cuenta en métricas y el documento se compone sin él.
package assets

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Tagihan-api/internal/domain/document"
	"github.com/jhoicas/Tagihan-api/internal/infrastructure/metrics"
)

// Nombres de asset usados en logs y métricas.
const (
	KindLetterhead = "letterhead"
	KindSignature  = "signature"
)

// Recorder recibe el resultado de cada carga (metrics.Metrics lo implementa).
type Recorder interface {
	AssetFetched(asset, result string)
}

type cacheEntry struct {
	asset   *document.Asset
	expires time.Time // cero = no expira
}

// Loader obtiene assets con una caché en memoria y, opcionalmente, una compartida.
type Loader struct {
	source     Source
	shared     ByteCache
	recorder   Recorder
	log        zerolog.Logger
	ttl        time.Duration
	letterhead string
	signature  string

	mu    sync.RWMutex
	local map[string]cacheEntry
	now   func() time.Time
}

// Option configura el Loader.
type Option func(*Loader)

// WithSharedCache añade una caché de bytes compartida (Redis).
func WithSharedCache(c ByteCache) Option { return func(l *Loader) { l.shared = c } }

// WithRecorder registra resultados en métricas.
func WithRecorder(r Recorder) Option { return func(l *Loader) { l.recorder = r } }

// WithLogger logger del componente.
func WithLogger(log zerolog.Logger) Option { return func(l *Loader) { l.log = log } }

// WithTTL vida de las entradas en caché; cero = sin expiración.
func WithTTL(ttl time.Duration) Option { return func(l *Loader) { l.ttl = ttl } }

// WithLocations ubicaciones por defecto del membrete y la firma.
func WithLocations(letterhead, signature string) Option {
	return func(l *Loader) {
		l.letterhead = letterhead
		l.signature = signature
	}
}

// NewLoader construye el Loader.
func NewLoader(src Source, opts ...Option) *Loader {
	l := &Loader{
		source: src,
		log:    zerolog.Nop(),
		local:  make(map[string]cacheEntry),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load obtiene los assets configurados.
func (l *Loader) Load(ctx context.Context) document.Assets {
	return l.LoadFrom(ctx, l.letterhead, l.signature)
}

// LoadFrom obtiene membrete y firma en paralelo. Una ubicación vacía o fallida
// deja el asset en nil.
func (l *Loader) LoadFrom(ctx context.Context, letterhead, signature string) document.Assets {
	var out document.Assets
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		out.Letterhead = l.fetch(ctx, KindLetterhead, letterhead)
	}()
	go func() {
		defer wg.Done()
		out.Signature = l.fetch(ctx, KindSignature, signature)
	}()
	wg.Wait()
	return out
}

func (l *Loader) fetch(ctx context.Context, kind, location string) *document.Asset {
	if location == "" || l.source == nil {
		return nil
	}
	if a, ok := l.cached(location); ok {
		l.record(kind, metrics.ResultCache)
		return a
	}

	// ── 1. Caché compartida ───────────────────────────────────────
	if l.shared != nil {
		data, ok, err := l.shared.Get(ctx, location)
		if err != nil {
			l.log.Warn().Err(err).Str("asset", kind).Msg("caché compartida no disponible")
		}
		if ok {
			if a, err := Decode(data); err == nil {
				l.store(location, a)
				l.record(kind, metrics.ResultCache)
				return a
			}
		}
	}

	// ── 2. Fuente ─────────────────────────────────────────────────
	data, err := l.source.Fetch(ctx, location)
	if err != nil {
		l.fail(kind, location, err)
		return nil
	}
	a, err := Decode(data)
	if err != nil {
		l.fail(kind, location, err)
		return nil
	}

	// ── 3. Guardar ────────────────────────────────────────────────
	if l.shared != nil {
		if err := l.shared.Set(ctx, location, a.Data, l.ttl); err != nil {
			l.log.Warn().Err(err).Str("asset", kind).Msg("no se pudo guardar en caché compartida")
		}
	}
	l.store(location, a)
	l.record(kind, metrics.ResultOK)
	l.log.Debug().Str("asset", kind).Int("width", a.Width).Int("height", a.Height).Msg("asset cargado")
	return a
}

func (l *Loader) cached(location string) (*document.Asset, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	e, ok := l.local[location]
	if !ok || (!e.expires.IsZero() && l.now().After(e.expires)) {
		return nil, false
	}
	return e.asset, true
}

func (l *Loader) store(location string, a *document.Asset) {
	e := cacheEntry{asset: a}
	if l.ttl > 0 {
		e.expires = l.now().Add(l.ttl)
	}
	l.mu.Lock()
	l.local[location] = e
	l.mu.Unlock()
}

// Invalidate vacía la caché en memoria.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	l.local = make(map[string]cacheEntry)
	l.mu.Unlock()
}

func (l *Loader) fail(kind, location string, err error) {
	l.log.Warn().Err(err).Str("asset", kind).Str("location", location).Msg("asset omitido")
	l.record(kind, metrics.ResultError)
}

func (l *Loader) record(kind, result string) {
	if l.recorder != nil {
		l.recorder.AssetFetched(kind, result)
	}
}

package assets_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tagihan-api/internal/infrastructure/assets"
	"github.com/jhoicas/Tagihan-api/internal/infrastructure/metrics"
)

// ── helpers ───────────────────────────────────────────────────

func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	return img
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(w, h)))
	return buf.Bytes()
}

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	err  error
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, false, c.err
	}
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.data[key] = data
	return nil
}

type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) AssetFetched(asset, result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, asset+":"+result)
}

type staticSource struct {
	data  map[string][]byte
	calls atomic.Int32
}

func (s *staticSource) Fetch(_ context.Context, location string) ([]byte, error) {
	s.calls.Add(1)
	d, ok := s.data[location]
	if !ok {
		return nil, errors.New("no existe")
	}
	return d, nil
}

// ── Loader ────────────────────────────────────────────────────

func TestLoader_CargaAmbosAssets(t *testing.T) {
	var hits atomic.Int32
	kop := pngBytes(t, 800, 160)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Path {
		case "/assets/kop.png":
			_, _ = w.Write(kop)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	rec := &recorder{}
	l := assets.NewLoader(
		assets.MultiSource{HTTP: assets.NewHTTPSource(srv.URL, time.Second)},
		assets.WithLocations("/assets/kop.png", "/assets/ttd.png"),
		assets.WithRecorder(rec),
	)

	got := l.Load(context.Background())
	require.NotNil(t, got.Letterhead)
	assert.Equal(t, 800, got.Letterhead.Width)
	assert.Equal(t, 160, got.Letterhead.Height)
	assert.Nil(t, got.Signature, "un 404 deja la firma en nil")
	assert.ElementsMatch(t, []string{"letterhead:ok", "signature:error"}, rec.events)

	// la segunda carga del membrete sale de memoria
	again := l.Load(context.Background())
	assert.Same(t, got.Letterhead, again.Letterhead)
	assert.Equal(t, int32(3), hits.Load(), "kop una vez, ttd dos veces")
}

func TestLoader_ServidorCaidoNoFalla(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	l := assets.NewLoader(assets.NewHTTPSource(srv.URL, 200*time.Millisecond))
	got := l.LoadFrom(context.Background(), "/kop.png", "/ttd.png")
	assert.Nil(t, got.Letterhead)
	assert.Nil(t, got.Signature)
}

func TestLoader_UbicacionVacia(t *testing.T) {
	src := &staticSource{}
	got := assets.NewLoader(src).Load(context.Background())
	assert.Nil(t, got.Letterhead)
	assert.Nil(t, got.Signature)
	assert.Zero(t, src.calls.Load())
}

func TestLoader_ContenidoNoImagen(t *testing.T) {
	src := &staticSource{data: map[string][]byte{"kop": []byte("<html>login</html>")}}
	got := assets.NewLoader(src).LoadFrom(context.Background(), "kop", "")
	assert.Nil(t, got.Letterhead)
}

func TestLoader_CacheCompartida(t *testing.T) {
	shared := newMemCache()
	src := &staticSource{data: map[string][]byte{"kop": pngBytes(t, 10, 5)}}

	first := assets.NewLoader(src, assets.WithSharedCache(shared))
	require.NotNil(t, first.LoadFrom(context.Background(), "kop", "").Letterhead)
	assert.Contains(t, shared.data, "kop")

	// otra réplica: no llama a la fuente
	rec := &recorder{}
	second := assets.NewLoader(src, assets.WithSharedCache(shared), assets.WithRecorder(rec))
	got := second.LoadFrom(context.Background(), "kop", "")
	require.NotNil(t, got.Letterhead)
	assert.Equal(t, int32(1), src.calls.Load())
	assert.Equal(t, []string{"letterhead:" + metrics.ResultCache}, rec.events)
}

func TestLoader_CacheCompartidaCaida(t *testing.T) {
	shared := newMemCache()
	shared.err = errors.New("redis caído")
	src := &staticSource{data: map[string][]byte{"kop": pngBytes(t, 10, 5)}}

	got := assets.NewLoader(src, assets.WithSharedCache(shared)).LoadFrom(context.Background(), "kop", "")
	assert.NotNil(t, got.Letterhead, "la caché es opcional")
}

func TestLoader_Invalidate(t *testing.T) {
	src := &staticSource{data: map[string][]byte{"kop": pngBytes(t, 10, 5)}}
	l := assets.NewLoader(src)
	l.LoadFrom(context.Background(), "kop", "")
	l.Invalidate()
	l.LoadFrom(context.Background(), "kop", "")
	assert.Equal(t, int32(2), src.calls.Load())
}

// ── Decode ────────────────────────────────────────────────────

func TestDecode_Formatos(t *testing.T) {
	a, err := assets.Decode(pngBytes(t, 40, 20))
	require.NoError(t, err)
	assert.Equal(t, "png", a.Format)
	assert.Equal(t, 40, a.Width)

	var jpg bytes.Buffer
	require.NoError(t, jpeg.Encode(&jpg, testImage(30, 15), nil))
	a, err = assets.Decode(jpg.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "jpg", a.Format)
	assert.Equal(t, jpg.Bytes(), a.Data, "jpeg se conserva")

	var g bytes.Buffer
	require.NoError(t, gif.Encode(&g, testImage(12, 6), nil))
	a, err = assets.Decode(g.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "png", a.Format, "gif se recodifica")
	assert.Equal(t, 12, a.Width)
	assert.Equal(t, 6, a.Height)
	_, err = png.DecodeConfig(bytes.NewReader(a.Data))
	assert.NoError(t, err)
}

func TestDecode_Invalido(t *testing.T) {
	_, err := assets.Decode([]byte("nope"))
	assert.ErrorIs(t, err, assets.ErrUnsupportedImage)
}

// ── Fuentes ───────────────────────────────────────────────────

type tagSource string

func (s tagSource) Fetch(context.Context, string) ([]byte, error) { return []byte(s), nil }

func TestMultiSource_Enruta(t *testing.T) {
	m := assets.MultiSource{HTTP: tagSource("http"), S3: tagSource("s3"), File: tagSource("file")}
	cases := map[string]string{
		"s3://bucket/kop.png":       "s3",
		"https://cdn.example/a.png": "http",
		"/assets/kop.png":           "http",
		"./kop.png":                 "file",
	}
	for loc, want := range cases {
		got, err := m.Fetch(context.Background(), loc)
		require.NoError(t, err, loc)
		assert.Equal(t, want, string(got), loc)
	}

	_, err := assets.MultiSource{}.Fetch(context.Background(), "s3://b/k")
	assert.Error(t, err)

	onlyFile := assets.MultiSource{File: tagSource("file")}
	got, err := onlyFile.Fetch(context.Background(), "/tmp/kop.png")
	require.NoError(t, err)
	assert.Equal(t, "file", string(got), "sin HTTP una ruta absoluta es un archivo")
}

func TestParseS3Location(t *testing.T) {
	b, k, err := assets.ParseS3Location("s3://tagihan/kop/kop.png", "otro")
	require.NoError(t, err)
	assert.Equal(t, "tagihan", b)
	assert.Equal(t, "kop/kop.png", k)

	b, k, err = assets.ParseS3Location("/kop.png", "default")
	require.NoError(t, err)
	assert.Equal(t, "default", b)
	assert.Equal(t, "kop.png", k)

	_, _, err = assets.ParseS3Location("s3://solo-bucket", "")
	assert.Error(t, err)
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ttd.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t, 3, 3), 0o600))

	data, err := assets.FileSource{}.Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	_, err = assets.FileSource{}.Fetch(context.Background(), filepath.Join(t.TempDir(), "no.png"))
	assert.Error(t, err)
}

func TestHTTPSource_RutaRelativaSinBase(t *testing.T) {
	_, err := assets.NewHTTPSource("", time.Second).Fetch(context.Background(), "/kop.png")
	assert.Error(t, err)
}

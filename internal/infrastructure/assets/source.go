package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// maxAssetBytes límite de tamaño de un membrete o firma.
const maxAssetBytes = 10 << 20

// ErrAssetTooLarge el asset supera maxAssetBytes.
var ErrAssetTooLarge = errors.New("assets: el archivo supera el tamaño máximo")

// Source obtiene los bytes de un asset a partir de su ubicación.
type Source interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// MultiSource elige la fuente por esquema: s3:// → S3, http(s):// o ruta
// relativa "/..." → HTTP, cualquier otra cosa → archivo local.
type MultiSource struct {
	HTTP Source
	S3   Source
	File Source
}

// Fetch implementa Source.
func (m MultiSource) Fetch(ctx context.Context, location string) ([]byte, error) {
	var src Source
	switch {
	case strings.HasPrefix(location, "s3://"):
		src = m.S3
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"), strings.HasPrefix(location, "/"):
		src = m.HTTP
		if src == nil && strings.HasPrefix(location, "/") {
			src = m.File
		}
	default:
		src = m.File
	}
	if src == nil {
		return nil, fmt.Errorf("assets: sin fuente configurada para %q", location)
	}
	return src.Fetch(ctx, location)
}

// ── HTTP ──────────────────────────────────────────────────────────────────────

// HTTPSource descarga assets del backend. Las rutas relativas se resuelven
// contra BaseURL.
type HTTPSource struct {
	baseURL string
	client  *http.Client
}

// NewHTTPSource construye la fuente HTTP.
func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Fetch implementa Source.
func (s *HTTPSource) Fetch(ctx context.Context, location string) ([]byte, error) {
	target := location
	if !strings.HasPrefix(location, "http://") && !strings.HasPrefix(location, "https://") {
		if s.baseURL == "" {
			return nil, fmt.Errorf("assets: ruta relativa %q sin URL base", location)
		}
		target = s.baseURL + "/" + strings.TrimLeft(location, "/")
	}
	if _, err := url.Parse(target); err != nil {
		return nil, fmt.Errorf("assets: url inválida %q: %w", target, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("assets: crear request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("assets: GET %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("assets: GET %s respondió %d", target, resp.StatusCode)
	}
	return readLimited(resp.Body)
}

// ── Archivo local ─────────────────────────────────────────────────────────────

// FileSource lee assets del disco (CLI).
type FileSource struct{}

// Fetch implementa Source.
func (FileSource) Fetch(ctx context.Context, location string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("assets: abrir %s: %w", location, err)
	}
	defer f.Close()
	return readLimited(f)
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxAssetBytes+1))
	if err != nil {
		return nil, fmt.Errorf("assets: leer contenido: %w", err)
	}
	if len(data) > maxAssetBytes {
		return nil, ErrAssetTooLarge
	}
	return data, nil
}

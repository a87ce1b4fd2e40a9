package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	_ "golang.org/x/image/webp"

	"github.com/jhoicas/Tagihan-api/internal/domain/document"
)

// ErrUnsupportedImage el contenido no es una imagen reconocible.
var ErrUnsupportedImage = errors.New("assets: formato de imagen no soportado")

// Decode lee las dimensiones naturales de la imagen. PNG y JPEG se conservan tal
// cual; GIF y WebP se recodifican a PNG porque los motores PDF no los aceptan.
func Decode(data []byte) (*document.Asset, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: dimensiones %dx%d", ErrUnsupportedImage, cfg.Width, cfg.Height)
	}

	switch format {
	case "png":
		return &document.Asset{Data: data, Format: "png", Width: cfg.Width, Height: cfg.Height}, nil
	case "jpeg":
		return &document.Asset{Data: data, Format: "jpg", Width: cfg.Width, Height: cfg.Height}, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnsupportedImage, format, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("assets: recodificar %s a png: %w", format, err)
	}
	return &document.Asset{Data: buf.Bytes(), Format: "png", Width: cfg.Width, Height: cfg.Height}, nil
}

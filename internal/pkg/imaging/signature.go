package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// Config for signature normalization
type Config struct {
	MaxWidth  int // default 2000
	MaxHeight int // default 2000
}

// DefaultConfig returns default normalization config
func DefaultConfig() Config {
	return Config{
		MaxWidth:  2000,
		MaxHeight: 2000,
	}
}

// Normalizer re-encodes uploaded signature images to bounded PNGs
type Normalizer struct {
	config Config
}

// NewNormalizer creates a signature normalizer
func NewNormalizer(config Config) *Normalizer {
	if config.MaxWidth <= 0 {
		config.MaxWidth = 2000
	}
	if config.MaxHeight <= 0 {
		config.MaxHeight = 2000
	}
	return &Normalizer{config: config}
}

// NormalizePNG decodes raw image bytes, downscales oversized images and
// re-encodes the result as PNG. Decoding also rejects non-image payloads.
func (n *Normalizer) NormalizePNG(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode signature image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > n.config.MaxWidth || bounds.Dy() > n.config.MaxHeight {
		img = imaging.Fit(img, n.config.MaxWidth, n.config.MaxHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode signature image: %w", err)
	}
	return buf.Bytes(), nil
}

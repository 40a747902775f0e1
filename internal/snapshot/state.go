package snapshot

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/tartampluch/go-yeardots/internal/config"
)

// Phase is the lifecycle position of a capture.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePending
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePending:
		return "pending"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Terminal reports whether no further transition can happen.
func (p Phase) Terminal() bool {
	return p == PhaseReady || p == PhaseFailed
}

// State is the observable capture state. Bitmap is set only when Ready and
// Err only when Failed.
type State struct {
	Phase  Phase
	Bitmap *Bitmap
	Err    error
}

// Bitmap is an encoded PNG of known pixel dimensions.
type Bitmap struct {
	PNG    []byte
	Width  int
	Height int
}

// ErrDimensionMismatch is returned when a capturer produces a bitmap whose
// size differs from the requested one.
var ErrDimensionMismatch = errors.New(config.ErrDimensionMismatch)

// newBitmap validates that data is a PNG of exactly width x height.
func newBitmap(data []byte, width, height int) (*Bitmap, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrBitmapDecode, err)
	}
	if cfg.Width != width || cfg.Height != height {
		return nil, fmt.Errorf("%w: got %dx%d, want %dx%d",
			ErrDimensionMismatch, cfg.Width, cfg.Height, width, height)
	}
	return &Bitmap{PNG: data, Width: width, Height: height}, nil
}

// DataURI returns the bitmap as a base64 data URI.
func (b *Bitmap) DataURI() string {
	return fmt.Sprintf(config.FormatDataURI, config.MimePNG, base64.StdEncoding.EncodeToString(b.PNG))
}

// Image decodes the bitmap.
func (b *Bitmap) Image() (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(b.PNG))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrBitmapDecode, err)
	}
	return img, nil
}

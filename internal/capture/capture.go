// Package capture turns a mounted scene into PNG bytes. Two renderers are
// available: a native rasterizer and a headless Chrome screenshotter.
package capture

import (
	"fmt"

	"github.com/tartampluch/go-yeardots/internal/config"
	"github.com/tartampluch/go-yeardots/internal/snapshot"
)

// New returns the capturer registered under renderer. An empty name selects
// the default.
func New(renderer string) (snapshot.Capturer, error) {
	switch renderer {
	case "", config.RendererNative:
		return NewRasterizer()
	case config.RendererChrome:
		return NewChromeCapturer(), nil
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrUnknownRenderer, renderer)
	}
}

func validate(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%s: %dx%d", config.ErrInvalidSize, w, h)
	}
	return nil
}

package capture

import (
	"bytes"
	"context"
	"image"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-yeardots/internal/config"
)

func encode(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, imaging.New(w, h, image.Black.C), imaging.PNG))
	return buf.Bytes()
}

func TestFitToSize(t *testing.T) {
	exact := encode(t, 40, 30)
	out, err := fitToSize(exact, 40, 30)
	require.NoError(t, err)
	assert.Equal(t, exact, out, "Matching screenshots pass through untouched")

	// A 2x HiDPI screenshot is brought back to the target.
	out, err = fitToSize(encode(t, 80, 60), 40, 30)
	require.NoError(t, err)
	cfg, _, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, 30, cfg.Height)

	_, err = fitToSize([]byte("garbage"), 40, 30)
	assert.ErrorContains(t, err, config.ErrBitmapDecode)
}

func TestChromeCapturer_ValidatesBeforeLaunch(t *testing.T) {
	c := NewChromeCapturer()
	_, err := c.Capture(context.Background(), nil, 10, 10)
	assert.ErrorContains(t, err, config.ErrNilScene)
}

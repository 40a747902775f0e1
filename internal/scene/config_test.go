package scene_test

import (
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-yeardots/internal/config"
	"github.com/tartampluch/go-yeardots/internal/scene"
)

var orange = color.NRGBA{R: 0xff, G: 0x57, B: 0x22, A: 0xff}

func TestParseConfig_Defaults(t *testing.T) {
	cfg := scene.ParseConfig("")

	assert.Equal(t, config.DefaultWidth, cfg.Width)
	assert.Equal(t, config.DefaultHeight, cfg.Height)
	assert.Equal(t, orange, cfg.Accent)
	assert.Equal(t, "ff5722", cfg.AccentHex)
	assert.Equal(t, config.DefaultSettleDelay, cfg.Settle)
	assert.Equal(t, config.RendererNative, cfg.Renderer)
	assert.Equal(t, 0.295, cfg.Padding)
	assert.Equal(t, scene.DefaultConfig(), cfg)
}

func TestParseConfig_Values(t *testing.T) {
	cfg := scene.ParseConfig("width=1080&height=2400&color=00bcd4&settle=1000&renderer=chrome")

	assert.Equal(t, 1080, cfg.Width)
	assert.Equal(t, 2400, cfg.Height)
	assert.Equal(t, color.NRGBA{R: 0x00, G: 0xbc, B: 0xd4, A: 0xff}, cfg.Accent)
	assert.Equal(t, "00bcd4", cfg.AccentHex)
	assert.Equal(t, time.Second, cfg.Settle)
	assert.Equal(t, config.RendererChrome, cfg.Renderer)
}

// TestParseConfig_Fallbacks covers every silent fallback path.
func TestParseConfig_Fallbacks(t *testing.T) {
	tests := []struct {
		name  string
		query string
		check func(t *testing.T, cfg scene.Config)
	}{
		{
			name:  "Non-numeric width",
			query: "width=abc",
			check: func(t *testing.T, cfg scene.Config) { assert.Equal(t, 1220, cfg.Width) },
		},
		{
			name:  "Zero height",
			query: "height=0",
			check: func(t *testing.T, cfg scene.Config) { assert.Equal(t, 2712, cfg.Height) },
		},
		{
			name:  "Negative width",
			query: "width=-5",
			check: func(t *testing.T, cfg scene.Config) { assert.Equal(t, 1220, cfg.Width) },
		},
		{
			name:  "Color absent",
			query: "width=800",
			check: func(t *testing.T, cfg scene.Config) {
				assert.Equal(t, orange, cfg.Accent)
				assert.Equal(t, 800, cfg.Width)
			},
		},
		{
			name:  "Color empty",
			query: "color=",
			check: func(t *testing.T, cfg scene.Config) { assert.Equal(t, "ff5722", cfg.AccentHex) },
		},
		{
			name:  "Color malformed",
			query: "color=zzzzzz",
			check: func(t *testing.T, cfg scene.Config) { assert.Equal(t, orange, cfg.Accent) },
		},
		{
			name:  "Color too short",
			query: "color=fffff",
			check: func(t *testing.T, cfg scene.Config) {
				assert.Equal(t, orange, cfg.Accent)
				assert.Equal(t, "ff5722", cfg.AccentHex)
			},
		},
		{
			name:  "Color trailing garbage",
			query: "color=ff5722zz",
			check: func(t *testing.T, cfg scene.Config) { assert.Equal(t, "ff5722", cfg.AccentHex) },
		},
		{
			name:  "Color too long",
			query: "color=12345678",
			check: func(t *testing.T, cfg scene.Config) { assert.Equal(t, orange, cfg.Accent) },
		},
		{
			name:  "Color with space",
			query: "color=ff%205722",
			check: func(t *testing.T, cfg scene.Config) { assert.Equal(t, orange, cfg.Accent) },
		},
		{
			name:  "Color with hash prefix",
			query: "color=%2300BCD4",
			check: func(t *testing.T, cfg scene.Config) { assert.Equal(t, "00bcd4", cfg.AccentHex) },
		},
		{
			name:  "Unknown renderer",
			query: "renderer=gpu",
			check: func(t *testing.T, cfg scene.Config) { assert.Equal(t, config.RendererNative, cfg.Renderer) },
		},
		{
			name:  "Padding out of range",
			query: "padding=1.5",
			check: func(t *testing.T, cfg scene.Config) { assert.Equal(t, 800, cfg.TopPadding()) },
		},
		{
			name:  "Leading question mark",
			query: "?width=640",
			check: func(t *testing.T, cfg scene.Config) { assert.Equal(t, 640, cfg.Width) },
		},
		{
			name:  "Broken escape keeps other pairs",
			query: "width=900&bad=%zz",
			check: func(t *testing.T, cfg scene.Config) { assert.Equal(t, 900, cfg.Width) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, scene.ParseConfig(tt.query))
		})
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := scene.ParseHexColor("fff")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, c)

	c, err = scene.ParseHexColor("161616")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0x16, G: 0x16, B: 0x16, A: 0xff}, c)

	for _, bad := range []string{"not-a-color", "fffff", "ff5722zz", "12345678", "ff 5722", "ffg", ""} {
		_, err = scene.ParseHexColor(bad)
		assert.ErrorContainsf(t, err, config.ErrInvalidColor, "token %q", bad)
	}
}

// TestConfig_Derived ensures the parameterized layout reproduces the fixed
// variant's hardcoded values at its reference size.
func TestConfig_Derived(t *testing.T) {
	cfg := scene.ParseConfig("width=1220&height=2712")

	assert.Equal(t, 800, cfg.TopPadding())
	assert.Equal(t, 60, cfg.ColumnGap())
	assert.Equal(t, 70, cfg.RowGap())
	assert.Equal(t, 1000, cfg.WrapperWidth())
	assert.Equal(t, 1.0, cfg.Unit())
	assert.Equal(t, 1.0, cfg.DisplayScale())
	assert.Equal(t, 20, cfg.Scaled(config.DotSize))

	// Pure functions: same inputs, same outputs.
	assert.Equal(t, cfg.TopPadding(), scene.ParseConfig("height=2712").TopPadding())
}

func TestConfig_CustomPadding(t *testing.T) {
	cfg := scene.ParseConfig("padding=0.1")
	assert.Equal(t, 0.1, cfg.Padding)
	assert.Equal(t, 271, cfg.TopPadding())
}

func TestConfig_DerivedSmall(t *testing.T) {
	cfg := scene.ParseConfig("width=305&height=678")

	assert.Equal(t, 200, cfg.TopPadding())
	assert.Equal(t, 15, cfg.ColumnGap())
	assert.Equal(t, 2.0, cfg.DisplayScale(), "Small targets are scaled up on screen")
	assert.Equal(t, 5, cfg.Scaled(config.DotSize))
	assert.Equal(t, 1, cfg.Scaled(0.1), "Sizes never collapse to zero")
}

package scene

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tartampluch/go-yeardots/internal/config"
)

// Config holds the immutable per-session render parameters.
// Every derived size is a method so no derived state can drift.
type Config struct {
	Width     int
	Height    int
	Accent    color.NRGBA
	AccentHex string // without the leading '#'

	// Padding is the top offset of the content as a fraction of Height.
	Padding float64

	Settle   time.Duration
	Renderer string
}

// DefaultConfig returns the fixed-size variant: 1220x2712 with the orange accent.
func DefaultConfig() Config {
	accent, _ := ParseHexColor(config.DefaultAccentHex)
	return Config{
		Width:     config.DefaultWidth,
		Height:    config.DefaultHeight,
		Accent:    accent,
		AccentHex: config.DefaultAccentHex,
		Padding:   config.TopPaddingRatio,
		Settle:    config.DefaultSettleDelay,
		Renderer:  config.DefaultRenderer,
	}
}

// ParseConfig reads query-style parameters (width, height, color, padding,
// settle, renderer). Malformed or missing values silently fall back to defaults.
func ParseConfig(rawQuery string) Config {
	cfg := DefaultConfig()

	// ParseQuery still returns every pair it could decode alongside the error.
	values, _ := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))

	if w, ok := positiveInt(values, config.ParamWidth); ok {
		cfg.Width = w
	}
	if h, ok := positiveInt(values, config.ParamHeight); ok {
		cfg.Height = h
	}
	if ms, ok := positiveInt(values, config.ParamSettle); ok {
		cfg.Settle = time.Duration(ms) * time.Millisecond
	}

	if raw := values.Get(config.ParamPadding); raw != "" {
		if f, err := strconv.ParseFloat(raw, 64); err == nil && f >= 0 && f < 1 {
			cfg.Padding = f
		} else {
			logFallback(config.ParamPadding, raw)
		}
	}

	if raw := values.Get(config.ParamColor); raw != "" {
		token := strings.TrimPrefix(raw, config.HexPrefix)
		if c, err := ParseHexColor(token); err == nil {
			cfg.Accent = c
			cfg.AccentHex = strings.ToLower(token)
		} else {
			logFallback(config.ParamColor, raw)
		}
	}

	switch r := values.Get(config.ParamRenderer); r {
	case "":
	case config.RendererNative, config.RendererChrome:
		cfg.Renderer = r
	default:
		logFallback(config.ParamRenderer, r)
	}

	slog.Debug(config.MsgConfigResolved,
		config.LogKeyComponent, config.CompScene,
		config.LogKeyWidth, cfg.Width,
		config.LogKeyHeight, cfg.Height,
		config.LogKeyColor, cfg.AccentHex,
		config.LogKeyPadding, cfg.Padding,
		config.LogKeySettle, cfg.Settle,
		config.LogKeyRenderer, cfg.Renderer,
	)
	return cfg
}

func positiveInt(values url.Values, key string) (int, bool) {
	raw := values.Get(key)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		logFallback(key, raw)
		return 0, false
	}
	return n, true
}

func logFallback(key, raw string) {
	slog.Debug(config.MsgParamFallback,
		config.LogKeyComponent, config.CompScene,
		config.LogKeyParam, key,
		config.LogKeyValue, raw,
	)
}

// ParseHexColor parses a 3 or 6 digit hex token without the leading '#'.
// Any other length or a non-hex character is rejected.
func ParseHexColor(token string) (color.NRGBA, error) {
	if !isHexToken(token) {
		return color.NRGBA{}, fmt.Errorf("%s: %q", config.ErrInvalidColor, token)
	}
	c, err := colorful.Hex(config.HexPrefix + token)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse color %q: %w", token, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// colorful.Hex scans with Sscanf, which tolerates short input and trailing
// garbage, so the token shape is checked first.
func isHexToken(token string) bool {
	if len(token) != 3 && len(token) != 6 {
		return false
	}
	for _, r := range token {
		if !strings.ContainsRune(hexDigits, r) {
			return false
		}
	}
	return true
}

const hexDigits = "0123456789abcdefABCDEF"

// Unit is the width scale relative to the 1220px reference layout.
func (c Config) Unit() float64 {
	return float64(c.Width) / config.DefaultWidth
}

// TopPadding is the vertical offset of the content.
func (c Config) TopPadding() int {
	return round(float64(c.Height) * c.Padding)
}

// ColumnGap separates the month columns.
func (c Config) ColumnGap() int {
	return round(float64(c.Width) * config.ColumnGapRatio)
}

// RowGap separates the month rows.
func (c Config) RowGap() int {
	return round(float64(c.Height) * config.RowGapRatio)
}

// WrapperWidth is the width of the centered content column.
func (c Config) WrapperWidth() int {
	return round(float64(c.Width) * config.WrapperWidthRatio)
}

// DisplayScale is the transform applied to the live tree for legibility at
// small sizes. Captures always suppress it.
func (c Config) DisplayScale() float64 {
	if c.Width < config.SmallWidthThreshold {
		return config.SmallWidthScale
	}
	return 1
}

// Scaled converts a reference-pixel size to this config's pixels, never below 1.
func (c Config) Scaled(px float64) int {
	return max(1, round(px*c.Unit()))
}

func round(v float64) int {
	return int(math.Round(v))
}

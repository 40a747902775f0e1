package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/tartampluch/go-yeardots/internal/config"
	"github.com/tartampluch/go-yeardots/internal/scene"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Bezier control distance for a quarter circle.
const kappa = 0.5522847498

// Rasterizer draws a scene tree directly into an image.
type Rasterizer struct {
	font *opentype.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

// NewRasterizer parses the embedded Go Medium font.
func NewRasterizer() (*Rasterizer, error) {
	f, err := opentype.Parse(gomedium.TTF)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrFontParse, err)
	}
	return &Rasterizer{font: f, faces: make(map[float64]font.Face)}, nil
}

// Capture paints root at its natural size. root.Scale is ignored.
func (r *Rasterizer) Capture(ctx context.Context, root *scene.Node, width, height int) ([]byte, error) {
	if root == nil {
		return nil, errors.New(config.ErrNilScene)
	}
	if err := validate(width, height); err != nil {
		return nil, err
	}

	canvas := imaging.New(width, height, color.NRGBA{})
	var drawErr error
	root.Walk(func(n *scene.Node) bool {
		if drawErr != nil || ctx.Err() != nil {
			return false
		}
		drawErr = r.draw(canvas, n)
		return true
	})
	if drawErr != nil {
		return nil, drawErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.PNG); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrBitmapEncode, err)
	}

	slog.Debug(config.MsgCaptureReady,
		config.LogKeyComponent, config.CompCapture,
		config.LogKeyRenderer, config.RendererNative,
		config.LogKeySizeBytes, buf.Len(),
	)
	return buf.Bytes(), nil
}

func (r *Rasterizer) draw(canvas *image.NRGBA, n *scene.Node) error {
	switch n.Kind {
	case scene.KindBox:
		if n.Fill.A > 0 {
			draw.Draw(canvas, n.Rect, image.NewUniform(n.Fill), image.Point{}, draw.Over)
		}
	case scene.KindDot:
		if n.Glow > 0 {
			drawGlow(canvas, n)
		}
		fillCircle(canvas, n.Rect, n.Fill)
	case scene.KindText:
		return r.drawText(canvas, n)
	}
	return nil
}

// drawGlow paints a blurred halo of the dot's colour on a padded layer and
// blends it under the dot.
func drawGlow(canvas *image.NRGBA, n *scene.Node) {
	pad := 2 * n.Glow
	w, h := n.Rect.Dx()+2*pad, n.Rect.Dy()+2*pad
	layer := imaging.New(w, h, color.NRGBA{})

	halo := n.Rect.Sub(n.Rect.Min).Add(image.Pt(pad, pad))
	fillCircle(layer, halo.Inset(-n.Glow/3), n.Fill)

	blurred := imaging.Blur(layer, float64(n.Glow)/2)
	dst := imaging.Overlay(canvas, blurred, n.Rect.Min.Sub(image.Pt(pad, pad)), 1.0)
	draw.Draw(canvas, canvas.Bounds(), dst, image.Point{}, draw.Src)
}

// fillCircle rasterizes an ellipse inscribed in rect, in rect-local
// coordinates, and composites it onto dst.
func fillCircle(dst draw.Image, rect image.Rectangle, c color.NRGBA) {
	if rect.Empty() {
		return
	}
	var (
		rx = float32(rect.Dx()) / 2
		ry = float32(rect.Dy()) / 2
		kx = rx * kappa
		ky = ry * kappa
	)

	z := vector.NewRasterizer(rect.Dx(), rect.Dy())
	z.MoveTo(2*rx, ry)
	z.CubeTo(2*rx, ry+ky, rx+kx, 2*ry, rx, 2*ry)
	z.CubeTo(rx-kx, 2*ry, 0, ry+ky, 0, ry)
	z.CubeTo(0, ry-ky, rx-kx, 0, rx, 0)
	z.CubeTo(rx+kx, 0, 2*rx, ry-ky, 2*rx, ry)
	z.ClosePath()
	z.Draw(dst, rect, image.NewUniform(c), image.Point{})
}

func (r *Rasterizer) drawText(canvas *image.NRGBA, n *scene.Node) error {
	if len(n.Spans) == 0 || n.FontSize <= 0 {
		return nil
	}
	face, err := r.face(n.FontSize)
	if err != nil {
		return err
	}

	var width fixed.Int26_6
	for _, sp := range n.Spans {
		width += font.MeasureString(face, sp.Text)
	}

	m := face.Metrics()
	textH := (m.Ascent + m.Descent).Ceil()
	baseline := n.Rect.Min.Y + (n.Rect.Dy()-textH)/2 + m.Ascent.Ceil()

	x := fixed.I(n.Rect.Min.X)
	if n.Align == scene.AlignCenter {
		x += (fixed.I(n.Rect.Dx()) - width) / 2
	}

	d := &font.Drawer{Dst: canvas, Face: face, Dot: fixed.Point26_6{X: x, Y: fixed.I(baseline)}}
	for _, sp := range n.Spans {
		d.Src = image.NewUniform(sp.Color)
		d.DrawString(sp.Text)
	}
	return nil
}

func (r *Rasterizer) face(size float64) (font.Face, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f, ok := r.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrFontFace, err)
	}
	r.faces[size] = f
	return f, nil
}

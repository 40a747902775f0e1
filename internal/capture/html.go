package capture

import (
	"fmt"
	"html"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tartampluch/go-yeardots/internal/config"
	"github.com/tartampluch/go-yeardots/internal/scene"
)

// RenderHTML serializes root into a self-contained document. Every node is
// absolutely positioned inside the #capture element. When suppressTransform
// is set, a stylesheet rule forces the root's display scale off so that a
// screenshot sees the natural size.
func RenderHTML(root *scene.Node, suppressTransform bool) string {
	var b strings.Builder

	b.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8"><style>`)
	fmt.Fprintf(&b, "html,body{margin:0;padding:0;background:transparent;}"+
		"#%s{position:relative;overflow:hidden;transform-origin:top left;font-family:%s;font-weight:%d;}"+
		"#%[1]s div{position:absolute;box-sizing:border-box;}",
		config.CaptureElementID, config.BrowserFontFamily, config.BrowserFontWeight)
	if suppressTransform {
		fmt.Fprintf(&b, "#%s{transform:none !important;}", config.CaptureElementID)
	}
	b.WriteString(`</style></head><body>`)

	if root != nil {
		style := fmt.Sprintf("width:%dpx;height:%dpx;", root.Rect.Dx(), root.Rect.Dy())
		if root.Fill.A > 0 {
			style += "background:" + cssColor(root.Fill) + ";"
		}
		if root.Scale > 0 && root.Scale != 1 {
			style += fmt.Sprintf("transform:scale(%g);", root.Scale)
		}
		fmt.Fprintf(&b, `<div id="%s" style="%s">`, config.CaptureElementID, style)
		for _, c := range root.Children {
			writeNode(&b, c, root.Rect.Min.X, root.Rect.Min.Y)
		}
		b.WriteString(`</div>`)
	}

	b.WriteString(`</body></html>`)
	return b.String()
}

func writeNode(b *strings.Builder, n *scene.Node, ox, oy int) {
	style := fmt.Sprintf("left:%dpx;top:%dpx;width:%dpx;height:%dpx;",
		n.Rect.Min.X-ox, n.Rect.Min.Y-oy, n.Rect.Dx(), n.Rect.Dy())

	switch n.Kind {
	case scene.KindDot:
		style += "border-radius:50%;background:" + cssColor(n.Fill) + ";"
		if n.Glow > 0 {
			style += fmt.Sprintf("box-shadow:0 0 %dpx %s;", n.Glow, cssColor(n.Fill))
		}
	case scene.KindText:
		style += fmt.Sprintf("font-size:%gpx;line-height:%dpx;white-space:nowrap;", n.FontSize, n.Rect.Dy())
		if n.Align == scene.AlignCenter {
			style += "text-align:center;"
		}
	default:
		if n.Fill.A > 0 {
			style += "background:" + cssColor(n.Fill) + ";"
		}
	}

	fmt.Fprintf(b, `<div data-role="%s" style="%s">`, html.EscapeString(n.Role), style)
	for _, sp := range n.Spans {
		fmt.Fprintf(b, `<span style="color:%s">%s</span>`, cssColor(sp.Color), html.EscapeString(sp.Text))
	}
	b.WriteString(`</div>`)

	// Children are siblings in the document so every rectangle stays absolute.
	for _, c := range n.Children {
		writeNode(b, c, ox, oy)
	}
}

func cssColor(c color.NRGBA) string {
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return "transparent"
	}
	return cc.Hex()
}

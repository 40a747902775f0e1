package scene

import (
	"image"
	"image/color"
)

// Kind identifies what a node draws.
type Kind int

const (
	KindBox Kind = iota
	KindDot
	KindText
)

// Align is the horizontal alignment of text within its rectangle.
type Align int

const (
	AlignStart Align = iota
	AlignCenter
)

// Roles tag nodes so renderers and tests can address them.
const (
	RoleRoot      = "root"
	RoleWrapper   = "wrapper"
	RoleGrid      = "grid"
	RoleMonth     = "month"
	RoleTitle     = "title"
	RoleDotPast   = "dot-past"
	RoleDotToday  = "dot-current"
	RoleDotFuture = "dot-future"
	RoleFooter    = "footer"
)

// Span is a run of text in one colour.
type Span struct {
	Text  string
	Color color.NRGBA
}

// Node is one element of the visual tree. Rectangles are absolute, in
// capture pixels. The tree is immutable once mounted.
type Node struct {
	Kind Kind
	Role string
	Rect image.Rectangle

	// Fill is the background of a box or the colour of a dot. A zero alpha
	// means transparent.
	Fill color.NRGBA

	// Glow is the blur radius of a halo drawn around a dot in its own colour.
	Glow int

	Spans    []Span
	FontSize float64
	Align    Align

	// Scale is a display-only transform. Captures ignore it.
	Scale float64

	Children []*Node
}

// Walk visits the subtree depth-first. Returning false from fn skips the
// node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Count returns the number of nodes in the subtree.
func (n *Node) Count() int {
	total := 0
	n.Walk(func(*Node) bool {
		total++
		return true
	})
	return total
}

// FindAll returns every node in the subtree with the given role.
func (n *Node) FindAll(role string) []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if c.Role == role {
			out = append(out, c)
		}
		return true
	})
	return out
}

// Text concatenates the spans of a text node.
func (n *Node) Text() string {
	s := ""
	for _, sp := range n.Spans {
		s += sp.Text
	}
	return s
}

package scene_test

import (
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-yeardots/internal/config"
	"github.com/tartampluch/go-yeardots/internal/engine"
	"github.com/tartampluch/go-yeardots/internal/scene"
)

func march15() engine.YearView {
	return engine.NewYearView(time.Date(2024, time.March, 15, 9, 30, 0, 0, config.SessionZone))
}

func TestBuild_RootMatchesConfig(t *testing.T) {
	cfg := scene.DefaultConfig()
	root := scene.Build(march15(), cfg)

	assert.Equal(t, scene.RoleRoot, root.Role)
	assert.Equal(t, image.Rect(0, 0, 1220, 2712), root.Rect)
	assert.Equal(t, scene.DefaultPalette.Background, root.Fill)
	assert.Equal(t, 1.0, root.Scale)
}

func TestBuild_Structure(t *testing.T) {
	cfg := scene.DefaultConfig()
	root := scene.Build(march15(), cfg)

	months := root.FindAll(scene.RoleMonth)
	require.Len(t, months, 12)

	titles := root.FindAll(scene.RoleTitle)
	require.Len(t, titles, 12)
	assert.Equal(t, "Jan", titles[0].Text())
	assert.Equal(t, "Dec", titles[11].Text())

	// 2024 is a leap year: one dot per day, no dots for padding.
	past := root.FindAll(scene.RoleDotPast)
	today := root.FindAll(scene.RoleDotToday)
	future := root.FindAll(scene.RoleDotFuture)
	assert.Len(t, past, 74)
	require.Len(t, today, 1)
	assert.Len(t, future, 291)

	assert.Equal(t, cfg.Accent, today[0].Fill)
	assert.Equal(t, 15, today[0].Glow)
	assert.Equal(t, scene.DefaultPalette.Past, past[0].Fill)
	assert.Zero(t, future[0].Glow)
}

func TestBuild_Geometry(t *testing.T) {
	cfg := scene.DefaultConfig()
	root := scene.Build(march15(), cfg)
	months := root.FindAll(scene.RoleMonth)

	// Content starts at the top padding and is centered in a 1000px column.
	assert.Equal(t, 800, months[0].Rect.Min.Y)
	assert.Equal(t, 110, months[0].Rect.Min.X)

	// Same grid row shares a top edge; the next row starts below the tallest
	// month plus the row gap.
	assert.Equal(t, months[0].Rect.Min.Y, months[2].Rect.Min.Y)
	tallest := max(months[0].Rect.Dy(), months[1].Rect.Dy(), months[2].Rect.Dy())
	assert.Equal(t, months[0].Rect.Min.Y+tallest+cfg.RowGap(), months[3].Rect.Min.Y)

	// Columns are separated by the column gap.
	assert.InDelta(t, cfg.ColumnGap(), months[1].Rect.Min.X-months[0].Rect.Max.X, 1)

	// January 2024 starts on Monday: the first dot sits in the second column.
	janDots := months[0].FindAll(scene.RoleDotPast)
	require.NotEmpty(t, janDots)
	assert.Greater(t, janDots[0].Rect.Min.X, months[0].Rect.Min.X)
	assert.Equal(t, 20, janDots[0].Rect.Dx())
	assert.Equal(t, 20, janDots[0].Rect.Dy())

	footers := root.FindAll(scene.RoleFooter)
	require.Len(t, footers, 1)
	footer := footers[0]
	assert.Equal(t, scene.AlignCenter, footer.Align)
	assert.Equal(t, 48.0, footer.FontSize)
	assert.Equal(t, months[11].Rect.Max.Y+150, footer.Rect.Min.Y)
	assert.LessOrEqual(t, footer.Rect.Max.Y, cfg.Height, "Content fits inside the container")

	for _, m := range months {
		assert.True(t, m.Rect.In(root.Rect), "Month must be inside the container")
	}
}

func TestBuild_Footer(t *testing.T) {
	cfg := scene.ParseConfig("color=00ff00")
	root := scene.Build(march15(), cfg)
	footer := root.FindAll(scene.RoleFooter)[0]

	require.Len(t, footer.Spans, 2)
	assert.Equal(t, "291d left", footer.Spans[0].Text)
	assert.Equal(t, cfg.Accent, footer.Spans[0].Color)
	assert.Equal(t, " · 80%", footer.Spans[1].Text)
	assert.Equal(t, scene.DefaultPalette.Footer, footer.Spans[1].Color)
	assert.Equal(t, "291d left · 80%", footer.Text())
}

func TestBuild_SmallTarget(t *testing.T) {
	cfg := scene.ParseConfig("width=305&height=678")
	root := scene.Build(march15(), cfg)

	assert.Equal(t, image.Rect(0, 0, 305, 678), root.Rect)
	assert.Equal(t, 2.0, root.Scale)
	for _, d := range root.FindAll(scene.RoleDotFuture) {
		assert.Equal(t, 5, d.Rect.Dx())
	}
}

func TestNode_Walk(t *testing.T) {
	leaf := &scene.Node{Role: "leaf"}
	mid := &scene.Node{Role: "mid", Children: []*scene.Node{leaf}}
	root := &scene.Node{Role: "root", Children: []*scene.Node{mid}}

	assert.Equal(t, 3, root.Count())

	var seen []string
	root.Walk(func(n *scene.Node) bool {
		seen = append(seen, n.Role)
		return n.Role != "mid"
	})
	assert.Equal(t, []string{"root", "mid"}, seen, "Returning false prunes children")

	var nilNode *scene.Node
	assert.Equal(t, 0, nilNode.Count())
}

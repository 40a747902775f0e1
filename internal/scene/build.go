package scene

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"github.com/tartampluch/go-yeardots/internal/config"
	"github.com/tartampluch/go-yeardots/internal/engine"
)

// Palette holds the fixed colours of the wallpaper.
type Palette struct {
	Background color.NRGBA
	Title      color.NRGBA
	Future     color.NRGBA
	Past       color.NRGBA
	Footer     color.NRGBA
}

// DefaultPalette is the dark theme of every variant. Only the accent varies.
var DefaultPalette = Palette{
	Background: mustHex(config.ColorBackground),
	Title:      mustHex(config.ColorTitle),
	Future:     mustHex(config.ColorDotFuture),
	Past:       mustHex(config.ColorDotPast),
	Footer:     mustHex(config.ColorFooter),
}

func mustHex(token string) color.NRGBA {
	c, err := ParseHexColor(token)
	if err != nil {
		panic(err)
	}
	return c
}

// Build lays out the wallpaper for view at cfg's size: a centered column
// holding a 3-column grid of month dot-matrices and the days-left footer.
func Build(view engine.YearView, cfg Config) *Node {
	var (
		wrapperW = cfg.WrapperWidth()
		wrapperX = (cfg.Width - wrapperW) / 2
		colGap   = cfg.ColumnGap()
		rowGap   = cfg.RowGap()
		titleH   = cfg.Scaled(config.TitleFontSize * config.LineHeightRatio)
		boxGap   = cfg.Scaled(config.MonthBoxGap)
		dayGap   = cfg.Scaled(config.DayGridGap)
		dot      = cfg.Scaled(config.DotSize)
		colW     = float64(wrapperW-(config.MonthColumns-1)*colGap) / config.MonthColumns
		cellW    = (colW - float64((config.DaysInWeek-1)*dayGap)) / config.DaysInWeek
	)

	top := cfg.TopPadding()
	grid := &Node{Kind: KindBox, Role: RoleGrid}

	y := top
	for row := 0; row*config.MonthColumns < len(view.Months); row++ {
		rowH := 0
		for col := 0; col < config.MonthColumns; col++ {
			i := row*config.MonthColumns + col
			if i >= len(view.Months) {
				break
			}
			mv := view.Months[i]
			x := wrapperX + round(float64(col)*(colW+float64(colGap)))

			weeks := mv.Layout.Rows()
			h := titleH + boxGap + weeks*dot + max(0, weeks-1)*dayGap
			rowH = max(rowH, h)

			month := &Node{
				Kind: KindBox,
				Role: RoleMonth,
				Rect: image.Rect(x, y, x+round(colW), y+h),
			}
			month.Children = append(month.Children, &Node{
				Kind:     KindText,
				Role:     RoleTitle,
				Rect:     image.Rect(x, y, x+round(colW), y+titleH),
				Spans:    []Span{{Text: mv.Name, Color: DefaultPalette.Title}},
				FontSize: float64(cfg.Scaled(config.TitleFontSize)),
				Align:    AlignStart,
			})

			daysTop := y + titleH + boxGap
			for si, slot := range mv.Layout.Slots {
				if slot.Empty {
					continue
				}
				dx := x + round(float64(si%config.DaysInWeek)*(cellW+float64(dayGap)))
				dy := daysTop + (si/config.DaysInWeek)*(dot+dayGap)
				month.Children = append(month.Children, dayNode(view.Classify(slot.Date), dx, dy, dot, cfg))
			}
			grid.Children = append(grid.Children, month)
		}
		y += rowH + rowGap
	}
	// The last row carries no trailing gap.
	y -= rowGap
	grid.Rect = image.Rect(wrapperX, top, wrapperX+wrapperW, y)

	footerTop := y + cfg.Scaled(config.FooterMarginTop)
	footerSize := cfg.Scaled(config.FooterFontSize)
	footer := &Node{
		Kind: KindText,
		Role: RoleFooter,
		Rect: image.Rect(wrapperX, footerTop, wrapperX+wrapperW,
			footerTop+cfg.Scaled(config.FooterFontSize*config.LineHeightRatio)),
		Spans: []Span{
			{Text: fmt.Sprintf(config.FormatDaysLeft, view.Progress.DaysLeft), Color: cfg.Accent},
			{Text: fmt.Sprintf(config.FormatPercent, view.Progress.PercentLeft), Color: DefaultPalette.Footer},
		},
		FontSize: float64(footerSize),
		Align:    AlignCenter,
	}

	wrapper := &Node{
		Kind:     KindBox,
		Role:     RoleWrapper,
		Rect:     image.Rect(wrapperX, top, wrapperX+wrapperW, footer.Rect.Max.Y),
		Children: []*Node{grid, footer},
	}

	root := &Node{
		Kind:     KindBox,
		Role:     RoleRoot,
		Rect:     image.Rect(0, 0, cfg.Width, cfg.Height),
		Fill:     DefaultPalette.Background,
		Scale:    cfg.DisplayScale(),
		Children: []*Node{wrapper},
	}

	slog.Debug(config.MsgSceneBuilt,
		config.LogKeyComponent, config.CompScene,
		config.LogKeyNodes, root.Count(),
		config.LogKeyWidth, cfg.Width,
		config.LogKeyHeight, cfg.Height,
	)
	return root
}

func dayNode(class engine.DayClass, x, y, size int, cfg Config) *Node {
	n := &Node{
		Kind: KindDot,
		Rect: image.Rect(x, y, x+size, y+size),
	}
	switch class {
	case engine.DayPast:
		n.Role, n.Fill = RoleDotPast, DefaultPalette.Past
	case engine.DayCurrent:
		n.Role, n.Fill = RoleDotToday, cfg.Accent
		n.Glow = cfg.Scaled(config.GlowRadius)
	default:
		n.Role, n.Fill = RoleDotFuture, DefaultPalette.Future
	}
	return n
}

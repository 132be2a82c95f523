package cuebox

import (
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/mgpai22/captionbox/internal/webvtt"
)

const (
	DefaultFontSizePercent = 5.0
	DefaultLineHeightRatio = 1.0
	DefaultPaddingPercent  = 1.5
)

// Container is the render surface cues are placed on, in pixels.
type Container struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// LineCounter reports how many rendered lines a cue occupies.
type LineCounter func(*webvtt.Cue) int

// Options tune the metrics of a layout pass. Zero FontSizePercent and
// LineHeightRatio fall back to the defaults; PaddingPercent is used as given,
// so start from DefaultOptions to keep the default padding.
type Options struct {
	// font size as a percentage of the padded surface height
	FontSizePercent float64
	LineHeightRatio float64
	// inset applied to every side, as a percentage of the surface width
	PaddingPercent float64
	// defaults to the number of explicit line breaks in the cue text plus one
	Lines LineCounter
	// number of other showing cue sources earlier in track order; auto lines
	// stack above them. Defaults to 0 for every cue.
	StackIndex func(*webvtt.Cue) int
	Logger     *zap.SugaredLogger
}

func DefaultOptions() Options {
	return Options{
		FontSizePercent: DefaultFontSizePercent,
		LineHeightRatio: DefaultLineHeightRatio,
		PaddingPercent:  DefaultPaddingPercent,
	}
}

// Engine assigns non-overlapping boxes to the active cues of a render surface.
// It keeps only the last surface it saw, so use one Engine per surface.
type Engine struct {
	opts       Options
	logger     *zap.SugaredLogger
	last       Container
	hasLast    bool
	recomputes int
}

func NewEngine(opts Options) *Engine {
	if opts.FontSizePercent <= 0 {
		opts.FontSizePercent = DefaultFontSizePercent
	}
	if opts.LineHeightRatio <= 0 {
		opts.LineHeightRatio = DefaultLineHeightRatio
	}
	if opts.PaddingPercent < 0 {
		opts.PaddingPercent = 0
	}
	if opts.Lines == nil {
		opts.Lines = explicitLines
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Engine{opts: opts, logger: logger}
}

// Recomputes counts the layout passes that actually placed boxes.
func (e *Engine) Recomputes() int {
	return e.recomputes
}

// Layout positions every cue in cues on surface and stores the result with
// Cue.StoreDisplayState. cues must be the complete active set in track order:
// a box depends on the boxes placed before it in the same pass, so either all
// cues are recomputed or none are.
func (e *Engine) Layout(cues []*webvtt.Cue, surface Container) {
	if !e.shouldCompute(cues, surface) {
		e.logger.Debugw("layout pass skipped", "cues", len(cues))
		return
	}
	e.last = surface
	e.hasLast = true
	e.recomputes++

	area := e.paddedArea(surface)
	fontSize := math.Round(area.height*e.opts.FontSizePercent) / 100
	lineHeight := fontSize * e.opts.LineHeightRatio
	area.lineHeight = lineHeight

	placed := make([]box, 0, len(cues))
	for _, cue := range cues {
		b := e.place(cue, area, lineHeight, placed)
		placed = append(placed, b)

		top, right, bottom, left := b.relativeTo(area)
		cue.StoreDisplayState(&webvtt.DisplayState{
			Top:        top,
			Right:      right,
			Bottom:     bottom,
			Left:       left,
			Width:      b.width,
			Height:     b.height,
			LineHeight: lineHeight,
			FontSize:   fontSize,
			Direction:  webvtt.DetermineDirection(cue.Content()),
			TextAlign:  cue.Align,
			Vertical:   cue.Vertical,
		})
	}

	e.logger.Debugw("layout pass",
		"cues", len(cues),
		"width", surface.Width,
		"height", surface.Height,
		"line_height", lineHeight,
		"recomputes", e.recomputes,
	)
}

func (e *Engine) shouldCompute(cues []*webvtt.Cue, surface Container) bool {
	if !e.hasLast || e.last != surface {
		return true
	}
	for _, cue := range cues {
		if cue.HasBeenReset() || cue.DisplayState() == nil {
			return true
		}
	}
	return false
}

func (e *Engine) paddedArea(surface Container) box {
	pad := surface.Width * e.opts.PaddingPercent / 100
	return box{
		left:   surface.Left + pad,
		top:    surface.Top + pad,
		width:  math.Max(0, surface.Width-2*pad),
		height: math.Max(0, surface.Height-2*pad),
	}
}

// initial box of a cue before its line position is applied
func (e *Engine) cueBox(cue *webvtt.Cue, area box, lineHeight float64) box {
	b := box{left: area.left, top: area.top, lineHeight: lineHeight}

	textPos := cue.ResolvedPosition()
	switch cue.PositionAlign {
	case webvtt.AlignCenter:
		textPos -= cue.Size / 2
	case webvtt.AlignEnd:
		textPos -= cue.Size
	}

	extent := float64(max(1, e.opts.Lines(cue))) * lineHeight
	if cue.Vertical == webvtt.Horizontal {
		b.left = area.left + area.width*textPos/100
		b.width = area.width * cue.Size / 100
		b.height = extent
	} else {
		b.top = area.top + area.height*textPos/100
		b.height = area.height * cue.Size / 100
		b.width = extent
	}
	return b
}

func (e *Engine) linePosition(cue *webvtt.Cue) float64 {
	if !cue.Line.Auto && (cue.SnapToLines || (cue.Line.Value >= 0 && cue.Line.Value <= 100)) {
		return cue.Line.Value
	}
	index := 0
	if e.opts.StackIndex != nil {
		index = max(0, e.opts.StackIndex(cue))
	}
	return -float64(index + 1)
}

func (e *Engine) place(cue *webvtt.Cue, area box, lineHeight float64, placed []box) box {
	b := e.cueBox(cue, area, lineHeight)
	linePos := e.linePosition(cue)

	var axes []axis
	if cue.SnapToLines {
		// line 0 sits on the edge lines grow away from: top, left for lr,
		// right for rl
		var extent float64
		switch cue.Vertical {
		case webvtt.VerticalRL:
			axes = []axis{axisMinusX, axisPlusX}
			extent = area.width
			b.left = area.right() - b.width
		case webvtt.VerticalLR:
			axes = []axis{axisPlusX, axisMinusX}
			extent = area.width
		default:
			axes = []axis{axisPlusY, axisMinusY}
			extent = area.height
		}
		primary := axes[0]

		step := lineHeight
		position := step * math.Round(linePos)
		maxPosition := extent + step
		if step > 0 && math.Abs(position) > maxPosition {
			position = math.Copysign(math.Floor(maxPosition/step)*step, position)
		}
		if linePos < 0 {
			position += extent
			axes = reverseAxes(axes)
		}
		b.moveBy(primary, position)
	} else {
		var share, extent float64
		if cue.Vertical == webvtt.Horizontal {
			share, extent = b.height, area.height
		} else {
			share, extent = b.width, area.width
		}
		ownPercent := 0.0
		if extent > 0 {
			ownPercent = share / extent * 100
		}
		switch cue.LineAlign {
		case webvtt.AlignCenter:
			linePos -= ownPercent / 2
		case webvtt.AlignEnd:
			linePos -= ownPercent
		}

		offset := extent * linePos / 100
		switch cue.Vertical {
		case webvtt.VerticalRL:
			b.left = area.left + offset
		case webvtt.VerticalLR:
			b.left = area.right() - offset - b.width
		default:
			b.top = area.top + offset
		}
		axes = []axis{axisPlusY, axisMinusX, axisPlusX, axisMinusY}
	}

	best := findBestPosition(b, area, axes, placed)
	e.logger.Debugw("cue placed",
		"id", cue.ID,
		"line", linePos,
		"left", best.left,
		"top", best.top,
	)
	return best
}

// tries each axis in order from the specified position and returns the first
// contained, non-overlapping box; otherwise the candidate with the least area
// outside the container, or the specified position when every candidate ended
// fully outside
func findBestPosition(specified, container box, axes []axis, placed []box) box {
	best := specified
	bestOutside := 1.0

	for _, a := range axes {
		b := specified
		if b.lineHeight > 0 {
			// each step is taken from the specified box so rounding does not accumulate
			for steps := 1; b.overlapsOppositeAxis(container, a) ||
				(b.within(container) && b.overlapsAny(placed)); steps++ {
				b = specified
				b.moveBy(a, float64(steps)*b.lineHeight)
			}
		}
		if b.within(container) && !b.overlapsAny(placed) {
			return b
		}
		if outside := 1 - b.intersectPercentage(container); outside < bestOutside {
			best = b
			bestOutside = outside
		}
	}
	return best
}

func reverseAxes(axes []axis) []axis {
	out := make([]axis, len(axes))
	for i, a := range axes {
		out[len(axes)-1-i] = a
	}
	return out
}

func explicitLines(cue *webvtt.Cue) int {
	return strings.Count(cue.Content().TextContent(), "\n") + 1
}

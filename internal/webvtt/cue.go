package webvtt

import "strconv"

// Vertical is the writing direction of a cue.
type Vertical string

const (
	Horizontal Vertical = ""
	VerticalRL Vertical = "rl"
	VerticalLR Vertical = "lr"
)

// Align covers text alignment as well as line and position alignment; the
// latter two only accept start, center and end.
type Align string

const (
	AlignStart  Align = "start"
	AlignCenter Align = "center"
	AlignEnd    Align = "end"
	AlignLeft   Align = "left"
	AlignRight  Align = "right"
)

// AutoNumber is a cue coordinate that is either a number or "auto".
type AutoNumber struct {
	Value float64
	Auto  bool
}

// Auto is the unresolved coordinate.
var Auto = AutoNumber{Auto: true}

func Number(v float64) AutoNumber {
	return AutoNumber{Value: v}
}

func (n AutoNumber) String() string {
	if n.Auto {
		return "auto"
	}
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

// represents a named viewport subregion
type Region struct {
	ID              string
	Width           float64
	Lines           int
	RegionAnchorX   float64
	RegionAnchorY   float64
	ViewportAnchorX float64
	ViewportAnchorY float64
	Scroll          string
}

func NewRegion(id string) *Region {
	return &Region{
		ID:              id,
		Width:           100,
		Lines:           3,
		RegionAnchorX:   0,
		RegionAnchorY:   100,
		ViewportAnchorX: 0,
		ViewportAnchorY: 100,
	}
}

// Cue is a single timed caption with its positioning settings.
//
// The parser fills the fields directly. Once a cue has been laid out, use the
// setters so the layout engine sees the change; they validate the value and
// flag the cue for recomputation.
type Cue struct {
	ID            string
	StartTime     float64
	EndTime       float64
	Text          string
	PauseOnExit   bool
	Region        *Region
	Vertical      Vertical
	SnapToLines   bool
	Line          AutoNumber
	LineAlign     Align
	Position      AutoNumber
	PositionAlign Align
	Size          float64
	Align         Align

	displayState *DisplayState
	hasBeenReset bool
	content      *Node
	contentText  string
}

// returns a cue with the settings a timing line without settings resolves to
func NewCue(start, end float64, text string) *Cue {
	return &Cue{
		StartTime:     start,
		EndTime:       end,
		Text:          text,
		SnapToLines:   true,
		Line:          Auto,
		LineAlign:     AlignStart,
		Position:      Number(50),
		PositionAlign: AlignCenter,
		Size:          100,
		Align:         AlignCenter,
	}
}

// DisplayState is the box the layout engine resolved for a cue. Edge offsets
// are measured inward from the matching container edge.
type DisplayState struct {
	Top        float64
	Right      float64
	Bottom     float64
	Left       float64
	Width      float64
	Height     float64
	LineHeight float64
	FontSize   float64
	Direction  Direction
	TextAlign  Align
	Vertical   Vertical
}

func (c *Cue) DisplayState() *DisplayState {
	return c.displayState
}

// StoreDisplayState caches a computed box and clears the dirty flag.
func (c *Cue) StoreDisplayState(ds *DisplayState) {
	c.displayState = ds
	c.hasBeenReset = false
}

// HasBeenReset reports whether a setter changed the cue since its last layout.
func (c *Cue) HasBeenReset() bool {
	return c.hasBeenReset
}

// Invalidate flags the cue for recomputation, for callers that wrote fields directly.
func (c *Cue) Invalidate() {
	c.hasBeenReset = true
}

// Content returns the parsed markup tree of Text, parsed once and cached until
// the text changes.
func (c *Cue) Content() *Node {
	if c.content == nil || c.contentText != c.Text {
		c.content = ParseContent(c.Text)
		c.contentText = c.Text
	}
	return c.content
}

func (c *Cue) SetText(text string) {
	c.Text = text
	c.content = nil
	c.hasBeenReset = true
}

func (c *Cue) SetRegion(r *Region) {
	c.Region = r
	c.hasBeenReset = true
}

func (c *Cue) SetSnapToLines(v bool) {
	c.SnapToLines = v
	c.hasBeenReset = true
}

func (c *Cue) SetPauseOnExit(v bool) {
	c.PauseOnExit = v
	c.hasBeenReset = true
}

func (c *Cue) SetVertical(v Vertical) error {
	switch v {
	case Horizontal, VerticalRL, VerticalLR:
	default:
		return &InvalidValueError{Field: "vertical", Value: v}
	}
	c.Vertical = v
	c.hasBeenReset = true
	return nil
}

func (c *Cue) SetLine(v AutoNumber) {
	c.Line = v
	c.hasBeenReset = true
}

func (c *Cue) SetLineAlign(a Align) error {
	if !isBoxAlign(a) {
		return &InvalidValueError{Field: "lineAlign", Value: a}
	}
	c.LineAlign = a
	c.hasBeenReset = true
	return nil
}

func (c *Cue) SetPosition(v AutoNumber) error {
	if !v.Auto && (v.Value < 0 || v.Value > 100) {
		return &InvalidValueError{Field: "position", Value: v.Value}
	}
	c.Position = v
	c.hasBeenReset = true
	return nil
}

func (c *Cue) SetPositionAlign(a Align) error {
	if !isBoxAlign(a) {
		return &InvalidValueError{Field: "positionAlign", Value: a}
	}
	c.PositionAlign = a
	c.hasBeenReset = true
	return nil
}

func (c *Cue) SetSize(v float64) error {
	if v < 0 || v > 100 {
		return &InvalidValueError{Field: "size", Value: v}
	}
	c.Size = v
	c.hasBeenReset = true
	return nil
}

func (c *Cue) SetAlign(a Align) error {
	switch a {
	case AlignStart, AlignCenter, AlignEnd, AlignLeft, AlignRight:
	default:
		return &InvalidValueError{Field: "align", Value: a}
	}
	c.Align = a
	c.hasBeenReset = true
	return nil
}

// ResolvedPosition is Position with "auto" resolved against Align.
func (c *Cue) ResolvedPosition() float64 {
	if !c.Position.Auto {
		return c.Position.Value
	}
	return positionForAlign(c.Align)
}

func isBoxAlign(a Align) bool {
	return a == AlignStart || a == AlignCenter || a == AlignEnd
}

func positionForAlign(a Align) float64 {
	switch a {
	case AlignStart, AlignLeft:
		return 0
	case AlignEnd, AlignRight:
		return 100
	default:
		return 50
	}
}

func positionAlignForAlign(a Align) Align {
	switch a {
	case AlignStart, AlignLeft:
		return AlignStart
	case AlignEnd, AlignRight:
		return AlignEnd
	default:
		return AlignCenter
	}
}

package webvtt

import (
	"errors"
	"testing"
)

func TestParseCueTimingSettings(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		check func(t *testing.T, c *Cue)
	}{
		{
			name: "defaults",
			line: "00:01.000 --> 00:02.000",
			check: func(t *testing.T, c *Cue) {
				if c.Align != AlignCenter || c.Position != Number(50) || c.PositionAlign != AlignCenter {
					t.Errorf("unexpected alignment defaults %+v", c)
				}
				if !c.Line.Auto || c.LineAlign != AlignStart || !c.SnapToLines || c.Size != 100 {
					t.Errorf("unexpected line defaults %+v", c)
				}
				if c.Vertical != Horizontal || c.Region != nil {
					t.Errorf("unexpected vertical/region %+v", c)
				}
			},
		},
		{
			name: "align start moves position",
			line: "00:01.000 --> 00:02.000 align:start",
			check: func(t *testing.T, c *Cue) {
				if c.Align != AlignStart || c.Position != Number(0) || c.PositionAlign != AlignStart {
					t.Errorf("unexpected %+v", c)
				}
			},
		},
		{
			name: "align end moves position",
			line: "00:01.000 --> 00:02.000 align:end",
			check: func(t *testing.T, c *Cue) {
				if c.Position != Number(100) || c.PositionAlign != AlignEnd {
					t.Errorf("unexpected %+v", c)
				}
			},
		},
		{
			name: "align middle is center",
			line: "00:01.000 --> 00:02.000 align:middle",
			check: func(t *testing.T, c *Cue) {
				if c.Align != AlignCenter {
					t.Errorf("expected center, got %q", c.Align)
				}
			},
		},
		{
			name: "explicit position wins over align",
			line: "00:01.000 --> 00:02.000 align:right position:30%,end",
			check: func(t *testing.T, c *Cue) {
				if c.Align != AlignRight || c.Position != Number(30) || c.PositionAlign != AlignEnd {
					t.Errorf("unexpected %+v", c)
				}
			},
		},
		{
			name: "line number",
			line: "00:01.000 --> 00:02.000 line:-1,end vertical:rl size:50%",
			check: func(t *testing.T, c *Cue) {
				if c.Line != Number(-1) || c.LineAlign != AlignEnd || !c.SnapToLines {
					t.Errorf("unexpected line %+v", c)
				}
				if c.Vertical != VerticalRL || c.Size != 50 {
					t.Errorf("unexpected vertical/size %+v", c)
				}
			},
		},
		{
			name: "line percent disables snapping",
			line: "00:01.000 --> 00:02.000 line:25%",
			check: func(t *testing.T, c *Cue) {
				if c.Line != Number(25) || c.SnapToLines {
					t.Errorf("unexpected %+v", c)
				}
			},
		},
		{
			name: "invalid values fall back",
			line: "00:01.000 --> 00:02.000 line:abc size:120% vertical:up align:justify position:x% unknown:1",
			check: func(t *testing.T, c *Cue) {
				if !c.Line.Auto || c.Size != 100 || c.Vertical != Horizontal || c.Align != AlignCenter {
					t.Errorf("unexpected %+v", c)
				}
				if c.Position != Number(50) {
					t.Errorf("unexpected position %v", c.Position)
				}
			},
		},
		{
			name: "first setting wins",
			line: "00:01.000 --> 00:02.000 size:10% size:20%",
			check: func(t *testing.T, c *Cue) {
				if c.Size != 10 {
					t.Errorf("expected 10, got %v", c.Size)
				}
			},
		},
		{
			name: "unknown region is ignored",
			line: "00:01.000 --> 00:02.000 region:missing",
			check: func(t *testing.T, c *Cue) {
				if c.Region != nil {
					t.Errorf("expected no region, got %+v", c.Region)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cue := NewCue(0, 0, "")
			if err := parseCueTiming(tt.line, cue, nil); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cue.StartTime != 1 || cue.EndTime != 2 {
				t.Errorf("unexpected times %v --> %v", cue.StartTime, cue.EndTime)
			}
			tt.check(t, cue)
		})
	}
}

func TestParseCueTimingRegionShadowing(t *testing.T) {
	older := NewRegion("r")
	older.Width = 40
	other := NewRegion("q")
	newer := NewRegion("r")
	newer.Width = 60

	cue := NewCue(0, 0, "")
	if err := parseCueTiming("00:01.000 --> 00:02.000 region:r", cue, []*Region{older, other, newer}); err != nil {
		t.Fatal(err)
	}
	if cue.Region != newer {
		t.Errorf("expected the later region, got %+v", cue.Region)
	}
}

func TestParseCueTimingErrors(t *testing.T) {
	for _, line := range []string{
		"garbage",
		"00:01.000 -> 00:02.000",
		"00:01.000 --> soon",
		"",
	} {
		t.Run(line, func(t *testing.T) {
			err := parseCueTiming(line, NewCue(0, 0, ""), nil)
			if !errors.Is(err, ErrBadTimeStamp) {
				t.Errorf("expected BadTimeStamp for %q, got %v", line, err)
			}
		})
	}
}

func TestCueSettersMarkDirty(t *testing.T) {
	cue := NewCue(1, 2, "a")
	cue.StoreDisplayState(&DisplayState{})
	if cue.HasBeenReset() {
		t.Fatal("stored state must clear the dirty flag")
	}

	if err := cue.SetSize(120); err == nil {
		t.Error("expected size 120 to be rejected")
	}
	var invalid *InvalidValueError
	if err := cue.SetPosition(Number(-1)); !errors.As(err, &invalid) || invalid.Field != "position" {
		t.Errorf("expected position error, got %v", err)
	}
	if err := cue.SetLineAlign(AlignLeft); err == nil {
		t.Error("expected lineAlign left to be rejected")
	}
	if err := cue.SetVertical("up"); err == nil {
		t.Error("expected vertical up to be rejected")
	}
	if cue.HasBeenReset() || cue.Size != 100 {
		t.Fatal("rejected values must leave the cue untouched")
	}

	if err := cue.SetPosition(Auto); err != nil {
		t.Fatal(err)
	}
	if !cue.HasBeenReset() {
		t.Error("expected setter to mark cue dirty")
	}
	if err := cue.SetAlign(AlignEnd); err != nil {
		t.Fatal(err)
	}
	if got := cue.ResolvedPosition(); got != 100 {
		t.Errorf("expected auto position to resolve to 100, got %v", got)
	}
}

func TestCueFlagSettersMarkDirty(t *testing.T) {
	region := NewRegion("r")
	tests := []struct {
		name  string
		set   func(*Cue)
		check func(*Cue) bool
	}{
		{"region", func(c *Cue) { c.SetRegion(region) }, func(c *Cue) bool { return c.Region == region }},
		{"snap to lines", func(c *Cue) { c.SetSnapToLines(false) }, func(c *Cue) bool { return !c.SnapToLines }},
		{"pause on exit", func(c *Cue) { c.SetPauseOnExit(true) }, func(c *Cue) bool { return c.PauseOnExit }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cue := NewCue(0, 1, "x")
			cue.StoreDisplayState(&DisplayState{})
			tt.set(cue)
			if !tt.check(cue) {
				t.Errorf("setter did not apply, got %+v", cue)
			}
			if !cue.HasBeenReset() {
				t.Error("expected setter to mark cue dirty")
			}
		})
	}
}

func TestCueContentIsCached(t *testing.T) {
	cue := NewCue(0, 1, "<b>bold</b>")
	first := cue.Content()
	if cue.Content() != first {
		t.Error("expected cached content tree")
	}
	cue.SetText("plain")
	if got := cue.Content().TextContent(); got != "plain" {
		t.Errorf("expected reparsed content, got %q", got)
	}
}

package cuebox

import (
	"testing"

	"github.com/mgpai22/captionbox/internal/webvtt"
)

func TestBoxOverlaps(t *testing.T) {
	base := box{left: 0, top: 0, width: 10, height: 10}
	tests := []struct {
		name  string
		other box
		want  bool
	}{
		{"same", base, true},
		{"inside", box{left: 2, top: 2, width: 2, height: 2}, true},
		{"touching right edge", box{left: 10, top: 0, width: 5, height: 10}, false},
		{"touching bottom edge", box{left: 0, top: 10, width: 10, height: 5}, false},
		{"corner overlap", box{left: 9, top: 9, width: 5, height: 5}, true},
		{"apart", box{left: 20, top: 20, width: 1, height: 1}, false},
		{"touching after rounding", box{left: 0, top: 10 - 1e-13, width: 10, height: 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.overlaps(tt.other); got != tt.want {
				t.Errorf("overlaps = %v, want %v", got, tt.want)
			}
			if got := tt.other.overlaps(base); got != tt.want {
				t.Errorf("overlaps is not symmetric")
			}
		})
	}
}

func TestBoxGeometry(t *testing.T) {
	container := box{left: 0, top: 0, width: 100, height: 100}
	b := box{left: 90, top: 50, width: 20, height: 10, lineHeight: 5}

	if b.within(container) {
		t.Error("box sticking out must not be within")
	}
	if got := b.intersectPercentage(container); got != 0.5 {
		t.Errorf("expected half inside, got %v", got)
	}
	if !b.overlapsOppositeAxis(container, axisMinusX) || b.overlapsOppositeAxis(container, axisPlusX) {
		t.Error("unexpected opposite axis result")
	}

	b.move(axisMinusX)
	b.move(axisMinusX)
	if !b.within(container) || b.left != 80 {
		t.Errorf("expected box moved inside, got %+v", b)
	}

	top, right, bottom, left := b.relativeTo(container)
	if top != 50 || right != 0 || bottom != 40 || left != 80 {
		t.Errorf("unexpected offsets %v %v %v %v", top, right, bottom, left)
	}

	empty := box{}
	if got := empty.intersectPercentage(container); got != 0 {
		t.Errorf("expected 0 for an empty box, got %v", got)
	}
}

func TestFindBestPositionTriesAxesInOrder(t *testing.T) {
	container := box{width: 100, height: 100}
	placed := []box{{left: 0, top: 80, width: 100, height: 20}}
	start := box{left: 0, top: 80, width: 100, height: 20, lineHeight: 20}

	got := findBestPosition(start, container, []axis{axisPlusY, axisMinusY}, placed)
	if got.top != 60 {
		t.Errorf("expected the box one line up, got %+v", got)
	}
}

func TestActiveAt(t *testing.T) {
	cues := []*webvtt.Cue{
		webvtt.NewCue(0, 2, "a"),
		webvtt.NewCue(1, 3, "b"),
		webvtt.NewCue(5, 5, "flash"),
	}

	tests := []struct {
		at   float64
		want []string
	}{
		{0, []string{"a"}},
		{1.5, []string{"a", "b"}},
		{2, []string{"a", "b"}},
		{3.5, nil},
		{5, []string{"flash"}},
		{5.5, []string{"flash"}},
		{5.6, nil},
	}

	for _, tt := range tests {
		got := ActiveAt(cues, tt.at)
		if len(got) != len(tt.want) {
			t.Errorf("at %v: expected %v, got %d cues", tt.at, tt.want, len(got))
			continue
		}
		for i := range got {
			if got[i].Text != tt.want[i] {
				t.Errorf("at %v: cue %d is %q, want %q", tt.at, i, got[i].Text, tt.want[i])
			}
		}
	}
}

package cuebox

import "github.com/mgpai22/captionbox/internal/webvtt"

// a cue with no duration stays on screen this long, in seconds
const zeroDurationHold = 0.5

// ActiveAt returns the cues showing at playback time t, in their original
// order. A cue is showing while start <= t <= end.
func ActiveAt(cues []*webvtt.Cue, t float64) []*webvtt.Cue {
	var active []*webvtt.Cue
	for _, cue := range cues {
		end := cue.EndTime
		if cue.StartTime == cue.EndTime {
			end = cue.StartTime + zeroDurationHold
		}
		if cue.StartTime <= t && t <= end {
			active = append(active, cue)
		}
	}
	return active
}

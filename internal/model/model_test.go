package model

import (
	"strings"
	"testing"
)

func TestParseLane(t *testing.T) {
	tests := []struct {
		in   string
		want Lane
	}{
		{"safe", LaneSafe},
		{"safelane", LaneSafe},
		{"mid", LaneMid},
		{"middle", LaneMid},
		{"off", LaneOff},
		{"offlane", LaneOff},
		{"jungle", LaneJungle},
		{"SAFE", LaneSafe},
		{"Mid", LaneMid},
		{"", LaneNone},
		{"fountain", LaneNone},
	}
	for _, tt := range tests {
		if got := ParseLane(tt.in); got != tt.want {
			t.Errorf("ParseLane(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// The lowercase String form of every real lane must parse back to itself;
// the storage layer relies on this round trip for the lane_hint column.
func TestParseLane_RoundTripsString(t *testing.T) {
	for _, l := range []Lane{LaneSafe, LaneMid, LaneOff, LaneJungle} {
		if got := ParseLane(strings.ToLower(l.String())); got != l {
			t.Errorf("ParseLane(%q) = %v, want %v", strings.ToLower(l.String()), got, l)
		}
	}
}

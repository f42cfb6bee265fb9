package live

import (
	"github.com/tshephomotlhale/Family-Feud-Web/internal/room"
)

type CueKind string

const (
	CueStrike CueKind = "strike"
	CueReveal CueKind = "reveal"
)

// Cue is a one-shot effect derived from two successive snapshots, e.g. a
// sound the display client should play.
type Cue struct {
	Kind        CueKind `json:"kind"`
	AnswerIndex int     `json:"answerIndex,omitempty"`
}

// Cues diffs two successive room snapshots and returns the effects that fire
// on this transition. The strike cue fires only on a strict increase. Reveal
// cues are tracked per question position: the baseline for an answer flag is
// the same question's flag in the previous snapshot, so navigating between
// questions never refires cues, and redelivering an identical snapshot fires
// nothing.
func Cues(prev, latest room.Room) []Cue {
	var out []Cue
	if latest.Strikes > prev.Strikes {
		out = append(out, Cue{Kind: CueStrike})
	}
	qi := latest.CurrentQuestion
	if qi < 0 || qi >= len(latest.Questions) {
		return out
	}
	cur := latest.Questions[qi].Answers
	var base []room.Answer
	if qi < len(prev.Questions) {
		base = prev.Questions[qi].Answers
	}
	for i := range cur {
		if !cur[i].Revealed {
			continue
		}
		if i < len(base) && base[i].Revealed {
			continue
		}
		out = append(out, Cue{Kind: CueReveal, AnswerIndex: i})
	}
	return out
}

package room

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotEnoughTeams = errors.New("at least 2 teams required")
	ErrGameStarted    = errors.New("game already started")
	ErrEmptyTeamName  = errors.New("team name required")
	ErrMaxStrikes     = errors.New("maximum strikes reached")
	ErrUnknownTeam    = errors.New("unknown team")
	ErrZeroDelta      = errors.New("score change must be non-zero")
	ErrNoQuestion     = errors.New("no question available")
	ErrBadAnswerIndex = errors.New("answer index out of range")
)

// Reducers are pure transition functions: given the latest observed room and
// an action they return the partial state to write, or an error for rejected
// actions. A (nil, nil) result is a silent no-op; nothing is written.

// Start flips the room to started. Irreversible; there is no "ended" state.
func Start(r Room) (Patch, error) {
	if r.Status != StatusWaiting {
		return nil, ErrGameStarted
	}
	if len(r.Teams) < 2 {
		return nil, ErrNotEnoughTeams
	}
	return Patch{"status": StatusStarted}, nil
}

// AddTeam appends a team with score 0 and a stable id. Teams can only be
// added while the room is waiting.
func AddTeam(r Room, name string) (Patch, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyTeamName
	}
	if r.Status != StatusWaiting {
		return nil, ErrGameStarted
	}
	teams := append(append([]Team(nil), r.Teams...), Team{
		ID:    uuid.NewString(),
		Name:  name,
		Score: 0,
	})
	return Patch{"teams": teams}, nil
}

// Advance moves the current question by dir (+1 or -1). Out-of-bounds
// results are dropped: no clamping, no wraparound.
func Advance(r Room, dir int) (Patch, error) {
	next := r.CurrentQuestion + dir
	if next < 0 || next >= len(r.Questions) {
		return nil, nil
	}
	return Patch{"currentQuestion": next}, nil
}

// Reveal marks an answer of the current question as shown. Revealed flags
// are monotonic within a question; revealing twice is an idempotent no-op.
// The whole questions field is rewritten, matching the store's field-level
// update granularity.
func Reveal(r Room, index int) (Patch, error) {
	q := r.Current()
	if q == nil {
		return nil, ErrNoQuestion
	}
	if index < 0 || index >= len(q.Answers) {
		return nil, ErrBadAnswerIndex
	}
	if q.Answers[index].Revealed {
		return nil, nil
	}
	questions := make([]Question, len(r.Questions))
	for i, orig := range r.Questions {
		cq := orig
		cq.Answers = append([]Answer(nil), orig.Answers...)
		questions[i] = cq
	}
	questions[r.CurrentQuestion].Answers[index].Revealed = true
	return Patch{"questions": questions}, nil
}

// AdjustScore adds delta to the team identified by its stable id. Matching
// by name is the legacy behavior and breaks down with duplicate names, so
// ids are authoritative here.
func AdjustScore(r Room, teamID string, delta int) (Patch, error) {
	if delta == 0 {
		return nil, ErrZeroDelta
	}
	teams := append([]Team(nil), r.Teams...)
	found := false
	for i := range teams {
		if teams[i].ID == teamID {
			teams[i].Score += delta
			found = true
			break
		}
	}
	if !found {
		return nil, ErrUnknownTeam
	}
	return Patch{"teams": teams}, nil
}

// AddStrike increments the wrong-guess counter, rejected once it hits 3.
func AddStrike(r Room) (Patch, error) {
	if r.Strikes >= 3 {
		return nil, ErrMaxStrikes
	}
	return Patch{"strikes": r.Strikes + 1}, nil
}

// ResetStrikes is unconditional.
func ResetStrikes(Room) (Patch, error) {
	return Patch{"strikes": 0}, nil
}

// ClearBuzzer rearms the buzzer for the next face-off.
func ClearBuzzer(Room) (Patch, error) {
	return Patch{"buzzer": (*BuzzEvent)(nil)}, nil
}

package room

import (
	"time"
)

type Status string

const (
	StatusWaiting Status = "waiting"
	StatusStarted Status = "started"
)

type Answer struct {
	Text     string `json:"answer"`
	Points   int    `json:"points"`
	Revealed bool   `json:"revealed"`
}

type Question struct {
	Text    string   `json:"question"`
	Answers []Answer `json:"answers"`
}

type Team struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// BuzzEvent is the last recorded buzz for the current question.
type BuzzEvent struct {
	Player    string `json:"player"`
	Timestamp string `json:"timestamp"`
}

// Room is the root aggregate for one game session, keyed by its join code.
type Room struct {
	Name            string     `json:"name"`
	Status          Status     `json:"status"`
	Questions       []Question `json:"questions"`
	CurrentQuestion int        `json:"currentQuestion"`
	Teams           []Team     `json:"teams"`
	Strikes         int        `json:"strikes"`
	Buzzer          *BuzzEvent `json:"buzzer,omitempty"`
	Score           int        `json:"score"`
	CreatedAt       time.Time  `json:"createdAt"`
}

func New(name string, questions []Question) Room {
	return Room{
		Name:            name,
		Status:          StatusWaiting,
		Questions:       questions,
		CurrentQuestion: 0,
		Teams:           []Team{},
		Strikes:         0,
		Score:           0,
		CreatedAt:       time.Now().UTC(),
	}
}

// Current returns the question at CurrentQuestion, or nil if the room holds
// no questions or the index is out of range (malformed snapshot degradation).
func (r *Room) Current() *Question {
	if len(r.Questions) == 0 || r.CurrentQuestion < 0 || r.CurrentQuestion >= len(r.Questions) {
		return nil
	}
	return &r.Questions[r.CurrentQuestion]
}

// Clone deep-copies the aggregate so snapshots handed to subscribers never
// alias the store's document.
func (r Room) Clone() Room {
	out := r
	out.Questions = make([]Question, len(r.Questions))
	for i, q := range r.Questions {
		cq := q
		cq.Answers = append([]Answer(nil), q.Answers...)
		out.Questions[i] = cq
	}
	out.Teams = append([]Team(nil), r.Teams...)
	if r.Buzzer != nil {
		b := *r.Buzzer
		out.Buzzer = &b
	}
	return out
}

// Patch is a partial-field update in the shape the store's update call
// accepts. Only the listed keys are understood; unknown keys are ignored.
type Patch map[string]any

// ApplyPatch merges a partial update into the document. Field-level
// last-write-wins: each present key replaces the whole field.
func ApplyPatch(r *Room, p Patch) {
	for key, val := range p {
		switch key {
		case "name":
			if v, ok := val.(string); ok {
				r.Name = v
			}
		case "status":
			if v, ok := val.(Status); ok {
				r.Status = v
			}
		case "questions":
			if v, ok := val.([]Question); ok {
				r.Questions = v
			}
		case "currentQuestion":
			if v, ok := val.(int); ok {
				r.CurrentQuestion = v
			}
		case "teams":
			if v, ok := val.([]Team); ok {
				r.Teams = v
			}
		case "strikes":
			if v, ok := val.(int); ok {
				r.Strikes = v
			}
		case "buzzer":
			if v, ok := val.(*BuzzEvent); ok {
				r.Buzzer = v
			}
		case "score":
			if v, ok := val.(int); ok {
				r.Score = v
			}
		}
	}
}

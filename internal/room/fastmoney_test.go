package room

import (
	"testing"
)

func TestTallyFixture(t *testing.T) {
	key := []Answer{
		{Text: "Bug in the Code", Points: 30},
		{Text: "Chat GPT", Points: 25},
	}
	subs := []string{"bug in the code", "CHAT gpt", "x", "", ""}

	if got := Tally(subs, key); got != 55 {
		t.Fatalf("expected 55 points, got %d", got)
	}
}

func TestTallyTrimsAndIgnoresBlanks(t *testing.T) {
	key := []Answer{{Text: "Python", Points: 35}}

	if got := Tally([]string{"  python  "}, key); got != 35 {
		t.Fatalf("expected 35 for trimmed match, got %d", got)
	}
	if got := Tally([]string{"", "   ", "\t"}, key); got != 0 {
		t.Fatalf("blank submissions must not score, got %d", got)
	}
	if got := Tally([]string{"pythons"}, key); got != 0 {
		t.Fatalf("partial matches must not score, got %d", got)
	}
}

// Two submissions hitting the same answer both count. Known double-count
// behavior, kept deliberately.
func TestTallyCountsDuplicateMatches(t *testing.T) {
	key := []Answer{{Text: "Java", Points: 13}}

	if got := Tally([]string{"java", "JAVA"}, key); got != 26 {
		t.Fatalf("expected duplicate submissions to both count (26), got %d", got)
	}
}

func TestTallyUsesFullKeyNotOnlyRevealed(t *testing.T) {
	key := []Answer{
		{Text: "Quick Sort", Points: 33, Revealed: true},
		{Text: "Merge Sort", Points: 27, Revealed: false},
	}

	if got := Tally([]string{"merge sort"}, key); got != 27 {
		t.Fatalf("unrevealed answers must still score, got %d", got)
	}
}

func TestTallyFastMoneyAccumulates(t *testing.T) {
	r := testRoom()
	r.Score = 100

	p, total, err := TallyFastMoney(r, []string{"alpha", "beta", "", "", ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 70 {
		t.Fatalf("expected round total 70, got %d", total)
	}
	ApplyPatch(&r, p)
	if r.Score != 170 {
		t.Fatalf("expected cumulative score 170, got %d", r.Score)
	}
}

func TestTallyFastMoneyNoQuestion(t *testing.T) {
	r := testRoom()
	r.CurrentQuestion = 42

	if _, _, err := TallyFastMoney(r, []string{"alpha"}); err != ErrNoQuestion {
		t.Fatalf("expected ErrNoQuestion, got %v", err)
	}
}

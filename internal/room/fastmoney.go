package room

import "strings"

// Tally matches free-text fast-money submissions against an answer key and
// sums the points of every match. Matching is case-insensitive exact
// equality after trimming; no fuzzy matching. Two submissions hitting the
// same answer both count — the double count is long-standing behavior and
// is kept rather than silently changed.
func Tally(submissions []string, key []Answer) int {
	total := 0
	for _, s := range submissions {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		for _, a := range key {
			if strings.EqualFold(strings.TrimSpace(a.Text), s) {
				total += a.Points
				break
			}
		}
	}
	return total
}

// TallyFastMoney scores five submissions against the current question's full
// answer key (revealed or not) and returns a patch adding the round total to
// the room's cumulative score.
func TallyFastMoney(r Room, submissions []string) (Patch, int, error) {
	q := r.Current()
	if q == nil {
		return nil, 0, ErrNoQuestion
	}
	total := Tally(submissions, q.Answers)
	return Patch{"score": r.Score + total}, total, nil
}

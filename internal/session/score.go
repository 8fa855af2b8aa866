package session

import "sync"

// ScoreTracker accumulates per-answer scores for one interview and exposes
// the running average. Range validation happens upstream where the score is
// parsed out of the feedback text.
type ScoreTracker struct {
	mu    sync.Mutex
	total int
	count int
}

func (t *ScoreTracker) Record(score int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.total += score
	t.count++
}

// Average returns total/count, or 0 before any score has been recorded.
func (t *ScoreTracker) Average() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.count == 0 {
		return 0
	}
	return float64(t.total) / float64(t.count)
}

// Count reports how many answers contributed a score. Turns whose feedback
// carried no score label are not counted.
func (t *ScoreTracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

// Reset clears total and count under one lock acquisition so no
// partially-reset state is observable.
func (t *ScoreTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.total = 0
	t.count = 0
}

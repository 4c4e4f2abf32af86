package monitor

import "time"

// realClock is the production Clock behind the poll schedule; tests swap in
// a manual clock so ticks can be driven deterministically.
type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) Ticker(d time.Duration) Ticker {
	return &realTicker{t: time.NewTicker(d)}
}

// realTicker wraps time.Ticker; one tick triggers one device fetch.
type realTicker struct {
	t *time.Ticker
}

func (r *realTicker) Chan() <-chan time.Time {
	return r.t.C
}

func (r *realTicker) Stop() {
	r.t.Stop()
}

package dom

import (
	"net/url"
	"sync"
	"sync/atomic"
	"time"
)

// Window owns a document and the page-level state around it. Event dispatch
// and timer callbacks are serialised behind one lock so page code always
// runs in a single logical thread.
type Window struct {
	Document *Document

	mu       sync.Mutex
	location *url.URL
	history  []string
	media    map[string]*MediaQuery
}

// NewWindow wraps doc with the page URL rawURL.
func NewWindow(doc *Document, rawURL string) (*Window, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	return &Window{
		Document: doc,
		location: u,
		history:  []string{u.String()},
		media:    make(map[string]*MediaQuery),
	}, nil
}

// Location returns a copy of the current URL.
func (w *Window) Location() *url.URL {
	u := *w.location
	return &u
}

// QueryParam returns the value of the query parameter key.
func (w *Window) QueryParam(key string) string {
	return w.location.Query().Get(key)
}

// ReplaceState swaps the current URL without adding a history entry.
func (w *Window) ReplaceState(u *url.URL) {
	c := *u
	w.location = &c
	w.history[len(w.history)-1] = c.String()
}

// SetQueryParam rewrites key in the current URL through ReplaceState.
// An empty value removes the parameter.
func (w *Window) SetQueryParam(key, value string) {
	u := w.Location()
	q := u.Query()
	if value == "" {
		q.Del(key)
	} else {
		q.Set(key, value)
	}
	u.RawQuery = q.Encode()
	w.ReplaceState(u)
}

// HistoryLength returns the number of history entries.
func (w *Window) HistoryLength() int {
	return len(w.history)
}

// Dispatch delivers ev to el inside the page's execution context.
func (w *Window) Dispatch(el *Element, ev Event) {
	if el == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	el.Dispatch(ev)
}

// Do runs fn inside the page's execution context.
func (w *Window) Do(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn()
}

// Timer is a pending SetTimeout callback.
type Timer struct {
	t       *time.Timer
	cleared atomic.Bool
}

// Clear cancels the callback. A cleared callback never runs, even if its
// timer already fired and is waiting for the page lock.
func (t *Timer) Clear() {
	if t == nil {
		return
	}
	t.cleared.Store(true)
	t.t.Stop()
}

// SetTimeout schedules fn to run once after d inside the page's execution
// context.
func (w *Window) SetTimeout(d time.Duration, fn func()) *Timer {
	timer := &Timer{}
	timer.t = time.AfterFunc(d, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if timer.cleared.Load() {
			return
		}
		fn()
	})
	return timer
}

// MatchMedia returns the media query list for query, creating a
// non-matching one on first use.
func (w *Window) MatchMedia(query string) *MediaQuery {
	w.mu.Lock()
	defer w.mu.Unlock()
	mq, ok := w.media[query]
	if !ok {
		mq = &MediaQuery{win: w, query: query}
		w.media[query] = mq
	}
	return mq
}

// MediaQuery reports whether a media query matches and notifies listeners
// when that changes.
type MediaQuery struct {
	win       *Window
	query     string
	matches   bool
	listeners []func(matches bool)
}

// Query returns the media query text.
func (m *MediaQuery) Query() string {
	return m.query
}

// Matches reports the current state.
func (m *MediaQuery) Matches() bool {
	return m.matches
}

// OnChange registers fn for state changes.
func (m *MediaQuery) OnChange(fn func(matches bool)) {
	m.listeners = append(m.listeners, fn)
}

// Set updates the state as the host environment would. Listeners run
// inside the page's execution context, only when the state changes.
func (m *MediaQuery) Set(matches bool) {
	m.win.mu.Lock()
	defer m.win.mu.Unlock()
	if m.matches == matches {
		return
	}
	m.matches = matches
	for _, fn := range m.listeners {
		fn(matches)
	}
}

// Package navigation holds the typed page identifiers of the marketing site
// and a navigation-state object that replaces the untyped page-switch event.
package navigation

import (
	"strings"
	"sync"
)

// PageID names a top-level page of the site.
type PageID string

const (
	Home     PageID = "home"
	About    PageID = "about"
	Services PageID = "services"
	Projects PageID = "projects"
	FAQ      PageID = "faq"
	Contact  PageID = "contact"
	NotFound PageID = "not-found"
)

var known = map[PageID]struct{}{
	Home: {}, About: {}, Services: {}, Projects: {}, FAQ: {}, Contact: {},
}

// Parse maps a raw destination to a PageID. Unknown destinations resolve to
// NotFound, which the front end renders as the "page not found" view.
func Parse(raw string) PageID {
	id := PageID(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := known[id]; ok {
		return id
	}
	return NotFound
}

// Valid reports whether id is a routable page.
func (id PageID) Valid() bool {
	_, ok := known[id]
	return ok
}

// Listener is notified after every page change.
type Listener func(from, to PageID)

// State is the shared current-page holder. GoTo is its only mutator.
type State struct {
	mu        sync.RWMutex
	current   PageID
	nextID    int
	listeners map[int]Listener
}

// NewState starts at the given page, or Home when start is not routable.
func NewState(start PageID) *State {
	if !start.Valid() {
		start = Home
	}
	return &State{current: start, listeners: make(map[int]Listener)}
}

func (s *State) Current() PageID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// GoTo switches to page and returns the page actually shown. Listeners run
// outside the lock, only when the page changed.
func (s *State) GoTo(page PageID) PageID {
	page = Parse(string(page))

	s.mu.Lock()
	from := s.current
	s.current = page
	listeners := make([]Listener, 0, len(s.listeners))
	if from != page {
		for _, l := range s.listeners {
			listeners = append(listeners, l)
		}
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(from, page)
	}
	return page
}

// Subscribe registers l and returns the function that removes it.
func (s *State) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

package viz

import (
	"fmt"
	"net/url"
)

// ShareLink is the addressable location of the TUI. Replace swaps the query
// in place; there is no history.
type ShareLink struct {
	base  string
	query string
}

func NewShareLink(base string, query string) (*ShareLink, error) {
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("share link base: %w", err)
	}
	return &ShareLink{base: base, query: query}, nil
}

func (l *ShareLink) Replace(query string) error {
	if _, err := url.ParseQuery(query); err != nil {
		return fmt.Errorf("share link query: %w", err)
	}
	l.query = query
	return nil
}

func (l *ShareLink) Query() string { return l.query }

func (l *ShareLink) String() string {
	if l.query == "" {
		return l.base
	}
	return l.base + "?" + l.query
}

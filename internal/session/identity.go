// Package session holds the per-session identity of the person using the
// calculator.
//
// An Identity starts Unset and moves to Set on the first non-empty name
// submission. It never returns to Unset; a new session means a new Identity.
package session

import (
	"errors"
	"strings"
	"unicode"

	"github.com/oklog/ulid/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// ErrEmptyName is the validation error for an empty or whitespace-only name.
	ErrEmptyName = errors.New("please enter a valid name to continue")

	// ErrAlreadySet is returned when a name is submitted after one was accepted.
	ErrAlreadySet = errors.New("session name already set")
)

// State is the lifecycle state of an Identity.
type State int

const (
	// StateUnset means no valid name has been submitted yet.
	StateUnset State = iota
	// StateSet means a display name has been accepted.
	StateSet
)

// String returns the state name.
func (s State) String() string {
	if s == StateSet {
		return "set"
	}
	return "unset"
}

// Identity is the session context handed to every handler.
type Identity struct {
	id    ulid.ULID
	name  string
	state State
}

// New returns an Unset identity with a fresh session ID.
func New() *Identity {
	return &Identity{id: ulid.Make()}
}

// Submit validates a name, normalizes it and moves the identity to Set.
// Whitespace is trimmed and the name title-cased ("ada lovelace" becomes
// "Ada Lovelace"). An empty result leaves the identity Unset and returns
// ErrEmptyName.
func (i *Identity) Submit(name string) error {
	if i.state == StateSet {
		return ErrAlreadySet
	}

	normalized, err := NormalizeName(name)
	if err != nil {
		return err
	}

	i.name = normalized
	i.state = StateSet
	return nil
}

// NormalizeName trims and title-cases a display name. Every run of letters
// is cased on its own, so "o'brien" becomes "O'Brien" and "r2d2" "R2D2".
func NormalizeName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrEmptyName
	}

	caser := cases.Title(language.Und)
	var b strings.Builder
	b.Grow(len(trimmed))
	start := -1
	for i, r := range trimmed {
		if unicode.IsLetter(r) || (start >= 0 && unicode.IsMark(r)) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			b.WriteString(caser.String(trimmed[start:i]))
			start = -1
		}
		b.WriteRune(r)
	}
	if start >= 0 {
		b.WriteString(caser.String(trimmed[start:]))
	}
	return b.String(), nil
}

// Name returns the display name, or "" while Unset.
func (i *Identity) Name() string {
	return i.name
}

// State returns the current lifecycle state.
func (i *Identity) State() State {
	return i.state
}

// IsSet reports whether a display name has been accepted.
func (i *Identity) IsSet() bool {
	return i.state == StateSet
}

// ID returns the session ID used to correlate log lines.
func (i *Identity) ID() string {
	return i.id.String()
}

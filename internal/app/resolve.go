// ABOUTME: Resolves user-typed ids or id prefixes to stored entity ids.
// ABOUTME: Shared by the CLI and the MCP tools so both accept short ids.
package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/betterself/internal/daily"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrAmbiguous = errors.New("ambiguous id prefix")
)

// ResolveID returns the id in ids matching input exactly, or the single id
// starting with input.
func ResolveID(kind, input string, ids []string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("%s %q: %w", kind, input, ErrNotFound)
	}
	var matches []string
	for _, id := range ids {
		if id == input {
			return id, nil
		}
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s %q: %w", kind, input, ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s %q matches %d ids: %w", kind, input, len(matches), ErrAmbiguous)
	}
}

// ResolveItem resolves an id on one of the daily checklists.
func (a *App) ResolveItem(list daily.ListID, input string) (string, error) {
	items := a.Daily.List(list)
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ResolveID(string(list)+" item", input, ids)
}

// ResolveHabit resolves a habit id.
func (a *App) ResolveHabit(input string) (string, error) {
	habits := a.Daily.Habits()
	ids := make([]string, len(habits))
	for i, h := range habits {
		ids[i] = h.ID
	}
	return ResolveID("habit", input, ids)
}

// ResolveStreak resolves a streak monitor id.
func (a *App) ResolveStreak(input string) (string, error) {
	list := a.Streaks.List()
	ids := make([]string, len(list))
	for i, m := range list {
		ids[i] = m.ID
	}
	return ResolveID("streak", input, ids)
}

// ResolveChallenge resolves a multi-day challenge id.
func (a *App) ResolveChallenge(input string) (string, error) {
	list := a.Challenges.List()
	ids := make([]string, len(list))
	for i, c := range list {
		ids[i] = c.ID
	}
	return ResolveID("challenge", input, ids)
}

package model

import (
	"strings"
	"unicode"
)

// Todo is the domain model for a todo entry.
// ID is derived from Name and doubles as the selection and removal key.
type Todo struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// New builds a Todo from a user-supplied name.
func New(name string) Todo {
	name = strings.TrimSpace(name)
	return Todo{Name: name, ID: DeriveID(name)}
}

// DeriveID strips every whitespace rune from name and lowercases the rest.
func DeriveID(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

// RemoveByID returns a copy of todos without any entry whose ID is id.
func RemoveByID(id string, todos []Todo) []Todo {
	out := make([]Todo, 0, len(todos))
	for _, t := range todos {
		if t.ID == id {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Append returns a copy of todos with t at the end.
func Append(t Todo, todos []Todo) []Todo {
	out := make([]Todo, 0, len(todos)+1)
	out = append(out, todos...)
	return append(out, t)
}

func Contains(id string, todos []Todo) bool {
	for _, t := range todos {
		if t.ID == id {
			return true
		}
	}
	return false
}

// DuplicateIDs lists ids that occur more than once, in order of first repeat.
func DuplicateIDs(todos []Todo) []string {
	seen := make(map[string]int, len(todos))
	var dups []string
	for _, t := range todos {
		seen[t.ID]++
		if seen[t.ID] == 2 {
			dups = append(dups, t.ID)
		}
	}
	return dups
}

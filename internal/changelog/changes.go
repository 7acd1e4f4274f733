package changelog

import (
	"fmt"
	"strings"
)

// ChangeKind is one of the six fixed Keep a Changelog categories.
type ChangeKind int

const (
	Added ChangeKind = iota
	Changed
	Deprecated
	Removed
	Fixed
	Security
)

// ChangeKinds lists all categories in their standard rendering order.
func ChangeKinds() []ChangeKind {
	return []ChangeKind{Added, Changed, Deprecated, Removed, Fixed, Security}
}

// String returns the category name as it appears in `### ` headings.
func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "Added"
	case Changed:
		return "Changed"
	case Deprecated:
		return "Deprecated"
	case Removed:
		return "Removed"
	case Fixed:
		return "Fixed"
	case Security:
		return "Security"
	default:
		return "Unknown"
	}
}

// ParseChangeKind maps a heading name to its ChangeKind. Matching is
// case-insensitive.
func ParseChangeKind(s string) (ChangeKind, error) {
	switch strings.ToLower(s) {
	case "added":
		return Added, nil
	case "changed":
		return Changed, nil
	case "deprecated":
		return Deprecated, nil
	case "removed":
		return Removed, nil
	case "fixed":
		return Fixed, nil
	case "security":
		return Security, nil
	default:
		return 0, fmt.Errorf("unknown change kind: %s", s)
	}
}

// Changes groups a release's change entries by category. Entries are
// free-form text and may span multiple lines; order within a category is
// preserved.
type Changes struct {
	Added      []string
	Changed    []string
	Deprecated []string
	Removed    []string
	Fixed      []string
	Security   []string
}

// Add appends a change entry to the given category.
func (c *Changes) Add(kind ChangeKind, change string) {
	switch kind {
	case Added:
		c.Added = append(c.Added, change)
	case Changed:
		c.Changed = append(c.Changed, change)
	case Deprecated:
		c.Deprecated = append(c.Deprecated, change)
	case Removed:
		c.Removed = append(c.Removed, change)
	case Fixed:
		c.Fixed = append(c.Fixed, change)
	case Security:
		c.Security = append(c.Security, change)
	}
}

// Entries returns the entries of a single category.
func (c *Changes) Entries(kind ChangeKind) []string {
	switch kind {
	case Added:
		return c.Added
	case Changed:
		return c.Changed
	case Deprecated:
		return c.Deprecated
	case Removed:
		return c.Removed
	case Fixed:
		return c.Fixed
	case Security:
		return c.Security
	default:
		return nil
	}
}

// IsEmpty reports whether no category has any entries.
func (c *Changes) IsEmpty() bool {
	for _, kind := range ChangeKinds() {
		if len(c.Entries(kind)) > 0 {
			return false
		}
	}
	return true
}

// Count returns the total number of entries across all categories.
func (c *Changes) Count() int {
	n := 0
	for _, kind := range ChangeKinds() {
		n += len(c.Entries(kind))
	}
	return n
}

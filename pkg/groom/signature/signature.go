// Package signature builds the set of substrings that the scanner searches
// for in file contents. A Set is assembled once per invocation from a list of
// defaults and a Policy describing how caller-supplied entries are merged.
package signature

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind identifies how a Policy merges caller entries with the defaults.
type Kind int

const (
	// KindReplace discards the defaults and uses the caller entries only.
	KindReplace Kind = iota
	// KindAppend adds the caller entries after the defaults.
	KindAppend
	// KindKeepDefaults ignores the caller entries.
	KindKeepDefaults
)

// Policy name constants used by configuration and flags.
const (
	policyReplace = "replace"
	policyAppend  = "append"
	policyKeep    = "keep"
)

// String returns the configuration name of the kind.
func (k Kind) String() string {
	switch k {
	case KindAppend:
		return policyAppend
	case KindKeepDefaults:
		return policyKeep
	default:
		return policyReplace
	}
}

// ErrUnknownPolicy is returned when a policy name cannot be parsed.
var ErrUnknownPolicy = errors.New("unknown signature policy")

// Policy selects how caller-supplied signatures are combined with the defaults.
// The zero value is Replace with no entries.
type Policy struct {
	kind    Kind
	entries []string
}

// Append returns a policy that adds extra after the defaults.
func Append(extra ...string) Policy {
	return Policy{kind: KindAppend, entries: extra}
}

// KeepDefaults returns a policy that leaves the defaults unchanged.
func KeepDefaults() Policy {
	return Policy{kind: KindKeepDefaults}
}

// Replace returns a policy whose entries fully replace the defaults.
func Replace(list ...string) Policy {
	return Policy{kind: KindReplace, entries: list}
}

// Kind returns the merge kind of the policy.
func (p Policy) Kind() Kind {
	return p.kind
}

// Entries returns a copy of the caller-supplied entries.
func (p Policy) Entries() []string {
	out := make([]string, len(p.entries))
	copy(out, p.entries)
	return out
}

// String returns a human-readable description, e.g. "append(2)".
func (p Policy) String() string {
	if p.kind == KindKeepDefaults {
		return p.kind.String()
	}
	return fmt.Sprintf("%s(%d)", p.kind, len(p.entries))
}

// ParsePolicy maps a policy name to a Policy carrying entries.
// Accepted names are "append", "keep" and "replace" (case-insensitive), plus
// the single letters used by the interactive prompt: Y (append), N (keep) and
// C (replace). An empty name selects replace.
func ParsePolicy(mode string, entries []string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", policyReplace, "c":
		return Replace(entries...), nil
	case policyAppend, "y":
		return Append(entries...), nil
	case policyKeep, "n":
		return KeepDefaults(), nil
	default:
		return Policy{}, fmt.Errorf("%w: %q", ErrUnknownPolicy, mode)
	}
}

// Set is an ordered, upper-case normalized collection of signatures.
// It is read-only after construction. An empty Set matches nothing.
type Set struct {
	items []string
}

// New builds a Set from defaults according to p. Every entry is upper-cased
// with full Unicode case mapping. Entries are not validated: empty strings and
// duplicates are kept, and an empty string matches every line.
func New(defaults []string, p Policy) Set {
	var raw []string
	switch p.kind {
	case KindAppend:
		raw = make([]string, 0, len(defaults)+len(p.entries))
		raw = append(raw, defaults...)
		raw = append(raw, p.entries...)
	case KindKeepDefaults:
		raw = defaults
	default:
		raw = p.entries
	}

	caser := cases.Upper(language.Und)
	items := make([]string, len(raw))
	for i, s := range raw {
		items[i] = caser.String(s)
	}
	return Set{items: items}
}

// Of builds a Set directly from the given signatures.
func Of(signatures ...string) Set {
	return New(nil, Replace(signatures...))
}

// Len returns the number of signatures.
func (s Set) Len() int {
	return len(s.items)
}

// Strings returns a copy of the signatures in order.
func (s Set) Strings() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// Normalize upper-cases a single string the same way New does.
func Normalize(s string) string {
	return cases.Upper(language.Und).String(s)
}

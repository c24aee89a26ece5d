package metadata

import "strings"

// PlaceholderPrefix marks a value that has not been filled in yet.
const PlaceholderPrefix = "__"

// Kind discriminates the three value shapes a field can hold.
type Kind int

const (
	KindScalar Kind = iota
	KindList
	KindPairs
)

// Link is a (URL, display name) pair, used for people and credits.
type Link struct {
	URL  string
	Name string
}

// IsPlaceholderValue reports whether a raw string still carries the
// placeholder prefix.
func IsPlaceholderValue(s string) bool {
	return strings.HasPrefix(s, PlaceholderPrefix)
}

// IsPlaceholder reports whether either half of the pair is still unresolved.
func (l Link) IsPlaceholder() bool {
	return IsPlaceholderValue(l.URL) || IsPlaceholderValue(l.Name)
}

// Value is the tagged value held by a record field. The zero Value is an
// empty scalar.
type Value struct {
	kind  Kind
	str   string
	list  []string
	pairs []Link
}

// Scalar wraps a plain string value.
func Scalar(s string) Value {
	return Value{kind: KindScalar, str: s}
}

// List wraps a list of strings.
func List(items ...string) Value {
	return Value{kind: KindList, list: append([]string(nil), items...)}
}

// Pairs wraps a list of (URL, name) pairs.
func Pairs(links ...Link) Value {
	return Value{kind: KindPairs, pairs: append([]Link(nil), links...)}
}

// Kind returns the value's shape.
func (v Value) Kind() Kind { return v.kind }

// Scalar returns the string content of a scalar value, or "" otherwise.
func (v Value) Scalar() string {
	if v.kind != KindScalar {
		return ""
	}
	return v.str
}

// List returns a copy of the value's string list.
func (v Value) List() []string {
	return append([]string(nil), v.list...)
}

// Pairs returns a copy of the value's link pairs.
func (v Value) Pairs() []Link {
	return append([]Link(nil), v.pairs...)
}

// Bool interprets a scalar as a flag. Anything other than "true" or "yes"
// is false.
func (v Value) Bool() bool {
	switch strings.ToLower(strings.TrimSpace(v.str)) {
	case "true", "yes":
		return true
	}
	return false
}

// Len returns the value's arity: 1 for a non-empty scalar, the element count
// for lists and pairs.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindPairs:
		return len(v.pairs)
	default:
		if v.str == "" {
			return 0
		}
		return 1
	}
}

// IsPlaceholder reports whether the value still holds its unresolved
// sentinel. A list or pair value is a placeholder if any element carries the
// reserved prefix.
func (v Value) IsPlaceholder() bool {
	switch v.kind {
	case KindScalar:
		return strings.HasPrefix(v.str, PlaceholderPrefix)
	case KindList:
		for _, item := range v.list {
			if strings.HasPrefix(item, PlaceholderPrefix) {
				return true
			}
		}
	case KindPairs:
		for _, pair := range v.pairs {
			if pair.IsPlaceholder() {
				return true
			}
		}
	}
	return false
}

// Equal reports deep equality between two values.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind || v.str != other.str {
		return false
	}
	if len(v.list) != len(other.list) || len(v.pairs) != len(other.pairs) {
		return false
	}
	for i := range v.list {
		if v.list[i] != other.list[i] {
			return false
		}
	}
	for i := range v.pairs {
		if v.pairs[i] != other.pairs[i] {
			return false
		}
	}
	return true
}

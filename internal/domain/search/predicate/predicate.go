// Package predicate defines storage-independent match predicates over listing
// text fields. Backends compile a Predicate into their own query language.
package predicate

import (
	"strconv"
	"strings"

	"github.com/kailas-cloud/stayfinder/internal/domain/listing"
)

// Kind discriminates the predicate variant.
type Kind uint8

// Predicate variants.
const (
	// KindAll matches every listing.
	KindAll Kind = iota
	// KindEquals matches when the whole field equals the value, case-insensitively.
	KindEquals
	// KindWord matches when the value appears as a whole word.
	KindWord
	// KindPrefix matches when the field starts with the value.
	KindPrefix
	// KindWordPrefix matches when the value starts at a word boundary.
	KindWordPrefix
	// KindContains matches when the value appears anywhere in the field.
	KindContains
	// KindAnd matches when all children match.
	KindAnd
	// KindOr matches when any child matches.
	KindOr
)

var kindNames = map[Kind]string{
	KindAll:        "all",
	KindEquals:     "equals",
	KindWord:       "word",
	KindPrefix:     "prefix",
	KindWordPrefix: "word_prefix",
	KindContains:   "contains",
	KindAnd:        "and",
	KindOr:         "or",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Predicate is an immutable tagged variant. The zero value matches all.
type Predicate struct {
	kind     Kind
	field    listing.Field
	value    string
	children []Predicate
}

// All returns the predicate that matches every listing.
func All() Predicate { return Predicate{kind: KindAll} }

// Equals matches field == value, ignoring case.
func Equals(f listing.Field, value string) Predicate { return leaf(KindEquals, f, value) }

// Word matches value as a whole word in field, ignoring case.
func Word(f listing.Field, value string) Predicate { return leaf(KindWord, f, value) }

// Prefix matches fields starting with value, ignoring case.
func Prefix(f listing.Field, value string) Predicate { return leaf(KindPrefix, f, value) }

// WordPrefix matches value starting at any word boundary in field, ignoring case.
func WordPrefix(f listing.Field, value string) Predicate { return leaf(KindWordPrefix, f, value) }

// Contains matches value anywhere in field, ignoring case.
func Contains(f listing.Field, value string) Predicate { return leaf(KindContains, f, value) }

func leaf(k Kind, f listing.Field, value string) Predicate {
	return Predicate{kind: k, field: f, value: value}
}

// And combines predicates with logical AND. Match-all operands are dropped;
// with nothing left the result matches all, with one left it is returned as is.
func And(ps ...Predicate) Predicate {
	kept := make([]Predicate, 0, len(ps))
	for _, p := range ps {
		if p.IsAll() {
			continue
		}
		if p.kind == KindAnd {
			kept = append(kept, p.children...)
			continue
		}
		kept = append(kept, p)
	}
	return group(KindAnd, kept)
}

// Or combines predicates with logical OR. A match-all operand makes the whole
// disjunction match all. An empty disjunction imposes no restriction.
func Or(ps ...Predicate) Predicate {
	kept := make([]Predicate, 0, len(ps))
	for _, p := range ps {
		if p.IsAll() {
			return All()
		}
		if p.kind == KindOr {
			kept = append(kept, p.children...)
			continue
		}
		kept = append(kept, p)
	}
	return group(KindOr, kept)
}

func group(k Kind, children []Predicate) Predicate {
	switch len(children) {
	case 0:
		return All()
	case 1:
		return children[0]
	default:
		return Predicate{kind: k, children: children}
	}
}

// Kind returns the variant tag.
func (p Predicate) Kind() Kind { return p.kind }

// Field returns the matched field (leaf variants only).
func (p Predicate) Field() listing.Field { return p.field }

// Value returns the literal value to match (leaf variants only).
func (p Predicate) Value() string { return p.value }

// Children returns the operands of And/Or.
func (p Predicate) Children() []Predicate { return p.children }

// IsAll reports whether p matches every listing.
func (p Predicate) IsAll() bool { return p.kind == KindAll }

// IsLeaf reports whether p is a single field comparison.
func (p Predicate) IsLeaf() bool {
	return p.kind != KindAll && p.kind != KindAnd && p.kind != KindOr
}

// String renders the predicate for logs, e.g. or(equals(name,"ab"),equals(city,"ab")).
func (p Predicate) String() string {
	var b strings.Builder
	p.write(&b)
	return b.String()
}

func (p Predicate) write(b *strings.Builder) {
	b.WriteString(p.kind.String())
	if p.kind == KindAll {
		return
	}
	b.WriteByte('(')
	if p.IsLeaf() {
		b.WriteString(string(p.field))
		b.WriteByte(',')
		b.WriteString(strconv.Quote(p.value))
	} else {
		for i, c := range p.children {
			if i > 0 {
				b.WriteByte(',')
			}
			c.write(b)
		}
	}
	b.WriteByte(')')
}

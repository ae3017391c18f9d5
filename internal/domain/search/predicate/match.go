package predicate

import (
	"fmt"
	"regexp"

	"github.com/kailas-cloud/stayfinder/internal/domain/listing"
)

// Matcher evaluates a compiled predicate against a listing.
type Matcher func(l *listing.Listing) bool

// Pattern returns the case-insensitive regular expression for a leaf predicate.
// The value is always quoted, so pattern metacharacters in user input match literally.
// The syntax is shared by RE2 and PCRE, so backends with a regex operator can reuse it.
func Pattern(p Predicate) (string, error) {
	q := regexp.QuoteMeta(p.value)
	switch p.kind {
	case KindEquals:
		return `^` + q + `$`, nil
	case KindWord:
		return `\b` + q + `\b`, nil
	case KindPrefix:
		return `^` + q, nil
	case KindWordPrefix:
		return `\b` + q, nil
	case KindContains:
		return q, nil
	default:
		return "", fmt.Errorf("predicate %s has no pattern", p.kind)
	}
}

// Compile turns p into an in-process Matcher.
func Compile(p Predicate) (Matcher, error) {
	switch p.kind {
	case KindAll:
		return func(*listing.Listing) bool { return true }, nil

	case KindAnd, KindOr:
		ms := make([]Matcher, len(p.children))
		for i, c := range p.children {
			m, err := Compile(c)
			if err != nil {
				return nil, err
			}
			ms[i] = m
		}
		if p.kind == KindAnd {
			return func(l *listing.Listing) bool {
				for _, m := range ms {
					if !m(l) {
						return false
					}
				}
				return true
			}, nil
		}
		return func(l *listing.Listing) bool {
			for _, m := range ms {
				if m(l) {
					return true
				}
			}
			return false
		}, nil

	default:
		if !p.field.IsValid() {
			return nil, fmt.Errorf("unknown field %q", p.field)
		}
		pattern, err := Pattern(p)
		if err != nil {
			return nil, err
		}
		re, err := regexp.Compile(`(?i)` + pattern)
		if err != nil {
			return nil, fmt.Errorf("compile %s: %w", p, err)
		}
		f := p.field
		return func(l *listing.Listing) bool {
			return re.MatchString(l.Text(f))
		}, nil
	}
}

// Filter returns the listings accepted by m, preserving order.
func Filter(ls []listing.Listing, m Matcher) []listing.Listing {
	out := make([]listing.Listing, 0, len(ls))
	for i := range ls {
		if m(&ls[i]) {
			out = append(out, ls[i])
		}
	}
	return out
}

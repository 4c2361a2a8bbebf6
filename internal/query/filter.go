// Package query filters, sorts, and paginates in-memory collections the
// same way for every directory of the platform (alumni, offers,
// candidates, companies).
package query

import (
	"sort"
	"strings"

	"github.com/repae-esatic/gateway"
)

// All is the sentinel meaning "no constraint" for enum filters.
const All = "all"

// Spec is one filter pass over a collection. Criteria combine with AND;
// the text search matches with OR across the searchable fields of a
// record. The zero Spec matches everything.
type Spec[T any] struct {
	// Search is matched case-insensitively as a substring of any value
	// returned by SearchFields.
	Search       string
	SearchFields func(T) []string

	// Matchers are exact-match predicates, typically built with Enum.
	Matchers []func(T) bool

	// Ranges are inclusive numeric bounds, typically built with Range.
	Ranges []func(T) bool
}

// Enum returns a matcher for one enum criterion. The All sentinel or the
// empty string disables the criterion.
func Enum[T any, E ~string](value E, field func(T) E) func(T) bool {
	if value == "" || string(value) == All {
		return nil
	}
	return func(r T) bool { return field(r) == value }
}

// Range returns an inclusive bound matcher. A nil min or max leaves that
// side unconstrained.
func Range[T any](min, max *int, field func(T) int) func(T) bool {
	if min == nil && max == nil {
		return nil
	}
	return func(r T) bool {
		v := field(r)
		if min != nil && v < *min {
			return false
		}
		if max != nil && v > *max {
			return false
		}
		return true
	}
}

// With appends a matcher, skipping disabled (nil) ones.
func (s Spec[T]) With(m func(T) bool) Spec[T] {
	if m != nil {
		s.Matchers = append(s.Matchers, m)
	}
	return s
}

// WithRange appends a range bound, skipping disabled (nil) ones.
func (s Spec[T]) WithRange(m func(T) bool) Spec[T] {
	if m != nil {
		s.Ranges = append(s.Ranges, m)
	}
	return s
}

func (s Spec[T]) matches(r T) bool {
	if s.Search != "" && s.SearchFields != nil {
		needle := strings.ToLower(s.Search)
		found := false
		for _, f := range s.SearchFields(r) {
			if strings.Contains(strings.ToLower(f), needle) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, m := range s.Matchers {
		if !m(r) {
			return false
		}
	}
	for _, m := range s.Ranges {
		if !m(r) {
			return false
		}
	}
	return true
}

// Apply returns the matching subset in the original order. The input
// slice is never mutated.
func (s Spec[T]) Apply(records []T) []T {
	result := make([]T, 0, len(records))
	for _, r := range records {
		if s.matches(r) {
			result = append(result, r)
		}
	}
	return result
}

// Paginate slices one page out of a filtered collection. Page and Limit
// are echoed back unchanged; Total is the size of the filtered set. A
// limit of zero or less returns the whole collection as one page.
func Paginate[T any](records []T, page, limit int) repae.Page[T] {
	total := len(records)
	if limit <= 0 {
		return repae.Page[T]{Data: records, Total: total, Page: page, Limit: limit}
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return repae.Page[T]{
		Data:  records[start:end],
		Total: total,
		Page:  page,
		Limit: limit,
	}
}

// SortBy stably sorts a copy of the collection; ties keep their original
// insertion order.
func SortBy[T any](records []T, less func(a, b T) bool) []T {
	sorted := make([]T, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	return sorted
}

// Distinct collects the unique values of one field in first-seen order.
func Distinct[T any, V comparable](records []T, field func(T) V) []V {
	seen := make(map[V]struct{}, len(records))
	var out []V
	for _, r := range records {
		v := field(r)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

package planner

// Interval is a closed interval over int64 with optional bounds. A nil
// bound is unbounded on that side. The same semantics back both the age
// filter (seconds) and the publication-year filter, and the SQL the filter
// composer emits mirrors Overlaps exactly.
type Interval struct {
	Beg *int64
	End *int64
}

// Int64 returns a pointer to v, for building interval literals.
func Int64(v int64) *int64 { return &v }

// IsZero reports whether both bounds are absent.
func (i Interval) IsZero() bool { return i.Beg == nil && i.End == nil }

// Overlaps reports whether the two closed intervals intersect. A missing
// bound never excludes an overlap: [a, nil] extends to +inf, [nil, b] to
// -inf, and the fully unbounded interval overlaps everything.
func (i Interval) Overlaps(other Interval) bool {
	if i.Beg != nil && other.End != nil && *i.Beg > *other.End {
		return false
	}
	if other.Beg != nil && i.End != nil && *other.Beg > *i.End {
		return false
	}
	return true
}

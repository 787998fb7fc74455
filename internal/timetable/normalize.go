// Package timetable holds the pure schedule-resolution core: substitution
// overlay, per-teacher filtering and class readiness aggregation. Every
// function takes explicit snapshots and an explicit date so callers control
// time and results stay deterministic.
package timetable

import "strings"

// NormalizeName canonicalises a teacher name for identity comparison.
// Teachers are matched by name string, not by foreign key, so the same
// normalisation must be used by every component that compares names.
func NormalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// SameTeacher reports whether two teacher names refer to the same identity.
func SameTeacher(a, b string) bool {
	na := NormalizeName(a)
	if na == "" {
		return false
	}
	return na == NormalizeName(b)
}

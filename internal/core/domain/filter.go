package domain

import "sort"

// Filter maps a field name (as exposed in JSON) to the exact value a record
// must hold. An empty filter matches every record.
type Filter map[string]string

// UnknownFields returns the keys of f that are not in allowed, sorted.
func (f Filter) UnknownFields(allowed map[string]struct{}) []string {
	var unknown []string
	for k := range f {
		if _, ok := allowed[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// CheckFields returns a VALIDATION_ERROR naming every key of f outside allowed.
func (f Filter) CheckFields(allowed map[string]struct{}) error {
	unknown := f.UnknownFields(allowed)
	if len(unknown) == 0 {
		return nil
	}
	violations := make([]FieldViolation, 0, len(unknown))
	for _, k := range unknown {
		violations = append(violations, FieldViolation{Field: k, Reason: "is not a filterable field"})
	}
	return NewValidationError(violations...)
}

package model

// Record is one normalized call-recording metadata entry: a flat mapping of
// field name to value. Both export shapes (the CMP compound export and the
// per-call single-file export) normalize into this type; downstream code is
// shape-agnostic.
type Record map[string]string

// Get returns the value for key, or "" when the field is absent.
func (r Record) Get(key string) string {
	return r[key]
}

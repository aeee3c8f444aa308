package types

// Int returns a pointer to v, for optional filter fields.
func Int(v int) *int {
	return &v
}

// Float64 returns a pointer to v, for optional score fields.
func Float64(v float64) *float64 {
	return &v
}

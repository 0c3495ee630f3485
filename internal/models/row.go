package models

// Row is one parsed CSV record keyed by header name. Values are float64,
// bool, string or nil depending on how the field was typed.
type Row map[string]any

const (
	DefaultCategoryKey = "Month"
	DefaultValueKey    = "Sales"
)

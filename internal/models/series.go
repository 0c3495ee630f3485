package models

// Series holds index-aligned category labels and values: Labels[i]
// belongs to Values[i].
type Series struct {
	Label  string `json:"label"`
	Labels []any  `json:"labels"`
	Values []any  `json:"values"`
}

func (series Series) Len() int {
	return len(series.Labels)
}

func (series Series) Clone() Series {
	cloned := Series{Label: series.Label}
	if series.Labels != nil {
		cloned.Labels = append([]any(nil), series.Labels...)
	}
	if series.Values != nil {
		cloned.Values = append([]any(nil), series.Values...)
	}
	return cloned
}

package services

import (
	"strings"

	"github.com/terraincognita07/salescharts/internal/models"
)

const DefaultSeriesLabel = "売上 (Sales)"

type SeriesBuilder struct {
	categoryKey string
	valueKey    string
	label       string
}

// NewSeriesBuilder falls back to Month/Sales and the default dataset label
// for blank arguments.
func NewSeriesBuilder(categoryKey string, valueKey string, label string) *SeriesBuilder {
	if strings.TrimSpace(categoryKey) == "" {
		categoryKey = models.DefaultCategoryKey
	}
	if strings.TrimSpace(valueKey) == "" {
		valueKey = models.DefaultValueKey
	}
	if strings.TrimSpace(label) == "" {
		label = DefaultSeriesLabel
	}
	return &SeriesBuilder{
		categoryKey: categoryKey,
		valueKey:    valueKey,
		label:       label,
	}
}

func (builder *SeriesBuilder) CategoryKey() string {
	return builder.categoryKey
}

func (builder *SeriesBuilder) ValueKey() string {
	return builder.valueKey
}

// Build maps rows to a series in input order. It reports false for an empty
// input. Rows without a key contribute nil at their index.
func (builder *SeriesBuilder) Build(rows []models.Row) (models.Series, bool) {
	if len(rows) == 0 {
		return models.Series{}, false
	}

	series := models.Series{
		Label:  builder.label,
		Labels: make([]any, len(rows)),
		Values: make([]any, len(rows)),
	}
	for index, row := range rows {
		series.Labels[index] = row[builder.categoryKey]
		series.Values[index] = row[builder.valueKey]
	}
	return series, true
}

// BuildSeries uses the Month/Sales columns.
func BuildSeries(rows []models.Row) (models.Series, bool) {
	return NewSeriesBuilder("", "", "").Build(rows)
}

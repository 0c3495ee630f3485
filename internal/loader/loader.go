package loader

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/terraincognita07/salescharts/internal/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Result is the outcome of one asynchronous load.
type Result struct {
	Rows []models.Row
	Err  error
}

type Loader struct {
	logger       zerolog.Logger
	expectedKeys []string
	now          func() time.Time
}

// NewLoader returns a loader that warns when a header lacks one of
// expectedKeys. Missing columns are not an error.
func NewLoader(logger zerolog.Logger, expectedKeys ...string) *Loader {
	return &Loader{
		logger:       logger.With().Str("component", "loader").Logger(),
		expectedKeys: append([]string(nil), expectedKeys...),
		now:          time.Now,
	}
}

// Load reads and parses source. Any failure comes back as a *LoadError.
func (loader *Loader) Load(ctx context.Context, source Source) ([]models.Row, error) {
	startedAt := loader.now()
	name := source.Name()

	reader, err := source.Open(ctx)
	if err != nil {
		kind := ErrorKindRead
		if errors.Is(err, ErrNoFile) || errors.Is(err, ErrNotCSV) {
			kind = ErrorKindNoFile
		}
		loadErr := newLoadError(kind, name, err)
		loader.logger.Warn().Err(err).Str("source", name).Str("kind", string(kind)).Msg("csv load failed")
		return nil, loadErr
	}
	defer reader.Close()

	header, rows, err := parse(reader)
	if err != nil {
		kind := ErrorKindParse
		var parseErr *csv.ParseError
		if !errors.As(err, &parseErr) {
			kind = ErrorKindRead
		}
		loadErr := newLoadError(kind, name, err)
		loader.logger.Warn().Err(err).Str("source", name).Str("kind", string(kind)).Msg("csv load failed")
		return nil, loadErr
	}

	if header != nil {
		if missing := missingKeys(header, loader.expectedKeys); len(missing) > 0 {
			loader.logger.Warn().Str("source", name).Strs("missing", missing).Msg("csv header lacks expected columns")
		}
	}
	loader.logger.Debug().Str("source", name).Interface("rows", rows).Msg("csv parse result")
	loader.logger.Info().
		Str("source", name).
		Int("rows", len(rows)).
		Dur("elapsed", loader.now().Sub(startedAt)).
		Msg("csv loaded")

	return rows, nil
}

// LoadAsync runs Load in its own goroutine and delivers exactly one Result.
func (loader *Loader) LoadAsync(ctx context.Context, source Source) <-chan Result {
	results := make(chan Result, 1)
	go func() {
		defer close(results)
		rows, err := loader.Load(ctx, source)
		results <- Result{Rows: rows, Err: err}
	}()
	return results
}

// Parse turns CSV text into rows keyed by the header record.
func Parse(input io.Reader) ([]models.Row, error) {
	_, rows, err := parse(input)
	return rows, err
}

func parse(input io.Reader) ([]string, []models.Row, error) {
	buffered := bufio.NewReader(input)
	if prefix, err := buffered.Peek(len(utf8BOM)); err == nil && string(prefix) == string(utf8BOM) {
		if _, err := buffered.Discard(len(utf8BOM)); err != nil {
			return nil, nil, fmt.Errorf("skip byte order mark: %w", err)
		}
	}

	reader := csv.NewReader(buffered)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, []models.Row{}, nil
	}
	if err != nil {
		return nil, nil, err
	}
	header = uniqueHeader(header)

	rows := make([]models.Row, 0)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		rows = append(rows, buildRow(header, record))
	}
	return header, rows, nil
}

// buildRow drops fields beyond the header; short records lack trailing keys.
func buildRow(header []string, record []string) models.Row {
	row := make(models.Row, len(header))
	for index, field := range record {
		if index >= len(header) {
			break
		}
		row[header[index]] = inferValue(field)
	}
	return row
}

// uniqueHeader renames repeated column names to name_1, name_2, ...
func uniqueHeader(header []string) []string {
	result := make([]string, len(header))
	used := make(map[string]bool, len(header))
	for index, name := range header {
		candidate := name
		for suffix := 1; used[candidate]; suffix++ {
			candidate = fmt.Sprintf("%s_%d", name, suffix)
		}
		used[candidate] = true
		result[index] = candidate
	}
	return result
}

func missingKeys(header []string, expected []string) []string {
	present := make(map[string]struct{}, len(header))
	for _, name := range header {
		present[name] = struct{}{}
	}
	missing := make([]string, 0)
	for _, key := range expected {
		if _, ok := present[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

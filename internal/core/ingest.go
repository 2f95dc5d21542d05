package core

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidCSV wraps reader-level CSV failures (broken quoting and the like).
var ErrInvalidCSV = errors.New("invalid csv")

// ContextCheckInterval is how often (in rows) ingestion checks for cancellation.
var ContextCheckInterval = 100

// IngestOptions carries metadata attached to the produced Dataset.
type IngestOptions struct {
	FileName string
	Now      func() time.Time
}

// Ingest reads CSV text into a Dataset with one Record per data row.
//
// The first row is the header. Columns are matched by exact name; when a name
// appears twice the last column wins. Rows keep file order. Malformed cells
// never fail the read (see ParseShortDate and CoerceNumber); only I/O errors,
// cancellation and unparseable CSV structure do.
//
// Blank lines are skipped rather than read as empty records. An empty body
// or a header with no rows yields an empty Dataset.
func Ingest(ctx context.Context, r io.Reader, entities EntitySet, opts IngestOptions) (*Dataset, error) {
	body, counter, err := wrapUpload(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	ds := &Dataset{
		ID:       uuid.New().String(),
		FileName: opts.FileName,
	}

	reader := csv.NewReader(body)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		ds.Stats.Bytes = counter.n
		ds.IngestedAt = now()
		return ds, nil
	}
	if err != nil {
		return nil, readError(err)
	}
	ds.Columns = header

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, e := range entities {
		if _, ok := index[e.Name]; !ok {
			ds.Stats.MissingColumns = append(ds.Stats.MissingColumns, e.Name)
		}
	}

	cell := func(row []string, name string) (string, bool) {
		i, ok := index[name]
		if !ok {
			return "", false
		}
		if i >= len(row) {
			return "", true // short row reads as blank
		}
		return row[i], true
	}

	for rowNum := 0; ; rowNum++ {
		if rowNum%ContextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, readError(err)
		}

		rec := Record{Values: make(map[string]float64, len(entities))}

		dateCell, _ := cell(row, DateColumn)
		rec.Date = ParseShortDate(dateCell)
		if !rec.Date.Valid {
			ds.Stats.InvalidDates++
		}

		for _, e := range entities {
			raw, present := cell(row, e.Name)
			v := math.NaN()
			if present {
				v = CoerceNumber(raw)
			}
			if math.IsNaN(v) {
				ds.Stats.NaNCells++
			}
			rec.Values[e.Name] = v
		}

		ds.Records = append(ds.Records, rec)
	}

	ds.Stats.Rows = len(ds.Records)
	ds.Stats.Bytes = counter.n
	ds.IngestedAt = now()
	return ds, nil
}

// readError separates CSV structure errors from I/O errors.
func readError(err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return fmt.Errorf("%w: %v", ErrInvalidCSV, err)
	}
	return fmt.Errorf("read upload: %w", err)
}

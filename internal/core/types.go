package core

import (
	"encoding/json"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// DateColumn is the header name of the date column.
const DateColumn = "Date"

// Record is one row of the uploaded table.
//
// Date is invalid (Valid=false) when the cell did not match M/D/YY.
// Values holds one entry per configured entity; cells that did not coerce
// to a number are NaN and are passed through untouched.
type Record struct {
	Date   pgtype.Date
	Values map[string]float64
}

// Value returns the value for an entity, NaN when the entity is absent.
func (r Record) Value(name string) float64 {
	v, ok := r.Values[name]
	if !ok {
		return math.NaN()
	}
	return v
}

// MarshalJSON encodes non-finite values as null since JSON has no NaN.
func (r Record) MarshalJSON() ([]byte, error) {
	values := make(map[string]*float64, len(r.Values))
	for name, v := range r.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			values[name] = nil
			continue
		}
		v := v
		values[name] = &v
	}
	return json.Marshal(struct {
		Date   pgtype.Date         `json:"date"`
		Values map[string]*float64 `json:"values"`
	}{r.Date, values})
}

// IngestStats summarises how cells degraded during ingestion.
type IngestStats struct {
	Rows           int      `json:"rows"`
	Bytes          int64    `json:"bytes"`
	InvalidDates   int      `json:"invalidDates"`
	NaNCells       int      `json:"nanCells"`
	MissingColumns []string `json:"missingColumns,omitempty"`
}

// Dataset is the ordered, immutable result of one upload.
type Dataset struct {
	ID         string      `json:"id"`
	FileName   string      `json:"fileName"`
	Columns    []string    `json:"columns"`
	Records    []Record    `json:"records"`
	IngestedAt time.Time   `json:"ingestedAt"`
	Stats      IngestStats `json:"stats"`
}

// Len returns the number of records; nil-safe.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// SeriesPoint is one (date, value) pair of a TooltipSeries.
type SeriesPoint struct {
	Date  pgtype.Date
	Value float64
}

// TooltipSeries is one entity's values across the whole Dataset, in record order.
type TooltipSeries []SeriesPoint

// Series extracts the values of one entity in record order.
func (d *Dataset) Series(name string) TooltipSeries {
	if d == nil {
		return nil
	}
	out := make(TooltipSeries, len(d.Records))
	for i, rec := range d.Records {
		out[i] = SeriesPoint{Date: rec.Date, Value: rec.Value(name)}
	}
	return out
}

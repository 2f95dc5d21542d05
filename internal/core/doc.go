// Package core provides the upload side of the streamgraph service.
//
// It is independent of HTTP and rendering: web handlers, tests and any other
// frontend call into it the same way.
//
// # Ingestion
//
// [Ingest] turns CSV text into a [Dataset]. The header row must contain a
// Date column and one column per configured [Entity]. Cells never fail the
// read:
//
//   - Date cells that do not match M/D/YY become an invalid pgtype.Date.
//   - Entity cells are coerced like a JavaScript unary plus: blank is 0,
//     anything non-numeric is NaN, and NaN flows through unchanged.
//   - A missing entity column yields NaN for every record.
//
// Only an unreadable body (I/O failure, cancellation, broken quoting) fails.
//
// # Sessions
//
// Each browser session owns one dataset slot in the [SessionStore]. Every
// upload takes a new generation; starting a newer upload cancels the older
// read, and a result whose generation is no longer current is rejected with
// [ErrStaleUpload]. A failed read never touches the current dataset.
//
// # Error Handling
//
// Technical errors are mapped to user-facing messages with [MapError]:
//
//   - FILE001-FILE004: file errors (size, CSV format, malformed form, missing file)
//   - UPL001-UPL005: upload errors (superseded, busy, cancelled, timeout)
//   - CHT001-CHT002: chart errors (unknown entity, no dataset)
package core

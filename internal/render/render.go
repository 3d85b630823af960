// Package render serializes row sets as pretty JSON or delimited text.
package render

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"trenddrop/internal/models"
)

// Response headers for each format.
const (
	ContentTypeJSON  = "application/json"
	ContentTypeCSV   = "text/csv; charset=utf-8"
	CacheControlJSON = "public, max-age=30"
	CacheControlCSV  = "public, max-age=60"
)

// Envelope is the JSON report body.
type Envelope struct {
	OK    bool `json:"ok"`
	Count int  `json:"count"`
	Rows  any  `json:"rows"`
}

// JSON renders rows in the report envelope, indented for human inspection.
func JSON[T any](rows []T) ([]byte, error) {
	if rows == nil {
		rows = []T{}
	}
	return json.MarshalIndent(Envelope{OK: true, Count: len(rows), Rows: rows}, "", "  ")
}

// CSV renders records as comma separated text. The header comes from the
// first record only; later records missing a header column render an empty
// cell and extra columns are dropped. Empty input yields an empty string.
func CSV(records []models.Record) string {
	if len(records) == 0 {
		return ""
	}

	headers := records[0].Keys()
	lines := make([]string, 0, len(records)+1)
	lines = append(lines, strings.Join(headers, ","))

	cells := make([]string, len(headers))
	for _, rec := range records {
		for i, h := range headers {
			v, _ := rec.Get(h)
			cells[i] = escape(formatValue(v))
		}
		lines = append(lines, strings.Join(cells, ","))
	}

	return strings.Join(lines, "\n")
}

// ProductRecords converts typed product rows to records.
func ProductRecords(rows []models.ProductRow) []models.Record {
	records := make([]models.Record, len(rows))
	for i := range rows {
		records[i] = rows[i].Record()
	}
	return records
}

// escape quotes a cell if it contains a comma, a double quote or a newline.
func escape(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case [16]byte:
		return uuid.UUID(x).String()
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

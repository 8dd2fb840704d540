package export

import (
	"strconv"
	"time"

	"github.com/ChuLiYu/attgen/pkg/types"
)

// timestampLayout PostgreSQL timestamptz text form with a +00 offset
const timestampLayout = "2006-01-02 15:04:05.000"

// Header column order of the attendance_log fixture
var Header = []string{
	"user_id",
	"status_id",
	"started_at",
	"ended_at",
	"started_source",
	"ended_source",
	"note",
}

// FormatTimestamp renders t in UTC as "YYYY-MM-DD HH:MM:SS.mmm+00".
// Sub-millisecond digits are truncated. The zero time renders as "".
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timestampLayout) + "+00"
}

// Row converts a record to CSV fields in Header order
func Row(rec types.Record) []string {
	return []string{
		rec.UserID.String(),
		strconv.Itoa(int(rec.Status)),
		FormatTimestamp(rec.StartedAt),
		FormatTimestamp(rec.EndedAt),
		strconv.Itoa(int(rec.StartedSource)),
		strconv.Itoa(int(rec.EndedSource)),
		rec.Note,
	}
}

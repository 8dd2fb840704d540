// Package report prints the console summary of a generation run
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/ChuLiYu/attgen/internal/export"
	"github.com/ChuLiYu/attgen/internal/generator"
	"github.com/ChuLiYu/attgen/pkg/types"
)

// Summary figures of one run
type Summary struct {
	Count      int
	FirstStart time.Time // start of the first interval
	ClosedAt   time.Time // end of the last interval before it was reopened
	SplitCount int       // intervals cut at a JST month end
	ByStatus   map[types.StatusID]int
}

// Summarize computes the summary of a generation result.
// Splits are counted from the Split flag; a record that ends on .999 by
// chance is not a split.
func Summarize(res generator.Result) Summary {
	s := Summary{
		Count:      len(res.Records),
		ClosedAt:   res.ClosedAt,
		SplitCount: res.SplitCount(),
		ByStatus:   make(map[types.StatusID]int),
	}
	if len(res.Records) > 0 {
		s.FirstStart = res.Records[0].StartedAt
	}
	for _, rec := range res.Records {
		s.ByStatus[rec.Status]++
	}
	return s
}

// Print writes the summary block for a file written to path
func Print(w io.Writer, path string, s Summary) {
	fmt.Fprintf(w, "✅ Generated %d records in %s\n", s.Count, path)
	if s.Count == 0 {
		return
	}
	fmt.Fprintf(w, "📅 Period: %s ～ %s\n", export.FormatTimestamp(s.FirstStart), export.FormatTimestamp(s.ClosedAt))
	fmt.Fprintln(w, "💡 The last record is still open (ended_at is empty)")
	fmt.Fprintf(w, "🗓️  Records split at a month end: %d\n", s.SplitCount)

	fmt.Fprintln(w, "📊 By status:")
	statuses := []types.StatusID{types.StatusOff, types.StatusWorking, types.StatusBreak}
	for i, st := range statuses {
		branch := "├─"
		if i == len(statuses)-1 {
			branch = "└─"
		}
		fmt.Fprintf(w, "  %s %-8s %d\n", branch, st.String()+":", s.ByStatus[st])
	}
}

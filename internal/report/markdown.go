package report

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"

	"github.com/bozidoz/ok22/internal/model"
)

// Summary aggregates one whole scan invocation for the optional
// Markdown session report.
type Summary struct {
	// Session is the unique id of this invocation.
	Session string
	// StartedAt is when the invocation began.
	StartedAt time.Time
	// Elapsed is the total wall-clock duration of the invocation.
	Elapsed time.Duration
	// Scanned is the number of identifiers dispatched.
	Scanned int
	// Hits holds every successful result in completion order.
	Hits []*model.ScanResult
}

// SummaryWriter outputs a scan session summary in Markdown format.
//
// Design decision: We use the nao1215/markdown library for fluent,
// type-safe markdown generation instead of string concatenation. The
// summary is meant for sharing and documentation, where the hits/urls
// text files are too raw.
type SummaryWriter struct {
	output io.Writer
}

// NewSummaryWriter creates a SummaryWriter that outputs to the given writer.
func NewSummaryWriter(output io.Writer) *SummaryWriter {
	return &SummaryWriter{output: output}
}

// Write outputs the session summary.
func (w *SummaryWriter) Write(s Summary) error {
	md := markdown.NewMarkdown(w.output)

	md.H1("ok22 Scan Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Session", "`" + s.Session + "`"},
			{"Started", s.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Elapsed", s.Elapsed.Round(time.Millisecond).String()},
			{"Scanned", strconv.Itoa(s.Scanned)},
			{"Hits", strconv.Itoa(len(s.Hits))},
		},
	})
	md.PlainText("")

	if len(s.Hits) > 0 {
		md.H2("Hits")
		md.PlainText("")

		rows := make([][]string, 0, len(s.Hits))
		for _, hit := range s.Hits {
			proxy := hit.Proxy
			if proxy == "" {
				proxy = directSentinel
			}
			rows = append(rows, []string{
				"`" + hit.MAC.String() + "`",
				hit.Payload.ExpiryDate,
				strconv.Itoa(countRealEntries(hit)),
				proxy,
			})
		}
		md.Table(markdown.TableSet{
			Header: []string{"MAC", "Expiry", "Playlists", "Proxy"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	return md.Build()
}

// countRealEntries returns the number of non-demo stream entries in a result.
func countRealEntries(res *model.ScanResult) int {
	n := 0
	for _, entry := range res.Payload.Playlists {
		if !IsDemoEntry(entry) {
			n++
		}
	}
	return n
}

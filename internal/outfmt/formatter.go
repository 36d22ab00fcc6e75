package outfmt

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
)

// Formatter writes command output in the mode carried by its context.
type Formatter struct {
	ctx       context.Context
	out       io.Writer
	errOut    io.Writer
	tabWriter *tabwriter.Writer
}

// NewFormatter creates a new Formatter
func NewFormatter(ctx context.Context, out, errOut io.Writer) *Formatter {
	return &Formatter{
		ctx:       ctx,
		out:       out,
		errOut:    errOut,
		tabWriter: tabwriter.NewWriter(out, 0, 4, 2, ' ', 0),
	}
}

// JSON reports whether the formatter emits JSON.
func (f *Formatter) JSON() bool { return IsJSON(f.ctx) }

// Output writes data as filtered JSON. In text mode it does nothing and
// reports false so the caller can render its own text.
func (f *Formatter) Output(data any) (bool, error) {
	if !IsJSON(f.ctx) {
		return false, nil
	}
	return true, WriteJSONFiltered(f.out, data, GetQuery(f.ctx), IsCompact(f.ctx))
}

// Table writes headers and rows aligned in columns.
func (f *Formatter) Table(headers []string, rows [][]string) error {
	writeRow(f.tabWriter, headers)
	for _, r := range rows {
		writeRow(f.tabWriter, r)
	}
	return f.tabWriter.Flush()
}

// KeyValues writes "key: value" lines aligned on the colon.
func (f *Formatter) KeyValues(pairs [][2]string) error {
	for _, p := range pairs {
		_, _ = fmt.Fprintf(f.tabWriter, "%s:\t%s\n", p[0], p[1])
	}
	return f.tabWriter.Flush()
}

// Println writes a line to stdout.
func (f *Formatter) Println(a ...any) {
	_, _ = fmt.Fprintln(f.out, a...)
}

// Empty writes a message to stderr indicating no results.
func (f *Formatter) Empty(message string) {
	_, _ = fmt.Fprintln(f.errOut, message)
}

func writeRow(w io.Writer, cols []string) {
	for i, col := range cols {
		if i > 0 {
			_, _ = fmt.Fprint(w, "\t")
		}
		_, _ = fmt.Fprint(w, col)
	}
	_, _ = fmt.Fprintln(w)
}

package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Text prints an aligned plain-text grid. Merged cells show their value in
// the first row of the run and stay empty below it. Summary rows are
// printed on their own line, prefixed with "== ". Line breaks and tabs in
// cell text are printed as spaces so every plan row stays on one line.
type Text struct{}

func (Text) Render(w io.Writer, p *Plan) error {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	headers := make([]string, len(p.Headers))
	for i, h := range p.Headers {
		headers[i] = oneLine(h)
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))

	seps := make([]string, len(p.Headers))
	for i := range seps {
		seps[i] = "---"
	}
	fmt.Fprintln(tw, strings.Join(seps, "\t"))

	// extra rows get an empty placeholder line so column blocks stay unbroken
	extras := make(map[int]string)
	blank := strings.Repeat("\t", max(len(p.Headers)-1, 0))
	for i, row := range p.Rows {
		if row.Kind == RowExtra {
			extras[i+2] = "== " + oneLine(summary(row))
			fmt.Fprintln(tw, blank)
			continue
		}
		texts := make([]string, len(row.Cells))
		for k, c := range row.Cells {
			texts[k] = oneLine(c.Text)
		}
		fmt.Fprintln(tw, strings.Join(texts, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	for i, content := range extras {
		lines[i] = content
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

var controlReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

// oneLine keeps a cell from adding lines or columns to the tabwriter output
func oneLine(s string) string {
	return controlReplacer.Replace(s)
}

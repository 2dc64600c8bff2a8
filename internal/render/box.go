package render

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// Box prints a bordered table.
// tablewriter cannot span a cell across columns, so a summary row puts its
// text in the first column and leaves the other cells blank.
type Box struct{}

func (Box) Render(w io.Writer, p *Plan) error {
	table := tablewriter.NewWriter(w)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader(p.Headers)

	for _, row := range p.Rows {
		buf := make([]string, len(p.Headers))
		if row.Kind == RowExtra {
			if len(buf) > 0 {
				buf[0] = summary(row)
			}
			table.Append(buf)
			continue
		}
		for i, c := range row.Cells {
			buf[i] = c.Text
		}
		table.Append(buf)
	}

	table.Render()
	return nil
}

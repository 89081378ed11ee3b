package app

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/hyperifyio/certscrape/internal/extract"
)

func renderTable(w io.Writer, records []extract.Record) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "Name", "Organization", "Issued", "Link"})
	for i, r := range records {
		t.AppendRow(table.Row{i + 1, r.Name.Value, r.Organization.Value, r.IssueDate.Value, r.Link.Value})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

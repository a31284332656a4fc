package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/marcos-nsantos/resize-cache/internal/usecase/batch"
)

func progressPrinter(w io.Writer) batch.ProgressFunc {
	return func(done, total int, path string) {
		fmt.Fprintf(w, "\r[%d/%d] %s\033[K", done, total, path)
	}
}

// renderReport prints the summary and, if any file failed, the error table.
func renderReport(w io.Writer, report *batch.Report) {
	fmt.Fprintf(w, "Processed %d files: %d generated, %d cached, %d unchanged, %d failed\n",
		report.Total, report.Generated, report.Cached, report.Skipped, len(report.Errors))

	if len(report.Errors) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Error report:")

	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoWrap: tw.WrapNone,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoFormat: tw.On,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
		}),
	)

	rows := make([][]string, 0, len(report.Errors))
	for i, fe := range report.Errors {
		rows = append(rows, []string{strconv.Itoa(i + 1), fe.Path, fe.Message})
	}

	table.Header([]string{"#", "File", "Error"})
	table.Bulk(rows)
	table.Render()
}

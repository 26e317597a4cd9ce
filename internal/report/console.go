package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"ftpprobe/internal/scenario"
	pstrings "ftpprobe/pkg/strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const (
	ErrorsBanner   = "***************************** errors *****************************"
	NoErrorsBanner = "***************************** no errors *****************************"
)

// WriteConsole prints the final block of a run: the errors banner followed
// by one "tag message" line per error, or the no-errors banner.
func WriteConsole(w io.Writer, result *scenario.Result) {
	fmt.Fprint(w, "\n\n\n")
	if len(result.Errors) > 0 {
		fmt.Fprintln(w, ErrorsBanner)
		for _, e := range result.Errors {
			fmt.Fprintln(w, e.String())
		}
	} else {
		fmt.Fprintln(w, NoErrorsBanner)
	}
	fmt.Fprint(w, "\n\n\n")
}

// WriteTable renders the errors of a run as a table with a summary footer.
func WriteTable(w io.Writer, result *scenario.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Footer = text.FormatDefault
	t.SetTitle(fmt.Sprintf("%s run %s", result.Storage, result.RunID))

	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("#"),
		text.FgHiCyan.Sprint("SCENARIO"),
		text.FgHiCyan.Sprint("ERROR"),
	})
	for i, e := range result.Errors {
		t.AppendRow(table.Row{strconv.Itoa(i + 1), e.Tag, pstrings.Truncate(e.Message, pstrings.DefaultCellMaxLen)})
	}
	if len(result.Errors) == 0 {
		t.AppendRow(table.Row{"", "", text.FgGreen.Sprint("no errors")})
	}

	t.AppendFooter(table.Row{
		"",
		fmt.Sprintf("%d steps", len(result.Steps)),
		fmt.Sprintf("%d errors in %s", len(result.Errors), result.Duration().Round(time.Millisecond)),
	})
	t.Render()
}

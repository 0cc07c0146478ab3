package cli

import (
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

var (
	errorColor   = color.New(color.FgHiRed, color.Bold)
	successColor = color.New(color.FgHiGreen)
	headerColor  = color.New(color.FgHiYellow, color.Bold)
)

func (a *App) printError(msg string) {
	errorColor.Fprintln(a.out, msg)
}

func (a *App) printSuccess(msg string) {
	successColor.Fprintln(a.out, msg)
}

func (a *App) printHeader(msg string) {
	headerColor.Fprintln(a.out, msg)
}

// renderTable writes rows to the App output. The first row is treated as
// any other; callers put column titles there when they need them.
func (a *App) renderTable(rows [][]string) error {
	table := tablewriter.NewWriter(a.out)
	for _, r := range rows {
		if err := table.Append(r); err != nil {
			return err
		}
	}
	return table.Render()
}

// maskTail hides all but the last n characters of s.
func maskTail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.Repeat("*", len(s)-n) + s[len(s)-n:]
}

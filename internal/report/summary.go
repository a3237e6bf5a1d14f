package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/padraicb/go-timesheet-sync/internal/timesheet"
	"github.com/padraicb/go-timesheet-sync/internal/util"
)

// SummaryFormatter renders a run report as a bordered two-column table on
// stdout.
type SummaryFormatter struct{}

func NewSummaryFormatter() *SummaryFormatter {
	return &SummaryFormatter{}
}

// Format prints the run summary table.
func (f *SummaryFormatter) Format(rep timesheet.RunReport) error {
	rows := [][2]string{
		{"Run", rep.RunID},
		{"Pay period", fmt.Sprintf("%s .. %s", rep.Window.Start, rep.Window.End)},
		{"Unique records", fmt.Sprintf("%d", rep.Unique)},
		{"Appended", fmt.Sprintf("%d", rep.Appended)},
		{"Already present", fmt.Sprintf("%d", rep.Skipped)},
		{"Fetch errors", fmt.Sprintf("%d", rep.FetchErrors)},
		{"Duration", util.FormatElapsed(rep.Elapsed)},
	}
	if rep.HeaderWritten {
		rows = append(rows, [2]string{"Header", "written (sink was empty)"})
	}
	if rep.Err != nil {
		rows = append(rows, [2]string{"Error", rep.Err.Error()})
	}

	labelWidth, valueWidth := f.columnWidths(rows)

	f.printBorder(labelWidth, valueWidth)
	for _, row := range rows {
		fmt.Printf("| %s | %s |\n",
			padRight(row[0], labelWidth),
			padRight(row[1], valueWidth))
	}
	f.printBorder(labelWidth, valueWidth)
	return nil
}

func (f *SummaryFormatter) columnWidths(rows [][2]string) (int, int) {
	labelWidth, valueWidth := 0, 0
	for _, row := range rows {
		if w := runewidth.StringWidth(row[0]); w > labelWidth {
			labelWidth = w
		}
		if w := runewidth.StringWidth(row[1]); w > valueWidth {
			valueWidth = w
		}
	}

	// Clamp the value column to the terminal when it is narrow.
	if termWidth, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && termWidth > 0 {
		max := termWidth - labelWidth - 7 // borders and padding
		if max > 10 && valueWidth > max {
			valueWidth = max
		}
	}
	return labelWidth, valueWidth
}

func (f *SummaryFormatter) printBorder(labelWidth, valueWidth int) {
	fmt.Printf("+%s+%s+\n",
		strings.Repeat("-", labelWidth+2),
		strings.Repeat("-", valueWidth+2))
}

func padRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w > width {
		return runewidth.Truncate(s, width, "…")
	}
	return s + strings.Repeat(" ", width-w)
}

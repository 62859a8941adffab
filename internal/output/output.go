package output

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

func ProgressBar(percent int, width int) string {
	filled := (percent * width) / 100

	return fmt.Sprintf("%s%s",
		strings.Repeat("█", filled),
		strings.Repeat(" ", width-filled),
	)
}

// PrettyFoldStatus renders a one-line folding progress status sized to the
// terminal.
func PrettyFoldStatus(percent int, records uint64) string {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width > 120 {
		width = 120
	}

	barWidth := width - 40
	if barWidth < 10 {
		barWidth = 10
	}

	return fmt.Sprintf("\r%s %s",
		fmt.Sprintf("Folding: [%s] %3d%%", ProgressBar(percent, barWidth), percent),
		fmt.Sprintf("Records: %8d", records),
	)
}

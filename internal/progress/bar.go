package progress

import (
	"io"

	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
)

// Output is where progress bars are drawn. Tests swap it for io.Discard.
var Output io.Writer = ansi.NewAnsiStdout()

// NewBar returns a terminal progress bar for a batch of total units.
func NewBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(
		total,
		progressbar.OptionSetWriter(Output),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetTheme(progressbar.ThemeASCII),
		progressbar.OptionFullWidth(),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription(description),
		progressbar.OptionOnCompletion(func() {
			_, _ = io.WriteString(Output, "\n")
		}),
	)
}

package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
)

// printMarkdown renders markdown for the terminal, or prints it as is when
// it cannot be rendered.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot render markdown: %v\n", err)
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

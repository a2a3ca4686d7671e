package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"

	"github.com/tourstudio/tourstudio/internal/ui"
)

// printRecordings prints the recordings about to be transcribed, in the order
// they are processed.
func printRecordings(w io.Writer, files []string) {
	tableBody := make([][]string, 0, len(files)+1)

	tableBody = append(tableBody, []string{"#", "RECORDING", "SIZE"})

	for i, f := range files {
		size := ""

		if info, err := os.Stat(f); err == nil {
			size = fmt.Sprintf("%.1f MB", float64(info.Size())/(1<<20))
		}

		tableBody = append(tableBody, []string{
			fmt.Sprintf("%d", i+1),
			ui.Cyan(filepath.Base(f)),
			size,
		})
	}

	if err := ui.PrintTable(tableBody, w); err != nil {
		pterm.Error.Printfln("Failed to output recordings table: %s", err.Error())
	}
}

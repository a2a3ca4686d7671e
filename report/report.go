// Package report prints command results and errors to the terminal.
package report

import (
	"fmt"
	"io"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pterm/pterm"

	"github.com/tourstudio/tourstudio/bundle"
	"github.com/tourstudio/tourstudio/internal/provider"
	"github.com/tourstudio/tourstudio/internal/ui"
)

func Error(err error) {
	pterm.Error.Println(err)
}

func Fatal(err error) tea.Cmd {
	pterm.Error.Println(err)
	return tea.Quit
}

func Quit(err error) {
	pterm.Error.Println(err)
	os.Exit(1)
}

// MissingKeys warns about features that are disabled for lack of an API key.
func MissingKeys(names []string) {
	for _, name := range names {
		pterm.Warning.Printfln("%s is not set: some production features are disabled", name)
	}
}

// Exported lists the files written by an export.
func Exported(res bundle.Result) {
	for _, p := range res.Paths() {
		pterm.Success.Printfln("wrote %s", p)
	}

	if res.Files > 0 {
		pterm.Info.Printfln("%d audio files bundled", res.Files)
	}
}

// Overview prints the timeline preview table.
func Overview(w io.Writer, rows []bundle.Row) error {
	data := [][]string{
		{"#", "Title", "Start", "End", "Duration", "Frames"},
	}

	for _, r := range rows {
		data = append(data, []string{
			strconv.Itoa(r.Number),
			r.Title,
			r.Start,
			r.End,
			ui.Green(r.Duration),
			fmt.Sprintf("%d → %d", r.StartFrame, r.EndFrame),
		})
	}

	return ui.PrintTable(data, w)
}

// Voices prints the available narration voices.
func Voices(w io.Writer, voices []provider.Voice, selected string) error {
	data := [][]string{
		{"Name", "Category", "Voice ID"},
	}

	for _, v := range voices {
		name := v.Name
		if v.ID == selected {
			name = ui.Highlight(name + " *")
		}

		data = append(data, []string{name, v.Category, ui.Cyan(v.ID)})
	}

	return ui.PrintTable(data, w)
}

package ui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"obc/internal/driver"
)

// Run drives the progress view until events is closed. Output goes to out
// (normally stderr) so stdout stays clean for the parse results.
func Run(title string, files []string, events <-chan driver.Event, out io.Writer) error {
	p := tea.NewProgram(
		NewProgressModel(title, files, events),
		tea.WithOutput(out),
		tea.WithInput(nil),
	)
	_, err := p.Run()
	return err
}

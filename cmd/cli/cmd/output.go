package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/aheadley/packagetrack/internal/carriers"
)

// formatter renders CLI output, with styling disabled when stdout is not a
// terminal or --no-color is set.
type formatter struct {
	header    lipgloss.Style
	delivered lipgloss.Style
	pending   lipgloss.Style
	timestamp lipgloss.Style
	location  lipgloss.Style
}

func newFormatter(disableColor bool) *formatter {
	useColor := !disableColor && isatty.IsTerminal(os.Stdout.Fd())
	f := &formatter{}
	if useColor {
		f.header = lipgloss.NewStyle().Bold(true)
		f.delivered = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
		f.pending = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
		f.timestamp = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
		f.location = lipgloss.NewStyle().Faint(true)
	}
	return f
}

func (f *formatter) printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (f *formatter) printTrackingInfo(info *carriers.TrackingInfo) {
	fmt.Printf("%s  %s\n",
		f.header.Render(info.Carrier),
		f.header.Render(info.TrackingNumber))

	if info.IsDelivered {
		line := "Delivered"
		if info.DeliveryDate != nil {
			line = fmt.Sprintf("Delivered %s", info.DeliveryDate.Format("Mon Jan 2 3:04 PM"))
		}
		fmt.Println(f.delivered.Render(line))
	} else if status := info.Status(); status != "" {
		fmt.Println(f.pending.Render(status))
	}

	for _, ev := range info.Events {
		ts := "????"
		if !ev.Timestamp.IsZero() {
			ts = ev.Timestamp.Format("Mon Jan 2 3:04 PM")
		}
		line := fmt.Sprintf("  %s  %s", f.timestamp.Render(ts), ev.Detail)
		if ev.Location != "" {
			line += "  " + f.location.Render(ev.Location)
		}
		fmt.Println(line)
	}
}

func (f *formatter) printCarriers(list []carriers.Carrier) {
	for _, c := range list {
		fmt.Printf("%s  %s\n", f.header.Render(c.ShortName()), c.LongName())
	}
}

package display

import (
	"fmt"
	"io"
	"strings"
)

// Terminal draws a UIState as text. Alerts go to Alerts, everything else to Out.
type Terminal struct {
	Out    io.Writer
	Alerts io.Writer
}

func (t *Terminal) Draw(s UIState) {
	if s.Alert != nil {
		fmt.Fprintf(t.Alerts, "[%s] %s: %s\n", s.Alert.Tone, s.Alert.Title, s.Alert.Message)
		return
	}

	if s.Icon != nil && s.Icon.Image != nil {
		fmt.Fprintf(t.Out, "(%s)\n", s.Icon.Category)
	}
	for _, line := range strings.Split(s.ResultText, "\n") {
		fmt.Fprintf(t.Out, "  %s\n", line)
	}
	fmt.Fprintln(t.Out)
}

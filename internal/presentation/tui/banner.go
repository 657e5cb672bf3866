package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the pollster banner to w, colored when w supports it.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text, color string
	}{
		{"                 _ _     _", "#818cf8"},
		{"  _ __  ___ | | |___| |_ ___ _ _", "#a78bfa"},
		{" | '_ \\/ _ \\| | (_-<  _/ -_) '_|", "#c084fc"},
		{" | .__/\\___/|_|_/__/\\__\\___|_|", "#e879f9"},
		{" |_|", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}

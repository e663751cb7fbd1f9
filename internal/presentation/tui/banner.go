package tui

import "fmt"

// PrintBanner writes the startup banner used by long-running commands.
func (p *Printer) PrintBanner(subtitle string) {
	colors := []string{"#818cf8", "#a78bfa", "#c084fc", "#e879f9"}
	lines := []string{
		"  ___  _ __   ___ _ __    _ __   ___  _ __ _ __ ___   __ _| |",
		" / _ \\| '_ \\ / _ \\ '_ \\  | '_ \\ / _ \\| '__| '_ ` _ \\ / _` | |",
		"| (_) | |_) |  __/ | | | | | | | (_) | |  | | | | | | (_| | |",
		" \\___/| .__/ \\___|_| |_| |_| |_|\\___/|_|  |_| |_| |_|\\__,_|_|",
	}

	fmt.Fprintln(p.out)
	for i, line := range lines {
		fmt.Fprintln(p.out, p.out.String(line).Foreground(p.out.Color(colors[i%len(colors)])))
	}
	fmt.Fprintln(p.out, p.out.String("      |_|  "+subtitle).Faint())
	fmt.Fprintln(p.out)
}

package cli

import (
	"bufio"
	"io"
	"strings"

	"github.com/aretw0/opennormal/internal/presentation/tui"
	"github.com/aretw0/opennormal/pkg/admission"
)

// Check runs every candidate through the admission gate, printing one
// verdict each, and returns how many were rejected.
func Check(candidates []string, p *tui.Printer) int {
	rejected := 0
	for _, c := range candidates {
		_, err := admission.AdmitString(c)
		if err != nil {
			rejected++
		}
		p.Verdict(c, err)
	}
	return rejected
}

// ReadLines collects the non-blank lines of r. Surrounding whitespace is
// kept on purpose: the gate must judge exactly what was given, but a
// trailing carriage return from CRLF input is dropped.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 64<<20)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

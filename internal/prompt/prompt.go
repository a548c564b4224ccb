// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt reads recipe fields from a line-oriented console.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FABD2F"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FB4934"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8BB26"))
)

// Prompter asks questions on out and reads answers line by line from in.
// Every answer is trimmed. When input runs out mid-question the methods
// return io.ErrUnexpectedEOF instead of re-prompting forever.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// New creates a Prompter.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

func (p *Prompter) readLine() (string, error) {
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// Heading prints a banner.
func (p *Prompter) Heading(title string) {
	bar := strings.Repeat("=", 30)
	fmt.Fprintln(p.out, bar)
	fmt.Fprintln(p.out, headingStyle.Render(title))
	fmt.Fprintln(p.out, bar)
	fmt.Fprintln(p.out)
}

// Warn prints a warning line.
func (p *Prompter) Warn(msg string) {
	fmt.Fprintln(p.out, warnStyle.Render("! "+msg))
}

// Done prints a success line.
func (p *Prompter) Done(msg string) {
	fmt.Fprintln(p.out, okStyle.Render(msg))
}

// Optional asks once and returns the answer, possibly empty.
func (p *Prompter) Optional(label string) (string, error) {
	fmt.Fprintf(p.out, "%s (optional): ", label)
	return p.readLine()
}

// Required asks until a non-empty answer is given.
func (p *Prompter) Required(label string) (string, error) {
	for {
		fmt.Fprintf(p.out, "%s (required): ", label)
		v, err := p.readLine()
		if err != nil {
			return "", err
		}
		if v != "" {
			return v, nil
		}
		p.Warn("This field is required.")
	}
}

// Lines reads one entry per line until an empty line.
func (p *Prompter) Lines(label string) ([]string, error) {
	fmt.Fprintf(p.out, "%s (enter empty line to finish):\n", label)
	var lines []string
	for {
		fmt.Fprint(p.out, "> ")
		line, err := p.readLine()
		if err != nil {
			return nil, err
		}
		if line == "" {
			return lines, nil
		}
		lines = append(lines, line)
	}
}

// RequiredLines repeats Lines until at least one entry is given.
func (p *Prompter) RequiredLines(label string) ([]string, error) {
	for {
		lines, err := p.Lines(label + " (required)")
		if err != nil {
			return nil, err
		}
		if len(lines) > 0 {
			return lines, nil
		}
		p.Warn(label + " are required.")
	}
}

// Choose prints title and the options numbered from 1, then asks until a
// valid number is entered. It returns the zero-based index of the choice.
func (p *Prompter) Choose(title string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, fmt.Errorf("%s: nothing to choose from", title)
	}

	fmt.Fprintf(p.out, "%s:\n", title)
	for i, opt := range options {
		fmt.Fprintf(p.out, "%d) %s\n", i+1, opt)
	}

	for {
		fmt.Fprint(p.out, "\nSelect number: ")
		answer, err := p.readLine()
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(answer)
		if convErr != nil {
			p.Warn("Please enter a number.")
			continue
		}
		if n < 1 || n > len(options) {
			p.Warn("Invalid choice, try again.")
			continue
		}
		return n - 1, nil
	}
}

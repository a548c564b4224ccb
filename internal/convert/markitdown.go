// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/pdiddy/cookbook/internal/container"
)

const imageMarkitdown = "markitdown:latest"

// MarkitdownExtractor converts documents by piping them through the
// markitdown container image and reading the Markdown back line by line.
// It handles formats the docx reader does not (legacy .doc, .odt, .rtf).
type MarkitdownExtractor struct {
	runtime container.Runtime
}

// NewMarkitdownExtractor verifies that the markitdown image exists in rt.
func NewMarkitdownExtractor(rt container.Runtime) (*MarkitdownExtractor, error) {
	if err := rt.ImageExists(imageMarkitdown); err != nil {
		return nil, fmt.Errorf("markitdown image not available in %s: %w", rt.Name(), err)
	}
	return &MarkitdownExtractor{runtime: rt}, nil
}

// Lines implements Extractor.
func (m *MarkitdownExtractor) Lines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrUnreadable, path, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := m.runtime.Run(context.Background(), imageMarkitdown, f, &out); err != nil {
		return nil, fmt.Errorf("%w: converting %s with markitdown: %v", ErrUnreadable, path, err)
	}
	lines, err := markdownLines(out.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: reading markitdown output for %s: %v", ErrUnreadable, path, err)
	}
	return lines, nil
}

const maxMarkdownLine = 1024 * 1024

// atxHeading matches an ATX heading marker: one to six '#' followed by
// whitespace or the end of the line. "#10 can tomatoes" is not a heading.
var atxHeading = regexp.MustCompile(`^#{1,6}(?:\s+|$)`)

// emphasis lists the delimiters stripped when they wrap a whole line,
// longest first.
var emphasis = []string{"***", "___", "**", "__", "*", "_"}

// markdownLines splits Markdown into trimmed non-blank lines with heading,
// list, and whole-line emphasis markers removed so that
// "## **Ingredients:**" reads as a plain header line. A line longer than
// maxMarkdownLine is an error rather than a silent truncation.
func markdownLines(md []byte) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(md))
	sc.Buffer(make([]byte, 0, 64*1024), maxMarkdownLine)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		line = strings.TrimSpace(atxHeading.ReplaceAllString(line, ""))
		for _, bullet := range []string{"- ", "* ", "+ "} {
			line = strings.TrimPrefix(line, bullet)
		}
		line = stripEmphasis(strings.TrimSpace(line))
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// stripEmphasis removes matched emphasis delimiters enclosing the whole
// line, repeatedly, so "***x***" and "_**x**_" both become "x". Unpaired or
// inner delimiters such as "butter_" or "__init__ note" are kept.
func stripEmphasis(line string) string {
	for {
		stripped := false
		for _, d := range emphasis {
			if len(line) > 2*len(d) && strings.HasPrefix(line, d) && strings.HasSuffix(line, d) {
				line = strings.TrimSpace(line[len(d) : len(line)-len(d)])
				stripped = true
				break
			}
		}
		if !stripped {
			return line
		}
	}
}

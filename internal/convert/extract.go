// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrUnreadable is wrapped by every extractor error caused by a document
// that cannot be opened or decoded.
var ErrUnreadable = errors.New("unreadable document")

// Extractor reads a structured document and returns its paragraph texts in
// order, each trimmed, with blank paragraphs removed.
type Extractor interface {
	Lines(path string) ([]string, error)
}

const (
	docxBody = "word/document.xml"
	wordNS   = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
)

// DocxExtractor reads body paragraphs straight from the WordprocessingML
// part of a .docx archive. Paragraphs nested in tables or text boxes are not
// body paragraphs and are ignored.
type DocxExtractor struct{}

// Lines implements Extractor.
func (DocxExtractor) Lines(path string) ([]string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrUnreadable, path, err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != docxBody {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: opening %s in %s: %v", ErrUnreadable, docxBody, path, err)
		}
		defer rc.Close()

		lines, err := bodyParagraphs(rc)
		if err != nil {
			return nil, fmt.Errorf("%w: decoding %s: %v", ErrUnreadable, path, err)
		}
		return lines, nil
	}
	return nil, fmt.Errorf("%w: %s has no %s", ErrUnreadable, path, docxBody)
}

// bodyParagraphs decodes document.xml and returns the non-blank text of each
// w:p that is a direct child of w:body.
func bodyParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		lines  []string
		stack  []string
		text   strings.Builder
		inPara bool
		nested int // w:p depth below the captured paragraph
		inText bool
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := ""
			if t.Name.Space == wordNS {
				name = t.Name.Local
			}
			switch {
			case name == "p" && !inPara && len(stack) > 0 && stack[len(stack)-1] == "body":
				inPara = true
				text.Reset()
			case name == "p" && inPara:
				nested++
			case inPara && nested == 0:
				switch name {
				case "t":
					inText = true
				case "tab":
					text.WriteByte('\t')
				case "br", "cr":
					text.WriteByte(' ')
				}
			}
			stack = append(stack, name)

		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			name := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			switch {
			case name == "t":
				inText = false
			case name == "p" && nested > 0:
				nested--
			case name == "p" && inPara:
				inPara = false
				if line := strings.TrimSpace(text.String()); line != "" {
					lines = append(lines, line)
				}
			}

		case xml.CharData:
			if inText && nested == 0 {
				text.Write(t)
			}
		}
	}

	return lines, nil
}

package util

import (
	"bytes"
	"fmt"
	"html"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf16"

	"github.com/gen2brain/go-fitz"
	"github.com/nguyenthenguyen/docx"

	"github.com/resumecritic/engine/internal/model"
)

var oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// ExtractDocument converts an uploaded resume into normalized plain text.
// Dispatch is by file extension; unsupported extensions fail with
// ErrUnsupportedFormat and unreadable or text-free documents fail with
// ErrCorruptDocument, never an empty success.
func ExtractDocument(data []byte, filename string, maxBytes int64) (*model.ExtractedDocument, error) {
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", model.ErrFileTooLarge, len(data), maxBytes)
	}

	var (
		text   string
		format model.SourceFormat
		err    error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		format = model.FormatPDF
		text, err = extractPDF(data)
	case ".docx":
		format = model.FormatDOCX
		text, err = extractDOCX(data)
	case ".doc":
		format = model.FormatDOC
		text, err = extractDOC(data)
	case ".txt", ".text":
		format = model.FormatTXT
		text, err = extractTXT(data)
	default:
		return nil, fmt.Errorf("%w: %q", model.ErrUnsupportedFormat, filepath.Ext(filename))
	}
	if err != nil {
		return nil, err
	}

	text = NormalizeWhitespace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: no extractable text", model.ErrCorruptDocument)
	}

	return &model.ExtractedDocument{
		RawText:      text,
		SourceFormat: format,
		CharCount:    len([]rune(text)),
	}, nil
}

func extractPDF(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("%w: open pdf: %v", model.ErrCorruptDocument, err)
	}
	defer doc.Close()

	var sb strings.Builder
	for n := 0; n < doc.NumPage(); n++ {
		pageText, err := doc.Text(n)
		if err != nil {
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n\n")
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("%w: pdf contains no extractable text", model.ErrCorruptDocument)
	}
	return text, nil
}

var xmlTagRe = regexp.MustCompile(`<[^>]*>`)

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: open docx: %v", model.ErrCorruptDocument, err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	// paragraph closings become line breaks before the tags are stripped
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	text := html.UnescapeString(xmlTagRe.ReplaceAllString(content, " "))
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: docx contains no extractable text", model.ErrCorruptDocument)
	}
	return text, nil
}

// extractDOC salvages text from legacy Word binaries. Files carrying the OLE
// magic get their printable runs scavenged (Word stores body text as either
// CP1252 or UTF-16LE); a .doc that is really a zip is routed to the DOCX path.
func extractDOC(data []byte) (string, error) {
	if bytes.HasPrefix(data, []byte("PK")) {
		return extractDOCX(data)
	}
	if !bytes.HasPrefix(data, oleMagic) {
		return "", fmt.Errorf("%w: not an OLE compound document", model.ErrCorruptDocument)
	}

	ascii := printableRuns(data)
	wide := printableRuns(decodeUTF16LE(data))
	text := ascii
	if len(wide) > len(ascii) {
		text = wide
	}
	if len(text) < 40 {
		return "", fmt.Errorf("%w: doc contains no recoverable text", model.ErrCorruptDocument)
	}
	return text, nil
}

// printableRuns keeps runs of at least 8 consecutive printable bytes,
// discarding the binary structure around them.
func printableRuns(data []byte) string {
	var sb strings.Builder
	var run []byte
	flush := func() {
		if len(run) >= 8 {
			sb.Write(run)
			sb.WriteByte('\n')
		}
		run = run[:0]
	}
	for _, b := range data {
		if b >= 0x20 && b < 0x7F || b == '\t' {
			run = append(run, b)
		} else {
			flush()
		}
	}
	flush()
	return sb.String()
}

func decodeUTF16LE(data []byte) []byte {
	u16 := make([]uint16, 0, len(data)/2)
	for i := 0; i+1 < len(data); i += 2 {
		u16 = append(u16, uint16(data[i])|uint16(data[i+1])<<8)
	}
	return []byte(string(utf16.Decode(u16)))
}

// extractTXT transcodes to UTF-8, replacing invalid sequences rather than
// failing; plain text is low-risk.
func extractTXT(data []byte) (string, error) {
	text := strings.ToValidUTF8(string(data), "�")
	text = strings.TrimPrefix(text, "\uFEFF")
	return text, nil
}

var (
	spaceRunRe   = regexp.MustCompile(`[ \t\r\f\v]+`)
	blankLinesRe = regexp.MustCompile(`\n{3,}`)
	lineEdgeRe   = regexp.MustCompile(`(?m)^[ ]+|[ ]+$`)
)

// NormalizeWhitespace collapses runs of whitespace and trims, preserving
// paragraph breaks for the downstream chunker. No case folding happens here.
func NormalizeWhitespace(text string) string {
	text = spaceRunRe.ReplaceAllString(text, " ")
	text = lineEdgeRe.ReplaceAllString(text, "")
	text = blankLinesRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

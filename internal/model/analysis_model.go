package model

type SourceFormat string

const (
	FormatPDF  SourceFormat = "pdf"
	FormatDOC  SourceFormat = "doc"
	FormatDOCX SourceFormat = "docx"
	FormatTXT  SourceFormat = "txt"
)

// ExtractedDocument is the normalized plain-text form of an uploaded resume.
type ExtractedDocument struct {
	RawText      string
	SourceFormat SourceFormat
	CharCount    int
}

// MatchResult is the outcome of comparing resume keywords against job keywords.
type MatchResult struct {
	MatchedKeywords []string
	MissingKeywords []string
	KeywordScore    int
}

// OptionalScore is a score that may be absent. A zero Value with Present=false
// must never be read as a zero score; Reason says why the score is missing.
type OptionalScore struct {
	Value   float64
	Present bool
	Reason  string
}

func PresentScore(value float64) OptionalScore {
	return OptionalScore{Value: value, Present: true}
}

func AbsentScore(reason string) OptionalScore {
	return OptionalScore{Present: false, Reason: reason}
}

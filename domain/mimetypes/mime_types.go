package mimetypes

import "mime"

type MIME string

const (
	Unknown   MIME = "unknown"
	TextPlain MIME = "text/plain"
	TextCSV   MIME = "text/csv"
	TextTSV   MIME = "text/tab-separated-values"
)

// Tables are the types a review corpus may be sniffed as.
var Tables = []MIME{TextCSV, TextTSV, TextPlain}

func Matches(detected string, expected MIME) (MIME, bool) {
	mt, _, err := mime.ParseMediaType(detected)
	if err != nil {
		return Unknown, false
	}
	return expected, mt == string(expected)
}

// IsTable reports whether a detected media type can hold a review table.
func IsTable(detected string) bool {
	for _, expected := range Tables {
		if _, ok := Matches(detected, expected); ok {
			return true
		}
	}
	return false
}

package render

import (
	"strings"
	"unicode"
)

const fallbackFilename = "document"

// Filename derives the download name "{client}-{firstDescription}-{reference}.pdf". Every
// character that is not a letter or digit is stripped from each segment and empty segments are
// left out.
func Filename(client, firstDescription, reference string) string {
	segments := make([]string, 0, 3)

	for _, segment := range []string{client, firstDescription, reference} {
		if cleaned := alphanumeric(segment); cleaned != "" {
			segments = append(segments, cleaned)
		}
	}

	if len(segments) == 0 {
		return fallbackFilename + ".pdf"
	}

	return strings.Join(segments, "-") + ".pdf"
}

func alphanumeric(value string) string {
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return r
		}

		return -1
	}, value)
}

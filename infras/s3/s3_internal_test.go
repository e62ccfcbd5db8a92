package s3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectNameFromURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{name: "public domain", url: "https://cdn.tourdesk.test/logos/agency.png", expected: "logos/agency.png"},
		{name: "api endpoint", url: "https://s3.tourdesk.test/documents/pdf/QTN-1.pdf", expected: "pdf/QTN-1.pdf"},
		{name: "foreign url", url: "https://example.com/logo.png", expected: ""},
		{name: "bare prefix", url: "https://cdn.tourdesk.test/", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := objectNameFromURL("https://cdn.tourdesk.test/", "https://s3.tourdesk.test", "documents", tt.url)

			assert.Equal(t, tt.expected, actual)
		})
	}
}

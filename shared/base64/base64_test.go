package base64_test

import (
	"testing"

	"tourdesk/shared/base64"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pixel = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNk+M9QDwADhgGAWjR9awAAAABJRU5ErkJggg=="

func TestGetContentType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "png", input: "data:image/png;base64," + pixel, expected: "image/png"},
		{name: "plain text", input: "data:text/plain;base64,SGVsbG8=", expected: "text/plain"},
		{name: "missing marker", input: "data:image/png," + pixel, expected: ""},
		{name: "missing prefix", input: "image/png;base64," + pixel, expected: ""},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, base64.GetContentType(tt.input))
		})
	}
}

func TestDecodeEncode(t *testing.T) {
	contentType, data, err := base64.Decode("data:text/plain;base64,SGVsbG8=")
	require.NoError(t, err)

	assert.Equal(t, "text/plain", contentType)
	assert.Equal(t, []byte("Hello"), data)
	assert.Equal(t, "data:text/plain;base64,SGVsbG8=", base64.Encode(contentType, data))
}

func TestDecode_Invalid(t *testing.T) {
	_, _, err := base64.Decode("not a data uri")
	assert.ErrorIs(t, err, base64.ErrInvalidDataURI)

	_, _, err = base64.Decode("data:image/png;base64,@@@")
	assert.Error(t, err)
}

func TestDecodedLen(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{name: "padded", input: "data:text/plain;base64,SGVsbG8=", expected: 5},
		{name: "unpadded", input: "data:text/plain;base64,SGVsbG8h", expected: 6},
		{name: "empty payload", input: "data:text/plain;base64,", expected: 0},
		{name: "not a data uri", input: "SGVsbG8=", expected: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, base64.DecodedLen(tt.input))
		})
	}
}

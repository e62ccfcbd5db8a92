package base64

import (
	stdbase64 "encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const (
	dataPrefix   = "data:"
	base64Marker = ";base64,"
)

var ErrInvalidDataURI = errors.New("invalid base64 data uri")

// GetContentType returns the media type of a data URI such as "data:image/png;base64,...".
func GetContentType(file string) string {
	if !strings.HasPrefix(file, dataPrefix) {
		return ""
	}

	end := strings.Index(file, base64Marker)
	if end == -1 {
		return ""
	}

	return file[len(dataPrefix):end]
}

// DecodedLen returns the payload size of a data URI without decoding it, or -1 when file
// is not a data URI.
func DecodedLen(file string) int {
	marker := strings.Index(file, base64Marker)
	if GetContentType(file) == "" || marker == -1 {
		return -1
	}

	payload := strings.TrimRight(file[marker+len(base64Marker):], "=")

	return stdbase64.RawStdEncoding.DecodedLen(len(payload))
}

// Decode splits a data URI into its content type and decoded payload.
func Decode(file string) (string, []byte, error) {
	contentType := GetContentType(file)
	if contentType == "" {
		return "", nil, ErrInvalidDataURI
	}

	payload := file[strings.Index(file, base64Marker)+len(base64Marker):]

	data, err := stdbase64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode base64 payload: %w", err)
	}

	return contentType, data, nil
}

func Encode(contentType string, data []byte) string {
	return dataPrefix + contentType + base64Marker + stdbase64.StdEncoding.EncodeToString(data)
}

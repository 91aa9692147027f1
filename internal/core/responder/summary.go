package responder

import (
	"bytes"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const unknownRequest = "unknown"

// requestSummary returns the first line of p for logging, or "unknown" when p
// holds no line at all. Invalid UTF-8 is replaced with U+FFFD; the content is
// never validated.
func requestSummary(p []byte) string {
	if len(p) == 0 {
		return unknownRequest
	}
	line := p
	if i := bytes.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	line = bytes.TrimSuffix(line, []byte{'\r'})

	decoded, _, err := transform.Bytes(unicode.UTF8.NewDecoder(), line)
	if err != nil {
		return string(line)
	}
	return string(decoded)
}

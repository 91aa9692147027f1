package responder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestSummary(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want string
	}{
		{"first line only", []byte("GET / HTTP/1.1\r\nHost: example\r\n\r\n"), "GET / HTTP/1.1"},
		{"no newline", []byte("PING"), "PING"},
		{"bare newline", []byte("PING\nPONG\n"), "PING"},
		{"empty first line", []byte("\r\nrest"), ""},
		{"bare newline only", []byte("\n"), ""},
		{"no input", nil, unknownRequest},
		{"invalid utf8 replaced", []byte{'a', 0xff, 'b'}, "a�b"},
		{"valid multibyte kept", []byte("héllo\n"), "héllo"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, requestSummary(tc.in))
		})
	}
}

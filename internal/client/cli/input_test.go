package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestReadField(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		err   error
	}{
		{name: "trims blanks", input: "  alice@example.com \n", want: "alice@example.com"},
		{name: "last line without newline", input: "alice", want: "alice"},
		{name: "nothing left", input: "", err: io.EOF},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := readField(rdr(tc.input), "Email", &out)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, "Email: ", out.String())
		})
	}
}

func TestReadSecret(t *testing.T) {
	orig := termReadPassword
	t.Cleanup(func() { termReadPassword = orig })

	termReadPassword = func(int) ([]byte, error) { return []byte("hunter2"), nil }
	var out bytes.Buffer
	pw, err := readSecret(&out)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", string(pw))
	assert.Equal(t, "Password: \n", out.String())

	boom := errors.New("not a terminal")
	termReadPassword = func(int) ([]byte, error) { return nil, boom }
	_, err = readSecret(&out)
	require.ErrorIs(t, err, boom)
}

func TestReadParagraph(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "stops on blank line", input: "Clean water\nfor everyone\n\nleftover\n", expected: "Clean water\nfor everyone"},
		{name: "windows line endings", input: "a\r\nb\r\n\r\n", expected: "a\nb"},
		{name: "blank first line gives empty text", input: "\n", expected: ""},
		{name: "EOF ends input", input: "a\nb", expected: "a\nb"},
		{name: "outer whitespace trimmed", input: "  padded  \n\n", expected: "padded"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := readParagraph(rdr(tc.input), "Description", &out)
			require.NoError(t, err)
			require.Equal(t, tc.expected, got)
			require.Contains(t, out.String(), "Description (finish with a blank line)")
		})
	}
}

func TestReadParagraph_LeavesRestForNextPrompt(t *testing.T) {
	r := rdr("About us\n\n+380501234567\n")
	var out bytes.Buffer

	desc, err := readParagraph(r, "Description", &out)
	require.NoError(t, err)
	assert.Equal(t, "About us", desc)

	phone, err := readField(r, "Phone number", &out)
	require.NoError(t, err)
	assert.Equal(t, "+380501234567", phone)
}

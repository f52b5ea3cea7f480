package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// termReadPassword is swapped out in tests.
var termReadPassword = term.ReadPassword

// readField asks for one form field ("Email: ") and returns the answer
// without surrounding blanks. A last line cut short by EOF still counts.
func readField(r *bufio.Reader, label string, w io.Writer) (string, error) {
	if _, err := fmt.Fprintf(w, "%s: ", label); err != nil {
		return "", err
	}
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readSecret reads the account password with echo off. Callers wipe the
// returned bytes once the request is sent.
func readSecret(w io.Writer) ([]byte, error) {
	fmt.Fprint(w, "Password: ")
	pw, err := termReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	return pw, nil
}

// readParagraph collects free text such as a charity description. Input
// ends at the first blank line or at EOF.
func readParagraph(r *bufio.Reader, label string, w io.Writer) (string, error) {
	if _, err := fmt.Fprintf(w, "%s (finish with a blank line):\n", label); err != nil {
		return "", err
	}

	var b strings.Builder
	for {
		line, err := r.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line != "" {
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(line)
		}
		if line == "" || errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
	}
	return strings.TrimSpace(b.String()), nil
}

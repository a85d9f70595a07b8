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

// readPassword can be replaced in tests to avoid touching the terminal.
var readPassword = term.ReadPassword

var isTerminal = term.IsTerminal

// Password prompts for a password on the terminal without echoing it. When
// stdin is not a terminal, the first line of in is used.
func Password(in io.Reader, w io.Writer, prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if in == os.Stdin && isTerminal(fd) {
		if _, err := fmt.Fprint(w, prompt+": "); err != nil {
			return "", err
		}
		password, err := readPassword(fd)
		fmt.Fprintln(w)
		if err != nil {
			return "", err
		}
		return string(password), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return "", fmt.Errorf("could not read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

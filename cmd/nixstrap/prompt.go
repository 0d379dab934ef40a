package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/conn-castle/nixstrap/internal/messages"
)

// promptYesNo asks a yes/no question on the terminal. Empty input adopts
// the default; EOF does too, so piped input never wedges the command.
func promptYesNo(in io.Reader, out io.Writer, question string, defaultYes bool) (bool, error) {
	format := messages.PromptNoDefaultFmt
	if defaultYes {
		format = messages.PromptYesDefaultFmt
	}
	reader := bufio.NewReader(in)
	response := ""
	for attempts := 0; attempts < 3; attempts++ {
		fmt.Fprintf(out, format, question)
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		response = strings.ToLower(strings.TrimSpace(line))
		switch response {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if errors.Is(err, io.EOF) {
			break
		}
		fmt.Fprintln(out, messages.PromptRetryYesNo)
	}
	return false, fmt.Errorf(messages.PromptInvalidResponseFmt, response)
}

package main

import (
	"errors"
	"io"
	"strings"

	"github.com/peterh/liner"
)

// confirm asks a yes/no question on the terminal. End of input or Ctrl-C
// counts as no.
func confirm(prompt string) (bool, error) {
	input := liner.NewLiner()
	defer input.Close()
	input.SetCtrlCAborts(true)

	answer, err := input.Prompt(prompt)
	if err == io.EOF || errors.Is(err, liner.ErrPromptAborted) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return isYes(answer), nil
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

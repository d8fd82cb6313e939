package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
)

// ErrNoTerminal is returned by the prompts when stdin is not a terminal.
var ErrNoTerminal = errors.New("stdin is not a terminal")

// NoInput reports whether err means the user gave no answer.
func NoInput(err error) bool {
	return errors.Is(err, ErrNoTerminal) || errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt)
}

func stdinIsTerminal() bool {
	return readline.IsTerminal(int(os.Stdin.Fd()))
}

// PromptSecret reads a masked line from the terminal.
func PromptSecret(prompt string) (string, error) {
	if !stdinIsTerminal() {
		return "", ErrNoTerminal
	}
	rl, err := readline.NewEx(&readline.Config{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("could not open terminal: %w", err)
	}
	defer rl.Close()

	b, err := rl.ReadPassword(prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// PromptFields asks for each column in turn. A line holding only "." aborts
// and returns ok=false.
func PromptFields(columns []string) (values map[string]string, ok bool, err error) {
	if !stdinIsTerminal() {
		return nil, false, ErrNoTerminal
	}
	rl, err := readline.NewEx(&readline.Config{DisableAutoSaveHistory: true})
	if err != nil {
		return nil, false, fmt.Errorf("could not open terminal: %w", err)
	}
	defer rl.Close()

	values = make(map[string]string, len(columns))
	for _, col := range columns {
		rl.SetPrompt(fmt.Sprintf("  %s: ", col))
		line, err := rl.Readline()
		if err != nil {
			return nil, false, err
		}
		if strings.TrimSpace(line) == cancelInput {
			return nil, false, nil
		}
		values[col] = line
	}
	return values, true, nil
}

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"podpost/internal/taxonomy"
	"podpost/internal/textutil"
)

// consolePrompter collects missing taxonomy mappings interactively. Outside
// a terminal it declines instead of hanging on stdin.
type consolePrompter struct {
	in  *bufio.Reader
	tty bool
}

func newConsolePrompter() *consolePrompter {
	return &consolePrompter{
		in:  bufio.NewReader(os.Stdin),
		tty: isatty.IsTerminal(os.Stdin.Fd()),
	}
}

// Pick implements taxonomy.Prompter.
func (p *consolePrompter) Pick(_ context.Context, stage taxonomy.Stage, key string, options []string) (taxonomy.Resolution, error) {
	if !p.tty {
		return taxonomy.Resolution{}, fmt.Errorf("%w: no terminal to ask for the %s of %q",
			taxonomy.ErrDeclined, stage, key)
	}

	fmt.Printf("%s needed for:\n  %s\n", textutil.TitleCase(stage.String()), key)
	for i, option := range options {
		fmt.Printf("  %d) %s\n", i+1, option)
	}
	fmt.Printf("Enter the %s (a number picks an option, empty aborts): ", stage)

	answer, err := p.readLine()
	if err != nil {
		return taxonomy.Resolution{}, err
	}
	if answer == "" {
		return taxonomy.Resolution{}, taxonomy.ErrDeclined
	}
	if index, convErr := strconv.Atoi(answer); convErr == nil && index >= 1 && index <= len(options) {
		answer = options[index-1]
	}

	fmt.Print("Remember this mapping? [Y/n]: ")
	save, err := p.readLine()
	if err != nil {
		return taxonomy.Resolution{}, err
	}

	return taxonomy.Resolution{
		Value: answer,
		Save:  save == "" || strings.EqualFold(save, "y") || strings.EqualFold(save, "yes"),
	}, nil
}

func (p *consolePrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

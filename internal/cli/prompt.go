package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

// prompter asks init questions on out and reads answers line by line from in.
type prompter struct {
	reader *bufio.Reader
	out    io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{reader: bufio.NewReader(in), out: out}
}

// answer reads one trimmed line. eof reports that no further input follows.
func (p *prompter) answer() (line string, eof bool, err error) {
	line, err = p.reader.ReadString('\n')
	if errors.Is(err, io.EOF) {
		return strings.TrimSpace(line), true, nil
	}
	if err != nil {
		return "", false, err
	}
	return strings.TrimSpace(line), false, nil
}

// text asks for a value; an empty answer takes defaultValue.
func (p *prompter) text(label, defaultValue string) (string, error) {
	for {
		if defaultValue != "" {
			fmt.Fprintf(p.out, "%s [%s]: ", label, defaultValue)
		} else {
			fmt.Fprintf(p.out, "%s: ", label)
		}
		line, eof, err := p.answer()
		if err != nil {
			return "", err
		}
		switch {
		case line != "":
			return line, nil
		case defaultValue != "":
			return defaultValue, nil
		case eof:
			return "", fmt.Errorf("missing input for %s", label)
		}
	}
}

// choice asks until the answer is one of options, compared case-insensitively.
func (p *prompter) choice(label string, options []string, defaultValue string) (string, error) {
	prompt := fmt.Sprintf("%s (%s)", label, strings.Join(options, "|"))
	for {
		value, err := p.text(prompt, defaultValue)
		if err != nil {
			return "", err
		}
		value = strings.ToLower(value)
		if slices.Contains(options, value) {
			return value, nil
		}
		fmt.Fprintf(p.out, "Please answer %s.\n", strings.Join(options, " or "))
	}
}

// confirm asks a yes/no question; an empty answer or end of input takes defaultYes.
func (p *prompter) confirm(label string, defaultYes bool) (bool, error) {
	suffix := "y/N"
	if defaultYes {
		suffix = "Y/n"
	}
	for {
		fmt.Fprintf(p.out, "%s [%s]: ", label, suffix)
		line, eof, err := p.answer()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if eof {
			return false, fmt.Errorf("invalid response %q", line)
		}
		fmt.Fprintln(p.out, "Please answer yes or no.")
	}
}

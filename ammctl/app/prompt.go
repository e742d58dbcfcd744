package app

import (
	"errors"
	"github.com/manifoldco/promptui"
	"strings"
)

var (
	ErrInputEmpty = errors.New("input is empty")
	ErrCancelled  = errors.New("cancelled")
)

type Prompter interface {
	Select(label string, items []string) (int, error)
	Input(label string, validate func(string) error) (string, error)
	Confirm(label string) (bool, error)
}

// TerminalPrompter asks on the terminal. With yes set, confirmations are skipped.
type TerminalPrompter struct {
	yes bool
}

func NewTerminalPrompter(yes bool) *TerminalPrompter {
	return &TerminalPrompter{yes: yes}
}

func (p *TerminalPrompter) Select(label string, items []string) (int, error) {
	promptSelect := promptui.Select{
		Label: label,
		Items: items,
	}
	index, _, err := promptSelect.Run()
	return index, err
}

func (p *TerminalPrompter) Input(label string, validate func(string) error) (string, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			input = strings.TrimSpace(input)
			if len(input) == 0 {
				return ErrInputEmpty
			}
			if validate != nil {
				return validate(input)
			}
			return nil
		},
	}
	text, err := promptText.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (p *TerminalPrompter) Confirm(label string) (bool, error) {
	if p.yes {
		return true, nil
	}
	promptText := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	_, err := promptText.Run()
	if errors.Is(err, promptui.ErrAbort) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"jsfront/internal/driver"
	"jsfront/internal/processor"
	"jsfront/internal/ui"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

func shouldUseTUI(mode uiMode) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(os.Stdout)
	}
}

type processOutcome struct {
	outcomes []processor.FileOutcome
	err      error
}

// runProcessWithUI runs work in the background and shows its events until
// work returns and the channel is closed.
func runProcessWithUI(ctx context.Context, title string, files []string, work func(chan<- driver.Event) ([]processor.FileOutcome, error)) ([]processor.FileOutcome, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan processOutcome, 1)

	go func() {
		res, err := work(events)
		outcomeCh <- processOutcome{outcomes: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, "processing", files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// отпускаем воркеров, если UI закрылся раньше
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil && ctx.Err() == nil {
		return outcome.outcomes, uiErr
	}
	return outcome.outcomes, outcome.err
}

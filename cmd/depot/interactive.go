package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fbkclanna/depot/internal/config"
	"github.com/fbkclanna/depot/internal/selector"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

var errAborted = errors.New("user aborted")

// newSelector picks scripted answers when configured, a terminal UI when
// stdin is a TTY, and a line prompt otherwise.
func newSelector(cmd *cobra.Command, cfg *config.Config) selector.Provider {
	if answers := selector.ParseScript(cfg.Select); len(answers) > 0 {
		return selector.NewScripted(answers...)
	}
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return teaSelector{}
	}
	return selector.NewPrompt(cmd.InOrStdin(), cmd.ErrOrStderr())
}

// teaSelector asks with bubbletea programs.
type teaSelector struct{}

func (teaSelector) ChooseIndex(choices []string) (int, error) {
	result, err := tea.NewProgram(newChoiceModel("Select the project to use", choices)).Run()
	if err != nil {
		return 0, err
	}
	rm := result.(choiceModel)
	if rm.aborted {
		return 0, errAborted
	}
	return rm.cursor, nil
}

func (teaSelector) RequestPath() (string, error) {
	return promptInput("No projects declared, enter the project path", "src/app/app.csproj", func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("path is required")
		}
		return nil
	})
}

// --- choiceModel: bubbletea model for picking one entry of a list ---

type choiceModel struct {
	title   string
	choices []string
	cursor  int
	done    bool
	aborted bool
}

func newChoiceModel(title string, choices []string) choiceModel {
	return choiceModel{title: title, choices: choices}
}

func (m choiceModel) Init() tea.Cmd {
	return nil
}

func (m choiceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch s := key.String(); s {
	case "ctrl+c", "esc", "q":
		m.aborted = true
		return m, tea.Quit
	case "enter":
		m.done = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.choices)-1 {
			m.cursor++
		}
	default:
		if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= len(m.choices) {
			m.cursor = n - 1
		}
	}
	return m, nil
}

func (m choiceModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title) + "\n")
	for i, c := range m.choices {
		line := fmt.Sprintf("%d) %s", i+1, c)
		if i == m.cursor {
			b.WriteString("> " + selectedStyle.Render(line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	return b.String()
}

// --- inputModel: bubbletea model for text input with validation ---

type inputModel struct {
	textInput textinput.Model
	title     string
	validate  func(string) error
	errMsg    string
	done      bool
	aborted   bool
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			if m.validate != nil {
				if err := m.validate(m.textInput.Value()); err != nil {
					m.errMsg = err.Error()
					return m, nil
				}
			}
			m.done = true
			return m, tea.Quit
		}
	}
	m.errMsg = ""
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title) + "\n")
	b.WriteString(m.textInput.View() + "\n")
	if m.errMsg != "" {
		b.WriteString(errStyle.Render(m.errMsg) + "\n")
	}
	return b.String()
}

func newInputModel(title, placeholder string, validate func(string) error) inputModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	return inputModel{textInput: ti, title: title, validate: validate}
}

func promptInput(title, placeholder string, validate func(string) error) (string, error) {
	result, err := tea.NewProgram(newInputModel(title, placeholder, validate)).Run()
	if err != nil {
		return "", err
	}
	rm := result.(inputModel)
	if rm.aborted {
		return "", errAborted
	}
	return strings.TrimSpace(rm.textInput.Value()), nil
}

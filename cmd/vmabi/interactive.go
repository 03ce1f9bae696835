package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wippyai/vm-abi/codec"
	"github.com/wippyai/vm-abi/errors"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const (
	focusTypes = iota
	focusValues
	focusName
	focusCount
)

type interactiveModel struct {
	err       error
	cfg       codec.Config
	signature string
	encoded   string
	debug     []string
	types     textarea.Model
	values    textarea.Model
	name      textinput.Model
	focusIdx  int
}

func newInteractiveModel(cfg codec.Config) *interactiveModel {
	types := textarea.New()
	types.Placeholder = `["u64", {"kind":"vector","elem":"u8"}]`
	types.SetWidth(60)
	types.SetHeight(4)
	types.Focus()

	values := textarea.New()
	values.Placeholder = `[42, [7, 8, 9]]`
	values.SetWidth(60)
	values.SetHeight(4)

	name := textinput.New()
	name.Prompt = "function: "
	name.Placeholder = "optional, prefixes the selector"
	name.Width = 40

	return &interactiveModel{cfg: cfg, types: types, values: values, name: name}
}

func (m *interactiveModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.setFocus((m.focusIdx + 1) % focusCount)
			return m, nil
		case "shift+tab":
			m.setFocus((m.focusIdx + focusCount - 1) % focusCount)
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.focusIdx {
	case focusTypes:
		m.types, cmd = m.types.Update(msg)
	case focusValues:
		m.values, cmd = m.values.Update(msg)
	case focusName:
		m.name, cmd = m.name.Update(msg)
	}
	m.evaluate()
	return m, cmd
}

func (m *interactiveModel) setFocus(idx int) {
	m.types.Blur()
	m.values.Blur()
	m.name.Blur()
	switch idx {
	case focusTypes:
		m.types.Focus()
	case focusValues:
		m.values.Focus()
	case focusName:
		m.name.Focus()
	}
	m.focusIdx = idx
}

// evaluate re-encodes the current input and stores either the output or the first error.
func (m *interactiveModel) evaluate() {
	m.err, m.encoded, m.signature, m.debug = nil, "", "", nil

	if strings.TrimSpace(m.types.Value()) == "" {
		return
	}
	types, err := parseTypes([]byte(m.types.Value()))
	if err != nil {
		m.err = err
		return
	}
	if name := strings.TrimSpace(m.name.Value()); name != "" {
		m.signature = codec.Signature(name, types)
	}
	if strings.TrimSpace(m.values.Value()) == "" {
		return
	}
	values, err := parseValues(types, []byte(m.values.Value()))
	if err != nil {
		m.err = err
		return
	}

	out, err := codec.NewEncoder(m.cfg).EncodeArgs(types, values)
	if err != nil {
		m.err = err
		return
	}
	if name := strings.TrimSpace(m.name.Value()); name != "" {
		out = codec.CallData(codec.FunctionSelector(name, types), out)
	}
	m.encoded = "0x" + hex.EncodeToString(out)

	for i, v := range values {
		text, err := codec.Debug(types[i], v)
		if err != nil {
			m.err = err
			return
		}
		m.debug = append(m.debug, text)
	}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("VM ABI Encoder"))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Types"))
	b.WriteString("\n")
	b.WriteString(m.types.View())
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Values"))
	b.WriteString("\n")
	b.WriteString(m.values.View())
	b.WriteString("\n\n")
	b.WriteString(m.name.View())
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	case m.encoded != "":
		if m.signature != "" {
			b.WriteString(typeStyle.Render(m.signature))
			b.WriteString("\n")
		}
		b.WriteString(resultStyle.Render(m.encoded))
		for _, d := range m.debug {
			b.WriteString("\n")
			b.WriteString(typeStyle.Render(d))
		}
	case m.signature != "":
		b.WriteString(typeStyle.Render(m.signature))
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("tab next field • shift+tab previous • esc quit"))

	return b.String()
}

func newInteractiveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Edit types and values in a TUI and watch the encoding update",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.New(errors.PhaseCLI, errors.KindUnsupported).
					Detail("interactive mode needs a terminal on stdout").
					Build()
			}
			p := tea.NewProgram(newInteractiveModel(a.cfg), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}
}

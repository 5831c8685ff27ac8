package prompt

import (
	"agedASN/internal/report"
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	pathQuestion = "Enter the file path for the Firm Order Report (Press 1 for help or 0 to exit): "
	pauseMessage = "Press 'Enter' to safely close the program. "

	helpText = "To find the file path:\n" +
		"1) Open 'Files'\n" +
		"2) Right Click on the Weeks on Hand Report\n" +
		"3) Select 'Copy as path'\n" +
		"4) Paste the path into the terminal when prompted"
)

var (
	questionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	inputStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// Answer is the outcome of the path prompt
type Answer struct {
	Path string
	Exit bool
	Err  error
}

type pathModel struct {
	input    string
	showHelp bool
	done     bool
	answer   Answer
}

func newPathModel() pathModel {
	return pathModel{}
}

func (m pathModel) Init() tea.Cmd {
	return nil
}

func (m pathModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.done = true
		m.answer = Answer{Exit: true}
		return m, tea.Quit

	case tea.KeyEnter:
		value := m.input
		m.input = ""
		if value == helpSentinel {
			m.showHelp = true
			return m, nil
		}

		m.done = true
		path, err := ValidatePath(value)
		switch {
		case errors.Is(err, ErrExit):
			m.answer = Answer{Exit: true}
		case err != nil:
			m.answer = Answer{Err: err}
		default:
			m.answer = Answer{Path: path}
		}
		return m, tea.Quit

	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}

	case tea.KeySpace:
		m.input += " "

	case tea.KeyRunes:
		m.input += string(key.Runes)
	}
	return m, nil
}

func (m pathModel) View() string {
	var b strings.Builder
	if m.showHelp && !m.done {
		b.WriteString(helpStyle.Render(helpText))
		b.WriteString("\n\n")
	}
	b.WriteString(questionStyle.Render(pathQuestion))
	if m.done {
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(inputStyle.Render(m.input))
	return b.String()
}

type pauseModel struct {
	done bool
}

func (m pauseModel) Init() tea.Cmd {
	return nil
}

func (m pauseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter, tea.KeyCtrlC, tea.KeyEsc:
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m pauseModel) View() string {
	if m.done {
		return "\n"
	}
	return "\n" + questionStyle.Render(pauseMessage)
}

// AskPath runs the path prompt until the operator submits something other
// than the help sentinel.
func AskPath(in io.Reader, out io.Writer) (Answer, error) {
	p := tea.NewProgram(newPathModel(), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return Answer{}, fmt.Errorf("error running prompt: %v", err)
	}
	m := final.(pathModel)
	if !m.done {
		return Answer{Exit: true}, nil
	}
	return m.answer, nil
}

// Pause waits for Enter so a console window opened by double click stays
// readable.
func Pause(in io.Reader, out io.Writer) error {
	p := tea.NewProgram(pauseModel{}, tea.WithInput(in), tea.WithOutput(out))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running pause: %v", err)
	}
	return nil
}

// RenderError formats a failure for the console. Coded errors already
// carry their "Error <code>:" prefix.
func RenderError(err error) string {
	var coded *report.CodedError
	if errors.As(err, &coded) {
		return errorStyle.Render(coded.Error())
	}
	return errorStyle.Render("Error: " + err.Error())
}

package repl

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/droll/lang"
	"github.com/ardnew/droll/log"
)

const evalPrompt = "➜ "

func helpMessage() string {
	return `
: Commands:

  :help        Print this cruft
  :vars        List variable bindings
  :set X EXPR  Bind variable X to a number or expression
  :unset X     Remove the binding for X
  :explode     Toggle exploding dice
  :keep        Toggle keeping individual die results
  :lowest      Toggle preferring the lower value at ','
  :clear       Clear screen
  :quit        Exit REPL

Usage:
  Type a dice expression to roll it (e.g. 3d6+2)
  Press Tab / Shift-Tab to cycle through completions
  Use Up/Down arrows for history navigation
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// formatCommand formats the echo line with prompt and input styled.
func formatCommand(input string) string {
	return promptStyle.Render(evalPrompt) + inputStyle.Render(input)
}

// Repl runs the interactive read-roll-print loop.
type Repl struct {
	Bindings string `help:"YAML file of initial variable bindings" short:"b"                    type:"existingfile"`
	History  string `help:"History file path"                      default:"${cache}/history.utf8"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	bindings := lang.Bindings{}

	if r.Bindings != "" {
		loaded, err := loadBindingsFile(ctx, r.Bindings)
		if err != nil {
			return err
		}

		bindings = loaded
	}

	history := NewHistory(r.History)
	if err := history.Load(); err != nil {
		log.WarnContext(ctx, "history load failed",
			slog.String("path", r.History),
			slog.Any("error", err),
		)
	}

	m := newModel(ctx, bindings, history)

	_, err := tea.NewProgram(m).Run()

	return err
}

// loadBindingsFile reads initial variable bindings from a YAML file.
func loadBindingsFile(ctx context.Context, path string) (lang.Bindings, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return lang.LoadBindings(ctx, bufio.NewReader(file))
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctx      context.Context
	input    textinput.Model
	history  *History
	bindings lang.Bindings
	complete completer

	historyIdx int

	explode bool
	keep    bool
	lowest  bool

	suggestions  []string // current completion candidates
	suggIdx      int      // selected candidate index
	tabActive    bool     // whether user is tab-cycling
	preTabText   string   // input text before tab-cycling began
	preTabCursor int      // cursor position before tab-cycling began

	quitting bool
}

func newModel(
	ctx context.Context,
	bindings lang.Bindings,
	history *History,
) *model {
	input := textinput.New()
	input.Prompt = promptStyle.Render(evalPrompt)
	input.Focus()

	m := &model{
		ctx:        ctx,
		input:      input,
		history:    history,
		bindings:   bindings,
		historyIdx: history.Len(),
	}

	m.complete.setVariables(m.variableNames())

	return m
}

// Init implements tea.Model.
func (m *model) Init() tea.Cmd { return textinput.Blink }

// Update implements tea.Model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd

		m.input, cmd = m.input.Update(msg)

		return m, cmd
	}

	switch keyMsg.Type {
	case tea.KeyCtrlD:
		m.quitting = true

		return m, tea.Quit

	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.resetCompletion()

		return m, nil

	case tea.KeyEnter:
		return m.submit()

	case tea.KeyTab:
		return m.cycle(1)

	case tea.KeyShiftTab:
		return m.cycle(-1)

	case tea.KeyEsc:
		if m.tabActive {
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			m.resetCompletion()
		}

		return m, nil

	case tea.KeyUp:
		m.navigateHistory(-1)

		return m, nil

	case tea.KeyDown:
		m.navigateHistory(1)

		return m, nil

	default:
		m.resetCompletion()

		var cmd tea.Cmd

		m.input, cmd = m.input.Update(msg)

		return m, cmd
	}
}

// View implements tea.Model.
func (m *model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(m.input.View())

	if m.tabActive && len(m.suggestions) > 0 {
		sb.WriteString("\n")

		for i, s := range m.suggestions {
			if i > 0 {
				sb.WriteString("  ")
			}

			if i == m.suggIdx {
				sb.WriteString(selectedStyle.Render(s))
			} else {
				sb.WriteString(suggestionStyle.Render(s))
			}
		}
	}

	return sb.String()
}

// submit processes the current input line.
func (m *model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())

	m.resetCompletion()
	m.input.SetValue("")

	if line == "" {
		return m, nil
	}

	_, _ = m.history.Write(line)
	m.historyIdx = m.history.Len()

	echo := formatCommand(line)

	if strings.HasPrefix(line, ":") {
		out, cmd := m.command(line)
		if cmd != nil {
			return m, cmd
		}

		return m, tea.Println(echo + "\n" + out)
	}

	return m, tea.Println(echo + "\n" + m.roll(line))
}

// roll compiles and invokes one expression, returning the styled result or
// error line.
func (m *model) roll(source string) string {
	roll, err := lang.Obtain(m.ctx, source)
	if err != nil {
		return errorStyle.Render(err.Error())
	}

	var opts []lang.InvokeOption

	if m.explode {
		opts = append(opts, lang.WithExplode())
	}

	if m.keep {
		opts = append(opts, lang.WithKeep())
	}

	if m.lowest {
		opts = append(opts, lang.WithLowest())
	}

	val, err := roll.Invoke(m.ctx, m.bindings, opts...)
	if err != nil {
		return errorStyle.Render(err.Error())
	}

	return resultStyle.Render(val.String())
}

// command dispatches a ':' control command.
func (m *model) command(line string) (string, tea.Cmd) {
	fields := strings.Fields(line)

	switch fields[0] {
	case ":quit", ":q", ":exit":
		m.quitting = true

		return "", tea.Quit

	case ":clear":
		return "", tea.ClearScreen

	case ":help":
		return hintStyle.Render(helpMessage()), nil

	case ":vars":
		return m.listVars(), nil

	case ":set":
		return m.setVar(fields[1:]), nil

	case ":unset":
		return m.unsetVar(fields[1:]), nil

	case ":explode":
		m.explode = !m.explode

		return hintStyle.Render("explode: " + strconv.FormatBool(m.explode)), nil

	case ":keep":
		m.keep = !m.keep

		return hintStyle.Render("keep: " + strconv.FormatBool(m.keep)), nil

	case ":lowest":
		m.lowest = !m.lowest

		return hintStyle.Render("lowest: " + strconv.FormatBool(m.lowest)), nil

	default:
		return errorStyle.Render("unknown command (try :help)"), nil
	}
}

// listVars renders the current bindings, one per line.
func (m *model) listVars() string {
	if len(m.bindings) == 0 {
		return hintStyle.Render("no bindings")
	}

	var sb strings.Builder

	for _, name := range m.variableNames() {
		fmt.Fprintf(&sb, "%c = %v\n", name, m.bindings[name])
	}

	return hintStyle.Render(strings.TrimRight(sb.String(), "\n"))
}

// setVar binds a variable to a number or an expression string.
func (m *model) setVar(args []string) string {
	if len(args) < 2 {
		return errorStyle.Render("usage: :set X EXPR")
	}

	name, size := utf8.DecodeRuneInString(args[0])
	if size != len(args[0]) {
		return errorStyle.Render("variable names are single characters")
	}

	value := strings.Join(args[1:], " ")

	if num, err := strconv.ParseFloat(value, 64); err == nil {
		m.bindings[name] = num
	} else {
		m.bindings[name] = value
	}

	m.complete.setVariables(m.variableNames())

	return hintStyle.Render(fmt.Sprintf("%c = %v", name, m.bindings[name]))
}

// unsetVar removes a binding.
func (m *model) unsetVar(args []string) string {
	if len(args) != 1 {
		return errorStyle.Render("usage: :unset X")
	}

	name, size := utf8.DecodeRuneInString(args[0])
	if size != len(args[0]) {
		return errorStyle.Render("variable names are single characters")
	}

	delete(m.bindings, name)
	m.complete.setVariables(m.variableNames())

	return hintStyle.Render(fmt.Sprintf("unset %c", name))
}

// variableNames returns the bound names in sorted order.
func (m *model) variableNames() []rune {
	names := make([]rune, 0, len(m.bindings))
	for name := range m.bindings {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// cycle advances the completion selection by delta, starting a new
// completion session if none is active.
func (m *model) cycle(delta int) (tea.Model, tea.Cmd) {
	if !m.tabActive {
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		word, _, _ := currentWord(m.preTabText, m.preTabCursor)

		m.suggestions = m.complete.complete(word)
		if len(m.suggestions) == 0 {
			return m, nil
		}

		m.tabActive = true
		m.suggIdx = 0
	} else {
		n := len(m.suggestions)
		m.suggIdx = ((m.suggIdx+delta)%n + n) % n
	}

	m.applySuggestion()

	return m, nil
}

// applySuggestion replaces the word under the cursor with the selected
// candidate.
func (m *model) applySuggestion() {
	_, start, end := currentWord(m.preTabText, m.preTabCursor)
	candidate := m.suggestions[m.suggIdx]

	text := m.preTabText[:start] + candidate + m.preTabText[end:]

	m.input.SetValue(text)
	m.input.SetCursor(start + len(candidate))
}

// resetCompletion exits any active tab-cycling session.
func (m *model) resetCompletion() {
	m.tabActive = false
	m.suggestions = nil
	m.suggIdx = 0
}

// navigateHistory moves through history by delta, restoring the in-progress
// line when moving past the newest entry.
func (m *model) navigateHistory(delta int) {
	n := m.history.Len()
	if n == 0 {
		return
	}

	idx := m.historyIdx + delta
	if idx < 0 || idx > n {
		return
	}

	m.historyIdx = idx
	m.resetCompletion()

	if idx == n {
		m.input.SetValue("")

		return
	}

	line, err := m.history.GetLine(idx)
	if err != nil {
		return
	}

	m.input.SetValue(line)
	m.input.SetCursor(len(line))
}

// Package shell provides the interactive olivar session: a menu of table
// editors plus the advisory query, driven from a readline prompt.
package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/klytics/olivar/internal/advisor"
	"github.com/klytics/olivar/internal/editor"
	"github.com/klytics/olivar/internal/progress"
	"github.com/klytics/olivar/internal/store"
)

// cancelInput aborts the field-by-field "add" prompts.
const cancelInput = "."

// LineReader reads one line of input after showing prompt.
type LineReader func(prompt string) (string, error)

// Session is one interactive run. The API key lives only in this struct.
type Session struct {
	Store   *store.Store
	Editor  *editor.Editor
	Advisor *advisor.Advisor
	Nav     *Navigator

	APIKey         string
	Out            io.Writer
	HistoryFile    string
	CommandHistory []string
	StartTime      time.Time

	// ReadLine and ReadSecret are wired to readline by Run.
	ReadLine   LineReader
	ReadSecret LineReader
}

// NewSession loads the tables once to set up navigation.
func NewSession(st *store.Store, adv *advisor.Advisor) (*Session, error) {
	set, err := st.Load()
	if err != nil {
		return nil, err
	}

	home, _ := os.UserHomeDir()
	return &Session{
		Store:       st,
		Editor:      editor.New(st),
		Advisor:     adv,
		Nav:         NewNavigator(set),
		Out:         os.Stdout,
		HistoryFile: filepath.Join(home, ".olivar", "shell_history"),
		StartTime:   time.Now(),
	}, nil
}

// Run starts the REPL loop. Blocks until "exit" or Ctrl+D.
func (s *Session) Run(ctx context.Context) error {
	_ = os.MkdirAll(filepath.Dir(s.HistoryFile), 0755)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.prompt(),
		HistoryFile:     s.HistoryFile,
		AutoComplete:    readline.NewPrefixCompleter(s.buildCompleter()...),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	s.ReadLine = func(prompt string) (string, error) {
		rl.SetPrompt(prompt)
		defer rl.SetPrompt(s.prompt())
		return rl.Readline()
	}
	s.ReadSecret = func(prompt string) (string, error) {
		b, err := rl.ReadPassword(prompt)
		return string(b), err
	}

	fmt.Fprintln(s.Out, "🌿 Gestión Integral de Finca de Olivar")
	fmt.Fprintln(s.Out, "Type 'help' for commands, 'exit' to quit.")
	fmt.Fprintln(s.Out)
	if err := s.render(); err != nil {
		return err
	}

	for {
		rl.SetPrompt(s.prompt())
		line, err := rl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		quit, err := s.Eval(ctx, line)
		if err != nil {
			color.New(color.FgRed).Fprintf(s.Out, "Error: %s\n", err)
		}
		if quit {
			fmt.Fprintf(s.Out, "\nSession ended. %d commands run in %s.\n",
				len(s.CommandHistory)-1, formatDuration(time.Since(s.StartTime)))
			return nil
		}
	}

	return nil
}

// Eval runs one shell command. The workbook is reloaded first so every
// interaction starts from what is on disk. quit is true for "exit".
func (s *Session) Eval(ctx context.Context, line string) (quit bool, err error) {
	s.CommandHistory = append(s.CommandHistory, line)

	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "exit", "quit":
		return true, nil
	case "help":
		s.printHelp()
		return false, nil
	case "history":
		for i, cmd := range s.CommandHistory {
			fmt.Fprintf(s.Out, "  %d  %s\n", i+1, cmd)
		}
		return false, nil
	case "key":
		return false, s.readKey()
	}

	set, err := s.Store.Load()
	if err != nil {
		return false, err
	}
	s.Nav.Refresh(set)

	switch name {
	case "menu":
		s.printMenu()
	case "go":
		if arg == "" {
			s.printMenu()
			return false, nil
		}
		if err := s.Nav.Select(arg); err != nil {
			return false, err
		}
		return false, s.renderSet(set)
	case "show":
		return false, s.renderSet(set)
	case "set":
		return false, s.setField(set, arg)
	case "clear":
		if f, _ := s.Nav.Draft(set); f != nil {
			f.Reset()
		}
		return false, s.renderSet(set)
	case "save":
		return false, s.save(set)
	case "add":
		return false, s.addInteractive(set)
	case "ask":
		return false, s.ask(ctx, set, arg)
	default:
		return false, fmt.Errorf("unknown command %q — type 'help'", name)
	}
	return false, nil
}

func (s *Session) setField(set *store.TableSet, arg string) error {
	f, err := s.Nav.Draft(set)
	if err != nil {
		return err
	}
	if f == nil {
		return fmt.Errorf("'set' works in a table view — use 'go <table>'")
	}
	col, val, ok := strings.Cut(arg, "=")
	if !ok {
		return fmt.Errorf("usage: set <column>=<value>")
	}
	return f.Set(strings.TrimSpace(col), strings.TrimSpace(val))
}

func (s *Session) save(set *store.TableSet) error {
	f, err := s.Nav.Draft(set)
	if err != nil {
		return err
	}
	if f == nil {
		return fmt.Errorf("'save' works in a table view — use 'go <table>'")
	}

	t, err := s.Editor.Submit(f)
	if err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintln(s.Out, editor.SavedNotice)
	editor.RenderGrid(s.Out, t)
	return nil
}

func (s *Session) addInteractive(set *store.TableSet) error {
	f, err := s.Nav.Draft(set)
	if err != nil {
		return err
	}
	if f == nil {
		return fmt.Errorf("'add' works in a table view — use 'go <table>'")
	}
	if s.ReadLine == nil {
		return fmt.Errorf("no terminal input available")
	}

	fmt.Fprintf(s.Out, "➕ Agregar nuevo registro en %s (enter '%s' to cancel)\n", f.Table, cancelInput)
	for _, col := range f.Columns {
		val, err := s.ReadLine(fmt.Sprintf("  %s: ", col))
		if err != nil {
			return err
		}
		if strings.TrimSpace(val) == cancelInput {
			f.Reset()
			fmt.Fprintln(s.Out, "Cancelled.")
			return nil
		}
		f.Values[col] = val
	}
	return s.save(set)
}

func (s *Session) readKey() error {
	if s.ReadSecret == nil {
		return fmt.Errorf("no terminal input available")
	}
	key, err := s.ReadSecret("🔑 Clave API de OpenAI: ")
	if err != nil {
		return err
	}
	s.APIKey = strings.TrimSpace(key)
	if s.APIKey == "" {
		fmt.Fprintln(s.Out, "API key cleared.")
	} else {
		fmt.Fprintln(s.Out, "API key set for this session.")
	}
	return nil
}

func (s *Session) ask(ctx context.Context, set *store.TableSet, question string) error {
	if !s.Nav.IsAdvisor() {
		return fmt.Errorf("'ask' works in the %s view — use 'go %s'", AdvisorView, AdvisorView)
	}
	spin := progress.NewSpinner("Consultando al asesor...")
	spin.Start()
	ans := s.Advisor.Ask(ctx, s.APIKey, question, set)
	spin.Stop()
	ans.Render(s.Out)
	return nil
}

func (s *Session) render() error {
	set, err := s.Store.Load()
	if err != nil {
		return err
	}
	s.Nav.Refresh(set)
	return s.renderSet(set)
}

// renderSet draws the active view: the grid plus the pending form for a
// table, or the advisory prompt.
func (s *Session) renderSet(set *store.TableSet) error {
	if s.Nav.IsAdvisor() {
		color.New(color.Bold, color.FgCyan).Fprintln(s.Out, "🤖 Consulta a GPT tus datos agrícolas")
		if s.APIKey == "" {
			advisor.Answer{Warning: advisor.MissingKeyWarning + " Use 'key'."}.Render(s.Out)
			return nil
		}
		fmt.Fprintln(s.Out, "Haz tu pregunta sobre la finca, costes, rentabilidad, etc.: ask <question>")
		return nil
	}

	t, err := set.Get(s.Nav.Current())
	if err != nil {
		return err
	}
	editor.RenderGrid(s.Out, t)

	f, err := s.Nav.Draft(set)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.Out, "➕ Agregar nuevo registro ('set <column>=<value>', 'save', or 'add')")
	for _, col := range f.Columns {
		fmt.Fprintf(s.Out, "  %s: %s\n", col, f.Get(col))
	}
	return nil
}

func (s *Session) printMenu() {
	for i, o := range s.Nav.Options() {
		marker := " "
		if o == s.Nav.Current() {
			marker = "*"
		}
		fmt.Fprintf(s.Out, " %s %d. %s\n", marker, i+1, o)
	}
}

func (s *Session) prompt() string {
	return fmt.Sprintf("olivar[%s]> ", s.Nav.Current())
}

func (s *Session) printHelp() {
	fmt.Fprintln(s.Out, "Navigation:")
	fmt.Fprintln(s.Out, "  menu                 — list views")
	fmt.Fprintln(s.Out, "  go <n|name>          — switch view (discards the unsaved form)")
	fmt.Fprintln(s.Out, "  show                 — redraw the current view")
	fmt.Fprintln(s.Out)
	fmt.Fprintln(s.Out, "Table views:")
	fmt.Fprintln(s.Out, "  set <column>=<value> — fill a form field")
	fmt.Fprintln(s.Out, "  clear                — empty the form")
	fmt.Fprintln(s.Out, "  save                 — append the form as a new record")
	fmt.Fprintln(s.Out, "  add                  — prompt for every field, then save")
	fmt.Fprintln(s.Out)
	fmt.Fprintln(s.Out, "Advisor view:")
	fmt.Fprintln(s.Out, "  key                  — enter the OpenAI API key (hidden, not stored)")
	fmt.Fprintln(s.Out, "  ask <question>       — ask about the farm data")
	fmt.Fprintln(s.Out)
	fmt.Fprintln(s.Out, "  history, help, exit")
}

func (s *Session) buildCompleter() []readline.PrefixCompleterInterface {
	var views []readline.PrefixCompleterInterface
	for _, o := range s.Nav.Options() {
		views = append(views, readline.PcItem(o))
	}
	items := []readline.PrefixCompleterInterface{readline.PcItem("go", views...)}
	for _, c := range []string{"menu", "show", "set", "clear", "save", "add", "key", "ask", "history", "help", "exit"} {
		items = append(items, readline.PcItem(c))
	}
	return items
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm %ds", m, s)
}

package shell

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/klytics/olivar/internal/advisor"
	"github.com/klytics/olivar/internal/ai"
	"github.com/klytics/olivar/internal/store"
)

type stubProvider struct {
	calls   int
	content string
	err     error
}

func (p *stubProvider) Infer(context.Context, string, []ai.Message, ai.InferOptions) (*ai.InferResult, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return &ai.InferResult{Content: p.content}, nil
}

func (p *stubProvider) Name() string { return "stub" }

func newTestSession(t *testing.T, p *stubProvider) (*Session, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true

	st := store.New(filepath.Join(t.TempDir(), "finca.xlsx"))
	adv := advisor.New(func(string) ai.Provider { return p }, "")
	s, err := NewSession(st, adv)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	var out bytes.Buffer
	s.Out = &out
	return s, &out
}

func eval(t *testing.T, s *Session, line string) {
	t.Helper()
	if _, err := s.Eval(context.Background(), line); err != nil {
		t.Fatalf("%q: %v", line, err)
	}
}

func TestNavigatorInitialStateAndOptions(t *testing.T) {
	n := NewNavigator(store.Defaults())

	if n.Current() != store.Finca {
		t.Errorf("initial view = %q", n.Current())
	}
	opts := n.Options()
	if len(opts) != 7 || opts[6] != AdvisorView {
		t.Errorf("options = %v", opts)
	}
}

func TestNavigatorSelect(t *testing.T) {
	n := NewNavigator(store.Defaults())

	tests := []struct {
		choice  string
		want    string
		wantErr bool
	}{
		{"costes", store.Costes, false},
		{"2", store.Labores, false},
		{"7", AdvisorView, false},
		{"asesor", AdvisorView, false},
		{"0", "", true},
		{"8", "", true},
		{"Maquinaria", "", true},
	}
	for _, tt := range tests {
		err := n.Select(tt.choice)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Select(%q) expected error", tt.choice)
			}
			continue
		}
		if err != nil {
			t.Errorf("Select(%q): %v", tt.choice, err)
			continue
		}
		if n.Current() != tt.want {
			t.Errorf("Select(%q) = %q, want %q", tt.choice, n.Current(), tt.want)
		}
	}
}

func TestNavigatorSwitchDiscardsDraft(t *testing.T) {
	set := store.Defaults()
	n := NewNavigator(set)

	f, err := n.Draft(set)
	if err != nil {
		t.Fatal(err)
	}
	_ = f.Set("Nombre", "Sin guardar")

	if err := n.Select(store.Labores); err != nil {
		t.Fatal(err)
	}
	f, _ = n.Draft(set)
	if f.Table != store.Labores || !f.Empty() {
		t.Errorf("expected fresh Labores form, got %+v", f)
	}

	_ = n.Select(store.Finca)
	f, _ = n.Draft(set)
	if f.Get("Nombre") != "" {
		t.Error("Finca draft should not survive a view switch")
	}

	_ = n.Select(AdvisorView)
	if f, _ := n.Draft(set); f != nil {
		t.Error("advisor view has no form")
	}
}

func TestNavigatorRefreshFallsBack(t *testing.T) {
	n := NewNavigator(store.Defaults())
	_ = n.Select(store.Rentabilidad)

	n.Refresh(&store.TableSet{Tables: []*store.Table{{Name: "Notas"}}})
	if n.Current() != "Notas" {
		t.Errorf("expected fallback to first table, got %q", n.Current())
	}

	n.Refresh(&store.TableSet{})
	if !n.IsAdvisor() {
		t.Errorf("expected advisor view with no tables, got %q", n.Current())
	}
}

func TestSessionSetSaveRendersNewRow(t *testing.T) {
	s, out := newTestSession(t, &stubProvider{})

	eval(t, s, "go Ingresos")
	eval(t, s, "set Concepto=Venta aceituna")
	eval(t, s, "set Importe (€)=5400")
	out.Reset()
	eval(t, s, "save")

	got := out.String()
	for _, want := range []string{"Registro guardado correctamente.", "Venta aceituna", "5400", "(1 rows)"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}

	set, err := s.Store.Load()
	if err != nil {
		t.Fatal(err)
	}
	ingresos, _ := set.Get(store.Ingresos)
	if len(ingresos.Rows) != 1 || ingresos.Value(0, "Concepto") != "Venta aceituna" {
		t.Errorf("rows = %q", ingresos.Rows)
	}

	f, _ := s.Nav.Draft(set)
	if !f.Empty() {
		t.Error("form should be empty after save")
	}
}

func TestSessionSwitchDiscardsUnsavedInput(t *testing.T) {
	s, out := newTestSession(t, &stubProvider{})

	eval(t, s, "set Nombre=Pendiente")
	out.Reset()
	eval(t, s, "go Costes")
	eval(t, s, "go Finca")

	if strings.Contains(out.String(), "Pendiente") {
		t.Errorf("unsaved value leaked after switching views:\n%s", out.String())
	}
	if s.Store.Exists() {
		t.Error("switching views must not write the workbook")
	}
}

func TestSessionAddInteractive(t *testing.T) {
	s, _ := newTestSession(t, &stubProvider{})
	answers := []string{"Cobre", "10", "", "2", "8", "kg"}
	s.ReadLine = func(string) (string, error) {
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}

	eval(t, s, "go Inventario")
	eval(t, s, "add")

	set, _ := s.Store.Load()
	inv, _ := set.Get(store.Inventario)
	if len(inv.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(inv.Rows))
	}
	want := store.Record{"Cobre", "10", "", "2", "8", "kg"}
	for i := range want {
		if inv.Rows[0][i] != want[i] {
			t.Errorf("row = %q, want %q", inv.Rows[0], want)
			break
		}
	}
}

func TestSessionAddCancelled(t *testing.T) {
	s, out := newTestSession(t, &stubProvider{})
	answers := []string{"P1", "."}
	s.ReadLine = func(string) (string, error) {
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}

	eval(t, s, "add")
	if !strings.Contains(out.String(), "Cancelled.") {
		t.Errorf("expected cancel notice:\n%s", out.String())
	}
	if s.Store.Exists() {
		t.Error("cancelled add must not save")
	}
}

func TestSessionAskRequiresKey(t *testing.T) {
	p := &stubProvider{content: "nunca"}
	s, out := newTestSession(t, p)

	eval(t, s, "go Asesor")
	out.Reset()
	eval(t, s, "ask ¿Cuánto hemos gastado?")

	if p.calls != 0 {
		t.Errorf("expected no API call, got %d", p.calls)
	}
	if !strings.Contains(out.String(), advisor.MissingKeyWarning) {
		t.Errorf("expected key warning:\n%s", out.String())
	}
	if strings.Contains(out.String(), "Respuesta") {
		t.Error("response area should stay empty")
	}
}

func TestSessionAskWithKey(t *testing.T) {
	p := &stubProvider{content: "Margen estimado: 1200€/ha"}
	s, out := newTestSession(t, p)
	s.ReadSecret = func(string) (string, error) { return "sk-test", nil }

	eval(t, s, "key")
	eval(t, s, "go 7")
	out.Reset()
	eval(t, s, "ask ¿Margen por hectárea?")

	if p.calls != 1 {
		t.Errorf("expected 1 API call, got %d", p.calls)
	}
	if !strings.Contains(out.String(), "\nMargen estimado: 1200€/ha\n") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestSessionAskUpstreamErrorKeepsSessionUsable(t *testing.T) {
	p := &stubProvider{err: errors.New("request failed: connection refused")}
	s, out := newTestSession(t, p)
	s.APIKey = "sk-test"

	eval(t, s, "go Asesor")
	out.Reset()
	eval(t, s, "ask ¿Stock de cobre?")
	if !strings.Contains(out.String(), "Error: request failed: connection refused") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	eval(t, s, "go Finca")
	if s.Nav.Current() != store.Finca {
		t.Error("session should remain usable after an upstream failure")
	}
}

func TestSessionAskOutsideAdvisorView(t *testing.T) {
	s, _ := newTestSession(t, &stubProvider{})
	if _, err := s.Eval(context.Background(), "ask hola"); err == nil {
		t.Error("expected error when asking from a table view")
	}
}

func TestSessionUnknownCommandAndExit(t *testing.T) {
	s, _ := newTestSession(t, &stubProvider{})

	if _, err := s.Eval(context.Background(), "borrar 1"); err == nil {
		t.Error("expected error for unknown command")
	}
	quit, err := s.Eval(context.Background(), "exit")
	if err != nil || !quit {
		t.Errorf("exit: quit=%v err=%v", quit, err)
	}
	if len(s.CommandHistory) != 2 {
		t.Errorf("history = %v", s.CommandHistory)
	}
}

func TestFormatDuration(t *testing.T) {
	if got := formatDuration(42 * time.Second); got != "42s" {
		t.Errorf("got %q", got)
	}
	if got := formatDuration(125 * time.Second); got != "2m 5s" {
		t.Errorf("got %q", got)
	}
}

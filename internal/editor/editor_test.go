package editor

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/klytics/olivar/internal/store"
)

func newTestEditor(t *testing.T) *Editor {
	t.Helper()
	return New(store.New(filepath.Join(t.TempDir(), "finca.xlsx")))
}

func TestFormSetAndReset(t *testing.T) {
	f := NewForm(&store.Table{Name: store.Ingresos, Columns: store.DefaultColumns(store.Ingresos)})

	if !f.Empty() {
		t.Error("new form should be empty")
	}
	if err := f.Set("Concepto", "Venta aceituna"); err != nil {
		t.Fatal(err)
	}
	if err := f.Set("Nope", "x"); err == nil {
		t.Error("expected error for unknown column")
	}
	if f.Get("Concepto") != "Venta aceituna" {
		t.Errorf("Concepto = %q", f.Get("Concepto"))
	}

	f.Reset()
	if !f.Empty() || f.Get("Concepto") != "" {
		t.Error("Reset should clear every field")
	}
}

func TestSubmitAppendsAndPersists(t *testing.T) {
	e := newTestEditor(t)

	set, err := e.Store.Load()
	if err != nil {
		t.Fatal(err)
	}
	tbl, _ := set.Get(store.Costes)

	f := NewForm(tbl)
	_ = f.Set("Fecha", "2024-03-01")
	_ = f.Set("Importe (€)", "450")

	saved, err := e.Submit(f)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if len(saved.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(saved.Rows))
	}
	if !f.Empty() {
		t.Error("form should be reset after a successful submit")
	}

	f2 := NewForm(saved)
	_ = f2.Set("Categoría", "Abonos")
	if _, err := e.Submit(f2); err != nil {
		t.Fatal(err)
	}

	reloaded, err := e.Store.Load()
	if err != nil {
		t.Fatal(err)
	}
	costes, _ := reloaded.Get(store.Costes)
	if len(costes.Rows) != 2 {
		t.Fatalf("expected 2 rows after reload, got %d", len(costes.Rows))
	}
	if costes.Value(0, "Importe (€)") != "450" || costes.Value(0, "Descripción") != "" {
		t.Errorf("first row = %q", costes.Rows[0])
	}
	if costes.Value(1, "Categoría") != "Abonos" {
		t.Errorf("second row = %q", costes.Rows[1])
	}
}

func TestSubmitUnknownTable(t *testing.T) {
	e := newTestEditor(t)
	f := &Form{Table: "Maquinaria", Values: map[string]string{}}

	if _, err := e.Submit(f); err == nil {
		t.Error("expected error for unknown table")
	}
	if e.Store.Exists() {
		t.Error("nothing should be written on failure")
	}
}

func TestSubmitSaveFailureKeepsForm(t *testing.T) {
	e := New(store.New(filepath.Join(t.TempDir(), "missing", "finca.xlsx")))
	tbl := &store.Table{Name: store.Finca, Columns: store.DefaultColumns(store.Finca)}
	f := NewForm(tbl)
	_ = f.Set("Nombre", "Olivar Alto")

	if _, err := e.Submit(f); err == nil {
		t.Fatal("expected save error")
	}
	if f.Get("Nombre") != "Olivar Alto" {
		t.Error("form values should survive a failed save")
	}
}

func TestRenderGrid(t *testing.T) {
	color.NoColor = true

	tbl := &store.Table{Name: store.Inventario, Columns: store.DefaultColumns(store.Inventario)}
	var buf bytes.Buffer
	RenderGrid(&buf, tbl)
	if !strings.Contains(buf.String(), "(empty)") {
		t.Errorf("expected empty marker, got %q", buf.String())
	}

	tbl.Append(map[string]string{"Producto": "Sulfato de cobre", "Unidad": "kg"})
	buf.Reset()
	RenderGrid(&buf, tbl)
	out := buf.String()
	for _, want := range []string{"Inventario", "Producto", "Sulfato de cobre", "kg", "(1 rows)"} {
		if !strings.Contains(out, want) {
			t.Errorf("grid missing %q:\n%s", want, out)
		}
	}
}

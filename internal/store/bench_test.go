package store

import (
	"fmt"
	"path/filepath"
	"testing"
)

// seasonSet builds a set with n work records, roughly one busy campaign.
func seasonSet(n int) *TableSet {
	set := Defaults()
	labores, _ := set.Get(Labores)
	for i := 0; i < n; i++ {
		labores.Append(map[string]string{
			"Fecha":     fmt.Sprintf("2024-%02d-%02d", i%12+1, i%28+1),
			"Parcela":   fmt.Sprintf("P%d", i%8),
			"Tipo":      "Poda",
			"Horas":     "6",
			"Costo (€)": "90",
		})
	}
	return set
}

func BenchmarkSave(b *testing.B) {
	s := New(filepath.Join(b.TempDir(), "finca.xlsx"))
	set := seasonSet(500)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := s.Save(set); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLoad(b *testing.B) {
	s := New(filepath.Join(b.TempDir(), "finca.xlsx"))
	if err := s.Save(seasonSet(500)); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Load(); err != nil {
			b.Fatal(err)
		}
	}
}

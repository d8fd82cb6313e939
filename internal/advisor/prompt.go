package advisor

import (
	"fmt"
	"strings"

	"github.com/gosuri/uitable"

	"github.com/klytics/olivar/internal/store"
)

// SystemInstruction is sent as the system message of every query.
const SystemInstruction = "Eres un experto en gestión contable y agronómica de fincas."

const promptTemplate = `
Eres un asesor agrícola que trabaja con los siguientes datos de una finca olivarera:
%s

Responde a esta pregunta de forma clara y profesional:
%s
`

// Summarize dumps every table, in set order, as a bracketed header followed
// by the table contents in aligned plain text. Nothing is truncated.
func Summarize(set *store.TableSet) string {
	var b strings.Builder
	for _, t := range set.Tables {
		b.WriteString("\n\n[")
		b.WriteString(t.Name)
		b.WriteString("]\n")
		b.WriteString(tableText(t))
	}
	return b.String()
}

// BuildPrompt embeds the data summary and the question in the advisor template.
func BuildPrompt(summary, question string) string {
	return fmt.Sprintf(promptTemplate, summary, question)
}

func tableText(t *store.Table) string {
	if len(t.Rows) == 0 {
		return fmt.Sprintf("Empty table\nColumns: [%s]", strings.Join(t.Columns, ", "))
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(row(t.Columns)...)
	for _, r := range t.Rows {
		tbl.AddRow(row(r)...)
	}
	return tbl.String()
}

func row(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// Package advisor answers free-text questions about the farm by sending every
// table, plus the question, to a chat-completion model.
package advisor

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/fatih/color"

	"github.com/klytics/olivar/internal/ai"
	"github.com/klytics/olivar/internal/logging"
	"github.com/klytics/olivar/internal/store"
)

// DefaultWarnChars is the prompt length above which a warning is logged.
const DefaultWarnChars = 100000

// User-facing warnings for a query that is not sent.
const (
	MissingKeyWarning      = "Introduce tu clave API de OpenAI."
	MissingQuestionWarning = "Escribe una pregunta sobre la finca, costes, rentabilidad, etc."
)

// Answer is the outcome of one query. At most one of Warning and Error is
// set; Text may be empty when the model replies with nothing.
type Answer struct {
	Text    string `json:"answer,omitempty"`
	Warning string `json:"warning,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Advisor builds the prompt and issues the request.
type Advisor struct {
	NewProvider ai.Factory
	Model       string
	WarnChars   int
	Logger      *log.Logger
	Warn        *log.Logger
}

// New returns an Advisor using factory to reach the model.
func New(factory ai.Factory, model string) *Advisor {
	if model == "" {
		model = ai.DefaultModel
	}
	return &Advisor{
		NewProvider: factory,
		Model:       model,
		WarnChars:   DefaultWarnChars,
		Logger:      logging.New("advisor"),
		Warn:        logging.Warn("advisor"),
	}
}

// Ask sends question together with a dump of set. A missing key or a blank
// question produces a warning without contacting the API. Any upstream
// failure is reported in Answer.Error as "Error: <cause>".
func (a *Advisor) Ask(ctx context.Context, apiKey, question string, set *store.TableSet) Answer {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return Answer{Warning: MissingKeyWarning}
	}
	if strings.TrimSpace(question) == "" {
		return Answer{Warning: MissingQuestionWarning}
	}

	prompt := BuildPrompt(Summarize(set), question)
	if a.WarnChars > 0 && len(prompt) > a.WarnChars {
		a.Warn.Printf("prompt is %d characters, the model may reject it", len(prompt))
	}

	provider := a.NewProvider(apiKey)
	a.Logger.Printf("sending %d characters to %s (%s)", len(prompt), provider.Name(), a.Model)

	res, err := provider.Infer(ctx, SystemInstruction, []ai.Message{
		{Role: "user", Content: prompt},
	}, ai.InferOptions{Model: a.Model})
	if err != nil {
		return Answer{Error: fmt.Sprintf("Error: %s", err)}
	}

	return Answer{Text: res.Content}
}

// Failed reports whether the query was not answered.
func (ans Answer) Failed() bool {
	return ans.Warning != "" || ans.Error != ""
}

// Render writes the answer the way the advisory view shows it: a yellow
// warning, a red error, or a success banner followed by the model text.
func (ans Answer) Render(w io.Writer) {
	switch {
	case ans.Warning != "":
		color.New(color.FgYellow).Fprintf(w, "⚠ %s\n", ans.Warning)
	case ans.Error != "":
		color.New(color.FgRed).Fprintln(w, ans.Error)
	default:
		color.New(color.FgGreen).Fprintln(w, "Respuesta de GPT:")
		fmt.Fprintln(w, ans.Text)
	}
}

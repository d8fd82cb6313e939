// Package app turns command-line flags and config into the store, editor
// and advisor a command works with.
package app

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/klytics/olivar/internal/advisor"
	"github.com/klytics/olivar/internal/ai"
	"github.com/klytics/olivar/internal/config"
	"github.com/klytics/olivar/internal/store"
)

// Options are the effective settings of one command run.
type Options struct {
	File      string
	Model     string
	Timeout   time.Duration
	WarnChars int
	BaseURL   string
	JSON      bool
}

// FromCommand merges persistent flags over the config loaded by the root
// command. A flag wins only when it was given on the command line.
func FromCommand(cmd *cobra.Command) Options {
	cfg := config.FromContext(cmd.Context())
	if cfg == nil {
		// Not run through the root command; decode whatever viper holds.
		if c, err := config.Current(); err == nil {
			cfg = c
		} else {
			cfg = &config.Config{}
		}
	}
	o := Options{
		File:      cfg.File,
		Model:     cfg.Model,
		Timeout:   cfg.Timeout(),
		WarnChars: cfg.AI.WarnChars,
		BaseURL:   cfg.AI.BaseURL,
	}

	flags := cmd.Flags()
	if f := flags.Lookup("file"); f != nil && (f.Changed || o.File == "") {
		o.File = f.Value.String()
	}
	if f := flags.Lookup("model"); f != nil && (f.Changed || o.Model == "") {
		o.Model = f.Value.String()
	}
	o.JSON, _ = flags.GetBool("json")

	return o
}

// Store returns the workbook store.
func (o Options) Store() *store.Store {
	return store.New(o.File)
}

// Advisor returns an advisor wired to the OpenAI API.
func (o Options) Advisor() *advisor.Advisor {
	a := advisor.New(ai.OpenAIFactory(o.Model, o.Timeout, o.BaseURL), o.Model)
	if o.WarnChars > 0 {
		a.WarnChars = o.WarnChars
	}
	return a
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/printerm/printerm/internal/version"
	"github.com/printerm/printerm/pkg/config"
	"github.com/printerm/printerm/pkg/errors"
	"github.com/printerm/printerm/pkg/history"
	"github.com/printerm/printerm/pkg/logging"
	"github.com/printerm/printerm/pkg/preview"
	"github.com/printerm/printerm/pkg/printer"
	"github.com/printerm/printerm/pkg/render"
	"github.com/printerm/printerm/pkg/style"
	"github.com/printerm/printerm/pkg/templates"
	"github.com/printerm/printerm/pkg/ui"
	"github.com/printerm/printerm/pkg/updates"
)

func newPrintCmd(a *app) *cobra.Command {
	var (
		vars        []string
		previewOnly bool
	)

	cmd := &cobra.Command{
		Use:   "print <template>",
		Short: MsgPrintShort,
		Long: `Print renders the named template and sends it to the configured
printer. Variables are passed with --var; anything still missing is
asked for interactively when running in a terminal.`,
		Example: `  # Prompt for the ticket fields, then print
  printerm print ticket

  # Non-interactive
  printerm print ticket --var title="Fix login" --var ticket_number=GH-42

  # Render on screen without spending paper
  printerm print ticket --preview`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeTemplateNames(a),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.renderTemplate(cmd.Context(), args[0], vars)
			if err != nil {
				return err
			}

			if previewOnly {
				return a.showPreview(doc)
			}

			p, err := printer.New(doc.cfg)
			if err != nil {
				return err
			}

			printErr := p.Print(cmd.Context(), doc.runs)
			a.recordJob(cmd.Context(), doc, printErr)
			if printErr != nil {
				return printErr
			}

			a.printed(doc)
			a.updateNotice(cmd.Context(), doc.cfg)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&vars, "var", nil, FlagVarDesc)
	cmd.Flags().BoolVar(&previewOnly, "preview", false, FlagPreviewDesc)
	return cmd
}

func newPreviewCmd(a *app) *cobra.Command {
	var vars []string

	cmd := &cobra.Command{
		Use:   "preview <template>",
		Short: MsgPreviewShort,
		Long: `Preview renders the named template exactly as the printer would lay it
out and shows the result on screen instead of printing.`,
		Example: `  # Preview the shopping list
  printerm preview shopping_list

  # Plain text, suitable for piping
  printerm preview ticket --var title=Demo -o text`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeTemplateNames(a),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.renderTemplate(cmd.Context(), args[0], vars)
			if err != nil {
				return err
			}
			return a.showPreview(doc)
		},
	}

	cmd.Flags().StringArrayVar(&vars, "var", nil, FlagVarDesc)
	return cmd
}

// rendered bundles what the commands need once the pipeline has run.
type rendered struct {
	tmpl *templates.Template
	cfg  *config.Config
	runs []render.Run
}

// renderTemplate runs the full pipeline for one command invocation:
// load the template, collect variable values from flags and prompts,
// and compose the run sequence.
func (a *app) renderTemplate(ctx context.Context, name string, vars []string) (*rendered, error) {
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}
	store, err := a.store()
	if err != nil {
		return nil, err
	}
	tmpl, err := store.Load(name)
	if err != nil {
		return nil, err
	}

	values, err := parseVars(vars)
	if err != nil {
		return nil, err
	}
	values, err = a.promptMissing(tmpl, values)
	if err != nil {
		return nil, err
	}

	runs, err := a.renderer(cfg).Render(ctx, tmpl, values)
	if err != nil {
		return nil, err
	}
	return &rendered{tmpl: tmpl, cfg: cfg, runs: runs}, nil
}

// parseVars splits repeated --var name=value flags into a binding map.
func parseVars(pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, errors.Newf(errors.ErrInvalidInput,
				"Invalid --var '%s', expected name=value", pair)
		}
		values[name] = value
	}
	return values, nil
}

// promptMissing asks for declared variables the flags did not cover.
// Prompting is skipped outside a terminal and for script templates,
// which resolve their context without user input. Empty answers are
// dropped so validation can still name missing required fields.
func (a *app) promptMissing(tmpl *templates.Template, values map[string]string) (map[string]string, error) {
	if tmpl.HasScript() || a.output == ui.FormatJSON || !isatty.IsTerminal(os.Stdin.Fd()) {
		return values, nil
	}

	for _, v := range tmpl.Variables {
		if _, ok := values[v.Name]; ok {
			continue
		}
		input := pterm.DefaultInteractiveTextInput
		if v.Markdown {
			input = *input.WithMultiLine()
		}
		answer, err := input.Show(v.Label())
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInvalidInput, "Prompt aborted")
		}
		if answer != "" {
			values[v.Name] = answer
		}
	}
	return values, nil
}

type previewOutput struct {
	Template string `json:"template"`
	Preview  string `json:"preview"`
}

func (a *app) showPreview(doc *rendered) error {
	text, err := preview.Text(doc.runs, doc.cfg.CharsPerLine())
	if err != nil {
		return err
	}

	switch a.output {
	case ui.FormatJSON:
		return printJSON(previewOutput{Template: doc.tmpl.Name, Preview: text})
	case ui.FormatTerminal:
		fmt.Println(style.Paper(strings.TrimRight(text, "\n"), doc.cfg.CharsPerLine()))
	default:
		fmt.Println(strings.TrimRight(text, "\n"))
	}
	return nil
}

type printOutput struct {
	Success  bool   `json:"success"`
	Template string `json:"template"`
	Chars    int    `json:"chars"`
	Target   string `json:"target"`
}

func (a *app) printed(doc *rendered) {
	chars := render.CharCount(doc.runs)
	target := doc.cfg.Printer.IPAddress

	switch a.output {
	case ui.FormatJSON:
		_ = printJSON(printOutput{Success: true, Template: doc.tmpl.Name, Chars: chars, Target: target})
	case ui.FormatTerminal:
		fmt.Printf("%s "+MsgPrinted, style.SuccessIndicator, doc.tmpl.Name, chars, target)
	default:
		fmt.Printf(MsgPrinted, doc.tmpl.Name, chars, target)
	}
}

// recordJob writes one history row per print attempt. History being
// unavailable never fails the command.
func (a *app) recordJob(ctx context.Context, doc *rendered, printErr error) {
	store, err := a.openHistory(doc.cfg)
	if err != nil {
		logging.GetLogger("cli").Warn().Err(err).Msg("History unavailable")
		return
	}
	if store == nil {
		return
	}
	defer func() { _ = store.Close() }()

	job := &history.Job{
		Template: doc.tmpl.Name,
		Target:   doc.cfg.Printer.IPAddress,
		Status:   history.StatusPrinted,
		Chars:    render.CharCount(doc.runs),
	}
	if printErr != nil {
		job.Status = history.StatusFailed
		job.Error = printErr.Error()
	}
	if err := store.Record(ctx, job); err != nil {
		logging.GetLogger("cli").Warn().Err(err).Msg("Failed to record print job")
	}
}

// updateNotice prints a one-line hint after a successful print when a
// newer release exists. Check failures stay silent.
func (a *app) updateNotice(ctx context.Context, cfg *config.Config) {
	if !cfg.Updates.CheckForUpdates || a.output == ui.FormatJSON {
		return
	}

	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	result, err := updates.NewChecker("").Check(checkCtx, version.Version)
	if err != nil || !result.Available {
		return
	}
	fmt.Fprintf(os.Stderr, MsgUpdateHint, result.Latest)
}

func printJSON(payload any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/printerm/printerm/pkg/render"
	"github.com/printerm/printerm/pkg/style"
	"github.com/printerm/printerm/pkg/templates"
	"github.com/printerm/printerm/pkg/ui"
)

func newTemplatesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: MsgTemplatesShort,
		Long: `Templates groups the commands that inspect the template library:
built-in templates plus any YAML files in the user template directory,
which shadow built-ins of the same name.`,
	}

	cmd.AddCommand(newTemplatesListCmd(a))
	cmd.AddCommand(newTemplatesShowCmd(a))
	cmd.AddCommand(newTemplatesValidateCmd(a))
	return cmd
}

func newTemplatesListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   MsgListShort,
		Example: `  printerm templates list`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.store()
			if err != nil {
				return err
			}
			summaries, err := store.List()
			if err != nil {
				return err
			}

			switch a.output {
			case ui.FormatJSON:
				return printJSON(summaries)
			case ui.FormatText:
				for _, s := range summaries {
					fmt.Println(s.Name)
				}
			default:
				if len(summaries) == 0 {
					fmt.Println(MsgNoTemplates)
					return nil
				}
				fmt.Println(MsgAvailable)
				width := 0
				for _, s := range summaries {
					if len(s.Name) > width {
						width = len(s.Name)
					}
				}
				for _, s := range summaries {
					fmt.Printf("  %-*s  %s\n", width, s.Name, style.MutedStyle.Render(s.Description))
				}
			}
			return nil
		},
	}
}

type templateDetail struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Source      string           `json:"source"`
	HasScript   bool             `json:"has_script"`
	Variables   []variableDetail `json:"variables"`
	Segments    int              `json:"segments"`
}

type variableDetail struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required"`
	Markdown    bool   `json:"markdown"`
}

func newTemplatesShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:               "show <template>",
		Short:             MsgShowShort,
		Example:           `  printerm templates show ticket`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeTemplateNames(a),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.store()
			if err != nil {
				return err
			}
			tmpl, err := store.Load(args[0])
			if err != nil {
				return err
			}

			if a.output == ui.FormatJSON {
				return printJSON(detailFrom(tmpl))
			}
			printTemplateDetail(tmpl, a.output == ui.FormatTerminal)
			return nil
		},
	}
}

func newTemplatesValidateCmd(a *app) *cobra.Command {
	var vars []string

	cmd := &cobra.Command{
		Use:   "validate <template>",
		Short: MsgValidateShort,
		Long: `Validate checks the given --var values against the template's declared
variables without rendering or printing anything. It exits non-zero
when a required value is missing.`,
		Example:           `  printerm templates validate ticket --var title=Demo`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeTemplateNames(a),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.store()
			if err != nil {
				return err
			}
			tmpl, err := store.Load(args[0])
			if err != nil {
				return err
			}
			values, err := parseVars(vars)
			if err != nil {
				return err
			}
			if err := render.Validate(tmpl, values); err != nil {
				return err
			}

			switch a.output {
			case ui.FormatJSON:
				return printJSON(map[string]bool{"valid": true})
			case ui.FormatTerminal:
				fmt.Println(style.SuccessIndicator + " " + MsgValidationOK)
			default:
				fmt.Println(MsgValidationOK)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&vars, "var", nil, FlagVarDesc)
	return cmd
}

func detailFrom(tmpl *templates.Template) templateDetail {
	detail := templateDetail{
		Name:        tmpl.Name,
		Description: tmpl.Description,
		Source:      tmpl.Source,
		HasScript:   tmpl.HasScript(),
		Variables:   []variableDetail{},
		Segments:    len(tmpl.Segments),
	}
	for _, v := range tmpl.Variables {
		detail.Variables = append(detail.Variables, variableDetail{
			Name:        v.Name,
			Description: v.Description,
			Required:    v.Required,
			Markdown:    v.Markdown,
		})
	}
	return detail
}

func printTemplateDetail(tmpl *templates.Template, styled bool) {
	heading := tmpl.Name
	if tmpl.Description != "" {
		heading += "  " + tmpl.Description
	}
	if styled {
		heading = style.Bold(tmpl.Name)
		if tmpl.Description != "" {
			heading += "  " + style.MutedStyle.Render(tmpl.Description)
		}
	}
	fmt.Println(heading)
	fmt.Printf("Source: %s\n", tmpl.Source)
	if tmpl.HasScript() {
		fmt.Printf("Script: %s\n", tmpl.Script)
	}

	if len(tmpl.Variables) > 0 {
		fmt.Println("Variables:")
		width := 0
		for _, v := range tmpl.Variables {
			if len(v.Name) > width {
				width = len(v.Name)
			}
		}
		for _, v := range tmpl.Variables {
			fmt.Printf("  %-*s  %s\n", width, v.Name, variableAttrs(v))
		}
	}
	fmt.Printf("Segments: %d\n", len(tmpl.Segments))
}

func variableAttrs(v templates.Variable) string {
	attrs := []string{"optional"}
	if v.Required {
		attrs[0] = "required"
	}
	if v.Markdown {
		attrs = append(attrs, "markdown")
	}
	detail := "(" + strings.Join(attrs, ", ") + ")"
	if v.Description != "" {
		detail = v.Description + " " + detail
	}
	return detail
}

package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-ux4g/internal/prompt"
	"github.com/goliatone/go-ux4g/pkg/generator"
	"github.com/goliatone/go-ux4g/pkg/intent"
	"github.com/goliatone/go-ux4g/pkg/orchestrator"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		interactive bool
		asJSON      bool
	)
	cmd := &cobra.Command{
		Use:   "generate [description...]",
		Short: "Generate UX4G markup from a description",
		Example: `  ux4g generate "large danger button"
  ux4g generate -s jsx "login form inside a card"
  ux4g generate --interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				result generator.Result
				err    error
			)
			if interactive {
				result, err = a.generateInteractive(cmd)
			} else {
				description := strings.TrimSpace(strings.Join(args, " "))
				if description == "" {
					return errors.New("generate: a description is required (or use --interactive)")
				}
				result, err = a.orch.Generate(cmd.Context(), orchestrator.GenerateRequest{
					Description: description,
					Syntax:      a.syntax,
				})
			}
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), result)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, result.Code)
			for _, dep := range result.Dependencies {
				fmt.Fprintln(cmd.ErrOrStderr(), pterm.Info.Sprint("requires "+dep))
			}
			for _, note := range result.Notes {
				fmt.Fprintln(cmd.ErrOrStderr(), pterm.Info.Sprint(note))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "describe or pick the component through prompts")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func (a *app) generateInteractive(cmd *cobra.Command) (generator.Result, error) {
	wizard := prompt.NewWizard(prompt.NewSurveyDriver(), a.orch.Registry())
	plan, err := wizard.Run(cmd.Context(), a.syntax)
	if err != nil {
		return generator.Result{}, err
	}
	if plan.Intent != nil {
		return a.orch.Render(cmd.Context(), []intent.Intent{*plan.Intent}, plan.Syntax)
	}
	return a.orch.Generate(cmd.Context(), orchestrator.GenerateRequest{
		Description: plan.Description,
		Syntax:      plan.Syntax,
	})
}

func newValidateCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "validate [file|-]",
		Short: "Check a snippet against the UX4G rules",
		Long: `Check a snippet against the UX4G rules. The snippet is read from the file
argument, or from stdin when the argument is "-" or missing. The syntax is
detected unless --syntax is given.

Exits with status 1 when any error-severity issue is found.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := readCode(cmd, args)
			if err != nil {
				return err
			}
			syntax, err := explicitSyntax(cmd)
			if err != nil {
				return err
			}
			result, err := a.orch.Validate(cmd.Context(), orchestrator.ValidateRequest{Code: code, Syntax: syntax})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				if err := printJSON(out, result); err != nil {
					return err
				}
			} else {
				if len(result.Issues) > 0 {
					rows := [][]string{{"Severity", "Code", "Path", "Message"}}
					for _, issue := range result.Issues {
						rows = append(rows, []string{string(issue.Severity), string(issue.Code), issue.Path, issue.Message})
					}
					if err := renderTable(out, rows); err != nil {
						return err
					}
				}
				if result.Valid {
					fmt.Fprintln(out, pterm.Success.Sprintf("valid %s (%d issues)", result.Syntax, len(result.Issues)))
				} else {
					fmt.Fprintln(out, pterm.Error.Sprintf("invalid %s (%d issues)", result.Syntax, len(result.Issues)))
				}
			}
			if !result.Valid {
				return &ExitError{Code: 1}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newRefineCmd(a *app) *cobra.Command {
	var (
		request  string
		showDiff bool
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "refine [file|-] --request <change>",
		Short: "Apply one change to a snippet",
		Example: `  ux4g generate "primary button" | ux4g refine -r "make it danger"
  ux4g refine page.html -r "convert to react" --diff`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := readCode(cmd, args)
			if err != nil {
				return err
			}
			syntax, err := explicitSyntax(cmd)
			if err != nil {
				return err
			}
			result, err := a.orch.Refine(cmd.Context(), orchestrator.RefineRequest{
				Code:    code,
				Request: request,
				Syntax:  syntax,
			})
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), result)
			}
			if showDiff {
				fmt.Fprintln(cmd.OutOrStdout(), result.Diff)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), result.Code)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), pterm.Info.Sprint(result.Summary))
			return nil
		},
	}
	cmd.Flags().StringVarP(&request, "request", "r", "", "the change to apply, for example \"make it outline danger\"")
	cmd.Flags().BoolVar(&showDiff, "diff", false, "print the line diff instead of the refined snippet")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	_ = cmd.MarkFlagRequired("request")
	return cmd
}

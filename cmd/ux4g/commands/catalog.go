package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-ux4g/pkg/catalog"
)

func newListCmd(a *app) *cobra.Command {
	var (
		filter     catalog.Filter
		requiresJS bool
		asJSON     bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog components",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("requires-js") {
				filter.RequiresJS = &requiresJS
			}
			defs, err := a.orch.ListComponents(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), defs)
			}
			if len(defs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), pterm.Warning.Sprint("no components match"))
				return nil
			}
			rows := [][]string{{"ID", "Name", "Category", "Kind", "JS", "Variants"}}
			for _, def := range defs {
				rows = append(rows, []string{
					def.ID,
					def.Name,
					def.Category,
					def.Kind(),
					strconv.FormatBool(def.RequiresJS),
					strconv.Itoa(len(def.Variants)),
				})
			}
			return renderTable(cmd.OutOrStdout(), rows)
		},
	}
	cmd.Flags().StringVar(&filter.Category, "category", "", "only this category")
	cmd.Flags().StringVar(&filter.Tag, "tag", "", "only components with this tag")
	cmd.Flags().StringVar(&filter.Kind, "kind", "", "component or layout")
	cmd.Flags().BoolVar(&requiresJS, "requires-js", false, "only components that do (or with =false, do not) need JavaScript")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newGetCmd(a *app) *cobra.Command {
	var (
		variant string
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a component and its snippet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			usage, err := a.orch.UseComponent(cmd.Context(), args[0], variant, a.syntax)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), usage)
			}
			out := cmd.OutOrStdout()
			def := usage.Component
			fmt.Fprintln(out, pterm.Bold.Sprint(def.Name)+" ("+def.ID+")")
			if def.Description != "" {
				fmt.Fprintln(out, def.Description)
			}
			if names := def.VariantNames(); len(names) > 0 {
				fmt.Fprintln(out, "variants: "+strings.Join(names, ", "))
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, usage.Code)
			for _, dep := range usage.Dependencies {
				fmt.Fprintln(out, pterm.Info.Sprint("requires "+dep))
			}
			for _, note := range usage.Notes {
				fmt.Fprintln(out, pterm.Info.Sprint(note))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&variant, "variant", "", "variant to render (default: the component's default)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newTokensCmd(a *app) *cobra.Command {
	var (
		tokenType string
		variant   string
		asJSON    bool
	)
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "List design tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, err := a.orch.Tokens(cmd.Context(), tokenType, variant)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), set)
			}
			rows := [][]string{{"Name", "Type", "Value", "CSS variable"}}
			for _, token := range set.Tokens {
				name := token.CSSVariable
				if name == "" {
					name = "--" + token.Name
				}
				rows = append(rows, []string{token.Name, token.Type, token.Value, name})
			}
			return renderTable(cmd.OutOrStdout(), rows)
		},
	}
	cmd.Flags().StringVar(&tokenType, "type", "", "color, spacing, typography, radius or breakpoint")
	cmd.Flags().StringVar(&variant, "variant", "", "theme variant, for example dark")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newPracticesCmd(a *app) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "practices [query...]",
		Short: "Show UX4G handbook guidance",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.orch.Practices(cmd.Context(), strings.Join(args, " "), limit)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), result)
			}
			out := cmd.OutOrStdout()
			for _, practice := range result.Practices {
				fmt.Fprintln(out, pterm.Bold.Sprint(practice.Title)+" ["+practice.Topic+"]")
				fmt.Fprintln(out, "  "+practice.Guidance)
			}
			fmt.Fprintln(out, pterm.Gray("source: "+result.Source.Title+" "+result.Source.URL))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 5, "maximum number of practices")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newVersionCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show the binary and catalog versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info, err := a.orch.Version(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), struct {
					Binary  string `json:"binary"`
					Catalog any    `json:"catalog"`
				}{version, info})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ux4g %s\n", version)
			fmt.Fprintf(out, "%s %s (%d components)\n", info.Title, info.Version, info.Components)
			for _, name := range []string{"ux4g.min.css", "ux4g-grid.css", "ux4g.bundle.min.js"} {
				if url, ok := info.Assets[name]; ok {
					fmt.Fprintln(out, "  "+url)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

// Package commands implements the ux4g command line.
package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-ux4g/internal/config"
	"github.com/goliatone/go-ux4g/internal/logging"
	ux4gerrors "github.com/goliatone/go-ux4g/pkg/errors"
	"github.com/goliatone/go-ux4g/pkg/markup"
	"github.com/goliatone/go-ux4g/pkg/orchestrator"
)

var version = "dev"

// SetVersion records the binary version reported by "ux4g version" and the
// MCP handshake.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// ExitError ends the process with Code without printing an error. validate
// returns it for invalid markup.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// app carries state shared by the subcommands once the root pre-run has
// loaded the configuration.
type app struct {
	cfgFile string
	viper   *viper.Viper
	cfg     config.Config
	syntax  markup.Syntax
	orch    *orchestrator.Orchestrator
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{viper: viper.New()}

	root := &cobra.Command{
		Use:   "ux4g",
		Short: "Generate, validate and refine UX4G design system markup",
		Long: `ux4g works with the UX4G design system component catalog.

It serves the catalog operations as MCP tools over stdio and exposes the same
operations on the command line.

Examples:
  ux4g serve                                   # MCP server on stdio
  ux4g generate "primary button labeled Submit"
  ux4g validate snippet.html                   # exit status 1 when invalid
  ux4g refine snippet.html -r "make it outline danger"
  ux4g list --category forms`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (default: ./.ux4g.yaml or ~/.config/ux4g/config.yaml)")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.Bool("log-json", false, "emit JSON logs on stderr")
	flags.StringP("syntax", "s", "", "output syntax: html or jsx")
	_ = a.viper.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = a.viper.BindPFlag("log.json", flags.Lookup("log-json"))
	_ = a.viper.BindPFlag("syntax", flags.Lookup("syntax"))

	root.AddCommand(
		newServeCmd(a),
		newListCmd(a),
		newGetCmd(a),
		newGenerateCmd(a),
		newValidateCmd(a),
		newRefineCmd(a),
		newTokensCmd(a),
		newPracticesCmd(a),
		newVersionCmd(a),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.viper, a.cfgFile)
	if err != nil {
		return err
	}
	if err := logging.Initialize(logging.Options{JSON: cfg.Log.JSON, Level: cfg.Log.Level}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	syntax, err := cfg.OutputSyntax()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.syntax = syntax
	a.orch = orchestrator.New(
		orchestrator.WithLogger(logging.Named("ux4g")),
		orchestrator.WithDefaultSyntax(syntax),
		orchestrator.WithThemeVariant(cfg.Theme.Variant),
	)
	return nil
}

// Execute runs the command line and returns the process exit status.
func Execute(ctx context.Context) int {
	defer logging.Sync()
	root := NewRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		var exit *ExitError
		if errors.As(err, &exit) {
			return exit.Code
		}
		fmt.Fprintln(root.ErrOrStderr(), pterm.Error.Sprint(err.Error()))
		for _, hint := range ux4gerrors.GetAllHints(err) {
			fmt.Fprintln(root.ErrOrStderr(), pterm.Info.Sprint(hint))
		}
		return 1
	}
	return 0
}

// readCode reads markup from the file named by args[0], or stdin when args
// is empty or "-".
func readCode(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// explicitSyntax returns the --syntax flag only when the user set it, so
// validate can detect and refine can keep the input syntax.
func explicitSyntax(cmd *cobra.Command) (markup.Syntax, error) {
	flag := cmd.Flag("syntax")
	if flag == nil || !flag.Changed || strings.TrimSpace(flag.Value.String()) == "" {
		return "", nil
	}
	return markup.ParseSyntax(flag.Value.String())
}

func printJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func renderTable(w io.Writer, rows [][]string) error {
	out, err := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData(rows)).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

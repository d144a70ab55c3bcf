package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mkit"
	"github.com/dmitrymomot/mkit/pkg/logger"
	"github.com/dmitrymomot/mkit/pkg/validator"
)

type validateFlags struct {
	rulesFile    string
	dataFile     string
	messagesFile string
	lang         string
	envFile      string
	format       string
	logLevel     string
}

func newValidateCmd() *cobra.Command {
	flags := &validateFlags{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a data record against a rules file",
		Long: `Validate a JSON or YAML record against per-field rules.

The rules file maps field names to rule strings or rule lists:

  name: required|min:3
  email: [required, email]

Fields are checked in file order. The command exits with status 1 when
any rule fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.rulesFile, "rules", "", "Rules file, YAML or JSON (required)")
	cmd.Flags().StringVar(&flags.dataFile, "data", "", "Data file, JSON or YAML; - reads JSON from stdin (required)")
	cmd.Flags().StringVar(&flags.messagesFile, "messages", "", "Message catalog file (defaults to MKIT_MESSAGES_FILE)")
	cmd.Flags().StringVar(&flags.lang, "lang", "", "Catalog language (defaults to MKIT_LANGUAGE)")
	cmd.Flags().StringVar(&flags.envFile, "env-file", "", "Read MKIT_* settings from this .env file")
	cmd.Flags().StringVar(&flags.format, "format", "text", "Output format: text, json")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "error", "Log level written to stderr")

	return cmd
}

type checkResult struct {
	Valid  bool                         `json:"valid"`
	Errors []validator.ValidationError `json:"errors,omitempty"`
}

func runValidate(ctx context.Context, cmd *cobra.Command, flags *validateFlags) error {
	if flags.rulesFile == "" {
		return fmt.Errorf("required flag --rules not set")
	}
	if flags.dataFile == "" {
		return fmt.Errorf("required flag --data not set")
	}
	format := strings.ToLower(strings.TrimSpace(flags.format))
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid format %q (expected text, json)", flags.format)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var envFiles []string
	if flags.envFile != "" {
		envFiles = append(envFiles, flags.envFile)
	}
	cfg, err := mkit.LoadConfig(envFiles...)
	if err != nil {
		return err
	}
	if flags.messagesFile != "" {
		cfg.MessagesFile = flags.messagesFile
	}
	if flags.lang != "" {
		cfg.Language = flags.lang
	}

	log := logger.New(
		logger.WithTextFormatter(),
		logger.WithLevelName(flags.logLevel),
		logger.WithOutput(cmd.ErrOrStderr()),
	)

	app, err := mkit.New(ctx, cfg, mkit.WithLogger(log))
	if err != nil {
		return err
	}
	defer app.Close()

	rules, err := readRules(flags.rulesFile)
	if err != nil {
		return err
	}

	var stdin []byte
	if flags.dataFile == "-" {
		if stdin, err = io.ReadAll(cmd.InOrStdin()); err != nil {
			return fmt.Errorf("read data: %w", err)
		}
	}
	data, err := readData(flags.dataFile, stdin)
	if err != nil {
		return err
	}

	v := app.Validator(nil, nil)
	for _, fr := range rules {
		v.SetRuleListFor(fr.Field, fr.Rules)
	}

	result := checkResult{Valid: v.Check(data, nil), Errors: v.Errors()}
	app.Container().Call(mkit.EventValidatorChecked, v, result.Valid)

	if err := printResult(cmd.OutOrStdout(), format, result); err != nil {
		return err
	}
	if !result.Valid {
		return v.Err()
	}
	return nil
}

func printResult(w io.Writer, format string, result checkResult) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	if result.Valid {
		_, err := fmt.Fprintln(w, "OK")
		return err
	}
	for _, e := range result.Errors {
		field := e.Field
		if field == "" {
			field = e.Rule
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", field, e.Message); err != nil {
			return err
		}
	}
	return nil
}

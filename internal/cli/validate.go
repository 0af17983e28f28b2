package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/uccalint/pkg/errors"
	"github.com/matzehuels/uccalint/pkg/pipeline"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var (
		linkage, multigraph bool
		maxDiags            int
		asJSON, plain       bool
		noCache, refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "validate [passage.json...]",
		Short: "Check passages and report structural violations",
		Long: `Check one or more passage files and report every structural violation.

Each file is a JSON passage: nodes, edges and optional heads.
Files are validated concurrently; reports are printed in argument order.
The command exits with status 1 when any passage has diagnostics.

Reports are cached by passage content and options.`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completePassageFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.validationOptions(cmd, linkage, multigraph, maxDiags)
			opts.Refresh = refresh
			if err := opts.Validate(); err != nil {
				return err
			}
			mode := outputTable
			switch {
			case asJSON:
				mode = outputJSON
			case plain:
				mode = outputPlain
			}
			return c.runValidate(cmd.Context(), args, opts, mode, noCache)
		},
	}

	addValidationFlags(cmd, &linkage, &multigraph, &maxDiags)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print reports as JSON")
	cmd.Flags().BoolVar(&plain, "plain", false, "print tab-separated node, rule and message lines")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached reports")
	cmd.MarkFlagsMutuallyExclusive("json", "plain")

	return cmd
}

type outputMode int

const (
	outputTable outputMode = iota
	outputPlain
	outputJSON
)

// runValidate validates every file and prints the reports.
func (c *CLI) runValidate(ctx context.Context, paths []string, opts pipeline.Options, mode outputMode, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinner(fmt.Sprintf("Validating %d passages...", len(paths)))
	if mode == outputTable && len(paths) > 1 {
		spinner.Start(ctx)
	}
	results := runner.ValidateFiles(ctx, paths, opts)
	spinner.Stop()

	invalid, failed := 0, 0
	reports := []*pipeline.Report{}
	for _, res := range results {
		if res.Err != nil {
			failed++
			if mode != outputJSON {
				printError("%s: %s", res.Path, errors.UserMessage(res.Err))
			}
			continue
		}
		rep := res.Report
		reports = append(reports, rep)
		if !rep.Valid {
			invalid++
		}

		switch mode {
		case outputJSON:
		case outputPlain:
			fmt.Fprint(c.Out, plainDiagnostics(rep.Diagnostics))
		default:
			c.printReport(res.Path, rep)
		}
	}

	if mode == outputJSON {
		enc := json.NewEncoder(c.Out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return err
		}
	}
	prog.done(fmt.Sprintf("Validated %d passages", len(paths)-failed))

	if mode == outputTable && invalid == 1 && len(paths) == 1 {
		printNextStep("Inspect interactively", fmt.Sprintf("%s browse %s", appName, paths[0]))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be validated", failed, len(paths))
	}
	if invalid > 0 {
		return ErrInvalid
	}
	return nil
}

func (c *CLI) printReport(path string, rep *pipeline.Report) {
	if rep.Valid {
		printSuccess("%s", path)
	} else {
		printError("%s", path)
	}
	fmt.Fprintln(c.Out, "  "+reportStats(rep))
	if len(rep.Diagnostics) > 0 {
		fmt.Fprintln(c.Out, diagnosticTable(rep.Diagnostics))
	}
}

package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	uccaio "github.com/matzehuels/uccalint/pkg/io"
	"github.com/matzehuels/uccalint/pkg/pipeline"
)

// browseCommand creates the interactive diagnostics browser.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		linkage, multigraph bool
		maxDiags            int
	)

	cmd := &cobra.Command{
		Use:               "browse [passage.json]",
		Short:             "Step through a passage's diagnostics interactively",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completePassageFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.validationOptions(cmd, linkage, multigraph, maxDiags)
			if err := opts.Validate(); err != nil {
				return err
			}
			return c.runBrowse(cmd.Context(), args[0], opts)
		},
	}
	addValidationFlags(cmd, &linkage, &multigraph, &maxDiags)
	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, input string, opts pipeline.Options) error {
	p, err := uccaio.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load passage %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	rep, err := runner.Validate(ctx, p, opts)
	if err != nil {
		return err
	}
	if rep.Valid {
		printSuccess("%s has no diagnostics", input)
		return nil
	}

	_, err = tea.NewProgram(NewDiagnosticsModel(p, rep.Diagnostics), tea.WithContext(ctx)).Run()
	return err
}

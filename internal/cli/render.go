package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/uccalint/pkg/errors"
	uccaio "github.com/matzehuels/uccalint/pkg/io"
	"github.com/matzehuels/uccalint/pkg/pipeline"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output, format      string
		linkage, multigraph bool
		maxDiags            int
		noCache             bool
	)
	opts := pipeline.RenderOptions{Highlight: true}

	cmd := &cobra.Command{
		Use:   "render [passage.json]",
		Short: "Draw a passage as a node-link diagram",
		Long: `Draw a passage as a node-link diagram.

Units are drawn as points (or labelled circles with --node-ids), terminals
along the bottom in sentence order, and edges labelled with their tags.
Remote edges are dashed and linkage units gray. Nodes named by diagnostics
are drawn in red unless --highlight=false.

The format follows the output extension (.dot, .svg, .pdf, .png) unless
--format is given. Without --output, DOT or SVG is written to stdout.
PDF and PNG need rsvg-convert (librsvg).`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completePassageFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Format = resolveFormat(format, output)
			opts.Validation = c.validationOptions(cmd, linkage, multigraph, maxDiags).Validation
			if err := opts.Validate(); err != nil {
				return err
			}
			if output != "" {
				if err := errors.ValidatePath(output); err != nil {
					return err
				}
			}
			if output == "" && (opts.Format == pipeline.FormatPDF || opts.Format == pipeline.FormatPNG) {
				return fmt.Errorf("%s output needs --output", opts.Format)
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: dot, svg (default), pdf, png")
	cmd.Flags().BoolVar(&opts.NodeIDs, "node-ids", false, "label units with their IDs")
	cmd.Flags().BoolVar(&opts.Highlight, "highlight", opts.Highlight, "draw nodes with diagnostics in red")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 2, "PNG scale factor")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addValidationFlags(cmd, &linkage, &multigraph, &maxDiags)

	return cmd
}

// resolveFormat returns the explicit format, else the output extension, else svg.
func resolveFormat(format, output string) string {
	if format != "" {
		return format
	}
	if ext := strings.TrimPrefix(filepath.Ext(output), "."); ext != "" {
		return strings.ToLower(ext)
	}
	return pipeline.FormatSVG
}

func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.RenderOptions, output string, noCache bool) error {
	p, err := uccaio.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load passage %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	var spinner *Spinner
	if output != "" && opts.Format != pipeline.FormatDOT {
		spinner = newSpinner(fmt.Sprintf("Rendering %s...", opts.Format))
		spinner.Start(ctx)
	}

	data, err := runner.Render(ctx, p, opts)
	if spinner != nil {
		if err != nil {
			spinner.StopWithError("Render failed")
		} else {
			spinner.Stop()
		}
	}
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if output == "" {
		_, err := c.Out.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Rendered %s", p.ID)
	printFile(output)
	return nil
}

package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netscore/pkg/scoring"
)

// evalCommand creates the "eval" command for a single package.
func (c *CLI) evalCommand() *cobra.Command {
	var noSummary bool

	cmd := &cobra.Command{
		Use:   "eval <url>",
		Short: "Score a single package URL",
		Example: `  netscore eval https://www.npmjs.com/package/express
  netscore eval https://github.com/lodash/lodash`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := c.newRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.close(ctx, c.Logger)

			prog := newProgress(c.Logger)
			rec := rt.engine.Evaluate(ctx, args[0])
			if err := ctx.Err(); err != nil {
				return err
			}

			if err := scoring.NewNDJSONWriter(c.Out).Write(ctx, rec); err != nil {
				return err
			}
			for _, s := range rt.sinks(scoring.NewRunID()) {
				if err := s.Write(context.WithoutCancel(ctx), rec); err != nil {
					c.Logger.Warn("sink write failed", "url", rec.URL, "err", err)
				}
			}

			prog.done("Scored " + rec.URL)
			if !noSummary {
				printRecord(rec)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noSummary, "no-summary", false, "skip the metric table on stderr")

	return cmd
}

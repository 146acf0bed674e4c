package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netscore/pkg/errors"
	"github.com/matzehuels/netscore/pkg/scoring"
)

// scoreCommand creates the "score" command, the batch entry point.
func (c *CLI) scoreCommand() *cobra.Command {
	var (
		workers   int
		unordered bool
		noSummary bool
	)

	cmd := &cobra.Command{
		Use:   "score <url-file>",
		Short: "Score every package URL listed in a file",
		Long: `Score reads one npm or GitHub URL per line ("-" reads stdin) and writes one
NDJSON record per URL to stdout, in input order unless --unordered is set.
Blank lines and lines starting with # are skipped.`,
		Example: `  netscore score urls.txt
  netscore score --workers 8 --unordered urls.txt > scores.ndjson
  cat urls.txt | netscore score -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.conf()
			if cmd.Flags().Changed("workers") {
				cfg.Workers = workers
			}
			if unordered {
				cfg.Unordered = true
			}

			urls, err := readURLs(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			rt, err := c.newRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.close(ctx, c.Logger)

			c.Logger.Info("Scoring packages", "count", len(urls), "workers", cfg.Workers, "ordered", !cfg.Unordered)
			prog := newProgress(c.Logger)

			runID := scoring.NewRunID()
			batch := scoring.NewBatch(rt.engine, scoring.BatchOptions{
				Workers:   cfg.Workers,
				Unordered: cfg.Unordered,
				RunID:     runID,
				Logger:    c.Logger,
			})
			summary, err := batch.Run(ctx, urls, scoring.NewNDJSONWriter(c.Out), rt.sinks(runID)...)
			if err != nil {
				return err
			}

			prog.done(fmt.Sprintf("Scored %d packages, %d failed", summary.Total, summary.Failed))
			if !noSummary && summary.Total > 0 {
				printSummary(summary)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "packages evaluated at once (default from config)")
	cmd.Flags().BoolVar(&unordered, "unordered", false, "emit records as they complete")
	cmd.Flags().BoolVar(&noSummary, "no-summary", false, "skip the summary table on stderr")

	return cmd
}

// readURLs reads one URL per line from path, or from stdin when path is "-".
func readURLs(path string, stdin io.Reader) ([]string, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open url file %s", path)
		}
		defer f.Close()
		r = f
	}
	return parseURLs(r, path)
}

func parseURLs(r io.Reader, name string) ([]string, error) {
	var urls []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read url file %s", name)
	}
	return urls, nil
}

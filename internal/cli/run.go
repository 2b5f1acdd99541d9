package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/kbukum/fluxkit/errors"
	"github.com/kbukum/fluxkit/internal/app"
	"github.com/kbukum/fluxkit/samples"
)

const defaultSample = "iterator"

func runCmd(opts *globalOptions) *cobra.Command {
	var (
		all    bool
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "run [sample...]",
		Short: "Run samples (default: " + defaultSample + ")",
		Long: "Run the named samples in order. Values, faults and completion are logged;\n" +
			"a summary line per sample is printed when the run ends.",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := args
			switch {
			case all && len(args) > 0:
				return errors.InvalidInput("args", "--all cannot be combined with sample names")
			case all:
				names = samples.Names()
			case len(names) == 0:
				names = []string{defaultSample}
			}

			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			results, err := app.Run(cmd.Context(), cfg, names)
			printSummary(cmd, results)
			if err != nil {
				return err
			}
			if strict {
				for _, r := range results {
					if r.Faulted() {
						return fmt.Errorf("sample %s faulted: %w", r.Sample, r.Err)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "run every sample in catalogue order")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any sample faults")
	return cmd
}

func printSummary(cmd *cobra.Command, results []samples.Result) {
	if len(results) == 0 {
		return
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%d element(s)\t%s\n", r.Sample, r.Status, r.Elements, r.Duration.Round(time.Microsecond))
	}
	_ = w.Flush()
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pigeon/pkg/convert"
	"github.com/matzehuels/pigeon/pkg/pipeline"
)

// convertCommand creates the convert command, which turns an NDJSON statement
// dump into the graph JSON read by render.
func (c *CLI) convertCommand() *cobra.Command {
	var (
		output     string
		predicates []string
	)

	cmd := &cobra.Command{
		Use:   "convert <statements.ndjson>",
		Short: "Convert NDJSON mapping statements into graph JSON",
		Long: `Convert reads one {"subject","predicate","objectUri"} statement per line and
keeps statements whose predicate is in the allow list (SKOS mapping relations
by default). Statements with a literal object are skipped. Every kept
statement becomes a link; subjects and objects become nodes grouped by
namespace.`,
		Example: `  pigeon convert mappings.ndjson -o graph/billi.json
  pigeon convert dump.ndjson --predicates skos:exactMatch,skos:closeMatch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog := newProgress(c.Logger)
			stats, err := convert.File(args[0], output, convert.Options{Predicates: predicates})
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Converted %d statements", stats.Statements))

			printSuccess("Wrote %d nodes and %d links", stats.Nodes, stats.Links)
			printFile(output)
			if stats.Filtered > 0 || stats.Literals > 0 {
				printDetail("skipped %d statements with other predicates, %d with literal objects", stats.Filtered, stats.Literals)
			}
			printNextStep("Render it", fmt.Sprintf("%s render --graph %s", appName, output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", pipeline.DefaultGraph, "output graph JSON")
	cmd.Flags().StringSliceVar(&predicates, "predicates", nil, "predicates to keep (default: SKOS mapping relations)")

	return cmd
}

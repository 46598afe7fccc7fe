package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pigeon/pkg/layout"
)

// layoutsCommand lists the accepted --layout values.
func (c *CLI) layoutsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "layouts",
		Short: "List the available layout algorithms",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range layout.Names() {
				engine := layout.Canonical(name)
				switch {
				case name == layout.DefaultAlgorithm:
					engine += " (default)"
				case engine != name:
					engine = "alias of " + engine
				default:
					engine = ""
				}
				printKeyValue(name, engine)
			}
			fmt.Fprintln(stdout)
			printNextStep("Use one", fmt.Sprintf("%s render --layout %s", appName, layout.DefaultAlgorithm))
		},
	}
}

package cmd

import (
	"fmt"

	"github.com/rohmanhakim/element-locator/internal/pathopt"
	"github.com/spf13/cobra"
)

var (
	optimizeTag   string
	optimizeText  string
	optimizeAttrs map[string]string
	optimizeMax   int
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize <absolute-path>",
	Short: "List resilient alternatives for an absolute element path",
	Example: `  element-locator optimize /html/body/form/div[3]/table/tbody/tr[2]/td[3]/a \
    --tag a --text "View License" --attr id=lic-link --max 5`,
	Args: cobra.ExactArgs(1),
	RunE: runOptimize,
}

func init() {
	optimizeCmd.Flags().StringVar(&optimizeTag, "tag", "", "element tag name")
	optimizeCmd.Flags().StringVar(&optimizeText, "text", "", "element visible text")
	optimizeCmd.Flags().StringToStringVar(&optimizeAttrs, "attr", map[string]string{}, "element attribute as key=value (can be repeated)")
	optimizeCmd.Flags().IntVar(&optimizeMax, "max", 0, "number of expressions to return (defaults to the configured maximum)")
}

func resetOptimizeFlags() {
	optimizeTag = ""
	optimizeText = ""
	optimizeAttrs = map[string]string{}
	optimizeMax = 0
}

func runOptimize(cmd *cobra.Command, args []string) error {
	cfg, err := InitConfigWithError()
	if err != nil {
		return err
	}
	max := optimizeMax
	if max <= 0 {
		max = cfg.MaxPathAlternatives()
	}

	absolutePath := args[0]
	alternatives, err := pathopt.Optimize(absolutePath, pathopt.Element{
		Tag:        optimizeTag,
		Text:       optimizeText,
		Attributes: optimizeAttrs,
	}, max)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, expr := range alternatives {
		isAbsolute := expr == absolutePath
		name := pathopt.Classify(expr)
		if isAbsolute {
			name = pathopt.ClassAbsolute
		}
		fmt.Fprintf(out, "%d. [priority %d] %-18s %s\n",
			i+1,
			pathopt.Priority(expr, isAbsolute),
			name,
			expr,
		)
	}
	return nil
}

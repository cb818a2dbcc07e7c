package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rohmanhakim/element-locator/internal/generator"
	"github.com/rohmanhakim/element-locator/internal/storage"
	"github.com/rohmanhakim/element-locator/internal/strategy"
	"github.com/rohmanhakim/element-locator/internal/workflow"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	noPathFallback bool
	stepType       string
	stepFormat     string
)

var generateCmd = &cobra.Command{
	Use:   "generate <element-or-workflow-file>",
	Short: "Generate selector strategies for a captured element",
	Long: `generate reads either a single element descriptor (tag_name, text,
attributes, xpath) or a workflow document, and produces the ranked
selector strategies for it.

A descriptor yields a step file named after the fingerprint of its
strategies. A workflow is rewritten in place with fresh strategies on
every step that carries an element.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&noPathFallback, "no-path-fallback", false, "omit path-expression strategies")
	generateCmd.Flags().StringVar(&stepType, "step-type", "click", "step type written to a new step file")
	generateCmd.Flags().StringVar(&stepFormat, "format", string(workflow.FormatYAML), "step file format: yaml or json")
}

func resetGenerateFlags() {
	noPathFallback = false
	stepType = "click"
	stepFormat = string(workflow.FormatYAML)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, sink, err := setup(cmd)
	if err != nil {
		return err
	}
	path := args[0]
	gen := generator.NewGenerator(cfg.GeneratorParams(), sink)
	out := cmd.OutOrStdout()

	wf, isWorkflow, err := loadWorkflowOrDescriptor(path)
	if err != nil {
		return err
	}

	if isWorkflow {
		generated := 0
		for i := range wf.Steps {
			step := &wf.Steps[i]
			if step.Element == nil {
				continue
			}
			list := gen.Generate(*step.Element, !noPathFallback)
			step.SetStrategies(list)
			generated++
			fmt.Fprintf(out, "step %d (%s):\n%s\n", i+1, step.Type, strategy.Summary(list))
		}
		if cfg.DryRun() {
			fmt.Fprintf(out, "dry run: %d steps updated, %s not written\n", generated, path)
			return nil
		}
		written, err := workflow.Save(path, wf)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "updated %d steps in %s\n", generated, written)
		return nil
	}

	descriptor := *wf.Steps[0].Element
	list := gen.Generate(descriptor, !noPathFallback)
	fmt.Fprintln(out, strategy.Summary(list))

	step := workflow.Step{
		Type:        stepType,
		Description: describe(descriptor),
		TargetText:  descriptor.Text,
		Element:     &descriptor,
	}
	step.SetStrategies(list)

	if cfg.DryRun() {
		fmt.Fprintln(out, "dry run: step file not written")
		return nil
	}
	local := storage.NewLocalSink(sink)
	result, writeErr := local.WriteStep(cfg.OutputDir(), step, workflow.Format(stepFormat), cfg.HashAlgo())
	if writeErr != nil {
		return writeErr
	}
	fmt.Fprintf(out, "wrote %s\n", result.Path())
	return nil
}

// loadWorkflowOrDescriptor reads path as a workflow when it has steps, and as
// a single element descriptor otherwise. A descriptor comes back wrapped in a
// one-step workflow.
func loadWorkflowOrDescriptor(path string) (workflow.Workflow, bool, error) {
	format, err := workflow.FormatOf(path)
	if err != nil {
		return workflow.Workflow{}, false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return workflow.Workflow{}, false, err
	}

	wf, err := workflow.Parse(data, format)
	if err == nil && len(wf.Steps) > 0 {
		return wf, true, nil
	}

	var descriptor generator.Descriptor
	switch format {
	case workflow.FormatJSON:
		err = json.Unmarshal(data, &descriptor)
	default:
		err = yaml.Unmarshal(data, &descriptor)
	}
	if err != nil {
		return workflow.Workflow{}, false, fmt.Errorf("%s is neither a workflow nor an element descriptor: %w", path, err)
	}
	if descriptor.Tag == "" && descriptor.Text == "" && len(descriptor.Attributes) == 0 && descriptor.AbsolutePath == "" {
		return workflow.Workflow{}, false, fmt.Errorf("%s describes no element", path)
	}
	return workflow.Workflow{Steps: []workflow.Step{{Element: &descriptor}}}, false, nil
}

func describe(d generator.Descriptor) string {
	if d.Text != "" {
		return fmt.Sprintf("%s %q", d.Tag, d.Text)
	}
	return d.Tag
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"github.com/rohmanhakim/element-locator/internal/browser"
	"github.com/rohmanhakim/element-locator/internal/config"
	"github.com/rohmanhakim/element-locator/internal/fetcher"
	"github.com/rohmanhakim/element-locator/internal/generator"
	"github.com/rohmanhakim/element-locator/internal/htmleval"
	"github.com/rohmanhakim/element-locator/internal/locator"
	"github.com/rohmanhakim/element-locator/internal/metadata"
	"github.com/rohmanhakim/element-locator/internal/report"
	"github.com/rohmanhakim/element-locator/internal/snapshot"
	"github.com/rohmanhakim/element-locator/internal/storage"
	"github.com/rohmanhakim/element-locator/internal/strategy"
	"github.com/rohmanhakim/element-locator/internal/workflow"
	"github.com/rohmanhakim/element-locator/pkg/urlutil"
	"github.com/spf13/cobra"
)

var (
	locateURL        string
	locateHTML       string
	locateSnapshot   string
	locateBrowser    bool
	locateStep       int
	locateTargetText string
)

var locateCmd = &cobra.Command{
	Use:   "locate <workflow-or-step-file>",
	Short: "Replay selector strategies against a page",
	Long: `locate tries the strategies of each workflow step against a page and
reports the first match together with every attempt made.

The page comes from exactly one source:
  --url       fetched over HTTP(S), or read from disk for file:// URLs
  --html      a saved HTML file
  --snapshot  a selector map: indexed element records as JSON
Add --browser to load --url or --html in a live browser instead.

Steps that carry an element but no strategies get freshly generated ones.`,
	Args: cobra.ExactArgs(1),
	RunE: runLocate,
}

func init() {
	locateCmd.Flags().StringVar(&locateURL, "url", "", "page URL")
	locateCmd.Flags().StringVar(&locateHTML, "html", "", "saved HTML page")
	locateCmd.Flags().StringVar(&locateSnapshot, "snapshot", "", "selector map JSON file")
	locateCmd.Flags().BoolVar(&locateBrowser, "browser", false, "evaluate in a live browser")
	locateCmd.Flags().IntVar(&locateStep, "step", 0, "only locate this step (1-based, 0 for all)")
	locateCmd.Flags().StringVar(&locateTargetText, "target-text", "", "override the target text of every step")
}

func resetLocateFlags() {
	locateURL = ""
	locateHTML = ""
	locateSnapshot = ""
	locateBrowser = false
	locateStep = 0
	locateTargetText = ""
}

// pageSource is a page ready to be searched, plus what a report needs to
// describe it.
type pageSource struct {
	page    locator.Page
	pageURL url.URL
	html    []byte
	close   func() error
}

func runLocate(cmd *cobra.Command, args []string) error {
	cfg, sink, err := setup(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	wf, err := workflow.Load(args[0])
	if err != nil {
		return err
	}
	steps, err := selectSteps(wf, locateStep)
	if err != nil {
		return err
	}

	src, err := openPageSource(ctx, cfg, sink)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := src.close(); closeErr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", closeErr)
		}
	}()

	gen := generator.NewGenerator(cfg.GeneratorParams(), sink)
	loc := locator.NewLocator(sink)
	renderer := report.NewRenderer(sink)
	local := storage.NewLocalSink(sink)

	missed := 0
	for _, n := range steps {
		step := wf.Steps[n-1]
		strategies, err := stepStrategies(step, gen)
		if err != nil {
			return fmt.Errorf("step %d: %w", n, err)
		}

		targetText := step.TargetText
		if locateTargetText != "" {
			targetText = locateTargetText
		}

		result, locateErr := loc.Locate(ctx, src.page, strategies, targetText)
		printOutcome(out, n, result)
		if locateErr != nil {
			var le *locator.LocateError
			if errors.As(locateErr, &le) && le.Cause == locator.ErrCauseCanceled {
				return locateErr
			}
			missed++
		}

		doc, renderErr := renderer.Render(report.Input{
			PageURL:         src.pageURL.String(),
			StepDescription: step.Description,
			TargetText:      targetText,
			Strategies:      strategies,
			Result:          result,
			PageHTML:        src.html,
			GeneratedAt:     time.Now(),
		}, cfg.ReportFormat())
		if renderErr != nil {
			return renderErr
		}
		if cfg.DryRun() {
			continue
		}
		written, writeErr := local.WriteReport(cfg.OutputDir(), src.pageURL, n, doc, cfg.HashAlgo())
		if writeErr != nil {
			return writeErr
		}
		fmt.Fprintf(out, "  report: %s\n", written.Path())
	}

	if missed > 0 {
		return fmt.Errorf("%d of %d steps not located", missed, len(steps))
	}
	return nil
}

// selectSteps returns the 1-based numbers of the steps to locate: the one
// asked for, or every step that targets an element.
func selectSteps(wf workflow.Workflow, only int) ([]int, error) {
	if only > 0 {
		if only > len(wf.Steps) {
			return nil, fmt.Errorf("step %d out of range, workflow has %d steps", only, len(wf.Steps))
		}
		return []int{only}, nil
	}
	var steps []int
	for i, step := range wf.Steps {
		if step.Element != nil || len(step.SelectorStrategies) > 0 {
			steps = append(steps, i+1)
		}
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("workflow has no step targeting an element")
	}
	return steps, nil
}

func stepStrategies(step workflow.Step, gen generator.Generator) ([]strategy.Strategy, error) {
	strategies, err := step.Strategies()
	if err != nil {
		return nil, err
	}
	if len(strategies) == 0 && step.Element != nil {
		strategies = gen.Generate(*step.Element, true)
	}
	return strategies, nil
}

func printOutcome(out io.Writer, n int, result locator.Result) {
	if !result.Found() {
		fmt.Fprintf(out, "step %d: not found after %d attempts\n", n, len(result.Attempts))
		return
	}
	m := result.Match
	fmt.Fprintf(out, "step %d: found with %s [priority %d] %s\n", n, m.Strategy.Kind(), m.Strategy.Priority(), m.Strategy.Value())
	if m.Index >= 0 {
		fmt.Fprintf(out, "  element %d <%s> %q\n", m.Index, m.Tag, m.Text)
	} else {
		fmt.Fprintf(out, "  element <%s> %q\n", m.Tag, m.Text)
	}
}

func openPageSource(ctx context.Context, cfg config.Config, sink metadata.MetadataSink) (pageSource, error) {
	sources := 0
	for _, s := range []string{locateURL, locateHTML, locateSnapshot} {
		if s != "" {
			sources++
		}
	}
	if sources != 1 {
		return pageSource{}, fmt.Errorf("exactly one of --url, --html or --snapshot is required")
	}

	if locateSnapshot != "" {
		if locateBrowser {
			return pageSource{}, fmt.Errorf("--browser cannot be used with --snapshot")
		}
		return openSnapshot(locateSnapshot)
	}

	raw := locateURL
	if raw == "" {
		raw = locateHTML
	}
	pageURL, err := urlutil.ParsePageSource(raw)
	if err != nil {
		return pageSource{}, err
	}

	if locateBrowser || cfg.EvaluatorMode() == config.EvaluatorBrowser {
		return openBrowser(ctx, cfg, pageURL)
	}
	return openStatic(ctx, cfg, sink, pageURL)
}

func openStatic(ctx context.Context, cfg config.Config, sink metadata.MetadataSink, pageURL url.URL) (pageSource, error) {
	f := fetcher.NewHtmlFetcher(sink, cfg.Timeout())
	fetched, fetchErr := f.Fetch(ctx, fetcher.NewFetchParam(pageURL, cfg.UserAgent()), cfg.RetryParam())
	if fetchErr != nil {
		return pageSource{}, fetchErr
	}

	static, err := snapshot.NewStatic(fetched.Body())
	if err != nil {
		return pageSource{}, err
	}
	// Reports are keyed by the page that was actually evaluated.
	finalURL := fetched.FinalURL()
	return pageSource{
		page:    locator.NewPage(static, htmleval.NewEvaluator(static.Root())),
		pageURL: finalURL,
		html:    fetched.Body(),
		close:   func() error { return nil },
	}, nil
}

func openSnapshot(path string) (pageSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return pageSource{}, err
	}
	recorded, err := snapshot.FromRecords(data)
	if err != nil {
		return pageSource{}, err
	}
	pageURL, err := urlutil.ParsePageSource(path)
	if err != nil {
		return pageSource{}, err
	}
	return pageSource{
		page:    locator.NewPage(recorded, noPathEvaluator{}),
		pageURL: pageURL,
		close:   func() error { return nil },
	}, nil
}

func openBrowser(ctx context.Context, cfg config.Config, pageURL url.URL) (pageSource, error) {
	session, err := browser.Open(ctx, browser.Options{
		Headless:          cfg.Headless(),
		ControlURL:        cfg.ControlURL(),
		NavigationTimeout: cfg.NavigationTimeout(),
	})
	if err != nil {
		return pageSource{}, err
	}
	if err := session.Navigate(ctx, pageURL.String()); err != nil {
		_ = session.Close()
		return pageSource{}, err
	}
	// The excerpt is optional; a page that cannot be serialized still gets
	// searched.
	html, _ := session.HTML(ctx)
	return pageSource{
		page:    session,
		pageURL: pageURL,
		html:    html,
		close:   session.Close,
	}, nil
}

// noPathEvaluator stands in for a live page when only a selector map is
// available. Path strategies fail softly against it.
type noPathEvaluator struct{}

func (noPathEvaluator) Evaluate(ctx context.Context, expr string) (*locator.EvalResult, error) {
	return nil, errors.New("no page to evaluate path expressions against")
}

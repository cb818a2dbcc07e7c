package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/rohmanhakim/element-locator/internal/config"
	"github.com/rohmanhakim/element-locator/internal/metadata"
	"github.com/rohmanhakim/element-locator/internal/report"
	"github.com/rohmanhakim/element-locator/pkg/hashutil"
	"github.com/spf13/cobra"
)

var (
	cfgFile             string
	outputDir           string
	dryRun              bool
	logLevel            string
	maxPathAlternatives int
	maxTotalStrategies  int
	noPathOptimization  bool
	fuzzyThreshold      float64
	userAgent           string
	timeout             time.Duration
	maxAttempt          int
	randomSeed          int64
	hashAlgo            string
	reportFormat        string
	headful             bool
	controlURL          string
	navigationTimeout   time.Duration
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "element-locator",
	Short: "Generate and replay resilient element selectors.",
	Long: `element-locator turns an element captured during a recording into a
ranked list of alternative ways to find it again, and replays those
alternatives against a page to find the element after the page has changed.

Strategies range from exact visible text and accessibility attributes to
optimized path expressions, with the captured absolute path kept as the
last resort. Every locate run can leave an audit report behind.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// ExecuteArgs runs the command tree with args, writing command output to out
// and diagnostics to errOut.
func ExecuteArgs(args []string, out io.Writer, errOut io.Writer) error {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config-file", "", "config file path, JSON or YAML (e.g., /home/myuser/locator.yaml)")
	flags.StringVar(&outputDir, "output-dir", "", "directory for reports and step files")
	flags.BoolVar(&dryRun, "dry-run", false, "run without writing any file")
	flags.StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	flags.IntVar(&maxPathAlternatives, "max-path-alternatives", 0, "path expressions per element, captured path included")
	flags.IntVar(&maxTotalStrategies, "max-total-strategies", -1, "cap on generated strategies (0 for unlimited)")
	flags.BoolVar(&noPathOptimization, "no-path-optimization", false, "keep the captured path as is instead of optimizing it")
	flags.Float64Var(&fuzzyThreshold, "fuzzy-threshold", 0, "similarity ratio a fuzzy text match must reach")
	flags.StringVar(&userAgent, "user-agent", "", "user agent string for HTTP requests")
	flags.DurationVar(&timeout, "timeout", 0, "timeout for HTTP requests")
	flags.IntVar(&maxAttempt, "max-attempt", 0, "fetch attempts before giving up")
	flags.Int64Var(&randomSeed, "random-seed", 0, "seed for retry jitter (0 for current time)")
	flags.StringVar(&hashAlgo, "hash-algo", "", "hash used to name output files: blake3 or sha256")
	flags.StringVar(&reportFormat, "report-format", "", "locate report format: markdown or html")
	flags.BoolVar(&headful, "headful", false, "show the browser window in browser mode")
	flags.StringVar(&controlURL, "control-url", "", "DevTools URL of a running browser (launches one when empty)")
	flags.DurationVar(&navigationTimeout, "navigation-timeout", 0, "page navigation timeout in browser mode")

	rootCmd.AddCommand(generateCmd, optimizeCmd, locateCmd, migrateCmd, versionCmd)
}

// InitConfigWithError builds the configuration from the config file when one
// is given, or from defaults overridden by flags otherwise.
func InitConfigWithError() (config.Config, error) {
	if cfgFile != "" {
		cfg, err := config.WithConfigFile(cfgFile)
		if err != nil {
			return cfg, fmt.Errorf("error initializing config from file: %w", err)
		}
		return cfg, nil
	}

	configBuilder := config.WithDefault()

	if outputDir != "" {
		configBuilder = configBuilder.WithOutputDir(outputDir)
	}
	if dryRun {
		configBuilder = configBuilder.WithDryRun(dryRun)
	}
	if maxPathAlternatives > 0 {
		configBuilder = configBuilder.WithMaxPathAlternatives(maxPathAlternatives)
	}
	if maxTotalStrategies >= 0 {
		configBuilder = configBuilder.WithMaxTotalStrategies(maxTotalStrategies)
	}
	if noPathOptimization {
		configBuilder = configBuilder.WithEnablePathOptimization(false)
	}
	if fuzzyThreshold > 0 {
		configBuilder = configBuilder.WithFuzzyThreshold(fuzzyThreshold)
	}
	if userAgent != "" {
		configBuilder = configBuilder.WithUserAgent(userAgent)
	}
	if timeout > 0 {
		configBuilder = configBuilder.WithTimeout(timeout)
	}
	if maxAttempt > 0 {
		configBuilder = configBuilder.WithMaxAttempt(maxAttempt)
	}
	if randomSeed != 0 {
		configBuilder = configBuilder.WithRandomSeed(randomSeed)
	}
	if hashAlgo != "" {
		configBuilder = configBuilder.WithHashAlgo(hashutil.HashAlgo(hashAlgo))
	}
	if reportFormat != "" {
		configBuilder = configBuilder.WithReportFormat(report.Format(strings.ToLower(reportFormat)))
	}
	if headful {
		configBuilder = configBuilder.WithHeadless(false)
	}
	if controlURL != "" {
		configBuilder = configBuilder.WithControlURL(controlURL)
	}
	if navigationTimeout > 0 {
		configBuilder = configBuilder.WithNavigationTimeout(navigationTimeout)
	}

	return configBuilder.Build()
}

// newMetadataSink logs metadata events to the command's error stream.
func newMetadataSink(cmd *cobra.Command) (metadata.MetadataSink, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q", logLevel)
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	return metadata.NewRecorder(slog.New(handler)), nil
}

// setup is the shared prologue of every command that needs configuration.
func setup(cmd *cobra.Command) (config.Config, metadata.MetadataSink, error) {
	cfg, err := InitConfigWithError()
	if err != nil {
		return config.Config{}, nil, err
	}
	sink, err := newMetadataSink(cmd)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, sink, nil
}

func ResetFlags() {
	cfgFile = ""
	outputDir = ""
	dryRun = false
	logLevel = "warn"
	maxPathAlternatives = 0
	maxTotalStrategies = -1
	noPathOptimization = false
	fuzzyThreshold = 0
	userAgent = ""
	timeout = 0
	maxAttempt = 0
	randomSeed = 0
	hashAlgo = ""
	reportFormat = ""
	headful = false
	controlURL = ""
	navigationTimeout = 0
	resetGenerateFlags()
	resetOptimizeFlags()
	resetLocateFlags()
	resetMigrateFlags()
}

// Test helper functions to set flag values from tests
func SetConfigFileForTest(path string) {
	cfgFile = path
}

func SetOutputDirForTest(dir string) {
	outputDir = dir
}

func SetDryRunForTest(dry bool) {
	dryRun = dry
}

func SetMaxPathAlternativesForTest(max int) {
	maxPathAlternatives = max
}

func SetMaxTotalStrategiesForTest(max int) {
	maxTotalStrategies = max
}

func SetNoPathOptimizationForTest(disabled bool) {
	noPathOptimization = disabled
}

func SetFuzzyThresholdForTest(threshold float64) {
	fuzzyThreshold = threshold
}

func SetUserAgentForTest(agent string) {
	userAgent = agent
}

func SetTimeoutForTest(t time.Duration) {
	timeout = t
}

func SetRandomSeedForTest(seed int64) {
	randomSeed = seed
}

func SetHashAlgoForTest(algo string) {
	hashAlgo = algo
}

func SetReportFormatForTest(format string) {
	reportFormat = format
}

func SetHeadfulForTest(show bool) {
	headful = show
}

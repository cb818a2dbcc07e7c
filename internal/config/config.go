package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rohmanhakim/element-locator/internal/generator"
	"github.com/rohmanhakim/element-locator/internal/report"
	"github.com/rohmanhakim/element-locator/pkg/hashutil"
	"github.com/rohmanhakim/element-locator/pkg/retry"
	"github.com/rohmanhakim/element-locator/pkg/timeutil"
	"gopkg.in/yaml.v3"
)

type EvaluatorMode string

const (
	// EvaluatorStatic evaluates strategies against fetched or local HTML.
	EvaluatorStatic EvaluatorMode = "static"
	// EvaluatorBrowser evaluates strategies against a live browser page.
	EvaluatorBrowser EvaluatorMode = "browser"
)

type Config struct {
	//===============
	// Generation
	//===============
	// Whether captured absolute paths are expanded into resilient alternatives
	enablePathOptimization bool
	// Number of path expressions the optimizer returns, original path included
	maxPathAlternatives int
	// Cap on the generated list after sorting and dedupe. 0 means unlimited
	maxTotalStrategies int
	// Similarity ratio a fuzzy text match must reach
	fuzzyThreshold float64

	//===============
	// Evaluation
	//===============
	// Where strategies are evaluated
	evaluatorMode EvaluatorMode
	// Whether a launched browser runs without a window
	headless bool
	// DevTools URL of an already running browser. Empty launches a new one
	controlURL string
	// Upper bound for page navigation in browser mode
	navigationTimeout time.Duration

	//===============
	// Fetch
	//===============
	// Maximum time of a single fetch request
	timeout time.Duration
	// User agent that will be used in the request header. In raw string
	userAgent string
	// Randomized variation added on top of the backoff delay
	jitter time.Duration
	// Controls the random number generator
	randomSeed int64
	// maximum attempt during retry
	maxAttempt int
	// initial delay for backoff
	backoffInitialDuration time.Duration
	// multiplier during exponential backoff
	backoffMultiplier float64
	// capped maximum delay for backoff to stop exponential multiplication
	backoffMaxDuration time.Duration

	//===============
	// Output
	//===============
	// Root directory for reports and step files
	outputDir string
	// Whether the program will simulates what it would do without
	// actually performing any irreversible or side-effecting actions
	dryRun bool
	// Hash used to name output files
	hashAlgo hashutil.HashAlgo
	// Rendering of locate reports
	reportFormat report.Format
}

// duration accepts either a Go duration string ("1.5s") or integer
// nanoseconds.
type duration time.Duration

func (d *duration) UnmarshalJSON(data []byte) error {
	var nanos int64
	if err := json.Unmarshal(data, &nanos); err == nil {
		*d = duration(nanos)
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	return d.parse(text)
}

func (d *duration) UnmarshalYAML(node *yaml.Node) error {
	var nanos int64
	if err := node.Decode(&nanos); err == nil {
		*d = duration(nanos)
		return nil
	}
	return d.parse(node.Value)
}

func (d *duration) parse(text string) error {
	parsed, err := time.ParseDuration(text)
	if err != nil {
		return err
	}
	*d = duration(parsed)
	return nil
}

type configDTO struct {
	EnablePathOptimization *bool    `json:"enablePathOptimization,omitempty" yaml:"enablePathOptimization,omitempty"`
	MaxPathAlternatives    int      `json:"maxPathAlternatives,omitempty" yaml:"maxPathAlternatives,omitempty"`
	MaxTotalStrategies     *int     `json:"maxTotalStrategies,omitempty" yaml:"maxTotalStrategies,omitempty"`
	FuzzyThreshold         float64  `json:"fuzzyThreshold,omitempty" yaml:"fuzzyThreshold,omitempty"`
	EvaluatorMode          string   `json:"evaluatorMode,omitempty" yaml:"evaluatorMode,omitempty"`
	Headless               *bool    `json:"headless,omitempty" yaml:"headless,omitempty"`
	ControlURL             string   `json:"controlUrl,omitempty" yaml:"controlUrl,omitempty"`
	NavigationTimeout      duration `json:"navigationTimeout,omitempty" yaml:"navigationTimeout,omitempty"`
	Timeout                duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	UserAgent              string   `json:"userAgent,omitempty" yaml:"userAgent,omitempty"`
	Jitter                 duration `json:"jitter,omitempty" yaml:"jitter,omitempty"`
	RandomSeed             int64    `json:"randomSeed,omitempty" yaml:"randomSeed,omitempty"`
	MaxAttempt             int      `json:"maxAttempt,omitempty" yaml:"maxAttempt,omitempty"`
	BackoffInitialDuration duration `json:"backoffInitialDuration,omitempty" yaml:"backoffInitialDuration,omitempty"`
	BackoffMultiplier      float64  `json:"backoffMultiplier,omitempty" yaml:"backoffMultiplier,omitempty"`
	BackoffMaxDuration     duration `json:"backoffMaxDuration,omitempty" yaml:"backoffMaxDuration,omitempty"`
	OutputDir              string   `json:"outputDir,omitempty" yaml:"outputDir,omitempty"`
	DryRun                 bool     `json:"dryRun,omitempty" yaml:"dryRun,omitempty"`
	HashAlgo               string   `json:"hashAlgo,omitempty" yaml:"hashAlgo,omitempty"`
	ReportFormat           string   `json:"reportFormat,omitempty" yaml:"reportFormat,omitempty"`
}

func newConfigFromDTO(dto configDTO) (Config, error) {
	cfg := WithDefault()

	// Booleans that default to true and the total cap, where 0 is meaningful,
	// are pointers so an explicit value can be told from an absent one.
	if dto.EnablePathOptimization != nil {
		cfg.enablePathOptimization = *dto.EnablePathOptimization
	}
	if dto.MaxPathAlternatives != 0 {
		cfg.maxPathAlternatives = dto.MaxPathAlternatives
	}
	if dto.MaxTotalStrategies != nil {
		cfg.maxTotalStrategies = *dto.MaxTotalStrategies
	}
	if dto.FuzzyThreshold != 0 {
		cfg.fuzzyThreshold = dto.FuzzyThreshold
	}
	if dto.EvaluatorMode != "" {
		cfg.evaluatorMode = EvaluatorMode(strings.ToLower(dto.EvaluatorMode))
	}
	if dto.Headless != nil {
		cfg.headless = *dto.Headless
	}
	if dto.ControlURL != "" {
		cfg.controlURL = dto.ControlURL
	}
	if dto.NavigationTimeout != 0 {
		cfg.navigationTimeout = time.Duration(dto.NavigationTimeout)
	}
	if dto.Timeout != 0 {
		cfg.timeout = time.Duration(dto.Timeout)
	}
	if dto.UserAgent != "" {
		cfg.userAgent = dto.UserAgent
	}
	if dto.Jitter != 0 {
		cfg.jitter = time.Duration(dto.Jitter)
	}
	if dto.RandomSeed != 0 {
		cfg.randomSeed = dto.RandomSeed
	}
	if dto.MaxAttempt != 0 {
		cfg.maxAttempt = dto.MaxAttempt
	}
	if dto.BackoffInitialDuration != 0 {
		cfg.backoffInitialDuration = time.Duration(dto.BackoffInitialDuration)
	}
	if dto.BackoffMultiplier != 0 {
		cfg.backoffMultiplier = dto.BackoffMultiplier
	}
	if dto.BackoffMaxDuration != 0 {
		cfg.backoffMaxDuration = time.Duration(dto.BackoffMaxDuration)
	}
	if dto.OutputDir != "" {
		cfg.outputDir = dto.OutputDir
	}
	cfg.dryRun = dto.DryRun
	if dto.HashAlgo != "" {
		cfg.hashAlgo = hashutil.HashAlgo(dto.HashAlgo)
	}
	if dto.ReportFormat != "" {
		cfg.reportFormat = report.Format(strings.ToLower(dto.ReportFormat))
	}

	return cfg.Build()
}

// WithConfigFile reads a JSON or YAML file, chosen by extension. Keys left
// out keep their defaults.
func WithConfigFile(path string) (Config, error) {
	_, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	configContent, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}
	cfgDTO := configDTO{}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(configContent, &cfgDTO)
	default:
		err = json.Unmarshal(configContent, &cfgDTO)
	}
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	return newConfigFromDTO(cfgDTO)
}

// WithDefault creates a new Config holding the default value of every field.
func WithDefault() *Config {
	defaultConfig := Config{
		enablePathOptimization: true,
		maxPathAlternatives:    generator.DefaultMaxPathAlternatives,
		maxTotalStrategies:     generator.DefaultMaxTotalStrategies,
		fuzzyThreshold:         0.8,
		evaluatorMode:          EvaluatorStatic,
		headless:               true,
		controlURL:             "",
		navigationTimeout:      30 * time.Second,
		timeout:                10 * time.Second,
		userAgent:              "element-locator/1.0",
		jitter:                 100 * time.Millisecond,
		randomSeed:             time.Now().UnixNano(),
		maxAttempt:             3,
		backoffInitialDuration: 200 * time.Millisecond,
		backoffMultiplier:      2.0,
		backoffMaxDuration:     5 * time.Second,
		outputDir:              "output",
		dryRun:                 false,
		hashAlgo:               hashutil.HashAlgoBLAKE3,
		reportFormat:           report.FormatMarkdown,
	}
	return &defaultConfig
}

func (c *Config) WithEnablePathOptimization(enabled bool) *Config {
	c.enablePathOptimization = enabled
	return c
}

func (c *Config) WithMaxPathAlternatives(max int) *Config {
	c.maxPathAlternatives = max
	return c
}

func (c *Config) WithMaxTotalStrategies(max int) *Config {
	c.maxTotalStrategies = max
	return c
}

func (c *Config) WithFuzzyThreshold(threshold float64) *Config {
	c.fuzzyThreshold = threshold
	return c
}

func (c *Config) WithEvaluatorMode(mode EvaluatorMode) *Config {
	c.evaluatorMode = mode
	return c
}

func (c *Config) WithHeadless(headless bool) *Config {
	c.headless = headless
	return c
}

func (c *Config) WithControlURL(controlURL string) *Config {
	c.controlURL = controlURL
	return c
}

func (c *Config) WithNavigationTimeout(timeout time.Duration) *Config {
	c.navigationTimeout = timeout
	return c
}

func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.timeout = timeout
	return c
}

func (c *Config) WithUserAgent(agent string) *Config {
	c.userAgent = agent
	return c
}

func (c *Config) WithJitter(jitter time.Duration) *Config {
	c.jitter = jitter
	return c
}

func (c *Config) WithRandomSeed(seed int64) *Config {
	c.randomSeed = seed
	return c
}

func (c *Config) WithMaxAttempt(attempts int) *Config {
	c.maxAttempt = attempts
	return c
}

func (c *Config) WithBackoffInitialDuration(duration time.Duration) *Config {
	c.backoffInitialDuration = duration
	return c
}

func (c *Config) WithBackoffMultiplier(multiplier float64) *Config {
	c.backoffMultiplier = multiplier
	return c
}

func (c *Config) WithBackoffMaxDuration(duration time.Duration) *Config {
	c.backoffMaxDuration = duration
	return c
}

func (c *Config) WithOutputDir(outputDir string) *Config {
	c.outputDir = outputDir
	return c
}

func (c *Config) WithDryRun(dryRun bool) *Config {
	c.dryRun = dryRun
	return c
}

func (c *Config) WithHashAlgo(algo hashutil.HashAlgo) *Config {
	c.hashAlgo = algo
	return c
}

func (c *Config) WithReportFormat(format report.Format) *Config {
	c.reportFormat = format
	return c
}

func (c *Config) Build() (Config, error) {
	if c.maxPathAlternatives < 1 {
		return Config{}, fmt.Errorf("%w: maxPathAlternatives must be at least 1, got %d", ErrInvalidConfig, c.maxPathAlternatives)
	}
	if c.maxTotalStrategies < 0 {
		return Config{}, fmt.Errorf("%w: maxTotalStrategies cannot be negative, got %d", ErrInvalidConfig, c.maxTotalStrategies)
	}
	if c.fuzzyThreshold <= 0 || c.fuzzyThreshold > 1 {
		return Config{}, fmt.Errorf("%w: fuzzyThreshold must be in (0, 1], got %v", ErrInvalidConfig, c.fuzzyThreshold)
	}
	switch c.evaluatorMode {
	case EvaluatorStatic, EvaluatorBrowser:
	default:
		return Config{}, fmt.Errorf("%w: unknown evaluatorMode %q", ErrInvalidConfig, c.evaluatorMode)
	}
	if c.maxAttempt < 1 {
		return Config{}, fmt.Errorf("%w: maxAttempt must be at least 1, got %d", ErrInvalidConfig, c.maxAttempt)
	}
	if _, err := hashutil.ParseHashAlgo(string(c.hashAlgo)); err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, err.Error())
	}
	if _, err := report.ParseFormat(string(c.reportFormat)); err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, err.Error())
	}

	return *c, nil
}

func (c Config) EnablePathOptimization() bool {
	return c.enablePathOptimization
}

func (c Config) MaxPathAlternatives() int {
	return c.maxPathAlternatives
}

func (c Config) MaxTotalStrategies() int {
	return c.maxTotalStrategies
}

func (c Config) FuzzyThreshold() float64 {
	return c.fuzzyThreshold
}

func (c Config) EvaluatorMode() EvaluatorMode {
	return c.evaluatorMode
}

func (c Config) Headless() bool {
	return c.headless
}

func (c Config) ControlURL() string {
	return c.controlURL
}

func (c Config) NavigationTimeout() time.Duration {
	return c.navigationTimeout
}

func (c Config) Timeout() time.Duration {
	return c.timeout
}

func (c Config) UserAgent() string {
	return c.userAgent
}

func (c Config) Jitter() time.Duration {
	return c.jitter
}

func (c Config) RandomSeed() int64 {
	return c.randomSeed
}

func (c Config) MaxAttempt() int {
	return c.maxAttempt
}

func (c Config) BackoffInitialDuration() time.Duration {
	return c.backoffInitialDuration
}

func (c Config) BackoffMultiplier() float64 {
	return c.backoffMultiplier
}

func (c Config) BackoffMaxDuration() time.Duration {
	return c.backoffMaxDuration
}

func (c Config) OutputDir() string {
	return c.outputDir
}

func (c Config) DryRun() bool {
	return c.dryRun
}

func (c Config) HashAlgo() hashutil.HashAlgo {
	return c.hashAlgo
}

func (c Config) ReportFormat() report.Format {
	return c.reportFormat
}

// GeneratorParams is the generator view of the generation settings.
func (c Config) GeneratorParams() generator.Params {
	return generator.NewParams(
		c.enablePathOptimization,
		c.maxPathAlternatives,
		c.maxTotalStrategies,
		c.fuzzyThreshold,
	)
}

// RetryParam is the fetch retry policy.
func (c Config) RetryParam() retry.RetryParam {
	return retry.NewRetryParam(
		c.jitter,
		c.randomSeed,
		c.maxAttempt,
		timeutil.NewBackoffParam(
			c.backoffInitialDuration,
			c.backoffMultiplier,
			c.backoffMaxDuration,
		),
	)
}

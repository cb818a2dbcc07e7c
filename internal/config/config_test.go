package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rohmanhakim/element-locator/internal/config"
	"github.com/rohmanhakim/element-locator/internal/report"
	"github.com/rohmanhakim/element-locator/pkg/hashutil"
)

func TestWithDefault(t *testing.T) {
	cfg := config.WithDefault()

	if cfg == nil {
		t.Fatal("WithDefault() returned nil")
	}

	builtCfg, err := cfg.Build()
	if err != nil {
		t.Fatalf("should not have any error, got %v", err)
	}

	// Generation
	if !builtCfg.EnablePathOptimization() {
		t.Error("expected EnablePathOptimization true")
	}
	if builtCfg.MaxPathAlternatives() != 2 {
		t.Errorf("expected MaxPathAlternatives 2, got %d", builtCfg.MaxPathAlternatives())
	}
	if builtCfg.MaxTotalStrategies() != 2 {
		t.Errorf("expected MaxTotalStrategies 2, got %d", builtCfg.MaxTotalStrategies())
	}
	if builtCfg.FuzzyThreshold() != 0.8 {
		t.Errorf("expected FuzzyThreshold 0.8, got %v", builtCfg.FuzzyThreshold())
	}

	// Evaluation
	if builtCfg.EvaluatorMode() != config.EvaluatorStatic {
		t.Errorf("expected EvaluatorMode static, got %q", builtCfg.EvaluatorMode())
	}
	if !builtCfg.Headless() {
		t.Error("expected Headless true")
	}
	if builtCfg.ControlURL() != "" {
		t.Errorf("expected empty ControlURL, got %q", builtCfg.ControlURL())
	}
	if builtCfg.NavigationTimeout() != 30*time.Second {
		t.Errorf("expected NavigationTimeout 30s, got %v", builtCfg.NavigationTimeout())
	}

	// Fetch
	if builtCfg.Timeout() != 10*time.Second {
		t.Errorf("expected Timeout 10s, got %v", builtCfg.Timeout())
	}
	if builtCfg.UserAgent() != "element-locator/1.0" {
		t.Errorf("expected UserAgent 'element-locator/1.0', got '%s'", builtCfg.UserAgent())
	}
	if builtCfg.MaxAttempt() != 3 {
		t.Errorf("expected MaxAttempt 3, got %d", builtCfg.MaxAttempt())
	}
	if builtCfg.RandomSeed() == 0 {
		t.Error("expected RandomSeed to be set, got 0")
	}

	// Output
	if builtCfg.OutputDir() != "output" {
		t.Errorf("expected OutputDir 'output', got '%s'", builtCfg.OutputDir())
	}
	if builtCfg.DryRun() {
		t.Error("expected DryRun false")
	}
	if builtCfg.HashAlgo() != hashutil.HashAlgoBLAKE3 {
		t.Errorf("expected HashAlgo blake3, got %q", builtCfg.HashAlgo())
	}
	if builtCfg.ReportFormat() != report.FormatMarkdown {
		t.Errorf("expected ReportFormat markdown, got %q", builtCfg.ReportFormat())
	}
}

func TestBuilderChain(t *testing.T) {
	cfg, err := config.WithDefault().
		WithEnablePathOptimization(false).
		WithMaxPathAlternatives(4).
		WithMaxTotalStrategies(0).
		WithFuzzyThreshold(0.7).
		WithEvaluatorMode(config.EvaluatorBrowser).
		WithHeadless(false).
		WithControlURL("ws://127.0.0.1:9222/devtools/browser/abc").
		WithNavigationTimeout(5 * time.Second).
		WithTimeout(time.Second).
		WithUserAgent("probe/2").
		WithJitter(0).
		WithRandomSeed(7).
		WithMaxAttempt(5).
		WithBackoffInitialDuration(time.Millisecond).
		WithBackoffMultiplier(3).
		WithBackoffMaxDuration(time.Second).
		WithOutputDir("reports").
		WithDryRun(true).
		WithHashAlgo(hashutil.HashAlgoSHA256).
		WithReportFormat(report.FormatHTML).
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	params := cfg.GeneratorParams()
	if params.EnablePathOptimization() || params.MaxPathAlternatives() != 4 ||
		params.MaxTotalStrategies() != 0 || params.FuzzyThreshold() != 0.7 {
		t.Errorf("generator params not carried over: %+v", params)
	}

	retryParam := cfg.RetryParam()
	if retryParam.MaxAttempts != 5 || retryParam.RandomSeed != 7 || retryParam.Jitter != 0 {
		t.Errorf("retry params not carried over: %+v", retryParam)
	}

	if cfg.EvaluatorMode() != config.EvaluatorBrowser || cfg.Headless() {
		t.Errorf("evaluation settings not carried over")
	}
	if cfg.ControlURL() != "ws://127.0.0.1:9222/devtools/browser/abc" {
		t.Errorf("unexpected ControlURL %q", cfg.ControlURL())
	}
	if !cfg.DryRun() || cfg.OutputDir() != "reports" || cfg.ReportFormat() != report.FormatHTML {
		t.Errorf("output settings not carried over")
	}
}

func TestBuild_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		build func() (config.Config, error)
	}{
		{
			name: "zero path alternatives",
			build: func() (config.Config, error) {
				return config.WithDefault().WithMaxPathAlternatives(0).Build()
			},
		},
		{
			name: "negative total cap",
			build: func() (config.Config, error) {
				return config.WithDefault().WithMaxTotalStrategies(-1).Build()
			},
		},
		{
			name: "threshold above one",
			build: func() (config.Config, error) {
				return config.WithDefault().WithFuzzyThreshold(1.5).Build()
			},
		},
		{
			name: "threshold zero",
			build: func() (config.Config, error) {
				return config.WithDefault().WithFuzzyThreshold(0).Build()
			},
		},
		{
			name: "unknown evaluator",
			build: func() (config.Config, error) {
				return config.WithDefault().WithEvaluatorMode("remote").Build()
			},
		},
		{
			name: "zero attempts",
			build: func() (config.Config, error) {
				return config.WithDefault().WithMaxAttempt(0).Build()
			},
		},
		{
			name: "unknown hash",
			build: func() (config.Config, error) {
				return config.WithDefault().WithHashAlgo("md5").Build()
			},
		},
		{
			name: "unknown report format",
			build: func() (config.Config, error) {
				return config.WithDefault().WithReportFormat("pdf").Build()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build()
			if !errors.Is(err, config.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func writeConfig(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestWithConfigFile_JSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{
		"enablePathOptimization": false,
		"maxPathAlternatives": 3,
		"maxTotalStrategies": 0,
		"navigationTimeout": "45s",
		"timeout": 2000000000,
		"userAgent": "json-agent",
		"hashAlgo": "sha256"
	}`)

	cfg, err := config.WithConfigFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.EnablePathOptimization() {
		t.Error("expected EnablePathOptimization false")
	}
	if cfg.MaxPathAlternatives() != 3 {
		t.Errorf("expected MaxPathAlternatives 3, got %d", cfg.MaxPathAlternatives())
	}
	if cfg.MaxTotalStrategies() != 0 {
		t.Errorf("expected explicit MaxTotalStrategies 0, got %d", cfg.MaxTotalStrategies())
	}
	if cfg.NavigationTimeout() != 45*time.Second {
		t.Errorf("expected NavigationTimeout 45s, got %v", cfg.NavigationTimeout())
	}
	if cfg.Timeout() != 2*time.Second {
		t.Errorf("expected Timeout 2s, got %v", cfg.Timeout())
	}
	if cfg.UserAgent() != "json-agent" {
		t.Errorf("expected UserAgent json-agent, got %q", cfg.UserAgent())
	}
	if cfg.HashAlgo() != hashutil.HashAlgoSHA256 {
		t.Errorf("expected sha256, got %q", cfg.HashAlgo())
	}
	// untouched keys keep their defaults
	if cfg.FuzzyThreshold() != 0.8 {
		t.Errorf("expected default FuzzyThreshold, got %v", cfg.FuzzyThreshold())
	}
	if !cfg.Headless() {
		t.Error("expected default Headless true")
	}
}

func TestWithConfigFile_YAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
fuzzyThreshold: 0.7
evaluatorMode: Browser
headless: false
controlUrl: ws://localhost:9222
backoffInitialDuration: 50ms
reportFormat: html
dryRun: true
`)

	cfg, err := config.WithConfigFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.FuzzyThreshold() != 0.7 {
		t.Errorf("expected FuzzyThreshold 0.7, got %v", cfg.FuzzyThreshold())
	}
	if cfg.EvaluatorMode() != config.EvaluatorBrowser {
		t.Errorf("expected browser mode, got %q", cfg.EvaluatorMode())
	}
	if cfg.Headless() {
		t.Error("expected Headless false")
	}
	if cfg.ControlURL() != "ws://localhost:9222" {
		t.Errorf("unexpected ControlURL %q", cfg.ControlURL())
	}
	if cfg.BackoffInitialDuration() != 50*time.Millisecond {
		t.Errorf("expected 50ms, got %v", cfg.BackoffInitialDuration())
	}
	if cfg.ReportFormat() != report.FormatHTML {
		t.Errorf("expected html, got %q", cfg.ReportFormat())
	}
	if !cfg.DryRun() {
		t.Error("expected DryRun true")
	}
}

func TestWithConfigFile_Errors(t *testing.T) {
	_, err := config.WithConfigFile(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, config.ErrFileDoesNotExist) {
		t.Errorf("expected ErrFileDoesNotExist, got %v", err)
	}

	_, err = config.WithConfigFile(writeConfig(t, "broken.json", `{"maxAttempt": "many"}`))
	if !errors.Is(err, config.ErrConfigParsingFail) {
		t.Errorf("expected ErrConfigParsingFail, got %v", err)
	}

	_, err = config.WithConfigFile(writeConfig(t, "bad.yaml", "timeout: soon\n"))
	if !errors.Is(err, config.ErrConfigParsingFail) {
		t.Errorf("expected ErrConfigParsingFail for bad duration, got %v", err)
	}

	_, err = config.WithConfigFile(writeConfig(t, "invalid.yaml", "evaluatorMode: remote\n"))
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

package generator

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rohmanhakim/element-locator/internal/metadata"
	"github.com/rohmanhakim/element-locator/internal/pathopt"
	"github.com/rohmanhakim/element-locator/internal/strategy"
)

/*
Responsibilities
- Derive relocation strategies from a recorded element
- Rank semantic strategies ahead of structural ones
- Keep the output sorted, unique and capped

Generation never fails. When the path optimizer rejects the captured path
the generator falls back to a best-effort expression and records the
degradation on the metadata sink.
*/

type Generator struct {
	params       Params
	metadataSink metadata.MetadataSink
}

func NewGenerator(params Params, metadataSink metadata.MetadataSink) Generator {
	return Generator{
		params:       params,
		metadataSink: metadataSink,
	}
}

// Generate returns the strategies for d in ascending priority order. The
// structural tier is only produced when includePathFallback is set.
func (g *Generator) Generate(d Descriptor, includePathFallback bool) []strategy.Strategy {
	tag := strings.ToLower(strings.TrimSpace(d.Tag))
	text := strings.TrimSpace(d.Text)
	attrs := d.Attributes

	var list []strategy.Strategy
	if text != "" {
		list = append(list, strategy.NewTextExact(text, strategy.PriorityTextExact, tag))
		if role := strategy.InferRole(tag, attrs); role != "" {
			list = append(list, strategy.NewRoleText(text, role, strategy.PriorityRoleText, tag))
		}
	}
	if v := attrs["aria-label"]; v != "" {
		list = append(list, strategy.NewAriaLabel(v, strategy.PriorityAriaLabel, tag))
	}
	if v := attrs["placeholder"]; v != "" {
		list = append(list, strategy.NewPlaceholder(v, strategy.PriorityPlaceholder, tag))
	}
	if v := attrs["title"]; v != "" {
		list = append(list, strategy.NewTitle(v, strategy.PriorityTitle, tag))
	}
	if v := attrs["alt"]; v != "" {
		list = append(list, strategy.NewAltText(v, strategy.PriorityAltText, tag))
	}
	if utf8.RuneCountInString(text) > fuzzyMinTextLen {
		list = append(list, strategy.NewTextFuzzy(text, g.params.fuzzyThreshold, strategy.PriorityTextFuzzy, tag))
	}

	if includePathFallback {
		list = append(list, g.pathStrategies(tag, text, attrs, strings.TrimSpace(d.AbsolutePath))...)
	}

	list = strategy.Dedupe(strategy.SortByPriority(list))
	return strategy.Truncate(list, g.params.maxTotalStrategies)
}

func (g *Generator) pathStrategies(tag, text string, attrs map[string]string, absolutePath string) []strategy.Strategy {
	if !g.params.enablePathOptimization {
		if absolutePath != "" {
			return []strategy.Strategy{strategy.NewPath(absolutePath, strategy.FallbackPathPriority, tag)}
		}
		return fallbackStrategies(tag, text, attrs)
	}
	if absolutePath == "" {
		return fallbackStrategies(tag, text, attrs)
	}

	element := pathopt.Element{Tag: tag, Text: text, Attributes: attrs}
	alternatives, err := pathopt.Optimize(absolutePath, element, g.params.maxPathAlternatives)
	if err != nil {
		cause := metadata.CauseGenerationDegraded
		var optErr *pathopt.OptimizeError
		if errors.As(err, &optErr) && pathopt.MapOptimizeErrorToMetadataCause(optErr) == metadata.CauseInvariantViolation {
			cause = metadata.CauseInvariantViolation
		}
		g.metadataSink.RecordError(
			time.Now(),
			"generator",
			"Generator.Generate",
			cause,
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrPath, absolutePath),
			},
		)
		return fallbackStrategies(tag, text, attrs)
	}

	out := make([]strategy.Strategy, 0, len(alternatives))
	for i, expr := range alternatives {
		isAbsolute := expr == absolutePath
		name := pathopt.Classify(expr)
		if isAbsolute {
			name = pathopt.ClassAbsolute
		}
		out = append(out, strategy.NewOptimizedPath(expr, pathopt.Priority(expr, isAbsolute), tag, name, i))
	}
	return out
}

func fallbackStrategies(tag, text string, attrs map[string]string) []strategy.Strategy {
	expr, ok := FallbackExpression(tag, text, attrs)
	if !ok {
		return nil
	}
	return []strategy.Strategy{strategy.NewFallbackPath(expr, strategy.FallbackPathPriority, tag)}
}

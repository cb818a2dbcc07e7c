package workflow

import (
	"github.com/rohmanhakim/element-locator/internal/generator"
	"github.com/rohmanhakim/element-locator/internal/strategy"
)

// Workflow is a recorded sequence of steps.
type Workflow struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string `json:"version,omitempty" yaml:"version,omitempty"`
	Steps       []Step `json:"steps" yaml:"steps"`
}

// Step is one recorded action. Element and SelectorStrategies are set for
// steps that target an element.
type Step struct {
	Type               string                `json:"type" yaml:"type"`
	Description        string                `json:"description,omitempty" yaml:"description,omitempty"`
	TargetText         string                `json:"target_text,omitempty" yaml:"target_text,omitempty"`
	URL                string                `json:"url,omitempty" yaml:"url,omitempty"`
	Value              string                `json:"value,omitempty" yaml:"value,omitempty"`
	Element            *generator.Descriptor `json:"element,omitempty" yaml:"element,omitempty"`
	SelectorStrategies []strategy.Record     `json:"selectorStrategies,omitempty" yaml:"selectorStrategies,omitempty"`
}

// Strategies decodes the persisted strategies of the step.
func (s Step) Strategies() ([]strategy.Strategy, error) {
	return strategy.DecodeAll(s.SelectorStrategies)
}

// SetStrategies replaces the persisted strategies of the step.
func (s *Step) SetStrategies(list []strategy.Strategy) {
	s.SelectorStrategies = strategy.EncodeAll(list)
}

type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// DefaultMigratePattern matches the workflow files a directory migration
// converts.
const DefaultMigratePattern = "*.workflow.json"

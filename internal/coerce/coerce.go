// Package coerce turns free-text model replies into the fixed result shapes
// the dashboard renders. Model output is not guaranteed to be well formed, so
// every function here degrades to a presentation-safe value instead of failing.
package coerce

import (
	"encoding/json"
	"strings"

	"propinsight/server/internal/models"
)

// Stage records which step of the fallback chain produced a structured result.
type Stage int

const (
	StageDirect Stage = iota
	StageExtracted
	StageDefault
)

func (s Stage) String() string {
	switch s {
	case StageDirect:
		return "direct"
	case StageExtracted:
		return "extracted"
	default:
		return "default"
	}
}

type Result struct {
	Value models.Analysis
	Stage Stage
}

// Structured interprets raw as a JSON object. The whole text is tried first,
// then the span from the first '{' to the last '}', and finally fallback().
func Structured(raw string, fallback func() models.Analysis) Result {
	if value, ok := parseObject(raw); ok {
		return Result{Value: value, Stage: StageDirect}
	}
	if span, ok := objectSpan(raw); ok {
		if value, ok := parseObject(span); ok {
			return Result{Value: value, Stage: StageExtracted}
		}
	}
	return Result{Value: fallback(), Stage: StageDefault}
}

// Lines returns the non-blank lines of raw, trimmed, in their original order.
func Lines(raw string) []string {
	lines := []string{}
	for _, line := range strings.Split(raw, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// parseObject only accepts a JSON object; null, arrays and scalars fail.
func parseObject(text string) (models.Analysis, bool) {
	var value models.Analysis
	if err := json.Unmarshal([]byte(text), &value); err != nil || value == nil {
		return nil, false
	}
	return value, true
}

// objectSpan is the greedy match of {[\s\S]*}
func objectSpan(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

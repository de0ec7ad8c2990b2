package detector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/handoff/internal/adapters/detector"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		isTTY    bool
		ci       string
		expected detector.LogMode
	}{
		{name: "terminal", isTTY: true, expected: detector.ModePretty},
		{name: "terminal in CI", isTTY: true, ci: "true", expected: detector.ModeJSON},
		{name: "terminal with CI=1", isTTY: true, ci: "1", expected: detector.ModeJSON},
		{name: "CI=false is ignored", isTTY: true, ci: "false", expected: detector.ModePretty},
		{name: "pipe", isTTY: false, expected: detector.ModeJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, detector.Detect(tt.isTTY, tt.ci))
		})
	}
}

func TestDetectEnvironment_CI(t *testing.T) {
	t.Setenv("CI", "true")
	assert.Equal(t, detector.ModeJSON, detector.DetectEnvironment())
}

func TestResolveMode(t *testing.T) {
	assert.Equal(t, detector.ModePretty, detector.ResolveMode(detector.ModeJSON, "pretty"))
	assert.Equal(t, detector.ModeJSON, detector.ResolveMode(detector.ModePretty, "json"))
	assert.Equal(t, detector.ModeJSON, detector.ResolveMode(detector.ModeJSON, "auto"))
	assert.Equal(t, detector.ModePretty, detector.ResolveMode(detector.ModePretty, ""))
}

func TestLogMode_String(t *testing.T) {
	assert.Equal(t, "pretty", detector.ModePretty.String())
	assert.Equal(t, "json", detector.ModeJSON.String())
}

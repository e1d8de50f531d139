package coerce

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propinsight/server/internal/models"
)

func TestStructured(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		fallback func() models.Analysis
		stage    Stage
		expected models.Analysis
	}{
		{
			name:     "Whole reply is JSON",
			raw:      `{"trend":"stable","percentageChange":0,"insights":[],"recommendations":["Hold rents"]}`,
			fallback: TrendDefault,
			stage:    StageDirect,
			expected: models.Analysis{
				"trend":            "stable",
				"percentageChange": float64(0),
				"insights":         []interface{}{},
				"recommendations":  []interface{}{"Hold rents"},
			},
		},
		{
			name:     "JSON after leading prose",
			raw:      `Here is the result: {"trend":"increasing","percentageChange":5.2,"insights":["Rents rising"],"recommendations":["Raise rent"]}`,
			fallback: TrendDefault,
			stage:    StageExtracted,
			expected: models.Analysis{
				"trend":            "increasing",
				"percentageChange": 5.2,
				"insights":         []interface{}{"Rents rising"},
				"recommendations":  []interface{}{"Raise rent"},
			},
		},
		{
			name:     "JSON inside a markdown fence",
			raw:      "```json\n{\"competitivePosition\": \"moderate\", \"strengths\": [\"Lower rent\"]}\n```",
			fallback: CompetitorDefault,
			stage:    StageExtracted,
			expected: models.Analysis{
				"competitivePosition": "moderate",
				"strengths":           []interface{}{"Lower rent"},
			},
		},
		{
			name:     "Fields are not validated",
			raw:      `{"percentageChange":"5.2","unexpected":true}`,
			fallback: TrendDefault,
			stage:    StageDirect,
			expected: models.Analysis{"percentageChange": "5.2", "unexpected": true},
		},
		{
			name:     "Not JSON at all",
			raw:      "not json at all",
			fallback: CompetitorDefault,
			stage:    StageDefault,
			expected: CompetitorDefault(),
		},
		{
			name:     "Two objects make the greedy span invalid",
			raw:      `first {"a":1} then {"b":2}`,
			fallback: TrendDefault,
			stage:    StageDefault,
			expected: TrendDefault(),
		},
		{
			name:     "Braces in the wrong order",
			raw:      "} nothing here {",
			fallback: TrendDefault,
			stage:    StageDefault,
			expected: TrendDefault(),
		},
		{
			name:     "JSON null is not an object",
			raw:      "null",
			fallback: TrendDefault,
			stage:    StageDefault,
			expected: TrendDefault(),
		},
		{
			name:     "JSON array is not an object",
			raw:      `["Raise rent"]`,
			fallback: TrendDefault,
			stage:    StageDefault,
			expected: TrendDefault(),
		},
		{
			name:     "Empty reply",
			raw:      "",
			fallback: CompetitorDefault,
			stage:    StageDefault,
			expected: CompetitorDefault(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Structured(tt.raw, tt.fallback)
			assert.Equal(t, tt.stage, result.Stage)
			assert.Equal(t, tt.expected, result.Value)
		})
	}
}

func TestStructured_MatchesDirectParse(t *testing.T) {
	raws := []string{
		`{"competitivePosition":"strong","strengths":["Location"],"weaknesses":[],"opportunities":["Pet friendly units"],"threats":["New supply"],"strategies":["Add a gym"]}`,
		` {"trend":"decreasing","percentageChange":-1.5} `,
	}

	for _, raw := range raws {
		var direct models.Analysis
		require.NoError(t, json.Unmarshal([]byte(raw), &direct))
		assert.Equal(t, direct, Structured(raw, TrendDefault).Value)
	}
}

func TestStructured_DefaultIsStable(t *testing.T) {
	first := Structured("garbage", CompetitorDefault)
	first.Value["competitivePosition"] = "mutated by caller"

	second := Structured("garbage", CompetitorDefault)
	assert.Equal(t, CompetitorDefault(), second.Value)
	assert.Equal(t, "unknown", second.Value.String("competitivePosition", ""))
}

func TestLines(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{
			name:     "Numbered list with blank lines",
			raw:      "1. Raise rent\n\n2. Fix HVAC\n   \n3. Add amenities",
			expected: []string{"1. Raise rent", "2. Fix HVAC", "3. Add amenities"},
		},
		{
			name:     "Surrounding whitespace is trimmed",
			raw:      "  - Repaint units  \n\t- Renegotiate contracts\t",
			expected: []string{"- Repaint units", "- Renegotiate contracts"},
		},
		{
			name:     "Windows line endings",
			raw:      "First\r\nSecond\r\n",
			expected: []string{"First", "Second"},
		},
		{
			name:     "Empty reply",
			raw:      "",
			expected: []string{},
		},
		{
			name:     "Whitespace only",
			raw:      " \n\n\t\n",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := Lines(tt.raw)
			require.NotNil(t, lines)
			assert.Equal(t, tt.expected, lines)
		})
	}
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "direct", StageDirect.String())
	assert.Equal(t, "extracted", StageExtracted.String())
	assert.Equal(t, "default", StageDefault.String())
}

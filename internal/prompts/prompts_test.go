package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"propinsight/server/internal/models"
)

func TestBuildChatPrompt(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{name: "Plain question", message: "How do I raise rent?", want: "User query: How do I raise rent?\n"},
		{name: "Empty message", message: "", want: "User query: \n"},
		{name: "Format verbs are not expanded", message: "100%s done", want: "User query: 100%s done\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := BuildChatPrompt(tt.message)
			assert.True(t, strings.HasPrefix(prompt, "You are a helpful property management assistant named PropInsight."))
			assert.Contains(t, prompt, tt.want)
			assert.True(t, strings.HasSuffix(prompt, "Your response:"))
		})
	}
}

func TestBuildTrendPrompt(t *testing.T) {
	points := []models.MarketDataPoint{
		{ID: 1, Month: models.NewDate(2023, 1, 1), AvgPrice: 255000, AvgRent: 1850, VacancyRate: 0.05, InventoryCount: 120, AvgDaysOnMarket: 35},
	}

	prompt := BuildTrendPrompt(points)
	assert.Contains(t, prompt, `"month":"2023-01-01"`)
	assert.Contains(t, prompt, `"avgRent":1850`)
	assert.Contains(t, prompt, `"percentageChange": 5.2`)
	assert.Contains(t, prompt, `"recommendations": ["Recommendation 1", "Recommendation 2"]`)
	assert.Equal(t, prompt, BuildTrendPrompt(points), "prompt building must be deterministic")

	assert.Contains(t, BuildTrendPrompt(nil), "provide insights:\n[]\n")
}

func TestBuildRecommendationPrompt(t *testing.T) {
	property := models.Property{
		ID:            1,
		Name:          "Lakeside Apartments",
		Units:         24,
		Status:        models.StatusPendingRenewal,
		LastRenoDate:  models.NewDate(2022, 5, 15),
		OccupancyRate: 0.92,
	}

	prompt := BuildRecommendationPrompt(property)
	assert.Contains(t, prompt, `"name":"Lakeside Apartments"`)
	assert.Contains(t, prompt, `"status":"pending_renewal"`)
	assert.Contains(t, prompt, `"lastRenoDate":"2022-05-15"`)
	assert.Contains(t, prompt, "Provide 3-5 actionable recommendations, one per line.")
}

func TestBuildCompetitorPrompt(t *testing.T) {
	competitors := []models.Competitor{
		{ID: 1, Name: "Horizon Properties", Amenities: []string{"Pool", "Gym"}},
	}
	properties := []models.Property{{ID: 2, Name: "Highland Towers"}}

	prompt := BuildCompetitorPrompt(competitors, properties)
	mine := strings.Index(prompt, "Highland Towers")
	theirs := strings.Index(prompt, "Horizon Properties")
	assert.True(t, mine > 0 && theirs > mine, "own properties are listed before competitors")
	assert.Contains(t, prompt, `"amenities":["Pool","Gym"]`)
	assert.Contains(t, prompt, `"competitivePosition": "strong/moderate/weak"`)
	assert.Contains(t, prompt, `"strategies": ["Strategy 1", "Strategy 2", "Strategy 3"]`)
}

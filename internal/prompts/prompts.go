package prompts

import (
	"encoding/json"
	"fmt"

	"propinsight/server/internal/models"
)

const chatTemplate = `You are a helpful property management assistant named PropInsight.
You help users manage rental properties, track finances, analyze market trends, and suggest optimizations.
You should be friendly, professional, and knowledgeable about property management topics.
Provide concise, useful information and never claim to have access to specific user data unless explicitly provided in the conversation.
If you don't know something, acknowledge it and suggest alternative approaches.

User query: %s

Your response:`

const trendTemplate = `Analyze the following market trend data for rental properties and provide insights:
%s

Format your response as JSON with the following structure:
{
  "trend": "increasing/decreasing/stable",
  "percentageChange": 5.2,
  "insights": ["Insight 1", "Insight 2", "Insight 3"],
  "recommendations": ["Recommendation 1", "Recommendation 2"]
}`

const recommendationTemplate = `Based on the following property data, provide specific recommendations to optimize rental income and property management:
%s

Provide 3-5 actionable recommendations, one per line.`

const competitorTemplate = `Compare the following competitor data with my properties and suggest competitive strategies:

My properties:
%s

Competitors:
%s

Format your response as JSON with the following structure:
{
  "competitivePosition": "strong/moderate/weak",
  "strengths": ["Strength 1", "Strength 2"],
  "weaknesses": ["Weakness 1", "Weakness 2"],
  "opportunities": ["Opportunity 1", "Opportunity 2"],
  "threats": ["Threat 1", "Threat 2"],
  "strategies": ["Strategy 1", "Strategy 2", "Strategy 3"]
}`

// BuildChatPrompt wraps the operator's message in the assistant persona
func BuildChatPrompt(message string) string {
	return fmt.Sprintf(chatTemplate, message)
}

func BuildTrendPrompt(points []models.MarketDataPoint) string {
	return fmt.Sprintf(trendTemplate, encode(nonNil(points)))
}

func BuildRecommendationPrompt(property models.Property) string {
	return fmt.Sprintf(recommendationTemplate, encode(property))
}

func BuildCompetitorPrompt(competitors []models.Competitor, properties []models.Property) string {
	return fmt.Sprintf(competitorTemplate, encode(nonNil(properties)), encode(nonNil(competitors)))
}

// encode renders v as compact JSON. The models only hold plain values so
// marshalling cannot fail in practice; %v keeps the prompt usable if it does.
func encode(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

// nonNil makes an empty sequence render as [] rather than null
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

package coerce

import "propinsight/server/internal/models"

const RecommendationUnavailable = "Could not generate property recommendations at this time."

// TrendDefault is shown when no market trend analysis could be obtained
func TrendDefault() models.Analysis {
	return models.Analysis{
		"trend":           "unknown",
		"insights":        []string{"Could not analyze market trends at this time."},
		"recommendations": []string{"Try again later."},
	}
}

// CompetitorDefault is shown when no competitor analysis could be obtained
func CompetitorDefault() models.Analysis {
	return models.Analysis{
		"competitivePosition": "unknown",
		"strengths":           []string{},
		"weaknesses":          []string{},
		"opportunities":       []string{},
		"threats":             []string{},
		"strategies":          []string{"Could not analyze competitor data at this time."},
	}
}

func RecommendationDefault() []string {
	return []string{RecommendationUnavailable}
}

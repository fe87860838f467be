package tripplan

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"travelmate/internal/domain"
)

// StaticPlanner returns a canned plan shaped around the request. It backs
// the OpenAI planner as its fallback and serves as the sole planner when no
// API key is configured.
type StaticPlanner struct{}

var titleCaser = cases.Title(language.English)

func (StaticPlanner) Plan(_ context.Context, req Request) (*domain.TripPlan, error) {
	destination := strings.TrimSpace(req.Destination)
	if destination == "" {
		destination = "Tokyo, Japan"
	} else {
		destination = titleCaser.String(destination)
	}

	plan := &domain.TripPlan{
		Destination: destination,
		Duration:    fallbackValue(req.Duration, "7 days"),
		Budget:      fallbackValue(req.Budget, "$2000-3000"),
		Travelers:   fallbackValue(req.Travelers, "2 people"),
		Interests:   splitInterests(req.Interests),
		Itinerary: []domain.ItineraryDay{{
			Day:   1,
			Title: "AI-Optimized Arrival & City Exploration",
			Activities: []string{
				"Airport transfer with AI route optimization",
				"Hotel check-in at AI-selected location",
				"Local area exploration with crowd prediction",
				"Evening dining at AI-recommended restaurant",
			},
			Accommodation:   "AI-selected city center hotel with optimal transport links",
			Meals:           []string{"AI-curated welcome dinner with local specialties"},
			EstimatedCost:   "$180-220",
			AIOptimizations: []string{
				"Route optimized to avoid peak traffic hours",
				"Hotel selected for 25% cost savings vs tourist areas",
				"Restaurant timing optimized for shorter wait times",
			},
		}},
		TotalEstimatedCost: "$1600-2200 (15% savings with AI optimization)",
		BestTimeToVisit:    "AI analysis suggests optimal weather and pricing conditions",
		TravelTips: []string{
			"AI suggests booking accommodations 2 weeks in advance for best rates",
			"Download AI-powered translation and navigation apps",
			"Use blockchain payments at participating venues for additional discounts",
		},
		AIInsights: &domain.AIInsights{
			CostSavings:      "AI optimization saved $300-500 compared to traditional planning",
			TimeOptimization: "Route optimization saves 2.5 hours of travel time daily",
			HiddenGems: []string{
				"AI-discovered local market with 95% positive sentiment analysis",
				"Hidden viewpoint recommended by local data analysis",
			},
			WeatherForecast: "AI predicts 80% sunny days during your visit",
		},
	}
	if req.BlockchainIntegration {
		plan.Blockchain = &domain.BlockchainPlan{
			EstimatedGasFees:     "~$12-20 for all transactions during trip",
			SmartContractSavings: "Group payments save 8-15% on accommodations",
			GroupPaymentBenefits: []string{
				"Transparent fund pooling with smart contracts",
				"Automatic expense splitting and refunds",
				"Crypto rewards at participating venues",
			},
		}
	}
	return plan, nil
}

func fallbackValue(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func splitInterests(interests string) []string {
	if strings.TrimSpace(interests) == "" {
		return []string{"Culture", "Food", "Technology"}
	}
	parts := strings.Split(interests, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"Culture", "Food", "Technology"}
	}
	return out
}

package domain

// TripPlan is the canonical trip-plan contract returned by the planner
// providers. Field names follow the public API wire format.
type TripPlan struct {
	Destination        string          `json:"destination"`
	Duration           string          `json:"duration"`
	Budget             string          `json:"budget"`
	Travelers          string          `json:"travelers"`
	Interests          []string        `json:"interests"`
	Itinerary          []ItineraryDay  `json:"itinerary"`
	TotalEstimatedCost string          `json:"total_estimated_cost"`
	BestTimeToVisit    string          `json:"best_time_to_visit"`
	TravelTips         []string        `json:"travel_tips"`
	AIInsights         *AIInsights     `json:"ai_insights,omitempty"`
	Blockchain         *BlockchainPlan `json:"blockchain_integration,omitempty"`
}

// ItineraryDay is one day of a planned trip.
type ItineraryDay struct {
	Day             int      `json:"day"`
	Title           string   `json:"title"`
	Activities      []string `json:"activities"`
	Accommodation   string   `json:"accommodation"`
	Meals           []string `json:"meals"`
	EstimatedCost   string   `json:"estimated_cost"`
	AIOptimizations []string `json:"ai_optimizations,omitempty"`
}

// AIInsights summarizes optimization findings attached to a plan.
type AIInsights struct {
	CostSavings      string   `json:"cost_savings"`
	TimeOptimization string   `json:"time_optimization"`
	HiddenGems       []string `json:"hidden_gems"`
	WeatherForecast  string   `json:"weather_forecast"`
}

// BlockchainPlan summarizes group-payment benefits attached to a plan.
type BlockchainPlan struct {
	EstimatedGasFees     string   `json:"estimated_gas_fees"`
	SmartContractSavings string   `json:"smart_contract_savings"`
	GroupPaymentBenefits []string `json:"group_payment_benefits"`
}

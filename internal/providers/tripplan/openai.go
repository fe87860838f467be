package tripplan

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"travelmate/internal/domain"
)

const openAIDefaultTimeout = 15 * time.Second

// OpenAIOptions configures the OpenAI-backed planner.
type OpenAIOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
	Fallback   Planner
	OnFallback func(reason string, err error)
}

// OpenAIPlanner calls an OpenAI-compatible chat-completions endpoint and
// parses the returned JSON into a trip plan. Any transport, status, or
// parse failure routes to the fallback planner.
type OpenAIPlanner struct {
	apiKey     string
	model      string
	baseURL    string
	client     *http.Client
	fallback   Planner
	onFallback func(reason string, err error)
}

type openAIChatRequest struct {
	Model          string          `json:"model"`
	Messages       []openAIMessage `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	ResponseFormat *openAIFormat   `json:"response_format,omitempty"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIFormat struct {
	Type string `json:"type"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// NewOpenAIPlanner validates the options and builds a planner.
func NewOpenAIPlanner(opts OpenAIOptions) (*OpenAIPlanner, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("openai api key is required")
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = "gpt-4o"
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: openAIDefaultTimeout}
	}
	fallback := opts.Fallback
	if fallback == nil {
		fallback = StaticPlanner{}
	}
	return &OpenAIPlanner{
		apiKey:     strings.TrimSpace(opts.APIKey),
		model:      model,
		baseURL:    baseURL,
		client:     client,
		fallback:   fallback,
		onFallback: opts.OnFallback,
	}, nil
}

func (p *OpenAIPlanner) Plan(ctx context.Context, req Request) (*domain.TripPlan, error) {
	payload := openAIChatRequest{
		Model:       p.model,
		Temperature: 0.6,
		ResponseFormat: &openAIFormat{
			Type: "json_object",
		},
		Messages: []openAIMessage{
			{Role: "system", Content: plannerSystemPrompt},
			{Role: "user", Content: buildPlanPrompt(req)},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return p.useFallback(ctx, req, "encode_request", err)
	}
	endpoint := fmt.Sprintf("%s/chat/completions", p.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return p.useFallback(ctx, req, "build_request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	resp, err := p.client.Do(httpReq)
	if err != nil {
		return p.useFallback(ctx, req, "http_request", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		return p.useFallback(ctx, req, fmt.Sprintf("http_%d", resp.StatusCode), fmt.Errorf("openai status %d", resp.StatusCode))
	}
	var out openAIChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return p.useFallback(ctx, req, "decode_response", err)
	}
	if len(out.Choices) == 0 {
		return p.useFallback(ctx, req, "empty_choices", errors.New("no choices"))
	}
	text := strings.TrimSpace(out.Choices[0].Message.Content)
	if text == "" {
		return p.useFallback(ctx, req, "empty_response", errors.New("empty response"))
	}
	var plan domain.TripPlan
	if err := json.Unmarshal([]byte(text), &plan); err != nil {
		return p.useFallback(ctx, req, "parse_payload", err)
	}
	if plan.Destination == "" || len(plan.Itinerary) == 0 {
		return p.useFallback(ctx, req, "incomplete_payload", errors.New("missing destination or itinerary"))
	}
	return &plan, nil
}

func (p *OpenAIPlanner) useFallback(ctx context.Context, req Request, reason string, err error) (*domain.TripPlan, error) {
	if p.onFallback != nil {
		p.onFallback(reason, err)
	}
	return p.fallback.Plan(ctx, req)
}

const plannerSystemPrompt = `You are an advanced AI travel planner with expertise in blockchain technology, cost optimization, and real-time data analysis. Create detailed, practical trip itineraries. Respond only with a JSON object with keys: destination, duration, budget, travelers, interests, itinerary (array of {day, title, activities, accommodation, meals, estimated_cost, ai_optimizations}), total_estimated_cost, best_time_to_visit, travel_tips, ai_insights ({cost_savings, time_optimization, hidden_gems, weather_forecast}), blockchain_integration ({estimated_gas_fees, smart_contract_savings, group_payment_benefits}).`

func buildPlanPrompt(req Request) string {
	var b strings.Builder
	b.WriteString("Create a comprehensive AI-optimized trip plan for:\n")
	fmt.Fprintf(&b, "- Destination: %s\n", req.Destination)
	fmt.Fprintf(&b, "- Duration: %s\n", req.Duration)
	fmt.Fprintf(&b, "- Budget: %s\n", req.Budget)
	fmt.Fprintf(&b, "- Number of travelers: %s\n", req.Travelers)
	fmt.Fprintf(&b, "- Interests: %s\n", req.Interests)
	fmt.Fprintf(&b, "- Additional preferences: %s\n", req.AdditionalPreferences)
	fmt.Fprintf(&b, "- AI Optimization Level: %s\n", req.OptimizationLevel)
	fmt.Fprintf(&b, "- Blockchain Integration: %t\n", req.BlockchainIntegration)
	b.WriteString("Include daily AI optimizations, cost savings analysis, hidden gems, weather predictions, and group payment benefits.")
	return b.String()
}

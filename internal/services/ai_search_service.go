package services

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/juanqui-art/inmo-app-sub002/internal/constants"
	"github.com/juanqui-art/inmo-app-sub002/internal/dtos"
	"github.com/juanqui-art/inmo-app-sub002/internal/models"
	"github.com/juanqui-art/inmo-app-sub002/internal/repositories"
	"github.com/juanqui-art/inmo-app-sub002/internal/utils"
)

// parsedQuery mirrors the JSON the model returns from extract_search_filters.
type parsedQuery struct {
	City         string   `json:"city"`
	Type         string   `json:"type"`
	Transaction  string   `json:"transaction"`
	MinPrice     float64  `json:"min_price"`
	MaxPrice     float64  `json:"max_price"`
	MinBedrooms  int      `json:"min_bedrooms"`
	MinBathrooms int      `json:"min_bathrooms"`
	MinAreaM2    float64  `json:"min_area_m2"`
	Features     []string `json:"features"`
	Confidence   float64  `json:"confidence"`
}

// AISearchService turns free-text queries into structured catalog
// filters via GPT function calling. A nil client, a failed call, or a
// parse below the confidence floor all degrade to keyword search.
type AISearchService interface {
	Search(ctx context.Context, query string) (*dtos.AISearchResponse, error)
}

type aiSearchService struct {
	client        *openai.Client
	searchService SearchService
}

// NewAISearchService creates the service. Pass an empty apiKey to
// disable model calls entirely.
func NewAISearchService(apiKey string, searchService SearchService) AISearchService {
	if apiKey == "" {
		return &aiSearchService{client: nil, searchService: searchService}
	}
	c := openai.NewClient(option.WithAPIKey(apiKey))
	return &aiSearchService{client: &c, searchService: searchService}
}

func (s *aiSearchService) Search(ctx context.Context, query string) (*dtos.AISearchResponse, error) {
	if s.client == nil {
		return s.keywordFallback(ctx, query, 0)
	}

	parsed, err := s.parseQuery(ctx, query)
	if err != nil {
		utils.Logger.WithError(err).Warn("AI query parse failed, falling back to keyword search")
		return s.keywordFallback(ctx, query, 0)
	}

	if parsed.Confidence < constants.AISearchMinConfidence {
		utils.Logger.Debugf("AI parse confidence %.2f below floor, falling back to keyword search", parsed.Confidence)
		return s.keywordFallback(ctx, query, parsed.Confidence)
	}

	filter, filters := buildFilter(parsed)
	props, total, err := s.searchService.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &dtos.AISearchResponse{
		Properties:     make([]dtos.Property, 0, len(props)),
		Total:          total,
		AIParseApplied: true,
		Confidence:     parsed.Confidence,
		Filters:        filters,
	}
	for _, p := range props {
		resp.Properties = append(resp.Properties, dtos.NewPropertyFromModel(p))
	}
	return resp, nil
}

func (s *aiSearchService) keywordFallback(ctx context.Context, query string, confidence float64) (*dtos.AISearchResponse, error) {
	props, total, err := s.searchService.Search(ctx, repositories.PropertyFilter{
		Keyword: &query,
		Sort:    repositories.SortNewest,
	})
	if err != nil {
		return nil, err
	}

	resp := &dtos.AISearchResponse{
		Properties:     make([]dtos.Property, 0, len(props)),
		Total:          total,
		AIParseApplied: false,
		Confidence:     confidence,
	}
	for _, p := range props {
		resp.Properties = append(resp.Properties, dtos.NewPropertyFromModel(p))
	}
	return resp, nil
}

// parseQuery forces a strict function call so the reply is always a
// well-formed JSON document.
func (s *aiSearchService) parseQuery(ctx context.Context, query string) (*parsedQuery, error) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"city":          map[string]string{"type": "string"},
			"type":          map[string]any{"type": "string", "enum": []string{"", "HOUSE", "APARTMENT", "LAND", "COMMERCIAL", "OFFICE"}},
			"transaction":   map[string]any{"type": "string", "enum": []string{"", "SALE", "RENT"}},
			"min_price":     map[string]string{"type": "number"},
			"max_price":     map[string]string{"type": "number"},
			"min_bedrooms":  map[string]string{"type": "integer"},
			"min_bathrooms": map[string]string{"type": "integer"},
			"min_area_m2":   map[string]string{"type": "number"},
			"features": map[string]any{
				"type":  "array",
				"items": map[string]string{"type": "string"},
			},
			"confidence": map[string]string{"type": "number"},
		},
		"required": []string{
			"city", "type", "transaction",
			"min_price", "max_price",
			"min_bedrooms", "min_bathrooms", "min_area_m2",
			"features", "confidence",
		},
		"additionalProperties": false,
	}

	fn := shared.FunctionDefinitionParam{
		Name:        "extract_search_filters",
		Description: openai.String("Extract structured real estate search filters from a natural language query."),
		Strict:      openai.Bool(true),
		Parameters:  schema,
	}

	req := openai.ChatCompletionNewParams{
		Model: shared.ChatModelGPT4oMini,
		Messages: []openai.ChatCompletionMessageParamUnion{{
			OfUser: &openai.ChatCompletionUserMessageParam{
				Content: openai.ChatCompletionUserMessageParamContentUnion{
					OfString: openai.String(fmt.Sprintf(`Parse this property search query.

Return JSON by calling extract_search_filters(strict).
Rules:
1. Use empty string / 0 / empty array for anything the query does not mention.
2. Prices are absolute amounts in the local currency ("under 200k" => max_price=200000).
3. features are short lowercase tags like "pool", "garage", "garden".
4. confidence is 0.0-1.0: how sure you are the extracted filters capture the query's intent.

Query: %q`, query)),
				},
			},
		}},
		Tools: []openai.ChatCompletionToolParam{{
			Function: fn,
		}},
		ToolChoice: openai.ChatCompletionToolChoiceOptionUnionParam{
			OfChatCompletionNamedToolChoice: &openai.ChatCompletionNamedToolChoiceParam{
				Function: openai.ChatCompletionNamedToolChoiceFunctionParam{
					Name: "extract_search_filters",
				},
			},
		},
	}

	resp, err := s.client.Chat.Completions.New(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 || len(resp.Choices[0].Message.ToolCalls) == 0 {
		return nil, fmt.Errorf("openai: no function call returned")
	}

	var out parsedQuery
	if err := json.Unmarshal(
		[]byte(resp.Choices[0].Message.ToolCalls[0].Function.Arguments),
		&out,
	); err != nil {
		return nil, fmt.Errorf("unmarshal parsed query: %w", err)
	}

	return &out, nil
}

// buildFilter maps a parse onto the repository filter, skipping zero
// values, and mirrors it into the response DTO.
func buildFilter(p *parsedQuery) (repositories.PropertyFilter, *dtos.ParsedFilters) {
	f := repositories.PropertyFilter{Sort: repositories.SortNewest}
	d := &dtos.ParsedFilters{}

	if p.City != "" {
		f.City = utils.Ptr(p.City)
		d.City = utils.Ptr(p.City)
	}
	if p.Type != "" {
		t := models.PropertyType(p.Type)
		f.Type = &t
		d.Type = utils.Ptr(p.Type)
	}
	if p.Transaction != "" {
		tr := models.TransactionType(p.Transaction)
		f.Transaction = &tr
		d.Transaction = utils.Ptr(p.Transaction)
	}
	if p.MinPrice > 0 {
		f.MinPrice = utils.Ptr(p.MinPrice)
		d.MinPrice = utils.Ptr(p.MinPrice)
	}
	if p.MaxPrice > 0 {
		f.MaxPrice = utils.Ptr(p.MaxPrice)
		d.MaxPrice = utils.Ptr(p.MaxPrice)
	}
	if p.MinBedrooms > 0 {
		f.MinBedrooms = utils.Ptr(p.MinBedrooms)
		d.MinBedrooms = utils.Ptr(p.MinBedrooms)
	}
	if p.MinBathrooms > 0 {
		f.MinBathrooms = utils.Ptr(p.MinBathrooms)
		d.MinBathrooms = utils.Ptr(p.MinBathrooms)
	}
	if p.MinAreaM2 > 0 {
		f.MinAreaM2 = utils.Ptr(p.MinAreaM2)
		d.MinAreaM2 = utils.Ptr(p.MinAreaM2)
	}
	if len(p.Features) > 0 {
		f.Features = p.Features
		d.Features = p.Features
	}

	return f, d
}

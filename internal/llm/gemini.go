package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// GeminiProvider generates through the Gemini API.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider returns a provider for cfg.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &GeminiProvider{client: client, model: resolveModel(cfg.Model)}, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	return generate(ctx, req, p.complete)
}

func (p *GeminiProvider) ModelID() string { return p.model }

func (p *GeminiProvider) complete(ctx context.Context, req Request) (completion, error) {
	conf := &genai.GenerateContentConfig{MaxOutputTokens: int32(req.MaxTokens)}
	if req.Temperature > 0 {
		temp := float32(req.Temperature)
		conf.Temperature = &temp
	}
	if req.System != "" {
		conf.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.System}}}
	}
	if req.Schema != nil {
		conf.ResponseMIMEType = "application/json"
		conf.ResponseSchema = geminiSchema(req.Schema.Definition)
	}

	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := "user"
		if m.Role == RoleAssistant {
			role = "model"
		}
		contents = append(contents, &genai.Content{Role: role, Parts: []*genai.Part{{Text: m.Content}}})
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, contents, conf)
	if err != nil {
		return completion{}, geminiError(err)
	}

	c := completion{text: result.Text(), model: p.model}
	if result.UsageMetadata != nil {
		c.usage = Usage{
			InputTokens:  int(result.UsageMetadata.PromptTokenCount),
			OutputTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int(result.UsageMetadata.TotalTokenCount),
		}
	}
	if len(result.Candidates) > 0 {
		c.truncated = result.Candidates[0].FinishReason == "MAX_TOKENS"
	}
	return c, nil
}

func geminiError(err error) error {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		return fromStatus(apiErr.Code, 0, err)
	}
	return &ErrProviderUnavailable{Err: err}
}

var geminiTypes = map[string]genai.Type{
	"string":  genai.TypeString,
	"number":  genai.TypeNumber,
	"integer": genai.TypeInteger,
	"boolean": genai.TypeBoolean,
	"array":   genai.TypeArray,
	"object":  genai.TypeObject,
}

// geminiSchema converts the JSON Schema subset used for question batches
// into Gemini's own schema type. Keywords Gemini lacks are dropped.
func geminiSchema(def map[string]any) *genai.Schema {
	s := &genai.Schema{Type: genai.TypeString}
	for key, v := range def {
		switch key {
		case "type":
			if t, ok := geminiTypes[fmt.Sprint(v)]; ok {
				s.Type = t
			}
		case "description":
			s.Description, _ = v.(string)
		case "properties":
			props, _ := v.(map[string]any)
			s.Properties = make(map[string]*genai.Schema, len(props))
			for name, p := range props {
				if sub, ok := p.(map[string]any); ok {
					s.Properties[name] = geminiSchema(sub)
				}
			}
		case "items":
			if sub, ok := v.(map[string]any); ok {
				s.Items = geminiSchema(sub)
			}
		case "required":
			s.Required = stringList(v)
		case "enum":
			s.Enum = stringList(v)
		case "minItems":
			s.MinItems = int64Ptr(v)
		case "maxItems":
			s.MaxItems = int64Ptr(v)
		}
	}
	return s
}

// stringList accepts schema lists built in Go or decoded from JSON.
func stringList(v any) []string {
	switch list := v.(type) {
	case []string:
		return append([]string(nil), list...)
	case []any:
		out := make([]string, 0, len(list))
		for _, e := range list {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func int64Ptr(v any) *int64 {
	var n int64
	switch x := v.(type) {
	case int:
		n = int64(x)
	case int64:
		n = x
	case float64:
		n = int64(x)
	default:
		return nil
	}
	return &n
}

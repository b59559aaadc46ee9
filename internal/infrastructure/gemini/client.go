package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gdugdh24/mentorlink-backend/internal/domain"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const modelName = "gemini-1.5-flash"

var ErrEmptyResponse = errors.New("gemini returned no content")

type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is empty")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.7)
	model.ResponseMIMEType = "application/json"

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// GenerateBios asks the model for one bio per tone.
func (c *GeminiClient) GenerateBios(ctx context.Context, req domain.BioRequest) (map[string]string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(bioPrompt(req)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate bios: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	return parseBios(sb.String())
}

func bioPrompt(req domain.BioRequest) string {
	role := "mentee looking for guidance"
	if req.Role == domain.RoleMentor {
		role = "mentor offering guidance"
	}

	return fmt.Sprintf(`
		Write short profile bios for a mentorship platform user.
		Name: %s
		Role: %s
		Interests: %s
		Industry: %s
		City: %s
		Experience: %s

		Task: Write three bios in first person, at most 300 characters each.
		Output: a JSON object with the keys %q, %q and %q.
	`,
		req.FirstName, role, strings.Join(req.Interests, ", "), req.Industry, req.City, req.ExperienceLevel,
		domain.BioToneProfessional, domain.BioToneFriendly, domain.BioToneConcise,
	)
}

// parseBios decodes the model output, tolerating a markdown code fence.
func parseBios(text string) (map[string]string, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var raw map[string]string
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse bios: %w", err)
	}

	bios := make(map[string]string, len(raw))
	for tone, bio := range raw {
		if bio = strings.TrimSpace(bio); bio != "" {
			bios[tone] = bio
		}
	}
	if len(bios) == 0 {
		return nil, ErrEmptyResponse
	}
	return bios, nil
}

package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go-candidate-backend/pkg/logger"
)

// Extractor turns free CV text into a structured candidate payload via the
// external completion endpoint. A single attempt is made per call; failures
// surface immediately and are never retried here.
type Extractor interface {
	ExtractProfile(ctx context.Context, cvText string) (*CandidateData, error)
}

const extractionPrompt = `You are an information extraction assistant.
TASK:
- Extract candidate's data from the given CV text.
- If a field is missing or cannot be identified, set its value to "N/A".
- Keep the extracted data in the same language as the CV text.
- Return strictly in this JSON format, with no explanations or text outside the JSON:

{
  "email": "",
  "phone": "",
  "firstName": "",
  "lastName": "",
  "address": "",
  "education": [{"level": "", "institution": "", "period": ""}],
  "experience": [{"title": "", "company": "", "period": ""}],
  "skills": [{"name": ""}],
  "languages": [{"language": "", "level": ""}]
}

CV text:
`

type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// ExtractProfile sends the extraction prompt at temperature 0 and parses the
// strict-JSON reply into a CandidateData payload.
func (c *Client) ExtractProfile(ctx context.Context, cvText string) (*CandidateData, error) {
	reqBody := ChatCompletionRequest{
		Model: c.model,
		Messages: []ChatMessage{
			{Role: "user", Content: extractionPrompt + cvText},
		},
		Temperature: 0,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create completion request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call completion endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read completion response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("completion endpoint returned status %d", resp.StatusCode)
	}

	var completion ChatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return nil, fmt.Errorf("decode completion response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("completion endpoint returned no choices")
	}

	content := completion.Choices[0].Message.Content
	var data CandidateData
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &data); err != nil {
		return nil, fmt.Errorf("model reply is not valid profile JSON: %w", err)
	}

	logger.Log.Debug("CV extraction completed",
		"firstName", data.FirstName, "lastName", data.LastName,
		"educations", len(data.Education), "experiences", len(data.Experience))

	return &data, nil
}

// stripCodeFence tolerates models that wrap the JSON document in a markdown
// code fence despite the prompt.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

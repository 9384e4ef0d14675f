package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const targetAspectRatio = "16:9"

const adviceSystemInstruction = `You are an expert interior design consultant named Lumina.
You help users refine their room designs. If they ask about furniture, provide shoppable links using Google Search grounding.
Keep advice professional, creative, and practical.`

// AdviceFallback is returned verbatim when the service answers without text.
const AdviceFallback = "I'm sorry, I couldn't process that request."

const defaultSourceTitle = "Related Source"

// Client calls the Gemini generateContent endpoint. One request per
// operation, no retries, no caching; the http client's timeout is the only
// deadline this layer adds.
type Client struct {
	BaseURL    string
	APIKey     string
	ImageModel string
	TextModel  string
	HTTPClient *http.Client
}

func NewClient(baseURL, apiKey, imageModel, textModel string) *Client {
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}
	return &Client{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		ImageModel: imageModel,
		TextModel:  textModel,
		HTTPClient: &http.Client{Timeout: 90 * time.Second},
	}
}

// GenerateImage synthesizes a restyled room from the uploaded photo and a
// style directive. The result is a data URL rebuilt from the first inline
// image part of the response.
func (c *Client) GenerateImage(ctx context.Context, imageDataURL, directive string) (string, error) {
	out, err := c.transformImage(ctx, imageDataURL, directive)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return out, nil
}

// EditImage applies a free-text edit to the most recent generated image.
func (c *Client) EditImage(ctx context.Context, imageDataURL, directive string) (string, error) {
	out, err := c.transformImage(ctx, imageDataURL, directive)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEditFailed, err)
	}
	return out, nil
}

func (c *Client) transformImage(ctx context.Context, imageDataURL, directive string) (string, error) {
	if strings.TrimSpace(directive) == "" {
		return "", errors.New("directive is empty")
	}
	mimeType, payload, err := splitDataURL(imageDataURL)
	if err != nil {
		return "", err
	}

	req := generateReq{
		Contents: []wireContent{{
			Role: "user",
			Parts: []wirePart{
				{InlineData: &wireInlineData{MimeType: mimeType, Data: payload}},
				{Text: directive},
			},
		}},
		GenerationConfig: &wireGenConfig{
			ImageConfig: &wireImageConfig{AspectRatio: targetAspectRatio},
		},
	}

	resp, err := c.generateContent(ctx, c.ImageModel, req)
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) > 0 {
		for _, part := range resp.Candidates[0].Content.Parts {
			if part.InlineData != nil && part.InlineData.Data != "" {
				return makeDataURL(part.InlineData.MimeType, part.InlineData.Data), nil
			}
		}
	}
	return "", errors.New("no image part in response")
}

// Advise replays the prior turns plus the new message with web-search
// grounding enabled. A response without text is not an error; the fixed
// fallback string stands in. Missing citations yield an empty source list.
func (c *Client) Advise(ctx context.Context, message string, history []Turn) (string, []Source, error) {
	contents := make([]wireContent, 0, len(history)+1)
	for _, t := range history {
		contents = append(contents, wireContent{
			Role:  t.Role,
			Parts: []wirePart{{Text: t.Text}},
		})
	}
	contents = append(contents, wireContent{
		Role:  "user",
		Parts: []wirePart{{Text: message}},
	})

	req := generateReq{
		Contents: contents,
		SystemInstruction: &wireContent{
			Parts: []wirePart{{Text: adviceSystemInstruction}},
		},
		Tools: []wireTool{{GoogleSearch: &struct{}{}}},
	}

	resp, err := c.generateContent(ctx, c.TextModel, req)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrAdviceFailed, err)
	}

	text, sources := extractAdvice(resp)
	return text, sources, nil
}

func extractAdvice(resp *generateResp) (string, []Source) {
	var b strings.Builder
	sources := []Source{}

	if len(resp.Candidates) > 0 {
		cand := resp.Candidates[0]
		for _, part := range cand.Content.Parts {
			b.WriteString(part.Text)
		}
		if cand.GroundingMetadata != nil {
			for _, chunk := range cand.GroundingMetadata.GroundingChunks {
				if chunk.Web == nil {
					continue
				}
				title := chunk.Web.Title
				if title == "" {
					title = defaultSourceTitle
				}
				sources = append(sources, Source{Title: title, URI: chunk.Web.URI})
			}
		}
	}

	text := b.String()
	if text == "" {
		text = AdviceFallback
	}
	return text, sources
}

func (c *Client) generateContent(ctx context.Context, model string, body generateReq) (*generateResp, error) {
	if c.HTTPClient == nil {
		return nil, errors.New("http client is nil")
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, errors.New("api key is required")
	}
	model = strings.TrimSpace(model)
	if model == "" {
		return nil, errors.New("model is required")
	}

	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", strings.TrimRight(c.BaseURL, "/"), model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		msg := strings.TrimSpace(string(raw))
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("gemini: %s", msg)
	}

	var decoded generateResp
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, err
	}
	if decoded.Error != nil && decoded.Error.Message != "" {
		return nil, errors.New(decoded.Error.Message)
	}
	return &decoded, nil
}

package genai

import "context"

// Turn is one role-tagged text exchange replayed to the advice call.
// Role is "user" or "model", matching the service's content roles.
type Turn struct {
	Role string
	Text string
}

// Source is a web citation attached to an advice response.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// Generator is the surface the studio service depends on. *Client is the
// real implementation; tests substitute fakes.
type Generator interface {
	GenerateImage(ctx context.Context, imageDataURL, directive string) (string, error)
	EditImage(ctx context.Context, imageDataURL, directive string) (string, error)
	Advise(ctx context.Context, message string, history []Turn) (string, []Source, error)
}

// Wire shapes for the generateContent endpoint.

type generateReq struct {
	Contents          []wireContent  `json:"contents"`
	SystemInstruction *wireContent   `json:"systemInstruction,omitempty"`
	Tools             []wireTool     `json:"tools,omitempty"`
	GenerationConfig  *wireGenConfig `json:"generationConfig,omitempty"`
}

type wireContent struct {
	Role  string     `json:"role,omitempty"`
	Parts []wirePart `json:"parts"`
}

type wirePart struct {
	Text       string          `json:"text,omitempty"`
	InlineData *wireInlineData `json:"inlineData,omitempty"`
}

type wireInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type wireTool struct {
	GoogleSearch *struct{} `json:"googleSearch,omitempty"`
}

type wireGenConfig struct {
	ImageConfig *wireImageConfig `json:"imageConfig,omitempty"`
}

type wireImageConfig struct {
	AspectRatio string `json:"aspectRatio,omitempty"`
}

type generateResp struct {
	Candidates []struct {
		Content           wireContent `json:"content"`
		GroundingMetadata *struct {
			GroundingChunks []struct {
				Web *struct {
					URI   string `json:"uri"`
					Title string `json:"title"`
				} `json:"web"`
			} `json:"groundingChunks"`
		} `json:"groundingMetadata"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

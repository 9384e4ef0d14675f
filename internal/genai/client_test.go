package genai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	c := NewClient(ts.URL, "test-key", "image-model", "text-model")
	return c, ts
}

func respondJSON(t *testing.T, w http.ResponseWriter, body string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write([]byte(body)); err != nil {
		t.Fatalf("write response: %v", err)
	}
}

func TestGenerateImage_ReturnsFirstInlineImagePart(t *testing.T) {
	var got generateReq
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/models/image-model:generateContent") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		respondJSON(t, w, `{
			"candidates": [{"content": {"parts": [
				{"text": "here is your room"},
				{"inlineData": {"mimeType": "image/webp", "data": "RESULT"}}
			]}}]
		}`)
	})

	out, err := c.GenerateImage(context.Background(), "data:image/png;base64,SRC", "make it scandinavian")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if out != "data:image/webp;base64,RESULT" {
		t.Fatalf("out = %q", out)
	}

	// request carries the stripped payload, the directive, and the fixed
	// target aspect ratio
	if len(got.Contents) != 1 || len(got.Contents[0].Parts) != 2 {
		t.Fatalf("request contents = %+v", got.Contents)
	}
	img := got.Contents[0].Parts[0].InlineData
	if img == nil || img.Data != "SRC" || img.MimeType != "image/png" {
		t.Fatalf("inline data = %+v", img)
	}
	if got.Contents[0].Parts[1].Text != "make it scandinavian" {
		t.Fatalf("directive part = %+v", got.Contents[0].Parts[1])
	}
	if got.GenerationConfig == nil || got.GenerationConfig.ImageConfig == nil ||
		got.GenerationConfig.ImageConfig.AspectRatio != "16:9" {
		t.Fatalf("generation config = %+v", got.GenerationConfig)
	}
}

func TestGenerateImage_NoImagePartFails(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(t, w, `{"candidates": [{"content": {"parts": [{"text": "sorry, text only"}]}}]}`)
	})

	_, err := c.GenerateImage(context.Background(), "data:image/png;base64,SRC", "directive")
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("err = %v, want ErrGenerationFailed", err)
	}
}

func TestEditImage_TransportErrorFails(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := c.EditImage(context.Background(), "data:image/png;base64,SRC", "remove the chair")
	if !errors.Is(err, ErrEditFailed) {
		t.Fatalf("err = %v, want ErrEditFailed", err)
	}
}

func TestAdvise_SendsHistoryInOrderWithGrounding(t *testing.T) {
	var got generateReq
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/models/text-model:generateContent") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		respondJSON(t, w, `{"candidates": [{"content": {"parts": [{"text": "ok"}]}}]}`)
	})

	history := []Turn{
		{Role: "user", Text: "first question"},
		{Role: "model", Text: "first answer"},
	}
	if _, _, err := c.Advise(context.Background(), "second question", history); err != nil {
		t.Fatalf("advise: %v", err)
	}

	if len(got.Contents) != 3 {
		t.Fatalf("contents length = %d, want history + new message", len(got.Contents))
	}
	for i, want := range []struct{ role, text string }{
		{"user", "first question"},
		{"model", "first answer"},
		{"user", "second question"},
	} {
		if got.Contents[i].Role != want.role || got.Contents[i].Parts[0].Text != want.text {
			t.Fatalf("contents[%d] = %+v, want %s %q", i, got.Contents[i], want.role, want.text)
		}
	}
	if got.SystemInstruction == nil || !strings.Contains(got.SystemInstruction.Parts[0].Text, "Lumina") {
		t.Fatalf("system instruction = %+v", got.SystemInstruction)
	}
	if len(got.Tools) != 1 || got.Tools[0].GoogleSearch == nil {
		t.Fatalf("tools = %+v, want google search grounding", got.Tools)
	}
}

func TestAdvise_EmptyTextFallsBack(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(t, w, `{"candidates": [{"content": {"parts": []}}]}`)
	})

	text, sources, err := c.Advise(context.Background(), "anything", nil)
	if err != nil {
		t.Fatalf("missing text must not be an error, got %v", err)
	}
	if text != AdviceFallback {
		t.Fatalf("text = %q, want the fallback string", text)
	}
	if len(sources) != 0 {
		t.Fatalf("sources = %+v, want empty", sources)
	}
}

func TestAdvise_FiltersAndDefaultsSources(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(t, w, `{
			"candidates": [{
				"content": {"parts": [{"text": "try these"}]},
				"groundingMetadata": {"groundingChunks": [
					{"web": {"title": "Shop", "uri": "https://example.com"}},
					{"web": {"uri": "https://untitled.example"}},
					{}
				]}
			}]
		}`)
	})

	text, sources, err := c.Advise(context.Background(), "where can I buy this?", nil)
	if err != nil {
		t.Fatalf("advise: %v", err)
	}
	if text != "try these" {
		t.Fatalf("text = %q", text)
	}
	if len(sources) != 2 {
		t.Fatalf("sources length = %d, want chunks without a web source dropped", len(sources))
	}
	if sources[0].Title != "Shop" || sources[0].URI != "https://example.com" {
		t.Fatalf("sources[0] = %+v", sources[0])
	}
	if sources[1].Title != "Related Source" || sources[1].URI != "https://untitled.example" {
		t.Fatalf("sources[1] = %+v, want defaulted title", sources[1])
	}
}

func TestAdvise_TransportErrorFails(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	_, _, err := c.Advise(context.Background(), "anything", nil)
	if !errors.Is(err, ErrAdviceFailed) {
		t.Fatalf("err = %v, want ErrAdviceFailed", err)
	}
}

func TestGenerateImage_MalformedDataURL(t *testing.T) {
	c := NewClient("http://unused.invalid", "test-key", "image-model", "text-model")

	_, err := c.GenerateImage(context.Background(), "not-a-data-url", "directive")
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("err = %v, want ErrGenerationFailed", err)
	}
}

package genai

import "testing"

func TestSplitDataURL(t *testing.T) {
	mimeType, payload, err := splitDataURL("data:image/jpeg;base64,PAYLOAD")
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if mimeType != "image/jpeg" || payload != "PAYLOAD" {
		t.Fatalf("got %q %q", mimeType, payload)
	}

	// mime falls back when the header is bare
	mimeType, payload, err = splitDataURL("base64,PAYLOAD")
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if mimeType != "image/png" || payload != "PAYLOAD" {
		t.Fatalf("got %q %q", mimeType, payload)
	}

	if _, _, err := splitDataURL("no comma here"); err == nil {
		t.Fatalf("expected error for malformed input")
	}
}

func TestMakeDataURL(t *testing.T) {
	if got := makeDataURL("image/webp", "X"); got != "data:image/webp;base64,X" {
		t.Fatalf("got %q", got)
	}
	if got := makeDataURL("", "X"); got != "data:image/png;base64,X" {
		t.Fatalf("got %q, want png default", got)
	}
}

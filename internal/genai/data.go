package genai

import (
	"errors"
	"strings"
)

// Images move through the system as data URLs: "data:<mime>;base64,<payload>".
// The payload alone is what the generation service wants on the wire.

func splitDataURL(s string) (mimeType, payload string, err error) {
	header, payload, found := strings.Cut(s, ",")
	if !found || payload == "" {
		return "", "", errors.New("genai: malformed image data url")
	}
	mimeType = "image/png"
	if rest, ok := strings.CutPrefix(header, "data:"); ok {
		if m, _, ok := strings.Cut(rest, ";"); ok && m != "" {
			mimeType = m
		}
	}
	return mimeType, payload, nil
}

func makeDataURL(mimeType, payload string) string {
	if mimeType == "" {
		mimeType = "image/png"
	}
	return "data:" + mimeType + ";base64," + payload
}

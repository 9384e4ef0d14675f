package genai

import "errors"

// Every client operation fails with exactly one of these. Callers branch on
// them with errors.Is; the wrapped cause keeps the transport detail.
var (
	ErrGenerationFailed = errors.New("genai: generation failed")
	ErrEditFailed       = errors.New("genai: edit failed")
	ErrAdviceFailed     = errors.New("genai: advice failed")
)

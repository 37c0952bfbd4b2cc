package extract

import "time"

const (
	// DefaultModelName is the Gemini model used for both text and vision
	// calls when no override is configured.
	DefaultModelName = "gemini-2.0-flash-lite"
)

// Retry policies per call class. Vision calls cost more per attempt, so
// they get one extra retry and a longer base delay than text extraction.
var (
	TextRetryPolicy   = Policy{MaxRetries: 2, BaseDelay: 2 * time.Second}
	VisionRetryPolicy = Policy{MaxRetries: 3, BaseDelay: 3 * time.Second}
)

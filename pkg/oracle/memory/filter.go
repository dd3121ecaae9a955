package memory

import (
	"time"

	"github.com/oraclehub-commits/brain-hub/internal/entity"
)

const (
	// FreeWindowDays is how far back FREE tier conversations reach.
	FreeWindowDays = 3
	// FreeMaxMessages caps how many in-window messages FREE tier feeds
	// into prompt assembly.
	FreeMaxMessages = 5
)

// Filter returns the slice of a session's message log visible to prompt
// assembly. PRO gets the full history unmodified. FREE gets only messages
// from the last FreeWindowDays, further truncated to the most recent
// FreeMaxMessages. The result preserves original order and the input is
// never mutated.
func Filter(messages []entity.ChatMessage, isPro bool, now time.Time) []entity.ChatMessage {
	if isPro {
		return messages
	}

	cutoff := now.AddDate(0, 0, -FreeWindowDays)

	recent := make([]entity.ChatMessage, 0, len(messages))
	for _, msg := range messages {
		if msg.Timestamp.After(cutoff) {
			recent = append(recent, msg)
		}
	}

	if len(recent) > FreeMaxMessages {
		recent = recent[len(recent)-FreeMaxMessages:]
	}
	return recent
}

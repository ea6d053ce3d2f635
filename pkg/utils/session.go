// backend/pkg/utils/session.go
package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// NewSessionID generates a random 32-character session identifier.
func NewSessionID() string {
	return GenerateRandomID(32)
}

// ValidSessionID reports whether a session ID has the expected format.
func ValidSessionID(sessionID string) bool {
	if len(sessionID) != 32 {
		return false
	}

	_, err := hex.DecodeString(sessionID)
	return err == nil
}

// GenerateRandomID generates a random hex ID of the given length.
func GenerateRandomID(length int) string {
	bytes := make([]byte, (length+1)/2)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp-based ID
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(bytes)[:length]
}

package scheduling

import (
	"errors"
	"strings"
)

// ErrIdentifierUnavailable is returned when a session has no stable
// identifier to derive a video room from. Callers must not attempt to join
// or create a room in that case.
var ErrIdentifierUnavailable = errors.New("no stable session identifier available")

// RoomPrefix namespaces every video room this service derives. The token
// endpoint only applies the link-expiry gate to rooms carrying it.
const RoomPrefix = "mindflow-"

// ConversationID derives the messaging thread id for two parties. The ids
// are sorted lexicographically and joined with "-", so both participants
// compute the same id regardless of who initiates and without any lookup.
func ConversationID(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "-" + b
}

// VideoRoomID derives the video provider room name from a session's stable
// human-readable id, falling back to the internal key when absent. The
// result is "mindflow-<id>" lowercased with every character outside
// [a-z0-9-] replaced by "-". It is a pure function of its inputs: the
// booking path and both participants' join paths all recompute it and must
// agree byte for byte.
func VideoRoomID(sessionID, internalID string) (string, error) {
	id := sessionID
	if id == "" {
		id = internalID
	}
	if id == "" {
		return "", ErrIdentifierUnavailable
	}

	raw := strings.ToLower(RoomPrefix + id)
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String(), nil
}

package scheduling

import (
	"errors"
	"testing"
)

func TestConversationIDCommutative(t *testing.T) {
	a, b := "user-aaa", "user-bbb"
	if ConversationID(a, b) != ConversationID(b, a) {
		t.Errorf("conversation id not commutative: %q vs %q", ConversationID(a, b), ConversationID(b, a))
	}
	if got := ConversationID(a, b); got != "user-aaa-user-bbb" {
		t.Errorf("unexpected conversation id %q", got)
	}
}

func TestVideoRoomIDDeterministic(t *testing.T) {
	first, err := VideoRoomID("S-1748786400000-7", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := VideoRoomID("S-1748786400000-7", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("room id not deterministic: %q vs %q", first, second)
	}
	if first != "mindflow-s-1748786400000-7" {
		t.Errorf("unexpected room id %q", first)
	}
}

func TestVideoRoomIDSanitizesDisallowedRunes(t *testing.T) {
	got, err := VideoRoomID("S_42 Test!", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "mindflow-s-42-test-" {
		t.Errorf("unexpected room id %q", got)
	}
	for _, r := range got {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-') {
			t.Errorf("room id contains disallowed rune %q", r)
		}
	}
}

func TestVideoRoomIDFallsBackToInternalKey(t *testing.T) {
	got, err := VideoRoomID("", "9F0C2B44")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "mindflow-9f0c2b44" {
		t.Errorf("unexpected room id %q", got)
	}
}

func TestVideoRoomIDUnavailable(t *testing.T) {
	_, err := VideoRoomID("", "")
	if !errors.Is(err, ErrIdentifierUnavailable) {
		t.Errorf("expected ErrIdentifierUnavailable, got %v", err)
	}
}

func TestVideoRoomIDDiffersAcrossSessions(t *testing.T) {
	a, _ := VideoRoomID("S-1-1", "")
	b, _ := VideoRoomID("S-1-2", "")
	if a == b {
		t.Errorf("distinct sessions derived the same room id %q", a)
	}
}

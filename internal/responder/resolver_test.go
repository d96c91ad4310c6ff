package responder

import (
	"testing"

	"github.com/chatrelay/chatrelay/internal/inbound"
)

func newTestResolver() *Resolver {
	return NewResolver(
		"Sorry, I only respond to specific users.",
		map[string]string{
			"vip": "Hello VIP User!",
		},
		[]Rule{
			{Keyword: "hello", Reply: "Hello there!"},
			{Keyword: "help", Reply: "I can help you with basic queries!"},
			{Keyword: "status", Reply: "Bot is running smoothly!"},
		},
	)
}

func TestResolveDefault(t *testing.T) {
	t.Parallel()

	r := newTestResolver()
	got := r.Resolve(inbound.Message{UserID: "someone", Text: "nothing matches"})
	if got != "Sorry, I only respond to specific users." {
		t.Fatalf("Resolve = %q, want default reply", got)
	}
}

func TestResolvePerUserOverridesDefault(t *testing.T) {
	t.Parallel()

	r := newTestResolver()
	got := r.Resolve(inbound.Message{UserID: "vip", Text: "nothing matches"})
	if got != "Hello VIP User!" {
		t.Fatalf("Resolve = %q, want per-user reply", got)
	}
}

func TestResolveKeywordOverridesPerUser(t *testing.T) {
	t.Parallel()

	r := newTestResolver()
	got := r.Resolve(inbound.Message{UserID: "vip", Text: "What is your STATUS"})
	if got != "Bot is running smoothly!" {
		t.Fatalf("Resolve = %q, want keyword reply to override per-user reply", got)
	}
}

func TestResolveKeywordCaseInsensitiveSubstring(t *testing.T) {
	t.Parallel()

	r := newTestResolver()
	got := r.Resolve(inbound.Message{UserID: "x", Text: "could you HELP me out"})
	if got != "I can help you with basic queries!" {
		t.Fatalf("Resolve = %q, want help reply", got)
	}
}

func TestResolveFirstMatchingKeywordWins(t *testing.T) {
	t.Parallel()

	r := newTestResolver()
	// "hello" contains no earlier keyword, but "hello, help me" matches both
	// "hello" and "help"; declaration order decides.
	got := r.Resolve(inbound.Message{UserID: "x", Text: "hello, help me"})
	if got != "Hello there!" {
		t.Fatalf("Resolve = %q, want first declared keyword to win", got)
	}
}

func TestResolveOverlappingKeywordsPreserveDeclarationOrder(t *testing.T) {
	t.Parallel()

	r := NewResolver("default", nil, []Rule{
		{Keyword: "he", Reply: "short"},
		{Keyword: "help", Reply: "long"},
	})
	if got := r.Resolve(inbound.Message{Text: "help"}); got != "short" {
		t.Fatalf("Resolve = %q, want %q: earlier overlapping keyword wins", got, "short")
	}

	r = NewResolver("default", nil, []Rule{
		{Keyword: "help", Reply: "long"},
		{Keyword: "he", Reply: "short"},
	})
	if got := r.Resolve(inbound.Message{Text: "help"}); got != "long" {
		t.Fatalf("Resolve = %q, want %q when declared first", got, "long")
	}
}

func TestResolveEmptyMessage(t *testing.T) {
	t.Parallel()

	r := newTestResolver()
	if got := r.Resolve(inbound.Message{UserID: "vip"}); got != "Hello VIP User!" {
		t.Fatalf("Resolve = %q, empty text must not match any keyword", got)
	}
}

package channel_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/chatrelay/chatrelay/internal/channel"
)

// mockSender implements channel.Sender and records its sends.
type mockSender struct {
	channelType channel.ChannelType
	err         error

	mu   sync.Mutex
	sent []channel.OutboundMessage
}

func (m *mockSender) Type() channel.ChannelType { return m.channelType }

func (m *mockSender) Send(_ context.Context, msg channel.OutboundMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return m.err
}

func (m *mockSender) Sent() []channel.OutboundMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]channel.OutboundMessage, len(m.sent))
	copy(out, m.sent)
	return out
}

func TestRegistryRegisterAndGet(t *testing.T) {
	t.Parallel()

	reg := channel.NewRegistry()
	sender := &mockSender{channelType: channel.ChannelType("mock")}
	reg.MustRegister(sender)

	got, ok := reg.Get(channel.ChannelType("mock"))
	if !ok || got != channel.Sender(sender) {
		t.Fatalf("Get(mock) = (%v, %v), want registered sender", got, ok)
	}
	if _, ok := reg.Get(channel.ChannelType("unknown")); ok {
		t.Fatalf("Get(unknown) = ok, want false")
	}
}

func TestRegistryNormalizesChannelType(t *testing.T) {
	t.Parallel()

	reg := channel.NewRegistry()
	reg.MustRegister(&mockSender{channelType: channel.ChannelType("Mock")})
	if _, ok := reg.Get(channel.ChannelType(" mock ")); !ok {
		t.Fatalf("Get should match case-insensitively and ignore surrounding space")
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	t.Parallel()

	reg := channel.NewRegistry()
	reg.MustRegister(&mockSender{channelType: channel.ChannelType("mock")})
	err := reg.Register(&mockSender{channelType: channel.ChannelType("mock")})
	if err == nil || !strings.Contains(err.Error(), "already registered") {
		t.Fatalf("Register duplicate error = %v, want already registered", err)
	}
}

func TestRegistryRejectsNilAndEmptyType(t *testing.T) {
	t.Parallel()

	reg := channel.NewRegistry()
	if err := reg.Register(nil); err == nil {
		t.Fatalf("Register(nil) should fail")
	}
	if err := reg.Register(&mockSender{channelType: channel.ChannelType("  ")}); err == nil {
		t.Fatalf("Register with blank type should fail")
	}
}

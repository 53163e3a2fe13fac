package event

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dispatchiq/backend/internal/domain/shared"
)

type recordingHandler struct {
	types    []string
	received []shared.DomainEvent
	fail     bool
}

func (h *recordingHandler) Handle(_ context.Context, ev shared.DomainEvent) error {
	h.received = append(h.received, ev)
	if h.fail {
		return errors.New("handler error")
	}
	return nil
}

func (h *recordingHandler) EventTypes() []string { return h.types }

func testEvent(eventType string) shared.DomainEvent {
	ev := shared.NewBaseDomainEvent(eventType, "Test", uuid.New(), uuid.New())
	return &ev
}

func TestInMemoryEventBus_PublishToSubscribers(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	require.NoError(t, bus.Start(context.Background()))

	h1 := &recordingHandler{types: []string{"workorder.completed"}}
	h2 := &recordingHandler{types: []string{"workorder.cancelled"}}
	bus.Subscribe(h1)
	bus.Subscribe(h2)

	require.NoError(t, bus.Publish(context.Background(), testEvent("workorder.completed")))

	assert.Len(t, h1.received, 1)
	assert.Empty(t, h2.received)
}

func TestInMemoryEventBus_WildcardHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	all := &recordingHandler{}
	bus.Subscribe(all)

	require.NoError(t, bus.Publish(context.Background(),
		testEvent("workorder.completed"),
		testEvent("wallet.credited"),
	))
	assert.Len(t, all.received, 2)
}

func TestInMemoryEventBus_HandlerErrorDoesNotStopOthers(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	failing := &recordingHandler{types: []string{"workorder.completed"}, fail: true}
	ok := &recordingHandler{types: []string{"workorder.completed"}}
	bus.Subscribe(failing)
	bus.Subscribe(ok)

	require.NoError(t, bus.Publish(context.Background(), testEvent("workorder.completed")))
	assert.Len(t, failing.received, 1)
	assert.Len(t, ok.received, 1)
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	h := &recordingHandler{types: []string{"workorder.completed"}}
	bus.Subscribe(h)
	bus.Unsubscribe(h)

	require.NoError(t, bus.Publish(context.Background(), testEvent("workorder.completed")))
	assert.Empty(t, h.received)
}

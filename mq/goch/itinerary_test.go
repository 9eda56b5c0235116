package goch

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Psy1ALise/travel-planner-public/mq/mq"
)

// Helper to receive a message from a channel with a timeout.
func receiveMsgWithTimeout[T any](tb testing.TB, ch <-chan T, timeout time.Duration) (T, bool) {
	tb.Helper()
	select {
	case msg, ok := <-ch:
		if !ok {
			var zero T
			return zero, false
		}
		return msg, true
	case <-time.After(timeout):
		var zero T
		return zero, false
	}
}

type mockItem struct {
	Value   int
	TopicID uuid.UUID
}

func (item mockItem) GetTopic() uuid.UUID {
	return item.TopicID
}

func TestFanOutQueueCorePublishSubscribe(t *testing.T) {
	t.Parallel()

	core := newFanOutQueueCore[mockItem](4)
	defer core.Stop()

	topic := uuid.New()
	_, ch, err := core.Subscribe(topic)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	item := mockItem{Value: 42, TopicID: topic}
	if err := core.Publish(item); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	got, ok := receiveMsgWithTimeout(t, ch, 2*time.Second)
	if !ok {
		t.Fatal("did not receive published message")
	}
	if got.Value != 42 {
		t.Errorf("got value %d, want 42", got.Value)
	}
}

func TestFanOutQueueCoreTopicFiltering(t *testing.T) {
	t.Parallel()

	core := newFanOutQueueCore[mockItem](4)
	defer core.Stop()

	topicA := uuid.New()
	topicB := uuid.New()

	_, chA, err := core.Subscribe(topicA)
	if err != nil {
		t.Fatalf("Subscribe A failed: %v", err)
	}
	_, chAll, err := core.Subscribe(uuid.Nil)
	if err != nil {
		t.Fatalf("Subscribe all failed: %v", err)
	}

	if err := core.Publish(mockItem{Value: 1, TopicID: topicB}); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	// The wildcard subscriber sees the message, the topicA subscriber must not.
	if got, ok := receiveMsgWithTimeout(t, chAll, 2*time.Second); !ok || got.Value != 1 {
		t.Fatalf("wildcard subscriber missed the message: ok=%v got=%v", ok, got)
	}
	if got, ok := receiveMsgWithTimeout(t, chA, 100*time.Millisecond); ok {
		t.Errorf("topic subscriber received foreign message %v", got)
	}
}

func TestFanOutQueueCoreDeSubscribe(t *testing.T) {
	t.Parallel()

	core := newFanOutQueueCore[mockItem](4)
	defer core.Stop()

	id, ch, err := core.Subscribe(uuid.Nil)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	if err := core.DeSubscribe(id); err != nil {
		t.Fatalf("DeSubscribe failed: %v", err)
	}
	if _, ok := <-ch; ok {
		t.Error("channel should be closed after DeSubscribe")
	}
	if err := core.DeSubscribe(id); err == nil {
		t.Error("second DeSubscribe should fail")
	}
}

func TestFanOutQueueCoreStop(t *testing.T) {
	t.Parallel()

	core := newFanOutQueueCore[mockItem](4)
	_, ch, err := core.Subscribe(uuid.Nil)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	core.Stop()
	core.Stop() // idempotent

	// Subscriber channel is closed and further publishes fail.
	if _, ok := receiveMsgWithTimeout(t, ch, 2*time.Second); ok {
		t.Error("expected closed channel after Stop")
	}

	// The dispatcher may still be draining; retry until the quit path wins.
	deadline := time.After(2 * time.Second)
	for {
		if err := core.Publish(mockItem{Value: 1}); err == ErrQueueStopped {
			break
		}
		select {
		case <-deadline:
			t.Fatal("Publish never reported ErrQueueStopped after Stop")
		case <-time.After(10 * time.Millisecond):
		}
	}

	if _, _, err := core.Subscribe(uuid.Nil); err != ErrQueueStopped {
		t.Errorf("Subscribe after Stop: got %v, want ErrQueueStopped", err)
	}
}

func TestGoChanItineraryWrapperWiring(t *testing.T) {
	t.Parallel()

	wrapper := NewGoChanItineraryMessageQueueWrapper()

	for _, action := range []mq.Action{mq.ActionCreate, mq.ActionUpdate, mq.ActionDelete} {
		q := wrapper.GetTripPointMessageQueue(action)
		if q == nil {
			t.Fatalf("point queue for action %s is nil", action)
		}
		if q.GetAction() != action {
			t.Errorf("point queue action mismatch: got %s, want %s", q.GetAction(), action)
		}
	}

	if q := wrapper.GetAccommodationMessageQueue(mq.ActionCreate); q == nil {
		t.Fatal("accommodation create queue is nil")
	}
	// Accommodation update and delete events are not wired.
	if q := wrapper.GetAccommodationMessageQueue(mq.ActionUpdate); q != nil {
		t.Error("accommodation update queue should be nil")
	}
	if q := wrapper.GetAccommodationMessageQueue(mq.ActionDelete); q != nil {
		t.Error("accommodation delete queue should be nil")
	}

	if q := wrapper.GetTripPointMessageQueue(mq.ActionCnt); q != nil {
		t.Error("out-of-range action should return nil")
	}
}

func TestTripPointQueueEndToEnd(t *testing.T) {
	t.Parallel()

	wrapper := NewGoChanItineraryMessageQueueWrapper()
	queue := wrapper.GetTripPointMessageQueue(mq.ActionCreate)

	tripID := uuid.New()
	subID, ch, err := queue.Subscribe(tripID)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer queue.DeSubscribe(subID)

	msg := mq.TripPointMessage{
		ID:         uuid.New(),
		TripID:     tripID,
		Name:       "Stop",
		VisitOrder: 1,
	}
	if err := queue.Publish(msg); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	got, ok := receiveMsgWithTimeout(t, ch, 2*time.Second)
	if !ok {
		t.Fatal("did not receive trip point message")
	}
	if got.ID != msg.ID || got.TripID != tripID {
		t.Errorf("message mismatch: got %+v", got)
	}
}

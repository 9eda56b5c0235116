package goch

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Psy1ALise/travel-planner-public/mq/mq"
)

// --- Error Definitions ---
type QueueError string

func (e QueueError) Error() string {
	return string(e)
}

const (
	ErrQueueStopped QueueError = "message queue is stopped"
)

type subscription[M any] struct {
	topic uuid.UUID
	ch    chan M
}

// fanOutQueueCore dispatches published messages to every subscriber whose
// topic matches the message topic. Subscribing with uuid.Nil receives every
// message. A slow subscriber drops messages instead of blocking the
// dispatcher.
type fanOutQueueCore[M mq.TopicProvider] struct {
	publishChan chan M
	subscribers map[uuid.UUID]*subscription[M]
	quit        chan struct{}
	bufferSize  int
	mu          sync.RWMutex
	stopOnce    sync.Once
}

func newFanOutQueueCore[M mq.TopicProvider](bufferSize int) *fanOutQueueCore[M] {
	core := &fanOutQueueCore[M]{
		publishChan: make(chan M, bufferSize),
		subscribers: make(map[uuid.UUID]*subscription[M]),
		quit:        make(chan struct{}),
		bufferSize:  bufferSize,
	}
	go core.run()
	return core
}

func (c *fanOutQueueCore[M]) run() {
	for {
		select {
		case msg := <-c.publishChan:
			c.mu.RLock()
			for _, sub := range c.subscribers {
				if sub.topic != uuid.Nil && sub.topic != msg.GetTopic() {
					continue
				}
				select {
				case sub.ch <- msg:
				default:
					// Subscriber not keeping up; drop rather than stall the fan-out.
				}
			}
			c.mu.RUnlock()
		case <-c.quit:
			c.mu.Lock()
			for id, sub := range c.subscribers {
				close(sub.ch)
				delete(c.subscribers, id)
			}
			c.mu.Unlock()
			return
		}
	}
}

// Publish enqueues a message for dispatch.
func (c *fanOutQueueCore[M]) Publish(msg M) error {
	select {
	case c.publishChan <- msg:
		return nil
	case <-c.quit:
		return ErrQueueStopped
	}
}

// Subscribe registers a new subscriber for a topic and returns its ID and
// delivery channel.
func (c *fanOutQueueCore[M]) Subscribe(topic uuid.UUID) (uuid.UUID, <-chan M, error) {
	select {
	case <-c.quit:
		return uuid.Nil, nil, ErrQueueStopped
	default:
	}

	id := uuid.New()
	sub := &subscription[M]{
		topic: topic,
		// Buffered so a burst does not immediately hit the drop path.
		ch: make(chan M, c.bufferSize+16),
	}

	c.mu.Lock()
	c.subscribers[id] = sub
	c.mu.Unlock()

	return id, sub.ch, nil
}

// DeSubscribe removes a subscriber and closes its channel.
func (c *fanOutQueueCore[M]) DeSubscribe(id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	sub, ok := c.subscribers[id]
	if !ok {
		return fmt.Errorf("subscriber with ID %s not found", id)
	}
	close(sub.ch)
	delete(c.subscribers, id)
	return nil
}

// Stop shuts down the dispatcher and closes every subscriber channel.
func (c *fanOutQueueCore[M]) Stop() {
	c.stopOnce.Do(func() {
		close(c.quit)
	})
}

// channelTripPointMessageQueue implements mq.TripPointMessageQueue on top of
// the fan-out core.
type channelTripPointMessageQueue struct {
	action mq.Action
	core   *fanOutQueueCore[mq.TripPointMessage]
}

// NewChannelTripPointMessageQueue creates a new in-process trip point queue.
// bufferSize determines the capacity of the publish channel; 0 means
// unbuffered.
func NewChannelTripPointMessageQueue(action mq.Action, bufferSize int) mq.TripPointMessageQueue {
	return &channelTripPointMessageQueue{
		action: action,
		core:   newFanOutQueueCore[mq.TripPointMessage](bufferSize),
	}
}

func (q *channelTripPointMessageQueue) GetAction() mq.Action {
	return q.action
}

func (q *channelTripPointMessageQueue) Publish(msg mq.TripPointMessage) error {
	return q.core.Publish(msg)
}

func (q *channelTripPointMessageQueue) Subscribe(tripID uuid.UUID) (uuid.UUID, <-chan mq.TripPointMessage, error) {
	return q.core.Subscribe(tripID)
}

func (q *channelTripPointMessageQueue) DeSubscribe(id uuid.UUID) error {
	return q.core.DeSubscribe(id)
}

// channelAccommodationMessageQueue implements mq.AccommodationMessageQueue on
// top of the fan-out core.
type channelAccommodationMessageQueue struct {
	action mq.Action
	core   *fanOutQueueCore[mq.AccommodationMessage]
}

// NewChannelAccommodationMessageQueue creates a new in-process accommodation
// queue.
func NewChannelAccommodationMessageQueue(action mq.Action, bufferSize int) mq.AccommodationMessageQueue {
	return &channelAccommodationMessageQueue{
		action: action,
		core:   newFanOutQueueCore[mq.AccommodationMessage](bufferSize),
	}
}

func (q *channelAccommodationMessageQueue) GetAction() mq.Action {
	return q.action
}

func (q *channelAccommodationMessageQueue) Publish(msg mq.AccommodationMessage) error {
	return q.core.Publish(msg)
}

func (q *channelAccommodationMessageQueue) Subscribe(tripID uuid.UUID) (uuid.UUID, <-chan mq.AccommodationMessage, error) {
	return q.core.Subscribe(tripID)
}

func (q *channelAccommodationMessageQueue) DeSubscribe(id uuid.UUID) error {
	return q.core.DeSubscribe(id)
}

// GoChanItineraryMessageQueueWrapper implements mq.ItineraryMessageQueueWrapper
// with in-process channels.
type GoChanItineraryMessageQueueWrapper struct {
	PointMQArray         [mq.ActionCnt]mq.TripPointMessageQueue
	AccommodationMQArray [mq.ActionCnt]mq.AccommodationMessageQueue
}

func (wrapper *GoChanItineraryMessageQueueWrapper) GetTripPointMessageQueue(action mq.Action) mq.TripPointMessageQueue {
	if action < 0 || action >= mq.ActionCnt {
		return nil
	}
	return wrapper.PointMQArray[action]
}

func (wrapper *GoChanItineraryMessageQueueWrapper) GetAccommodationMessageQueue(action mq.Action) mq.AccommodationMessageQueue {
	if action < 0 || action >= mq.ActionCnt {
		return nil
	}
	return wrapper.AccommodationMQArray[action]
}

// NewGoChanItineraryMessageQueueWrapper creates the in-process queue set.
// Points publish create, update and delete events; accommodations only
// create.
func NewGoChanItineraryMessageQueueWrapper() mq.ItineraryMessageQueueWrapper {
	wrapper := GoChanItineraryMessageQueueWrapper{}
	wrapper.PointMQArray[mq.ActionCreate] = NewChannelTripPointMessageQueue(mq.ActionCreate, 16)
	wrapper.PointMQArray[mq.ActionUpdate] = NewChannelTripPointMessageQueue(mq.ActionUpdate, 16)
	wrapper.PointMQArray[mq.ActionDelete] = NewChannelTripPointMessageQueue(mq.ActionDelete, 16)
	wrapper.AccommodationMQArray[mq.ActionCreate] = NewChannelAccommodationMessageQueue(mq.ActionCreate, 16)

	return &wrapper
}

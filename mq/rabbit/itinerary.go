package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"

	"github.com/Psy1ALise/travel-planner-public/mq/mq"
)

const (
	// All itinerary events go through this exchange.
	exchangeName = "itinerary_events_exchange"
)

// Routing keys per message type and action.
const (
	pointCreateRoutingKey         = "point.create"
	pointUpdateRoutingKey         = "point.update"
	pointDeleteRoutingKey         = "point.delete"
	accommodationCreateRoutingKey = "accommodation.create"
)

func pointRoutingKey(action mq.Action) string {
	switch action {
	case mq.ActionCreate:
		return pointCreateRoutingKey
	case mq.ActionUpdate:
		return pointUpdateRoutingKey
	case mq.ActionDelete:
		return pointDeleteRoutingKey
	}
	return ""
}

// rabbitMessageQueue is a RabbitMQ-backed queue for any topic-routed message
// type. Each subscriber gets its own consumer; messages are filtered by trip
// topic on delivery (uuid.Nil subscribes to everything).
type rabbitMessageQueue[M mq.TopicProvider] struct {
	action     mq.Action
	conn       *amqp091.Connection
	channel    *amqp091.Channel
	queueName  string
	routingKey string
	mu         sync.RWMutex // Protects the consumers map
	consumers  map[uuid.UUID]chan M
}

func newRabbitMessageQueue[M mq.TopicProvider](action mq.Action, conn *amqp091.Connection, queueName string, routingKey string) (*rabbitMessageQueue[M], error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	if err := DeclareQueueAndExchange(ch, queueName, exchangeName, routingKey); err != nil {
		ch.Close()
		return nil, err
	}

	return &rabbitMessageQueue[M]{
		action:     action,
		conn:       conn,
		channel:    ch,
		queueName:  queueName,
		routingKey: routingKey,
		consumers:  make(map[uuid.UUID]chan M),
	}, nil
}

// GetAction returns the action associated with this queue.
func (q *rabbitMessageQueue[M]) GetAction() mq.Action {
	return q.action
}

// Publish sends a message to the exchange with this queue's routing key.
func (q *rabbitMessageQueue[M]) Publish(msg M) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = q.channel.PublishWithContext(ctx,
		exchangeName, // exchange
		q.routingKey, // routing key
		false,        // mandatory
		false,        // immediate
		amqp091.Publishing{
			ContentType: "application/json",
			Body:        body,
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

// Subscribe registers a consumer for messages with the given trip topic and
// returns its ID and delivery channel.
func (q *rabbitMessageQueue[M]) Subscribe(tripID uuid.UUID) (uuid.UUID, <-chan M, error) {
	msgs, err := q.channel.Consume(
		q.queueName, // queue
		"",          // consumer
		true,        // auto-ack
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("failed to register a consumer: %w", err)
	}

	subscriberID := uuid.New()
	outputChan := make(chan M)

	q.mu.Lock()
	q.consumers[subscriberID] = outputChan
	q.mu.Unlock()

	go func() {
		defer func() {
			q.mu.Lock()
			if ch, ok := q.consumers[subscriberID]; ok {
				close(ch)
				delete(q.consumers, subscriberID)
			}
			q.mu.Unlock()
		}()

		for d := range msgs {
			var msg M
			if err := json.Unmarshal(d.Body, &msg); err != nil {
				log.Printf("Failed to unmarshal itinerary message: %v", err)
				continue
			}
			if tripID != uuid.Nil && msg.GetTopic() != tripID {
				continue
			}

			q.mu.RLock()
			ch, ok := q.consumers[subscriberID]
			q.mu.RUnlock()
			if !ok {
				// Consumer was unsubscribed while the message was in flight.
				return
			}
			select {
			case ch <- msg:
			case <-time.After(1 * time.Second):
				log.Printf("Timeout sending message to consumer %s. Skipping.", subscriberID)
			}
		}
	}()

	return subscriberID, outputChan, nil
}

// DeSubscribe removes a subscriber by its ID.
func (q *rabbitMessageQueue[M]) DeSubscribe(subscriberID uuid.UUID) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if ch, ok := q.consumers[subscriberID]; ok {
		delete(q.consumers, subscriberID)
		close(ch)
		return nil
	}
	return fmt.Errorf("consumer with ID %s not found for queue %s", subscriberID, q.queueName)
}

// rabbitItineraryMessageQueueWrapper implements mq.ItineraryMessageQueueWrapper
// on a shared connection.
type rabbitItineraryMessageQueueWrapper struct {
	PointMQArray         [mq.ActionCnt]mq.TripPointMessageQueue
	AccommodationMQArray [mq.ActionCnt]mq.AccommodationMessageQueue
	conn                 *amqp091.Connection
}

// NewRabbitItineraryMessageQueueWrapper declares the queues for every wired
// action on the given connection.
func NewRabbitItineraryMessageQueueWrapper(conn *amqp091.Connection) (mq.ItineraryMessageQueueWrapper, error) {
	wrapper := &rabbitItineraryMessageQueueWrapper{
		conn: conn,
	}

	for _, action := range []mq.Action{mq.ActionCreate, mq.ActionUpdate, mq.ActionDelete} {
		q, err := newRabbitMessageQueue[mq.TripPointMessage](
			action, conn,
			fmt.Sprintf("trip_point_%d_queue", action),
			pointRoutingKey(action),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create point mq for action %d: %w", action, err)
		}
		wrapper.PointMQArray[action] = q
	}

	accQ, err := newRabbitMessageQueue[mq.AccommodationMessage](
		mq.ActionCreate, conn,
		"accommodation_create_queue",
		accommodationCreateRoutingKey,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create accommodation create mq: %w", err)
	}
	wrapper.AccommodationMQArray[mq.ActionCreate] = accQ

	return wrapper, nil
}

// GetTripPointMessageQueue returns the queue for a point action.
func (wrapper *rabbitItineraryMessageQueueWrapper) GetTripPointMessageQueue(action mq.Action) mq.TripPointMessageQueue {
	if action < 0 || action >= mq.ActionCnt {
		return nil
	}
	return wrapper.PointMQArray[action]
}

// GetAccommodationMessageQueue returns the queue for an accommodation action.
func (wrapper *rabbitItineraryMessageQueueWrapper) GetAccommodationMessageQueue(action mq.Action) mq.AccommodationMessageQueue {
	if action < 0 || action >= mq.ActionCnt {
		return nil
	}
	return wrapper.AccommodationMQArray[action]
}

// Close closes all channels and the RabbitMQ connection.
func (wrapper *rabbitItineraryMessageQueueWrapper) Close() {
	for _, q := range wrapper.PointMQArray {
		if rmq, ok := q.(*rabbitMessageQueue[mq.TripPointMessage]); ok && rmq.channel != nil {
			rmq.channel.Close()
		}
	}
	for _, q := range wrapper.AccommodationMQArray {
		if rmq, ok := q.(*rabbitMessageQueue[mq.AccommodationMessage]); ok && rmq.channel != nil {
			rmq.channel.Close()
		}
	}
	if wrapper.conn != nil {
		wrapper.conn.Close()
	}
}

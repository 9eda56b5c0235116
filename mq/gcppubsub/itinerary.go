package gcppubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"reflect"
	"sync"
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/google/uuid"

	"github.com/Psy1ALise/travel-planner-public/mq/mq"
)

const (
	tripIDAttribute = "tripId"
)

// subscriptionInfo holds details about an active Pub/Sub subscription.
type subscriptionInfo struct {
	gcpSubscription *pubsub.Subscription
	cancel          context.CancelFunc
}

// GenericPubSubService provides a generic implementation for GCP Pub/Sub
// operations over a single topic.
type GenericPubSubService[M any] struct {
	client              *pubsub.Client
	topic               *pubsub.Topic
	activeSubscriptions map[uuid.UUID]*subscriptionInfo
	subscriptionsMutex  sync.Mutex
	ctx                 context.Context
}

// NewGenericPubSubService creates a generic service for a specific message
// type. It ensures the underlying Pub/Sub topic exists, creating it if
// necessary.
func NewGenericPubSubService[M any](ctx context.Context, client *pubsub.Client, topicID string) (*GenericPubSubService[M], error) {
	if client == nil {
		return nil, fmt.Errorf("GCP Pub/Sub client is nil")
	}

	topic := client.Topic(topicID)
	exists, err := topic.Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existence of topic %s: %w", topicID, err)
	}
	if !exists {
		topic, err = client.CreateTopic(ctx, topicID)
		if err != nil {
			return nil, fmt.Errorf("failed to create topic %s: %w", topicID, err)
		}
		log.Printf("Created Pub/Sub topic: %s", topicID)
	}

	return &GenericPubSubService[M]{
		client:              client,
		topic:               topic,
		activeSubscriptions: make(map[uuid.UUID]*subscriptionInfo),
		ctx:                 ctx,
	}, nil
}

// Publish sends a message to the configured Pub/Sub topic with the trip ID as
// an attribute so subscriptions can filter server side.
func (s *GenericPubSubService[M]) Publish(msg mq.TopicProvider) error {
	typeName := reflect.TypeOf(msg).Name()
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", typeName, err)
	}

	pubsubMsg := &pubsub.Message{
		Data: body,
		Attributes: map[string]string{
			tripIDAttribute: msg.GetTopic().String(),
		},
	}

	result := s.topic.Publish(s.ctx, pubsubMsg)
	_, err = result.Get(s.ctx)
	if err != nil {
		return fmt.Errorf("failed to publish %s to topic %s: %w", typeName, s.topic.ID(), err)
	}
	return nil
}

// Subscribe creates a new filtered subscription on GCP and starts listening
// for messages.
func (s *GenericPubSubService[M]) Subscribe(tripID uuid.UUID) (uuid.UUID, <-chan M, error) {
	subscriptionID := uuid.New()
	typeName := reflect.TypeOf(*new(M)).Name()

	gcpSubName := fmt.Sprintf("sub-%s-%s-%s", typeName, tripID.String(), subscriptionID.String())

	config := pubsub.SubscriptionConfig{
		Topic:            s.topic,
		Filter:           fmt.Sprintf("attributes.%s = \"%s\"", tripIDAttribute, tripID.String()),
		ExpirationPolicy: 24 * time.Hour,
		AckDeadline:      10 * time.Second,
	}

	gcpSub, err := s.client.CreateSubscription(s.ctx, gcpSubName, config)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("failed to create GCP subscription %s for %s: %w", gcpSubName, typeName, err)
	}

	msgChan := make(chan M, 5)
	receiveCtx, cancel := context.WithCancel(s.ctx)

	s.subscriptionsMutex.Lock()
	s.activeSubscriptions[subscriptionID] = &subscriptionInfo{
		gcpSubscription: gcpSub,
		cancel:          cancel,
	}
	s.subscriptionsMutex.Unlock()

	go func() {
		defer func() {
			s.subscriptionsMutex.Lock()
			delete(s.activeSubscriptions, subscriptionID)
			s.subscriptionsMutex.Unlock()

			// Delete the subscription from GCP to prevent resource leaks.
			if deleteErr := gcpSub.Delete(context.Background()); deleteErr != nil {
				log.Printf("Error deleting GCP subscription %s: %v", gcpSub.ID(), deleteErr)
			}
			close(msgChan)
		}()

		// Receive blocks until the context is cancelled.
		err := gcpSub.Receive(receiveCtx, func(ctx context.Context, pubsubMsg *pubsub.Message) {
			pubsubMsg.Ack()

			var msg M
			if err := json.Unmarshal(pubsubMsg.Data, &msg); err != nil {
				log.Printf("Error unmarshaling %s for %s: %v. Body: %s", typeName, subscriptionID, err, string(pubsubMsg.Data))
				return
			}

			select {
			case msgChan <- msg:
			case <-time.After(2 * time.Second):
				log.Printf("Timeout sending %s to msgChan for %s.", typeName, subscriptionID)
			case <-receiveCtx.Done():
				return
			}
		})

		if err != nil && err != context.Canceled {
			log.Printf("Error in Receive loop for %s subscription %s: %v", typeName, subscriptionID, err)
		}
	}()

	return subscriptionID, msgChan, nil
}

// DeSubscribe stops the message receiver and deletes the subscription from GCP.
func (s *GenericPubSubService[M]) DeSubscribe(id uuid.UUID) error {
	s.subscriptionsMutex.Lock()
	info, ok := s.activeSubscriptions[id]
	if ok {
		// Removal from the map happens in the receiver goroutine's defer.
		info.cancel()
	}
	s.subscriptionsMutex.Unlock()

	if !ok {
		return fmt.Errorf("subscription ID %s not found for %s service", id, reflect.TypeOf(*new(M)).Name())
	}
	return nil
}

// Close gracefully shuts down all active subscriptions for this service.
func (s *GenericPubSubService[M]) Close() {
	s.subscriptionsMutex.Lock()
	defer s.subscriptionsMutex.Unlock()

	for _, info := range s.activeSubscriptions {
		info.cancel()
	}
}

// --- tripPointMQ implementation ---
type tripPointMQ struct {
	genericService *GenericPubSubService[mq.TripPointMessage]
	action         mq.Action
}

func NewTripPointMessageQueue(ctx context.Context, client *pubsub.Client, action mq.Action) (*tripPointMQ, error) {
	topicID := fmt.Sprintf("trip-point-%s", action.String())
	gs, err := NewGenericPubSubService[mq.TripPointMessage](ctx, client, topicID)
	if err != nil {
		return nil, fmt.Errorf("failed to create generic service for TripPoint: %w", err)
	}
	return &tripPointMQ{genericService: gs, action: action}, nil
}
func (q *tripPointMQ) GetAction() mq.Action                  { return q.action }
func (q *tripPointMQ) Publish(msg mq.TripPointMessage) error { return q.genericService.Publish(msg) }
func (q *tripPointMQ) Subscribe(tripID uuid.UUID) (uuid.UUID, <-chan mq.TripPointMessage, error) {
	return q.genericService.Subscribe(tripID)
}
func (q *tripPointMQ) DeSubscribe(id uuid.UUID) error { return q.genericService.DeSubscribe(id) }

// --- accommodationMQ implementation ---
type accommodationMQ struct {
	genericService *GenericPubSubService[mq.AccommodationMessage]
	action         mq.Action
}

func NewAccommodationMessageQueue(ctx context.Context, client *pubsub.Client, action mq.Action) (*accommodationMQ, error) {
	topicID := fmt.Sprintf("accommodation-%s", action.String())
	gs, err := NewGenericPubSubService[mq.AccommodationMessage](ctx, client, topicID)
	if err != nil {
		return nil, fmt.Errorf("failed to create generic service for Accommodation: %w", err)
	}
	return &accommodationMQ{genericService: gs, action: action}, nil
}
func (q *accommodationMQ) GetAction() mq.Action { return q.action }
func (q *accommodationMQ) Publish(msg mq.AccommodationMessage) error {
	return q.genericService.Publish(msg)
}
func (q *accommodationMQ) Subscribe(tripID uuid.UUID) (uuid.UUID, <-chan mq.AccommodationMessage, error) {
	return q.genericService.Subscribe(tripID)
}
func (q *accommodationMQ) DeSubscribe(id uuid.UUID) error { return q.genericService.DeSubscribe(id) }

// --------- itinerary message queue wrapper implementation ---------

type GCPItineraryMessageQueueWrapper struct {
	PointMQArray         [mq.ActionCnt]*tripPointMQ
	AccommodationMQArray [mq.ActionCnt]*accommodationMQ
}

func (wrapper *GCPItineraryMessageQueueWrapper) GetTripPointMessageQueue(action mq.Action) mq.TripPointMessageQueue {
	if action < 0 || action >= mq.ActionCnt || wrapper.PointMQArray[action] == nil {
		return nil
	}
	return wrapper.PointMQArray[action]
}

func (wrapper *GCPItineraryMessageQueueWrapper) GetAccommodationMessageQueue(action mq.Action) mq.AccommodationMessageQueue {
	if action < 0 || action >= mq.ActionCnt || wrapper.AccommodationMQArray[action] == nil {
		return nil
	}
	return wrapper.AccommodationMQArray[action]
}

// NewGCPItineraryMessageQueueWrapper creates a new MQ wrapper instance using
// GCP Pub/Sub.
func NewGCPItineraryMessageQueueWrapper(ctx context.Context, projectID string) (mq.ItineraryMessageQueueWrapper, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCP Pub/Sub client for project %s: %w", projectID, err)
	}

	wrapper := &GCPItineraryMessageQueueWrapper{}

	// Point: Create, Update, Delete
	for _, action := range []mq.Action{mq.ActionCreate, mq.ActionUpdate, mq.ActionDelete} {
		wrapper.PointMQArray[action], err = NewTripPointMessageQueue(ctx, client, action)
		if err != nil {
			return nil, err
		}
	}

	// Accommodation: Create only
	wrapper.AccommodationMQArray[mq.ActionCreate], err = NewAccommodationMessageQueue(ctx, client, mq.ActionCreate)
	if err != nil {
		return nil, err
	}

	return wrapper, nil
}

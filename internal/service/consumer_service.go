package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"ai-retirement-be/pkg/events"
	"ai-retirement-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process bus and relays events to JetStream.
// A nil natsPublisher turns the relay into a no-op so the service still runs
// without a broker.
type consumerService struct {
	pubSub        *gochannel.GoChannel
	topics        []string
	natsPublisher *nats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topics []string,
	natsPublisher *nats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:        pubSub,
		topics:        topics,
		natsPublisher: natsPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	for _, topic := range cs.topics {
		messages, err := cs.pubSub.Subscribe(ctx, topic)
		if err != nil {
			return err
		}

		go func(topic string, messages <-chan *message.Message) {
			for msg := range messages {
				cs.processMessage(ctx, topic, msg)
			}
		}(topic, messages)
	}

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, topic string, msg *message.Message) {
	var payload map[string]interface{}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal %s message: %v", topic, err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if cs.natsPublisher == nil {
		msg.Ack()
		return
	}

	evt := events.BaseEvent{
		Type:       topic,
		Data:       payload,
		OccurredAt: time.Now(),
	}
	if err := cs.natsPublisher.Publish(ctx, evt); err != nil {
		log.Printf("[ERROR] Failed to relay %s event to NATS: %v", topic, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	msg.Ack()
}

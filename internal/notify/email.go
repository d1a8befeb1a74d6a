package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"auction-engine/internal/kafka"
	"auction-engine/utils"
)

// LogEmailService only logs outbound notices; used when no transport is configured
type LogEmailService struct{}

func (LogEmailService) log(n Notification) error {
	utils.Info("notification", map[string]any{
		"kind":         n.Kind,
		"recipient_id": n.RecipientID,
		"product_id":   n.ProductID,
		"amount":       n.Amount.String(),
	})
	return nil
}

func (s LogEmailService) SendBidderBidConfirmedEmail(_ context.Context, n Notification) error {
	return s.log(n)
}

func (s LogEmailService) SendBidderOutbidEmail(_ context.Context, n Notification) error {
	return s.log(n)
}

func (s LogEmailService) SendBidPlacedEmail(_ context.Context, n Notification) error {
	return s.log(n)
}

func (s LogEmailService) SendAuctionEndedWinnerEmail(_ context.Context, n Notification) error {
	return s.log(n)
}

func (s LogEmailService) SendAuctionEndedNonWinnerEmail(_ context.Context, n Notification) error {
	return s.log(n)
}

// Publisher is the part of kafka.Producer the email service needs
type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header) error
}

// KafkaEmailService hands notices to the mailer over Kafka, keyed by recipient
// so one user's messages stay ordered
type KafkaEmailService struct {
	pub      Publisher
	producer string
	now      func() time.Time
}

func NewKafkaEmailService(pub Publisher, producer string) *KafkaEmailService {
	return &KafkaEmailService{pub: pub, producer: producer, now: time.Now}
}

func (s *KafkaEmailService) publish(n Notification) error {
	env, err := kafka.NewEnvelope(utils.GenerateID(), string(n.Kind), s.producer, n.ProductID, s.now().UTC(), n)
	if err != nil {
		return err
	}
	b, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}
	return s.pub.Publish([]byte(n.RecipientID), b)
}

func (s *KafkaEmailService) SendBidderBidConfirmedEmail(_ context.Context, n Notification) error {
	return s.publish(n)
}

func (s *KafkaEmailService) SendBidderOutbidEmail(_ context.Context, n Notification) error {
	return s.publish(n)
}

func (s *KafkaEmailService) SendBidPlacedEmail(_ context.Context, n Notification) error {
	return s.publish(n)
}

func (s *KafkaEmailService) SendAuctionEndedWinnerEmail(_ context.Context, n Notification) error {
	return s.publish(n)
}

func (s *KafkaEmailService) SendAuctionEndedNonWinnerEmail(_ context.Context, n Notification) error {
	return s.publish(n)
}

package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"folio/config"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const (
	writeTimeout  = 10 * time.Second
	fetchBackoff  = time.Second
	commitTimeout = 5 * time.Second

	handleAttempts = 3
	retryBackoff   = 2 * time.Second
)

// Handler processes one consumed message. A returned error is retried with backoff; permanent
// failures such as undecodable payloads should be logged and answered with nil.
type Handler func(ctx context.Context, message kafkaGo.Message) error

// Message is an event keyed by the entity it concerns. Value is sent as JSON.
type Message struct {
	Key   string
	Value any
}

func (m *Message) ToKafkaMessage() (kafkaGo.Message, error) {
	value, err := json.Marshal(m.Value)
	if err != nil {
		return kafkaGo.Message{}, errors.Wrapf(err, "marshal message %q", m.Key)
	}

	return kafkaGo.Message{
		Key:   []byte(m.Key),
		Value: value,
	}, nil
}

// DecodeKafkaMessage unmarshals the payload into T and returns it as the Value of a Message.
func DecodeKafkaMessage[T any](msg kafkaGo.Message) (Message, error) {
	var value T

	if err := json.Unmarshal(msg.Value, &value); err != nil {
		return Message{}, errors.Wrapf(err, "unmarshal message at offset %d", msg.Offset)
	}

	return Message{
		Key:   string(msg.Key),
		Value: value,
	}, nil
}

type Client interface {
	SendMessages(ctx context.Context, topic string, messages ...Message) (err error)
	// Consume blocks until ctx is done. A message is committed once handler succeeds or has
	// failed handleAttempts times; one interrupted by shutdown stays uncommitted and is redelivered.
	Consume(ctx context.Context, consumerGroup, topic string, handler Handler)
	Close() error
}

type client struct {
	config *config.Config
	dialer *kafkaGo.Dialer
	writer *kafkaGo.Writer
}

func New(config *config.Config) Client {
	var mechanism sasl.Mechanism

	if config.Kafka.SASL.Username != "" {
		mechanism = plain.Mechanism{
			Username: config.Kafka.SASL.Username,
			Password: config.Kafka.SASL.Password,
		}
	}

	log.Info().Strs("brokers", config.Kafka.Brokers).Bool("sasl", mechanism != nil).Msg("Kafka client initialized")

	return &client{
		config: config,
		dialer: &kafkaGo.Dialer{
			DualStack:     true,
			SASLMechanism: mechanism,
		},
		writer: &kafkaGo.Writer{
			Addr:                   kafkaGo.TCP(config.Kafka.Brokers...),
			Balancer:               &kafkaGo.Hash{},
			RequiredAcks:           kafkaGo.RequireOne,
			WriteTimeout:           writeTimeout,
			AllowAutoTopicCreation: true,
			Transport:              &kafkaGo.Transport{SASL: mechanism},
		},
	}
}

func (k *client) SendMessages(ctx context.Context, topic string, messages ...Message) error {
	batch := make([]kafkaGo.Message, 0, len(messages))

	for _, message := range messages {
		msg, err := message.ToKafkaMessage()
		if err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("Failed to encode Kafka message.")

			return err
		}

		msg.Topic = topic
		batch = append(batch, msg)
	}

	if err := k.writer.WriteMessages(ctx, batch...); err != nil {
		log.Error().Err(err).Str("topic", topic).Int("messages", len(batch)).Msg("Failed to send messages to Kafka.")

		return errors.Wrapf(err, "write %d messages to %s", len(batch), topic)
	}

	log.Debug().Str("topic", topic).Int("messages", len(batch)).Msg("Sent messages to Kafka.")

	return nil
}

func (k *client) Consume(ctx context.Context, consumerGroup, topic string, handler Handler) {
	if topic == "" {
		log.Error().Msg("Kafka consumer needs a topic")

		return
	}

	groupID := k.config.Kafka.ConsumerGroup
	if consumerGroup != "" {
		groupID = consumerGroup
	}

	reader := kafkaGo.NewReader(kafkaGo.ReaderConfig{
		Brokers:     k.config.Kafka.Brokers,
		Topic:       topic,
		GroupID:     groupID,
		Dialer:      k.dialer,
		StartOffset: kafkaGo.FirstOffset,
	})

	defer func() {
		if err := reader.Close(); err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("Failed to close Kafka reader.")
		}
	}()

	log.Info().Str("topic", topic).Str("group", groupID).Msg("Kafka consumer started.")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info().Str("topic", topic).Msg("Kafka consumer stopped.")

				return
			}

			log.Error().Err(err).Str("topic", topic).Msg("Failed to fetch Kafka message.")

			select {
			case <-ctx.Done():
				return
			case <-time.After(fetchBackoff):
			}

			continue
		}

		if !deliver(ctx, msg, handler, handleAttempts, retryBackoff) {
			log.Info().Str("topic", topic).Int64("offset", msg.Offset).Msg("Kafka consumer stopped before the message was handled.")

			return
		}

		commitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), commitTimeout)
		if err := reader.CommitMessages(commitCtx, msg); err != nil {
			log.Error().Err(err).Str("topic", topic).Int64("offset", msg.Offset).Msg("Failed to commit Kafka message.")
		}
		cancel()
	}
}

// deliver runs handler until it succeeds or attempts are spent, and reports whether the message
// may be committed. It returns false only when ctx ends while waiting to retry.
func deliver(ctx context.Context, msg kafkaGo.Message, handler Handler, attempts int, backoff time.Duration) bool {
	for attempt := 1; ; attempt++ {
		err := handler(ctx, msg)
		if err == nil {
			return true
		}

		if attempt >= attempts {
			log.Error().Err(err).Str("topic", msg.Topic).Int64("offset", msg.Offset).Int("attempts", attempt).Msg("Giving up on Kafka message.")

			return true
		}

		log.Warn().Err(err).Str("topic", msg.Topic).Int64("offset", msg.Offset).Int("attempt", attempt).Msg("Kafka message handler failed, retrying.")

		select {
		case <-ctx.Done():
			return false
		case <-time.After(backoff * time.Duration(attempt)):
		}
	}
}

func (k *client) Close() error {
	return errors.Wrap(k.writer.Close(), "close kafka writer")
}

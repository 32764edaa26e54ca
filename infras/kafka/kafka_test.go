package kafka_test

import (
	"context"
	"errors"
	"testing"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"

	"folio/infras/kafka"
)

type imageEvent struct {
	Type      string `json:"type"`
	StorageID string `json:"storage_id"`
}

func TestMessage_RoundTrip(t *testing.T) {
	msg := kafka.Message{
		Key:   "image-1",
		Value: imageEvent{Type: "image.orphaned", StorageID: "images/abc.jpg"},
	}

	raw, err := msg.ToKafkaMessage()
	assert.NoError(t, err)
	assert.Equal(t, []byte("image-1"), raw.Key)
	assert.JSONEq(t, `{"type":"image.orphaned","storage_id":"images/abc.jpg"}`, string(raw.Value))

	decoded, err := kafka.DecodeKafkaMessage[imageEvent](raw)
	assert.NoError(t, err)
	assert.Equal(t, "image-1", decoded.Key)
	assert.Equal(t, imageEvent{Type: "image.orphaned", StorageID: "images/abc.jpg"}, decoded.Value)
}

func TestMessage_ToKafkaMessageError(t *testing.T) {
	msg := kafka.Message{Key: "bad", Value: make(chan int)}

	_, err := msg.ToKafkaMessage()
	assert.Error(t, err)
}

func TestDeliver(t *testing.T) {
	errStorage := errors.New("storage down")

	tests := []struct {
		name       string
		failures   int
		attempts   int
		wantCalls  int
		wantCommit bool
	}{
		{name: "first attempt succeeds", failures: 0, attempts: 3, wantCalls: 1, wantCommit: true},
		{name: "succeeds after retries", failures: 2, attempts: 3, wantCalls: 3, wantCommit: true},
		{name: "gives up after the last attempt", failures: 5, attempts: 3, wantCalls: 3, wantCommit: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			handler := func(context.Context, kafkaGo.Message) error {
				calls++
				if calls <= tt.failures {
					return errStorage
				}

				return nil
			}

			commit := kafka.Deliver(context.Background(), kafkaGo.Message{Offset: 7}, handler, tt.attempts, time.Millisecond)

			assert.Equal(t, tt.wantCommit, commit)
			assert.Equal(t, tt.wantCalls, calls)
		})
	}
}

func TestDeliver_StopsWhenContextEnds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	handler := func(context.Context, kafkaGo.Message) error {
		calls++
		cancel()

		return errors.New("storage down")
	}

	commit := kafka.Deliver(ctx, kafkaGo.Message{}, handler, 3, time.Hour)

	assert.False(t, commit)
	assert.Equal(t, 1, calls)
}

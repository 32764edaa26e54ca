package worker_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"folio/config"
	"folio/infras/kafka"
	kafkaMocks "folio/infras/kafka/mocks"
	"folio/infras/otel/mocks"
	"folio/internal/domains/image/model/dto"
	imageMocks "folio/internal/domains/image/service/mocks"
	"folio/shared/constant"
	"folio/transport/worker"
)

func message(t *testing.T, event dto.Event) kafkaGo.Message {
	t.Helper()

	value, err := json.Marshal(event)
	require.NoError(t, err)

	return kafkaGo.Message{Key: []byte(event.StorageID), Value: value}
}

func TestWorker_HandleMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockImage := imageMocks.NewMockImage(ctrl)
	w := worker.New(mockImage, kafkaMocks.NewMockClient(ctrl), &config.Config{}, mocks.NewOtel())

	tests := []struct {
		name      string
		message   func() kafkaGo.Message
		setupMock func()
		wantErr   bool
	}{
		{
			name: "orphan event removes asset",
			message: func() kafkaGo.Message {
				return message(t, dto.Event{Type: constant.EventImageOrphaned, StorageID: "images/a.jpg"})
			},
			setupMock: func() {
				mockImage.EXPECT().RemoveOrphan(gomock.Any(), "images/a.jpg").Return(nil)
			},
		},
		{
			name: "removal failure is returned for retry",
			message: func() kafkaGo.Message {
				return message(t, dto.Event{Type: constant.EventImageOrphaned, StorageID: "images/b.jpg"})
			},
			setupMock: func() {
				mockImage.EXPECT().RemoveOrphan(gomock.Any(), "images/b.jpg").Return(errors.New("storage down"))
			},
			wantErr: true,
		},
		{
			name: "other events are ignored",
			message: func() kafkaGo.Message {
				return message(t, dto.Event{Type: constant.EventImageUploaded, ImageID: "img-1"})
			},
			setupMock: func() {},
		},
		{
			name: "orphan event without storage id",
			message: func() kafkaGo.Message {
				return message(t, dto.Event{Type: constant.EventImageOrphaned})
			},
			setupMock: func() {},
		},
		{
			name: "malformed payload",
			message: func() kafkaGo.Message {
				return kafkaGo.Message{Value: []byte("{not json")}
			},
			setupMock: func() {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := w.HandleMessage(context.Background(), tt.message())

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestWorker_Reconcile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockImage := imageMocks.NewMockImage(ctrl)
	w := worker.New(mockImage, kafkaMocks.NewMockClient(ctrl), &config.Config{}, mocks.NewOtel())

	mockImage.EXPECT().ReconcileAssets(gomock.Any()).Return(dto.ReconcileResponse{Scanned: 3, Orphaned: 1, Deleted: 1}, nil)
	w.Reconcile(context.Background())

	mockImage.EXPECT().ReconcileAssets(gomock.Any()).Return(dto.ReconcileResponse{}, errors.New("list failed"))
	w.Reconcile(context.Background())
}

func TestWorker_RunStopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockKafka := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.Topics.ImageEvents = "test.image-events"

	w := worker.New(imageMocks.NewMockImage(ctrl), mockKafka, cfg, mocks.NewOtel())

	mockKafka.EXPECT().
		Consume(gomock.Any(), constant.DefaultConsumerGroup, "test.image-events", gomock.Any()).
		DoAndReturn(func(ctx context.Context, _, _ string, _ kafka.Handler) {
			<-ctx.Done()
		})

	mockKafka.EXPECT().Close().Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		w.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		assert.Fail(t, "worker did not stop after cancellation")
	}
}

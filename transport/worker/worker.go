package worker

import (
	"context"
	"errors"
	"fmt"
	"folio/config"
	"folio/infras/kafka"
	"folio/infras/otel"
	"folio/internal/domains/image/model/dto"
	imageService "folio/internal/domains/image/service"
	"folio/shared/constant"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

var errOrphanWithoutKey = errors.New("orphan event without storage id")

const (
	otelWorkerScopeName = "worker"

	handlerTimeout = 30 * time.Second
)

// Worker runs the background side of the image pipeline: it consumes image events to delete
// assets whose catalog insert failed, and periodically sweeps storage for any orphan the event
// path missed.
type Worker struct {
	image imageService.Image
	kafka kafka.Client
	cfg   *config.Config
	otel  otel.Otel
}

func New(image imageService.Image, kafka kafka.Client, cfg *config.Config, otel otel.Otel) *Worker {
	return &Worker{
		image: image,
		kafka: kafka,
		cfg:   cfg,
		otel:  otel,
	}
}

// Run blocks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	var wg sync.WaitGroup

	wg.Add(2)

	go func() {
		defer wg.Done()

		w.kafka.Consume(ctx, w.consumerGroup(), w.topic(), w.HandleMessage)
	}()

	go func() {
		defer wg.Done()

		w.reconcileLoop(ctx)
	}()

	wg.Wait()

	if err := w.kafka.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close kafka client")
	}

	log.Info().Msg("Worker stopped.")
}

// HandleMessage processes one image event. Only orphan events need work; the rest are logged.
// A failed removal is returned so the consumer retries it; malformed events are dropped.
func (w *Worker) HandleMessage(ctx context.Context, message kafkaGo.Message) (err error) {
	ctx, cancel := context.WithTimeout(ctx, handlerTimeout)
	defer cancel()

	ctx, scope := w.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".HandleImageEvent")
	defer scope.End()

	decoded, err := kafka.DecodeKafkaMessage[dto.Event](message)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Int64("offset", message.Offset).Msg("dropping undecodable image event")

		return nil
	}

	event, ok := decoded.Value.(dto.Event)
	if !ok {
		return nil
	}

	scope.SetAttributes(map[string]any{
		"event.type":       event.Type,
		"event.image_id":   event.ImageID,
		"event.storage_id": event.StorageID,
	})

	if event.Type != constant.EventImageOrphaned {
		log.Debug().Str("type", event.Type).Str("image_id", event.ImageID).Msg("image event received")

		return nil
	}

	if event.StorageID == constant.Empty {
		scope.TraceError(errOrphanWithoutKey)
		log.Warn().Err(errOrphanWithoutKey).Msg("skipping image event")

		return nil
	}

	if err = w.image.RemoveOrphan(ctx, event.StorageID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("storage_id", event.StorageID).Msg("failed to remove orphaned asset")

		return fmt.Errorf("remove orphan %s: %w", event.StorageID, err)
	}

	log.Info().Str("storage_id", event.StorageID).Msg("orphaned asset removed")

	return nil
}

// Reconcile runs one storage sweep.
func (w *Worker) Reconcile(ctx context.Context) {
	ctx, scope := w.otel.NewScope(ctx, otelWorkerScopeName, otelWorkerScopeName+".Reconcile")
	defer scope.End()

	res, err := w.image.ReconcileAssets(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reconcile assets")

		return
	}

	log.Info().
		Int("scanned", res.Scanned).
		Int("orphaned", res.Orphaned).
		Int("deleted", res.Deleted).
		Int("failed", res.Failed).
		Msg("asset reconciliation finished")
}

func (w *Worker) reconcileLoop(ctx context.Context) {
	ticker := time.NewTicker(w.reconcileInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Reconcile(ctx)
		}
	}
}

func (w *Worker) reconcileInterval() time.Duration {
	seconds := w.cfg.Worker.ReconcileIntervalSeconds
	if seconds <= 0 {
		seconds = constant.DefaultReconcileIntervalSeconds
	}

	return time.Duration(seconds) * time.Second
}

func (w *Worker) topic() string {
	if w.cfg.Kafka.Topics.ImageEvents != constant.Empty {
		return w.cfg.Kafka.Topics.ImageEvents
	}

	return constant.DefaultTopicImageEvents
}

func (w *Worker) consumerGroup() string {
	if w.cfg.Kafka.ConsumerGroup != constant.Empty {
		return w.cfg.Kafka.ConsumerGroup
	}

	return constant.DefaultConsumerGroup
}

package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sekolahub/sekolahub-backend/internal/config"
	"github.com/sekolahub/sekolahub-backend/internal/model"
	"github.com/sekolahub/sekolahub-backend/internal/service"
	"github.com/sekolahub/sekolahub-backend/internal/store"
)

// CompletionWorker consumes the completion queue and persists lesson-
// completion markers to PostgreSQL. The API path only validates and
// enqueues; this worker does the writing.
type CompletionWorker struct {
	completions *store.Store[*model.LessonCompletion]
	rdb         *redis.Client
	log         zerolog.Logger
}

// NewCompletionWorker creates a new CompletionWorker.
func NewCompletionWorker(completions *store.Store[*model.LessonCompletion], rdb *redis.Client, log zerolog.Logger) *CompletionWorker {
	return &CompletionWorker{
		completions: completions,
		rdb:         rdb,
		log:         log.With().Str("component", "completion_worker").Logger(),
	}
}

// Start begins the infinite worker loop. Call in a goroutine.
func (w *CompletionWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			// Drain remaining items before exit.
			w.drain(context.Background())
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *CompletionWorker) processNext(ctx context.Context) {
	// BLPop blocks until an item is available or timeout (1 second).
	result, err := w.rdb.BLPop(ctx, time.Second, config.CacheKey.CompletionQueueKey()).Result()
	if err != nil {
		if err != redis.Nil && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
		}
		return
	}

	if len(result) < 2 {
		return
	}

	var msg service.CompletionMessage
	if err := json.Unmarshal([]byte(result[1]), &msg); err != nil {
		w.log.Error().Err(err).Msg("Unmarshal error")
		return
	}

	if err := w.persist(ctx, &msg); err != nil {
		w.log.Error().Err(err).
			Str("student_id", msg.StudentID.String()).
			Str("lesson_id", msg.LessonID.String()).
			Msg("Persist error, retrying in 5s")
		// Push back to queue for retry.
		w.rdb.RPush(ctx, config.CacheKey.CompletionQueueKey(), result[1])
		time.Sleep(5 * time.Second)
	}
}

func (w *CompletionWorker) persist(ctx context.Context, msg *service.CompletionMessage) error {
	completion := &model.LessonCompletion{
		SchoolID:    msg.SchoolID,
		StudentID:   msg.StudentID,
		LessonID:    msg.LessonID,
		CompletedAt: msg.CompletedAt,
	}
	completion.IsActive = true
	return w.completions.Create(ctx, completion)
}

// drain processes all remaining items in the queue before shutdown.
func (w *CompletionWorker) drain(ctx context.Context) {
	drained := 0
	for {
		result, err := w.rdb.LPop(ctx, config.CacheKey.CompletionQueueKey()).Result()
		if err != nil {
			break
		}

		var msg service.CompletionMessage
		if err := json.Unmarshal([]byte(result), &msg); err != nil {
			w.log.Error().Err(err).Msg("Drain unmarshal error")
			continue
		}

		if err := w.persist(ctx, &msg); err != nil {
			w.log.Error().Err(err).Msg("Drain persist error")
			w.rdb.RPush(ctx, config.CacheKey.CompletionQueueKey(), result)
			break
		}
		drained++
	}

	if drained > 0 {
		w.log.Info().Int("count", drained).Msg("Drained remaining items")
	}
}

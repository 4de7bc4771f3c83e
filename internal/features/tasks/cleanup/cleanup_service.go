package tasks_cleanup

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"tasktracker/internal/config"
	"tasktracker/internal/objectstore"
	cache_utils "tasktracker/internal/util/cache"
	"tasktracker/internal/util/logger"
)

const (
	cleanupQueueKey = "tasktracker:attachment_cleanup"
	cleanupInterval = 30 * time.Second
	dequeueBatch    = 100
	maxAttempts     = 5
)

type cleanupItem struct {
	StorageKey string `json:"storageKey"`
	Attempts   int    `json:"attempts"`
}

// AttachmentCleanupService removes attachment objects from the external
// store after their records are gone. Deletes are queued, not inline, so a
// slow or failing store never blocks request handling. Failed deletes are
// re-enqueued with a bounded attempt count.
type AttachmentCleanupService struct {
	queueService *cache_utils.ValkeyQueueService
	store        objectstore.Store
	logger       *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// SetupForTest wires the queue and a replacement store, keeping the real
// storage configuration untouched.
func (s *AttachmentCleanupService) SetupForTest(store objectstore.Store) {
	s.queueService = cache_utils.NewValkeyQueueService()
	s.store = store
	s.logger = logger.GetLogger()
}

// EnqueueStorageKeys schedules remote deletion of the given object keys.
// Enqueue failures are logged and swallowed, local state stays authoritative.
func (s *AttachmentCleanupService) EnqueueStorageKeys(keys []string) {
	if len(keys) == 0 {
		return
	}

	items := make([][]byte, 0, len(keys))
	for _, key := range keys {
		data, err := json.Marshal(cleanupItem{StorageKey: key})
		if err != nil {
			continue
		}
		items = append(items, data)
	}

	if err := s.queueService.EnqueueBatch(cleanupQueueKey, items); err != nil {
		s.logger.Error("Failed to enqueue attachment cleanup",
			slog.Int("keys", len(keys)),
			slog.String("error", err.Error()))
	}
}

// EnqueueStorageKey schedules remote deletion of a single object key.
func (s *AttachmentCleanupService) EnqueueStorageKey(key string) {
	if key == "" {
		return
	}

	data, err := json.Marshal(cleanupItem{StorageKey: key})
	if err != nil {
		return
	}

	if err := s.queueService.Enqueue(cleanupQueueKey, data); err != nil {
		s.logger.Error("Failed to enqueue attachment cleanup",
			slog.String("storageKey", key),
			slog.String("error", err.Error()))
	}
}

// StartWorkers should only be called on ONE instance.
func (s *AttachmentCleanupService) StartWorkers() {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.logger.Info("Starting attachment cleanup worker",
		slog.Duration("interval", cleanupInterval))

	s.wg.Add(1)
	go s.cleanupWorker()
}

func (s *AttachmentCleanupService) cleanupWorker() {
	defer s.wg.Done()

	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		if config.IsShouldShutdown() {
			s.logger.Info("Attachment cleanup worker shutting down due to shutdown signal")
			return
		}

		select {
		case <-s.ctx.Done():
			s.logger.Info("Attachment cleanup worker shutting down")
			return

		case <-ticker.C:
			if err := s.processQueue(); err != nil {
				s.logger.Error("Error during attachment cleanup", slog.String("error", err.Error()))
			}
		}
	}
}

// ExecuteCleanupForTest drains one batch synchronously.
func (s *AttachmentCleanupService) ExecuteCleanupForTest() error {
	return s.processQueue()
}

func (s *AttachmentCleanupService) processQueue() error {
	items, err := s.queueService.DequeueBatch(cleanupQueueKey, dequeueBatch)
	if err != nil {
		return err
	}

	if len(items) == 0 {
		return nil
	}

	deleted := 0
	var retries [][]byte

	for _, raw := range items {
		var item cleanupItem
		if err := json.Unmarshal(raw, &item); err != nil {
			s.logger.Error("Dropping malformed cleanup item", slog.String("error", err.Error()))
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := s.store.Delete(ctx, item.StorageKey)
		cancel()

		if err == nil {
			deleted++
			continue
		}

		item.Attempts++
		if item.Attempts >= maxAttempts {
			s.logger.Error("Giving up on attachment remote deletion",
				slog.String("storageKey", item.StorageKey),
				slog.Int("attempts", item.Attempts),
				slog.String("error", err.Error()))
			continue
		}

		data, marshalErr := json.Marshal(item)
		if marshalErr != nil {
			continue
		}
		retries = append(retries, data)
	}

	if len(retries) > 0 {
		if err := s.queueService.EnqueueBatch(cleanupQueueKey, retries); err != nil {
			return err
		}
	}

	s.logger.Info("Attachment cleanup batch processed",
		slog.Int("deleted", deleted),
		slog.Int("retried", len(retries)))

	return nil
}

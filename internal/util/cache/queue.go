package cache_utils

import (
	"context"
	"time"

	"tasktracker/internal/cache"

	"github.com/valkey-io/valkey-go"
)

type ValkeyQueueService struct {
	client  valkey.Client
	timeout time.Duration
}

func NewValkeyQueueService() *ValkeyQueueService {
	return &ValkeyQueueService{
		client:  cache.GetCache(),
		timeout: DefaultQueueTimeout,
	}
}

func (q *ValkeyQueueService) Enqueue(queueKey string, item []byte) error {
	return q.EnqueueBatch(queueKey, [][]byte{item})
}

func (q *ValkeyQueueService) EnqueueBatch(queueKey string, items [][]byte) error {
	if len(items) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()

	cmds := make([]valkey.Completed, 0, len(items))

	for _, item := range items {
		cmd := q.client.B().Lpush().Key(queueKey).Element(string(item)).Build()
		cmds = append(cmds, cmd)
	}

	results := q.client.DoMulti(ctx, cmds...)

	for _, result := range results {
		if result.Error() != nil {
			return result.Error()
		}
	}

	return nil
}

func (q *ValkeyQueueService) DequeueBatch(queueKey string, maxCount int) ([][]byte, error) {
	if maxCount <= 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()

	var results [][]byte

	// BRPOP only returns one item at a time, so batch dequeue is a pipeline
	// of plain RPOPs; an empty queue simply ends the batch early.
	cmds := make([]valkey.Completed, 0, maxCount)

	for i := 0; i < maxCount; i++ {
		cmd := q.client.B().Rpop().Key(queueKey).Build()
		cmds = append(cmds, cmd)
	}

	responses := q.client.DoMulti(ctx, cmds...)

	for _, response := range responses {
		if response.Error() != nil {
			if response.Error() == valkey.Nil {
				break
			}
			return results, response.Error()
		}

		data, err := response.AsBytes()
		if err != nil {
			return results, err
		}

		results = append(results, data)
	}

	return results, nil
}

func (q *ValkeyQueueService) QueueLength(queueKey string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()

	cmd := q.client.B().Llen().Key(queueKey).Build()
	result := q.client.Do(ctx, cmd)

	if result.Error() != nil {
		return 0, result.Error()
	}

	return result.AsInt64()
}

func (q *ValkeyQueueService) ClearQueue(queueKey string) error {
	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()

	cmd := q.client.B().Del().Key(queueKey).Build()
	result := q.client.Do(ctx, cmd)

	return result.Error()
}

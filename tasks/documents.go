package tasks

import (
	"context"

	"github.com/morispolanco/subjuntivo-buscador/redis"
)

const DocumentsDB redis.DB = 0

type DocumentTask struct {
	FailedTasks  []string            `json:"failed_tasks"`
	FailedChunks map[string][]string `json:"failed_chunks"`
}

// DocumentTaskCached is the small copy of a document task that workers poll.
type DocumentTaskCached struct {
	FailedTasks []string `json:"failed_tasks"`
}

type DocumentTasks struct {
	client *redis.Client
}

func (tasks DocumentTasks) Get(ctx context.Context, redisKey string) (*DocumentTask, error) {
	var task DocumentTask
	if err := tasks.client.GetDocument(ctx, redisKey, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (tasks DocumentTasks) GetCached(ctx context.Context, redisKey string) (*DocumentTaskCached, error) {
	var task DocumentTaskCached
	if err := tasks.client.GetDocument(ctx, cachedPropertiesKey(redisKey), &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Update changes the document task and then refreshes its cached properties.
func (tasks DocumentTasks) Update(ctx context.Context, redisKey string, updateFunc func(task *DocumentTask)) error {
	var task DocumentTask
	err := tasks.client.UpdateDocument(ctx, redisKey, &task, func() {
		if task.FailedChunks == nil {
			task.FailedChunks = make(map[string][]string)
		}
		updateFunc(&task)
	})
	if err != nil {
		return err
	}

	var cached DocumentTaskCached
	return tasks.client.UpdateDocument(ctx, cachedPropertiesKey(redisKey), &cached, func() {
		cached.FailedTasks = task.FailedTasks
	})
}

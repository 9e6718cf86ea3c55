package tasks

import (
	"context"

	"github.com/morispolanco/subjuntivo-buscador/redis"
)

const JobsDB redis.DB = 1

type JobTask struct {
	UserCanceled           bool `json:"user_canceled"`
	StopDocumentsOnFailure bool `json:"stop_documents_on_failure"`
}

type JobTasks struct {
	client *redis.Client
}

func (tasks JobTasks) GetCached(ctx context.Context, redisKey string) (*JobTask, error) {
	var task JobTask
	if err := tasks.client.GetDocument(ctx, cachedPropertiesKey(redisKey), &task); err != nil {
		return nil, err
	}
	return &task, nil
}

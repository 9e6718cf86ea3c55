package worker

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/morispolanco/subjuntivo-buscador/tasks"
)

type redisTransactions interface {
	getChunkTask(ctx context.Context, redisKey string) (*tasks.ChunkTask, error)
	getJobTask(ctx context.Context, task *Task) (*tasks.JobTask, error)
	getDocTask(ctx context.Context, task *Task) (*tasks.DocumentTaskCached, error)
	onTaskStarted(ctx context.Context, task *Task) error
	onTaskCancelled(ctx context.Context, task *Task, errorMessages ...string) error
	onTaskExceededRetries(ctx context.Context, task *Task, maxRetries int) error
	onTaskFailedWithError(ctx context.Context, task *Task, err error) error
	onTaskComplete(ctx context.Context, task *Task) error
	close()
}

type redisClientWrapper struct {
	tasksClient *tasks.Client
}

func (wrapper *redisClientWrapper) close() {
	wrapper.tasksClient.Close()
}

func (wrapper *redisClientWrapper) onTaskStarted(ctx context.Context, task *Task) error {
	return wrapper.tasksClient.Chunks.Update(ctx, task.redisKey, func(chunkTask *tasks.ChunkTask) {
		info := &chunkTask.TaskStatuses.Subjunctive
		info.Status = tasks.TaskStatusStarted
		info.Attempts++
		info.StartedAt = formattedNow()
		info.CompletedAt = nil
	})
}

func (wrapper *redisClientWrapper) onTaskCancelled(ctx context.Context, task *Task, errorMessages ...string) error {
	return wrapper.tasksClient.Chunks.Update(ctx, task.redisKey, func(chunkTask *tasks.ChunkTask) {
		info := &chunkTask.TaskStatuses.Subjunctive
		info.Status = tasks.TaskStatusCanceled
		info.StartedAt = formattedNow()
		info.CompletedAt = formattedNow()
		info.Attempts++
		info.ErrorMessages = append(info.ErrorMessages, errorMessages...)
	})
}

// onTaskExceededRetries marks the document and the chunk as failed. The two records
// live in different databases and are updated concurrently.
func (wrapper *redisClientWrapper) onTaskExceededRetries(ctx context.Context, task *Task, maxRetries int) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return wrapper.tasksClient.Documents.Update(gctx, task.chunkTask.DocID, func(docTask *tasks.DocumentTask) {
			docTask.FailedTasks = append(docTask.FailedTasks, tasks.WorkerName)
			docTask.FailedChunks[task.redisKey] = append(docTask.FailedChunks[task.redisKey], tasks.WorkerName)
		})
	})
	g.Go(func() error {
		return wrapper.tasksClient.Chunks.Update(gctx, task.redisKey, func(chunkTask *tasks.ChunkTask) {
			info := &chunkTask.TaskStatuses.Subjunctive
			info.Status = tasks.TaskStatusCompletedFailure
			info.StartedAt = formattedNow()
			info.CompletedAt = formattedNow()
			info.Attempts++
			info.ErrorMessages = append(
				info.ErrorMessages,
				fmt.Sprintf(
					"Task has exceeded retries. (Attempts: %d, max retries: %d )",
					info.Attempts,
					maxRetries,
				),
			)
		})
	})
	return g.Wait()
}

func (wrapper *redisClientWrapper) onTaskFailedWithError(ctx context.Context, task *Task, err error) error {
	return wrapper.tasksClient.Chunks.Update(ctx, task.redisKey, func(chunkTask *tasks.ChunkTask) {
		info := &chunkTask.TaskStatuses.Subjunctive
		info.Status = tasks.TaskStatusFailed
		info.CompletedAt = formattedNow()
		info.ErrorMessages = append(info.ErrorMessages, err.Error())
	})
}

func (wrapper *redisClientWrapper) onTaskComplete(ctx context.Context, task *Task) error {
	return wrapper.tasksClient.Chunks.Update(ctx, task.redisKey, func(chunkTask *tasks.ChunkTask) {
		info := &chunkTask.TaskStatuses.Subjunctive
		if !info.Status.Complete() {
			info.Status = tasks.TaskStatusCompletedSuccess
		}
		info.CompletedAt = formattedNow()
		info.ResultsFileKey = task.resultsFileKey()
		info.Strategy = task.outcome.Strategy
		info.Findings = task.outcome.Findings
		info.Warnings = task.outcome.Warnings
	})
}

func (wrapper *redisClientWrapper) getChunkTask(ctx context.Context, redisKey string) (*tasks.ChunkTask, error) {
	return wrapper.tasksClient.Chunks.Get(ctx, redisKey)
}

func (wrapper *redisClientWrapper) getJobTask(ctx context.Context, task *Task) (*tasks.JobTask, error) {
	return wrapper.tasksClient.Jobs.GetCached(ctx, task.chunkTask.JobID)
}

func (wrapper *redisClientWrapper) getDocTask(ctx context.Context, task *Task) (*tasks.DocumentTaskCached, error) {
	return wrapper.tasksClient.Documents.GetCached(ctx, task.chunkTask.DocID)
}

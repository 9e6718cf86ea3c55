package tasks

import (
	"context"

	"github.com/morispolanco/subjuntivo-buscador/redis"
)

const ChunksDB redis.DB = 2

// WorkerName is the key of this worker's entry in task_statuses.
const WorkerName = "subjunctive"

type TaskStatus string

const (
	TaskStatusProcessing       TaskStatus = "processing"
	TaskStatusSubmitted        TaskStatus = "submitted"
	TaskStatusStarted          TaskStatus = "started"
	TaskStatusFailed           TaskStatus = "failed"
	TaskStatusCompletedSuccess TaskStatus = "completed - success"
	TaskStatusCompletedFailure TaskStatus = "completed - failure"
	TaskStatusCanceled         TaskStatus = "canceled"
)

func (s TaskStatus) Complete() bool {
	return s == TaskStatusCompletedSuccess || s == TaskStatusCompletedFailure || s == TaskStatusCanceled
}

func (s TaskStatus) Submitted() bool {
	return s == TaskStatusSubmitted || s == TaskStatusStarted || s == TaskStatusProcessing
}

// ChunkTask is one piece of a document queued for analysis.
type ChunkTask struct {
	DocID        string            `json:"document_id"`
	JobID        string            `json:"job_id"`
	TextFileKey  string            `json:"text_file_key"`
	TaskStatuses ChunkTaskStatuses `json:"task_statuses"`
}

type ChunkTaskStatuses struct {
	Subjunctive ChunkTaskInfo `json:"subjunctive"`
}

type ChunkTaskInfo struct {
	ResultsFileKey string     `json:"results_file_key"`
	Strategy       string     `json:"strategy,omitempty"`
	StartedAt      *string    `json:"started_at"`
	CompletedAt    *string    `json:"completed_at"`
	Attempts       int        `json:"attempts"`
	Status         TaskStatus `json:"status"`
	Findings       int        `json:"findings"`
	Warnings       []string   `json:"warnings,omitempty"`
	ErrorMessages  []string   `json:"error_messages"`
}

type ChunkTasks struct {
	client *redis.Client
}

func (tasks ChunkTasks) Get(ctx context.Context, redisKey string) (*ChunkTask, error) {
	var task ChunkTask
	if err := tasks.client.GetDocument(ctx, redisKey, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (tasks ChunkTasks) Update(ctx context.Context, redisKey string, updateFunc func(task *ChunkTask)) error {
	var task ChunkTask
	return tasks.client.UpdateDocument(ctx, redisKey, &task, func() {
		updateFunc(&task)
	})
}

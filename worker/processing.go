package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/rs/zerolog"
	"github.com/streadway/amqp"

	"github.com/morispolanco/subjuntivo-buscador/pipeline"
	"github.com/morispolanco/subjuntivo-buscador/tasks"
	"github.com/morispolanco/subjuntivo-buscador/types"
	"github.com/morispolanco/subjuntivo-buscador/utils"
)

const RFC3339Micro = "2006-01-02T15:04:05.000000-07:00"

type Message struct {
	WorkType string `json:"work_type"`
	RedisKey string `json:"redis_key"`
	Sender   string `json:"sender"`
	Version  string `json:"version"`
}

// Outcome summarizes a finished analysis on the chunk task.
type Outcome struct {
	Strategy string
	Findings int
	Warnings []string
}

type Task struct {
	delivery     *amqp.Delivery
	chunkTask    *tasks.ChunkTask
	message      *Message
	redisKey     string
	outcome      Outcome
	workerLogger *zerolog.Logger
}

func (task *Task) resultsFileKey() string {
	return path.Join(
		"processed",
		"documents",
		task.chunkTask.DocID,
		"chunks",
		task.redisKey,
		task.redisKey+".subjunctive.json",
	)
}

func formattedNow() *string {
	now := time.Now().UTC().Format(RFC3339Micro)
	return &now
}

func (worker *Worker) processMessage(ctx context.Context, delivery *amqp.Delivery) {
	rejectLogger := worker.workerLogger.With().Str("message_id", delivery.MessageId).Logger()
	task, err := worker.createTask(ctx, delivery)
	if err != nil {
		worker.workerLogger.Err(err).
			Str("message_id", delivery.MessageId).
			Str("body", string(delivery.Body)).
			Msg("Failed to create task for delivery")
		worker.rmq.rejectDelivery(delivery, &rejectLogger)
		return
	}
	if err = worker.processTask(ctx, task); err != nil {
		worker.rmq.rejectDelivery(delivery, &rejectLogger)
		return
	}
	if err = worker.rmq.notifyResults(task, *task.message); err != nil {
		task.workerLogger.Err(err).Msg("Got error while sending message to results queue")
		worker.rmq.rejectDelivery(delivery, &rejectLogger)
		return
	}
	if err = worker.rmq.acknowledgeDelivery(delivery); err != nil {
		task.workerLogger.Err(err).Msg("Failed to acknowledge delivery")
	}
	task.workerLogger.Info().Msg("Finished processing RMQ message")
}

func (worker *Worker) createTask(ctx context.Context, delivery *amqp.Delivery) (*Task, error) {
	var message Message
	err := json.Unmarshal(delivery.Body, &message)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal message, got error %w", err)
	}
	chunkTask, err := worker.redis.getChunkTask(ctx, message.RedisKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunk task for message, got error %w", err)
	}
	taskLogger := worker.workerLogger.With().Str("tid", message.RedisKey).Logger()
	task := Task{
		delivery:     delivery,
		chunkTask:    chunkTask,
		redisKey:     message.RedisKey,
		message:      &message,
		workerLogger: &taskLogger,
	}
	return &task, nil
}

func (worker *Worker) processTask(ctx context.Context, task *Task) error {
	shouldPerform, err := worker.shouldPerformTask(ctx, task)
	if err != nil {
		task.workerLogger.Err(err).
			Msg("Got error while trying to decide whether to run task")
		return err
	}
	if !shouldPerform {
		return nil
	}
	if err = worker.redis.onTaskStarted(ctx, task); err != nil {
		task.workerLogger.Err(err).Msg("Failed to update task info")
		return fmt.Errorf("failed to update TaskInfo: %w", err)
	}
	if err = worker.runPipeline(ctx, task); err != nil {
		task.workerLogger.Err(err).Msg("Got error while running pipeline")
		if err = worker.redis.onTaskFailedWithError(ctx, task, err); err != nil {
			return err
		}
		return nil
	}
	task.workerLogger.Info().Msg("Saved results, marking task as complete")
	if err = worker.redis.onTaskComplete(ctx, task); err != nil {
		task.workerLogger.Err(err).Msg("Got error while trying to mark task as complete")
		return err
	}
	return nil
}

func (worker *Worker) runPipeline(ctx context.Context, task *Task) (err error) {
	defer utils.RecoverWithError(&err)
	task.workerLogger.Info().Msgf("Processing message from RMQ, attempt # %d", task.chunkTask.TaskStatuses.Subjunctive.Attempts)
	data, err := worker.s3.getProcessedData(task)
	if err != nil {
		task.workerLogger.Err(err).Caller().Msg("Could not fetch text data from s3")
		return fmt.Errorf("failed fetch data from s3: %w", err)
	}

	analysisCtx, cancel := context.WithTimeout(ctx, worker.config.analysisTimeout())
	defer cancel()
	request := pipeline.Request{
		Tid:  task.redisKey,
		Text: string(data),
	}
	result, ok := <-worker.ppln(analysisCtx, request)
	if !ok {
		task.workerLogger.Error().Msg("Pipeline channel was closed before returning anything")
		return errors.New("pipeline channel was closed before returning anything")
	}
	var response types.SubjunctiveResponse
	if err = json.Unmarshal([]byte(result), &response); err != nil {
		return fmt.Errorf("pipeline returned a malformed response: %w", err)
	}
	task.outcome = Outcome{
		Strategy: response.Strategy,
		Findings: response.Summary.Total,
		Warnings: response.Warnings,
	}

	task.workerLogger.Info().Int("findings", task.outcome.Findings).Msg("Finished pipeline, saving results to s3")
	if err = worker.s3.saveResultsFile(task, result); err != nil {
		task.workerLogger.Err(err).Msg("Got error while trying to save results")
		return err
	}
	return nil
}

func (worker *Worker) shouldPerformTask(ctx context.Context, task *Task) (bool, error) {
	taskInfo := task.chunkTask.TaskStatuses.Subjunctive
	taskLogger := task.workerLogger

	if taskInfo.Status.Complete() {
		taskLogger.Info().Msg("Task is already done. (might indicate issue acking message with RMQ). Sending back results notification.")
		return false, nil
	}
	taskJob, err := worker.redis.getJobTask(ctx, task)
	if err != nil {
		taskLogger.Err(err).Msg("Failed to query job task for chunk task")
		return false, err
	}
	if taskJob.UserCanceled {
		taskLogger.Info().Msg("Job was canceled, no need to perform this task.")
		err := worker.redis.onTaskCancelled(ctx, task)
		return false, err
	}
	if taskJob.StopDocumentsOnFailure {
		docTask, err := worker.redis.getDocTask(ctx, task)
		if err != nil {
			return false, err
		}
		if docTask == nil {
			return false, errors.New("document task not found")
		}
		if len(docTask.FailedTasks) > 0 {
			failedTask := docTask.FailedTasks[0]
			taskLogger.Info().Msgf("Task is not required because %q already completed with failure "+
				"and the document won't be processed successfully.", failedTask)
			err := worker.redis.onTaskCancelled(
				ctx,
				task,
				fmt.Sprintf(
					"Task was marked as %q because the current document has failed "+
						"in the %q worker and won't be processed successfully.",
					tasks.TaskStatusCanceled,
					failedTask,
				),
			)
			return false, err
		}
	}
	if taskInfo.Attempts >= worker.config.TaskMaxRetries {
		taskLogger.Info().Msg("Subjunctive task has exceeded retries.")
		err = worker.redis.onTaskExceededRetries(ctx, task, worker.config.TaskMaxRetries)
		return false, err
	}
	return true, nil
}

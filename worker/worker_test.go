package worker

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morispolanco/subjuntivo-buscador/logger"
	"github.com/morispolanco/subjuntivo-buscador/tasks"
)

type mockedClientsConfig struct {
	rmqMockConfig
	redisMockConfig
	s3MockConfig
	pipelineMockConfig
}

type mockedClients struct {
	redis    *redisMock
	rmq      *rmqMock
	s3       *s3Mock
	pipeline *pipelineMock
}

type methodsCalls struct {
	redis    redisMockCalls
	rmq      rmqMockCalls
	s3       s3MockCalls
	pipeline pipelineCall
}

func testConfiguration(t *testing.T, config mockedClientsConfig, expectedCalls methodsCalls) {
	worker, mocks := configureWorker(config)
	worker.processMessage(context.Background(), &amqp.Delivery{
		Body: []byte(`{"redis_key": "chunk"}`),
	})
	calls := methodsCalls{
		redis:    mocks.redis.calls,
		rmq:      mocks.rmq.calls,
		s3:       mocks.s3.calls,
		pipeline: mocks.pipeline.calls,
	}
	if diff := cmp.Diff(expectedCalls, calls, cmp.AllowUnexported(
		methodsCalls{}, redisMockCalls{}, rmqMockCalls{}, s3MockCalls{}, pipelineCall{},
	)); diff != "" {
		t.Errorf("Got unexpected called methods set (-want +got):\n%s", diff)
	}
}

func configureWorker(config mockedClientsConfig) (*Worker, *mockedClients) {
	redis := &redisMock{config: config.redisMockConfig}
	s3 := &s3Mock{config: config.s3MockConfig}
	rmq := &rmqMock{config: config.rmqMockConfig}
	pplnMock := getPipelineMock(config.pipelineMockConfig)

	workerLogger := logger.NewLogger("Test Worker")

	return &Worker{
			config:       Config{TaskMaxRetries: 3, AnalysisTimeoutSeconds: 10},
			redis:        redis,
			s3:           s3,
			rmq:          rmq,
			workerLogger: &workerLogger,
			ppln:         pplnMock.ppln,
		}, &mockedClients{
			redis:    redis,
			rmq:      rmq,
			s3:       s3,
			pipeline: pplnMock,
		}
}

func TestWorker(t *testing.T) {
	t.Run("Successful", testSuccessfulTask)
	t.Run("Successful with job_task.stop_docs_on_failure == True", testSuccessfulTaskWithDocCheck)
	t.Run("Failed to get Chunk task", testGetChunkTaskFailed)
	t.Run("Failed to get Job task", testGetJobTaskFailed)
	t.Run("Failed to get Doc task", testGetDocTaskFailed)
	t.Run("Already complete with success", testAlreadyCompletedSuccessfully)
	t.Run("Already complete with failure", testAlreadyCompletedWithFailure)
	t.Run("User cancelled", testUserCancelled)
	t.Run("Exceeded attempts", testExceededAttempts)
	t.Run("Cancelled because other worker already failed", testCancelledBecauseOfOtherWorkerFailure)
	t.Run("Failed to update task in onTaskStarted", testFailedToUpdateOnTaskStarted)
	t.Run("Failed to load data from S3", testFailedToFetchFromS3)
	t.Run("Failed due to pipeline error", testPipelineError)
	t.Run("Failed to update task in onTaskFailedWithError", testFailedToUpdateOnTaskFailedWithError)
	t.Run("Failed to update task in onTaskComplete", testFailedToUpdateOnTaskComplete)
	t.Run("Failed to save result to S3", testFailedToSaveToS3)
	t.Run("Failed to acknowledge delivery", testFailedAckDelivery)
	t.Run("Failed to notify results queue", testFailedNotifyResults)
	t.Run("Malformed pipeline response", testMalformedPipelineResponse)
	t.Run("Invalid message body", testInvalidMessageBody)
}

func testMalformedPipelineResponse(t *testing.T) {
	testConfiguration(
		t,
		mockedClientsConfig{
			pipelineMockConfig: pipelineMockConfig{result: "not json"},
		},
		methodsCalls{
			redis: redisMockCalls{
				getChunkTask: true, getJobTask: true, onTaskStarted: true, onTaskFailedWithError: true,
			},
			rmq: rmqMockCalls{notifyResults: true, acknowledgeDelivery: true},
			s3: s3MockCalls{
				getProcessedData: true,
			},
			pipeline: pipelineCall{true},
		},
	)
}

func testInvalidMessageBody(t *testing.T) {
	worker, mocks := configureWorker(mockedClientsConfig{})
	worker.processMessage(context.Background(), &amqp.Delivery{Body: []byte("not json")})
	assert.False(t, mocks.redis.calls.getChunkTask)
	assert.True(t, mocks.rmq.calls.rejectDelivery)
	assert.False(t, mocks.pipeline.calls.pipeline)
}

func TestWorkerRecordsOutcome(t *testing.T) {
	worker, mocks := configureWorker(mockedClientsConfig{
		redisMockConfig: redisMockConfig{
			getChunkTask: withValue{returnedValue: tasks.ChunkTask{
				DocID:       "doc-1",
				JobID:       "job-1",
				TextFileKey: "processed/documents/doc-1/chunks/chunk/chunk.txt",
			}},
		},
	})
	worker.processMessage(context.Background(), &amqp.Delivery{
		Body: []byte(`{"redis_key": "chunk", "work_type": "document"}`),
	})

	require.Len(t, mocks.pipeline.received.requests, 1)
	assert.Equal(t, "chunk", mocks.pipeline.received.requests[0].Tid)
	assert.Equal(t, "Espero que vengas a la fiesta.", mocks.pipeline.received.requests[0].Text)

	require.Len(t, mocks.s3.saved, 1)
	assert.Equal(t, "processed/documents/doc-1/chunks/chunk/chunk.subjunctive.json", mocks.s3.saved[0].key)
	assert.Equal(t, defaultPipelineResult, mocks.s3.saved[0].result)

	require.Len(t, mocks.redis.completed, 1)
	assert.Equal(t, Outcome{Strategy: "tagged", Findings: 1, Warnings: []string{}}, mocks.redis.completed[0])
}

func TestFormattedNow(t *testing.T) {
	now := formattedNow()
	require.NotNil(t, now)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{6}\+00:00$`, *now)
}

func testSuccessfulTask(t *testing.T) {
	testConfiguration(
		t,
		mockedClientsConfig{},
		methodsCalls{
			redis: redisMockCalls{
				getChunkTask: true, getJobTask: true, onTaskStarted: true, onTaskComplete: true,
			},
			rmq: rmqMockCalls{notifyResults: true, acknowledgeDelivery: true},
			s3: s3MockCalls{
				getProcessedData: true,
				saveResultsFile:  true,
			},
			pipeline: pipelineCall{true},
		},
	)
}

func testSuccessfulTaskWithDocCheck(t *testing.T) {
	testConfiguration(
		t,
		mockedClientsConfig{
			redisMockConfig: redisMockConfig{
				getJobTask: withValue{returnedValue: tasks.JobTask{StopDocumentsOnFailure: true}},
			},
		},
		methodsCalls{
			redis: redisMockCalls{
				getChunkTask: true, getJobTask: true, getDocTask: true, onTaskStarted: true, onTaskComplete: true,
			},
			rmq: rmqMockCalls{notifyResults: true, acknowledgeDelivery: true},
			s3: s3MockCalls{
				getProcessedData: true,
				saveResultsFile:  true,
			},
			pipeline: pipelineCall{true},
		},
	)
}

func testAlreadyCompletedSuccessfully(t *testing.T) {
	testConfiguration(
		t,
		mockedClientsConfig{
			redisMockConfig: redisMockConfig{
				getChunkTask: withValue{
					returnedValue: tasks.ChunkTask{
						TaskStatuses: tasks.ChunkTaskStatuses{Subjunctive: tasks.ChunkTaskInfo{Status: tasks.TaskStatusCompletedSuccess}},
					},
				},
			},
		},
		methodsCalls{
			redis: redisMockCalls{getChunkTask: true},
			rmq:   rmqMockCalls{notifyResults: true, acknowledgeDelivery: true},
		},
	)
}

func testAlreadyCompletedWithFailure(t *testing.T) {
	testConfiguration(
		t,
		mockedClientsConfig{
			redisMockConfig: redisMockConfig{
				getChunkTask: withValue{
					returnedValue: tasks.ChunkTask{
						TaskStatuses: tasks.ChunkTaskStatuses{Subjunctive: tasks.ChunkTaskInfo{Status: tasks.TaskStatusCompletedFailure}},
					},
				},
			},
		},
		methodsCalls{
			redis: redisMockCalls{getChunkTask: true},
			rmq:   rmqMockCalls{notifyResults: true, acknowledgeDelivery: true},
		},
	)
}

func testUserCancelled(t *testing.T) {
	testConfiguration(
		t,
		mockedClientsConfig{
			redisMockConfig: redisMockConfig{
				getJobTask: withValue{returnedValue: tasks.JobTask{UserCanceled: true}},
			},
		},
		methodsCalls{
			redis: redisMockCalls{getChunkTask: true, getJobTask: true, onTaskCancelled: true},
			rmq:   rmqMockCalls{notifyResults: true, acknowledgeDelivery: true},
		},
	)
}

func testExceededAttempts(t *testing.T) {
	testConfiguration(
		t,
		mockedClientsConfig{
			redisMockConfig: redisMockConfig{
				getChunkTask: withValue{
					returnedValue: tasks.ChunkTask{
						TaskStatuses: tasks.ChunkTaskStatuses{Subjunctive: tasks.ChunkTaskInfo{Attempts: 3}},
					},
				},
			},
		},
		methodsCalls{
			redis: redisMockCalls{getChunkTask: true, getJobTask: true, onTaskExceededRetries: true},
			rmq:   rmqMockCalls{notifyResults: true, acknowledgeDelivery: true},
		},
	)
}

func testCancelledBecauseOfOtherWorkerFailure(t *testing.T) {
	testConfiguration(
		t,
		mockedClientsConfig{
			redisMockConfig: redisMockConfig{
				getJobTask: withValue{
					returnedValue: tasks.JobTask{
						StopDocumentsOnFailure: true,
					},
				},
				getDocTask: withValue{
					returnedValue: tasks.DocumentTaskCached{
						FailedTasks: []string{"some other task"},
					},
				},
			},
		},
		methodsCalls{
			redis: redisMockCalls{getChunkTask: true, getJobTask: true, getDocTask: true, onTaskCancelled: true},
			rmq:   rmqMockCalls{notifyResults: true, acknowledgeDelivery: true},
		},
	)
}

func testFailedToUpdateOnTaskStarted(t *testing.T) {
	testConfiguration(
		t,
		mockedClientsConfig{
			redisMockConfig: redisMockConfig{onTaskStarted: failingMethod{fail: true}},
		},
		methodsCalls{
			redis: redisMockCalls{
				getChunkTask: true, getJobTask: true, onTaskStarted: true,
			},
			rmq: rmqMockCalls{rejectDelivery: true},
		},
	)
}

func testFailedToUpdateOnTaskComplete(t *testing.T) {
	testConfiguration(
		t,
		mockedClientsConfig{
			redisMockConfig: redisMockConfig{onTaskComplete: failingMethod{fail: true}},
		},
		methodsCalls{
			redis: redisMockCalls{
				getChunkTask: true, getJobTask: true, onTaskStarted: true, onTaskComplete: true,
			},
			rmq: rmqMockCalls{rejectDelivery: true},
			s3: s3MockCalls{
				getProcessedData: true,
				saveResultsFile:  true,
			},
			pipeline: pipelineCall{pipeline: true},
		},
	)
}

func testFailedToFetchFromS3(t *testing.T) {
	testConfiguration(
		t,
		mockedClientsConfig{
			s3MockConfig: s3MockConfig{getProcessedData: withValue{fail: true}},
		},
		methodsCalls{
			redis: redisMockCalls{
				getChunkTask: true, getJobTask: true, onTaskStarted: true, onTaskFailedWithError: true,
			},
			rmq: rmqMockCalls{notifyResults: true, acknowledgeDelivery: true},
			s3: s3MockCalls{
				getProcessedData: true,
			},
		},
	)
}

func testPipelineError(t *testing.T) {
	testConfiguration(
		t,
		mockedClientsConfig{
			pipelineMockConfig: pipelineMockConfig{fail: true},
		},
		methodsCalls{
			redis: redisMockCalls{
				getChunkTask: true, getJobTask: true, onTaskStarted: true, onTaskFailedWithError: true,
			},
			rmq: rmqMockCalls{notifyResults: true, acknowledgeDelivery: true},
			s3: s3MockCalls{
				getProcessedData: true,
			},
			pipeline: pipelineCall{true},
		},
	)
}

func testFailedToUpdateOnTaskFailedWithError(t *testing.T) {
	testConfiguration(
		t,
		mockedClientsConfig{
			pipelineMockConfig: pipelineMockConfig{fail: true},
			redisMockConfig:    redisMockConfig{onTaskFailedWithError: failingMethod{fail: true}},
		},
		methodsCalls{
			redis: redisMockCalls{
				getChunkTask: true, getJobTask: true, onTaskStarted: true, onTaskFailedWithError: true,
			},
			rmq: rmqMockCalls{rejectDelivery: true},
			s3: s3MockCalls{
				getProcessedData: true,
			},
			pipeline: pipelineCall{true},
		},
	)
}

func testFailedToSaveToS3(t *testing.T) {
	testConfiguration(
		t,
		mockedClientsConfig{
			s3MockConfig: s3MockConfig{saveResultsFile: failingMethod{fail: true}},
		},
		methodsCalls{
			redis: redisMockCalls{
				getChunkTask: true, getJobTask: true, onTaskStarted: true, onTaskFailedWithError: true,
			},
			rmq: rmqMockCalls{notifyResults: true, acknowledgeDelivery: true},
			s3: s3MockCalls{
				getProcessedData: true,
				saveResultsFile:  true,
			},
			pipeline: pipelineCall{true},
		},
	)
}

func testFailedAckDelivery(t *testing.T) {
	testConfiguration(
		t,
		mockedClientsConfig{
			rmqMockConfig: rmqMockConfig{acknowledgeDelivery: failingMethod{fail: true}},
		},
		methodsCalls{
			redis: redisMockCalls{
				getChunkTask: true, getJobTask: true, onTaskStarted: true, onTaskComplete: true,
			},
			rmq: rmqMockCalls{notifyResults: true, acknowledgeDelivery: true},
			s3: s3MockCalls{
				getProcessedData: true,
				saveResultsFile:  true,
			},
			pipeline: pipelineCall{true},
		},
	)
}

func testFailedNotifyResults(t *testing.T) {
	testConfiguration(
		t,
		mockedClientsConfig{
			rmqMockConfig: rmqMockConfig{notifyResults: failingMethod{fail: true}},
		},
		methodsCalls{
			redis: redisMockCalls{
				getChunkTask: true, getJobTask: true, onTaskStarted: true, onTaskComplete: true,
			},
			rmq: rmqMockCalls{notifyResults: true, rejectDelivery: true},
			s3: s3MockCalls{
				getProcessedData: true,
				saveResultsFile:  true,
			},
			pipeline: pipelineCall{true},
		},
	)
}

func testGetChunkTaskFailed(t *testing.T) {
	testConfiguration(
		t,
		mockedClientsConfig{
			redisMockConfig: redisMockConfig{getChunkTask: withValue{fail: true}},
		},
		methodsCalls{
			redis: redisMockCalls{
				getChunkTask: true,
			},
			rmq: rmqMockCalls{rejectDelivery: true},
		},
	)
}

func testGetJobTaskFailed(t *testing.T) {
	testConfiguration(
		t,
		mockedClientsConfig{
			redisMockConfig: redisMockConfig{getJobTask: withValue{fail: true}},
		},
		methodsCalls{
			redis: redisMockCalls{
				getChunkTask: true, getJobTask: true,
			},
			rmq: rmqMockCalls{rejectDelivery: true},
		},
	)
}

func testGetDocTaskFailed(t *testing.T) {
	testConfiguration(
		t,
		mockedClientsConfig{
			redisMockConfig: redisMockConfig{
				getJobTask: withValue{returnedValue: tasks.JobTask{StopDocumentsOnFailure: true}},
				getDocTask: withValue{fail: true},
			},
		},
		methodsCalls{
			redis: redisMockCalls{
				getChunkTask: true, getJobTask: true, getDocTask: true,
			},
			rmq: rmqMockCalls{rejectDelivery: true},
		},
	)
}

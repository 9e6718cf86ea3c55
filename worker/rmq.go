package worker

import (
	"encoding/json"

	"github.com/rs/zerolog"
	"github.com/streadway/amqp"

	"github.com/morispolanco/subjuntivo-buscador/rmq"
	"github.com/morispolanco/subjuntivo-buscador/tasks"
)

type rmqTransactions interface {
	notifyResults(task *Task, message Message) error
	acknowledgeDelivery(delivery *amqp.Delivery) error
	rejectDelivery(delivery *amqp.Delivery, rejectLogger *zerolog.Logger)
	getDeliveriesCh() <-chan amqp.Delivery
	getReqChanErrorsCh() <-chan *amqp.Error
	getRespChanErrorsCh() <-chan *amqp.Error
	close()
}

type rmqClientWrapper struct {
	rmqClient *rmq.Client
}

func (wrapper *rmqClientWrapper) close() {
	wrapper.rmqClient.Close()
}

func (wrapper *rmqClientWrapper) getDeliveriesCh() <-chan amqp.Delivery {
	return wrapper.rmqClient.Deliveries
}

func (wrapper *rmqClientWrapper) getReqChanErrorsCh() <-chan *amqp.Error {
	return wrapper.rmqClient.ReqChanErrors
}

func (wrapper *rmqClientWrapper) getRespChanErrorsCh() <-chan *amqp.Error {
	return wrapper.rmqClient.RespChanErrors
}

// notifyResults echoes the task message back with this worker as the sender.
func (wrapper *rmqClientWrapper) notifyResults(task *Task, message Message) error {
	message.Sender = tasks.WorkerName
	b, err := json.Marshal(message)
	if err != nil {
		return err
	}
	return wrapper.rmqClient.SendResultNotification(
		amqp.Publishing{
			ContentType:   "application/json",
			CorrelationId: task.delivery.MessageId,
			Body:          b,
		},
	)
}

func (wrapper *rmqClientWrapper) acknowledgeDelivery(delivery *amqp.Delivery) error {
	return delivery.Ack(false)
}

func (wrapper *rmqClientWrapper) rejectDelivery(delivery *amqp.Delivery, rejectLogger *zerolog.Logger) {
	if delivery.Redelivered {
		rejectLogger.Info().Msg("Rejecting delivery as it already has been redelivered")
		err := delivery.Reject(false)
		if err != nil {
			rejectLogger.Err(err).Msg("Failed to reject delivery")
		}
		return
	}
	rejectLogger.Info().Msg("Requeuing delivery as it has not been redelivered yet")
	err := delivery.Reject(true)
	if err != nil {
		rejectLogger.Err(err).Msg("Failed to requeue delivery")
	}
}

package rmq

import (
	"fmt"
	"net/url"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/streadway/amqp"

	"github.com/morispolanco/subjuntivo-buscador/logger"
)

type Config struct {
	Host                    string `envconfig:"SUBJ_RMQ_HOST" required:"true"`
	Port                    string `envconfig:"SUBJ_RMQ_PORT" default:"5672"`
	Username                string `envconfig:"SUBJ_RMQ_USERNAME" required:"true"`
	Password                string `envconfig:"SUBJ_RMQ_PASSWORD" required:"true"`
	VHost                   string `envconfig:"SUBJ_RMQ_VHOST" default:""`
	Exchange                string `envconfig:"SUBJ_RMQ_DEFAULT_EXCHANGE" default:"subjuntivo-default-exchange"`
	MaxParallelRequestCount int    `envconfig:"SUBJ_MQ_MAX_PARALLEL_REQUESTS" default:"5"`
	TaskQueue               string `envconfig:"SUBJ_RMQ_TASK_QUEUE" default:"subjunctive-tasks"`
	ResultsQueue            string `envconfig:"SUBJ_RMQ_RESULTS_QUEUE" default:"subjunctive-results"`
}

// Client consumes analysis tasks on one connection and publishes notifications on
// another, so a blocked publisher never stalls deliveries.
type Client struct {
	Deliveries     <-chan amqp.Delivery
	ReqChanErrors  <-chan *amqp.Error
	RespChanErrors <-chan *amqp.Error
	config         Config
	reqConn        *amqp.Connection
	respConn       *amqp.Connection
	respChannel    *amqp.Channel
	rmqLogger      *zerolog.Logger
}

func ReadConfig() (Config, error) {
	var config Config
	err := envconfig.Process("", &config)
	return config, err
}

func NewClient() (*Client, error) {
	rmqLogger := logger.NewLogger("RMQ client")
	config, err := ReadConfig()
	if err != nil {
		rmqLogger.Error().Err(err).Msg("Could not read env config")
		return nil, err
	}

	dsn := getURL(config)
	respConn, respChannel, err := setup(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed connection: %w", err)
	}
	reqConn, reqChannel, err := setup(dsn)
	if err != nil {
		_ = respConn.Close()
		return nil, fmt.Errorf("failed connection: %w", err)
	}
	closeAll := func() {
		_ = reqConn.Close()
		_ = respConn.Close()
	}

	q, err := reqChannel.QueueDeclare(
		config.TaskQueue, // name
		true,             // durable
		false,            // delete when unused
		false,            // exclusive
		false,            // no-wait
		nil,              // arguments
	)
	if err != nil {
		closeAll()
		return nil, fmt.Errorf("declare %s: %w", config.TaskQueue, err)
	}
	if config.Exchange != "" {
		if err := reqChannel.QueueBind(q.Name, q.Name, config.Exchange, false, nil); err != nil {
			closeAll()
			return nil, fmt.Errorf("bind %s: %w", q.Name, err)
		}
	}
	if err := reqChannel.Qos(config.MaxParallelRequestCount, 0, false); err != nil {
		closeAll()
		return nil, fmt.Errorf("qos: %w", err)
	}

	deliveries, err := reqChannel.Consume(
		q.Name,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		closeAll()
		return nil, fmt.Errorf("consume deliveries: %w", err)
	}
	reqChanErrors := reqChannel.NotifyClose(make(chan *amqp.Error, 1))
	respChanErrors := respChannel.NotifyClose(make(chan *amqp.Error, 1))

	rmqLogger.Info().Str("queue", q.Name).Msg("Consuming analysis tasks")
	return &Client{
		Deliveries:     deliveries,
		ReqChanErrors:  reqChanErrors,
		RespChanErrors: respChanErrors,
		config:         config,
		reqConn:        reqConn,
		respConn:       respConn,
		respChannel:    respChannel,
		rmqLogger:      &rmqLogger,
	}, nil
}

// SendResultNotification publishes msg to the results queue.
func (c *Client) SendResultNotification(msg amqp.Publishing) error {
	return c.respChannel.Publish(
		c.config.Exchange,
		c.config.ResultsQueue,
		false,
		false,
		msg)
}

func (c *Client) Close() {
	_ = c.reqConn.Close()
	_ = c.respConn.Close()
}

func getURL(config Config) string {
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(config.Username, config.Password),
		Host:   fmt.Sprintf("%s:%s", config.Host, config.Port),
	}
	if config.VHost != "" {
		u.Path = "/" + config.VHost
	}
	return u.String()
}

func setup(dsn string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(dsn)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return conn, ch, nil
}

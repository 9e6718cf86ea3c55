package rmq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/streadway/amqp"
)

func TestGetURL(t *testing.T) {
	config := Config{Host: "rabbit", Port: "5672", Username: "guest", Password: "p@ss:word"}
	dsn := getURL(config)

	uri, err := amqp.ParseURI(dsn)
	require.NoError(t, err)
	assert.Equal(t, "rabbit", uri.Host)
	assert.Equal(t, 5672, uri.Port)
	assert.Equal(t, "guest", uri.Username)
	assert.Equal(t, "p@ss:word", uri.Password)
	assert.Equal(t, "/", uri.Vhost)

	config.VHost = "analysis"
	uri, err = amqp.ParseURI(getURL(config))
	require.NoError(t, err)
	assert.Equal(t, "analysis", uri.Vhost)
}

func TestReadConfig(t *testing.T) {
	t.Setenv("SUBJ_RMQ_HOST", "rabbit")
	t.Setenv("SUBJ_RMQ_USERNAME", "guest")
	t.Setenv("SUBJ_RMQ_PASSWORD", "guest")
	config, err := ReadConfig()
	require.NoError(t, err)
	assert.Equal(t, "5672", config.Port)
	assert.Equal(t, "subjunctive-tasks", config.TaskQueue)
	assert.Equal(t, "subjunctive-results", config.ResultsQueue)
	assert.Equal(t, 5, config.MaxParallelRequestCount)
}

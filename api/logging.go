package api

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/morispolanco/subjuntivo-buscador/logger"
)

var defaultLogger = logger.NewLogger("API")

type endpointLoggerFields struct {
	Method string `json:"method"`
	Url    string `json:"url"`
	Tid    string `json:"tid,omitempty"`
}

const RequestInfoFieldsKey = "request_info"

func makeRequestLogger(request *http.Request, tid string) zerolog.Logger {
	fields := endpointLoggerFields{
		Method: request.Method,
		Url:    request.URL.String(),
		Tid:    tid,
	}
	return defaultLogger.
		With().Interface(RequestInfoFieldsKey, fields).Logger()
}

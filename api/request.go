package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/morispolanco/subjuntivo-buscador/pipeline"
)

const (
	TidHeader          = "X-Request-Id"
	DefaultMaxBodySize = 4 << 20
	DefaultTimeout     = 2 * time.Minute
)

type Request struct {
	Pipeline    pipeline.Pipeline
	Timeout     time.Duration
	MaxBodySize int64
}

type analyzeBody struct {
	Text string `json:"text"`
}

// ProcessData analyzes the request body. A JSON body must be {"text": "..."}; any
// other content type is taken as the raw text.
func (req *Request) ProcessData(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	tid := r.Header.Get(TidHeader)
	if tid == "" {
		tid = uuid.New().String()
	}
	w.Header().Set(TidHeader, tid)
	logger := makeRequestLogger(r, tid)

	if r.Method != http.MethodPost {
		logger.Err(nil).Int("status", http.StatusMethodNotAllowed).Msg("Only 'POST' method is allowed here")
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "only POST is allowed")
		return
	}

	maxBodySize := req.MaxBodySize
	if maxBodySize <= 0 {
		maxBodySize = DefaultMaxBodySize
	}
	msg, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		status := http.StatusBadRequest
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			status = http.StatusRequestEntityTooLarge
		}
		logger.Err(err).Int("status", status).Msg("Could not read request body")
		writeError(w, status, "could not read request body")
		return
	}

	text := string(msg)
	if mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mediaType == "application/json" {
		var body analyzeBody
		if err := json.Unmarshal(msg, &body); err != nil {
			logger.Err(err).Int("status", http.StatusBadRequest).Msg("Could not decode request body")
			writeError(w, http.StatusBadRequest, `body must be {"text": "..."}`)
			return
		}
		text = body.Text
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	request := pipeline.Request{
		Tid:  tid,
		Text: text,
	}
	logger.Info().Msg("Starting pipeline for request from API")
	resp, ok := <-req.Pipeline(ctx, request)
	if !ok {
		logger.Error().Int("status", http.StatusInternalServerError).Msg("Pipeline returned no response")
		writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}
	_, _ = w.Write([]byte(resp))
	logger.Info().Int("status", http.StatusOK).Msg("Finished processing request")
}

func Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// NewHandler routes the API endpoints behind a CORS policy that allows any origin.
func NewHandler(req *Request) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", instrument("/", req.ProcessData))
	mux.HandleFunc("/analyze", instrument("/analyze", req.ProcessData))
	mux.HandleFunc("/health", instrument("/health", Health))
	mux.Handle("/metrics", promhttp.Handler())

	return cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type", TidHeader},
		ExposedHeaders: []string{TidHeader},
	}).Handler(mux)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

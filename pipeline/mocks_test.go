package pipeline

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/morispolanco/subjuntivo-buscador/engine"
)

type analyzerMock struct {
	report engine.Report
	mu     sync.Mutex
	calls  int
}

func (mock *analyzerMock) Analyze(context.Context, string) engine.Report {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	mock.calls++
	return mock.report
}

func (mock *analyzerMock) Strategy() string {
	return mock.report.Strategy
}

type cacheMock struct {
	mu      sync.Mutex
	values  map[string]string
	ttls    map[string]time.Duration
	failGet bool
	failSet bool
}

func newCacheMock() *cacheMock {
	return &cacheMock{
		values: make(map[string]string),
		ttls:   make(map[string]time.Duration),
	}
}

func (mock *cacheMock) GetResult(_ context.Context, key string) (string, bool, error) {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	if mock.failGet {
		return "", false, errors.New("mock: cache is down")
	}
	value, ok := mock.values[key]
	return value, ok, nil
}

func (mock *cacheMock) SetResult(_ context.Context, key string, value string, ttl time.Duration) error {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	if mock.failSet {
		return errors.New("mock: cache is down")
	}
	mock.values[key] = value
	mock.ttls[key] = ttl
	return nil
}

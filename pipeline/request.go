package pipeline

import "context"

type Request struct {
	Text string `json:"text"`
	Tid  string `json:"tid"`
}

// Pipeline returns a channel that yields one serialized response and is then closed.
type Pipeline func(ctx context.Context, request Request) <-chan string

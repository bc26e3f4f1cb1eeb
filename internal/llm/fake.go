package llm

import (
	"context"
	"sync"
)

// StaticClient replies with a fixed text or error and records requests.
type StaticClient struct {
	Reply string
	Err   error

	mu       sync.Mutex
	requests []Request
}

// Generate implements Client.
func (s *StaticClient) Generate(_ context.Context, req Request) (string, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()
	if s.Err != nil {
		return "", s.Err
	}
	if s.Reply == "" {
		return "", ErrEmptyResponse
	}
	return s.Reply, nil
}

// Requests returns a copy of the recorded requests.
func (s *StaticClient) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Package llm wraps the generative model used by the chat companion.
package llm

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when the model answers with no text.
var ErrEmptyResponse = errors.New("llm returned an empty response")

// Roles used in conversation history.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Turn is one earlier message in the conversation.
type Turn struct {
	Role string
	Text string
}

// Request is a single generation call.
type Request struct {
	SystemInstruction string
	History           []Turn
	Message           string
}

// Client generates a reply for a request.
type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
}

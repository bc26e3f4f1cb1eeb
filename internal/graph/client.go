// Package graph projects symptom logs into Neo4j and reads pattern summaries back.
package graph

import (
	"context"
	"errors"
)

// Client is the contract the symptom graph needs from the graph database.
type Client interface {
	ExecuteWrite(ctx context.Context, cypher string, params map[string]any) (Result, error)
	ExecuteRead(ctx context.Context, cypher string, params map[string]any) (Result, error)
	VerifyConnectivity(ctx context.Context) error
	Close(ctx context.Context) error
}

// Result is a simplified representation of a query response.
type Result struct {
	Records []Record
}

// Record groups key-value pairs returned from the graph engine.
type Record map[string]any

// Options configures a graph client implementation.
type Options struct {
	URI            string
	Database       string
	Username       string
	Password       string
	MaxConnections int
}

// ErrMissingURI indicates the graph URI is not provided.
var ErrMissingURI = errors.New("graph URI is required")

// HealthCheck verifies graph connectivity for readiness checks.
type HealthCheck struct {
	Client Client
}

// Check implements the server health contract. A nil client is healthy.
func (p HealthCheck) Check(ctx context.Context) error {
	if p.Client == nil {
		return nil
	}
	return p.Client.VerifyConnectivity(ctx)
}

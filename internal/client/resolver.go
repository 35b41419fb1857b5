package client

import (
	"context"
	"time"

	"connstring/internal/application/common/slogger"
	"connstring/internal/domain/normalization"
	"connstring/internal/domain/valueobject"
)

// ResolvedConnection is the outcome of resolving a connection string: the
// fully-specified endpoint, the derived query API endpoint, a safe display
// form for logs, and the timeout the consumer should apply.
type ResolvedConnection struct {
	// Endpoint is the fully-resolved base endpoint.
	Endpoint valueobject.Endpoint
	// API is Endpoint with the query API path segment appended.
	API valueobject.Endpoint
	// Display is the endpoint with query removed and password masked,
	// suitable for logs and error messages.
	Display string
	// Timeout is the request timeout for consumers opening the connection.
	Timeout time.Duration
}

// Resolver resolves raw connection strings against a default endpoint.
// It is stateless and safe for concurrent use.
type Resolver struct {
	defaults valueobject.Endpoint
	apiPath  string
	timeout  time.Duration
}

// NewResolver creates a resolver that fills missing connection string
// components from defaults and derives the API endpoint using cfg.APIPath.
func NewResolver(defaults valueobject.Endpoint, cfg Config) *Resolver {
	apiPath := cfg.APIPath
	if apiPath == "" {
		apiPath = DefaultAPIPath
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Resolver{
		defaults: defaults,
		apiPath:  apiPath,
		timeout:  timeout,
	}
}

// Resolve normalizes connectionString into a ResolvedConnection.
func (r *Resolver) Resolve(ctx context.Context, connectionString string) (*ResolvedConnection, error) {
	endpoint, err := normalization.ParseConnectionString(connectionString, r.defaults)
	if err != nil {
		slogger.ErrorWithError(ctx, err, "Failed to resolve connection string",
			slogger.Field("connection_string", connectionString))
		return nil, err
	}

	api, err := normalization.AppendSegment(&endpoint, r.apiPath)
	if err != nil {
		return nil, err
	}

	stripped, err := normalization.StripQuery(endpoint, connectionString, r.defaults)
	if err != nil {
		return nil, err
	}

	resolved := &ResolvedConnection{
		Endpoint: endpoint,
		API:      api,
		Display:  stripped.Redacted(),
		Timeout:  r.timeout,
	}

	slogger.Debug(ctx, "Resolved connection string", slogger.Fields2(
		"endpoint", resolved.Display,
		"api_path", r.apiPath,
	))

	return resolved, nil
}

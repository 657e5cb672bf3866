package middleware

import "github.com/aretw0/pollster/pkg/ports"

// Middleware allows wrapping a SessionStore to add behavior.
type Middleware func(ports.SessionStore) ports.SessionStore

// SinkMiddleware allows wrapping a RecordSink to add behavior.
type SinkMiddleware func(ports.RecordSink) ports.RecordSink

// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package client

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Recorder observes the transport call of every dispatch. It is the
// library's single observability seam: metrics export, tracing, and
// access logging all hang off these two hooks, and exporter wiring stays
// in the embedding application.
//
// Lifecycle per dispatch:
//
//  1. OnRequestStart runs after parameter binding, immediately before the
//     transport call. The returned context (for example carrying a trace
//     span) is the one handed to the transport.
//  2. OnRequestEnd runs as soon as the transport returns, before the
//     response handler, with the status code (0 on transport failure),
//     the transport error, and the elapsed wall time.
//
// Implementations must be safe for concurrent use: a started tree
// dispatches from many goroutines through one Recorder.
type Recorder interface {
	OnRequestStart(ctx context.Context, method Method, url string) context.Context
	OnRequestEnd(ctx context.Context, method Method, url string, status int, err error, elapsed time.Duration)
}

// LoggingRecorder emits one structured access-log line per dispatch.
type LoggingRecorder struct {
	logger *slog.Logger
}

// NewLoggingRecorder returns a LoggingRecorder writing to logger.
func NewLoggingRecorder(logger *slog.Logger) *LoggingRecorder {
	if logger == nil {
		logger = noopLogger
	}
	return &LoggingRecorder{logger: logger}
}

// OnRequestStart implements Recorder.
func (r *LoggingRecorder) OnRequestStart(ctx context.Context, method Method, url string) context.Context {
	r.logger.DebugContext(ctx, "request start", "method", method, "url", url)
	return ctx
}

// OnRequestEnd implements Recorder.
func (r *LoggingRecorder) OnRequestEnd(ctx context.Context, method Method, url string, status int, err error, elapsed time.Duration) {
	if err != nil {
		r.logger.ErrorContext(ctx, "request failed", "method", method, "url", url, "error", err, "duration", elapsed)
		return
	}
	r.logger.InfoContext(ctx, "request complete", "method", method, "url", url, "status", status, "duration", elapsed)
}

// TracingRecorder wraps every dispatch in an OpenTelemetry client span
// carrying the method, URL, and response status. Span export follows
// whatever tracer provider the application has installed globally.
type TracingRecorder struct {
	tracer trace.Tracer
}

// NewTracingRecorder returns a TracingRecorder using the globally
// registered tracer provider.
func NewTracingRecorder() *TracingRecorder {
	return &TracingRecorder{tracer: otel.Tracer("rivaas.dev/client")}
}

// OnRequestStart implements Recorder. The span travels in the returned
// context so the transport's outbound request participates in the trace.
func (r *TracingRecorder) OnRequestStart(ctx context.Context, method Method, url string) context.Context {
	ctx, _ = r.tracer.Start(ctx, "HTTP "+string(method),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", string(method)),
			attribute.String("url.full", url),
		),
	)
	return ctx
}

// OnRequestEnd implements Recorder.
func (r *TracingRecorder) OnRequestEnd(ctx context.Context, _ Method, _ string, status int, err error, _ time.Duration) {
	span := trace.SpanFromContext(ctx)
	defer span.End()

	if status > 0 {
		span.SetAttributes(attribute.Int("http.response.status_code", status))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	if status >= 400 {
		span.SetStatus(codes.Error, "")
	}
}

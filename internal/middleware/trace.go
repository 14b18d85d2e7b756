package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	HeaderTraceID   = "X-Trace-Id"
	HeaderRequestID = "X-Request-Id"

	tracerName = "github.com/arturoeanton/roadmapai/internal/middleware"
)

// Trace opens a server span per request, continuing any incoming
// traceparent, and echoes trace and request ids in the response headers.
// A nil provider uses the global one.
func Trace(tp trace.TracerProvider) fiber.Handler {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	tracer := tp.Tracer(tracerName)

	return func(c fiber.Ctx) error {
		// Spans are exported after the request, so copy out of Fiber's buffers.
		method := strings.Clone(c.Method())
		path := strings.Clone(c.Path())

		carrier := propagation.HeaderCarrier(http.Header(c.GetReqHeaders()))
		ctx := otel.GetTextMapPropagator().Extract(c.Context(), carrier)
		ctx, span := tracer.Start(ctx, method+" "+path,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				semconv.HTTPRequestMethodKey.String(method),
				semconv.URLPath(path),
			),
		)
		defer span.End()
		c.SetContext(ctx)

		reqID := strings.Clone(strings.TrimSpace(c.Get(HeaderRequestID)))
		if reqID == "" {
			reqID = uuid.New().String()
		}
		traceID := ""
		if sc := span.SpanContext(); sc.HasTraceID() {
			traceID = sc.TraceID().String()
		}
		if traceID == "" {
			traceID = uuid.New().String()
		}
		c.Locals("request_id", reqID)
		c.Locals("trace_id", traceID)
		c.Set(HeaderRequestID, reqID)
		c.Set(HeaderTraceID, traceID)

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
			span.RecordError(err)
		}
		if route := c.Route(); route != nil && route.Path != "" {
			span.SetName(method + " " + route.Path)
			span.SetAttributes(semconv.HTTPRoute(route.Path))
		}
		span.SetAttributes(semconv.HTTPResponseStatusCode(status))
		if status >= 500 {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
		return err
	}
}

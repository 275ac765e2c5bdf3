package mw

import (
	"context"
	"testing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/route"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/mocktracer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceCreatesRequestSpan(t *testing.T) {
	tracer := mocktracer.New()
	prev := opentracing.GlobalTracer()
	opentracing.SetGlobalTracer(tracer)
	defer opentracing.SetGlobalTracer(prev)

	engine := route.NewEngine(config.NewOptions(nil))
	engine.Use(Trace())
	engine.GET("/videos/:videoId", func(ctx context.Context, c *app.RequestContext) {
		child, _ := opentracing.StartSpanFromContext(ctx, "FindVideo")
		child.Finish()
		c.String(500, "boom")
	})

	ut.PerformRequest(engine, "GET", "/videos/7", nil)

	spans := tracer.FinishedSpans()
	require.Len(t, spans, 2)
	child, server := spans[0], spans[1]
	assert.Equal(t, "GET /videos/:videoId", server.OperationName)
	assert.Equal(t, "/videos/7", server.Tag("http.url"))
	assert.Equal(t, uint16(500), server.Tag("http.status_code"))
	assert.Equal(t, true, server.Tag("error"))
	assert.Equal(t, server.SpanContext.SpanID, child.ParentID)
}

func TestTraceJoinsIncomingTrace(t *testing.T) {
	tracer := mocktracer.New()
	prev := opentracing.GlobalTracer()
	opentracing.SetGlobalTracer(tracer)
	defer opentracing.SetGlobalTracer(prev)

	upstream := tracer.StartSpan("gateway")
	headers := opentracing.HTTPHeadersCarrier{}
	require.NoError(t, tracer.Inject(upstream.Context(), opentracing.HTTPHeaders, headers))

	engine := route.NewEngine(config.NewOptions(nil))
	engine.Use(Trace())
	engine.GET("/ping", func(ctx context.Context, c *app.RequestContext) { c.String(200, "pong") })

	var hs []ut.Header
	for k, vs := range headers {
		hs = append(hs, ut.Header{Key: k, Value: vs[0]})
	}
	ut.PerformRequest(engine, "GET", "/ping", nil, hs...)

	spans := tracer.FinishedSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, upstream.Context().(mocktracer.MockSpanContext).TraceID, spans[0].SpanContext.TraceID)
	assert.Equal(t, uint16(200), spans[0].Tag("http.status_code"))
}

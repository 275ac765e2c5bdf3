package mw

import (
	"context"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
)

// Trace 为每个请求创建 server span，下游的 gorm 插件从 ctx 中取父 span
func Trace() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		tracer := opentracing.GlobalTracer()

		carrier := opentracing.HTTPHeadersCarrier(http.Header{})
		c.Request.Header.VisitAll(func(k, v []byte) {
			http.Header(carrier).Add(string(k), string(v))
		})
		opts := []opentracing.StartSpanOption{ext.SpanKindRPCServer}
		if parent, err := tracer.Extract(opentracing.HTTPHeaders, carrier); err == nil {
			opts = append(opts, opentracing.ChildOf(parent))
		}

		span := tracer.StartSpan(string(c.Method())+" "+c.FullPath(), opts...)
		defer span.Finish()
		ext.HTTPMethod.Set(span, string(c.Method()))
		ext.HTTPUrl.Set(span, string(c.Path()))

		c.Next(opentracing.ContextWithSpan(ctx, span))

		status := c.Response.StatusCode()
		ext.HTTPStatusCode.Set(span, uint16(status))
		if status >= http.StatusInternalServerError {
			ext.Error.Set(span, true)
		}
	}
}

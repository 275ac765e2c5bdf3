package jaeger

import (
	"io"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/opentracing/opentracing-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Load 未开启时保持 noop tracer
func Load(service string, enable bool, agentAddr string) io.Closer {
	if !enable {
		return nopCloser{}
	}
	return Init(service, agentAddr)
}

// Init 初始化全局 tracer，失败时退化为 noop tracer
func Init(service, agentAddr string) io.Closer {
	cfg := jaegercfg.Configuration{
		ServiceName: service,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  "const",
			Param: 1,
		},
		Reporter: &jaegercfg.ReporterConfig{
			LogSpans:           false,
			LocalAgentHostPort: agentAddr,
		},
	}
	tracer, closer, err := cfg.NewTracer()
	if err != nil {
		hlog.Warnf("init jaeger tracer failed: %v", err)
		return nopCloser{}
	}
	opentracing.SetGlobalTracer(tracer)
	return closer
}

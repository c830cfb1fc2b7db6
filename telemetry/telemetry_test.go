package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSampler(t *testing.T) {
	tests := map[string]struct {
		name, arg string
		want      string
	}{
		"default":            {want: "ParentBased{root:AlwaysOnSampler"},
		"off":                {name: "always_off", want: "AlwaysOffSampler"},
		"ratio":              {name: "traceidratio", arg: "0.25", want: "TraceIDRatioBased{0.25}"},
		"ratio out of range": {name: "TraceIdRatio", arg: "7", want: "AlwaysOnSampler"},
		"parent ratio":       {name: "parentbased_traceidratio", arg: "0.5", want: "ParentBased{root:TraceIDRatioBased{0.5}"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := parseSampler(tt.name, tt.arg).Description()
			assert.Contains(t, got, tt.want)
		})
	}
}

func TestInitWithoutExporter(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	shutdown, err := Init(context.Background(), "")
	require.NoError(t, err)
	defer func() { require.NoError(t, shutdown(context.Background())) }()

	h := Handler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}), "test")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
}

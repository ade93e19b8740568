package logger

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/slog"
)

func setup(t *testing.T, buf *bytes.Buffer) humatest.TestAPI {
	_, api := humatest.New(t)
	log := slog.New(slog.NewJSONHandler(buf, nil))

	huma.Register(api, huma.Operation{
		OperationID: "ping",
		Method:      http.MethodGet,
		Path:        "/ping",
		Middlewares: huma.Middlewares{New(log).Middleware()},
	}, func(context.Context, *struct{}) (*struct{}, error) {
		return &struct{}{}, nil
	})
	return api
}

func TestMiddleware_GeneratesRequestID(t *testing.T) {
	var buf bytes.Buffer
	resp := setup(t, &buf).Get("/ping")

	id := resp.Header().Get(RequestIDHeader)
	assert.Len(t, id, 36)

	out := buf.String()
	assert.Contains(t, out, `"msg":"HTTP request"`)
	assert.Contains(t, out, `"method":"GET"`)
	assert.Contains(t, out, `"path":"/ping"`)
	assert.Contains(t, out, `"request_id":"`+id+`"`)
	assert.Contains(t, out, `"component":"http_logger"`)
}

func TestMiddleware_KeepsIncomingRequestID(t *testing.T) {
	var buf bytes.Buffer
	resp := setup(t, &buf).Get("/ping", RequestIDHeader+": abc-123")

	assert.Equal(t, "abc-123", resp.Header().Get(RequestIDHeader))
	assert.Contains(t, buf.String(), `"request_id":"abc-123"`)
}

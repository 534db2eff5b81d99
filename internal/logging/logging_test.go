package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bufferedLogger() (*logrus.Logger, *bytes.Buffer) {
	logger := SetupLogging()
	buf := &bytes.Buffer{}
	logger.Out = buf
	return logger, buf
}

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines)
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	return entry
}

func TestLogData_FieldsAndTimings(t *testing.T) {
	logger, buf := bufferedLogger()
	logData := NewLogData(logger)

	logData.AddData("transactionCount", 3)
	logData.AddTiming("listMs")()
	stop := logData.AddToExistingTiming("storeMs")
	stop()
	logData.Log().Info("done")

	entry := lastLine(t, buf)
	assert.Equal(t, "info", entry["loglevel"])
	assert.Equal(t, float64(3), entry["transactionCount"])
	assert.Contains(t, entry, "listMs")
	assert.Contains(t, entry, "storeMs")
}

func TestGetLogData(t *testing.T) {
	assert.Nil(t, GetLogData(context.Background()))

	logData := NewLogData(SetupLogging())
	assert.Same(t, logData, GetLogData(WithLogData(context.Background(), logData)))
}

func TestSetLevel(t *testing.T) {
	logger := SetupLogging()
	require.NoError(t, SetLevel(logger, "debug"))
	assert.Equal(t, logrus.DebugLevel, logger.Level)
	assert.Error(t, SetLevel(logger, "loud"))
}

func TestLoggingWrapper_LogsError(t *testing.T) {
	logger, buf := bufferedLogger()
	handler := LoggingWrapper("Broken", logger, func(w http.ResponseWriter, req *http.Request, logData *LogData) error {
		assert.Same(t, logData, GetLogData(req.Context()))
		w.WriteHeader(http.StatusTeapot)
		return errors.New("boom")
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/broken", nil))

	assert.Equal(t, http.StatusTeapot, w.Code)
	entry := lastLine(t, buf)
	assert.Equal(t, "error", entry["loglevel"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "Handler.Broken.Error", entry["msg"])
}

func TestMiddleware_OneLinePerRequest(t *testing.T) {
	logger, buf := bufferedLogger()
	_, api := humatest.New(t)
	api.UseMiddleware(Middleware(logger))
	huma.Register(api, huma.Operation{
		OperationID: "ping",
		Method:      http.MethodGet,
		Path:        "/ping",
	}, func(ctx context.Context, _ *struct{}) (*struct{}, error) {
		GetLogData(ctx).AddData("pinged", true)
		return nil, nil
	})

	resp := api.Get("/ping")
	require.Less(t, resp.Code, 300)

	entry := lastLine(t, buf)
	assert.Equal(t, "Handler.ping.Complete", entry["msg"])
	assert.Equal(t, true, entry["pinged"])
	assert.Equal(t, "/ping", entry["path"])
	assert.Contains(t, entry, "duration")
}

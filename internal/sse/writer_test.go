package sse

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landing-gen-go/internal/model"
)

func events(t *testing.T, body string) []model.GenerationState {
	t.Helper()
	var out []model.GenerationState
	for _, chunk := range strings.Split(body, "\n\n") {
		if !strings.HasPrefix(chunk, "data: ") {
			continue
		}
		var st model.GenerationState
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(chunk, "data: ")), &st))
		out = append(out, st)
	}
	return out
}

func TestWriterProgressIsMonotonic(t *testing.T) {
	rec := httptest.NewRecorder()
	w, err := NewWriter(rec)
	require.NoError(t, err)
	defer w.StopHeartbeat()

	w.SetRequest("kw", model.RoleLoan)
	require.NoError(t, w.SetAction(50, "Generating page..."))
	require.NoError(t, w.SetAction(10, "late update"))

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	evs := events(t, rec.Body.String())
	require.Len(t, evs, 2)
	assert.Equal(t, 50, evs[0].Overall)
	assert.Equal(t, 50, evs[1].Overall)
	assert.Equal(t, "late update", evs[1].CurrentAction)
	assert.Equal(t, model.StatusGenerating, evs[1].Status)
	assert.Equal(t, model.RoleLoan, evs[1].Role)
}

func TestWriterSendResult(t *testing.T) {
	rec := httptest.NewRecorder()
	w, err := NewWriter(rec)
	require.NoError(t, err)
	defer w.StopHeartbeat()

	result := &model.GenerationResult{Page: model.ToPage(nil), Q: "kw", Role: model.RoleAgent}
	require.NoError(t, w.SendResult(result))

	evs := events(t, rec.Body.String())
	require.Len(t, evs, 1)
	assert.Equal(t, model.StatusCompleted, evs[0].Status)
	assert.Equal(t, 100, evs[0].Overall)
	require.NotNil(t, evs[0].Result)
	assert.Equal(t, model.DefaultTitle, evs[0].Result.Page.Meta.Title)
	assert.Equal(t, "kw", evs[0].Query)
}

func TestWriterSendGlobalError(t *testing.T) {
	rec := httptest.NewRecorder()
	w, err := NewWriter(rec)
	require.NoError(t, err)
	w.StopHeartbeat()
	w.StopHeartbeat()

	require.NoError(t, w.SendGlobalError("provider returned status 502"))

	evs := events(t, rec.Body.String())
	require.Len(t, evs, 1)
	assert.Equal(t, model.StatusError, evs[0].Status)
	assert.Equal(t, "provider returned status 502", evs[0].Error)
	assert.Nil(t, evs[0].Result)
}

func TestStopHeartbeatWaitsForLastWrite(t *testing.T) {
	orig := HeartbeatInterval
	HeartbeatInterval = time.Millisecond
	t.Cleanup(func() { HeartbeatInterval = orig })

	rec := httptest.NewRecorder()
	w, err := NewWriter(rec)
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)
	w.StopHeartbeat()

	// 心跳goroutine已退出，这里读body不会和它竞争
	before := rec.Body.String()
	assert.Contains(t, before, `"status":"heartbeat"`)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, before, rec.Body.String())
}

type noFlush struct{ http.ResponseWriter }

func TestNewWriterRequiresFlusher(t *testing.T) {
	_, err := NewWriter(noFlush{httptest.NewRecorder()})
	assert.Error(t, err)
}

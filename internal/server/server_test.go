package server

import (
	"bufio"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ventus/travel-enrich/internal/classifier"
	"ventus/travel-enrich/internal/geo"
	"ventus/travel-enrich/internal/logging"
	"ventus/travel-enrich/internal/models"
	"ventus/travel-enrich/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, chunkSize int) *Server {
	t.Helper()
	log := logging.NewMockLogger()
	heuristic := classifier.NewHeuristicStrategy(geo.Default(), store.DefaultAnchorKeywords(), log)
	cls := classifier.New(log, heuristic)
	return New(Config{ChunkSize: chunkSize, ClassifyTimeout: 10 * time.Second}, cls, log)
}

type sseFrame struct {
	event string
	data  string
}

func readFrames(t *testing.T, body io.Reader) []sseFrame {
	t.Helper()
	var frames []sseFrame
	var current sseFrame
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event:"):
			current.event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			current.data = strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			frames = append(frames, current)
			current = sseFrame{}
		}
	}
	require.NoError(t, scanner.Err())
	return frames
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, 25)

	req := httptest.NewRequest("GET", "/healthz", nil)
	resp, err := srv.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestReclassify_MissingHomeZipRejected(t *testing.T) {
	srv := newTestServer(t, 25)

	req := httptest.NewRequest("POST", "/v1/reclassify",
		strings.NewReader(`{"transactions":[{"id":"t1","date":"2024-03-10","merchant":"Marriott","pillar":"Shopping","zip":"10001"}]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 400, resp.StatusCode)
}

func TestReclassify_EmptyArrayRejected(t *testing.T) {
	srv := newTestServer(t, 25)

	req := httptest.NewRequest("POST", "/v1/reclassify?home_zip=94102",
		strings.NewReader(`{"transactions":[]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 400, resp.StatusCode)
}

func TestReclassify_MalformedBodyRejected(t *testing.T) {
	srv := newTestServer(t, 25)

	req := httptest.NewRequest("POST", "/v1/reclassify?home_zip=94102",
		strings.NewReader(`{"transactions": nope`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 400, resp.StatusCode)
}

func TestReclassify_BadRowRejectedBeforeStream(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing id", `{"transactions":[{"id":"","date":"2024-03-10","merchant":"Marriott","pillar":"Shopping","zip":"10001"}]}`},
		{"invalid date", `{"transactions":[{"id":"t1","date":"March 10th","merchant":"Marriott","pillar":"Shopping","zip":"10001"}]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestServer(t, 25)

			req := httptest.NewRequest("POST", "/v1/reclassify?home_zip=94102", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := srv.App().Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, 400, resp.StatusCode)
			assert.NotEqual(t, "text/event-stream", resp.Header.Get("Content-Type"))
		})
	}
}

func TestReclassify_StreamsStatusUpdatesAndDone(t *testing.T) {
	srv := newTestServer(t, 25)

	body := `{"transactions":[
		{"id":"t1","date":"2024-03-10","merchant":"Marriott Midtown","pillar":"Shopping","zip":"10001"},
		{"id":"t2","date":"2024-03-11","merchant":"Joe's Pizza","pillar":"Dining","zip":"10002"}
	]}`
	req := httptest.NewRequest("POST", "/v1/reclassify?home_zip=94102", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	frames := readFrames(t, resp.Body)
	require.Len(t, frames, 3)

	assert.Equal(t, "status", frames[0].event)
	assert.Contains(t, frames[0].data, "2 candidate transactions")

	assert.Equal(t, "travel_updates", frames[1].event)
	var annotations []models.TravelAnnotation
	require.NoError(t, json.Unmarshal([]byte(frames[1].data), &annotations))
	require.Len(t, annotations, 2)
	assert.True(t, annotations[0].IsTravelRelated)
	assert.Equal(t, models.PillarTravel, annotations[0].ReclassifiedPillar)

	assert.Equal(t, "done", frames[2].event)
	assert.Equal(t, "{}", frames[2].data)
}

func TestReclassify_ChunksAnnotationBatches(t *testing.T) {
	srv := newTestServer(t, 2)

	body := `{"transactions":[
		{"id":"t1","date":"2024-03-10","merchant":"Marriott Midtown","pillar":"Shopping","zip":"10001"},
		{"id":"t2","date":"2024-03-11","merchant":"Joe's Pizza","pillar":"Dining","zip":"10002"},
		{"id":"t3","date":"2024-03-11","merchant":"Uber Trip","pillar":"Transportation","zip":"10002"}
	]}`
	req := httptest.NewRequest("POST", "/v1/reclassify?home_zip=94102", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	frames := readFrames(t, resp.Body)
	require.Len(t, frames, 4)

	assert.Equal(t, "status", frames[0].event)
	assert.Equal(t, "travel_updates", frames[1].event)
	assert.Equal(t, "travel_updates", frames[2].event)
	assert.Equal(t, "done", frames[3].event)

	var total int
	for _, frame := range frames[1:3] {
		var batch []models.TravelAnnotation
		require.NoError(t, json.Unmarshal([]byte(frame.data), &batch))
		total += len(batch)
	}
	assert.Equal(t, 3, total, "chunks together cover every candidate exactly once")
}

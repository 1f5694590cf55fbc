package watch

import (
	"bufio"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/LegacyCodeHQ/ecocap/conflict"
	"github.com/LegacyCodeHQ/ecocap/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var eventTime = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func conflictingEvent(t *testing.T) reportEvent {
	t.Helper()
	r := testhelpers.Report(t, testhelpers.ConflictingDeps, conflict.StrategyFail)
	return newReportEvent(r, "text", "body", eventTime)
}

func TestNewReportEvent_SummarisesReport(t *testing.T) {
	event := conflictingEvent(t)

	assert.Equal(t, reportEvent{
		Source:       "deps.txt",
		Format:       "text",
		Dependencies: 4,
		Tagged:       3,
		Conflicts:    1,
		Resolved:     0,
		Unresolved:   []string{"javax.activation:activation"},
		Body:         "body",
		Timestamp:    eventTime,
	}, event)
}

func TestNewReportEvent_ResolvedReportHasNoUnresolved(t *testing.T) {
	r := testhelpers.Report(t, testhelpers.ConflictingDeps, conflict.StrategyHighestVersion)

	event := newReportEvent(r, "json", "{}", eventTime)

	assert.Equal(t, 1, event.Resolved)
	assert.Empty(t, event.Unresolved)
	assert.NotNil(t, event.Unresolved)
}

func TestBroker_PublishAndSubscribe(t *testing.T) {
	b := newBroker()
	ch := b.subscribe()
	defer b.unsubscribe(ch)

	b.publish(reportEvent{Source: "deps.txt", Body: "first"})

	select {
	case got := <-ch:
		assert.Equal(t, "first", got.Body)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestBroker_NewSubscriberReceivesLatest(t *testing.T) {
	b := newBroker()
	b.publish(reportEvent{Body: "first"})
	b.publish(reportEvent{Body: "second"})

	ch := b.subscribe()
	defer b.unsubscribe(ch)

	select {
	case got := <-ch:
		assert.Equal(t, "second", got.Body)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for latest event")
	}
}

func TestBroker_SlowSubscriberGetsNewestEvent(t *testing.T) {
	b := newBroker()
	ch := b.subscribe()
	defer b.unsubscribe(ch)

	b.publish(reportEvent{Body: "stale"})
	b.publish(reportEvent{Body: "fresh"})

	select {
	case got := <-ch:
		assert.Equal(t, "fresh", got.Body)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestBroker_MultipleSubscribers(t *testing.T) {
	b := newBroker()
	ch1 := b.subscribe()
	ch2 := b.subscribe()
	defer b.unsubscribe(ch1)
	defer b.unsubscribe(ch2)

	b.publish(reportEvent{Body: "report"})

	for i, ch := range []chan reportEvent{ch1, ch2} {
		select {
		case got := <-ch:
			assert.Equal(t, "report", got.Body)
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d: timed out", i)
		}
	}
}

func TestHandleIndex_ServesHTML(t *testing.T) {
	req := httptest.NewRequest("GET", routeIndex, nil)
	w := httptest.NewRecorder()

	handleIndex(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "ecocap watch")
	assert.Contains(t, w.Body.String(), `new EventSource("/events")`)
}

func TestHandleLatest(t *testing.T) {
	b := newBroker()
	handler := handleLatest(b)

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest("GET", routeLatest, nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	b.publish(conflictingEvent(t))

	w = httptest.NewRecorder()
	handler(w, httptest.NewRequest("GET", routeLatest, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var got reportEvent
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, conflictingEvent(t), got)
}

func TestHandleSSE_StreamsReportEvent(t *testing.T) {
	b := newBroker()
	b.publish(conflictingEvent(t))

	srv := httptest.NewServer(newServer(b, 0).Handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL + routeEvents)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	eventLine, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: report\n", eventLine)

	dataLine, err := reader.ReadString('\n')
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(dataLine, "data: "))

	var got reportEvent
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(dataLine, "data: ")), &got))
	assert.Equal(t, []string{"javax.activation:activation"}, got.Unresolved)
	assert.Equal(t, 1, got.Conflicts)
}

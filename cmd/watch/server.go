package watch

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
)

// broker fans report events out to SSE clients and remembers the latest one
// for clients that connect between reruns.
type broker struct {
	mu      sync.Mutex
	clients map[chan reportEvent]struct{}
	latest  *reportEvent
}

func newBroker() *broker {
	return &broker{
		clients: make(map[chan reportEvent]struct{}),
	}
}

func (b *broker) subscribe() chan reportEvent {
	ch := make(chan reportEvent, 1)
	b.mu.Lock()
	b.clients[ch] = struct{}{}
	if b.latest != nil {
		ch <- *b.latest
	}
	b.mu.Unlock()
	return ch
}

func (b *broker) unsubscribe(ch chan reportEvent) {
	b.mu.Lock()
	delete(b.clients, ch)
	close(ch)
	b.mu.Unlock()
}

// publish replaces the latest event. Slow clients skip intermediate events
// and pick up the newest one on their next read.
func (b *broker) publish(event reportEvent) {
	b.mu.Lock()
	b.latest = &event
	for ch := range b.clients {
		select {
		case <-ch:
		default:
		}
		ch <- event
	}
	b.mu.Unlock()
}

func (b *broker) snapshot() (reportEvent, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.latest == nil {
		return reportEvent{}, false
	}
	return *b.latest, true
}

func newServer(b *broker, port int) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc(routeIndex, handleIndex)
	mux.HandleFunc(routeEvents, handleSSE(b))
	mux.HandleFunc(routeLatest, handleLatest(b))

	return &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}
}

func handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(indexHTML)); err != nil {
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}

func handleLatest(b *broker) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		event, ok := b.snapshot()
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(event); err != nil {
			http.Error(w, "failed to encode report", http.StatusInternalServerError)
		}
	}
}

func handleSSE(b *broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		ch := b.subscribe()
		defer b.unsubscribe(ch)

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-ch:
				if !ok {
					return
				}
				data, err := json.Marshal(event)
				if err != nil {
					return
				}
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", sseEventReport, data)
				flusher.Flush()
			}
		}
	}
}

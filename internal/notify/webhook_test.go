package notify

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kapu/ghostchess/pkg/coredto"
)

func TestWebhookDeliversEvent(t *testing.T) {
	received := make(chan coredto.Event, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var ev coredto.Event
		require.NoError(t, json.Unmarshal(body, &ev))
		received <- ev
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	w := NewWebhook(srv.URL, nil, WithTimeout(2*time.Second), WithRetry(0))
	w.Start()
	defer w.Close()

	w.Publish(coredto.Event{Type: coredto.EventCheckmate, Move: "d8h4", Mover: "black"})

	select {
	case ev := <-received:
		assert.Equal(t, coredto.EventCheckmate, ev.Type)
		assert.Equal(t, "d8h4", ev.Move)
	case <-time.After(3 * time.Second):
		t.Fatal("event never delivered")
	}
}

func TestWebhookRetriesOnServerError(t *testing.T) {
	attempts := make(chan struct{}, 8)
	fails := 2
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts <- struct{}{}
		if fails > 0 {
			fails--
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	w := NewWebhook(srv.URL, nil, WithTimeout(2*time.Second), WithRetry(3))
	w.Start()

	w.Publish(coredto.Event{Type: coredto.EventMoveApplied, Move: "e2e4"})
	w.Close()

	assert.Len(t, attempts, 3, "two failures then one success")
}

func TestWebhookPublishNeverBlocks(t *testing.T) {
	w := NewWebhook("http://127.0.0.1:0/never", nil)
	done := make(chan struct{})
	go func() {
		for i := 0; i < queueSize+16; i++ {
			w.Publish(coredto.Event{Type: coredto.EventMoveApplied})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a full queue")
	}
}

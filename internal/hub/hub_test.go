package hub

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netdiagram/internal/service"
)

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	h := New(zerolog.Nop())
	go h.Run(ctx)

	srv := httptest.NewServer(h)
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return h, srv
}

// connect opens a stream and returns a reader positioned after the
// connected comment
func connect(t *testing.T, srv *httptest.Server) *bufio.Reader {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	br := bufio.NewReader(resp.Body)
	line, err := br.ReadString('\n')
	require.NoError(t, err)
	require.Equal(t, ": connected\n", line)
	_, err = br.ReadString('\n')
	require.NoError(t, err)
	return br
}

func readFrame(t *testing.T, br *bufio.Reader) []string {
	t.Helper()
	var lines []string
	for {
		line, err := br.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimSuffix(line, "\n")
		if line == "" {
			return lines
		}
		lines = append(lines, line)
	}
}

func TestBroadcast(t *testing.T) {
	h, srv := startHub(t)
	br := connect(t, srv)
	assert.Equal(t, 1, h.ClientCount())

	h.Broadcast(service.Event{Type: service.EventDeviceCreated, Payload: map[string]string{"device_id": "dev1"}})

	frame := readFrame(t, br)
	require.Len(t, frame, 2)
	assert.Equal(t, "event: device_created", frame[0])
	assert.JSONEq(t, `{"type":"device_created","payload":{"device_id":"dev1"}}`, strings.TrimPrefix(frame[1], "data: "))
}

func TestForward(t *testing.T) {
	h, srv := startHub(t)
	br := connect(t, srv)

	bus := service.NewEventBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Forward(ctx, bus)

	// Forward subscribes asynchronously; publish until the frame arrives
	frames := make(chan []string, 1)
	go func() {
		line, _ := br.ReadString('\n')
		frames <- []string{strings.TrimSuffix(line, "\n")}
	}()

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case frame := <-frames:
			assert.Equal(t, "event: state_cleared", frame[0])
			return
		case <-ticker.C:
			bus.Publish(service.Event{Type: service.EventStateCleared})
		case <-timeout:
			t.Fatal("timeout waiting for forwarded event")
		}
	}
}

func TestStopDisconnectsClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := New(zerolog.Nop())
	go h.Run(ctx)

	srv := httptest.NewServer(h)
	defer srv.Close()
	br := connect(t, srv)

	cancel()
	<-h.done

	_, err := br.ReadString('\n')
	assert.Error(t, err, "stream ends when the hub stops")
	assert.Equal(t, 0, h.ClientCount())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

package httpx

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/srl-logistica/rotaportal/internal/ports"
)

// sseHeartbeatInterval paces keep-alive comments so proxies do not reap
// idle refresh streams.
const sseHeartbeatInterval = 30 * time.Second

// EventHandlers relays the cross-view refresh channel to clients over
// Server-Sent Events. The stream carries no payload: each event means
// "something changed, re-read".
type EventHandlers struct {
	Broadcast ports.Broadcaster
	Logger    *slog.Logger
}

func (h *EventHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Stream handles GET /access/events for Server-Sent Events streaming.
func (h *EventHandlers) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "streaming_unsupported",
			Err:     errors.New("response writer does not support streaming"),
		})
		return
	}

	signals, cancel, err := h.Broadcast.Subscribe(r.Context())
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "subscribe_failed", Err: err})
		return
	}
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ticker := time.NewTicker(sseHeartbeatInterval)
	defer ticker.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case _, open := <-signals:
			if !open {
				return
			}
			if _, err := io.WriteString(w, "event: refresh\ndata: {}\n\n"); err != nil {
				h.logger().DebugContext(ctx, "refresh stream closed", slog.Any("error", err))
				return
			}
			flusher.Flush()
		case <-ticker.C:
			if _, err := io.WriteString(w, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

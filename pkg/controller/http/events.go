package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/workforce-labs/caseflow/pkg/utils/errutil"
	"github.com/workforce-labs/caseflow/pkg/utils/logging"
	"github.com/workforce-labs/caseflow/pkg/utils/safe"
)

// heartbeatInterval keeps idle SSE connections from being reaped by
// intermediaries
const heartbeatInterval = 25 * time.Second

// handleEvents streams case events as server-sent events. The stream is
// incremental only: clients must fetch the full case list after connecting
// (and after every reconnect) before trusting events, which bounds staleness
// from anything missed while disconnected.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	flusher, ok := w.(http.Flusher)
	if !ok {
		errutil.HandleHTTP(ctx, w, goerr.New("streaming unsupported by connection"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	// Tell the client it is live; everything before this instant must come
	// from a full list fetch.
	safe.Write(ctx, w, []byte(": connected\n\n"))
	flusher.Flush()

	ch, cancel := s.hub.Subscribe(ctx)
	defer cancel()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case ev, open := <-ch:
			if !open {
				// Dropped by the hub (slow consumer) or shutdown; the
				// client reconnects and resyncs.
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				logging.From(ctx).Error("failed to encode case event",
					"case_id", ev.CaseID, "error", err.Error())
				continue
			}
			safe.Write(ctx, w, []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", ev.Type, data)))
			flusher.Flush()

		case <-heartbeat.C:
			safe.Write(ctx, w, []byte(": ping\n\n"))
			flusher.Flush()

		case <-ctx.Done():
			return
		}
	}
}

package http_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/workforce-labs/caseflow/pkg/domain/model"
)

func TestEventsEndpoint(t *testing.T) {
	srv, hub := newTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/events", nil)
	gt.NoError(t, err).Required()

	resp, err := http.DefaultClient.Do(req)
	gt.NoError(t, err).Required()
	defer resp.Body.Close()

	gt.Number(t, resp.StatusCode).Equal(http.StatusOK)
	gt.Value(t, resp.Header.Get("Content-Type")).Equal("text/event-stream")

	reader := bufio.NewReader(resp.Body)

	// The connected comment arrives before any event
	line, err := reader.ReadString('\n')
	gt.NoError(t, err).Required()
	gt.Value(t, strings.TrimSpace(line)).Equal(": connected")

	// Wait for the subscription to land before publishing
	for i := 0; i < 100 && hub.Len() == 0; i++ {
		time.Sleep(10 * time.Millisecond)
	}
	gt.Number(t, hub.Len()).Equal(1)

	created := createCase(t, srv, irBody())

	var eventLine, dataLine string
	for {
		line, err := reader.ReadString('\n')
		gt.NoError(t, err).Required()
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "event: ") {
			eventLine = line
			continue
		}
		if strings.HasPrefix(line, "data: ") {
			dataLine = line
			break
		}
	}

	gt.Value(t, eventLine).Equal("event: caseAdded")

	var ev model.CaseEvent
	gt.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(dataLine, "data: ")), &ev)).Required()
	gt.Value(t, ev.Type).Equal(model.EventCaseAdded)
	gt.Value(t, ev.CaseID).Equal(created.ID)
	gt.Value(t, ev.Case).NotNil()
	gt.Value(t, ev.Case.ID).Equal(created.ID)
}

package recommendation

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var errStreamingUnsupported = errors.New("streaming unsupported by response writer")

// sseWriter frames fragments as server-sent events and flushes each one.
type sseWriter struct {
	w       io.Writer
	flusher http.Flusher
}

func newSSEWriter(w http.ResponseWriter) (*sseWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, errStreamingUnsupported
	}
	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()
	return &sseWriter{w: w, flusher: flusher}, nil
}

// Send writes one event. Multi-line fragments become one data line per line.
func (s *sseWriter) Send(fragment string) error {
	var b strings.Builder
	for _, line := range strings.Split(fragment, "\n") {
		b.WriteString("data: ")
		b.WriteString(strings.TrimSuffix(line, "\r"))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	if _, err := io.WriteString(s.w, b.String()); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	s.flusher.Flush()
	return nil
}

// ParseSSE joins the data of every event back into one string.
// Lines of one event are joined with '\n'.
func ParseSSE(stream string) []string {
	var (
		events  []string
		current []string
		inEvent bool
	)
	for _, line := range strings.Split(stream, "\n") {
		switch {
		case line == "":
			if inEvent {
				events = append(events, strings.Join(current, "\n"))
			}
			current, inEvent = nil, false
		case strings.HasPrefix(line, "data:"):
			data := strings.TrimPrefix(line, "data:")
			data = strings.TrimPrefix(data, " ")
			current = append(current, data)
			inEvent = true
		}
	}
	if inEvent {
		events = append(events, strings.Join(current, "\n"))
	}
	return events
}

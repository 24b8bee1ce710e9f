package reclassify

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ventus/travel-enrich/internal/apperror"
	"ventus/travel-enrich/internal/dateutils"
	"ventus/travel-enrich/internal/logging"
	"ventus/travel-enrich/internal/models"
)

const reclassifyPath = "/v1/reclassify"

// Requester sends candidate sets to the reclassification service and
// consumes the event stream it answers with. It performs no retries: the
// caller owns that decision, and the pre-filter partition stays valid for it.
type Requester struct {
	baseURL    string
	httpClient *http.Client
	log        logging.Logger
}

// NewRequester builds a Requester against the given service base URL.
// A zero timeout disables the client-level timeout; callers are expected to
// bound the stream with their context instead.
func NewRequester(baseURL string, timeout time.Duration, log logging.Logger) *Requester {
	return &Requester{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// Reclassify streams travel annotations for the candidate set.
//
// An empty candidate set yields an immediately closed stream and no network
// call. A missing home ZIP is a ValidationError. Otherwise the returned
// channel delivers events until a terminal one (done or error) and is then
// closed. Cancelling ctx stops consumption; annotations already delivered
// stay delivered.
func (r *Requester) Reclassify(ctx context.Context, candidates []models.Transaction, homeZip string) (<-chan Event, error) {
	if strings.TrimSpace(homeZip) == "" {
		return nil, &apperror.ValidationError{Field: "home_zip", Reason: "home zip is required"}
	}

	events := make(chan Event, 16)

	if len(candidates) == 0 {
		r.log.Debug("No travel candidates, skipping reclassification call")
		close(events)
		return events, nil
	}

	body, err := json.Marshal(buildPayload(candidates))
	if err != nil {
		return nil, &apperror.ValidationError{Field: "transactions", Reason: err.Error()}
	}

	endpoint := fmt.Sprintf("%s%s?home_zip=%s", r.baseURL, reclassifyPath, url.QueryEscape(homeZip))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &apperror.ValidationError{Field: "request", Reason: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	go r.consume(ctx, req, events, len(candidates))

	return events, nil
}

// consume runs the request and translates the SSE response into typed
// events. It always closes the channel.
func (r *Requester) consume(ctx context.Context, req *http.Request, events chan<- Event, count int) {
	defer close(events)

	r.log.WithField("candidates", count).Debug("Requesting travel reclassification")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.emit(ctx, events, Event{
			Type: EventError,
			Err:  &apperror.ServiceUnavailableError{Err: err},
		})
		return
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		r.emit(ctx, events, Event{
			Type: EventError,
			Err:  &apperror.ServiceUnavailableError{StatusCode: resp.StatusCode},
		})
		return
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var eventName string
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}

		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event:"):
			eventName = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			terminal, err := r.dispatch(ctx, events, eventName, data)
			if err != nil {
				r.emit(ctx, events, Event{Type: EventError, Err: err})
				return
			}
			if terminal {
				return
			}
		case line == "":
			// event separator
		}
	}

	if err := scanner.Err(); err != nil {
		r.emit(ctx, events, Event{
			Type: EventError,
			Err:  &apperror.ServiceUnavailableError{Err: err},
		})
		return
	}

	// The stream ended without a done event; the collaborator went away
	// mid-flight.
	r.emit(ctx, events, Event{
		Type: EventError,
		Err:  &apperror.ServiceUnavailableError{Err: io.ErrUnexpectedEOF},
	})
}

// dispatch decodes one data payload and emits the corresponding event.
// Returns whether the stream is finished.
func (r *Requester) dispatch(ctx context.Context, events chan<- Event, name, data string) (bool, error) {
	switch EventType(name) {
	case EventStatus:
		var status statusPayload
		if err := json.Unmarshal([]byte(data), &status); err != nil {
			return false, &apperror.ClassificationError{Detail: "malformed status event", Err: err}
		}
		r.emit(ctx, events, Event{Type: EventStatus, Message: status.Message})
		return false, nil

	case EventAnnotations:
		var annotations []models.TravelAnnotation
		if err := json.Unmarshal([]byte(data), &annotations); err != nil {
			return false, &apperror.ClassificationError{Detail: "malformed travel_updates event", Err: err}
		}
		r.emit(ctx, events, Event{Type: EventAnnotations, Annotations: annotations})
		return false, nil

	case EventError:
		var status statusPayload
		if err := json.Unmarshal([]byte(data), &status); err != nil {
			status.Message = data
		}
		r.emit(ctx, events, Event{
			Type: EventError,
			Err:  &apperror.ClassificationError{Detail: status.Message},
		})
		return true, nil

	case EventDone:
		r.emit(ctx, events, Event{Type: EventDone})
		return true, nil

	default:
		// Unknown event names are skipped so the protocol can grow.
		r.log.WithField("event", name).Debug("Ignoring unknown stream event")
		return false, nil
	}
}

func (r *Requester) emit(ctx context.Context, events chan<- Event, ev Event) {
	select {
	case events <- ev:
	case <-ctx.Done():
	}
}

func buildPayload(candidates []models.Transaction) requestPayload {
	rows := make([]candidateRow, 0, len(candidates))
	for _, tx := range candidates {
		rows = append(rows, candidateRow{
			ID:       tx.TransactionID,
			Date:     dateutils.FormatDate(tx.Date),
			Merchant: tx.Merchant(),
			Pillar:   tx.Pillar,
			Zip:      tx.ZipCode,
		})
	}
	return requestPayload{Transactions: rows}
}

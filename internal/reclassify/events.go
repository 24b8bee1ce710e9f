// Package reclassify implements the client half of the travel
// reclassification protocol: it ships the minimized candidate payload to the
// classification service and exposes the streamed response as typed events.
package reclassify

import "ventus/travel-enrich/internal/models"

// EventType names the events a reclassification stream can carry.
type EventType string

const (
	// EventStatus is a free-text progress message from the collaborator.
	EventStatus EventType = "status"

	// EventAnnotations carries a batch of travel annotations. The collaborator
	// may chunk its work, so multiple annotation events can arrive; consumers
	// accumulate rather than overwrite.
	EventAnnotations EventType = "travel_updates"

	// EventError is terminal: the stream failed and no further events follow.
	EventError EventType = "error"

	// EventDone is terminal: the collaborator finished cleanly.
	EventDone EventType = "done"
)

// Event is one element of the reclassification stream.
type Event struct {
	Type        EventType
	Message     string
	Annotations []models.TravelAnnotation
	Err         error
}

// Terminal reports whether no further events will follow this one.
func (e Event) Terminal() bool {
	return e.Type == EventError || e.Type == EventDone
}

// candidateRow is the minimized wire shape for one candidate transaction.
// Field names are deliberately short to keep the collaborator's context small.
type candidateRow struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Merchant string `json:"merchant"`
	Pillar   string `json:"pillar"`
	Zip      string `json:"zip,omitempty"`
}

// requestPayload is the body of a reclassification request. The home ZIP
// travels out-of-band as a query parameter, not per row.
type requestPayload struct {
	Transactions []candidateRow `json:"transactions"`
}

// statusPayload is the data shape of status and error events.
type statusPayload struct {
	Message string `json:"message"`
}

// Package ingest validates track submissions and appends them to the event
// store. Transport concerns stay in httpserver; this package only sees the
// raw eventtype and ids strings.
package ingest

import (
	"strconv"
	"strings"

	"github.com/radiusdt/vector-track/internal/models"
	"github.com/radiusdt/vector-track/internal/trackerr"
)

// Submission is a validated ingestion request.
type Submission struct {
	EventType models.EventType
	EntityIDs []int64
}

// ParseSubmission validates the raw eventtype and comma-separated id list.
// details and conversion are single-subject events and accept exactly one
// id; list accepts one or many. Every id must be a positive integer; one
// bad token rejects the whole submission.
func ParseSubmission(eventtype, ids string) (*Submission, error) {
	et := models.EventType(eventtype)
	if !et.Valid() {
		return nil, trackerr.Validation("unknown eventtype %q", eventtype)
	}

	if ids == "" {
		return nil, trackerr.Validation("ids must not be empty")
	}

	tokens := strings.Split(ids, ",")
	parsed := make([]int64, 0, len(tokens))
	for _, tok := range tokens {
		id, err := strconv.ParseInt(strings.TrimSpace(tok), 10, 64)
		if err != nil {
			return nil, trackerr.Validation("invalid id %q", tok)
		}
		if id <= 0 {
			return nil, trackerr.Validation("id must be positive, got %d", id)
		}
		parsed = append(parsed, id)
	}

	if (et == models.EventDetails || et == models.EventConversion) && len(parsed) != 1 {
		return nil, trackerr.Validation("%s accepts exactly one id, got %d", et, len(parsed))
	}

	return &Submission{EventType: et, EntityIDs: parsed}, nil
}

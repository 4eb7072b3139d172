// Package codec serializes the collection to and from its interchange
// formats: JSON (lossless, round-trippable) and CSV (flat, export-only).
package codec

import (
	"encoding/json"

	"github.com/karanpandatyxz-bot/CAMPUS-EVENT-TRACKER/internal/model"
)

// FormatKind identifies what was wrong with an import payload.
type FormatKind string

// NotASequence means the top-level JSON value was not an array.
const NotASequence FormatKind = "expected an array of events"

// FormatError rejects an import payload before any record is looked at.
type FormatError struct {
	Kind FormatKind
}

func (e *FormatError) Error() string { return string(e.Kind) }

// ExportJSON serializes all record fields. ImportJSON of the output,
// merged into an empty store, reproduces the collection.
func ExportJSON(records []model.EventRecord) ([]byte, error) {
	if records == nil {
		records = []model.EventRecord{}
	}
	return json.MarshalIndent(records, "", "  ")
}

// ImportJSON parses the payload into raw candidates. Per-record
// validation is the store's responsibility; elements that are not even
// object-shaped come back as zero candidates and fail admission there.
func ImportJSON(data []byte) ([]model.Candidate, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &FormatError{Kind: NotASequence}
	}

	candidates := make([]model.Candidate, 0, len(raw))
	for _, elem := range raw {
		var cand model.Candidate
		// Ignore the error: an undecodable element becomes an empty
		// candidate and is rejected by the admission gate.
		_ = json.Unmarshal(elem, &cand)
		candidates = append(candidates, cand)
	}
	return candidates, nil
}

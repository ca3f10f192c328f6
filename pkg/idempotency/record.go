package idempotency

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Record is the response stored for a key, replayed on retries.
type Record struct {
	Fingerprint string              `json:"fingerprint"`
	StatusCode  int                 `json:"status_code"`
	Header      map[string][]string `json:"header"`
	Body        []byte              `json:"body"`
}

func NewRecord(fingerprint string, statusCode int, header http.Header, body []byte) Record {
	kept := make(map[string][]string)

	for _, name := range []string{"Content-Type", "Location", "ETag"} {
		if values := header.Values(name); len(values) > 0 {
			kept[name] = values
		}
	}

	return Record{
		Fingerprint: fingerprint,
		StatusCode:  statusCode,
		Header:      kept,
		Body:        body,
	}
}

// Matches reports whether the record was produced by the same body.
func (r Record) Matches(fingerprint string) bool {
	return r.Fingerprint == fingerprint
}

// Replayable reports whether the outcome is worth storing. Server errors are
// left for the client to retry.
func (r Record) Replayable() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusInternalServerError
}

func (r Record) Marshal() ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encoding idempotency record: %w", err)
	}

	return data, nil
}

func UnmarshalRecord(data []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Record{}, fmt.Errorf("decoding idempotency record: %w", err)
	}

	return r, nil
}

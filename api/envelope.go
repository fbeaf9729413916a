// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// envelope is the backend's response wrapper. The meaningful payload
// sits under "data"; the remaining fields carry status information
// that the error path consumes.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Success *bool           `json:"success,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// decodePayload extracts the payload from a response body. Enveloped
// responses ({"data": ...}) and bare payloads are both accepted; the
// coercion happens here, once, so call sites see only the typed
// payload. A body whose envelope lacks "data" and which does not
// decode as the payload itself is a malformed response.
func decodePayload[T any](body []byte) (T, error) {
	var payload T

	var wrapper envelope
	if err := json.Unmarshal(body, &wrapper); err == nil && hasData(wrapper.Data) {
		if err := json.Unmarshal(wrapper.Data, &payload); err != nil {
			return payload, fmt.Errorf("api: malformed response data: %w", err)
		}
		return payload, nil
	}

	if err := json.Unmarshal(body, &payload); err != nil {
		return payload, fmt.Errorf("api: malformed response: %w", err)
	}
	return payload, nil
}

func hasData(data json.RawMessage) bool {
	return len(data) > 0 && !bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package netutil

import (
	"strings"
	"testing"
)

func TestReadResponse(t *testing.T) {
	body, err := ReadResponse(strings.NewReader(`{"data":[]}`))
	if err != nil {
		t.Fatalf("ReadResponse failed: %v", err)
	}
	if string(body) != `{"data":[]}` {
		t.Errorf("body = %q", body)
	}
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestStartTiming_DebugEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	o := NewStandardObserver(ObservabilityDebug, &buf)

	done := o.StartTiming("loader", "load")
	done(true, map[string]interface{}{"parsed": 2})

	var data StandardObservabilityData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if data.Component != "loader" || data.Operation != "load" {
		t.Errorf("unexpected timing record: %+v", data)
	}
	if !data.Success {
		t.Error("expected success=true")
	}
}

func TestStartTiming_OffIsSilent(t *testing.T) {
	var buf bytes.Buffer
	o := NewStandardObserver(ObservabilityOff, &buf)

	done := o.StartTiming("merge", "merge")
	done(true, nil)

	if buf.Len() != 0 {
		t.Errorf("expected no output at off level, got %q", buf.String())
	}
}

func TestLogDetail(t *testing.T) {
	var buf bytes.Buffer
	o := NewStandardObserver(ObservabilityDebug, &buf)
	o.LogDetail("loader", "skipped source_bad.json: invalid JSON")
	if !strings.Contains(buf.String(), "skipped source_bad.json") {
		t.Errorf("expected detail line, got %q", buf.String())
	}

	buf.Reset()
	off := NewStandardObserver(ObservabilityOff, &buf)
	off.LogDetail("loader", "hidden")
	if buf.Len() != 0 {
		t.Errorf("expected no output at off level, got %q", buf.String())
	}
}

func TestNilObserverIsSafe(t *testing.T) {
	var o *StandardObserver

	done := o.StartTiming("loader", "discover")
	done(true, nil)
	o.LogDetail("loader", "ignored")
}

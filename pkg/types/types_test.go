package types

import (
	"encoding/json"
	"testing"
)

func TestCommandAuditedDefaultsTrue(t *testing.T) {
	cmd := &Command{ID: "file.read"}
	if !cmd.Audited() {
		t.Error("expected audit to default to true")
	}

	off := false
	cmd.Audit = &off
	if cmd.Audited() {
		t.Error("expected audit false when explicitly disabled")
	}

	on := true
	cmd.Audit = &on
	if !cmd.Audited() {
		t.Error("expected audit true when explicitly enabled")
	}
}

func TestStatusTerminal(t *testing.T) {
	terminal := []Status{StatusCompleted, StatusFailed, StatusRejected}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Errorf("expected %s to be terminal", s)
		}
	}

	open := []Status{StatusPending, StatusApproved, StatusExecuting}
	for _, s := range open {
		if s.Terminal() {
			t.Errorf("expected %s to be non-terminal", s)
		}
	}
}

func TestAuditEventOptionalFieldsOmitted(t *testing.T) {
	data, err := json.Marshal(AuditEvent{
		Timestamp: 1700000000000,
		CommandID: "file.read",
		Source:    SourceUI,
		Success:   true,
	})
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if _, ok := decoded["error"]; ok {
		t.Error("empty error should be omitted")
	}
	if _, ok := decoded["metadata"]; ok {
		t.Error("empty metadata should be omitted")
	}
	if decoded["commandId"] != "file.read" {
		t.Errorf("unexpected commandId field: %v", decoded["commandId"])
	}
}

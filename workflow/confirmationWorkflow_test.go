package workflow

import (
	"context"
	"testing"

	"bitbucket.org/mmdatafocus/bizmanager_backend/config"
)

// The gating below must resolve before any lock or database work, so these
// run without either.

func TestProcessDashboardMessage_RequiresBusinessId(t *testing.T) {
	err := ProcessDashboardMessage(context.Background(), "m-1", config.PubSubMessage{
		ReferenceType: "SL",
		Action:        "CF",
	})
	if err == nil {
		t.Fatalf("a message without a business id must be rejected")
	}
}

func TestProcessDashboardMessage_IgnoresOutboxEvents(t *testing.T) {
	// The outbox loops this system's own record events back onto the topic.
	// None of them may flip a status; all are acked.
	cases := []struct {
		referenceType string
		action        string
	}{
		{"SL", "C"},
		{"SL", "U"},
		{"SL", "D"},
		{"EX", "C"},
		{"EX", "U"},
		{"SL", "AP"}, // approve is an expense decision, not a sale one
		{"EX", "CF"}, // confirm is a sale decision, not an expense one
	}
	for _, tc := range cases {
		err := ProcessDashboardMessage(context.Background(), "m-1", config.PubSubMessage{
			BusinessId:    "biz-1",
			ReferenceId:   42,
			ReferenceType: tc.referenceType,
			Action:        tc.action,
		})
		if err != nil {
			t.Errorf("type %s action %s should be acked untouched, got %v", tc.referenceType, tc.action, err)
		}
	}
}

func TestProcessDashboardMessage_AcksUnknownReferenceType(t *testing.T) {
	err := ProcessDashboardMessage(context.Background(), "m-1", config.PubSubMessage{
		BusinessId:    "biz-1",
		ReferenceType: "??",
		Action:        "CF",
	})
	if err != nil {
		t.Fatalf("unknown reference types must be acked, got %v", err)
	}
}

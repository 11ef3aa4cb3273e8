package audit

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDiffRecordsOnlyDifferingFields(t *testing.T) {
	diff := NewDiff()
	diff.String("status", "planned", "planned")
	diff.Int("duration_min", 60, 60)

	if !diff.Empty() {
		t.Fatalf("diff should be empty, got %v", diff.Changes())
	}

	diff.String("status", "planned", "arrived")
	diff.Int("duration_min", 60, 90)

	changes := diff.Changes()
	if len(changes) != 2 {
		t.Fatalf("expected 2 changes, got %d", len(changes))
	}
	if changes["status"] != (Change{From: "planned", To: "arrived"}) {
		t.Fatalf("unexpected status change: %v", changes["status"])
	}
	if changes["duration_min"] != (Change{From: "60", To: "90"}) {
		t.Fatalf("unexpected duration change: %v", changes["duration_min"])
	}
}

func TestDiffOptionalFields(t *testing.T) {
	oldComment := "walk-in"
	newComment := "phone booking"
	players := 4

	diff := NewDiff()
	diff.OptionalString("comment", &oldComment, &newComment)
	diff.OptionalString("contact_name", nil, nil)
	diff.OptionalInt("players", nil, &players)

	changes := diff.Changes()
	if changes["comment"] != (Change{From: "walk-in", To: "phone booking"}) {
		t.Fatalf("unexpected comment change: %v", changes["comment"])
	}
	if _, ok := changes["contact_name"]; ok {
		t.Fatal("nil-to-nil optional should not be recorded")
	}
	if changes["players"] != (Change{From: "", To: "4"}) {
		t.Fatalf("unexpected players change: %v", changes["players"])
	}
}

func TestDiffTimeNormalizesToRFC3339(t *testing.T) {
	loc := time.FixedZone("CEST", 2*60*60)
	from := time.Date(2024, time.March, 10, 12, 0, 0, 0, loc)
	to := time.Date(2024, time.March, 10, 14, 0, 0, 0, loc)

	diff := NewDiff()
	diff.Time("start_at", from, to)

	change, ok := diff.Changes()["start_at"].(Change)
	if !ok {
		t.Fatalf("start_at change missing: %v", diff.Changes())
	}
	if change.From != "2024-03-10T10:00:00Z" || change.To != "2024-03-10T12:00:00Z" {
		t.Fatalf("timestamps not normalized: %+v", change)
	}

	diff.Time("end_at", from, from.In(time.UTC))
	if _, ok := diff.Changes()["end_at"]; ok {
		t.Fatal("equal instants in different zones should not be recorded")
	}
}

func TestNewEntryDefaultsChanges(t *testing.T) {
	entry := NewEntry("user-1", "session", "sess-1", "complete", nil)
	if entry.Changes == nil || len(entry.Changes) != 0 {
		t.Fatalf("nil changes should become an empty mapping, got %v", entry.Changes)
	}
}

func TestChangesRoundTripThroughJSON(t *testing.T) {
	changes := Changes{
		"comment": Change{From: "old", To: "new"},
		"reason":  "duplicate",
	}

	encoded, err := json.Marshal(changes)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded Changes
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	comment, ok := decoded["comment"].(map[string]any)
	if !ok {
		t.Fatalf("comment did not decode to a mapping: %v", decoded["comment"])
	}
	if comment["from"] != "old" || comment["to"] != "new" {
		t.Fatalf("comment diff lost in round trip: %v", comment)
	}
	if decoded["reason"] != "duplicate" {
		t.Fatalf("plain value lost in round trip: %v", decoded["reason"])
	}
}

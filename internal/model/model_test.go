package model

import (
	"encoding/json"
	"testing"
)

func TestRefUnmarshal_RawID(t *testing.T) {
	var task Task
	if err := json.Unmarshal([]byte(`{"id":"t1","title":"Fix bug","priority":"high","status":"s1"}`), &task); err != nil {
		t.Fatalf("failed to unmarshal task: %v", err)
	}

	if task.StatusID() != "s1" {
		t.Errorf("status id = %q, want %q", task.StatusID(), "s1")
	}
	if _, ok := task.Status.Obj(); ok {
		t.Error("raw id reference should not carry an object")
	}
}

func TestRefUnmarshal_EmbeddedObject(t *testing.T) {
	var task Task
	raw := `{"id":"t1","title":"Fix bug","priority":"high","status":{"id":"s1","name":"Open","order":1}}`
	if err := json.Unmarshal([]byte(raw), &task); err != nil {
		t.Fatalf("failed to unmarshal task: %v", err)
	}

	if task.StatusID() != "s1" {
		t.Errorf("status id = %q, want %q", task.StatusID(), "s1")
	}
	status, ok := task.Status.Obj()
	if !ok {
		t.Fatal("expected embedded status object")
	}
	if status.Name != "Open" {
		t.Errorf("status name = %q, want %q", status.Name, "Open")
	}
}

func TestRefUnmarshal_MongoIDField(t *testing.T) {
	var user User
	if err := json.Unmarshal([]byte(`{"id":"u1","first_name":"Ada","role":{"_id":"r1","name":"Admin"}}`), &user); err != nil {
		t.Fatalf("failed to unmarshal user: %v", err)
	}

	if user.Role.ID() != "r1" {
		t.Errorf("role id = %q, want %q", user.Role.ID(), "r1")
	}
	if user.RoleName() != "Admin" {
		t.Errorf("role name = %q, want %q", user.RoleName(), "Admin")
	}
}

// Both wire forms must produce identical placement and labels.
func TestRefNormalization_Idempotent(t *testing.T) {
	rawForm := `{"id":"t1","title":"Fix bug","priority":"low","status":"s2","assignee":"u9"}`
	embeddedForm := `{"id":"t1","title":"Fix bug","priority":"low",
		"status":{"id":"s2","name":"Doing"},
		"assignee":{"id":"u9","first_name":"","last_name":""}}`

	var a, b Task
	if err := json.Unmarshal([]byte(rawForm), &a); err != nil {
		t.Fatalf("raw form: %v", err)
	}
	if err := json.Unmarshal([]byte(embeddedForm), &b); err != nil {
		t.Fatalf("embedded form: %v", err)
	}

	if a.StatusID() != b.StatusID() {
		t.Errorf("status ids differ: %q vs %q", a.StatusID(), b.StatusID())
	}
	if a.AssigneeLabel() != b.AssigneeLabel() {
		t.Errorf("assignee labels differ: %q vs %q", a.AssigneeLabel(), b.AssigneeLabel())
	}
}

func TestRefMarshal_EmitsRawID(t *testing.T) {
	ref := Expanded("s1", Status{ID: "s1", Name: "Open"})
	data, err := json.Marshal(ref)
	if err != nil {
		t.Fatalf("failed to marshal ref: %v", err)
	}
	if string(data) != `"s1"` {
		t.Errorf("marshaled ref = %s, want %q", data, `"s1"`)
	}
}

func TestRefUnmarshal_Null(t *testing.T) {
	var task Task
	if err := json.Unmarshal([]byte(`{"id":"t1","title":"x","priority":"low","status":"s1","assignee":null}`), &task); err != nil {
		t.Fatalf("failed to unmarshal task: %v", err)
	}
	if !task.Assignee.IsZero() {
		t.Error("null assignee should decode to a zero reference")
	}
}

func TestPriorityIsValid(t *testing.T) {
	for _, p := range []Priority{PriorityLow, PriorityMedium, PriorityHigh} {
		if !p.IsValid() {
			t.Errorf("%q should be valid", p)
		}
	}
	if Priority("urgent").IsValid() {
		t.Error("unknown priority should be invalid")
	}
}

func TestStatusOrderValue(t *testing.T) {
	if (Status{}).OrderValue() != 0 {
		t.Error("nil order should sort as 0")
	}
	two := 2
	if (Status{Order: &two}).OrderValue() != 2 {
		t.Error("explicit order should be returned")
	}
}

func TestUserDisplayName(t *testing.T) {
	u := User{ID: "u1", FirstName: "Ada", LastName: "Lovelace"}
	if got := u.DisplayName(); got != "Ada Lovelace" {
		t.Errorf("display name = %q, want %q", got, "Ada Lovelace")
	}

	u = User{ID: "u1", Email: "ada@example.com"}
	if got := u.DisplayName(); got != "ada@example.com" {
		t.Errorf("display name = %q, want email fallback", got)
	}

	u = User{ID: "u1"}
	if got := u.DisplayName(); got != "u1" {
		t.Errorf("display name = %q, want id fallback", got)
	}
}

package domain

import "testing"

func TestUserStruct_DefaultZeroValues(t *testing.T) {
	var u User

	if u.Role != "" {
		t.Fatalf("expected empty role")
	}
	if u.LastLogin != nil {
		t.Fatalf("expected nil LastLogin before first login")
	}
}

func TestDefaultSettings_NotificationShape(t *testing.T) {
	s := DefaultSettings()

	n, ok := s["notifications"].(map[string]any)
	if !ok {
		t.Fatalf("expected notifications map, got %+v", s)
	}
	if n["email"] != true || n["in_app"] != true {
		t.Fatalf("unexpected defaults: %+v", n)
	}
}

func TestDefaultSettings_FreshMapPerCall(t *testing.T) {
	a := DefaultSettings()
	b := DefaultSettings()

	a["notifications"].(map[string]any)["email"] = false
	if b["notifications"].(map[string]any)["email"] != true {
		t.Fatalf("settings maps must not be shared between users")
	}
}

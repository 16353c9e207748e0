package types

import (
	"encoding/json"
	"testing"

	hserrors "github.com/Hypersave-AI/hypersave-sdk/internal/errors"
)

func TestValidateRequired(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in string
		ok bool
	}{
		{"a", true}, {"  x ", true}, {"", false}, {"   ", false}, {"\t\n", false},
	}
	for _, c := range cases {
		err := ValidateRequired(c.in, "content")
		if c.ok && err != nil {
			t.Fatalf("expected ok for %q, got %v", c.in, err)
		}
		if !c.ok {
			if !hserrors.IsKind(err, hserrors.KindValidation) {
				t.Fatalf("expected validation error for %q, got %v", c.in, err)
			}
			e, _ := hserrors.As(err)
			if e.Details["field"] != "content" {
				t.Fatalf("details = %v", e.Details)
			}
		}
	}
}

func TestValidateNonNegativeAndOneOf(t *testing.T) {
	t.Parallel()
	if err := ValidateNonNegative(0, "limit"); err != nil {
		t.Fatalf("0 should be valid: %v", err)
	}
	if err := ValidateNonNegative(-1, "limit"); !hserrors.IsKind(err, hserrors.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := ValidateOneOf("", "https://x", "content", "url"); err != nil {
		t.Fatalf("url alone should be valid: %v", err)
	}
	if err := ValidateOneOf("", " ", "content", "url"); !hserrors.IsKind(err, hserrors.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUserScopeFlattensIntoBody(t *testing.T) {
	t.Parallel()
	b, err := json.Marshal(SaveRequest{UserScope: UserScope{UserID: "u1"}, Content: "hello"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m["userId"] != "u1" || m["content"] != "hello" {
		t.Fatalf("unexpected body %s", b)
	}
	var scoped UserScoped = SaveRequest{UserScope: UserScope{UserID: "u2"}}
	if scoped.BodyUserID() != "u2" {
		t.Fatalf("BodyUserID = %q", scoped.BodyUserID())
	}
}

package utils

import "testing"

func TestValidateAndNormalizeRole(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Manager", "manager", true},
		{"staff", "staff", true},
		{"STAFF", "staff", true},
		{"admin", "admin", false},
		{"", "", false},
	}

	for _, c := range cases {
		got, ok := ValidateAndNormalizeRole(c.in)
		if got != c.want || ok != c.ok {
			t.Fatalf("ValidateAndNormalizeRole(%q) = (%q, %v); want (%q, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestIsValidRole(t *testing.T) {
	if !IsValidRole("manager") {
		t.Fatal("expected manager to be valid")
	}
	if !IsValidRole("Staff") {
		t.Fatal("expected Staff to be valid case-insensitively")
	}
	if IsValidRole("superuser") {
		t.Fatal("expected superuser to be invalid")
	}
}

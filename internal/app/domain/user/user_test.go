package user

import "testing"

func TestIsAdminCaseInsensitive(t *testing.T) {
	for _, role := range []string{"ADMIN", "admin", "Admin", " ADMIN "} {
		if !(User{Role: role}).IsAdmin() {
			t.Fatalf("role %q should be admin", role)
		}
	}
	for _, role := range []string{"CLIENT", "client", "", "administrator"} {
		if (User{Role: role}).IsAdmin() {
			t.Fatalf("role %q should not be admin", role)
		}
	}
}

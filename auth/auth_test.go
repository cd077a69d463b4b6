package auth

import (
	"testing"

	"travelmate/store"
)

func openStore(t *testing.T, dir string) *store.Store {
	t.Helper()
	s, err := store.Open(dir)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	return s
}

func TestRegisterAndLogin(t *testing.T) {
	s := openStore(t, t.TempDir())
	defer s.Close()

	svc, err := NewService(s)
	if err != nil {
		t.Fatalf("NewService() failed: %v", err)
	}

	u, err := svc.Register("Alice", "alice@example.com", "secret")
	if err != nil {
		t.Fatalf("Register() failed: %v", err)
	}
	if u.ID != 1 {
		t.Errorf("first user id = %d, want 1", u.ID)
	}
	if cur := svc.Current(); cur == nil || cur.Email != "alice@example.com" {
		t.Fatalf("Current() = %v, want alice@example.com", cur)
	}

	if err := svc.Logout(); err != nil {
		t.Fatalf("Logout() failed: %v", err)
	}
	if svc.Current() != nil {
		t.Fatal("session still set after logout")
	}

	if _, err := svc.Login("alice@example.com", "wrong"); err != ErrInvalidCredentials {
		t.Errorf("Login with bad password = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login("Alice@example.com", "secret"); err != ErrInvalidCredentials {
		t.Errorf("Login with wrong-case email = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login("alice@example.com", "secret"); err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s := openStore(t, t.TempDir())
	defer s.Close()

	svc, err := NewService(s)
	if err != nil {
		t.Fatalf("NewService() failed: %v", err)
	}

	if _, err := svc.Register("A", "a@x.com", "p"); err != nil {
		t.Fatalf("first Register() failed: %v", err)
	}
	if _, err := svc.Register("B", "a@x.com", "q"); err != ErrEmailTaken {
		t.Fatalf("second Register() = %v, want ErrEmailTaken", err)
	}
	if svc.UserCount() != 1 {
		t.Errorf("user count = %d, want 1", svc.UserCount())
	}
	if cur := svc.Current(); cur == nil || cur.Name != "A" {
		t.Errorf("Current() = %v, want first user", cur)
	}
}

func TestSessionRestoredAfterRestart(t *testing.T) {
	dir := t.TempDir()

	s := openStore(t, dir)
	svc, err := NewService(s)
	if err != nil {
		t.Fatalf("NewService() failed: %v", err)
	}
	if _, err := svc.Register("Bob", "bob@example.com", "pw"); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	// Simulated restart: reopen the same store directory.
	s = openStore(t, dir)
	defer s.Close()
	svc, err = NewService(s)
	if err != nil {
		t.Fatalf("NewService() after restart failed: %v", err)
	}

	cur := svc.Current()
	if cur == nil || cur.Email != "bob@example.com" {
		t.Fatalf("session not restored, Current() = %v", cur)
	}
	if svc.UserCount() != 1 {
		t.Errorf("user list not restored, count = %d", svc.UserCount())
	}
}

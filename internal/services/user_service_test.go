package services

import (
	"strings"
	"testing"

	apperrors "daechul/internal/errors"
	"daechul/internal/testutil"
)

func TestSeedDemoUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	users := NewUserService(db)

	user, err := users.SeedDemoUser("demo@daechul.dev", "password123")
	testutil.AssertNoError(t, err)

	if user.Email != "demo@daechul.dev" {
		t.Errorf("unexpected email %s", user.Email)
	}
	if !strings.HasPrefix(user.WalletAddress, "0x") || len(user.WalletAddress) != 42 {
		t.Errorf("unexpected wallet address %s", user.WalletAddress)
	}
	if user.Password == "password123" {
		t.Error("password stored in plain text")
	}

	t.Run("is idempotent", func(t *testing.T) {
		again, err := users.SeedDemoUser("demo@daechul.dev", "different")
		testutil.AssertNoError(t, err)
		if again.ID != user.ID {
			t.Errorf("expected the same user, got %s and %s", user.ID, again.ID)
		}
	})

	t.Run("verifies the original password", func(t *testing.T) {
		stored, err := users.GetUserByEmail("demo@daechul.dev")
		testutil.AssertNoError(t, err)
		if !users.VerifyPassword(stored, "password123") {
			t.Error("expected password to verify")
		}
		if users.VerifyPassword(stored, "wrong") {
			t.Error("expected wrong password to fail")
		}
	})

	t.Run("lookup is case insensitive", func(t *testing.T) {
		found, err := users.GetUserByEmail("DEMO@daechul.dev")
		testutil.AssertNoError(t, err)
		if found.ID != user.ID {
			t.Error("expected case-insensitive lookup to find the demo user")
		}
	})
}

func TestGetUserNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	users := NewUserService(db)

	_, err := users.GetUserByEmail("nobody@daechul.dev")
	testutil.AssertAppError(t, err, apperrors.ErrUserNotFound)

	_, err = users.GetUserByID("00000000-0000-0000-0000-000000000000")
	testutil.AssertAppError(t, err, apperrors.ErrUserNotFound)
}

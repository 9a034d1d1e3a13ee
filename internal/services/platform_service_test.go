package services

import (
	"testing"

	"pesafolio/internal/models"
	"pesafolio/internal/pagination"
	"pesafolio/internal/testutil"
)

func TestConnectPlatform(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewPlatformService(db)
	user := testutil.CreateTestUser(t, db)

	platform, err := svc.ConnectPlatform(user.ID, "Hisa", models.PlatformTypeBroker, "secret-key")
	testutil.AssertNoError(t, err)

	if platform.ConnectionStatus != "pending" {
		t.Errorf("expected pending status, got %s", platform.ConnectionStatus)
	}
	if platform.PlatformType != models.PlatformTypeBroker {
		t.Errorf("expected broker type, got %s", platform.PlatformType)
	}
}

func TestConnectPlatform_RequiresName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewPlatformService(db)
	user := testutil.CreateTestUser(t, db)

	_, err := svc.ConnectPlatform(user.ID, "", models.PlatformTypeBroker, "")
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}

func TestGetUserPlatforms_ScopedToUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewPlatformService(db)
	owner := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)

	testutil.CreateTestPlatform(t, db, owner.ID)
	testutil.CreateTestPlatform(t, db, owner.ID)
	testutil.CreateTestPlatform(t, db, other.ID)

	result, err := svc.GetUserPlatforms(owner.ID, pagination.PageRequest{})
	testutil.AssertNoError(t, err)

	if result.TotalItems != 2 {
		t.Errorf("expected 2 platforms, got %d", result.TotalItems)
	}
}

func TestGetPlatformByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewPlatformService(db)
	owner := testutil.CreateTestUser(t, db)
	intruder := testutil.CreateTestUser(t, db)

	platform := testutil.CreateTestPlatform(t, db, owner.ID)

	got, err := svc.GetPlatformByID(owner.ID, platform.ID)
	testutil.AssertNoError(t, err)
	if got.ID != platform.ID {
		t.Errorf("expected platform %s, got %s", platform.ID, got.ID)
	}

	_, err = svc.GetPlatformByID(intruder.ID, platform.ID)
	testutil.AssertAppError(t, err, "PLATFORM_NOT_FOUND")
}

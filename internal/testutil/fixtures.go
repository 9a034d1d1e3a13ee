package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"pesafolio/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestPlatform creates a connected broker platform for the user.
func CreateTestPlatform(t *testing.T, db *gorm.DB, userID string) *models.ConnectedPlatform {
	t.Helper()

	platform := &models.ConnectedPlatform{
		UserID:           userID,
		PlatformName:     fmt.Sprintf("Test Broker %d", nextID()),
		PlatformType:     models.PlatformTypeBroker,
		ConnectionStatus: "connected",
	}
	if err := db.Create(platform).Error; err != nil {
		t.Fatalf("failed to create test platform: %v", err)
	}
	return platform
}

// CreateTestHolding creates a holding with the given quantity, average
// cost, and current value (both in KES).
func CreateTestHolding(t *testing.T, db *gorm.DB, userID, assetName, assetType string, quantity, averageCost, currentValue float64) *models.Holding {
	t.Helper()

	avg := decimal.NewFromFloat(averageCost)
	value := decimal.NewFromFloat(currentValue)
	holding := &models.Holding{
		UserID:       userID,
		AssetName:    assetName,
		AssetType:    assetType,
		Quantity:     quantity,
		AverageCost:  &avg,
		CurrentValue: &value,
		LastUpdated:  time.Now(),
	}
	if err := db.Create(holding).Error; err != nil {
		t.Fatalf("failed to create test holding: %v", err)
	}
	return holding
}

// CreateTestTransaction creates a completed transaction of the given kind
// and amount (in KES) dated now.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID string, txType models.TransactionType, assetName, assetType string, amount float64) *models.Transaction {
	t.Helper()

	txn := &models.Transaction{
		UserID:          userID,
		TransactionType: txType,
		AssetName:       assetName,
		AssetType:       assetType,
		Amount:          decimal.NewFromFloat(amount),
		Fees:            decimal.Zero,
		TransactionDate: time.Now(),
		Status:          "completed",
	}
	if err := db.Create(txn).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return txn
}

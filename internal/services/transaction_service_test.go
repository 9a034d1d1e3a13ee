package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"pesafolio/internal/models"
	"pesafolio/internal/pagination"
	"pesafolio/internal/testutil"
	"pesafolio/internal/validation"
)

func buyRecord(assetName string, amount float64, qty float64) validation.Normalized {
	return validation.Normalized{
		TransactionType: models.TransactionTypeBuy,
		AssetName:       assetName,
		AssetType:       "stock",
		Amount:          decimal.NewFromFloat(amount),
		Quantity:        &qty,
		Fees:            decimal.Zero,
		TransactionDate: time.Now(),
		Status:          "completed",
	}
}

func TestCreateTransaction_BuyCreatesHolding(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	holdingSvc := NewHoldingService(db, nil)
	svc := NewTransactionService(db, holdingSvc)
	user := testutil.CreateTestUser(t, db)

	txn, err := svc.Create(user.ID, nil, buyRecord("SCOM", 2850, 100))
	testutil.AssertNoError(t, err)

	if txn.ID == "" {
		t.Fatal("expected non-empty transaction ID")
	}
	if txn.Status != "completed" {
		t.Errorf("expected completed status, got %s", txn.Status)
	}

	var holding models.Holding
	if err := db.Where("user_id = ? AND asset_name = ?", user.ID, "SCOM").First(&holding).Error; err != nil {
		t.Fatalf("expected a holding to be created: %v", err)
	}
	if holding.Quantity != 100 {
		t.Errorf("expected quantity 100, got %f", holding.Quantity)
	}
	// 2850 KES for 100 units
	if holding.AverageCost == nil || !holding.AverageCost.Equal(decimal.NewFromFloat(28.5)) {
		t.Errorf("expected average cost 28.5, got %v", holding.AverageCost)
	}
	if holding.CurrentValue == nil || !holding.CurrentValue.Equal(decimal.NewFromInt(2850)) {
		t.Errorf("expected current value 2850, got %v", holding.CurrentValue)
	}
}

func TestCreateTransaction_BuyAveragesCost(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	holdingSvc := NewHoldingService(db, nil)
	svc := NewTransactionService(db, holdingSvc)
	user := testutil.CreateTestUser(t, db)

	_, err := svc.Create(user.ID, nil, buyRecord("KCB", 1000, 50)) // 20 per unit
	testutil.AssertNoError(t, err)
	_, err = svc.Create(user.ID, nil, buyRecord("KCB", 3000, 50)) // 60 per unit
	testutil.AssertNoError(t, err)

	var holding models.Holding
	if err := db.Where("user_id = ? AND asset_name = ?", user.ID, "KCB").First(&holding).Error; err != nil {
		t.Fatalf("expected a holding: %v", err)
	}
	if holding.Quantity != 100 {
		t.Errorf("expected quantity 100, got %f", holding.Quantity)
	}
	// (1000 + 3000) / 100 = 40
	if holding.AverageCost == nil || !holding.AverageCost.Equal(decimal.NewFromInt(40)) {
		t.Errorf("expected average cost 40, got %v", holding.AverageCost)
	}
}

func TestCreateTransaction_SellFloorsAtZero(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	holdingSvc := NewHoldingService(db, nil)
	svc := NewTransactionService(db, holdingSvc)
	user := testutil.CreateTestUser(t, db)

	_, err := svc.Create(user.ID, nil, buyRecord("EQTY", 500, 10))
	testutil.AssertNoError(t, err)

	qty := 25.0
	sell := validation.Normalized{
		TransactionType: models.TransactionTypeSell,
		AssetName:       "EQTY",
		AssetType:       "stock",
		Amount:          decimal.NewFromInt(900),
		Quantity:        &qty,
		Fees:            decimal.Zero,
		TransactionDate: time.Now(),
		Status:          "completed",
	}
	_, err = svc.Create(user.ID, nil, sell)
	testutil.AssertNoError(t, err)

	var holding models.Holding
	if err := db.Where("user_id = ? AND asset_name = ?", user.ID, "EQTY").First(&holding).Error; err != nil {
		t.Fatalf("expected the holding to remain: %v", err)
	}
	if holding.Quantity != 0 {
		t.Errorf("expected quantity floored at 0, got %f", holding.Quantity)
	}
	if holding.CurrentValue == nil || !holding.CurrentValue.IsZero() {
		t.Errorf("expected current value floored at 0, got %v", holding.CurrentValue)
	}
}

func TestCreateTransaction_SellUnknownAssetIsNoop(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	holdingSvc := NewHoldingService(db, nil)
	svc := NewTransactionService(db, holdingSvc)
	user := testutil.CreateTestUser(t, db)

	sell := validation.Normalized{
		TransactionType: models.TransactionTypeSell,
		AssetName:       "GHOST",
		AssetType:       "stock",
		Amount:          decimal.NewFromInt(100),
		Fees:            decimal.Zero,
		TransactionDate: time.Now(),
		Status:          "completed",
	}
	_, err := svc.Create(user.ID, nil, sell)
	testutil.AssertNoError(t, err)

	var count int64
	db.Model(&models.Holding{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Errorf("expected no holding to be created, got %d", count)
	}
}

func TestCreateTransaction_ValuationReplacesValue(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	holdingSvc := NewHoldingService(db, nil)
	svc := NewTransactionService(db, holdingSvc)
	user := testutil.CreateTestUser(t, db)

	purchase := validation.Normalized{
		TransactionType: models.TransactionTypePurchase,
		AssetName:       "Kitengela plot",
		AssetType:       "land",
		Amount:          decimal.NewFromInt(1_000_000),
		Fees:            decimal.Zero,
		TransactionDate: time.Now(),
		Status:          "completed",
	}
	_, err := svc.Create(user.ID, nil, purchase)
	testutil.AssertNoError(t, err)

	valuation := purchase
	valuation.TransactionType = models.TransactionTypeValuation
	valuation.Amount = decimal.NewFromInt(1_500_000)
	_, err = svc.Create(user.ID, nil, valuation)
	testutil.AssertNoError(t, err)

	var holding models.Holding
	if err := db.Where("user_id = ? AND asset_name = ?", user.ID, "Kitengela plot").First(&holding).Error; err != nil {
		t.Fatalf("expected a holding: %v", err)
	}
	if holding.CurrentValue == nil || !holding.CurrentValue.Equal(decimal.NewFromInt(1_500_000)) {
		t.Errorf("expected valuation to replace value, got %v", holding.CurrentValue)
	}
}

func TestCreateTransaction_DividendLeavesHoldingAlone(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	holdingSvc := NewHoldingService(db, nil)
	svc := NewTransactionService(db, holdingSvc)
	user := testutil.CreateTestUser(t, db)

	_, err := svc.Create(user.ID, nil, buyRecord("KQ", 1000, 100))
	testutil.AssertNoError(t, err)

	dividend := validation.Normalized{
		TransactionType: models.TransactionTypeDividend,
		AssetName:       "KQ",
		AssetType:       "stock",
		Amount:          decimal.NewFromInt(120),
		Fees:            decimal.Zero,
		TransactionDate: time.Now(),
		Status:          "completed",
	}
	_, err = svc.Create(user.ID, nil, dividend)
	testutil.AssertNoError(t, err)

	var holding models.Holding
	db.Where("user_id = ? AND asset_name = ?", user.ID, "KQ").First(&holding)
	if holding.Quantity != 100 {
		t.Errorf("expected quantity unchanged, got %f", holding.Quantity)
	}
	if holding.CurrentValue == nil || !holding.CurrentValue.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected current value unchanged, got %v", holding.CurrentValue)
	}
}

func TestCreateTransaction_UnknownPlatformRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	holdingSvc := NewHoldingService(db, nil)
	svc := NewTransactionService(db, holdingSvc)
	user := testutil.CreateTestUser(t, db)

	platformID := "0192f8a0-0000-7000-8000-00000000dead"
	_, err := svc.Create(user.ID, &platformID, buyRecord("SCOM", 100, 1))
	testutil.AssertAppError(t, err, "PLATFORM_NOT_FOUND")
}

func TestGetUserTransactions_OrderedByDateDesc(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	holdingSvc := NewHoldingService(db, nil)
	svc := NewTransactionService(db, holdingSvc)
	user := testutil.CreateTestUser(t, db)

	for i, daysAgo := range []int{5, 1, 3} {
		rec := buyRecord("SCOM", float64(100*(i+1)), 10)
		rec.TransactionDate = time.Now().AddDate(0, 0, -daysAgo)
		_, err := svc.Create(user.ID, nil, rec)
		testutil.AssertNoError(t, err)
	}

	result, err := svc.GetUserTransactions(user.ID, pagination.PageRequest{})
	testutil.AssertNoError(t, err)

	if result.TotalItems != 3 {
		t.Fatalf("expected 3 transactions, got %d", result.TotalItems)
	}
	for i := 1; i < len(result.Data); i++ {
		if result.Data[i].TransactionDate.After(result.Data[i-1].TransactionDate) {
			t.Fatalf("transactions not ordered by date descending")
		}
	}
}

func TestGetTransactionByID_ScopedToUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	holdingSvc := NewHoldingService(db, nil)
	svc := NewTransactionService(db, holdingSvc)
	owner := testutil.CreateTestUser(t, db)
	intruder := testutil.CreateTestUser(t, db)

	txn, err := svc.Create(owner.ID, nil, buyRecord("SCOM", 100, 1))
	testutil.AssertNoError(t, err)

	got, err := svc.GetTransactionByID(owner.ID, txn.ID)
	testutil.AssertNoError(t, err)
	if got.ID != txn.ID {
		t.Errorf("expected transaction %s, got %s", txn.ID, got.ID)
	}

	_, err = svc.GetTransactionByID(intruder.ID, txn.ID)
	testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
}

package services

import (
	"context"

	"gorm.io/gorm"

	"pesafolio/internal/models"
	"pesafolio/internal/pagination"
	"pesafolio/internal/portfolio"
	"pesafolio/internal/validation"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, fullName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// PlatformServicer defines the contract for connected-platform logic.
type PlatformServicer interface {
	ConnectPlatform(userID, name string, platformType models.PlatformType, apiKey string) (*models.ConnectedPlatform, error)
	GetUserPlatforms(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.ConnectedPlatform], error)
	GetPlatformByID(userID, platformID string) (*models.ConnectedPlatform, error)
}

// HoldingServicer defines the contract for holding and portfolio logic.
type HoldingServicer interface {
	GetUserHoldings(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Holding], error)
	GetPortfolioSummary(userID string) (*portfolio.Summary, error)
	// ApplyTransaction folds a newly recorded transaction into the user's
	// holdings inside the caller's database transaction.
	ApplyTransaction(tx *gorm.DB, txn *models.Transaction) error
	// RefreshMarketValues revalues the stalest exchange-traded holdings
	// from live quotes. Returns the number of holdings updated.
	RefreshMarketValues(ctx context.Context) (int, error)
}

// TransactionServicer defines the contract for the transaction ledger.
// Transactions are immutable once recorded: there is no update or delete.
type TransactionServicer interface {
	Create(userID string, platformID *string, rec validation.Normalized) (*models.Transaction, error)
	GetUserTransactions(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
}

// Quote is a current market quote for a ticker symbol.
type Quote struct {
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"changePercent"`
}

// PriceServicer translates ticker symbols into current quotes. At most
// five symbols are processed per call, sequentially, to stay under the
// provider's rate ceiling; symbols whose quote cannot be retrieved are
// omitted from the result, which still counts as success.
type PriceServicer interface {
	FetchPrices(ctx context.Context, symbols []string) (map[string]Quote, error)
}

// InsightServicer produces free-text investment commentary from a
// portfolio snapshot. The model's response is returned verbatim.
type InsightServicer interface {
	GenerateInsights(ctx context.Context, holdings, transactions []map[string]any) (string, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]any)
}

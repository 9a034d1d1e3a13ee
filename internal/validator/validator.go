// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// tickerRegex matches exchange ticker symbols accepted by the market data
// proxy: letters, digits, dots, and dashes, 1-20 characters.
var tickerRegex = regexp.MustCompile(`^[A-Za-z0-9.-]{1,20}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("physical_transaction_type", validatePhysicalTransactionType)
		_ = v.RegisterValidation("asset_type", validateAssetType)
		_ = v.RegisterValidation("physical_asset_type", validatePhysicalAssetType)
		_ = v.RegisterValidation("platform_type", validatePlatformType)
		_ = v.RegisterValidation("ticker_symbol", validateTickerSymbol)
	}
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "buy", "sell", "dividend", "deposit", "withdrawal":
		return true
	}
	return false
}

func validatePhysicalTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "purchase", "sale", "valuation", "income":
		return true
	}
	return false
}

func validateAssetType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "stock", "etf", "bond", "reit", "mmf", "chama", "sacco", "treasury_bill":
		return true
	}
	return false
}

func validatePhysicalAssetType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "land", "real_estate", "livestock", "vehicle", "equipment", "other":
		return true
	}
	return false
}

func validatePlatformType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "broker", "bank", "mmf", "sacco", "chama", "custodian":
		return true
	}
	return false
}

func validateTickerSymbol(fl validator.FieldLevel) bool {
	return tickerRegex.MatchString(fl.Field().String())
}

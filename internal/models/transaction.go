// Package models provides the data structures used throughout the application.
package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents one posted purchase flowing through the enrichment
// pipeline. Records are treated as immutable: the pipeline layers annotations
// on top of them rather than mutating fields in place.
type Transaction struct {
	TransactionID      string          `json:"transaction_id" yaml:"transaction_id"`
	MerchantName       string          `json:"merchant_name" yaml:"merchant_name"`
	NormalizedMerchant string          `json:"normalized_merchant,omitempty" yaml:"normalized_merchant,omitempty"`
	Description        string          `json:"description,omitempty" yaml:"description,omitempty"`
	MCC                string          `json:"mcc,omitempty" yaml:"mcc,omitempty"`
	Amount             decimal.Decimal `json:"amount" yaml:"amount"`
	Date               time.Time       `json:"date" yaml:"date"`
	ZipCode            string          `json:"zip_code,omitempty" yaml:"zip_code,omitempty"`
	HomeZip            string          `json:"home_zip,omitempty" yaml:"home_zip,omitempty"`
	Pillar             string          `json:"pillar" yaml:"pillar"`
	Subcategory        string          `json:"subcategory,omitempty" yaml:"subcategory,omitempty"`
}

// Merchant returns the best available merchant label, preferring the
// normalized form when the importer supplied one.
func (t Transaction) Merchant() string {
	if strings.TrimSpace(t.NormalizedMerchant) != "" {
		return t.NormalizedMerchant
	}
	return t.MerchantName
}

// IsRefund reports whether the amount is a credit back to the account.
func (t Transaction) IsRefund() bool {
	return t.Amount.IsNegative()
}

// HasZip reports whether the transaction carries a physical location zip.
// Online and card-not-present purchases typically do not.
func (t Transaction) HasZip() bool {
	return strings.TrimSpace(t.ZipCode) != ""
}

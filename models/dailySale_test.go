package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestSaleSubmissionsAlwaysStartPending(t *testing.T) {
	total := decimal.NewFromInt(250)
	day := time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC)

	sale := newPendingSale("biz-1", 7, day, total, 3)
	if sale.Status != SaleStatusPending {
		t.Errorf("first submission status = %s, want pending", sale.Status)
	}
	if !sale.TotalSales.Equal(total) || sale.ServicesCount != 3 {
		t.Errorf("submission fields not carried: %s / %d", sale.TotalSales, sale.ServicesCount)
	}

	// Resubmitting a day that was already confirmed must drop it back to
	// pending along with the new numbers.
	updates := resubmissionUpdates(total, 3)
	if updates["status"] != SaleStatusPending {
		t.Errorf("resubmission status = %v, want pending", updates["status"])
	}
	if got := updates["total_sales"].(decimal.Decimal); !got.Equal(total) {
		t.Errorf("resubmission total = %s, want %s", got, total)
	}
}

package utils

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"
)

func TestIsRecordMissing(t *testing.T) {
	if !IsRecordMissing(gorm.ErrRecordNotFound) {
		t.Errorf("gorm.ErrRecordNotFound should count as missing")
	}
	if !IsRecordMissing(fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound)) {
		t.Errorf("wrapped ErrRecordNotFound should count as missing")
	}
	if IsRecordMissing(errors.New("dial tcp: connection refused")) {
		t.Errorf("a transport failure is not a missing record")
	}
	if IsRecordMissing(nil) {
		t.Errorf("nil is not a missing record")
	}
}

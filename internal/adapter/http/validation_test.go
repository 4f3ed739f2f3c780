package http

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestHex32Validation(t *testing.T) {
	type P struct {
		ApplicationID string `validate:"hex32"`
	}
	cv := NewValidator()

	// valid: 32-char lowercase hex
	ok := P{ApplicationID: strings.Repeat("a", 32)}
	if err := cv.Validate(ok); err != nil {
		t.Fatalf("expected valid hex32, got err: %v", err)
	}

	// invalid samples
	for _, s := range []string{
		"",                                  // empty
		strings.Repeat("A", 32),             // uppercase
		"deadbeef",                          // too short
		strings.Repeat("g", 32),             // non-hex char
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c8",   // 31 chars
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c88x", // 33 with extra
	} {
		err := cv.Validate(P{ApplicationID: s})
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		if fe := ToFieldErrors(err); !containsFieldMsg(fe, "ApplicationID", "32-char lowercase hex") {
			t.Fatalf("expected hex32 message for %q, got: %+v", s, fe)
		}
	}
}

func TestDec2Validation_Decimal(t *testing.T) {
	type P struct {
		Amount decimal.Decimal `json:"amount" validate:"dec2"`
	}
	cv := NewValidator()

	for _, v := range []string{"1.29", "2.00", "0.9", "45000", "90071992547409.93", "1.10"} {
		if err := cv.Validate(P{Amount: decimal.RequireFromString(v)}); err != nil {
			t.Fatalf("expected dec2 OK for %v, got %v", v, err)
		}
	}
	for _, v := range []string{"1.234", "2.9999", "0.0000000001", "45000.0000000001"} {
		err := cv.Validate(P{Amount: decimal.RequireFromString(v)})
		if err == nil {
			t.Fatalf("expected dec2 error for %v", v)
		}
		if fe := ToFieldErrors(err); !containsFieldMsg(fe, "amount", "at most 2 decimal places") {
			t.Fatalf("expected 'at most 2 decimal places' for %v, got %+v", v, fe)
		}
	}
}

func TestDecposValidation_Decimal(t *testing.T) {
	type P struct {
		Amount *decimal.Decimal `json:"amount" validate:"omitempty,decpos,dec2"`
	}
	cv := NewValidator()

	small := decimal.RequireFromString("0.01")
	if err := cv.Validate(P{Amount: &small}); err != nil {
		t.Fatalf("expected 0.01 to pass, got %v", err)
	}
	if err := cv.Validate(P{}); err != nil {
		t.Fatalf("expected omitted amount to pass, got %v", err)
	}
	neg := decimal.RequireFromString("-0.01")
	err := cv.Validate(P{Amount: &neg})
	if fe := ToFieldErrors(err); !containsFieldMsg(fe, "amount", "greater than 0") {
		t.Fatalf("expected 'greater than 0' for -0.01, got %+v", fe)
	}
}

func TestStatusValidation(t *testing.T) {
	type P struct {
		Status string `json:"status" validate:"status"`
	}
	cv := NewValidator()

	for _, s := range []string{"approved", "pending-allocation", "rejected"} {
		if err := cv.Validate(P{Status: s}); err != nil {
			t.Fatalf("expected %q valid, got %v", s, err)
		}
	}
	err := cv.Validate(P{Status: "archived"})
	if err == nil {
		t.Fatalf("expected error for unknown status")
	}
	if fe := ToFieldErrors(err); !containsFieldMsg(fe, "status", "known application status") {
		t.Fatalf("unexpected mapping: %+v", fe)
	}
}

func TestRequiredAndBoundsMapping(t *testing.T) {
	cv := NewValidator()

	// Intentionally violate all
	err := cv.Validate(&bulkAllocateReq{ApplicationIDs: []string{}, FundSource: ""})
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	fe := ToFieldErrors(err)
	if !containsFieldMsg(fe, "application_ids", "at least 1") {
		t.Fatalf("missing min message: %+v", fe)
	}
	if !containsFieldMsg(fe, "fund_source", "is required") {
		t.Fatalf("missing required message: %+v", fe)
	}

	err = cv.Validate(&allocateReq{Amount: decimal.NewFromInt(-5), FundSource: "cdf"})
	if fe := ToFieldErrors(err); !containsFieldMsg(fe, "amount", "greater than 0") {
		t.Fatalf("missing decpos message: %+v", fe)
	}

	err = cv.Validate(&allocateReq{FundSource: "cdf"})
	if fe := ToFieldErrors(err); !containsFieldMsg(fe, "amount", "is required") {
		t.Fatalf("missing required amount message: %+v", fe)
	}

	err = cv.Validate(&queueReq{SortBy: "age"})
	if fe := ToFieldErrors(err); !containsFieldMsg(fe, "sort_by", "one of") {
		t.Fatalf("missing oneof message: %+v", fe)
	}

	// optional amount left out
	if err := cv.Validate(&disburseReq{}); err != nil {
		t.Fatalf("empty disburse body should pass, got %v", err)
	}
}

func TestToFieldErrors_NonValidation(t *testing.T) {
	err := errors.New("boom")
	fe := ToFieldErrors(err)
	if len(fe) != 1 {
		t.Fatalf("expected 1 field error, got %d", len(fe))
	}
	if fe[0].Field != "_" || fe[0].Message != "boom" {
		t.Fatalf("unexpected mapping: %+v", fe[0])
	}
}

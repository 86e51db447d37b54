package http

import (
	"testing"
)

type sampleReq struct {
	AccountID string `validate:"required,hex32"`
	Amount    int64  `validate:"required,gt=0"`
	Rate      int64  `validate:"gte=1,lte=100"`
}

func TestValidator_Hex32(t *testing.T) {
	cv := NewValidator()

	ok := sampleReq{AccountID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", Amount: 10, Rate: 10}
	if err := cv.Validate(&ok); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	bad := sampleReq{AccountID: "UPPERCASE-NOT-HEX", Amount: 10, Rate: 10}
	err := cv.Validate(&bad)
	if err == nil {
		t.Fatal("invalid account id accepted")
	}
	fes := ToFieldErrors(err)
	if !containsFieldMsg(fes, "AccountID", "32-char lowercase hex") {
		t.Fatalf("missing hex32 message in %+v", fes)
	}
}

func TestValidator_Ranges(t *testing.T) {
	cv := NewValidator()

	tooBig := sampleReq{AccountID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", Amount: 10, Rate: 101}
	err := cv.Validate(&tooBig)
	if err == nil {
		t.Fatal("rate above 100 accepted")
	}
	if fes := ToFieldErrors(err); !containsFieldMsg(fes, "Rate", "less than or equal to 100") {
		t.Fatalf("missing lte message in %+v", fes)
	}

	zero := sampleReq{AccountID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", Amount: 0, Rate: 10}
	if err := cv.Validate(&zero); err == nil {
		t.Fatal("zero amount accepted")
	}
}

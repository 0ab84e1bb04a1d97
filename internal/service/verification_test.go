package service

import "testing"

func TestNewVerificationCode_Range(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code, err := NewVerificationCode()
		if err != nil {
			t.Fatalf("generate code: %v", err)
		}
		if code < 100000 || code > 999999 {
			t.Fatalf("code out of range: %d", code)
		}
	}
}

func TestCheckVerificationCode(t *testing.T) {
	stored := 482913

	if !CheckVerificationCode(&stored, "482913") {
		t.Fatalf("expected matching code to validate")
	}
	if !CheckVerificationCode(&stored, " 482913 ") {
		t.Fatalf("expected whitespace around the code to be tolerated")
	}
	if CheckVerificationCode(&stored, "482914") {
		t.Fatalf("expected mismatching code to fail")
	}
	if CheckVerificationCode(&stored, "not-a-number") {
		t.Fatalf("expected non numeric input to fail")
	}
	if CheckVerificationCode(nil, "482913") {
		t.Fatalf("expected absent stored code to fail")
	}
}

package utils

import "testing"

func TestGenerateSecureOTPLength(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateSecureOTP()
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 digits, got %q", code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("non-digit in code %q", code)
			}
		}
	}
}

func TestValidMobile(t *testing.T) {
	valid := []string{"9876543210", "+919876543210", "919876543210", "6123456789"}
	for _, phone := range valid {
		if !ValidMobile(phone) {
			t.Errorf("expected %q to be valid", phone)
		}
	}

	invalid := []string{"", "12345", "5876543210", "98765432101", "+1415550100", "abcdefghij"}
	for _, phone := range invalid {
		if ValidMobile(phone) {
			t.Errorf("expected %q to be invalid", phone)
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"9876543210":    "+919876543210",
		"919876543210":  "+919876543210",
		"+919876543210": "+919876543210",
		// A 10-digit number starting with 91 keeps all its digits
		"9187654321": "+919187654321",
	}
	for in, want := range cases {
		if got := NormalizePhone(in); got != want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", in, got, want)
		}
	}
}

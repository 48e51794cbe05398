package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

// Indian mobile numbers: optional +91/91 prefix, then 10 digits starting 6-9
var indianMobileRe = regexp.MustCompile(`^(\+91|91)?[6-9][0-9]{9}$`)

// GenerateSecureOTP generates a cryptographically secure 6-digit OTP
func GenerateSecureOTP() (string, error) {
	// Generate a random number between 0 and 999999
	max := big.NewInt(999999)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate random number: %w", err)
	}

	// Add 1 to avoid 0 and format with leading zeros to ensure 6 digits
	otp := n.Int64() + 1
	return fmt.Sprintf("%06d", otp), nil
}

// ValidMobile reports whether phone looks like an Indian mobile number
func ValidMobile(phone string) bool {
	return indianMobileRe.MatchString(strings.TrimSpace(phone))
}

// NormalizePhone converts a valid mobile number to +91XXXXXXXXXX form
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	phone = strings.TrimPrefix(phone, "+")
	// A bare 10-digit number can itself start with 91, so only strip the
	// country code when digits remain beyond it.
	if len(phone) == 12 && strings.HasPrefix(phone, "91") {
		phone = phone[2:]
	}
	return "+91" + phone
}

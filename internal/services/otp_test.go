package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestOTPService() *OTPService {
	return NewOTPService(NewMemoryOTPStore(), nil, false)
}

func TestOTPRequestThenVerifySucceedsOnce(t *testing.T) {
	ctx := context.Background()
	svc := newTestOTPService()

	code, err := svc.RequestCode(ctx, "9876543210")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("expected 6-digit code, got %q", code)
	}

	if err := svc.VerifyCode(ctx, "9876543210", code); err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	// Codes are single-use
	if err := svc.VerifyCode(ctx, "9876543210", code); !errors.Is(err, ErrOTPNotFound) {
		t.Fatalf("expected ErrOTPNotFound, got %v", err)
	}
}

func TestOTPVerifyWithoutRequest(t *testing.T) {
	svc := newTestOTPService()
	if err := svc.VerifyCode(context.Background(), "9876543210", "123456"); !errors.Is(err, ErrOTPNotFound) {
		t.Fatalf("expected ErrOTPNotFound, got %v", err)
	}
}

func TestOTPMismatchKeepsPendingCode(t *testing.T) {
	ctx := context.Background()
	svc := newTestOTPService()

	code, err := svc.RequestCode(ctx, "9876543210")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if err := svc.VerifyCode(ctx, "9876543210", "000000"); !errors.Is(err, ErrOTPMismatch) {
		t.Fatalf("expected ErrOTPMismatch, got %v", err)
	}

	// Correct code still works after a failed attempt
	if err := svc.VerifyCode(ctx, "9876543210", code); err != nil {
		t.Fatalf("verify after mismatch failed: %v", err)
	}
}

func TestOTPExpiryConsumesRecord(t *testing.T) {
	ctx := context.Background()
	svc := newTestOTPService()

	base := time.Now()
	svc.now = func() time.Time { return base }

	code, err := svc.RequestCode(ctx, "9876543210")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	svc.now = func() time.Time { return base.Add(11 * time.Minute) }

	if err := svc.VerifyCode(ctx, "9876543210", code); !errors.Is(err, ErrOTPExpired) {
		t.Fatalf("expected ErrOTPExpired, got %v", err)
	}

	// The expiry check discards the record, correct code or not
	if err := svc.VerifyCode(ctx, "9876543210", code); !errors.Is(err, ErrOTPNotFound) {
		t.Fatalf("expected ErrOTPNotFound after expiry, got %v", err)
	}
}

func TestOTPNewRequestReplacesPrior(t *testing.T) {
	ctx := context.Background()
	svc := NewOTPService(NewMemoryOTPStore(), nil, true)

	first, err := svc.RequestCode(ctx, "9876543210")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	second, err := svc.RequestCode(ctx, "9876543210")
	if err != nil {
		t.Fatalf("second request failed: %v", err)
	}

	if first != second {
		if err := svc.VerifyCode(ctx, "9876543210", first); !errors.Is(err, ErrOTPMismatch) {
			t.Fatalf("expected stale code to mismatch, got %v", err)
		}
	}
	if err := svc.VerifyCode(ctx, "9876543210", second); err != nil {
		t.Fatalf("verify of replacement failed: %v", err)
	}
}

func TestOTPRejectsInvalidPhone(t *testing.T) {
	svc := newTestOTPService()
	if _, err := svc.RequestCode(context.Background(), "12345"); !errors.Is(err, ErrInvalidPhone) {
		t.Fatalf("expected ErrInvalidPhone, got %v", err)
	}
}

func TestOTPDemoCodeOutsideProduction(t *testing.T) {
	svc := newTestOTPService()
	code, err := svc.RequestCode(context.Background(), "9876543210")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if code != demoOTP {
		t.Fatalf("expected fixed demo code, got %q", code)
	}
}

func TestOTPSweepExpired(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryOTPStore()
	base := time.Now()
	store.now = func() time.Time { return base.Add(time.Hour) }

	svc := NewOTPService(store, nil, false)
	svc.now = func() time.Time { return base }

	if _, err := svc.RequestCode(ctx, "9876543210"); err != nil {
		t.Fatalf("request failed: %v", err)
	}

	removed, err := svc.SweepExpired(ctx)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 swept record, got %d", removed)
	}
}

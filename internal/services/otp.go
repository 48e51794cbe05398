package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/directhome/directhome-backend/internal/utils"
)

// OTP verification failures, surfaced to the caller as client errors
var (
	ErrInvalidPhone = errors.New("valid Indian phone number required")
	ErrOTPNotFound  = errors.New("OTP not found or expired")
	ErrOTPExpired   = errors.New("OTP expired")
	ErrOTPMismatch  = errors.New("invalid OTP")
)

const (
	otpTTL = 10 * time.Minute

	// Fixed code outside production so demo flows stay reproducible
	demoOTP = "123456"
)

// OTPRecord is a pending one-time code. One live record per phone; a new
// request overwrites the prior one. Never persisted beyond process lifetime.
type OTPRecord struct {
	Code      string
	ExpiresAt time.Time
}

// OTPStore keeps pending codes keyed by phone number. Implementations must
// treat each phone's record as an atomically replaceable unit.
type OTPStore interface {
	Put(ctx context.Context, phone string, rec OTPRecord) error
	Get(ctx context.Context, phone string) (OTPRecord, bool, error)
	Delete(ctx context.Context, phone string) error
	// DeleteExpired sweeps stale records and reports how many were removed
	DeleteExpired(ctx context.Context) (int, error)
}

// MemoryOTPStore is the default in-process OTP store
type MemoryOTPStore struct {
	mu      sync.Mutex
	records map[string]OTPRecord
	now     func() time.Time
}

// NewMemoryOTPStore creates an empty in-memory OTP store
func NewMemoryOTPStore() *MemoryOTPStore {
	return &MemoryOTPStore{
		records: make(map[string]OTPRecord),
		now:     time.Now,
	}
}

func (s *MemoryOTPStore) Put(ctx context.Context, phone string, rec OTPRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[phone] = rec
	return nil
}

func (s *MemoryOTPStore) Get(ctx context.Context, phone string) (OTPRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[phone]
	return rec, ok, nil
}

func (s *MemoryOTPStore) Delete(ctx context.Context, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, phone)
	return nil
}

func (s *MemoryOTPStore) DeleteExpired(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for phone, rec := range s.records {
		if now.After(rec.ExpiresAt) {
			delete(s.records, phone)
			removed++
		}
	}
	return removed, nil
}

// OTPService issues and verifies one-time codes. It owns the store and is
// constructed once at startup.
type OTPService struct {
	store      OTPStore
	sms        *SMSService // nil when SMS delivery is not configured
	production bool
	now        func() time.Time
}

// NewOTPService creates the authenticator around the given store
func NewOTPService(store OTPStore, sms *SMSService, production bool) *OTPService {
	return &OTPService{
		store:      store,
		sms:        sms,
		production: production,
		now:        time.Now,
	}
}

// RequestCode validates the phone, stores a fresh code replacing any prior
// pending one, and returns it. In production the code is delivered via SMS
// and the HTTP layer must not echo it back.
func (s *OTPService) RequestCode(ctx context.Context, phone string) (string, error) {
	if !utils.ValidMobile(phone) {
		return "", ErrInvalidPhone
	}
	phone = utils.NormalizePhone(phone)

	code := demoOTP
	if s.production {
		var err error
		code, err = utils.GenerateSecureOTP()
		if err != nil {
			return "", err
		}
	}

	rec := OTPRecord{Code: code, ExpiresAt: s.now().Add(otpTTL)}
	if err := s.store.Put(ctx, phone, rec); err != nil {
		return "", err
	}

	if s.production {
		if s.sms != nil {
			if err := s.sms.SendOTP(phone, code); err != nil {
				return "", err
			}
		}
	} else {
		log.Printf("OTP for %s: %s", phone, code)
	}

	return code, nil
}

// VerifyCode checks a submitted code. Codes are single-use: success removes
// the record, as does an expiry hit. A mismatch keeps the record so the
// caller can retry until expiry.
func (s *OTPService) VerifyCode(ctx context.Context, phone, code string) error {
	if !utils.ValidMobile(phone) {
		return ErrInvalidPhone
	}
	phone = utils.NormalizePhone(phone)

	rec, ok, err := s.store.Get(ctx, phone)
	if err != nil {
		return err
	}
	if !ok {
		return ErrOTPNotFound
	}

	if s.now().After(rec.ExpiresAt) {
		_ = s.store.Delete(ctx, phone)
		return ErrOTPExpired
	}

	if rec.Code != code {
		return ErrOTPMismatch
	}

	if err := s.store.Delete(ctx, phone); err != nil {
		return err
	}
	return nil
}

// SweepExpired removes stale records; called by the cleanup job
func (s *OTPService) SweepExpired(ctx context.Context) (int, error) {
	return s.store.DeleteExpired(ctx)
}

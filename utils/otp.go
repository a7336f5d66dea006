package utils

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"
)

const (
	otpMaxAttempts   = 3
	otpAttemptWindow = 15 * time.Minute
)

// ErrOTPAttemptsExceeded marks a booking that burned its failed-code budget
// inside the attempt window.
var ErrOTPAttemptsExceeded = errors.New("too many OTP attempts")

// GenerateBookingOTP returns a secure random 6-digit confirmation code.
func GenerateBookingOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// RegisterOTPAttempt counts a failed OTP entry against the booking. Returns
// ErrOTPAttemptsExceeded once the booking has burned 3 attempts inside a
// 15-minute window.
func RegisterOTPAttempt(ctx context.Context, bookingID string) error {
	client := GetOTPCacheClient()
	key := fmt.Sprintf("otp_attempts:%s", bookingID)

	count, err := client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to count OTP attempt: %w", err)
	}
	if count == 1 {
		if err := client.Expire(ctx, key, otpAttemptWindow).Err(); err != nil {
			GetLogger().Error("Failed to set OTP attempt window", zap.Error(err))
		}
	}
	if count > otpMaxAttempts {
		return fmt.Errorf("booking %s: %w", bookingID, ErrOTPAttemptsExceeded)
	}
	return nil
}

// OTPAttemptsExceeded reports whether the booking is currently locked out.
func OTPAttemptsExceeded(ctx context.Context, bookingID string) (bool, error) {
	client := GetOTPCacheClient()
	key := fmt.Sprintf("otp_attempts:%s", bookingID)

	count, err := client.Get(ctx, key).Int64()
	if err != nil {
		// Missing key means no failed attempts yet.
		return false, nil
	}
	return count >= otpMaxAttempts, nil
}

// ClearOTPAttempts resets the attempt counter after a successful confirmation.
func ClearOTPAttempts(ctx context.Context, bookingID string) {
	client := GetOTPCacheClient()
	key := fmt.Sprintf("otp_attempts:%s", bookingID)
	if err := client.Del(ctx, key).Err(); err != nil {
		GetLogger().Error("Failed to clear OTP attempts", zap.Error(err))
	}
}

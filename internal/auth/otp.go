package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// OTPLength is the number of digits in a one-time code.
const OTPLength = 6

// DefaultOTPTTL is the validity window for freshly issued one-time codes.
const DefaultOTPTTL = 10 * time.Minute

var otpSpace = big.NewInt(1_000_000)

// GenerateOTP returns a 6-digit numeric code drawn uniformly from
// 000000-999999 using the crypto/rand source.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, otpSpace)
	if err != nil {
		return "", fmt.Errorf("otp: generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

package utils

import (
	"crypto/rand"
	"fmt"
	"strings"
)

// voucherAlphabet leaves out 0/O, 1/I and similar lookalikes so codes survive
// being read over the phone.
const voucherAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const (
	voucherGroupSize  = 4
	voucherGroupCount = 4
)

// GenerateVoucherCode returns a random code like "K3QP-7XWM-2NRV-9TGH".
func GenerateVoucherCode() (string, error) {
	raw := make([]byte, voucherGroupSize*voucherGroupCount)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	var sb strings.Builder
	for i, b := range raw {
		if i > 0 && i%voucherGroupSize == 0 {
			sb.WriteByte('-')
		}
		sb.WriteByte(voucherAlphabet[int(b)%len(voucherAlphabet)])
	}

	return sb.String(), nil
}

// FormatVoucherCode normalizes a hand-entered code to the canonical
// dash-grouped uppercase form. Returns "" for input with no usable characters.
func FormatVoucherCode(code string) string {
	cleaned := make([]byte, 0, len(code))
	for _, c := range strings.ToUpper(code) {
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			cleaned = append(cleaned, byte(c))
		}
	}
	if len(cleaned) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, c := range cleaned {
		if i > 0 && i%voucherGroupSize == 0 {
			sb.WriteByte('-')
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

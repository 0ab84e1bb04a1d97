package service

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
)

const (
	verificationCodeMin = 100000
	verificationCodeMax = 999999
)

// NewVerificationCode genera un código de 6 dígitos uniforme en [100000, 999999].
func NewVerificationCode() (int, error) {
	span := int64(verificationCodeMax - verificationCodeMin + 1)
	n, err := rand.Int(rand.Reader, big.NewInt(span))
	if err != nil {
		return 0, err
	}
	return verificationCodeMin + int(n.Int64()), nil
}

// CheckVerificationCode compara el código almacenado contra el valor recibido.
// El valor se coerciona a entero; un código ausente nunca valida.
func CheckVerificationCode(stored *int, submitted string) bool {
	if stored == nil {
		return false
	}
	code, err := strconv.Atoi(strings.TrimSpace(submitted))
	if err != nil {
		return false
	}
	return code == *stored
}

package domain

import "strings"

const cpfLength = 11

// CPF is a checksum-validated Brazilian individual taxpayer id, stored as digits only.
type CPF struct {
	value string
}

// NewCPF validates raw (formatted like 529.982.247-25 or bare digits) and returns
// the canonical digits-only value.
func NewCPF(raw string) (CPF, error) {
	digits := stripNonDigits(raw)
	if !validCPFDigits(digits) {
		return CPF{}, validationErrorf("%s is not a valid cpf", raw)
	}
	return CPF{value: digits}, nil
}

// Value returns the 11 digits.
func (c CPF) Value() string {
	return c.value
}

func (c CPF) IsZero() bool {
	return c.value == ""
}

func stripNonDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func validCPFDigits(digits string) bool {
	if len(digits) != cpfLength {
		return false
	}
	if digits == "12345678909" || strings.Count(digits, digits[:1]) == cpfLength {
		return false
	}

	nums := make([]int, cpfLength)
	for i, r := range digits {
		nums[i] = int(r - '0')
	}
	return cpfVerifier(nums[:9]) == nums[9] && cpfVerifier(nums[:10]) == nums[10]
}

// cpfVerifier computes the mod-11 check digit over digits weighted len+1 down to 2.
func cpfVerifier(digits []int) int {
	weight := len(digits) + 1
	sum := 0
	for i, d := range digits {
		sum += d * (weight - i)
	}
	mod := sum % 11
	if mod < 2 {
		return 0
	}
	return 11 - mod
}

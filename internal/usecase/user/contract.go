package user

import (
	"fmt"
	"strings"
)

// Contract describes the constraints a username and age must satisfy.
// A zero max means the value is unbounded above.
type Contract struct {
	Name           string
	UsernameMinLen int
	UsernameMaxLen int
	AgeMin         int
	AgeMax         int
}

// Lenient accepts any non-empty username and any positive age.
var Lenient = Contract{
	Name:           "lenient",
	UsernameMinLen: 1,
	AgeMin:         1,
}

// Strict bounds usernames to 1..20 characters and ages to 18..120.
var Strict = Contract{
	Name:           "strict",
	UsernameMinLen: 1,
	UsernameMaxLen: 20,
	AgeMin:         18,
	AgeMax:         120,
}

// ContractByName resolves a configured validation mode.
func ContractByName(name string) (Contract, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", Lenient.Name:
		return Lenient, nil
	case Strict.Name:
		return Strict, nil
	default:
		return Contract{}, fmt.Errorf("unknown validation mode %q", name)
	}
}

// usernameTag builds the validator tag for usernames.
// min/max on strings count runes.
func (c Contract) usernameTag() string {
	tag := fmt.Sprintf("required,min=%d", c.UsernameMinLen)
	if c.UsernameMaxLen > 0 {
		tag += fmt.Sprintf(",max=%d", c.UsernameMaxLen)
	}
	return tag
}

// ageTag builds the validator tag for ages.
func (c Contract) ageTag() string {
	tag := fmt.Sprintf("gte=%d", c.AgeMin)
	if c.AgeMax > 0 {
		tag += fmt.Sprintf(",lte=%d", c.AgeMax)
	}
	return tag
}

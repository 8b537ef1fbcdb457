package phone

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is used for numbers typed without a country code.
const DefaultRegion = "BR"

var ErrInvalidPhone = errors.New("telefone inválido")

// NormalizeE164 parses a free-form phone and returns it as +5585999991234.
func NormalizeE164(raw, region string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidPhone
	}
	if region == "" {
		region = DefaultRegion
	}

	parsed, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPhone, err)
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return "", ErrInvalidPhone
	}
	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}

// WhatsAppID is the E.164 number without the leading plus, the form the
// WhatsApp Cloud API expects in "to".
func WhatsAppID(raw, region string) (string, error) {
	e164, err := NormalizeE164(raw, region)
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(e164, "+"), nil
}

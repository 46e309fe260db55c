package normalize

import (
	"net/mail"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// NormalizeEmail validates an email address against RFC 5322 syntax,
// retrying once with all whitespace stripped. It returns the cleaned
// address and a validity flag; invalid input is passed through so the
// caller can still display it.
func NormalizeEmail(raw string) (email string, valid bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", false
	}
	if addr, err := mail.ParseAddress(text); err == nil {
		return addr.Address, true
	}
	stripped := strings.Join(strings.Fields(text), "")
	if addr, err := mail.ParseAddress(stripped); err == nil {
		return addr.Address, true
	}
	return text, false
}

// NormalizePhone parses a phone number against the caller-supplied
// default region ("FR", "US", ...), returning the E.164 canonical form
// plus best-effort region and carrier metadata when the number is
// valid. Invalid numbers keep their raw form with valid=false; parsing
// never returns an error to the caller.
func NormalizePhone(raw, defaultRegion string) (e164, region, carrier string, valid bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", "", "", false
	}
	if defaultRegion == "" {
		defaultRegion = "US"
	}
	num, err := phonenumbers.Parse(text, strings.ToUpper(defaultRegion))
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return "", "", "", false
	}
	e164 = phonenumbers.Format(num, phonenumbers.E164)
	region = phonenumbers.GetRegionCodeForNumber(num)
	if c, err := phonenumbers.GetCarrierForNumber(num, "en"); err == nil {
		carrier = c
	}
	return e164, region, carrier, true
}

package phone

import (
	"errors"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

var (
	ErrUnparsable = errors.New("phone number format is invalid")
	ErrInvalid    = errors.New("invalid phone number")
)

// NormalizeE164 joins a calling code (e.g. "+40") with a national number,
// validates the result against international numbering plans and returns the
// canonical E.164 form. The region is derived from the calling code alone.
func NormalizeE164(callingCode, number string) (string, error) {
	full := strings.TrimSpace(callingCode) + strings.TrimSpace(number)

	parsed, err := phonenumbers.Parse(full, "")
	if err != nil {
		return "", ErrUnparsable
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return "", ErrInvalid
	}
	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}

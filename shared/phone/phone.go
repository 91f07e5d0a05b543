package phone

import (
	"errors"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is tried when no region is configured.
const DefaultRegion = "IN"

var ErrInvalidPhone = errors.New("invalid phone number")

// Normalize returns phone in E.164 form. Each region is tried in order until one yields a
// valid number; numbers with a leading + are parsed on their own country code.
func Normalize(phone string, regions []string) (string, error) {
	phone = strings.TrimSpace(phone)

	if phone == "" {
		return "", ErrInvalidPhone
	}

	if len(regions) == 0 {
		regions = []string{DefaultRegion}
	}

	for _, region := range regions {
		parsedNumber, err := phonenumbers.Parse(phone, strings.ToUpper(strings.TrimSpace(region)))
		if err == nil && phonenumbers.IsValidNumber(parsedNumber) {
			return phonenumbers.Format(parsedNumber, phonenumbers.E164), nil
		}
	}

	return "", ErrInvalidPhone
}

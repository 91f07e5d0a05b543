package dto

import (
	"hotelpms/shared/constant"
	"hotelpms/shared/failure"
	"hotelpms/shared/timezone"
	"net/http"
	"time"
)

// DateRange is an inclusive range of calendar days in the application timezone.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// FromRequest reads the from and to query parameters (YYYY-MM-DD). Missing bounds default to today.
func (d *DateRange) FromRequest(r *http.Request) error {
	query := r.URL.Query()

	return d.Parse(query.Get(constant.RequestParamFrom), query.Get(constant.RequestParamTo))
}

func (d *DateRange) Parse(from, to string) error {
	today := timezone.Today()

	d.From = today
	d.To = today

	if from != "" {
		parsed, err := timezone.ParseDate(from)
		if err != nil {
			return failure.BadRequestFromString("from must be a date in YYYY-MM-DD format")
		}

		d.From = parsed
	}

	if to != "" {
		parsed, err := timezone.ParseDate(to)
		if err != nil {
			return failure.BadRequestFromString("to must be a date in YYYY-MM-DD format")
		}

		d.To = parsed
	}

	if from != "" && to == "" {
		d.To = d.From
	}

	if d.From.After(d.To) {
		return failure.BadRequestFromString("from must not be after to")
	}

	return nil
}

// EndExclusive returns the first instant after the range.
func (d DateRange) EndExclusive() time.Time {
	return d.To.AddDate(0, 0, 1)
}

func (d DateRange) String() string {
	return d.From.Format(constant.DateOnlyFormat) + "_" + d.To.Format(constant.DateOnlyFormat)
}

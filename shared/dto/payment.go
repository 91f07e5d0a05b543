package dto

import "hotelpms/shared/policy"

// PaymentRequest collects money against a bill.
type PaymentRequest struct {
	Amount      float64            `json:"amount"       validate:"gt=0"`
	PaymentMode policy.PaymentMode `json:"payment_mode" validate:"required"`
	Note        string             `json:"note"         validate:"omitempty,max=500"`
}

package validator_test

import (
	"hotelpms/shared/failure"
	"hotelpms/shared/validator"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type guestRequest struct {
	Name      string   `json:"name"        validate:"required,max=100"`
	Email     string   `json:"email"       validate:"omitempty,email"`
	Adults    int      `json:"adults"      validate:"gte=1,lte=10"`
	Checkin   string   `json:"checkin_date" validate:"required,date"`
	RoomIDs   []string `json:"room_ids"    validate:"required,min=1,dive,required"`
	IDProof   string   `json:"id_proof"    validate:"omitempty,mimetypes=image/png image/jpeg,maxfilesize=1"`
	MealPlan  string   `json:"meal_plan"   validate:"omitempty,oneof=EP CP MAP AP"`
	Reference string   `json:"-"`
}

func validGuest() guestRequest {
	return guestRequest{
		Name:    "Asha Verma",
		Email:   "asha@example.com",
		Adults:  2,
		Checkin: "2024-08-14",
		RoomIDs: []string{"room-101"},
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *guestRequest)
		wantErr string
	}{
		{name: "valid", mutate: func(_ *guestRequest) {}},
		{name: "missing name", mutate: func(req *guestRequest) { req.Name = "" }, wantErr: "name is required"},
		{name: "bad email", mutate: func(req *guestRequest) { req.Email = "asha" }, wantErr: "email must be a valid email address"},
		{name: "no adults", mutate: func(req *guestRequest) { req.Adults = 0 }, wantErr: "adults must be greater than or equal to 1"},
		{name: "bad date", mutate: func(req *guestRequest) { req.Checkin = "14/08/2024" }, wantErr: "checkin_date must be a date in YYYY-MM-DD format"},
		{name: "blank room slot", mutate: func(req *guestRequest) { req.RoomIDs = []string{"room-101", ""} }, wantErr: "room_ids[1] is required"},
		{name: "bad meal plan", mutate: func(req *guestRequest) { req.MealPlan = "BB" }, wantErr: "meal_plan must be one of EP CP MAP AP"},
		{name: "bad id proof type", mutate: func(req *guestRequest) { req.IDProof = "data:text/plain;base64,aGVsbG8=" }, wantErr: "id_proof must be one of image/png image/jpeg"},
		{name: "id proof too large", mutate: func(req *guestRequest) {
			req.IDProof = "data:image/png;base64," + strings.Repeat("A", 2<<20)
		}, wantErr: "id_proof must not be larger than 1 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validGuest()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)

			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			assert.EqualError(t, err, tt.wantErr)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("2024-02-29", "date"))
	assert.Error(t, validator.ValidateVar("2023-02-29", "date"))
	assert.NoError(t, validator.ValidateVar(3, "gte=1"))
	assert.Error(t, validator.ValidateVar("", "required"))
}

func TestValidateVar_HotelTags(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		tag     string
		wantErr string
	}{
		{name: "staff role", value: "frontdesk", tag: "role"},
		{name: "unknown role", value: "owner", tag: "role", wantErr: "must be one of admin manager frontdesk cashier"},
		{name: "indian mobile", value: "98765 43210", tag: "phone"},
		{name: "international number", value: "+44 20 7946 0958", tag: "phone"},
		{name: "not a phone", value: "12", tag: "phone", wantErr: "must be a valid phone number"},
		{name: "blank", value: "   ", tag: "notblank", wantErr: "must not be blank"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.value, tt.tag)

			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid body", body: `{"name":"Asha","adults":1,"checkin_date":"2024-08-14","room_ids":["r1"]}`},
		{name: "fails validation", body: `{"name":"Asha","adults":1,"checkin_date":"2024-08-14","room_ids":[]}`, wantErr: true},
		{name: "malformed json", body: `{"name":`, wantErr: true},
		{name: "empty object", body: `{}`, wantErr: true},
		{name: "empty body", body: ``, wantErr: true},
		{name: "unknown field", body: `{"name":"Asha","adults":1,"checkin_date":"2024-08-14","room_ids":["r1"],"check_in":"x"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := guestRequest{}
			err := validator.Validate(strings.NewReader(tt.body), &req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

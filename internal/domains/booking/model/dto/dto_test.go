package dto_test

import (
	"hotelpms/internal/domains/booking/model/dto"
	"hotelpms/shared/failure"
	"hotelpms/shared/validator"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingRequest_RoomIDs(t *testing.T) {
	tests := []struct {
		name    string
		roomIDs []string
		wantErr string
	}{
		{name: "valid", roomIDs: []string{"2f1c1c8e-6d0a-4a7e-9a43-3f6f7f0c2b11", "8b0c6d7e-1a2b-4c3d-8e9f-0a1b2c3d4e5f"}},
		{name: "missing", roomIDs: nil, wantErr: "room_ids is required"},
		{name: "room number instead of id", roomIDs: []string{"2f1c1c8e-6d0a-4a7e-9a43-3f6f7f0c2b11", "101"}, wantErr: "room_ids[1] must be a valid id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := dto.BookingRequest{
				CheckinDate:  "2024-08-14",
				CheckoutDate: "2024-08-16",
				RoomIDs:      tt.roomIDs,
				Adults:       2,
			}

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

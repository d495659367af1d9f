package validator

import (
	"errors"
	"testing"
	"time"

	"hotelbook/pkg/logger"
	"hotelbook/pkg/model"
)

func TestValidate(t *testing.T) {
	v := NewBookingValidator(logger.Discard())
	in := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		req     model.BookingRequest
		wantErr bool
		field   string
	}{
		{
			name: "valid multi room",
			req:  model.BookingRequest{RoomIDs: []int64{1, 2, 3}, CheckIn: in, CheckOut: in.Add(48 * time.Hour), UserID: 2},
		},
		{
			name: "past dates are accepted",
			req:  model.BookingRequest{RoomIDs: []int64{1}, CheckIn: in.AddDate(-5, 0, 0), CheckOut: in.AddDate(-5, 0, 1), UserID: 2},
		},
		{
			name:    "no rooms",
			req:     model.BookingRequest{CheckIn: in, CheckOut: in.Add(time.Hour), UserID: 2},
			wantErr: true,
			field:   "RoomIDs",
		},
		{
			name:    "non-positive room id",
			req:     model.BookingRequest{RoomIDs: []int64{1, 0}, CheckIn: in, CheckOut: in.Add(time.Hour), UserID: 2},
			wantErr: true,
		},
		{
			name:    "check-out equal to check-in",
			req:     model.BookingRequest{RoomIDs: []int64{1}, CheckIn: in, CheckOut: in, UserID: 2},
			wantErr: true,
			field:   "CheckOut",
		},
		{
			name:    "check-out before check-in",
			req:     model.BookingRequest{RoomIDs: []int64{1}, CheckIn: in, CheckOut: in.Add(-time.Hour), UserID: 2},
			wantErr: true,
			field:   "CheckOut",
		},
		{
			name:    "missing user",
			req:     model.BookingRequest{RoomIDs: []int64{1}, CheckIn: in, CheckOut: in.Add(time.Hour)},
			wantErr: true,
			field:   "UserID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %T", err)
			}
			if tt.field == "" {
				return
			}
			for _, e := range verrs {
				if e.Field == tt.field {
					return
				}
			}
			t.Errorf("expected an error on field %s, got %v", tt.field, verrs)
		})
	}
}

func TestValidationErrors_Messages(t *testing.T) {
	errs := ValidationErrors{{Field: "CheckOut", Message: "Check-out time must be after check-in time"}}

	lines := errs.Messages()
	if len(lines) != 1 || lines[0] != "  Check-out time must be after check-in time" {
		t.Errorf("unexpected lines %v", lines)
	}
	if errs.Error() == "" {
		t.Error("Error() should not be empty")
	}
}

package validator_test

import (
	"net/http"
	"strings"
	"testing"

	"tourdesk/shared/failure"
	"tourdesk/shared/validator"

	"github.com/stretchr/testify/assert"
)

type stayRequest struct {
	Guest    string `json:"guest_name" validate:"required"`
	Email    string `json:"email"      validate:"omitempty,email"`
	Adults   int    `json:"adults"     validate:"gte=1,lte=20"`
	Type     string `json:"type"       validate:"oneof=quotation invoice"`
	CheckIn  string `json:"check_in"   validate:"required,day"`
	CheckOut string `json:"check_out"  validate:"required,day,dayfrom=CheckIn"`
}

type logoRequest struct {
	Logo string `json:"logo" validate:"omitempty,mimetypes=image/png image/jpeg,maxfilesize=1"`
}

func validStay() stayRequest {
	return stayRequest{
		Guest:    "Jane Mwangi",
		Adults:   2,
		Type:     "quotation",
		CheckIn:  "2024-07-01",
		CheckOut: "2024-07-04",
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *stayRequest)
		wantMsg string
	}{
		{name: "valid", mutate: func(_ *stayRequest) {}},
		{name: "missing guest", mutate: func(r *stayRequest) { r.Guest = "" }, wantMsg: "guest_name is required"},
		{name: "bad email", mutate: func(r *stayRequest) { r.Email = "nope" }, wantMsg: "email must be a valid email address"},
		{name: "zero adults", mutate: func(r *stayRequest) { r.Adults = 0 }, wantMsg: "adults must be greater than or equal to 1"},
		{name: "unknown type", mutate: func(r *stayRequest) { r.Type = "memo" }, wantMsg: "type must be one of quotation invoice"},
		{name: "bad date", mutate: func(r *stayRequest) { r.CheckIn = "01/07/2024" }, wantMsg: "check_in must be a date in YYYY-MM-DD format"},
		{name: "check out before check in", mutate: func(r *stayRequest) { r.CheckOut = "2024-06-30" }, wantMsg: "check_out must not be before CheckIn"},
		{name: "same day stay", mutate: func(r *stayRequest) { r.CheckOut = r.CheckIn }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validStay()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)

			if tt.wantMsg == "" {
				assert.NoError(t, err)

				return
			}

			assert.EqualError(t, err, tt.wantMsg)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidate_DecodesBody(t *testing.T) {
	var req stayRequest

	body := `{"guest_name":"Ali","adults":1,"type":"invoice","check_in":"2024-01-01","check_out":"2024-01-02"}`
	assert.NoError(t, validator.Validate(strings.NewReader(body), &req))
	assert.Equal(t, "Ali", req.Guest)

	err := validator.Validate(strings.NewReader("{"), &req)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestMimetypesAndSize(t *testing.T) {
	tests := []struct {
		name    string
		logo    string
		wantErr bool
	}{
		{name: "empty is allowed", logo: ""},
		{name: "png", logo: "data:image/png;base64,iVBORw0KGgo="},
		{name: "gif rejected", logo: "data:image/gif;base64,R0lGODlh", wantErr: true},
		{name: "not a data uri", logo: "https://example.com/logo.png", wantErr: true},
		{name: "too large", logo: "data:image/png;base64," + strings.Repeat("A", 2<<20), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := logoRequest{Logo: tt.logo}

			err := validator.ValidateStruct(&req)

			assert.Equal(t, tt.wantErr, err != nil)
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("2024-02-29", "day"))
	assert.Error(t, validator.ValidateVar("2023-02-29", "day"))
	assert.Error(t, validator.ValidateVar("#12", "hexcolor"))
	assert.NoError(t, validator.ValidateVar("#1a73e8", "hexcolor"))
}

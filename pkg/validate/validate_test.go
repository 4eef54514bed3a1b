package validate_test

import (
	"testing"

	"github.com/Astemirdum/library-console/pkg/validate"
	"github.com/stretchr/testify/require"
)

func TestCustomValidator_Validate(t *testing.T) {
	type req struct {
		Title  string `json:"title" validate:"required"`
		Email  string `json:"borrower_email" validate:"omitempty,email"`
		Copies *int   `json:"total_copies" validate:"omitempty,gte=0"`
	}
	neg := -1
	tests := []struct {
		name    string
		in      req
		wantErr string
	}{
		{name: "ok", in: req{Title: "Dune"}},
		{name: "ok. email", in: req{Title: "Dune", Email: "a@b.io"}},
		{name: "err. required", in: req{}, wantErr: "title is required"},
		{name: "err. email", in: req{Title: "Dune", Email: "nope"}, wantErr: "borrower_email must be a valid email"},
		{name: "err. many", in: req{Email: "nope", Copies: &neg}, wantErr: "title is required; borrower_email must be a valid email; total_copies must be at least 0"},
	}
	v := validate.NewCustomValidator()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.in)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.EqualError(t, err, tt.wantErr)
		})
	}
}

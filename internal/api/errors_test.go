package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/repository"
	"alcyxob/gym-management/internal/service"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{service.ErrAuthenticationFailed, http.StatusUnauthorized},
		{domain.NewError(domain.ErrInvalidArgument, "bad"), http.StatusBadRequest},
		{repository.DuplicateError("username", "john_doe"), http.StatusBadRequest},
		{service.ErrNotATrainer, http.StatusBadRequest},
		{fmt.Errorf("%w: MEM-000001", service.ErrMemberNotFound), http.StatusNotFound},
		{repository.ErrNotFound, http.StatusNotFound},
		{service.ErrTrainerAtCapacity, http.StatusConflict},
		{service.ErrAttendanceRecorded, http.StatusConflict},
		{service.ErrTokenGeneration, http.StatusInternalServerError},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			assert.Equal(t, tc.want, statusFor(tc.err))
		})
	}
}

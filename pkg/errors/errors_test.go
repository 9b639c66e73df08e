package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"tgorders/domain/goods"
	"tgorders/domain/order"
	"tgorders/domain/shared"
	"tgorders/domain/user"

	"github.com/stretchr/testify/assert"
)

func TestFromDomainError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   ErrorCode
		status int
	}{
		{"not found", goods.NewGoodsNotExistsError("g-1"), CodeNotFound, http.StatusNotFound},
		{"conflict", user.NewUserAlreadyExistsError(7), CodeConflict, http.StatusConflict},
		{"invalid input", goods.NewCantSetFolderSKUError("g-1"), CodeValidation, http.StatusBadRequest},
		{"state", order.NewOrderAlreadyConfirmedError("o-1"), CodeInvalidState, http.StatusUnprocessableEntity},
		{"access denied", shared.NewAccessDeniedError("goods", "add goods"), CodeAccessDenied, http.StatusForbidden},
		{"wrapped", fmt.Errorf("load: %w", shared.NewNotFoundError("market")), CodeNotFound, http.StatusNotFound},
		{"unknown", errors.New("connection reset"), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := FromDomainError(tt.err)
			assert.Equal(t, tt.code, appErr.Code)
			assert.Equal(t, tt.status, appErr.HTTPStatusCode())
			assert.ErrorIs(t, appErr, tt.err)
		})
	}
}

func TestFromDomainError_HidesInternalMessage(t *testing.T) {
	appErr := FromDomainError(errors.New("dial tcp 10.0.0.1:3306: refused"))
	assert.Equal(t, "internal server error", appErr.Message)
}

func TestFromDomainError_Field(t *testing.T) {
	appErr := FromDomainError(shared.NewValidationError("goods", "name", "name is required"))
	assert.Equal(t, "name", appErr.Field)
	assert.Equal(t, "name is required", appErr.Message)

	assert.Nil(t, FromDomainError(nil))
	assert.True(t, Is(FromDomainError(order.NewEmptyOrderLinesError()), CodeValidation))
}

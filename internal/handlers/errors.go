package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kennndev/mindflow/internal/scheduling"
	"github.com/kennndev/mindflow/internal/utils"
)

// respondSchedulingError maps scheduling domain errors onto HTTP responses.
// Unknown errors become a 500 with the given fallback message.
func respondSchedulingError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, scheduling.ErrSessionNotFound),
		errors.Is(err, scheduling.ErrDoctorNotFound),
		errors.Is(err, scheduling.ErrPatientProfileMissing):
		utils.NotFound(c, err.Error())
	case errors.Is(err, scheduling.ErrNotOwner),
		errors.Is(err, scheduling.ErrDoctorNotApproved):
		utils.Forbidden(c, err.Error())
	case errors.Is(err, scheduling.ErrSlotUnavailable),
		errors.Is(err, scheduling.ErrSlotLockBusy):
		utils.Error(c, http.StatusConflict, "This time slot is no longer available", err.Error())
	case errors.Is(err, scheduling.ErrInvalidTransition),
		errors.Is(err, scheduling.ErrIdentifierUnavailable):
		utils.BadRequest(c, err.Error())
	default:
		utils.InternalServerError(c, fallback, err)
	}
}

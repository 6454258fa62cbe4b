package handler

import (
	"errors"
	"net/http"

	"github.com/Krimson/growth-monitory/internal/growth"
	"github.com/Krimson/growth-monitory/internal/journal"
	"github.com/Krimson/growth-monitory/internal/kpsp"
	"github.com/Krimson/growth-monitory/internal/service"
)

var badRequest = []error{
	growth.ErrInputMissing,
	growth.ErrInputOutOfBounds,
	growth.ErrInvalidSex,
	growth.ErrUnsupportedIndexKind,
	kpsp.ErrAgeBandNotFound,
	kpsp.ErrAnswerCountMismatch,
	service.ErrAgeRequired,
	service.ErrInvalidDate,
	journal.ErrChildIDRequired,
}

// statusFor maps a service error to an HTTP status and client message.
func statusFor(err error) (int, string) {
	for _, target := range badRequest {
		if errors.Is(err, target) {
			return http.StatusBadRequest, err.Error()
		}
	}

	switch {
	case errors.Is(err, journal.ErrAssessmentNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, journal.ErrAlreadyDecided):
		return http.StatusConflict, err.Error()
	case errors.Is(err, service.ErrJournalDisabled):
		return http.StatusServiceUnavailable, err.Error()
	case errors.Is(err, growth.ErrIndexNotComputable):
		return http.StatusInternalServerError, "could not calculate z-score: " + err.Error()
	}
	return http.StatusInternalServerError, err.Error()
}

package httperr

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// BusinessError carries a machine-readable code raised at the point a
// domain rule is violated. Handlers translate codes to HTTP statuses.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

var messages = map[string]string{
	"barber_not_found":      "Barber not found.",
	"appointment_not_found": "Appointment not found.",
	"time_conflict":         "Time slot already booked.",
	"already_cancelled":     "Appointment is already cancelled.",
	"already_started":       "Appointment has already started.",
	"invalid_time_range":    "Start time must be before end time.",
	"start_in_past":         "Start time must be in the future.",
	"missing_reference":     "User, barber and service are all required.",
}

func statusOf(code string) int {
	if code == "time_conflict" {
		return http.StatusConflict
	}
	if strings.HasSuffix(code, "_not_found") {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

// WriteBusiness maps a BusinessError to its HTTP response. Returns false
// when err is not a BusinessError so the caller can fall through to a 500.
func WriteBusiness(c *gin.Context, err error) bool {
	var be BusinessError
	if !errors.As(err, &be) {
		return false
	}

	msg := messages[be.Code]
	if msg == "" {
		msg = strings.ReplaceAll(be.Code, "_", " ") + "."
	}

	Write(c, statusOf(be.Code), be.Code, msg)
	return true
}

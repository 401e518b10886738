package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/bkalafat/barberly/internal/domain/appointment"
	"github.com/bkalafat/barberly/internal/httperr"
	"github.com/bkalafat/barberly/internal/httpresp"
	ucAppointment "github.com/bkalafat/barberly/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type SchedulingHandler struct {
	availability *ucAppointment.Availability
	book         *ucAppointment.Book
	cancel       *ucAppointment.Cancel
	reschedule   *ucAppointment.Reschedule
	appts        domain.Repository
}

func NewSchedulingHandler(
	availability *ucAppointment.Availability,
	book *ucAppointment.Book,
	cancel *ucAppointment.Cancel,
	reschedule *ucAppointment.Reschedule,
	appts domain.Repository,
) *SchedulingHandler {
	return &SchedulingHandler{
		availability: availability,
		book:         book,
		cancel:       cancel,
		reschedule:   reschedule,
		appts:        appts,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	UserID    uuid.UUID `json:"user_id" binding:"required"`
	BarberID  uuid.UUID `json:"barber_id" binding:"required"`
	ServiceID uuid.UUID `json:"service_id" binding:"required"`
	Start     time.Time `json:"start" binding:"required"`
	End       time.Time `json:"end" binding:"required"`
}

type RescheduleAppointmentRequest struct {
	NewStart time.Time `json:"new_start" binding:"required"`
	NewEnd   time.Time `json:"new_end" binding:"required"`
}

// ======================================================
// AVAILABILITY
// ======================================================

// GET /barbers/:id/availability?date=YYYY-MM-DD&serviceId=...
func (h *SchedulingHandler) GetAvailability(c *gin.Context) {
	barberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "Barber id must be a UUID.")
		return
	}

	date := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
			return
		}
		date = parsed
	}

	serviceID := uuid.Nil
	if raw := c.Query("serviceId"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_service_id", "Service id must be a UUID.")
			return
		}
		serviceID = parsed
	}

	slots, err := h.availability.Execute(c.Request.Context(), barberID, date, serviceID)
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "availability_failed", "Could not compute availability.")
		}
		return
	}

	httpresp.List(c, slots)
}

// ======================================================
// BOOKING
// ======================================================

// POST /appointments — 201 on a fresh booking, 200 on an idempotent
// replay, 409 on conflict.
func (h *SchedulingHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking payload.")
		return
	}

	result, err := h.book.Execute(c.Request.Context(), ucAppointment.BookInput{
		IdempotencyKey: c.GetHeader("Idempotency-Key"),
		UserID:         req.UserID,
		BarberID:       req.BarberID,
		ServiceID:      req.ServiceID,
		Start:          req.Start,
		End:            req.End,
	})
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "booking_failed", "Could not create appointment.")
		}
		return
	}

	if result.Replayed {
		httpresp.OK(c, gin.H{"id": result.ID})
		return
	}
	httpresp.Created(c, gin.H{"id": result.ID})
}

// ======================================================
// READ
// ======================================================

func (h *SchedulingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Appointment id must be a UUID.")
		return
	}

	ap, err := h.appts.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
			return
		}
		httperr.Internal(c, "appointment_lookup_failed", "Could not load appointment.")
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// CANCEL / RESCHEDULE
// ======================================================

func (h *SchedulingHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Appointment id must be a UUID.")
		return
	}

	if err := h.cancel.Execute(c.Request.Context(), id); err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "cancel_failed", "Could not cancel appointment.")
		}
		return
	}

	httpresp.OK(c, gin.H{"message": "Appointment cancelled successfully."})
}

func (h *SchedulingHandler) Reschedule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Appointment id must be a UUID.")
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid reschedule payload.")
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), id, req.NewStart, req.NewEnd)
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "reschedule_failed", "Could not reschedule appointment.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    ap.ID,
		"start": ap.StartTime,
		"end":   ap.EndTime,
	})
}

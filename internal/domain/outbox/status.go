package outbox

// ===============================
// Outbox Status
// ===============================

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusSent       Status = "sent"
	StatusFailed     Status = "failed"
)

// Event type discriminators carried by outbox rows.
const (
	EventAppointmentBooked    = "AppointmentBooked"
	EventAppointmentCancelled = "AppointmentCancelled"
	EventAppointmentReminder  = "AppointmentReminder"
)

package notification

import (
	"fmt"
	"time"

	"github.com/bkalafat/barberly/internal/models"
)

// TemplateData carries everything the renderers need. Rendering is pure:
// no I/O, no clock access beyond the values already in the data.
type TemplateData struct {
	Appointment *models.Appointment
	User        *models.User
	Barber      *models.Barber
	Service     *models.Service
	Shop        *models.BarberShop
}

const timeLayout = "Monday, 02 Jan 2006 15:04 MST"

func RenderConfirmation(d TemplateData) string {
	return fmt.Sprintf(`
		<h2>Your appointment is confirmed</h2>
		<p>Dear %s,</p>
		<p>Your booking at <strong>%s</strong> is confirmed.</p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Barber:</strong> %s</li>
			<li><strong>Start:</strong> %s</li>
			<li><strong>End:</strong> %s</li>
		</ul>
		<p>See you soon,<br>The Barberly Team</p>
	`,
		d.User.FullName,
		d.Shop.Name,
		d.Service.Name,
		d.Barber.FullName,
		d.Appointment.StartTime.Format(timeLayout),
		d.Appointment.EndTime.Format(timeLayout),
	)
}

func RenderCancellation(d TemplateData, cancelledAt time.Time) string {
	return fmt.Sprintf(`
		<h2>Appointment cancelled</h2>
		<p>Dear %s,</p>
		<p>The appointment below at <strong>%s</strong> was cancelled on %s.</p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Barber:</strong> %s</li>
			<li><strong>Start:</strong> %s</li>
		</ul>
		<p>You can book a new slot any time.<br>The Barberly Team</p>
	`,
		d.User.FullName,
		d.Shop.Name,
		cancelledAt.Format(timeLayout),
		d.Service.Name,
		d.Barber.FullName,
		d.Appointment.StartTime.Format(timeLayout),
	)
}

func RenderReminder(d TemplateData) string {
	return fmt.Sprintf(`
		<h2>Upcoming appointment reminder</h2>
		<p>Dear %s,</p>
		<p>This is a reminder for your upcoming appointment at <strong>%s</strong>.</p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Barber:</strong> %s</li>
			<li><strong>Start:</strong> %s</li>
			<li><strong>End:</strong> %s</li>
		</ul>
		<p>Please arrive on time. Contact the shop if you need to reschedule.</p>
		<p>The Barberly Team</p>
	`,
		d.User.FullName,
		d.Shop.Name,
		d.Service.Name,
		d.Barber.FullName,
		d.Appointment.StartTime.Format(timeLayout),
		d.Appointment.EndTime.Format(timeLayout),
	)
}

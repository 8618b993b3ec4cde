package notifications

import (
	"context"
	"html"
	"time"

	"github.com/anjiri1684/appointment_booking/locales"
	"github.com/anjiri1684/appointment_booking/models"
	"github.com/anjiri1684/appointment_booking/services"
	"github.com/anjiri1684/appointment_booking/utils"
	"go.uber.org/zap"
)

type Broadcaster interface {
	Broadcast(msg any)
}

// ReservationNotifier mails customers about decisions on their reservations
// and pushes every change to connected administrators.
type ReservationNotifier struct {
	mailer Mailer
	hub    Broadcaster
	lang   string
	loc    *time.Location
	async  bool
}

func NewReservationNotifier(mailer Mailer, hub Broadcaster, lang string, loc *time.Location) *ReservationNotifier {
	if loc == nil {
		loc = time.UTC
	}
	return &ReservationNotifier{mailer: mailer, hub: hub, lang: lang, loc: loc, async: true}
}

var mailSubjects = map[services.EventType]string{
	services.EventApproved:  "mail_approved_subject",
	services.EventRejected:  "mail_rejected_subject",
	services.EventCancelled: "mail_cancelled_subject",
}

func (n *ReservationNotifier) ReservationChanged(ctx context.Context, ev services.ReservationEvent) {
	if n.hub != nil {
		n.hub.Broadcast(ev)
	}

	subject, ok := mailSubjects[ev.Type]
	if !ok || n.mailer == nil || ev.Reservation == nil || ev.Reservation.User == nil {
		return
	}
	r := ev.Reservation
	body := locales.T(n.lang, "mail_body",
		html.EscapeString(r.User.Username), html.EscapeString(serviceName(r)),
		n.formatStart(r), locales.T(n.lang, "status_"+string(r.Status)))
	n.send(r.User, locales.T(n.lang, subject), body)
}

// Remind sends the upcoming appointment email for an approved reservation.
func (n *ReservationNotifier) Remind(r *models.Reservation) {
	if n.mailer == nil || r.User == nil {
		return
	}
	start := ""
	if at := r.StartsAt(); at != nil {
		start = at.In(n.loc).Format("15:04")
	}
	body := locales.T(n.lang, "mail_reminder_body",
		html.EscapeString(r.User.Username), html.EscapeString(serviceName(r)), start)
	n.send(r.User, locales.T(n.lang, "mail_reminder_subject"), body)
}

func (n *ReservationNotifier) send(u *models.User, subject, body string) {
	deliver := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := n.mailer.Send(ctx, u.Username, u.Email, subject, body); err != nil {
			utils.GetLogger().Error("🔥 Failed to send email", zap.String("to", u.Email), zap.Error(err))
		}
	}
	if n.async {
		go deliver()
		return
	}
	deliver()
}

func (n *ReservationNotifier) formatStart(r *models.Reservation) string {
	if at := r.StartsAt(); at != nil {
		return at.In(n.loc).Format("02.01.2006 15:04")
	}
	return "-"
}

func serviceName(r *models.Reservation) string {
	if r.Service != nil {
		return r.Service.Name
	}
	return ""
}

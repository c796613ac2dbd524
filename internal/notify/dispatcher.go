// Package notify решает, когда и с какими данными отправлять уведомления
// по жизненному циклу бронирования. Сама доставка скрыта за mailer.Mailer;
// ошибки доставки логируются и никогда не влияют на исход операции.
package notify

import (
	"fmt"

	"github.com/theterminalguy/wp-booking-service/internal/domain"
	"github.com/theterminalguy/wp-booking-service/internal/infra/mailer"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Dispatcher отправляет уведомления клиенту и администратору
type Dispatcher struct {
	mailer     mailer.Mailer
	siteName   string
	adminEmail string
	logger     Logger
}

// NewDispatcher создает диспетчер уведомлений
func NewDispatcher(m mailer.Mailer, siteName, adminEmail string, logger Logger) *Dispatcher {
	return &Dispatcher{
		mailer:     m,
		siteName:   siteName,
		adminEmail: adminEmail,
		logger:     logger,
	}
}

func (d *Dispatcher) send(to, subject, text, html string) {
	if err := d.mailer.Send(to, subject, text, html); err != nil {
		// Смена статуса - состоявшийся факт; неотправленное письмо его не отменяет
		d.logger.Error("notify: failed to send %q to %s: %v", subject, to, err)
		return
	}
	d.logger.Info("notify: sent %q to %s", subject, to)
}

// BookingSubmitted отправляет клиенту подтверждение приёма заявки
// и уведомление администратору о новой заявке
func (d *Dispatcher) BookingSubmitted(b *domain.Booking) {
	subject := fmt.Sprintf("Booking Received - %s", d.siteName)
	text, html := confirmationBody(b, d.siteName)
	d.send(b.Email, subject, text, html)

	adminSubject := fmt.Sprintf("New Booking Request - %s", d.siteName)
	adminText, adminHTML := adminNotificationBody(b, d.siteName)
	d.send(d.adminEmail, adminSubject, adminText, adminHTML)
}

// BookingApproved отправляет клиенту подтверждение записи.
// cancelURL - ссылка самостоятельной отмены (может быть пустой,
// если отмена выключена в настройках).
func (d *Dispatcher) BookingApproved(b *domain.Booking, cancelURL string) {
	subject := fmt.Sprintf("Booking Confirmed - %s", d.siteName)
	text, html := approvalBody(b, d.siteName, cancelURL)
	d.send(b.Email, subject, text, html)
}

// BookingRejected отправляет клиенту уведомление об отклонении заявки
func (d *Dispatcher) BookingRejected(b *domain.Booking) {
	subject := fmt.Sprintf("Booking Update - %s", d.siteName)
	text, html := rejectionBody(b, d.siteName)
	d.send(b.Email, subject, text, html)
}

// BookingCancelled отправляет клиенту подтверждение отмены
// и уведомление администратору об освободившемся слоте
func (d *Dispatcher) BookingCancelled(b *domain.Booking) {
	subject := fmt.Sprintf("Booking Cancelled - %s", d.siteName)
	text, html := cancellationBody(b, d.siteName)
	d.send(b.Email, subject, text, html)

	adminSubject := fmt.Sprintf("Booking Cancelled by Customer - %s", d.siteName)
	adminText, adminHTML := adminCancellationBody(b, d.siteName)
	d.send(d.adminEmail, adminSubject, adminText, adminHTML)
}

package notify

import (
	"fmt"

	"github.com/theterminalguy/wp-booking-service/internal/domain"
)

// detailsText блок с деталями бронирования для текстовой версии письма
func detailsText(b *domain.Booking) string {
	return fmt.Sprintf("Date: %s\nTime: %s",
		b.BookingDate.Format(domain.DateFormat), b.StartTime)
}

// detailsHTML блок с деталями бронирования для HTML-версии письма
func detailsHTML(b *domain.Booking) string {
	return fmt.Sprintf(
		`<div style="background:#fff;padding:15px;margin:15px 0;border-left:4px solid #0073aa;">
<p><strong>Date:</strong> %s</p>
<p><strong>Time:</strong> %s</p>
</div>`,
		b.BookingDate.Format(domain.DateFormat), b.StartTime)
}

func wrapHTML(title, inner, siteName string) string {
	return fmt.Sprintf(
		`<html><body style="font-family:Arial,sans-serif;color:#333;">
<div style="max-width:600px;margin:0 auto;padding:20px;">
<h1>%s</h1>
%s
<p style="font-size:12px;color:#666;">%s</p>
</div></body></html>`,
		title, inner, siteName)
}

func confirmationBody(b *domain.Booking, siteName string) (string, string) {
	text := fmt.Sprintf(
		"Hello %s,\n\nYour booking request has been received and is pending approval.\n\n%s\n\nYou will receive another email once your booking is reviewed.",
		b.Name, detailsText(b))

	html := wrapHTML("Booking Received",
		fmt.Sprintf(
			`<p>Hello %s,</p>
<p>Your booking request has been received and is pending approval.</p>
%s
<p>You will receive another email once your booking is reviewed.</p>`,
			b.Name, detailsHTML(b)),
		siteName)

	return text, html
}

func adminNotificationBody(b *domain.Booking, siteName string) (string, string) {
	message := ""
	if b.Message != nil && *b.Message != "" {
		message = fmt.Sprintf("\nMessage: %s", *b.Message)
	}

	text := fmt.Sprintf(
		"A new booking request is awaiting approval.\n\nName: %s\nEmail: %s\nPhone: %s\n%s%s",
		b.Name, b.Email, b.Phone, detailsText(b), message)

	html := wrapHTML("New Booking Request",
		fmt.Sprintf(
			`<p>A new booking request is awaiting approval.</p>
<p><strong>Name:</strong> %s<br><strong>Email:</strong> %s<br><strong>Phone:</strong> %s</p>
%s`,
			b.Name, b.Email, b.Phone, detailsHTML(b)),
		siteName)

	return text, html
}

func approvalBody(b *domain.Booking, siteName, cancelURL string) (string, string) {
	cancelText := ""
	cancelHTML := ""
	if cancelURL != "" {
		cancelText = fmt.Sprintf("\n\nNeed to cancel? Use this link: %s", cancelURL)
		cancelHTML = fmt.Sprintf(`<p>Need to cancel? <a href="%s">Cancel your booking</a>.</p>`, cancelURL)
	}

	text := fmt.Sprintf(
		"Hello %s,\n\nGood news - your booking has been confirmed.\n\n%s%s\n\nWe look forward to seeing you.",
		b.Name, detailsText(b), cancelText)

	html := wrapHTML("Booking Confirmed",
		fmt.Sprintf(
			`<p>Hello %s,</p>
<p>Good news - your booking has been confirmed.</p>
%s
%s
<p>We look forward to seeing you.</p>`,
			b.Name, detailsHTML(b), cancelHTML),
		siteName)

	return text, html
}

func rejectionBody(b *domain.Booking, siteName string) (string, string) {
	text := fmt.Sprintf(
		"Hello %s,\n\nUnfortunately we are unable to accommodate your booking request.\n\n%s\n\nPlease feel free to book another time.",
		b.Name, detailsText(b))

	html := wrapHTML("Booking Update",
		fmt.Sprintf(
			`<p>Hello %s,</p>
<p>Unfortunately we are unable to accommodate your booking request.</p>
%s
<p>Please feel free to book another time.</p>`,
			b.Name, detailsHTML(b)),
		siteName)

	return text, html
}

func cancellationBody(b *domain.Booking, siteName string) (string, string) {
	text := fmt.Sprintf(
		"Hello %s,\n\nYour booking has been successfully cancelled.\n\n%s\n\nIf you would like to book again, please visit our booking page.",
		b.Name, detailsText(b))

	html := wrapHTML("Booking Cancelled",
		fmt.Sprintf(
			`<p>Hello %s,</p>
<p>Your booking has been successfully cancelled.</p>
%s
<p>If you would like to book again, please visit our booking page.</p>`,
			b.Name, detailsHTML(b)),
		siteName)

	return text, html
}

func adminCancellationBody(b *domain.Booking, siteName string) (string, string) {
	text := fmt.Sprintf(
		"A customer has cancelled their booking.\n\nName: %s\nEmail: %s\nPhone: %s\n%s\n\nThis time slot is now available for other bookings.",
		b.Name, b.Email, b.Phone, detailsText(b))

	html := wrapHTML("Booking Cancelled by Customer",
		fmt.Sprintf(
			`<p>A customer has cancelled their booking.</p>
<p><strong>Name:</strong> %s<br><strong>Email:</strong> %s<br><strong>Phone:</strong> %s</p>
%s
<p>This time slot is now available for other bookings.</p>`,
			b.Name, b.Email, b.Phone, detailsHTML(b)),
		siteName)

	return text, html
}

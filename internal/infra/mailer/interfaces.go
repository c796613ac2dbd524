package mailer

// Mailer отправляет письмо с текстовой и HTML-версией тела
type Mailer interface {
	Send(toEmail, subject, text, html string) error
}

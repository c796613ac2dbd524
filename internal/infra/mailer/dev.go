package mailer

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// DevMailer пишет письма в лог вместо отправки. Используется в разработке
// и в тестовых окружениях без SMTP.
type DevMailer struct {
	log Logger
}

// NewDevMailer создает dev-мейлер
func NewDevMailer(log Logger) *DevMailer {
	return &DevMailer{log: log}
}

// Send логирует письмо
func (d *DevMailer) Send(toEmail, subject, text, _ string) error {
	d.log.Info("dev mailer: to=%s subject=%q body=%q", toEmail, subject, text)
	return nil
}

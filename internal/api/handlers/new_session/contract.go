package new_session

// SessionIssuer выпускает анонимные сессионные токены
type SessionIssuer interface {
	Issue() (string, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package mailer

import (
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMTPMailer_Send(t *testing.T) {
	t.Run("empty recipient", func(t *testing.T) {
		m := NewSMTPMailer("localhost", 1025, "from@example.com", "", "", false)

		err := m.Send("  ", "subject", "text", "<p>html</p>")
		assert.Error(t, err)
	})

	t.Run("send failure keeps the underlying error", func(t *testing.T) {
		// Сервер обрывает соединение до SMTP-приветствия
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer ln.Close()

		go func() {
			for {
				conn, err := ln.Accept()
				if err != nil {
					return
				}
				conn.Close()
			}
		}()

		port := ln.Addr().(*net.TCPAddr).Port
		m := NewSMTPMailer("127.0.0.1", port, "from@example.com", "user", "pass", false)

		err = m.Send("to@example.com", "subject", "text", "<p>html</p>")
		require.Error(t, err)
		// Исходная причина доступна диспетчеру для логирования
		assert.NotNil(t, errors.Unwrap(err))
	})
}

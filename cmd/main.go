package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	actionTokensHandler "github.com/theterminalguy/wp-booking-service/internal/api/handlers/action_tokens"
	approveBookingHandler "github.com/theterminalguy/wp-booking-service/internal/api/handlers/approve_booking"
	cancelBookingHandler "github.com/theterminalguy/wp-booking-service/internal/api/handlers/cancel_booking"
	getAvailableSlotsHandler "github.com/theterminalguy/wp-booking-service/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/theterminalguy/wp-booking-service/internal/api/handlers/get_booking"
	getScheduleConfigHandler "github.com/theterminalguy/wp-booking-service/internal/api/handlers/get_schedule_config"
	listBookingsHandler "github.com/theterminalguy/wp-booking-service/internal/api/handlers/list_bookings"
	newSessionHandler "github.com/theterminalguy/wp-booking-service/internal/api/handlers/new_session"
	rejectBookingHandler "github.com/theterminalguy/wp-booking-service/internal/api/handlers/reject_booking"
	submitBookingHandler "github.com/theterminalguy/wp-booking-service/internal/api/handlers/submit_booking"
	updateScheduleConfigHandler "github.com/theterminalguy/wp-booking-service/internal/api/handlers/update_schedule_config"
	"github.com/theterminalguy/wp-booking-service/internal/api/middleware"
	"github.com/theterminalguy/wp-booking-service/internal/config"
	"github.com/theterminalguy/wp-booking-service/internal/infra/mailer"
	bookingRepo "github.com/theterminalguy/wp-booking-service/internal/infra/storage/booking"
	scheduleRepo "github.com/theterminalguy/wp-booking-service/internal/infra/storage/schedule"
	"github.com/theterminalguy/wp-booking-service/internal/notify"
	"github.com/theterminalguy/wp-booking-service/internal/platform/auth"
	bookingsService "github.com/theterminalguy/wp-booking-service/internal/service/bookings"
	scheduleService "github.com/theterminalguy/wp-booking-service/internal/service/schedule"
	getAvailableSlotsUC "github.com/theterminalguy/wp-booking-service/internal/usecase/get_available_slots"
	submitBookingUC "github.com/theterminalguy/wp-booking-service/internal/usecase/submit_booking"
	"github.com/theterminalguy/wp-booking-service/pkg/dbmetrics"
	"github.com/theterminalguy/wp-booking-service/pkg/logger"
	"github.com/theterminalguy/wp-booking-service/pkg/metrics"
	"github.com/theterminalguy/wp-booking-service/pkg/simpletxmanager"
	"github.com/theterminalguy/wp-booking-service/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting wp-booking-service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		scheduleRepository *scheduleRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем почту и уведомления
	var mail mailer.Mailer
	if cfg.Mail.Enabled {
		mail = mailer.NewSMTPMailer(
			cfg.Mail.Host,
			cfg.Mail.Port,
			cfg.Mail.From,
			cfg.Mail.Username,
			cfg.Mail.Password,
			cfg.Mail.UseTLS,
		)
		log.Info("SMTP mailer initialized (host=%s, port=%d)", cfg.Mail.Host, cfg.Mail.Port)
	} else {
		mail = mailer.NewDevMailer(log)
		log.Info("Mail disabled, using dev mailer (log only)")
	}
	notifier := notify.NewDispatcher(mail, cfg.Mail.SiteName, cfg.Mail.AdminEmail, log)

	// Инициализируем издателей токенов
	sessionIssuer := auth.NewSessionIssuer(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.SessionTTLMinutes)*time.Minute,
	)
	actionTokenIssuer := auth.NewActionTokenIssuer(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.ActionTokenTTLHours)*time.Hour,
	)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		scheduleRepository,
		notifier,
		actionTokenIssuer,
		cfg.Server.PublicBaseURL,
		log,
	)
	scheduleSvc := scheduleService.NewService(scheduleRepository, log)

	// Инициализируем use cases
	submitBookingUseCase := submitBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		txMgr,
		notifier,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		log,
	)

	// Инициализируем handlers
	newSession := newSessionHandler.NewHandler(sessionIssuer, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	submitBooking := submitBookingHandler.NewHandler(submitBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	approveBooking := approveBookingHandler.NewHandler(bookingSvc, actionTokenIssuer, log)
	rejectBooking := rejectBookingHandler.NewHandler(bookingSvc, actionTokenIssuer, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	actionTokens := actionTokensHandler.NewHandler(bookingSvc, log)
	getScheduleConfig := getScheduleConfigHandler.NewHandler(scheduleSvc, log)
	updateScheduleConfig := updateScheduleConfigHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// Выпуск анонимной сессии для формы бронирования
	api.HandleFunc("/session", newSession.Handle).Methods(http.MethodPost)

	// Самостоятельная отмена по токену из письма (без сессии)
	api.HandleFunc("/bookings/{publicId}/cancel", cancelBooking.HandlePreview).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{publicId}/cancel", cancelBooking.HandleCancel).Methods(http.MethodPost)

	// ============================================================
	// SESSION ROUTES (требуют X-Session-Token)
	// ============================================================

	session := api.PathPrefix("").Subrouter()
	session.Use(middleware.Session(sessionIssuer))

	// Доступные слоты на дату
	session.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание заявки на бронирование
	session.HandleFunc("/bookings", submitBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют Bearer токен администратора)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Auth.AdminToken))

	// Список и детали бронирований
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Подтверждение и отклонение заявок (с подписанным authToken)
	admin.HandleFunc("/bookings/{bookingId}/approve", approveBooking.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{bookingId}/reject", rejectBooking.Handle).Methods(http.MethodPost)

	// Выпуск approve/reject токенов для кнопок и писем
	admin.HandleFunc("/bookings/{bookingId}/action-tokens", actionTokens.Handle).Methods(http.MethodGet)

	// Настройки расписания
	admin.HandleFunc("/schedule-config", getScheduleConfig.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/schedule-config", updateScheduleConfig.Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

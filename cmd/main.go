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
	"github.com/redis/go-redis/v9"

	adminAuthStartHandler "github.com/m04kA/QS-AppointmentService/internal/api/handlers/admin_auth_start"
	adminAuthVerifyHandler "github.com/m04kA/QS-AppointmentService/internal/api/handlers/admin_auth_verify"
	authStartHandler "github.com/m04kA/QS-AppointmentService/internal/api/handlers/auth_start"
	authVerifyHandler "github.com/m04kA/QS-AppointmentService/internal/api/handlers/auth_verify"
	cancelAppointmentHandler "github.com/m04kA/QS-AppointmentService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/QS-AppointmentService/internal/api/handlers/create_appointment"
	getBusinessConfigHandler "github.com/m04kA/QS-AppointmentService/internal/api/handlers/get_business_config"
	getDaySlotsHandler "github.com/m04kA/QS-AppointmentService/internal/api/handlers/get_day_slots"
	getProfileHandler "github.com/m04kA/QS-AppointmentService/internal/api/handlers/get_profile"
	getServicesHandler "github.com/m04kA/QS-AppointmentService/internal/api/handlers/get_services"
	getUserAppointmentsHandler "github.com/m04kA/QS-AppointmentService/internal/api/handlers/get_user_appointments"
	logoutHandler "github.com/m04kA/QS-AppointmentService/internal/api/handlers/logout"
	updateBusinessConfigHandler "github.com/m04kA/QS-AppointmentService/internal/api/handlers/update_business_config"
	updateProfileHandler "github.com/m04kA/QS-AppointmentService/internal/api/handlers/update_profile"
	"github.com/m04kA/QS-AppointmentService/internal/api/middleware"
	"github.com/m04kA/QS-AppointmentService/internal/config"
	"github.com/m04kA/QS-AppointmentService/internal/infra/ratelimit"
	"github.com/m04kA/QS-AppointmentService/internal/infra/session"
	appointmentRepo "github.com/m04kA/QS-AppointmentService/internal/infra/storage/appointment"
	overrideRepo "github.com/m04kA/QS-AppointmentService/internal/infra/storage/override"
	userRepo "github.com/m04kA/QS-AppointmentService/internal/infra/storage/user"
	verificationRepo "github.com/m04kA/QS-AppointmentService/internal/infra/storage/verification"
	calendarClient "github.com/m04kA/QS-AppointmentService/internal/integrations/calendar"
	smsClient "github.com/m04kA/QS-AppointmentService/internal/integrations/smsgateway"
	appointmentsService "github.com/m04kA/QS-AppointmentService/internal/service/appointments"
	authSvc "github.com/m04kA/QS-AppointmentService/internal/service/auth"
	businesscfgService "github.com/m04kA/QS-AppointmentService/internal/service/businesscfg"
	createAppointmentUC "github.com/m04kA/QS-AppointmentService/internal/usecase/create_appointment"
	getDaySlotsUC "github.com/m04kA/QS-AppointmentService/internal/usecase/get_day_slots"
	"github.com/m04kA/QS-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/QS-AppointmentService/pkg/logger"
	"github.com/m04kA/QS-AppointmentService/pkg/metrics"
	"github.com/m04kA/QS-AppointmentService/pkg/simpletxmanager"
	"github.com/m04kA/QS-AppointmentService/pkg/txmanager"
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

	log.Info("Starting QS-AppointmentService...")
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

	// Подключаемся к Redis (сессии и rate limiting)
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to ping redis: %v", err)
	}
	log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

	// Инициализируем интеграционных клиентов
	calendar := calendarClient.NewClient(
		cfg.Calendar.URL,
		time.Duration(cfg.Calendar.Timeout)*time.Second,
		log,
	)
	sms := smsClient.NewClient(
		cfg.SMSGateway.URL,
		time.Duration(cfg.SMSGateway.Timeout)*time.Second,
		cfg.SMSGateway.DevMode,
		log,
	)
	log.Info("Integration clients initialized (Calendar=%s timeout=%ds, SMSGateway=%s timeout=%ds dev=%t)",
		cfg.Calendar.URL, cfg.Calendar.Timeout, cfg.SMSGateway.URL, cfg.SMSGateway.Timeout, cfg.SMSGateway.DevMode)

	// Инициализируем репозитории и транзакционный менеджер (с метриками или без)
	var (
		appointments  *appointmentRepo.Repository
		overrides     *overrideRepo.Repository
		users         *userRepo.Repository
		verifications *verificationRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointments = appointmentRepo.NewRepository(wrappedDB)
		overrides = overrideRepo.NewRepository(wrappedDB)
		users = userRepo.NewRepository(wrappedDB)
		verifications = verificationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointments = appointmentRepo.NewRepository(db)
		overrides = overrideRepo.NewRepository(db)
		users = userRepo.NewRepository(db)
		verifications = verificationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инфраструктура поверх Redis
	sessions := session.NewStore(rdb, time.Duration(cfg.Auth.SessionTTL)*time.Second)
	limiter := ratelimit.NewLimiter(
		rdb,
		cfg.Auth.RateLimitRequests,
		time.Duration(cfg.Auth.RateLimitWindow)*time.Second,
		"otp",
	)

	// Инициализируем сервисы
	configSvc := businesscfgService.NewService(cfg.Business.ConfigFile, overrides, log)
	authService := authSvc.NewService(
		users,
		verifications,
		sessions,
		limiter,
		sms,
		cfg.Business.AdminWhitelistFile,
		&authSvc.RealTimeProvider{},
		log,
	)
	appointmentsSvc := appointmentsService.NewService(appointments, calendar, configSvc, log)

	// Инициализируем use cases
	getDaySlotsUseCase := getDaySlotsUC.NewUseCase(configSvc, calendar, log)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(configSvc, calendar, appointments, txMgr, log)

	// Инициализируем handlers
	authStart := authStartHandler.NewHandler(authService, log)
	authVerify := authVerifyHandler.NewHandler(authService, log)
	logout := logoutHandler.NewHandler(authService, log)
	getProfile := getProfileHandler.NewHandler(log)
	updateProfile := updateProfileHandler.NewHandler(authService, log)
	getServices := getServicesHandler.NewHandler(configSvc, log)
	getDaySlots := getDaySlotsHandler.NewHandler(getDaySlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	adminAuthStart := adminAuthStartHandler.NewHandler(authService, log)
	adminAuthVerify := adminAuthVerifyHandler.NewHandler(authService, log)
	getBusinessConfig := getBusinessConfigHandler.NewHandler(configSvc, log)
	updateBusinessConfig := updateBusinessConfigHandler.NewHandler(configSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// OTP вход клиента
	api.HandleFunc("/auth/start", authStart.Handle).Methods(http.MethodPost)
	api.HandleFunc("/auth/verify", authVerify.Handle).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", logout.Handle).Methods(http.MethodPost)

	// OTP вход администратора
	api.HandleFunc("/admin/auth/start", adminAuthStart.Handle).Methods(http.MethodPost)
	api.HandleFunc("/admin/auth/verify", adminAuthVerify.Handle).Methods(http.MethodPost)

	// Витрина бизнеса
	api.HandleFunc("/businesses/{slug}/services", getServices.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (клиентская сессия или доверенное устройство)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(authService, log))

	// --- Профиль ---
	protected.HandleFunc("/me", getProfile.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/profile", updateProfile.Handle).Methods(http.MethodPost)

	// --- Доступные времена ---
	protected.HandleFunc("/businesses/{slug}/day-slots", getDaySlots.Handle).Methods(http.MethodGet)

	// --- Записи ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments", getUserAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (админская сессия, доступ по slug проверяется в handler)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(authService, log))

	admin.HandleFunc("/businesses/{slug}/config", getBusinessConfig.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/businesses/{slug}/config", updateBusinessConfig.Handle).Methods(http.MethodPut)

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

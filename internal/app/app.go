package app

import (
	"context"
	"errors"
	"fmt"

	"daycare_backend/database"
	"daycare_backend/internal/config"
	"daycare_backend/internal/email"
	"daycare_backend/internal/handlers"
	"daycare_backend/internal/logger"
	"daycare_backend/internal/middleware"
	"daycare_backend/internal/models"
	"daycare_backend/internal/push"
	"daycare_backend/internal/repositories"
	"daycare_backend/internal/routes"
	"daycare_backend/internal/services"
	"daycare_backend/internal/services/payment"
	"daycare_backend/internal/validator"
	"daycare_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	startWorkers(ctx, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	serviceContainer := initializeServices(cfg)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config) *services.ServiceContainer {
	var emailProvider email.Provider
	if cfg.Email.SMTPHost != "" {
		smtpCfg := email.DefaultConfig()
		smtpCfg.Host = cfg.Email.SMTPHost
		smtpCfg.Port = cfg.Email.SMTPPort
		smtpCfg.Username = cfg.Email.SMTPUsername
		smtpCfg.Password = cfg.Email.SMTPPassword
		smtpCfg.FromEmail = cfg.Email.FromEmail
		smtpCfg.FromName = cfg.Email.FromName
		smtpCfg.UseTLS = cfg.Email.UseTLS
		emailProvider = email.NewSMTPProvider(smtpCfg, email.NewTemplateManager())
		logger.Info("SMTP email provider initialized", "host", cfg.Email.SMTPHost)
	} else {
		emailProvider = email.NewNoopProvider()
		logger.Warn("SMTP not configured, outgoing email is suppressed")
	}

	var pushProvider push.Provider
	if cfg.Push.Enabled && cfg.Push.ServerKey != "" {
		pushProvider = push.NewFCMProvider(cfg.Push.ServerKey, cfg.Push.Endpoint)
		logger.Info("Push provider initialized")
	} else {
		pushProvider = push.NewNoopProvider()
	}

	userRepo := repositories.NewUserRepository()
	refreshTokenRepo := repositories.NewRefreshTokenRepository()
	childRepo := repositories.NewChildRepository()
	attendanceRepo := repositories.NewAttendanceRepository()
	reportRepo := repositories.NewReportRepository()
	complaintRepo := repositories.NewComplaintRepository()
	meetingRepo := repositories.NewMeetingRepository()
	announcementRepo := repositories.NewAnnouncementRepository()
	notificationRepo := repositories.NewNotificationRepository()
	planRepo := repositories.NewPlanRepository()
	orderRepo := repositories.NewOrderRepository()

	authService := services.NewAuthService(userRepo, refreshTokenRepo, emailProvider)
	userService := services.NewUserService(userRepo)
	childService := services.NewChildService(childRepo, userRepo)
	attendanceService := services.NewAttendanceService(attendanceRepo, childRepo)
	reportService := services.NewReportService(reportRepo, childRepo)
	complaintService := services.NewComplaintService(complaintRepo, childRepo, notificationRepo)
	meetingService := services.NewMeetingService(meetingRepo, userRepo, childRepo, notificationRepo, emailProvider)
	announcementService := services.NewAnnouncementService(announcementRepo, userRepo, notificationRepo, pushProvider)
	notificationService := services.NewNotificationService(notificationRepo)
	planService := services.NewPlanService(planRepo, childRepo)
	gateway := payment.NewGatewayService(cfg)
	paymentService := services.NewPaymentService(gateway, orderRepo, planRepo, childRepo, notificationRepo)
	exportService := services.NewExportService(attendanceRepo, orderRepo, childRepo)

	return &services.ServiceContainer{
		AuthService:         authService,
		UserService:         userService,
		ChildService:        childService,
		AttendanceService:   attendanceService,
		ReportService:       reportService,
		ComplaintService:    complaintService,
		MeetingService:      meetingService,
		AnnouncementService: announcementService,
		NotificationService: notificationService,
		PlanService:         planService,
		PaymentService:      paymentService,
		ExportService:       exportService,
		EmailProvider:       emailProvider,
		PushProvider:        pushProvider,
	}
}

func initializeHandlers(sc *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, sc.AuthService),
		UserHandler:         handlers.NewUserHandler(baseHandler, sc.UserService),
		ChildHandler:        handlers.NewChildHandler(baseHandler, sc.ChildService),
		AttendanceHandler:   handlers.NewAttendanceHandler(baseHandler, sc.AttendanceService, sc.ChildService),
		ReportHandler:       handlers.NewReportHandler(baseHandler, sc.ReportService, sc.ChildService),
		ComplaintHandler:    handlers.NewComplaintHandler(baseHandler, sc.ComplaintService),
		MeetingHandler:      handlers.NewMeetingHandler(baseHandler, sc.MeetingService),
		AnnouncementHandler: handlers.NewAnnouncementHandler(baseHandler, sc.AnnouncementService),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, sc.NotificationService),
		PlanHandler:         handlers.NewPlanHandler(baseHandler, sc.PlanService),
		PaymentHandler:      handlers.NewPaymentHandler(baseHandler, sc.PaymentService, sc.ChildService),
		ExportHandler:       handlers.NewExportHandler(baseHandler, sc.ExportService, sc.PaymentService, sc.ChildService),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

func startWorkers(ctx context.Context, gormDB *gorm.DB) {
	cfg := config.GetConfig()

	var pushProvider push.Provider = push.NewNoopProvider()
	if cfg.Push.Enabled && cfg.Push.ServerKey != "" {
		pushProvider = push.NewFCMProvider(cfg.Push.ServerKey, cfg.Push.Endpoint)
	}

	workers.NewEnrollmentWorker(gormDB, repositories.NewPlanRepository()).Start(ctx)
	workers.NewMeetingWorker(
		gormDB,
		repositories.NewMeetingRepository(),
		repositories.NewNotificationRepository(),
		pushProvider,
	).Start(ctx)
	workers.NewTokenWorker(gormDB, repositories.NewRefreshTokenRepository()).Start(ctx)
	logger.Info("Background workers started")
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	var adminUser models.User
	result := db.Where("email = ?", adminEmail).First(&adminUser)
	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found. Creating first admin...", "email", adminEmail)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Name:         "Administrator",
		Email:        adminEmail,
		PasswordHash: string(hashedPassword),
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
	}
	if err := db.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("First admin user created", "email", adminEmail)
	return nil
}

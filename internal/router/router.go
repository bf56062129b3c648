package router

import (
	"database/sql"
	"net/http"

	"ecohaven_backend/internal/database"
	"ecohaven_backend/internal/handlers"
	"ecohaven_backend/internal/mailer"
	"ecohaven_backend/internal/middleware"
	"ecohaven_backend/internal/repositories"
	"ecohaven_backend/internal/services"
	"ecohaven_backend/internal/storage"
	"ecohaven_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Dependencies are the process-wide resources the routes are built on.
type Dependencies struct {
	DB           *sql.DB
	JWT          *utils.JWTManager
	Files        *storage.FileStore
	Mailer       mailer.Mailer
	ContactEmail string
}

// Handlers groups every HTTP handler.
type Handlers struct {
	Account   *handlers.AccountHandler
	Staff     *handlers.StaffHandler
	Event     *handlers.EventHandler
	Booking   *handlers.BookingHandler
	CheckIn   *handlers.CheckInHandler
	Payment   *handlers.PaymentHandler
	Product   *handlers.ProductHandler
	Collect   *handlers.CollectHandler
	Volunteer *handlers.VolunteerHandler
	FAQ       *handlers.FAQHandler
	Review    *handlers.ReviewHandler
	Outreach  *handlers.OutreachHandler
	Report    *handlers.ReportHandler
}

// NewHandlers wires repositories and services into handlers.
func NewHandlers(deps Dependencies) Handlers {
	db := deps.DB
	tx := database.NewTransactor(db)

	// Initialize Repositories
	accountRepo := repositories.NewAccountRepository(db)
	staffRepo := repositories.NewStaffRepository(db)
	eventRepo := repositories.NewEventRepository(db)
	bookingRepo := repositories.NewBookingRepository(db)
	checkInRepo := repositories.NewCheckInRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	refundRepo := repositories.NewRefundRepository(db)
	productRepo := repositories.NewProductRepository(db)
	collectRepo := repositories.NewCollectRepository(db)
	volunteerRepo := repositories.NewVolunteerRepository(db)
	faqRepo := repositories.NewFAQRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	subscriberRepo := repositories.NewSubscriberRepository(db)
	resetRepo := repositories.NewPasswordResetRepository(db)
	reportRepo := repositories.NewReportRepository(db)

	// Initialize Services
	accountService := services.NewAccountService(accountRepo, db, deps.JWT, deps.Files)
	staffService := services.NewStaffService(staffRepo, db, tx, deps.JWT)
	eventService := services.NewEventService(eventRepo, bookingRepo, checkInRepo, db, tx, deps.Files)
	bookingService := services.NewBookingService(bookingRepo, eventRepo, checkInRepo, paymentRepo, tx, deps.Mailer)
	checkInService := services.NewCheckInService(checkInRepo, bookingRepo, accountRepo, tx)
	paymentService := services.NewPaymentService(paymentRepo, refundRepo, db, tx)
	productService := services.NewProductService(productRepo, db, deps.Files)
	collectService := services.NewCollectService(collectRepo, productRepo, accountRepo, db, tx, deps.Mailer)
	volunteerService := services.NewVolunteerService(volunteerRepo, db)
	faqService := services.NewFAQService(faqRepo, db)
	reviewService := services.NewReviewService(reviewRepo, db)
	subscriberService := services.NewSubscriberService(subscriberRepo, db, deps.Mailer)
	resetService := services.NewPasswordResetService(resetRepo, accountRepo, db, tx, deps.Mailer)
	contactService := services.NewContactService(deps.ContactEmail, deps.Mailer)
	searchService := services.NewSearchService(eventRepo, productRepo)
	reportService := services.NewReportService(reportRepo)

	return Handlers{
		Account:   handlers.NewAccountHandler(accountService, deps.Files),
		Staff:     handlers.NewStaffHandler(staffService),
		Event:     handlers.NewEventHandler(eventService, deps.Files),
		Booking:   handlers.NewBookingHandler(bookingService),
		CheckIn:   handlers.NewCheckInHandler(checkInService),
		Payment:   handlers.NewPaymentHandler(paymentService),
		Product:   handlers.NewProductHandler(productService, deps.Files),
		Collect:   handlers.NewCollectHandler(collectService),
		Volunteer: handlers.NewVolunteerHandler(volunteerService),
		FAQ:       handlers.NewFAQHandler(faqService),
		Review:    handlers.NewReviewHandler(reviewService),
		Outreach:  handlers.NewOutreachHandler(subscriberService, resetService, contactService, searchService),
		Report:    handlers.NewReportHandler(reportService),
	}
}

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, h Handlers, tokens middleware.TokenValidator) {
	auth := middleware.AuthMiddleware(tokens)

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	SetupAccountRoutes(engine, h.Account, auth)
	SetupStaffRoutes(engine, h.Staff, auth)

	api := engine.Group("/api")
	SetupEventRoutes(api, h.Event, auth)
	SetupBookingRoutes(api, h.Booking, auth)
	SetupFAQRoutes(api, h.FAQ, auth)

	SetupCheckInRoutes(engine, h.CheckIn, auth)
	SetupPaymentRoutes(engine, h.Payment, auth)
	SetupProductRoutes(engine, h.Product, auth)
	SetupCollectRoutes(engine, h.Collect, auth)
	SetupVolunteerRoutes(engine, h.Volunteer, auth)
	SetupReviewRoutes(engine, h.Review, auth)
	SetupOutreachRoutes(engine, h.Outreach, auth)
	SetupDashboardRoutes(engine, h.Report, auth)
}

package router

import (
	"ecohaven_backend/internal/handlers"
	"ecohaven_backend/internal/middleware"
	"ecohaven_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupAccountRoutes sets up the public account routes.
func SetupAccountRoutes(r gin.IRouter, h *handlers.AccountHandler, auth gin.HandlerFunc) {
	accountRoutes := r.Group("/account")
	{
		accountRoutes.POST("/register", h.Register)
		accountRoutes.POST("/login", h.Login)
		accountRoutes.GET("/profile-picture/:filename", h.ServeProfilePicture)

		me := accountRoutes.Group("/me", auth, middleware.RequireAccount())
		me.GET("", h.Me)
		me.PUT("", h.UpdateMe)
		me.DELETE("", h.DeleteMe)
		me.PUT("/password", h.ChangePassword)
		me.POST("/profile-picture", h.UploadProfilePicture)

		staffOnly := accountRoutes.Group("", auth, middleware.RequireStaff())
		staffOnly.GET("", h.GetAccounts)
		staffOnly.GET("/:id", h.GetAccountByID)
	}
}

// SetupStaffRoutes sets up the staff routes. Managing staff is Admin only.
func SetupStaffRoutes(r gin.IRouter, h *handlers.StaffHandler, auth gin.HandlerFunc) {
	staffRoutes := r.Group("/staff")
	{
		staffRoutes.POST("/login", h.Login)
		staffRoutes.GET("/me", auth, middleware.RequireStaff(), h.Me)

		admin := staffRoutes.Group("", auth, middleware.RoleAuthMiddleware(models.StaffRoleAdmin))
		admin.POST("", h.CreateStaff)
		admin.GET("", h.GetStaffList)
		admin.GET("/:id", h.GetStaffByID)
		admin.PUT("/:id", h.UpdateStaff)
		admin.PATCH("/:id/status", h.UpdateStaffStatus)
	}
}

// SetupEventRoutes sets up /api/events.
func SetupEventRoutes(api *gin.RouterGroup, h *handlers.EventHandler, auth gin.HandlerFunc) {
	eventRoutes := api.Group("/events")
	{
		eventRoutes.GET("", h.GetEvents)
		eventRoutes.GET("/:id", h.GetEventByID)
		eventRoutes.GET("/image/:filename", h.ServeEventImage)

		staffOnly := eventRoutes.Group("", auth, middleware.RequireStaff())
		staffOnly.POST("", h.CreateEvent)
		staffOnly.PUT("/:id", h.UpdateEvent)
		staffOnly.DELETE("/:id", h.DeleteEvent)
		staffOnly.POST("/:id/image", h.UploadEventImage)
	}
}

// SetupBookingRoutes sets up /api/bookings.
func SetupBookingRoutes(api *gin.RouterGroup, h *handlers.BookingHandler, auth gin.HandlerFunc) {
	bookingRoutes := api.Group("/bookings")
	{
		bookingRoutes.POST("", h.CreateBooking)

		authed := bookingRoutes.Group("", auth)
		authed.GET("/mine", middleware.RequireAccount(), h.GetMyBookings)
		authed.GET("/:id", h.GetBookingByID)
		authed.GET("/:id/qrcode", h.GetBookingQRCode)
		authed.GET("/:id/ticket", h.GetBookingTicket)
		authed.PUT("/cancel/:id", h.CancelBooking)
		authed.GET("", middleware.RequireStaff(), h.GetBookings)
	}
}

// SetupFAQRoutes sets up /api/faqs.
func SetupFAQRoutes(api *gin.RouterGroup, h *handlers.FAQHandler, auth gin.HandlerFunc) {
	faqRoutes := api.Group("/faqs")
	{
		faqRoutes.GET("", h.GetFAQs)
		faqRoutes.GET("/:id", h.GetFAQByID)

		staffOnly := faqRoutes.Group("", auth, middleware.RequireStaff())
		staffOnly.POST("", h.CreateFAQ)
		staffOnly.PUT("/:id", h.UpdateFAQ)
		staffOnly.DELETE("/:id", h.DeleteFAQ)
	}
}

// SetupCheckInRoutes sets up /checkin. All check-in operations are staff only.
func SetupCheckInRoutes(r gin.IRouter, h *handlers.CheckInHandler, auth gin.HandlerFunc) {
	checkInRoutes := r.Group("/checkin", auth, middleware.RequireStaff())
	{
		checkInRoutes.POST("/checkin", h.CheckIn)
		checkInRoutes.GET("", h.GetCheckIns)
		checkInRoutes.GET("/booking/:bookingId", h.GetCheckInByBooking)
	}
}

// SetupPaymentRoutes sets up /pay and /refund.
func SetupPaymentRoutes(r gin.IRouter, h *handlers.PaymentHandler, auth gin.HandlerFunc) {
	paymentRoutes := r.Group("/pay", auth, middleware.RequireStaff())
	{
		paymentRoutes.POST("", h.CreatePayment)
		paymentRoutes.GET("", h.GetPayments)
		paymentRoutes.GET("/:id", h.GetPaymentByID)
		paymentRoutes.PUT("/:id/status", h.UpdatePaymentStatus)
		paymentRoutes.DELETE("/:id", h.DeletePayment)
	}

	refundRoutes := r.Group("/refund")
	{
		refundRoutes.POST("", h.CreateRefund)

		staffOnly := refundRoutes.Group("", auth, middleware.RequireStaff())
		staffOnly.GET("", h.GetRefunds)
		staffOnly.GET("/:id", h.GetRefundByID)
		staffOnly.PUT("/:id/status", h.DecideRefund)
		staffOnly.DELETE("/:id", h.DeleteRefund)
	}
}

// SetupProductRoutes sets up the reward catalog under /eco.
func SetupProductRoutes(r gin.IRouter, h *handlers.ProductHandler, auth gin.HandlerFunc) {
	productRoutes := r.Group("/eco")
	{
		productRoutes.GET("", h.GetProducts)
		productRoutes.GET("/:id", h.GetProductByID)
		productRoutes.GET("/image/:filename", h.ServeProductImage)

		staffOnly := productRoutes.Group("", auth, middleware.RequireStaff())
		staffOnly.POST("", h.CreateProduct)
		staffOnly.PUT("/:id", h.UpdateProduct)
		staffOnly.DELETE("/:id", h.DeleteProduct)
		staffOnly.POST("/:id/image", h.UploadProductImage)
	}
}

// SetupCollectRoutes sets up /collect.
func SetupCollectRoutes(r gin.IRouter, h *handlers.CollectHandler, auth gin.HandlerFunc) {
	collectRoutes := r.Group("/collect", auth)
	{
		collectRoutes.POST("/redeem", middleware.RequireAccount(), h.Redeem)
		collectRoutes.GET("/mine", middleware.RequireAccount(), h.GetMyCollects)

		staffOnly := collectRoutes.Group("", middleware.RequireStaff())
		staffOnly.GET("", h.GetCollects)
		staffOnly.PUT("/:collectId/collected", h.MarkCollected)
		staffOnly.DELETE("/:id", h.DeleteCollect)
	}
}

// SetupVolunteerRoutes sets up /volunteer.
func SetupVolunteerRoutes(r gin.IRouter, h *handlers.VolunteerHandler, auth gin.HandlerFunc) {
	volunteerRoutes := r.Group("/volunteer")
	{
		volunteerRoutes.POST("", h.Apply)

		staffOnly := volunteerRoutes.Group("", auth, middleware.RequireStaff())
		staffOnly.GET("", h.GetVolunteers)
		staffOnly.GET("/:id", h.GetVolunteerByID)
		staffOnly.PUT("/:id/status", h.UpdateVolunteerStatus)
		staffOnly.DELETE("/:id", h.DeleteVolunteer)
	}
}

// SetupReviewRoutes sets up /review.
func SetupReviewRoutes(r gin.IRouter, h *handlers.ReviewHandler, auth gin.HandlerFunc) {
	reviewRoutes := r.Group("/review")
	{
		reviewRoutes.GET("", h.GetReviews)
		reviewRoutes.POST("", auth, middleware.RequireAccount(), h.CreateReview)
		reviewRoutes.DELETE("/:id", auth, h.DeleteReview)
	}
}

// SetupOutreachRoutes sets up subscriptions, password reset, contact and search.
func SetupOutreachRoutes(r gin.IRouter, h *handlers.OutreachHandler, auth gin.HandlerFunc) {
	subscribeRoutes := r.Group("/subscribe")
	{
		subscribeRoutes.POST("", h.Subscribe)
		subscribeRoutes.DELETE("/:email", h.Unsubscribe)
		subscribeRoutes.GET("", auth, middleware.RequireStaff(), h.GetSubscribers)
	}

	resetRoutes := r.Group("/reset_password")
	{
		resetRoutes.POST("/request", h.RequestReset)
		resetRoutes.POST("/verify", h.VerifyResetCode)
		resetRoutes.POST("/reset", h.ResetPassword)
	}

	r.POST("/send-email", h.SendEmail)
	r.GET("/search", h.Search)
}

// SetupDashboardRoutes sets up /dash.
func SetupDashboardRoutes(r gin.IRouter, h *handlers.ReportHandler, auth gin.HandlerFunc) {
	r.GET("/dash", auth, middleware.RequireStaff(), h.GetDashboardSummary)
}

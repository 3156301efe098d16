package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/studyabroad/cms-api/database"
	"github.com/studyabroad/cms-api/handlers"
	admin_handlers "github.com/studyabroad/cms-api/handlers/admin"
	article_handlers "github.com/studyabroad/cms-api/handlers/article"
	auth_handlers "github.com/studyabroad/cms-api/handlers/auth"
	country_handlers "github.com/studyabroad/cms-api/handlers/country"
	faq_handlers "github.com/studyabroad/cms-api/handlers/faq"
	inquiry_handlers "github.com/studyabroad/cms-api/handlers/inquiry"
	major_handlers "github.com/studyabroad/cms-api/handlers/major"
	university_handlers "github.com/studyabroad/cms-api/handlers/university"
	"github.com/studyabroad/cms-api/model"
	"github.com/studyabroad/cms-api/services"
	"github.com/studyabroad/cms-api/utils"
	"github.com/studyabroad/cms-api/utils/auth"
	"github.com/studyabroad/cms-api/utils/middleware"
)

// Options carries what the route table needs beyond the database.
// Attempts and Media are optional.
type Options struct {
	JWTManager        *auth.JWTManager
	Attempts          middleware.AttemptStore
	Media             admin_handlers.ImageStore
	AllowedOrigins    string
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

func SetupRoutes(app *fiber.App, store database.Storage, opts Options) {
	db := store.GetDB()

	// Services
	countryService := services.NewCountryService(db)
	universityService := services.NewUniversityService(db)
	majorService := services.NewMajorService(db)
	offeringService := services.NewUniversityMajorService(db)
	articleService := services.NewArticleService(db)
	inquiryService := services.NewStudentInquiryService(db)
	userService := services.NewUserService(db)
	faqService := services.NewFAQService(db)
	settingService := services.NewSettingService(db)
	dashboardService := services.NewDashboardService(db)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(opts.JWTManager, db)
	bruteForceProtection := middleware.NewBruteForceProtection(opts.Attempts)

	// Handlers
	authHandler := auth_handlers.NewAuthHandler(userService, opts.JWTManager, bruteForceProtection)
	countryHandler := country_handlers.NewCountryHandler(countryService, universityService, articleService)
	universityHandler := university_handlers.NewUniversityHandler(universityService, majorService, offeringService)
	majorHandler := major_handlers.NewMajorHandler(majorService, offeringService, articleService)
	articleHandler := article_handlers.NewArticleHandler(articleService)
	inquiryHandler := inquiry_handlers.NewInquiryHandler(inquiryService)
	faqHandler := faq_handlers.NewFAQHandler(faqService)
	adminHandler := admin_handlers.NewAdminHandler(settingService, userService, dashboardService, opts.Media)

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    opts.AllowedOrigins,
		RateLimitRequests: opts.RateLimitRequests,
		RateLimitWindow:   opts.RateLimitWindow,
	})

	// Health check endpoint (public)
	app.Get("/ping", utils.MakeHTTPHandleFunc(handlers.HandleCheckHealth, store))

	api := app.Group("/api/v1")

	// ==================== Auth ====================

	authGroup := api.Group("/auth")
	authGroup.Post("/login", bruteForceProtection.CheckAndRecordAttempt(), authHandler.Login)
	authGroup.Get("/me", authMiddleware.Required(), authHandler.GetProfile)
	authGroup.Post("/change-password", authMiddleware.Required(), authHandler.ChangePassword)

	// ==================== Public site ====================

	countries := api.Group("/countries")
	countries.Get("/", countryHandler.ListActiveCountries)
	countries.Get("/:id<int>/articles", countryHandler.GetCountryArticles)
	countries.Get("/:slug", countryHandler.GetCountryBySlug)

	universities := api.Group("/universities")
	universities.Get("/", universityHandler.ListActiveUniversities)
	universities.Get("/:id<int>/majors", universityHandler.ListOfferings)
	universities.Get("/:id<int>/majors/:major_id<int>", universityHandler.GetOffering)
	universities.Get("/:slug", universityHandler.GetUniversityBySlug)

	majors := api.Group("/majors")
	majors.Get("/", majorHandler.ListActiveMajors)
	majors.Get("/:id<int>/articles", majorHandler.GetMajorArticles)
	majors.Get("/:slug", majorHandler.GetMajorBySlug)

	articles := api.Group("/articles")
	articles.Get("/", articleHandler.ListPublishedArticles)
	articles.Get("/featured", articleHandler.GetFeaturedArticles)
	articles.Get("/:slug", articleHandler.GetArticleBySlug)

	api.Get("/faqs", faqHandler.ListActiveFAQs)
	api.Get("/settings/languages", adminHandler.GetSupportedLanguages)
	api.Post("/inquiries", inquiryHandler.SubmitInquiry)

	// ==================== Back office ====================

	// Every back-office route needs a signed-in, active account.
	admin := api.Group("/admin", authMiddleware.Required())

	// Content: every role may edit
	content := authMiddleware.RequireRole(model.RoleAdmin, model.RoleEditor, model.RolePartialSupervisor)

	adminCountries := admin.Group("/countries", content)
	adminCountries.Get("/", countryHandler.ListCountries)
	adminCountries.Get("/:id", countryHandler.GetCountry)
	adminCountries.Post("/", countryHandler.CreateCountry)
	adminCountries.Patch("/:id", countryHandler.UpdateCountry)
	adminCountries.Delete("/:id", countryHandler.DeleteCountry)

	adminUniversities := admin.Group("/universities", content)
	adminUniversities.Get("/", universityHandler.ListUniversities)
	adminUniversities.Get("/:id", universityHandler.GetUniversity)
	adminUniversities.Post("/", universityHandler.CreateUniversity)
	adminUniversities.Patch("/:id", universityHandler.UpdateUniversity)
	adminUniversities.Delete("/:id", universityHandler.DeleteUniversity)
	adminUniversities.Post("/:id/majors", universityHandler.CreateOffering)
	adminUniversities.Patch("/:id/majors/:major_id", universityHandler.UpdateOffering)
	adminUniversities.Delete("/:id/majors/:major_id", universityHandler.DeleteOffering)

	adminMajors := admin.Group("/majors", content)
	adminMajors.Get("/", majorHandler.ListMajors)
	adminMajors.Get("/:id", majorHandler.GetMajor)
	adminMajors.Post("/", majorHandler.CreateMajor)
	adminMajors.Patch("/:id", majorHandler.UpdateMajor)
	adminMajors.Delete("/:id", majorHandler.DeleteMajor)

	adminArticles := admin.Group("/articles", content)
	adminArticles.Get("/", articleHandler.ListArticles)
	adminArticles.Get("/:id", articleHandler.GetArticle)
	adminArticles.Post("/", articleHandler.CreateArticle)
	adminArticles.Patch("/:id", articleHandler.UpdateArticle)
	adminArticles.Delete("/:id", articleHandler.DeleteArticle)

	adminFAQs := admin.Group("/faqs", content)
	adminFAQs.Get("/", faqHandler.ListFAQs)
	adminFAQs.Put("/reorder", faqHandler.ReorderFAQs)
	adminFAQs.Get("/:id", faqHandler.GetFAQ)
	adminFAQs.Post("/", faqHandler.CreateFAQ)
	adminFAQs.Patch("/:id", faqHandler.UpdateFAQ)
	adminFAQs.Delete("/:id", faqHandler.DeleteFAQ)

	admin.Post("/media", content, adminHandler.UploadMedia)
	admin.Delete("/media", content, adminHandler.DeleteMedia)

	// Leads and the dashboard: admins and supervisors
	supervisors := authMiddleware.RequireRole(model.RoleAdmin, model.RolePartialSupervisor)

	adminInquiries := admin.Group("/inquiries", supervisors)
	adminInquiries.Get("/", inquiryHandler.ListInquiries)
	adminInquiries.Get("/export", inquiryHandler.ExportInquiries)
	adminInquiries.Get("/new-count", inquiryHandler.GetNewCount)
	adminInquiries.Get("/status/:status", inquiryHandler.ListByStatus)
	adminInquiries.Get("/:id", inquiryHandler.GetInquiry)
	adminInquiries.Patch("/:id", inquiryHandler.UpdateInquiry)
	adminInquiries.Delete("/:id", authMiddleware.RequireAdmin(), inquiryHandler.DeleteInquiry)

	adminDashboard := admin.Group("/dashboard", supervisors)
	adminDashboard.Get("/", adminHandler.GetDashboard)
	adminDashboard.Get("/content", adminHandler.GetContentStats)
	adminDashboard.Get("/trends", adminHandler.GetInquiryTrends)

	// Accounts and settings: admins only
	adminSettings := admin.Group("/settings", authMiddleware.RequireAdmin())
	adminSettings.Get("/", adminHandler.ListSettings)
	adminSettings.Put("/", adminHandler.UpdateSettings)
	adminSettings.Get("/email", adminHandler.GetEmailSettings)
	adminSettings.Get("/seo", adminHandler.GetSEOSettings)
	adminSettings.Get("/:key", adminHandler.GetSetting)
	adminSettings.Put("/:key", adminHandler.UpdateSetting)
	adminSettings.Delete("/:key", adminHandler.DeleteSetting)

	adminUsers := admin.Group("/users", authMiddleware.RequireAdmin())
	adminUsers.Get("/", adminHandler.ListUsers)
	adminUsers.Get("/:id", adminHandler.GetUser)
	adminUsers.Post("/", adminHandler.CreateUser)
	adminUsers.Patch("/:id", adminHandler.UpdateUser)
	adminUsers.Delete("/:id", adminHandler.DeleteUser)
}

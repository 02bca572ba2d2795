package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	usermodel "library-backend/internal/domains/user/model"
	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
	"library-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupAdminRoutes(v1, c)
		setupBookRoutes(v1, c)
		setupMemberRoutes(v1, c)
		setupIssueRoutes(v1, c)
		setupFineRoutes(v1, c)
		setupDashboardRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	users.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		users.GET("/me", c.UserHandler.GetProfile)
	}
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(c.JWTManager),
		middleware.RequireRole(usermodel.RoleAdmin.String()),
	)
	{
		admin.POST("/users", c.UserHandler.CreateUser)
		admin.GET("/users", c.UserHandler.ListUsers)
		admin.PUT("/users/:id/role", c.UserHandler.UpdateRole)
		admin.PUT("/users/:id/status", c.UserHandler.UpdateStatus)
	}
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	books := v1.Group("/books")
	books.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		books.GET("", c.BookHandler.ListBooks)
		books.GET("/:id", c.BookHandler.GetBookByID)

		staff := books.Group("")
		staff.Use(middleware.RequireRole(
			usermodel.RoleAdmin.String(),
			usermodel.RoleLibrarian.String(),
		))
		{
			staff.POST("", c.BookHandler.CreateBook)
			staff.PUT("/:id", c.BookHandler.UpdateBook)
			staff.PATCH("/:id/copies", c.BookHandler.AdjustCopies)
			staff.POST("/:id/cover", c.BookHandler.UploadCover)
			staff.DELETE("/:id", c.BookHandler.DeleteBook)
		}
	}
}

// ========================================
// MEMBER ROUTES
// ========================================
func setupMemberRoutes(v1 *gin.RouterGroup, c *container.Container) {
	members := v1.Group("/members")
	members.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		members.GET("/user/:userId", c.MemberHandler.GetMemberByUserID)

		staff := members.Group("")
		staff.Use(middleware.RequireRole(
			usermodel.RoleAdmin.String(),
			usermodel.RoleLibrarian.String(),
		))
		{
			staff.POST("", c.MemberHandler.CreateMember)
			staff.GET("", c.MemberHandler.ListMembers)
			staff.GET("/:id", c.MemberHandler.GetMemberByID)
			staff.PUT("/:id", c.MemberHandler.UpdateMember)
		}
	}
}

// ========================================
// ISSUE ROUTES
// ========================================
func setupIssueRoutes(v1 *gin.RouterGroup, c *container.Container) {
	issues := v1.Group("/book-issues")
	issues.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		issues.GET("/user/:userId", c.IssueHandler.FindByUser)

		staff := issues.Group("")
		staff.Use(middleware.RequireRole(
			usermodel.RoleAdmin.String(),
			usermodel.RoleLibrarian.String(),
		))
		{
			staff.POST("", c.IssueHandler.IssueBook)
			staff.GET("", c.IssueHandler.FindAll)
			staff.GET("/export", c.IssueHandler.ExportRegister)
			staff.GET("/:id", c.IssueHandler.GetIssueByID)
			staff.POST("/:id/return", c.IssueHandler.ReturnBook)
		}
	}
}

// ========================================
// FINE ROUTES
// ========================================
func setupFineRoutes(v1 *gin.RouterGroup, c *container.Container) {
	fines := v1.Group("/fines")
	fines.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		fines.GET("/user/:userId", c.FineHandler.ListFinesByUser)

		staff := fines.Group("")
		staff.Use(middleware.RequireRole(
			usermodel.RoleAdmin.String(),
			usermodel.RoleLibrarian.String(),
		))
		{
			staff.GET("", c.FineHandler.ListFines)
		}
	}
}

// ========================================
// DASHBOARD ROUTES
// ========================================
func setupDashboardRoutes(v1 *gin.RouterGroup, c *container.Container) {
	dashboard := v1.Group("/dashboard")
	dashboard.Use(
		middleware.AuthMiddleware(c.JWTManager),
		middleware.RequireRole(
			usermodel.RoleAdmin.String(),
			usermodel.RoleLibrarian.String(),
		),
	)
	{
		dashboard.GET("/summary", c.DashboardHandler.GetSummary)
		dashboard.GET("/recent-books", c.DashboardHandler.GetRecentBooks)
		dashboard.GET("/quick-stats", c.DashboardHandler.GetQuickStats)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
		defer cancel()

		status := "healthy"
		details := gin.H{
			"database": "up",
			"cache":    "up",
		}

		if err := c.DB.HealthCheck(checkCtx); err != nil {
			status = "degraded"
			details["database"] = "down"
		}
		if err := c.Cache.Ping(checkCtx); err != nil {
			status = "degraded"
			details["cache"] = "down"
		}

		httpStatus := http.StatusOK
		if status != "healthy" {
			httpStatus = http.StatusServiceUnavailable
		}

		response.Success(ctx, httpStatus, status, details)
	}
}

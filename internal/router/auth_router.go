// Package router wires repositories, services and handlers into one Gin
// engine per binary. Dependency graph: Handler ← Service ← Repository ← DB.
package router

import (
	"github.com/Ranjel272/my-backend-services/internal/config"
	"github.com/Ranjel272/my-backend-services/internal/handler"
	"github.com/Ranjel272/my-backend-services/internal/identity"
	"github.com/Ranjel272/my-backend-services/internal/infra"
	"github.com/Ranjel272/my-backend-services/internal/middleware"
	"github.com/Ranjel272/my-backend-services/internal/model"
	"github.com/Ranjel272/my-backend-services/internal/repository"
	"github.com/Ranjel272/my-backend-services/internal/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// NewAuth builds the authentication/employee service. It is the only service
// that resolves tokens in-process; the others call its /auth/users/me.
func NewAuth(cfg *config.Config, db *gorm.DB, uploads *infra.UploadStore) (*gin.Engine, error) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())

	userRepo := repository.NewUserRepository(db)
	authSvc := service.NewAuthService(userRepo, cfg)
	employeeSvc := service.NewEmployeeService(userRepo, uploads)
	provider := identity.NewLocalProvider(cfg.JWTSecret, userRepo)

	authH := handler.NewAuthHandler(authSvc)
	employeeH := handler.NewEmployeeHandler(employeeSvc)

	r.GET("/health", handler.Health(db))

	auth := r.Group("/auth")
	{
		auth.POST("/token", middleware.LoginRateLimiter(), authH.Token)
		auth.GET("/users/me", middleware.Authenticated(provider), authH.Me)
		auth.GET("/admin-only-route", middleware.RequireRoles(provider, model.RoleAdmin), authH.AdminOnly)
	}

	employees := r.Group("/employee-accounts", middleware.RequireRoles(provider, model.RoleAdmin))
	{
		employees.POST("/create", employeeH.Create)
		employees.GET("/list-employee-accounts", employeeH.List)
		employees.PUT("/update/:id", employeeH.Update)
		employees.DELETE("/delete/:id", employeeH.Delete)
	}

	// Employee photos are served read-only from the upload directory.
	r.Static("/uploads", uploads.Dir())

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r, nil
}

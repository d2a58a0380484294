package router

import (
	"github.com/Ranjel272/my-backend-services/internal/config"
	"github.com/Ranjel272/my-backend-services/internal/handler"
	"github.com/Ranjel272/my-backend-services/internal/identity"
	"github.com/Ranjel272/my-backend-services/internal/middleware"
	"github.com/Ranjel272/my-backend-services/internal/model"
	"github.com/Ranjel272/my-backend-services/internal/repository"
	"github.com/Ranjel272/my-backend-services/internal/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// RoleStaff exists only in the read allow-lists of the downstream services;
// the auth service never issues it, but tokens from other deployments may
// carry it.
const RoleStaff = "staff"

// NewDiscount builds the discount service. Every request is authorized by
// forwarding the caller's token to the POS auth service.
func NewDiscount(cfg *config.Config, db *gorm.DB) (*gin.Engine, error) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())

	discountRepo := repository.NewDiscountRepository(db)
	productRepo := repository.NewProductRepository(db)
	userRepo := repository.NewUserRepository(db)
	discountSvc := service.NewDiscountService(discountRepo, productRepo, userRepo)
	posAuth := identity.NewRemoteProvider(cfg.POSAuthURL)

	discountH := handler.NewDiscountHandler(discountSvc)

	r.GET("/health", handler.Health(db))

	write := middleware.RequireRoles(posAuth, model.RoleAdmin, model.RoleManager)
	read := middleware.RequireRoles(posAuth, model.RoleAdmin, model.RoleManager, RoleStaff)

	discounts := r.Group("/discounts")
	{
		discounts.POST("/", write, discountH.Create)
		discounts.GET("/", read, discountH.List)
		discounts.GET("/:id", read, discountH.GetByID)
		discounts.PUT("/:id", write, discountH.Update)
		discounts.DELETE("/:id", write, discountH.Delete)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r, nil
}

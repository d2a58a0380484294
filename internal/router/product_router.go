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

// NewProduct builds the product/product-type service. Reads are authorized
// against this deployment's own auth service; writes arrive from the
// upstream inventory system and are validated against its auth service
// instead, so the two providers coexist on one router.
func NewProduct(cfg *config.Config, db *gorm.DB, images *infra.ImageMirror) (*gin.Engine, error) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())

	productRepo := repository.NewProductRepository(db)
	typeRepo := repository.NewProductTypeRepository(db)
	productSvc := service.NewProductService(productRepo, typeRepo, images)
	typeSvc := service.NewProductTypeService(typeRepo)

	posAuth := identity.NewRemoteProvider(cfg.POSAuthURL)
	isAuth := identity.NewRemoteProvider(cfg.ISAuthURL)

	productH := handler.NewProductHandler(productSvc)
	typeH := handler.NewProductTypeHandler(typeSvc)

	r.GET("/health", handler.Health(db))

	posRead := middleware.RequireRoles(posAuth, model.RoleAdmin, model.RoleManager, RoleStaff)
	isWrite := middleware.RequireRoles(isAuth, model.RoleAdmin, model.RoleManager, RoleStaff)
	isDelete := middleware.RequireRoles(isAuth, model.RoleAdmin, model.RoleManager)

	products := r.Group("/Products")
	{
		products.GET("/products/", posRead, productH.List)
		products.POST("/products/", isWrite, productH.Create)
		products.PUT("/products/:id", isWrite, productH.Update)
		products.DELETE("/products/:id", isDelete, productH.Delete)

		products.GET("/products/:id/sizes", posRead, productH.ListSizes)
		products.POST("/products/:id/sizes", isWrite, productH.AddSize)
		products.POST("/products/add-size-by-name", isWrite, productH.AddSizeByName)
	}

	// Product type creation is gated on the upstream auth service as well.
	r.POST("/create", middleware.RequireRoles(isAuth, model.RoleAdmin), typeH.Create)

	// Mirrored images are served under /static; the DB stores paths like
	// "/pos_product_images/<uuid>.jpg" relative to this root.
	r.Static(infra.StaticURLPrefix+infra.ImageDBPathPrefix, images.Dir())

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r, nil
}

package repository

import (
	"context"

	"github.com/Ranjel272/my-backend-services/internal/model"

	"gorm.io/gorm"
)

type ProductTypeRepository interface {
	Create(ctx context.Context, t *model.ProductType) error
	FindByName(ctx context.Context, name string) (*model.ProductType, error)
	FindByID(ctx context.Context, id uint) (*model.ProductType, error)
	ListAll(ctx context.Context) ([]model.ProductType, error)
}

type productTypeRepo struct{ db *gorm.DB }

func NewProductTypeRepository(db *gorm.DB) ProductTypeRepository {
	return &productTypeRepo{db: db}
}

func (r *productTypeRepo) Create(ctx context.Context, t *model.ProductType) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *productTypeRepo) FindByName(ctx context.Context, name string) (*model.ProductType, error) {
	var t model.ProductType
	err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&t).Error
	return &t, err
}

func (r *productTypeRepo) FindByID(ctx context.Context, id uint) (*model.ProductType, error) {
	var t model.ProductType
	err := r.db.WithContext(ctx).First(&t, id).Error
	return &t, err
}

func (r *productTypeRepo) ListAll(ctx context.Context) ([]model.ProductType, error) {
	var types []model.ProductType
	err := r.db.WithContext(ctx).Find(&types).Error
	return types, err
}

package repository

import (
	"context"

	"github.com/Ranjel272/my-backend-services/internal/model"

	"gorm.io/gorm"
)

type DiscountRepository interface {
	Create(ctx context.Context, d *model.Discount) error
	FindByID(ctx context.Context, id uint) (*model.Discount, error)
	// List returns every discount, newest id first.
	List(ctx context.Context) ([]model.Discount, error)
	Update(ctx context.Context, d *model.Discount) error
	Delete(ctx context.Context, id uint) error
	ExistsName(ctx context.Context, name string, excludeID uint) (bool, error)
}

type discountRepo struct{ db *gorm.DB }

func NewDiscountRepository(db *gorm.DB) DiscountRepository { return &discountRepo{db: db} }

func (r *discountRepo) Create(ctx context.Context, d *model.Discount) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *discountRepo) FindByID(ctx context.Context, id uint) (*model.Discount, error) {
	var d model.Discount
	err := r.db.WithContext(ctx).First(&d, id).Error
	return &d, err
}

func (r *discountRepo) List(ctx context.Context) ([]model.Discount, error) {
	var discounts []model.Discount
	err := r.db.WithContext(ctx).Order("id DESC").Find(&discounts).Error
	return discounts, err
}

func (r *discountRepo) Update(ctx context.Context, d *model.Discount) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *discountRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Discount{}, id).Error
}

func (r *discountRepo) ExistsName(ctx context.Context, name string, excludeID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Discount{}).
		Where("LOWER(name) = LOWER(?) AND id <> ?", name, excludeID).
		Count(&n).Error
	return n > 0, err
}

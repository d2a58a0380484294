package repository

import (
	"context"

	"github.com/Ranjel272/my-backend-services/internal/model"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	// FindByName resolves a product case-insensitively, the way every
	// human-readable reference in the system is looked up.
	FindByName(ctx context.Context, name string) (*model.Product, error)
	ExistsName(ctx context.Context, name string, excludeID uint) (bool, error)
	// NamesByIDs maps product ids to names in one query; used when listing
	// discounts, which store only the product id.
	NamesByIDs(ctx context.Context, ids []uint) (map[uint]string, error)
	List(ctx context.Context) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	// DeleteWithSizes removes the product and its size rows in one
	// transaction.
	DeleteWithSizes(ctx context.Context, id uint) error

	ListSizes(ctx context.Context, productID uint) ([]model.Size, error)
	FindSizeByName(ctx context.Context, productID uint, name string) (*model.Size, error)
	CreateSize(ctx context.Context, s *model.Size) error
	// ReplaceSizes deletes every size row of the product and inserts the
	// given names, all inside one transaction.
	ReplaceSizes(ctx context.Context, productID uint, names []string) error
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *productRepo) FindByName(ctx context.Context, name string) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&p).Error
	return &p, err
}

func (r *productRepo) ExistsName(ctx context.Context, name string, excludeID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("LOWER(name) = LOWER(?) AND id <> ?", name, excludeID).
		Count(&n).Error
	return n > 0, err
}

func (r *productRepo) NamesByIDs(ctx context.Context, ids []uint) (map[uint]string, error) {
	names := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var rows []model.Product
	err := r.db.WithContext(ctx).Select("id", "name").Where("id IN ?", ids).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		names[row.ID] = row.Name
	}
	return names, nil
}

func (r *productRepo) List(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Preload("Sizes").Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Omit("Sizes").Save(p).Error
}

func (r *productRepo) DeleteWithSizes(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&model.Size{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Product{}, id).Error
	})
}

func (r *productRepo) ListSizes(ctx context.Context, productID uint) ([]model.Size, error) {
	var sizes []model.Size
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).Order("name ASC").Find(&sizes).Error
	return sizes, err
}

func (r *productRepo) FindSizeByName(ctx context.Context, productID uint, name string) (*model.Size, error) {
	var s model.Size
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND LOWER(name) = LOWER(?)", productID, name).
		First(&s).Error
	return &s, err
}

func (r *productRepo) CreateSize(ctx context.Context, s *model.Size) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *productRepo) ReplaceSizes(ctx context.Context, productID uint, names []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&model.Size{}).Error; err != nil {
			return err
		}
		for _, name := range names {
			if err := tx.Create(&model.Size{ProductID: productID, Name: name}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

package repository

import (
	"context"

	"github.com/Ranjel272/my-backend-services/internal/model"

	"gorm.io/gorm"
)

// UserRepository defines the data access contract for user accounts.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	// FindAllByUsername returns every row matching the username, disabled
	// ones included. Cashiers share one sentinel username, so login has to
	// verify the password against each returned hash.
	FindAllByUsername(ctx context.Context, username string) ([]model.User, error)
	FindActiveByID(ctx context.Context, id uint) (*model.User, error)
	FindIDByUsername(ctx context.Context, username string) (uint, error)
	ListActive(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, u *model.User) error
	SoftDelete(ctx context.Context, id uint) error

	ExistsActiveFullName(ctx context.Context, fullName string, excludeID uint) (bool, error)
	ExistsActiveEmail(ctx context.Context, email string, excludeID uint) (bool, error)
	ExistsActiveAdminManagerUsername(ctx context.Context, username string, excludeID uint) (bool, error)
	// ListActiveCashierHashes feeds the pairwise passcode collision check;
	// passcodes are short numeric codes and can only be compared by hash.
	ListActiveCashierHashes(ctx context.Context, excludeID uint) ([]string, error)
}

type userRepo struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepo{db: db} }

func (r *userRepo) Create(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepo) FindAllByUsername(ctx context.Context, username string) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).Where("username = ?", username).Find(&users).Error
	return users, err
}

func (r *userRepo) FindActiveByID(ctx context.Context, id uint) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("id = ? AND disabled = false", id).First(&u).Error
	return &u, err
}

func (r *userRepo) FindIDByUsername(ctx context.Context, username string) (uint, error) {
	var u model.User
	err := r.db.WithContext(ctx).
		Select("id").
		Where("LOWER(username) = LOWER(?)", username).
		First(&u).Error
	return u.ID, err
}

func (r *userRepo) ListActive(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).Where("disabled = false").Find(&users).Error
	return users, err
}

func (r *userRepo) Update(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *userRepo) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("disabled", true).Error
}

func (r *userRepo) ExistsActiveFullName(ctx context.Context, fullName string, excludeID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("full_name = ? AND disabled = false AND id <> ?", fullName, excludeID).
		Count(&n).Error
	return n > 0, err
}

func (r *userRepo) ExistsActiveEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ? AND disabled = false AND id <> ?", email, excludeID).
		Count(&n).Error
	return n > 0, err
}

func (r *userRepo) ExistsActiveAdminManagerUsername(ctx context.Context, username string, excludeID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("username = ? AND role IN ? AND disabled = false AND id <> ?",
			username, []string{model.RoleAdmin, model.RoleManager}, excludeID).
		Count(&n).Error
	return n > 0, err
}

func (r *userRepo) ListActiveCashierHashes(ctx context.Context, excludeID uint) ([]string, error) {
	var hashes []string
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("role = ? AND disabled = false AND id <> ?", model.RoleCashier, excludeID).
		Pluck("password_hash", &hashes).Error
	return hashes, err
}

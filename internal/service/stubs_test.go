package service

// In-memory repository stubs shared by the service tests. Each mimics the
// GORM-backed implementation closely enough for the service logic under
// test, including gorm.ErrRecordNotFound on point-lookup misses.

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Ranjel272/my-backend-services/internal/model"
	"github.com/Ranjel272/my-backend-services/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ── UserRepository ───────────────────────────────────────────────────────────

type stubUserRepo struct {
	users  map[uint]*model.User
	nextID uint
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uint]*model.User), nextID: 1}
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	u.ID = r.nextID
	r.nextID++
	u.CreatedAt = time.Now()
	cloned := *u
	r.users[u.ID] = &cloned
	return nil
}

func (r *stubUserRepo) FindAllByUsername(_ context.Context, username string) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		if u.Username != nil && *u.Username == username {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) FindActiveByID(_ context.Context, id uint) (*model.User, error) {
	u, ok := r.users[id]
	if !ok || u.Disabled {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *u
	return &cloned, nil
}

func (r *stubUserRepo) FindIDByUsername(_ context.Context, username string) (uint, error) {
	for _, u := range r.users {
		if u.Username != nil && strings.EqualFold(*u.Username, username) {
			return u.ID, nil
		}
	}
	return 0, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) ListActive(_ context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		if !u.Disabled {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	cloned := *u
	r.users[u.ID] = &cloned
	return nil
}

func (r *stubUserRepo) SoftDelete(_ context.Context, id uint) error {
	if u, ok := r.users[id]; ok {
		u.Disabled = true
	}
	return nil
}

func (r *stubUserRepo) ExistsActiveFullName(_ context.Context, fullName string, excludeID uint) (bool, error) {
	for _, u := range r.users {
		if u.FullName == fullName && !u.Disabled && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) ExistsActiveEmail(_ context.Context, email string, excludeID uint) (bool, error) {
	for _, u := range r.users {
		if u.Email == email && !u.Disabled && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) ExistsActiveAdminManagerUsername(_ context.Context, username string, excludeID uint) (bool, error) {
	for _, u := range r.users {
		if u.Username != nil && *u.Username == username && !u.Disabled && u.ID != excludeID &&
			(u.Role == model.RoleAdmin || u.Role == model.RoleManager) {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) ListActiveCashierHashes(_ context.Context, excludeID uint) ([]string, error) {
	var hashes []string
	for _, u := range r.users {
		if u.Role == model.RoleCashier && !u.Disabled && u.ID != excludeID {
			hashes = append(hashes, u.PasswordHash)
		}
	}
	return hashes, nil
}

// ── DiscountRepository ───────────────────────────────────────────────────────

type stubDiscountRepo struct {
	discounts map[uint]*model.Discount
	nextID    uint
}

func newStubDiscountRepo() *stubDiscountRepo {
	return &stubDiscountRepo{discounts: make(map[uint]*model.Discount), nextID: 1}
}

var _ repository.DiscountRepository = (*stubDiscountRepo)(nil)

func (r *stubDiscountRepo) Create(_ context.Context, d *model.Discount) error {
	d.ID = r.nextID
	r.nextID++
	d.CreatedAt = time.Now()
	cloned := *d
	r.discounts[d.ID] = &cloned
	return nil
}

func (r *stubDiscountRepo) FindByID(_ context.Context, id uint) (*model.Discount, error) {
	d, ok := r.discounts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *d
	return &cloned, nil
}

func (r *stubDiscountRepo) List(_ context.Context) ([]model.Discount, error) {
	var out []model.Discount
	for id := r.nextID; id > 0; id-- {
		if d, ok := r.discounts[id]; ok {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *stubDiscountRepo) Update(_ context.Context, d *model.Discount) error {
	cloned := *d
	r.discounts[d.ID] = &cloned
	return nil
}

func (r *stubDiscountRepo) Delete(_ context.Context, id uint) error {
	delete(r.discounts, id)
	return nil
}

func (r *stubDiscountRepo) ExistsName(_ context.Context, name string, excludeID uint) (bool, error) {
	for _, d := range r.discounts {
		if strings.EqualFold(d.Name, name) && d.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// ── ProductRepository ────────────────────────────────────────────────────────

type stubProductRepo struct {
	products   map[uint]*model.Product
	sizes      map[uint]*model.Size
	nextID     uint
	nextSizeID uint
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{
		products:   make(map[uint]*model.Product),
		sizes:      make(map[uint]*model.Size),
		nextID:     1,
		nextSizeID: 1,
	}
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	p.ID = r.nextID
	r.nextID++
	cloned := *p
	r.products[p.ID] = &cloned
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uint) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *p
	return &cloned, nil
}

func (r *stubProductRepo) FindByName(_ context.Context, name string) (*model.Product, error) {
	for _, p := range r.products {
		if strings.EqualFold(p.Name, name) {
			cloned := *p
			return &cloned, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) ExistsName(_ context.Context, name string, excludeID uint) (bool, error) {
	for _, p := range r.products {
		if strings.EqualFold(p.Name, name) && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubProductRepo) NamesByIDs(_ context.Context, ids []uint) (map[uint]string, error) {
	names := make(map[uint]string, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			names[id] = p.Name
		}
	}
	return names, nil
}

func (r *stubProductRepo) List(_ context.Context) ([]model.Product, error) {
	var out []model.Product
	for id := uint(1); id < r.nextID; id++ {
		if p, ok := r.products[id]; ok {
			cloned := *p
			cloned.Sizes = nil
			for _, sz := range r.sizes {
				if sz.ProductID == p.ID {
					cloned.Sizes = append(cloned.Sizes, *sz)
				}
			}
			out = append(out, cloned)
		}
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	cloned := *p
	r.products[p.ID] = &cloned
	return nil
}

func (r *stubProductRepo) DeleteWithSizes(_ context.Context, id uint) error {
	delete(r.products, id)
	for sid, sz := range r.sizes {
		if sz.ProductID == id {
			delete(r.sizes, sid)
		}
	}
	return nil
}

func (r *stubProductRepo) ListSizes(_ context.Context, productID uint) ([]model.Size, error) {
	var out []model.Size
	for _, sz := range r.sizes {
		if sz.ProductID == productID {
			out = append(out, *sz)
		}
	}
	return out, nil
}

func (r *stubProductRepo) FindSizeByName(_ context.Context, productID uint, name string) (*model.Size, error) {
	for _, sz := range r.sizes {
		if sz.ProductID == productID && strings.EqualFold(sz.Name, name) {
			cloned := *sz
			return &cloned, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) CreateSize(_ context.Context, s *model.Size) error {
	s.ID = r.nextSizeID
	r.nextSizeID++
	cloned := *s
	r.sizes[s.ID] = &cloned
	return nil
}

func (r *stubProductRepo) ReplaceSizes(_ context.Context, productID uint, names []string) error {
	for sid, sz := range r.sizes {
		if sz.ProductID == productID {
			delete(r.sizes, sid)
		}
	}
	for _, name := range names {
		sz := &model.Size{ProductID: productID, Name: name}
		if err := r.CreateSize(context.Background(), sz); err != nil {
			return err
		}
	}
	return nil
}

// ── ProductTypeRepository ────────────────────────────────────────────────────

type stubTypeRepo struct {
	types  map[uint]*model.ProductType
	nextID uint
}

func newStubTypeRepo() *stubTypeRepo {
	return &stubTypeRepo{types: make(map[uint]*model.ProductType), nextID: 1}
}

var _ repository.ProductTypeRepository = (*stubTypeRepo)(nil)

func (r *stubTypeRepo) Create(_ context.Context, t *model.ProductType) error {
	t.ID = r.nextID
	r.nextID++
	cloned := *t
	r.types[t.ID] = &cloned
	return nil
}

func (r *stubTypeRepo) FindByName(_ context.Context, name string) (*model.ProductType, error) {
	for _, t := range r.types {
		if strings.EqualFold(t.Name, name) {
			cloned := *t
			return &cloned, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubTypeRepo) FindByID(_ context.Context, id uint) (*model.ProductType, error) {
	t, ok := r.types[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *t
	return &cloned, nil
}

func (r *stubTypeRepo) ListAll(_ context.Context) ([]model.ProductType, error) {
	var out []model.ProductType
	for id := uint(1); id < r.nextID; id++ {
		if t, ok := r.types[id]; ok {
			out = append(out, *t)
		}
	}
	return out, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func mustHash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return string(h)
}

func strPtr(s string) *string { return &s }

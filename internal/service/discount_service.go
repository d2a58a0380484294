package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ranjel272/my-backend-services/internal/apierror"
	"github.com/Ranjel272/my-backend-services/internal/dto"
	"github.com/Ranjel272/my-backend-services/internal/model"
	"github.com/Ranjel272/my-backend-services/internal/repository"

	"gorm.io/gorm"
)

type DiscountService interface {
	Create(ctx context.Context, in dto.DiscountRequest) (*dto.DiscountResponse, error)
	List(ctx context.Context) ([]dto.DiscountResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.DiscountResponse, error)
	Update(ctx context.Context, id uint, in dto.DiscountRequest) (*dto.DiscountResponse, error)
	Delete(ctx context.Context, id uint) (*dto.MessageResponse, error)
}

type discountService struct {
	discounts repository.DiscountRepository
	products  repository.ProductRepository
	users     repository.UserRepository
}

func NewDiscountService(
	discounts repository.DiscountRepository,
	products repository.ProductRepository,
	users repository.UserRepository,
) DiscountService {
	return &discountService{discounts: discounts, products: products, users: users}
}

// resolveRefs turns the payload's human-readable references into row ids.
// Both lookups are case-insensitive point reads; a miss is the caller's 404.
func (s *discountService) resolveRefs(ctx context.Context, in *dto.DiscountRequest) (userID uint, product *model.Product, err error) {
	userID, err = s.users.FindIDByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil, apierror.NotFound(fmt.Sprintf("User with username '%s' not found in the system.", in.Username))
		}
		return 0, nil, err
	}
	product, err = s.products.FindByName(ctx, in.ProductName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil, apierror.NotFound(fmt.Sprintf("Product with name '%s' not found.", in.ProductName))
		}
		return 0, nil, err
	}
	return userID, product, nil
}

func validateDates(in *dto.DiscountRequest) error {
	// Equal timestamps are rejected too: a zero-length window is never valid.
	if !in.ValidFrom.Before(in.ValidTo) {
		return apierror.Validation("ValidFrom date must be before ValidTo date.")
	}
	return nil
}

func (s *discountService) Create(ctx context.Context, in dto.DiscountRequest) (*dto.DiscountResponse, error) {
	userID, product, err := s.resolveRefs(ctx, &in)
	if err != nil {
		return nil, err
	}

	if taken, err := s.discounts.ExistsName(ctx, in.DiscountName, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, apierror.Conflict(fmt.Sprintf("Discount name '%s' already exists.", in.DiscountName))
	}
	if err := validateDates(&in); err != nil {
		return nil, err
	}

	d := &model.Discount{
		Name:         in.DiscountName,
		ProductID:    product.ID,
		Percentage:   in.PercentageValue,
		MinimumSpend: in.MinimumSpend,
		ValidFrom:    in.ValidFrom,
		ValidTo:      in.ValidTo,
		UserID:       userID,
		Status:       in.Status,
	}
	if err := s.discounts.Create(ctx, d); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict(fmt.Sprintf("Discount name '%s' already exists.", in.DiscountName))
		}
		return nil, err
	}

	// Re-read the canonical row rather than trusting the values just written.
	stored, err := s.discounts.FindByID(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	resp := toDiscountResponse(stored, product.Name)
	return &resp, nil
}

func (s *discountService) List(ctx context.Context) ([]dto.DiscountResponse, error) {
	discounts, err := s.discounts.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(discounts))
	for i := range discounts {
		ids = append(ids, discounts[i].ProductID)
	}
	names, err := s.products.NamesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DiscountResponse, 0, len(discounts))
	for i := range discounts {
		out = append(out, toDiscountResponse(&discounts[i], names[discounts[i].ProductID]))
	}
	return out, nil
}

func (s *discountService) GetByID(ctx context.Context, id uint) (*dto.DiscountResponse, error) {
	d, err := s.discounts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound(fmt.Sprintf("Discount ID %d not found.", id))
		}
		return nil, err
	}
	names, err := s.products.NamesByIDs(ctx, []uint{d.ProductID})
	if err != nil {
		return nil, err
	}
	resp := toDiscountResponse(d, names[d.ProductID])
	return &resp, nil
}

func (s *discountService) Update(ctx context.Context, id uint, in dto.DiscountRequest) (*dto.DiscountResponse, error) {
	userID, product, err := s.resolveRefs(ctx, &in)
	if err != nil {
		return nil, err
	}

	d, err := s.discounts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound(fmt.Sprintf("Discount ID %d not found for update.", id))
		}
		return nil, err
	}

	if taken, err := s.discounts.ExistsName(ctx, in.DiscountName, id); err != nil {
		return nil, err
	} else if taken {
		return nil, apierror.Conflict(fmt.Sprintf("Discount name '%s' already exists for another discount.", in.DiscountName))
	}
	if err := validateDates(&in); err != nil {
		return nil, err
	}

	d.Name = in.DiscountName
	d.ProductID = product.ID
	d.Percentage = in.PercentageValue
	d.MinimumSpend = in.MinimumSpend
	d.ValidFrom = in.ValidFrom
	d.ValidTo = in.ValidTo
	d.UserID = userID
	d.Status = in.Status
	if err := s.discounts.Update(ctx, d); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict(fmt.Sprintf("Discount name '%s' already exists for another discount.", in.DiscountName))
		}
		return nil, err
	}

	stored, err := s.discounts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Updated discount not found after update attempt.")
		}
		return nil, err
	}
	resp := toDiscountResponse(stored, product.Name)
	return &resp, nil
}

func (s *discountService) Delete(ctx context.Context, id uint) (*dto.MessageResponse, error) {
	if _, err := s.discounts.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound(fmt.Sprintf("Discount ID %d not found.", id))
		}
		return nil, err
	}
	if err := s.discounts.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: fmt.Sprintf("Discount ID %d deleted successfully.", id)}, nil
}

func toDiscountResponse(d *model.Discount, productName string) dto.DiscountResponse {
	return dto.DiscountResponse{
		DiscountID:      d.ID,
		DiscountName:    d.Name,
		ProductID:       d.ProductID,
		ProductName:     productName,
		PercentageValue: d.Percentage,
		MinimumSpend:    d.MinimumSpend,
		ValidFrom:       d.ValidFrom,
		ValidTo:         d.ValidTo,
		UserID:          d.UserID,
		Status:          d.Status,
		CreatedAt:       d.CreatedAt,
	}
}

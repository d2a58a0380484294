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

type ProductTypeService interface {
	Create(ctx context.Context, in dto.ProductTypeRequest) (*dto.ProductTypeResponse, error)
}

type productTypeService struct {
	types repository.ProductTypeRepository
}

func NewProductTypeService(types repository.ProductTypeRepository) ProductTypeService {
	return &productTypeService{types: types}
}

func (s *productTypeService) Create(ctx context.Context, in dto.ProductTypeRequest) (*dto.ProductTypeResponse, error) {
	_, err := s.types.FindByName(ctx, in.ProductTypeName)
	if err == nil {
		return nil, apierror.Conflict(fmt.Sprintf("Product type '%s' already exists", in.ProductTypeName))
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	t := &model.ProductType{Name: in.ProductTypeName, SizeRequired: in.SizeRequired}
	if err := s.types.Create(ctx, t); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict(fmt.Sprintf("Product type '%s' already exists", in.ProductTypeName))
		}
		return nil, err
	}
	return &dto.ProductTypeResponse{
		ProductTypeID:   t.ID,
		ProductTypeName: t.Name,
		SizeRequired:    t.SizeRequired,
	}, nil
}

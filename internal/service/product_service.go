package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Ranjel272/my-backend-services/internal/apierror"
	"github.com/Ranjel272/my-backend-services/internal/dto"
	"github.com/Ranjel272/my-backend-services/internal/infra"
	"github.com/Ranjel272/my-backend-services/internal/model"
	"github.com/Ranjel272/my-backend-services/internal/repository"

	"gorm.io/gorm"
)

type ProductService interface {
	List(ctx context.Context) ([]dto.ProductListItem, error)
	Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error)
	Update(ctx context.Context, id uint, in dto.ProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uint) error

	ListSizes(ctx context.Context, productID uint) ([]dto.SizeResponse, error)
	AddSize(ctx context.Context, productID uint, in dto.SizeRequest) (*dto.SizeResponse, error)
	AddSizeByName(ctx context.Context, in dto.AddSizeByNameRequest) (*dto.SizeResponse, error)
}

type productService struct {
	products repository.ProductRepository
	types    repository.ProductTypeRepository
	images   *infra.ImageMirror
}

func NewProductService(
	products repository.ProductRepository,
	types repository.ProductTypeRepository,
	images *infra.ImageMirror,
) ProductService {
	return &productService{products: products, types: types, images: images}
}

func (s *productService) List(ctx context.Context) ([]dto.ProductListItem, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	types, err := s.types.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	typeNames := make(map[uint]string, len(types))
	for _, t := range types {
		typeNames[t.ID] = t.Name
	}

	out := make([]dto.ProductListItem, 0, len(products))
	for i := range products {
		p := &products[i]
		typeName, ok := typeNames[p.ProductTypeID]
		if !ok {
			typeName = "N/A"
		}
		var sizeNames []string
		for _, sz := range p.Sizes {
			sizeNames = append(sizeNames, sz.Name)
		}
		out = append(out, dto.ProductListItem{
			ProductID:          p.ID,
			ProductName:        p.Name,
			ProductTypeID:      p.ProductTypeID,
			ProductTypeName:    typeName,
			ProductCategory:    p.Category,
			ProductDescription: p.Description,
			ProductPrice:       p.Price,
			ProductImage:       infra.ServeURL(p.ImagePath),
			ProductSizes:       sizeNames,
		})
	}
	return out, nil
}

func (s *productService) Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	// The image is mirrored before any row exists so a broken upstream link
	// degrades to "product without image" instead of failing the create.
	imagePath := ""
	if in.ProductImage != nil {
		imagePath = s.images.Mirror(ctx, *in.ProductImage, "")
	}

	pt, err := s.types.FindByName(ctx, in.ProductTypeName)
	if err != nil {
		s.cleanupImage(imagePath)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Validation(fmt.Sprintf("ProductTypeName '%s' not found.", in.ProductTypeName))
		}
		return nil, err
	}

	if taken, err := s.products.ExistsName(ctx, in.ProductName, 0); err != nil {
		s.cleanupImage(imagePath)
		return nil, err
	} else if taken {
		s.cleanupImage(imagePath)
		return nil, apierror.Conflict(fmt.Sprintf("Product name '%s' already exists.", in.ProductName))
	}

	p := &model.Product{
		Name:          in.ProductName,
		ProductTypeID: pt.ID,
		Category:      in.ProductCategory,
		Description:   in.ProductDescription,
		Price:         in.ProductPrice,
	}
	if imagePath != "" {
		p.ImagePath = &imagePath
	}
	if err := s.products.Create(ctx, p); err != nil {
		s.cleanupImage(imagePath)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict(fmt.Sprintf("Product name '%s' already exists.", in.ProductName))
		}
		return nil, err
	}

	var sizeName *string
	if in.ProductSize != nil && strings.TrimSpace(*in.ProductSize) != "" {
		trimmed := strings.TrimSpace(*in.ProductSize)
		if _, err := s.products.FindSizeByName(ctx, p.ID, trimmed); errors.Is(err, gorm.ErrRecordNotFound) {
			if err := s.products.CreateSize(ctx, &model.Size{ProductID: p.ID, Name: trimmed}); err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, err
		}
		sizeName = &trimmed
	}

	stored, err := s.products.FindByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return toProductResponse(stored, sizeName), nil
}

func (s *productService) Update(ctx context.Context, id uint, in dto.ProductRequest) (*dto.ProductResponse, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound(fmt.Sprintf("Product with ID %d not found.", id))
		}
		return nil, err
	}

	previousPath := ""
	if p.ImagePath != nil {
		previousPath = *p.ImagePath
	}
	sourceURL := ""
	if in.ProductImage != nil {
		sourceURL = *in.ProductImage
	}
	newPath := s.images.Mirror(ctx, sourceURL, previousPath)

	pt, err := s.types.FindByName(ctx, in.ProductTypeName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Validation(fmt.Sprintf("ProductTypeName '%s' not found for update.", in.ProductTypeName))
		}
		return nil, err
	}

	if taken, err := s.products.ExistsName(ctx, in.ProductName, id); err != nil {
		return nil, err
	} else if taken {
		return nil, apierror.Conflict("Product name already exists for another product.")
	}

	p.Name = in.ProductName
	p.ProductTypeID = pt.ID
	p.Category = in.ProductCategory
	p.Description = in.ProductDescription
	p.Price = in.ProductPrice
	if newPath != "" {
		p.ImagePath = &newPath
	} else {
		p.ImagePath = nil
	}
	if err := s.products.Update(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("Product name already exists for another product.")
		}
		return nil, err
	}

	// The size list is full-replace on update: the payload's single size (or
	// none) becomes the product's complete size set.
	var sizeName *string
	var names []string
	if in.ProductSize != nil && strings.TrimSpace(*in.ProductSize) != "" {
		trimmed := strings.TrimSpace(*in.ProductSize)
		names = []string{trimmed}
		sizeName = &trimmed
	}
	if err := s.products.ReplaceSizes(ctx, id, names); err != nil {
		return nil, err
	}

	stored, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Product not found after update attempt.")
		}
		return nil, err
	}
	return toProductResponse(stored, sizeName), nil
}

func (s *productService) Delete(ctx context.Context, id uint) error {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound(fmt.Sprintf("Product with ID %d not found for deletion.", id))
		}
		return err
	}
	if err := s.products.DeleteWithSizes(ctx, id); err != nil {
		return err
	}
	if p.ImagePath != nil {
		s.images.Remove(*p.ImagePath)
	}
	return nil
}

func (s *productService) ListSizes(ctx context.Context, productID uint) ([]dto.SizeResponse, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound(fmt.Sprintf("Product with ID %d not found.", productID))
		}
		return nil, err
	}
	sizes, err := s.products.ListSizes(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SizeResponse, 0, len(sizes))
	for _, sz := range sizes {
		out = append(out, dto.SizeResponse{SizeID: sz.ID, ProductID: sz.ProductID, SizeName: sz.Name})
	}
	return out, nil
}

func (s *productService) AddSize(ctx context.Context, productID uint, in dto.SizeRequest) (*dto.SizeResponse, error) {
	name := strings.TrimSpace(in.SizeName)
	if name == "" {
		return nil, apierror.Validation("SizeName cannot be empty.")
	}
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound(fmt.Sprintf("Product with ID %d not found.", productID))
		}
		return nil, err
	}
	return s.insertSize(ctx, productID, name,
		fmt.Sprintf("Size '%s' already exists for product ID %d.", name, productID))
}

func (s *productService) AddSizeByName(ctx context.Context, in dto.AddSizeByNameRequest) (*dto.SizeResponse, error) {
	productName := strings.TrimSpace(in.ProductName)
	sizeName := strings.TrimSpace(in.SizeName)
	if productName == "" {
		return nil, apierror.Validation("ProductName cannot be empty.")
	}
	if sizeName == "" {
		return nil, apierror.Validation("SizeName cannot be empty.")
	}
	p, err := s.products.FindByName(ctx, productName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound(fmt.Sprintf("Product with name '%s' not found.", productName))
		}
		return nil, err
	}
	return s.insertSize(ctx, p.ID, sizeName,
		fmt.Sprintf("Size '%s' already exists for product '%s' (ID: %d).", sizeName, productName, p.ID))
}

func (s *productService) insertSize(ctx context.Context, productID uint, name, conflictMsg string) (*dto.SizeResponse, error) {
	if _, err := s.products.FindSizeByName(ctx, productID, name); err == nil {
		return nil, apierror.Conflict(conflictMsg)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	sz := &model.Size{ProductID: productID, Name: name}
	if err := s.products.CreateSize(ctx, sz); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict(conflictMsg)
		}
		return nil, err
	}
	return &dto.SizeResponse{SizeID: sz.ID, ProductID: productID, SizeName: name}, nil
}

func (s *productService) cleanupImage(path string) {
	if path != "" {
		s.images.Remove(path)
	}
}

func toProductResponse(p *model.Product, sizeName *string) *dto.ProductResponse {
	return &dto.ProductResponse{
		ProductID:          p.ID,
		ProductName:        p.Name,
		ProductTypeID:      p.ProductTypeID,
		ProductCategory:    p.Category,
		ProductDescription: p.Description,
		ProductPrice:       p.Price,
		ProductImage:       infra.ServeURL(p.ImagePath),
		ProductSize:        sizeName,
	}
}

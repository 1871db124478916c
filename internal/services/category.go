package services

import (
	"context"

	"equipment-tracker/internal/dto"
	"equipment-tracker/internal/entities"
	"equipment-tracker/internal/ledger"

	"go.uber.org/zap"
)

type CategoryServiceInterface interface {
	GetCategories(ctx context.Context) []entities.EquipmentCategory
	CreateCategory(ctx context.Context, payload dto.CreateCategoryDTO) (*entities.EquipmentCategory, error)
	UpdateCategory(ctx context.Context, id string, payload dto.UpdateCategoryDTO) (*entities.EquipmentCategory, error)
	DeleteCategory(ctx context.Context, id string) error
}

type CategoryService struct {
	ledger *ledger.Ledger
	logger *zap.Logger
}

func NewCategoryService(l *ledger.Ledger, logger *zap.Logger) CategoryServiceInterface {
	return &CategoryService{ledger: l, logger: logger}
}

func (s *CategoryService) GetCategories(ctx context.Context) []entities.EquipmentCategory {
	return s.ledger.ListCategories()
}

func (s *CategoryService) CreateCategory(ctx context.Context, payload dto.CreateCategoryDTO) (*entities.EquipmentCategory, error) {
	category, err := s.ledger.AddCategory(ctx, ledger.NewCategory{
		Name:             payload.Name,
		Description:      payload.Description,
		ParentCategoryID: payload.ParentCategoryID,
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id string, payload dto.UpdateCategoryDTO) (*entities.EquipmentCategory, error) {
	category, err := s.ledger.UpdateCategory(ctx, id, ledger.CategoryPatch{
		Name:             payload.Name.Ptr(),
		Description:      payload.Description.Ptr(),
		ParentCategoryID: payload.ParentCategoryID.Ptr(),
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.ledger.DeleteCategory(ctx, id); err != nil {
		s.logger.Warn("category not deleted", zap.String("id", id), zap.Error(err))
		return err
	}
	s.logger.Info("category deleted", zap.String("id", id))
	return nil
}

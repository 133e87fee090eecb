package product

import (
	"context"
	"math"
)

// Service defines the business logic for the catalog.
type Service interface {
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Categories(ctx context.Context) ([]string, error)
	GetByID(ctx context.Context, id uint) (*Product, error)
	Create(ctx context.Context, params CreateParams) (*Product, error)
	Update(ctx context.Context, id uint, params UpdateParams) (*Product, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = 12
	}
	if params.PageSize > 100 {
		params.PageSize = 100
	}

	items, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	sortCol, ok := sortColumns[params.Sort]
	if !ok {
		sortCol = "product_id"
	}
	order := "asc"
	if params.Order == "desc" {
		order = "desc"
	}

	return &ListResult{
		Items:      items,
		Page:       params.Page,
		PageSize:   params.PageSize,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(params.PageSize))),
		Sort:       sortCol,
		Order:      order,
	}, nil
}

func (s *service) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

func (s *service) GetByID(ctx context.Context, id uint) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, params CreateParams) (*Product, error) {
	if params.Name == "" || params.Price < 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.Create(ctx, params)
}

func (s *service) Update(ctx context.Context, id uint, params UpdateParams) (*Product, error) {
	return s.repo.Update(ctx, id, params)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

package service

import (
	"context"
	"strings"

	"github.com/rafaelleal24/storefront/internal/core/domain"
	"github.com/rafaelleal24/storefront/internal/core/dto"
	"github.com/rafaelleal24/storefront/internal/core/logger"
	"github.com/rafaelleal24/storefront/internal/core/port"
	"github.com/rafaelleal24/storefront/internal/core/serviceerrors"
)

type ProductService struct {
	productRepository port.ProductPort
	events            port.EventRecorder
	txManager         port.TransactionManager
	gate              port.AdminGate
}

func NewProductService(
	productRepository port.ProductPort,
	events port.EventRecorder,
	txManager port.TransactionManager,
	gate port.AdminGate,
) *ProductService {
	return &ProductService{
		productRepository: productRepository,
		events:            events,
		txManager:         txManager,
		gate:              gate,
	}
}

// authorize must run before any catalog mutation.
func (s *ProductService) authorize(ctx context.Context, credential string) error {
	ok, err := s.gate.IsAuthorized(ctx, credential)
	if err != nil {
		logger.Error(ctx, "product: admin check failed", err, nil)
		return err
	}
	if !ok {
		return serviceerrors.NewUnauthorizedError("unauthorized")
	}
	return nil
}

func validateCreateProduct(request *dto.CreateProductRequest) error {
	if strings.TrimSpace(request.Title) == "" {
		return serviceerrors.NewInvalidRequestError("title is required")
	}
	if request.PriceExclTax.IsNegative() {
		return serviceerrors.NewInvalidRequestError("price must not be negative")
	}
	if request.Stock < 0 {
		return serviceerrors.NewInvalidRequestError("stock must not be negative")
	}
	return nil
}

func (s *ProductService) CreateProduct(ctx context.Context, credential string, request *dto.CreateProductRequest) (*domain.Product, error) {
	if err := s.authorize(ctx, credential); err != nil {
		return nil, err
	}
	if err := validateCreateProduct(request); err != nil {
		return nil, err
	}

	product := domain.NewProduct(request.Title, request.Category, request.PriceExclTax, request.Stock, request.Image)

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.productRepository.Create(txCtx, product); err != nil {
			return err
		}
		return s.events.Record(txCtx, domain.NewProductCreatedEvent(product))
	})
	if err != nil {
		logger.Error(ctx, "product: create failed", err, map[string]any{
			"title":          request.Title,
			"category":       request.Category,
			"price_excl_tax": request.PriceExclTax.String(),
			"stock":          request.Stock,
		})
		return nil, err
	}

	logger.Info(ctx, "Product created", map[string]any{"product_id": product.ID})
	return product, nil
}

func (s *ProductService) UpdateStock(ctx context.Context, credential string, id domain.ID, request *dto.UpdateStockRequest) (*domain.Product, error) {
	if err := s.authorize(ctx, credential); err != nil {
		return nil, err
	}
	if request.Stock < 0 {
		return nil, serviceerrors.NewInvalidRequestError("stock must not be negative")
	}

	var product *domain.Product
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		updated, err := s.productRepository.UpdateStock(txCtx, id, request.Stock)
		if err != nil {
			return err
		}
		product = updated
		return s.events.Record(txCtx, domain.NewProductStockUpdatedEvent(updated))
	})
	if err != nil {
		if !serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
			logger.Error(ctx, "product: update stock failed", err, map[string]any{
				"product_id": id,
				"stock":      request.Stock,
			})
		}
		return nil, err
	}

	logger.Info(ctx, "Product stock updated", map[string]any{
		"product_id": id,
		"stock":      product.Stock,
	})
	return product, nil
}

// GetByID returns the full product, stock included, so it is admin only.
func (s *ProductService) GetByID(ctx context.Context, credential string, id domain.ID) (*domain.Product, error) {
	if err := s.authorize(ctx, credential); err != nil {
		return nil, err
	}
	return s.productRepository.GetByID(ctx, id)
}

func (s *ProductService) GetPublicCatalog(ctx context.Context) ([]domain.PublicProduct, error) {
	products, err := s.productRepository.GetAll(ctx)
	if err != nil {
		logger.Error(ctx, "product: list failed", err, nil)
		return nil, err
	}
	return domain.PublicViews(products), nil
}

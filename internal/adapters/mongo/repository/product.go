package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rafaelleal24/storefront/internal/adapters/mongo/document"
	"github.com/rafaelleal24/storefront/internal/core/domain"
	"github.com/rafaelleal24/storefront/internal/core/port"
	"github.com/rafaelleal24/storefront/internal/core/serviceerrors"
)

var _ port.ProductPort = (*ProductRepository)(nil)

type ProductRepository struct {
	*BaseRepository[document.ProductDocument]
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	repo := &ProductRepository{
		BaseRepository: NewBaseRepository[document.ProductDocument](db, "products", "product"),
	}
	repo.EnsureIndexes(context.Background(), productIndexes()...)
	return repo
}

// productIndexes backs the catalog listing order and category lookups.
func productIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "updated_at", Value: -1},
				{Key: "_id", Value: -1},
			},
			Options: options.Index().SetName("updated_at_desc_id_desc"),
		},
		{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetName("category"),
		},
	}
}

// ceilMillis rounds up to the storage precision of BSON dates, so a stored
// timestamp is never earlier than the moment the write started.
func ceilMillis(t time.Time) time.Time {
	truncated := t.Truncate(time.Millisecond)
	if truncated.Before(t) {
		truncated = truncated.Add(time.Millisecond)
	}
	return truncated.UTC()
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	product.UpdatedAt = ceilMillis(time.Now())

	doc, err := document.ToProductDocument(product)
	if err != nil {
		return serviceerrors.NewInvalidRequestError("price is out of range")
	}

	objectID, err := r.Insert(ctx, doc)
	if err != nil {
		return err
	}

	product.ID = domain.ID(objectID.Hex())
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id domain.ID) (*domain.Product, error) {
	doc, err := r.FindByID(ctx, string(id))
	if err != nil {
		return nil, err
	}

	return doc.ToDomain()
}

// UpdateStock sets the stock and moves updated_at forward. updated_at is at
// least one millisecond past its previous value even when the clock has not
// advanced, so successive mutations stay strictly ordered.
func (r *ProductRepository) UpdateStock(ctx context.Context, id domain.ID, stock int) (*domain.Product, error) {
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "stock", Value: stock},
			{Key: "updated_at", Value: bson.D{{Key: "$max", Value: bson.A{
				ceilMillis(time.Now()),
				bson.D{{Key: "$add", Value: bson.A{"$updated_at", 1}}},
			}}}},
		}}},
	}

	doc, err := r.UpdateByID(ctx, string(id), update)
	if err != nil {
		return nil, err
	}

	return doc.ToDomain()
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]*domain.Product, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "updated_at", Value: -1},
		{Key: "_id", Value: -1},
	})

	docs, err := r.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	products := make([]*domain.Product, len(docs))
	for i, doc := range docs {
		product, err := doc.ToDomain()
		if err != nil {
			return nil, err
		}
		products[i] = product
	}

	return products, nil
}

// GetPrices ignores ids that are malformed or unknown. Prices are keyed by the
// ids as given, so hex ids in any letter case resolve.
func (r *ProductRepository) GetPrices(ctx context.Context, ids []domain.ID) (map[domain.ID]decimal.Decimal, error) {
	prices := make(map[domain.ID]decimal.Decimal, len(ids))

	requested := make(map[primitive.ObjectID][]domain.ID, len(ids))
	hexIDs := make([]string, len(ids))
	for i, id := range ids {
		hexIDs[i] = string(id)
		if objectID, err := primitive.ObjectIDFromHex(string(id)); err == nil {
			requested[objectID] = append(requested[objectID], id)
		}
	}
	objectIDs := document.ParseObjectIDs(hexIDs)
	if len(objectIDs) == 0 {
		return prices, nil
	}

	opts := options.Find().SetProjection(bson.M{"price_excl_tax": 1})
	docs, err := r.FindByIDs(ctx, objectIDs, opts)
	if err != nil {
		return nil, err
	}

	for _, doc := range docs {
		price, err := document.FromDecimal128(doc.PriceExclTax)
		if err != nil {
			return nil, err
		}
		for _, id := range requested[doc.ID] {
			prices[id] = price
		}
	}

	return prices, nil
}

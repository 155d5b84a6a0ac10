package tenant

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/fieldsuite/entitlement/pkg/plan"
)

// MongoProvider loads tenant records from a MongoDB collection.
type MongoProvider struct {
	coll *mongo.Collection
}

// NewMongoProvider creates a provider backed by the given database's
// "tenants" collection.
func NewMongoProvider(db *mongo.Database) *MongoProvider {
	return &MongoProvider{coll: db.Collection("tenants")}
}

// tenantDoc is the persisted shape of a tenant record.
type tenantDoc struct {
	ID        string    `bson:"_id"`
	Subdomain string    `bson:"subdomain"`
	Name      string    `bson:"name"`
	Tier      string    `bson:"tier"`
	Active    bool      `bson:"active"`
	CreatedAt time.Time `bson:"created_at"`
}

// GetByID retrieves a tenant by its ID.
func (p *MongoProvider) GetByID(ctx context.Context, id uuid.UUID) (*Tenant, error) {
	return p.findOne(ctx, bson.M{"_id": id.String()})
}

// GetByIdentifier retrieves a tenant by subdomain, falling back to an ID
// match when the identifier parses as a UUID.
func (p *MongoProvider) GetByIdentifier(ctx context.Context, identifier string) (*Tenant, error) {
	if identifier == "" {
		return nil, ErrInvalidIdentifier
	}

	if id, err := uuid.Parse(identifier); err == nil {
		return p.GetByID(ctx, id)
	}
	return p.findOne(ctx, bson.M{"subdomain": identifier})
}

func (p *MongoProvider) findOne(ctx context.Context, filter bson.M) (*Tenant, error) {
	var doc tenantDoc
	err := p.coll.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTenantNotFound
		}
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, errors.Join(ErrInvalidIdentifier, err)
	}

	return &Tenant{
		ID:        id,
		Subdomain: doc.Subdomain,
		Name:      doc.Name,
		Tier:      plan.Tier(doc.Tier),
		Active:    doc.Active,
		CreatedAt: doc.CreatedAt,
	}, nil
}

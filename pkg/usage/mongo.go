package usage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// MongoCounters builds counters over the technicians and work_orders
// collections of the given database.
type MongoCounters struct {
	technicians *mongo.Collection
	workOrders  *mongo.Collection
}

// NewMongoCounters creates counters backed by the given database.
func NewMongoCounters(db *mongo.Database) *MongoCounters {
	return &MongoCounters{
		technicians: db.Collection("technicians"),
		workOrders:  db.Collection("work_orders"),
	}
}

// ActiveTechnicians counts technicians currently flagged active for the tenant.
func (c *MongoCounters) ActiveTechnicians(ctx context.Context, tenantID uuid.UUID, _ Window) (int64, error) {
	n, err := c.technicians.CountDocuments(ctx, bson.M{
		"tenant_id": tenantID.String(),
		"active":    true,
	})
	if err != nil {
		return 0, errors.Join(ErrCountUnavailable, err)
	}
	return n, nil
}

// WorkOrdersCreated counts work orders the tenant created within the window.
func (c *MongoCounters) WorkOrdersCreated(ctx context.Context, tenantID uuid.UUID, window Window) (int64, error) {
	filter := bson.M{"tenant_id": tenantID.String()}
	if !window.IsZero() {
		filter["created_at"] = bson.M{"$gte": window.From, "$lt": window.To}
	}

	n, err := c.workOrders.CountDocuments(ctx, filter)
	if err != nil {
		return 0, errors.Join(ErrCountUnavailable, err)
	}
	return n, nil
}

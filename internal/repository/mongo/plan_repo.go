package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/repository"
)

type mongoPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoPlanRepository creates a plan catalogue backed by MongoDB.
func NewMongoPlanRepository(db *mongo.Database) repository.PlanRepository {
	return &mongoPlanRepository{
		collection: db.Collection(planCollectionName),
	}
}

func (r *mongoPlanRepository) Save(ctx context.Context, plan domain.SubscriptionPlan) error {
	if plan.IsZero() {
		return domain.NewError(domain.ErrInvalidArgument, "plan cannot be empty")
	}
	doc := newPlanDocument(plan)
	if err := upsert(ctx, r.collection, doc.ID, doc); err != nil {
		return fmt.Errorf("save plan %s: %w", doc.ID, err)
	}
	return nil
}

func (r *mongoPlanRepository) FindByID(ctx context.Context, id string) (domain.SubscriptionPlan, error) {
	if err := repository.RequireID("plan ID", id); err != nil {
		return domain.SubscriptionPlan{}, err
	}
	doc, err := findOne[planDocument](ctx, r.collection, bson.M{"_id": id})
	if err != nil {
		return domain.SubscriptionPlan{}, err
	}
	return doc.toDomain()
}

func (r *mongoPlanRepository) FindAll(ctx context.Context) ([]domain.SubscriptionPlan, error) {
	docs, err := findDocs[planDocument](ctx, r.collection, bson.M{})
	if err != nil {
		return nil, err
	}
	return toDomain(docs, planDocument.toDomain)
}

func (r *mongoPlanRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	return deleteOne(ctx, r.collection, id)
}

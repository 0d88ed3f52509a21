package mongo

import (
	"context"
	"fmt"

	"cloud.google.com/go/civil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/repository"
)

// mongoSubscriptionRepository implements repository.SubscriptionRepository.
// Activity and expiry are evaluated against today's date in the filter, the
// same way the entity computes them.
type mongoSubscriptionRepository struct {
	collection *mongo.Collection
}

// NewMongoSubscriptionRepository creates a Subscription repository backed by MongoDB.
func NewMongoSubscriptionRepository(db *mongo.Database) repository.SubscriptionRepository {
	return &mongoSubscriptionRepository{
		collection: db.Collection(subscriptionCollectionName),
	}
}

func (r *mongoSubscriptionRepository) Save(ctx context.Context, sub *domain.Subscription) error {
	if sub == nil {
		return domain.NewError(domain.ErrInvalidArgument, "subscription cannot be nil")
	}
	doc := newSubscriptionDocument(sub)
	if err := upsert(ctx, r.collection, doc.ID, doc); err != nil {
		return fmt.Errorf("save subscription %s: %w", doc.ID, err)
	}
	return nil
}

func (r *mongoSubscriptionRepository) FindByID(ctx context.Context, id string) (*domain.Subscription, error) {
	if err := repository.RequireID("subscription ID", id); err != nil {
		return nil, err
	}
	doc, err := findOne[subscriptionDocument](ctx, r.collection, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	return doc.toDomain()
}

func (r *mongoSubscriptionRepository) FindByStatus(ctx context.Context, status domain.SubscriptionStatus) ([]*domain.Subscription, error) {
	return r.find(ctx, bson.M{"status": status})
}

func (r *mongoSubscriptionRepository) FindActive(ctx context.Context) ([]*domain.Subscription, error) {
	return r.find(ctx, activeFilter(domain.Today()))
}

func (r *mongoSubscriptionRepository) FindExpired(ctx context.Context) ([]*domain.Subscription, error) {
	return r.find(ctx, expiredFilter(domain.Today()))
}

func (r *mongoSubscriptionRepository) FindExpiringBy(ctx context.Context, date civil.Date) ([]*domain.Subscription, error) {
	return r.find(ctx, expiringByFilter(domain.Today(), date))
}

func (r *mongoSubscriptionRepository) FindStartingAfter(ctx context.Context, date civil.Date) ([]*domain.Subscription, error) {
	return r.find(ctx, bson.M{"startDate": bson.M{"$gt": formatDate(date)}})
}

func (r *mongoSubscriptionRepository) FindEndingBefore(ctx context.Context, date civil.Date) ([]*domain.Subscription, error) {
	return r.find(ctx, bson.M{"endDate": bson.M{"$lt": formatDate(date)}})
}

func (r *mongoSubscriptionRepository) FindCreatedOn(ctx context.Context, date civil.Date) ([]*domain.Subscription, error) {
	return r.find(ctx, bson.M{"createdAt": formatDate(date)})
}

func (r *mongoSubscriptionRepository) FindAll(ctx context.Context) ([]*domain.Subscription, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoSubscriptionRepository) find(ctx context.Context, filter bson.M) ([]*domain.Subscription, error) {
	docs, err := findDocs[subscriptionDocument](ctx, r.collection, filter)
	if err != nil {
		return nil, err
	}
	return toDomain(docs, subscriptionDocument.toDomain)
}

func (r *mongoSubscriptionRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	return exists(ctx, r.collection, bson.M{"_id": id})
}

func (r *mongoSubscriptionRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	return deleteOne(ctx, r.collection, id)
}

func (r *mongoSubscriptionRepository) Count(ctx context.Context) (int, error) {
	return countDocs(ctx, r.collection, bson.M{})
}

func (r *mongoSubscriptionRepository) CountByStatus(ctx context.Context, status domain.SubscriptionStatus) (int, error) {
	return countDocs(ctx, r.collection, bson.M{"status": status})
}

func (r *mongoSubscriptionRepository) CountActive(ctx context.Context) (int, error) {
	return countDocs(ctx, r.collection, activeFilter(domain.Today()))
}

func (r *mongoSubscriptionRepository) CountExpired(ctx context.Context) (int, error) {
	return countDocs(ctx, r.collection, expiredFilter(domain.Today()))
}

func (r *mongoSubscriptionRepository) CountExpiringBy(ctx context.Context, date civil.Date) (int, error) {
	return countDocs(ctx, r.collection, expiringByFilter(domain.Today(), date))
}

func (r *mongoSubscriptionRepository) TotalRevenue(ctx context.Context) (float64, error) {
	return sumAmount(ctx, r.collection, bson.M{})
}

func (r *mongoSubscriptionRepository) ActiveRevenue(ctx context.Context) (float64, error) {
	return sumAmount(ctx, r.collection, activeFilter(domain.Today()))
}

func activeFilter(today civil.Date) bson.M {
	return bson.M{"status": domain.StatusActive, "endDate": bson.M{"$gte": formatDate(today)}}
}

func expiredFilter(today civil.Date) bson.M {
	return bson.M{"endDate": bson.M{"$lt": formatDate(today)}}
}

// expiringByFilter matches subscriptions still running today that end on or before date.
func expiringByFilter(today, date civil.Date) bson.M {
	return bson.M{"endDate": bson.M{"$gte": formatDate(today), "$lte": formatDate(date)}}
}

// EnsureSubscriptionIndexes creates necessary indexes for the subscriptions collection.
func EnsureSubscriptionIndexes(ctx context.Context, collection *mongo.Collection) error {
	return createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "endDate", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: 1}},
			Options: options.Index(),
		},
	})
}

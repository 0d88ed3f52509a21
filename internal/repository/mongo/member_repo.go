package mongo

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/repository"
)

// mongoMemberRepository implements repository.MemberRepository. Each member
// document embeds its current subscription, so subscription queries run
// without a join.
type mongoMemberRepository struct {
	collection *mongo.Collection
}

// NewMongoMemberRepository creates a Member repository backed by MongoDB.
func NewMongoMemberRepository(db *mongo.Database) repository.MemberRepository {
	return &mongoMemberRepository{
		collection: db.Collection(memberCollectionName),
	}
}

func (r *mongoMemberRepository) Save(ctx context.Context, member *domain.Member) error {
	if member == nil {
		return domain.NewError(domain.ErrInvalidArgument, "member cannot be nil")
	}
	doc := newMemberDocument(member)

	taken, err := exists(ctx, r.collection, bson.M{"userId": doc.UserID, "_id": bson.M{"$ne": doc.ID}})
	if err != nil {
		return err
	}
	if taken {
		return repository.DuplicateError("user ID", doc.UserID)
	}

	if err := upsert(ctx, r.collection, doc.ID, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.DuplicateError("user ID", doc.UserID)
		}
		return fmt.Errorf("save member %s: %w", doc.ID, err)
	}
	return nil
}

func (r *mongoMemberRepository) FindByID(ctx context.Context, memberID domain.MemberID) (*domain.Member, error) {
	if memberID.IsZero() {
		return nil, domain.NewError(domain.ErrInvalidArgument, "member ID cannot be empty")
	}
	return r.findOne(ctx, bson.M{"_id": memberID.String()})
}

func (r *mongoMemberRepository) FindByUserID(ctx context.Context, userID string) (*domain.Member, error) {
	if err := repository.RequireID("user ID", userID); err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"userId": userID})
}

func (r *mongoMemberRepository) findOne(ctx context.Context, filter bson.M) (*domain.Member, error) {
	doc, err := findOne[memberDocument](ctx, r.collection, filter)
	if err != nil {
		return nil, err
	}
	return doc.toDomain()
}

func (r *mongoMemberRepository) FindRegisteredAfter(ctx context.Context, date civil.Date) ([]*domain.Member, error) {
	return r.find(ctx, bson.M{"registrationDate": bson.M{"$gt": formatDate(date)}})
}

func (r *mongoMemberRepository) FindRegisteredBefore(ctx context.Context, date civil.Date) ([]*domain.Member, error) {
	return r.find(ctx, bson.M{"registrationDate": bson.M{"$lt": formatDate(date)}})
}

func (r *mongoMemberRepository) FindWithActiveSubscriptions(ctx context.Context) ([]*domain.Member, error) {
	return r.find(ctx, activeSubscriptionFilter(domain.Today()))
}

func (r *mongoMemberRepository) FindWithoutActiveSubscriptions(ctx context.Context) ([]*domain.Member, error) {
	return r.find(ctx, withoutActiveSubscriptionFilter(domain.Today()))
}

func (r *mongoMemberRepository) FindActive(ctx context.Context) ([]*domain.Member, error) {
	return r.find(ctx, bson.M{"active": true})
}

func (r *mongoMemberRepository) FindInactive(ctx context.Context) ([]*domain.Member, error) {
	return r.find(ctx, bson.M{"active": false})
}

func (r *mongoMemberRepository) FindAll(ctx context.Context) ([]*domain.Member, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoMemberRepository) find(ctx context.Context, filter bson.M) ([]*domain.Member, error) {
	docs, err := findDocs[memberDocument](ctx, r.collection, filter)
	if err != nil {
		return nil, err
	}
	return toDomain(docs, memberDocument.toDomain)
}

func (r *mongoMemberRepository) ExistsByID(ctx context.Context, memberID domain.MemberID) (bool, error) {
	return exists(ctx, r.collection, bson.M{"_id": memberID.String()})
}

func (r *mongoMemberRepository) ExistsByUserID(ctx context.Context, userID string) (bool, error) {
	return exists(ctx, r.collection, bson.M{"userId": userID})
}

func (r *mongoMemberRepository) DeleteByID(ctx context.Context, memberID domain.MemberID) (bool, error) {
	if memberID.IsZero() {
		return false, domain.NewError(domain.ErrInvalidArgument, "member ID cannot be empty")
	}
	return deleteOne(ctx, r.collection, memberID.String())
}

func (r *mongoMemberRepository) Count(ctx context.Context) (int, error) {
	return countDocs(ctx, r.collection, bson.M{})
}

func (r *mongoMemberRepository) CountWithActiveSubscriptions(ctx context.Context) (int, error) {
	return countDocs(ctx, r.collection, activeSubscriptionFilter(domain.Today()))
}

func (r *mongoMemberRepository) CountWithoutActiveSubscriptions(ctx context.Context) (int, error) {
	return countDocs(ctx, r.collection, withoutActiveSubscriptionFilter(domain.Today()))
}

func (r *mongoMemberRepository) FindRegisteredInMonth(ctx context.Context, year, month int) ([]*domain.Member, error) {
	if err := repository.ValidateRegistrationMonth(year, month); err != nil {
		return nil, err
	}
	return r.find(ctx, registrationMonthFilter(year, month))
}

func (r *mongoMemberRepository) CountByRegistrationMonth(ctx context.Context, year, month int) (int, error) {
	if err := repository.ValidateRegistrationMonth(year, month); err != nil {
		return 0, err
	}
	return countDocs(ctx, r.collection, registrationMonthFilter(year, month))
}

// activeSubscriptionFilter matches members holding an ACTIVE subscription
// whose end date has not passed on today.
func activeSubscriptionFilter(today civil.Date) bson.M {
	return bson.M{
		"subscription.status":  domain.StatusActive,
		"subscription.endDate": bson.M{"$gte": formatDate(today)},
	}
}

func withoutActiveSubscriptionFilter(today civil.Date) bson.M {
	return bson.M{"$nor": bson.A{activeSubscriptionFilter(today)}}
}

// registrationMonthFilter matches registration dates within [first day, first day of next month).
func registrationMonthFilter(year, month int) bson.M {
	first := civil.Date{Year: year, Month: time.Month(month), Day: 1}
	return bson.M{"registrationDate": bson.M{
		"$gte": formatDate(first),
		"$lt":  formatDate(domain.AddMonths(first, 1)),
	}}
}

// EnsureMemberIndexes creates necessary indexes for the members collection.
func EnsureMemberIndexes(ctx context.Context, collection *mongo.Collection) error {
	return createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("user_id_unique"),
		},
		{
			Keys:    bson.D{{Key: "registrationDate", Value: 1}},
			Options: options.Index(),
		},
		{
			// Index for active-subscription queries
			Keys:    bson.D{{Key: "subscription.status", Value: 1}, {Key: "subscription.endDate", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	})
}

package mongo

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/repository"
)

// mongoUserRepository implements the repository.UserRepository interface using MongoDB.
type mongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new instance of mongoUserRepository.
// It expects a connected *mongo.Database instance.
func NewMongoUserRepository(db *mongo.Database) repository.UserRepository {
	return &mongoUserRepository{
		collection: db.Collection(userCollectionName),
	}
}

// Save upserts the user. Username and email are checked against other users
// first; the unique indexes catch writes that race past the check.
func (r *mongoUserRepository) Save(ctx context.Context, user domain.User) error {
	if user == nil {
		return domain.NewError(domain.ErrInvalidArgument, "user cannot be nil")
	}
	doc, err := newUserDocument(user)
	if err != nil {
		return err
	}

	for _, key := range []struct{ field, value string }{
		{"username", doc.Account.Username},
		{"email", doc.Account.Email},
	} {
		taken, err := exists(ctx, r.collection, bson.M{key.field: key.value, "_id": bson.M{"$ne": doc.ID}})
		if err != nil {
			return err
		}
		if taken {
			return repository.DuplicateError(key.field, key.value)
		}
	}

	if err := upsert(ctx, r.collection, doc.ID, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return userDuplicateError(err, doc)
		}
		return fmt.Errorf("save user %s: %w", doc.ID, err)
	}
	return nil
}

// userDuplicateError names the field of the unique index that rejected doc.
func userDuplicateError(err error, doc userDocument) error {
	if strings.Contains(err.Error(), "email") {
		return repository.DuplicateError("email", doc.Account.Email)
	}
	return repository.DuplicateError("username", doc.Account.Username)
}

func (r *mongoUserRepository) FindByID(ctx context.Context, userID string) (domain.User, error) {
	if err := repository.RequireID("user ID", userID); err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": userID})
}

func (r *mongoUserRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	if err := repository.RequireID("username", username); err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"username": username})
}

// FindByEmail retrieves a user by their email address.
func (r *mongoUserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	if err := repository.RequireID("email", email); err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.M) (domain.User, error) {
	doc, err := findOne[userDocument](ctx, r.collection, filter)
	if err != nil {
		return nil, err
	}
	return doc.toDomain()
}

func (r *mongoUserRepository) FindByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	return r.find(ctx, bson.M{"role": role})
}

func (r *mongoUserRepository) FindActive(ctx context.Context) ([]domain.User, error) {
	return r.find(ctx, bson.M{"active": true})
}

func (r *mongoUserRepository) FindInactive(ctx context.Context) ([]domain.User, error) {
	return r.find(ctx, bson.M{"active": false})
}

func (r *mongoUserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoUserRepository) find(ctx context.Context, filter bson.M) ([]domain.User, error) {
	docs, err := findDocs[userDocument](ctx, r.collection, filter)
	if err != nil {
		return nil, err
	}
	return toDomain(docs, userDocument.toDomain)
}

func (r *mongoUserRepository) ExistsByID(ctx context.Context, userID string) (bool, error) {
	return exists(ctx, r.collection, bson.M{"_id": userID})
}

func (r *mongoUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return exists(ctx, r.collection, bson.M{"username": username})
}

func (r *mongoUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return exists(ctx, r.collection, bson.M{"email": email})
}

func (r *mongoUserRepository) DeleteByID(ctx context.Context, userID string) (bool, error) {
	if err := repository.RequireID("user ID", userID); err != nil {
		return false, err
	}
	return deleteOne(ctx, r.collection, userID)
}

func (r *mongoUserRepository) Count(ctx context.Context) (int, error) {
	return countDocs(ctx, r.collection, bson.M{})
}

func (r *mongoUserRepository) CountByRole(ctx context.Context, role domain.Role) (int, error) {
	return countDocs(ctx, r.collection, bson.M{"role": role})
}

func (r *mongoUserRepository) CountActive(ctx context.Context) (int, error) {
	return countDocs(ctx, r.collection, bson.M{"active": true})
}

func (r *mongoUserRepository) CountInactive(ctx context.Context) (int, error) {
	return countDocs(ctx, r.collection, bson.M{"active": false})
}

// EnsureUserIndexes creates necessary indexes for the users collection.
// Call this once during application startup.
func EnsureUserIndexes(ctx context.Context, collection *mongo.Collection) error {
	return createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("username_unique"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique"),
		},
		{
			Keys:    bson.D{{Key: "role", Value: 1}}, // Index on role for role listings
			Options: options.Index(),
		},
	})
}

package mongo

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/repository"
)

// mongoExerciseRepository implements repository.ExerciseRepository
type mongoExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseRepository creates a new Exercise repository backed by MongoDB.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
	}
}

func (r *mongoExerciseRepository) Save(ctx context.Context, exercise *domain.Exercise) error {
	if exercise == nil {
		return domain.NewError(domain.ErrInvalidArgument, "exercise cannot be nil")
	}
	doc := newExerciseDocument(exercise)
	if err := upsert(ctx, r.collection, doc.ID, doc); err != nil {
		return fmt.Errorf("save exercise %s: %w", doc.ID, err)
	}
	return nil
}

// FindByID retrieves an exercise by its ID.
func (r *mongoExerciseRepository) FindByID(ctx context.Context, id string) (*domain.Exercise, error) {
	if err := repository.RequireID("exercise ID", id); err != nil {
		return nil, err
	}
	doc, err := findOne[exerciseDocument](ctx, r.collection, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	return doc.toDomain()
}

func (r *mongoExerciseRepository) FindByType(ctx context.Context, typ domain.ExerciseType) ([]*domain.Exercise, error) {
	return r.find(ctx, bson.M{"type": typ})
}

func (r *mongoExerciseRepository) FindByDifficulty(ctx context.Context, level domain.DifficultyLevel) ([]*domain.Exercise, error) {
	return r.find(ctx, bson.M{"difficulty": level.Level()})
}

func (r *mongoExerciseRepository) FindSuitableFor(ctx context.Context, level domain.DifficultyLevel) ([]*domain.Exercise, error) {
	return r.find(ctx, bson.M{"difficulty": bson.M{"$lte": level.Level()}})
}

func (r *mongoExerciseRepository) FindByTargetMuscle(ctx context.Context, muscle string) ([]*domain.Exercise, error) {
	filter, ok := containsFilter("targetMuscles", muscle)
	if !ok {
		return []*domain.Exercise{}, nil
	}
	return r.find(ctx, filter)
}

func (r *mongoExerciseRepository) FindByEquipment(ctx context.Context, equipment string) ([]*domain.Exercise, error) {
	filter, ok := containsFilter("equipment", equipment)
	if !ok {
		return []*domain.Exercise{}, nil
	}
	return r.find(ctx, filter)
}

func (r *mongoExerciseRepository) FindActive(ctx context.Context) ([]*domain.Exercise, error) {
	return r.find(ctx, bson.M{"active": true})
}

func (r *mongoExerciseRepository) FindInactive(ctx context.Context) ([]*domain.Exercise, error) {
	return r.find(ctx, bson.M{"active": false})
}

func (r *mongoExerciseRepository) FindAll(ctx context.Context) ([]*domain.Exercise, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoExerciseRepository) SearchByName(ctx context.Context, query string) ([]*domain.Exercise, error) {
	filter, ok := containsFilter("name", query)
	if !ok {
		return []*domain.Exercise{}, nil
	}
	return r.find(ctx, filter)
}

func (r *mongoExerciseRepository) find(ctx context.Context, filter bson.M) ([]*domain.Exercise, error) {
	docs, err := findDocs[exerciseDocument](ctx, r.collection, filter)
	if err != nil {
		return nil, err
	}
	return toDomain(docs, exerciseDocument.toDomain)
}

func (r *mongoExerciseRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	return exists(ctx, r.collection, bson.M{"_id": id})
}

func (r *mongoExerciseRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	return deleteOne(ctx, r.collection, id)
}

func (r *mongoExerciseRepository) Count(ctx context.Context) (int, error) {
	return countDocs(ctx, r.collection, bson.M{})
}

func (r *mongoExerciseRepository) CountByType(ctx context.Context, typ domain.ExerciseType) (int, error) {
	return countDocs(ctx, r.collection, bson.M{"type": typ})
}

func (r *mongoExerciseRepository) CountByDifficulty(ctx context.Context, level domain.DifficultyLevel) (int, error) {
	return countDocs(ctx, r.collection, bson.M{"difficulty": level.Level()})
}

func (r *mongoExerciseRepository) CountActive(ctx context.Context) (int, error) {
	return countDocs(ctx, r.collection, bson.M{"active": true})
}

func (r *mongoExerciseRepository) CountByTargetMuscle(ctx context.Context, muscle string) (int, error) {
	filter, ok := containsFilter("targetMuscles", muscle)
	if !ok {
		return 0, nil
	}
	return countDocs(ctx, r.collection, filter)
}

// containsFilter is a case-insensitive substring match on field. Blank
// needles match nothing, so ok is false for them.
func containsFilter(field, needle string) (filter bson.M, ok bool) {
	if strings.TrimSpace(needle) == "" {
		return nil, false
	}
	return bson.M{field: primitive.Regex{Pattern: regexp.QuoteMeta(needle), Options: "i"}}, true
}

// EnsureExerciseIndexes creates necessary indexes for the exercises collection.
func EnsureExerciseIndexes(ctx context.Context, collection *mongo.Collection) error {
	return createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "type", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "difficulty", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}},
			Options: options.Index().SetName("exercise_text_search"),
		},
	})
}

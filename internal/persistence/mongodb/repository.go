// Package mongodb provides MongoDB-backed persistence for users, exercises
// and per-user exercise logs.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/elorback/boilerplate-project-exercisetracker/internal/domain"
	"github.com/elorback/boilerplate-project-exercisetracker/internal/observability"
)

const (
	usersCollection     = "users"
	exercisesCollection = "exercises"
	logsCollection      = "logs"
)

// Repository implements domain.Repository over three collections.
type Repository struct {
	db *mongo.Database
}

// NewRepository constructs a Repository.
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{db: db}
}

type userDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Username string             `bson:"username"`
}

type exerciseDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      primitive.ObjectID `bson:"userId"`
	Description string             `bson:"description"`
	Duration    int                `bson:"duration"`
	Date        time.Time          `bson:"date"`
}

type logEntryDoc struct {
	Description string `bson:"description"`
	Duration    int    `bson:"duration"`
	Date        string `bson:"date"`
}

type logDoc struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	UserID primitive.ObjectID `bson:"userId"`
	Count  int                `bson:"count"`
	Log    []logEntryDoc      `bson:"log"`
}

// InsertUser stores a new user and returns it with the store-assigned id.
func (r *Repository) InsertUser(ctx context.Context, username string) (*domain.User, error) {
	result, err := r.db.Collection(usersCollection).InsertOne(ctx, userDoc{Username: username})
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert user: unexpected id type %T", result.InsertedID)
	}

	observability.RecordUserCreated()
	return &domain.User{ID: id.Hex(), Username: username}, nil
}

// ListUsers returns every user in natural collection order.
func (r *Repository) ListUsers(ctx context.Context) ([]domain.User, error) {
	cursor, err := r.db.Collection(usersCollection).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []userDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]domain.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, domain.User{ID: doc.ID.Hex(), Username: doc.Username})
	}
	return users, nil
}

// GetUser fetches a user by id hex. A malformed or unknown id yields nil
// without an error; the domain layer owns not-found semantics.
func (r *Repository) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, nil
	}

	var doc userDoc
	err = r.db.Collection(usersCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &domain.User{ID: doc.ID.Hex(), Username: doc.Username}, nil
}

// InsertExercise stores one exercise referencing its user.
func (r *Repository) InsertExercise(ctx context.Context, exercise domain.Exercise) (*domain.Exercise, error) {
	oid, err := primitive.ObjectIDFromHex(exercise.UserID)
	if err != nil {
		return nil, fmt.Errorf("insert exercise: bad user id: %w", err)
	}

	doc := exerciseDoc{
		UserID:      oid,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		Date:        exercise.Date,
	}
	result, err := r.db.Collection(exercisesCollection).InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert exercise: %w", err)
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert exercise: unexpected id type %T", result.InsertedID)
	}

	saved := exercise
	saved.ID = id.Hex()
	return &saved, nil
}

// AppendLogEntry increments the user's log count and pushes one entry in a
// single upsert, creating the log document on first append.
func (r *Repository) AppendLogEntry(ctx context.Context, userID string, entry domain.LogEntry) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("append log entry: bad user id: %w", err)
	}

	update := bson.M{
		"$inc": bson.M{"count": 1},
		"$push": bson.M{"log": logEntryDoc{
			Description: entry.Description,
			Duration:    entry.Duration,
			Date:        entry.Date,
		}},
	}

	_, err = r.db.Collection(logsCollection).UpdateOne(
		ctx,
		bson.M{"userId": oid},
		update,
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("append log entry: %w", err)
	}

	observability.RecordExercisePersisted(time.Now().UTC())
	return nil
}

// GetLog fetches the user's log aggregate. Returns nil without an error when
// the user has no log yet.
func (r *Repository) GetLog(ctx context.Context, userID string) (*domain.ExerciseLog, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, nil
	}

	var doc logDoc
	err = r.db.Collection(logsCollection).FindOne(ctx, bson.M{"userId": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get log: %w", err)
	}

	entries := make([]domain.LogEntry, 0, len(doc.Log))
	for _, entry := range doc.Log {
		entries = append(entries, domain.LogEntry{
			Description: entry.Description,
			Duration:    entry.Duration,
			Date:        entry.Date,
		})
	}

	return &domain.ExerciseLog{
		ID:      doc.ID.Hex(),
		UserID:  doc.UserID.Hex(),
		Count:   doc.Count,
		Entries: entries,
	}, nil
}

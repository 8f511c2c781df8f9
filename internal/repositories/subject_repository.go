package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/craftify/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SubjectRepository defines the interface for subject documents (creations,
// projects, discussions) in MongoDB. There is no cross-document atomicity:
// every write is independently visible once acknowledged.
type SubjectRepository interface {
	CreateSubject(ctx context.Context, subject *models.Subject) error
	GetSubjectByID(ctx context.Context, kind models.SubjectKind, id string) (*models.Subject, error)
	GetSubjectsByAuthor(ctx context.Context, kind models.SubjectKind, authorID string, skip, limit int64) ([]models.Subject, error)
	GetAllSubjects(ctx context.Context, kind models.SubjectKind, skip, limit int64) ([]models.Subject, error)
	DeleteSubject(ctx context.Context, kind models.SubjectKind, id string) error
	AdjustCommentsCount(ctx context.Context, kind models.SubjectKind, id string, delta int) error
	SetCommentsCount(ctx context.Context, kind models.SubjectKind, id string, count int) error
}

// MongoSubjectRepository implements SubjectRepository for MongoDB, one
// collection per subject kind.
type MongoSubjectRepository struct {
	db *mongo.Database
}

// NewMongoSubjectRepository creates a new MongoSubjectRepository
func NewMongoSubjectRepository(db *mongo.Database) *MongoSubjectRepository {
	return &MongoSubjectRepository{db: db}
}

func (r *MongoSubjectRepository) collection(kind models.SubjectKind) *mongo.Collection {
	return r.db.Collection(kind.Collection())
}

// CreateSubject creates a new subject document
func (r *MongoSubjectRepository) CreateSubject(ctx context.Context, subject *models.Subject) error {
	if !subject.Kind.Valid() {
		return fmt.Errorf("unknown subject kind %q", subject.Kind)
	}
	subject.ID = primitive.NewObjectID()
	subject.CreatedAt = time.Now()
	subject.UpdatedAt = time.Now()
	_, err := r.collection(subject.Kind).InsertOne(ctx, subject)
	return err
}

// GetSubjectByID retrieves a subject document by id
func (r *MongoSubjectRepository) GetSubjectByID(ctx context.Context, kind models.SubjectKind, id string) (*models.Subject, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid subject ID format: %w", err)
	}

	var subject models.Subject
	err = r.collection(kind).FindOne(ctx, bson.M{"_id": objID}).Decode(&subject)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &subject, nil
}

// GetSubjectsByAuthor retrieves subjects by author principal with pagination
func (r *MongoSubjectRepository) GetSubjectsByAuthor(ctx context.Context, kind models.SubjectKind, authorID string, skip, limit int64) ([]models.Subject, error) {
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).
		SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection(kind).Find(ctx, bson.M{"author_id": authorID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var subjects []models.Subject
	if err = cursor.All(ctx, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

// GetAllSubjects retrieves all subjects of a kind with pagination
func (r *MongoSubjectRepository) GetAllSubjects(ctx context.Context, kind models.SubjectKind, skip, limit int64) ([]models.Subject, error) {
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).
		SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection(kind).Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var subjects []models.Subject
	if err = cursor.All(ctx, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

// DeleteSubject deletes a subject document by id
func (r *MongoSubjectRepository) DeleteSubject(ctx context.Context, kind models.SubjectKind, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid subject ID format: %w", err)
	}

	res, err := r.collection(kind).DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AdjustCommentsCount shifts the denormalized comments counter by delta
func (r *MongoSubjectRepository) AdjustCommentsCount(ctx context.Context, kind models.SubjectKind, id string, delta int) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid subject ID format: %w", err)
	}
	_, err = r.collection(kind).UpdateOne(ctx, bson.M{"_id": objID},
		bson.M{"$inc": bson.M{"comments_count": delta}})
	return err
}

// SetCommentsCount overwrites the comments counter with a recomputed value
func (r *MongoSubjectRepository) SetCommentsCount(ctx context.Context, kind models.SubjectKind, id string, count int) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid subject ID format: %w", err)
	}
	_, err = r.collection(kind).UpdateOne(ctx, bson.M{"_id": objID},
		bson.M{"$set": bson.M{"comments_count": count}})
	return err
}

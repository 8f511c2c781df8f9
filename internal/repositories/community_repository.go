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

// CommunityRepository defines the interface for community documents and
// membership edges in MongoDB. Membership enumeration is paged so fan-out
// never loads a whole community into memory.
type CommunityRepository interface {
	CreateCommunity(ctx context.Context, community *models.Community) error
	GetCommunityByID(ctx context.Context, id string) (*models.Community, error)
	AddMember(ctx context.Context, communityID string, userID uint) error
	RemoveMember(ctx context.Context, communityID string, userID uint) error
	ListMembers(ctx context.Context, communityID string, skip, limit int64) ([]models.CommunityMember, error)
	CountMembers(ctx context.Context, communityID string) (int64, error)
}

// MongoCommunityRepository implements CommunityRepository for MongoDB
type MongoCommunityRepository struct {
	communities *mongo.Collection
	members     *mongo.Collection
}

// NewMongoCommunityRepository creates a new MongoCommunityRepository
func NewMongoCommunityRepository(db *mongo.Database) *MongoCommunityRepository {
	return &MongoCommunityRepository{
		communities: db.Collection("communities"),
		members:     db.Collection("communityMembers"),
	}
}

// CreateCommunity creates a new community document
func (r *MongoCommunityRepository) CreateCommunity(ctx context.Context, community *models.Community) error {
	community.ID = primitive.NewObjectID()
	community.CreatedAt = time.Now()
	_, err := r.communities.InsertOne(ctx, community)
	return err
}

// GetCommunityByID retrieves a community document by id
func (r *MongoCommunityRepository) GetCommunityByID(ctx context.Context, id string) (*models.Community, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid community ID format: %w", err)
	}

	var community models.Community
	err = r.communities.FindOne(ctx, bson.M{"_id": objID}).Decode(&community)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &community, nil
}

// AddMember inserts a membership edge unless one already exists
func (r *MongoCommunityRepository) AddMember(ctx context.Context, communityID string, userID uint) error {
	filter := bson.M{"community_id": communityID, "user_id": userID}
	update := bson.M{"$setOnInsert": bson.M{
		"community_id": communityID,
		"user_id":      userID,
		"joined_at":    time.Now(),
	}}
	_, err := r.members.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// RemoveMember deletes a membership edge
func (r *MongoCommunityRepository) RemoveMember(ctx context.Context, communityID string, userID uint) error {
	res, err := r.members.DeleteOne(ctx, bson.M{"community_id": communityID, "user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListMembers retrieves one page of membership edges, oldest first, so
// sequential pages cover the community exactly once.
func (r *MongoCommunityRepository) ListMembers(ctx context.Context, communityID string, skip, limit int64) ([]models.CommunityMember, error) {
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).
		SetSort(bson.D{{Key: "joined_at", Value: 1}})
	cursor, err := r.members.Find(ctx, bson.M{"community_id": communityID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var members []models.CommunityMember
	if err = cursor.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// CountMembers counts membership edges for a community
func (r *MongoCommunityRepository) CountMembers(ctx context.Context, communityID string) (int64, error) {
	return r.members.CountDocuments(ctx, bson.M{"community_id": communityID})
}

package repositories

import (
	"context"
	"time"

	"fixmycity-be/config"
	"fixmycity-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoIssueRepository struct{}

// NewIssueRepository returns the MongoDB-backed issue store.
func NewIssueRepository() IssueRepository {
	return &mongoIssueRepository{}
}

func (r *mongoIssueRepository) collection() *mongo.Collection {
	return config.GetCollection("issues")
}

func (r *mongoIssueRepository) Insert(ctx context.Context, issue *models.Issue) error {
	_, err := r.collection().InsertOne(ctx, issue)
	return err
}

func (r *mongoIssueRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Issue, error) {
	var issue models.Issue
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&issue)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

func (r *mongoIssueRepository) find(ctx context.Context, filter bson.M) ([]models.Issue, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection().Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	issues := []models.Issue{}
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

func (r *mongoIssueRepository) FindAll(ctx context.Context) ([]models.Issue, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoIssueRepository) FindByReporter(ctx context.Context, reporter primitive.ObjectID) ([]models.Issue, error) {
	return r.find(ctx, bson.M{"reportedBy": reporter})
}

func (r *mongoIssueRepository) FindByAssignee(ctx context.Context, assignee primitive.ObjectID) ([]models.Issue, error) {
	return r.find(ctx, bson.M{"assignedTo": assignee})
}

// Assign moves a pending issue to assigned. The filter requires the issue to
// still be pending, so of two admins racing on the same issue the first
// writer wins and the second sees ErrNotPending.
func (r *mongoIssueRepository) Assign(ctx context.Context, issueID, crewID primitive.ObjectID) (*models.Issue, error) {
	var updated models.Issue
	err := r.collection().FindOneAndUpdate(ctx,
		bson.M{"_id": issueID, "status": models.StatusPending},
		bson.M{"$set": bson.M{
			"assignedTo": crewID,
			"status":     models.StatusAssigned,
			"updatedAt":  time.Now(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)

	if err == mongo.ErrNoDocuments {
		// Either the issue does not exist or it already left pending.
		count, countErr := r.collection().CountDocuments(ctx, bson.M{"_id": issueID})
		if countErr == nil && count == 0 {
			return nil, ErrNotFound
		}
		return nil, ErrNotPending
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateStatus applies a transition the controller has already validated,
// conditional on the status and assignee it read. A concurrent writer makes
// the filter miss and the caller gets ErrStale with nothing mutated.
func (r *mongoIssueRepository) UpdateStatus(ctx context.Context, issueID, assignee primitive.ObjectID, from, to models.IssueStatus) (*models.Issue, error) {
	var updated models.Issue
	err := r.collection().FindOneAndUpdate(ctx,
		bson.M{"_id": issueID, "status": from, "assignedTo": assignee},
		bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)

	if err == mongo.ErrNoDocuments {
		return nil, ErrStale
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

package repositories

import (
	"context"
	"errors"

	"fixmycity-be/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrNotPending     = errors.New("issue is not pending")
	ErrStale          = errors.New("issue modified concurrently")
)

// UserRepository is the store behind registration, login and role lookups.
type UserRepository interface {
	Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	FindCrews(ctx context.Context) ([]models.User, error)
}

// IssueRepository is the store behind the issue lifecycle. Assign and
// UpdateStatus are conditional single-document updates: the guards they
// carry in their filters are what keeps a lost race from mutating anything.
type IssueRepository interface {
	Insert(ctx context.Context, issue *models.Issue) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Issue, error)
	FindAll(ctx context.Context) ([]models.Issue, error)
	FindByReporter(ctx context.Context, reporter primitive.ObjectID) ([]models.Issue, error)
	FindByAssignee(ctx context.Context, assignee primitive.ObjectID) ([]models.Issue, error)
	Assign(ctx context.Context, issueID, crewID primitive.ObjectID) (*models.Issue, error)
	UpdateStatus(ctx context.Context, issueID, assignee primitive.ObjectID, from, to models.IssueStatus) (*models.Issue, error)
}

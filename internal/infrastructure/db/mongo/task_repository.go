package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nyaaysathi/legal-api/internal/core/domain"
	"github.com/nyaaysathi/legal-api/internal/core/ports"
)

type TaskRepository struct {
	col *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{col: db.Collection(collTasks)}
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	return insertOne(ctx, r.col, "insert task", t)
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var t domain.Task
	if err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, wrapErr("find task", err)
	}
	return &t, nil
}

func (r *TaskRepository) ListByAssignee(ctx context.Context, lawyerID string) ([]*domain.Task, error) {
	return findAll[domain.Task](ctx, r.col, "list tasks", bson.M{"assigned_to": lawyerID}, newestFirst("created_at", 0))
}

func (r *TaskRepository) ListByFirm(ctx context.Context, firmID string) ([]*domain.Task, error) {
	return findAll[domain.Task](ctx, r.col, "list tasks", bson.M{"firm_id": firmID}, newestFirst("created_at", 0))
}

// UpdateStatus writes completed_at alongside status; nil clears it.
func (r *TaskRepository) UpdateStatus(ctx context.Context, id string, status domain.TaskStatus, completedAt *time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{
		"status":       status,
		"completed_at": completedAt,
	}})
	if err != nil {
		return wrapErr("update task", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// insertOne is the plain insert shared by the record repositories.
func insertOne(ctx context.Context, col *mongo.Collection, op string, doc any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := col.InsertOne(ctx, doc); err != nil {
		return wrapErr(op, err)
	}
	return nil
}

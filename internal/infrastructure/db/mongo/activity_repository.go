package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nyaaysathi/legal-api/internal/core/domain"
	"github.com/nyaaysathi/legal-api/internal/core/ports"
)

type WaitlistRepository struct {
	col *mongo.Collection
}

func NewWaitlistRepository(db *mongo.Database) *WaitlistRepository {
	return &WaitlistRepository{col: db.Collection(collWaitlist)}
}

var _ ports.WaitlistRepository = (*WaitlistRepository)(nil)

func (r *WaitlistRepository) Create(ctx context.Context, e *domain.WaitlistEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, e); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateWaitlistEntry
		}
		return wrapErr("insert waitlist entry", err)
	}
	return nil
}

type ChatHistoryRepository struct {
	col *mongo.Collection
}

func NewChatHistoryRepository(db *mongo.Database) *ChatHistoryRepository {
	return &ChatHistoryRepository{col: db.Collection(collChatHistory)}
}

var _ ports.ChatHistoryRepository = (*ChatHistoryRepository)(nil)

func (r *ChatHistoryRepository) Insert(ctx context.Context, e *domain.ChatExchange) error {
	return insertOne(ctx, r.col, "insert chat exchange", e)
}

func (r *ChatHistoryRepository) Recent(ctx context.Context, userID string, limit int) ([]*domain.ChatExchange, error) {
	return findAll[domain.ChatExchange](ctx, r.col, "list chat history", bson.M{"user_id": userID}, newestFirst("timestamp", limit))
}

type CaseUpdateRepository struct {
	col *mongo.Collection
}

func NewCaseUpdateRepository(db *mongo.Database) *CaseUpdateRepository {
	return &CaseUpdateRepository{col: db.Collection(collCaseUpdates)}
}

var _ ports.CaseUpdateRepository = (*CaseUpdateRepository)(nil)

func (r *CaseUpdateRepository) Create(ctx context.Context, u *domain.CaseUpdate) error {
	return insertOne(ctx, r.col, "insert case update", u)
}

func (r *CaseUpdateRepository) ListByClient(ctx context.Context, clientID string) ([]*domain.CaseUpdate, error) {
	return findAll[domain.CaseUpdate](ctx, r.col, "list case updates", bson.M{"client_id": clientID}, newestFirst("created_at", 0))
}

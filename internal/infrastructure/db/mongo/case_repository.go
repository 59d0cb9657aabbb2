package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nyaaysathi/legal-api/internal/core/domain"
	"github.com/nyaaysathi/legal-api/internal/core/ports"
)

type CaseRepository struct {
	col *mongo.Collection
}

func NewCaseRepository(db *mongo.Database) *CaseRepository {
	return &CaseRepository{col: db.Collection(collCases)}
}

var _ ports.CaseRepository = (*CaseRepository)(nil)

func (r *CaseRepository) Create(ctx context.Context, c *domain.Case) error {
	return insertOne(ctx, r.col, "insert case", c)
}

// FindByID filters by owner so foreign cases read as missing.
func (r *CaseRepository) FindByID(ctx context.Context, id, ownerID string) (*domain.Case, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Case
	if err := r.col.FindOne(ctx, bson.M{"id": id, "user_id": ownerID}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCaseNotFound
		}
		return nil, wrapErr("find case", err)
	}
	return &c, nil
}

func (r *CaseRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Case, error) {
	return findAll[domain.Case](ctx, r.col, "list cases", bson.M{"user_id": ownerID}, newestFirst("created_at", 0))
}

type DocumentRepository struct {
	col *mongo.Collection
}

func NewDocumentRepository(db *mongo.Database) *DocumentRepository {
	return &DocumentRepository{col: db.Collection(collDocuments)}
}

var _ ports.DocumentRepository = (*DocumentRepository)(nil)

func (r *DocumentRepository) Create(ctx context.Context, d *domain.Document) error {
	return insertOne(ctx, r.col, "insert document", d)
}

func (r *DocumentRepository) List(ctx context.Context, ownerID, caseID string) ([]*domain.Document, error) {
	filter := bson.M{"user_id": ownerID}
	if caseID != "" {
		filter["case_id"] = caseID
	}
	return findAll[domain.Document](ctx, r.col, "list documents", filter, newestFirst("uploaded_at", 0))
}

package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nyaaysathi/legal-api/internal/core/domain"
	"github.com/nyaaysathi/legal-api/internal/core/ports"
)

// ApplicationRepository keeps one collection per application kind.
type ApplicationRepository struct {
	cols map[domain.ApplicationKind]*mongo.Collection
}

func NewApplicationRepository(db *mongo.Database) *ApplicationRepository {
	return &ApplicationRepository{cols: map[domain.ApplicationKind]*mongo.Collection{
		domain.KindLawyer:     db.Collection(collLawyerApplications),
		domain.KindLawFirm:    db.Collection(collLawFirmApplications),
		domain.KindFirmLawyer: db.Collection(collFirmLawyerApplications),
		domain.KindFirmClient: db.Collection(collFirmClientApplications),
	}}
}

var _ ports.ApplicationRepository = (*ApplicationRepository)(nil)

func (r *ApplicationRepository) collection(kind domain.ApplicationKind) (*mongo.Collection, error) {
	col, ok := r.cols[kind]
	if !ok {
		return nil, domain.NewValidationError("kind", fmt.Sprintf("unknown application kind %q", kind))
	}
	return col, nil
}

// Create relies on the partial unique index over pending applications as
// the last line of duplicate defence.
func (r *ApplicationRepository) Create(ctx context.Context, app *domain.Application) error {
	col, err := r.collection(app.Kind)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := col.InsertOne(ctx, app); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateApplication
		}
		return wrapErr("insert application", err)
	}
	return nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, kind domain.ApplicationKind, id string) (*domain.Application, error) {
	col, err := r.collection(kind)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var app domain.Application
	if err := col.FindOne(ctx, bson.M{"id": id}).Decode(&app); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, wrapErr("find application", err)
	}
	if app.Kind == "" {
		app.Kind = kind
	}
	return &app, nil
}

func (r *ApplicationRepository) HasOpen(ctx context.Context, kind domain.ApplicationKind, email, lawFirmID string) (bool, error) {
	col, err := r.collection(kind)
	if err != nil {
		return false, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"email":  email,
		"status": bson.M{"$in": bson.A{domain.ApplicationPending, domain.ApplicationApproved}},
	}
	if lawFirmID != "" {
		filter["law_firm_id"] = lawFirmID
	}
	n, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return false, wrapErr("count open applications", err)
	}
	return n > 0, nil
}

func (r *ApplicationRepository) List(ctx context.Context, f ports.ApplicationFilter) ([]*domain.Application, error) {
	col, err := r.collection(f.Kind)
	if err != nil {
		return nil, err
	}
	filter := bson.M{}
	if f.LawFirmID != "" {
		filter["law_firm_id"] = f.LawFirmID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	apps, err := findAll[domain.Application](ctx, col, "list applications", filter, newestFirst("created_at", f.Limit))
	if err != nil {
		return nil, err
	}
	for _, a := range apps {
		if a.Kind == "" {
			a.Kind = f.Kind
		}
	}
	return apps, nil
}

// Decide filters on status=pending so that concurrent decisions serialize
// on the document; only the first update matches.
func (r *ApplicationRepository) Decide(ctx context.Context, kind domain.ApplicationKind, id string, status domain.ApplicationStatus, decision domain.Decision, identityID string) error {
	col, err := r.collection(kind)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"status": status, "decision": decision}
	if identityID != "" {
		set["identity_id"] = identityID
	}
	res, err := col.UpdateOne(ctx,
		bson.M{"id": id, "status": domain.ApplicationPending},
		bson.M{"$set": set},
	)
	if err != nil {
		return wrapErr("decide application", err)
	}
	if res.MatchedCount == 1 {
		return nil
	}

	n, err := col.CountDocuments(ctx, bson.M{"id": id})
	if err != nil {
		return wrapErr("decide application", err)
	}
	if n == 0 {
		return domain.ErrApplicationNotFound
	}
	return domain.ErrAlreadyDecided
}

func (r *ApplicationRepository) Revert(ctx context.Context, kind domain.ApplicationKind, id string) error {
	col, err := r.collection(kind)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := col.UpdateOne(ctx,
		bson.M{"id": id, "status": domain.ApplicationApproved},
		bson.M{
			"$set":   bson.M{"status": domain.ApplicationPending},
			"$unset": bson.M{"decision": "", "identity_id": ""},
		},
	)
	if err != nil {
		return wrapErr("revert application", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrApplicationNotFound
	}
	return nil
}

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

// identityDocument is the stored shape of an identity. Older records keep
// the bcrypt hash under "password", may lack "is_active", and hold firm
// lawyer and firm client details as top-level fields instead of a nested
// profile.
type identityDocument struct {
	domain.Identity `bson:",inline"`
	LegacyPassword  string `bson:"password,omitempty"`
	Active          *bool  `bson:"is_active,omitempty"`

	Legacy legacyProfile `bson:",inline"`
}

type legacyProfile struct {
	FirmID             string `bson:"firm_id,omitempty"`
	FirmName           string `bson:"firm_name,omitempty"`
	Specialization     string `bson:"specialization,omitempty"`
	ExperienceYears    int    `bson:"experience_years,omitempty"`
	LawFirmID          string `bson:"law_firm_id,omitempty"`
	LawFirmName        string `bson:"law_firm_name,omitempty"`
	AssignedLawyerID   string `bson:"assigned_lawyer_id,omitempty"`
	AssignedLawyerName string `bson:"assigned_lawyer_name,omitempty"`
	CompanyName        string `bson:"company_name,omitempty"`
	CaseType           string `bson:"case_type,omitempty"`
	CaseDescription    string `bson:"case_description,omitempty"`
	Status             string `bson:"status,omitempty"`
	PaymentStatus      string `bson:"payment_status,omitempty"`
}

func newIdentityDocument(i *domain.Identity) identityDocument {
	active := i.IsActive
	return identityDocument{Identity: *i, Active: &active}
}

func (d *identityDocument) toDomain(role domain.Role) *domain.Identity {
	ident := d.Identity
	ident.PasswordHash = storedPasswordHash(d)
	ident.IsActive = d.Active == nil || *d.Active
	if ident.Role == "" {
		ident.Role = role
	}
	d.Legacy.applyTo(&ident)
	return &ident
}

// applyTo fills profile fields the nested document leaves empty. Nested
// values win, so updates written since the record was created are kept.
func (l legacyProfile) applyTo(ident *domain.Identity) {
	switch ident.Role {
	case domain.RoleFirmLawyer:
		if l.FirmID == "" && l.FirmName == "" {
			return
		}
		if ident.FirmLawyer == nil {
			ident.FirmLawyer = &domain.FirmLawyerProfile{}
		}
		p := ident.FirmLawyer
		fill(&p.FirmID, l.FirmID)
		fill(&p.FirmName, l.FirmName)
		fill(&p.Specialization, l.Specialization)
		if p.ExperienceYears == 0 {
			p.ExperienceYears = l.ExperienceYears
		}
	case domain.RoleFirmClient:
		if l.LawFirmID == "" && l.LawFirmName == "" && l.AssignedLawyerID == "" {
			return
		}
		if ident.FirmClient == nil {
			ident.FirmClient = &domain.FirmClientProfile{}
		}
		p := ident.FirmClient
		fill(&p.LawFirmID, l.LawFirmID)
		fill(&p.LawFirmName, l.LawFirmName)
		fill(&p.AssignedLawyerID, l.AssignedLawyerID)
		fill(&p.AssignedLawyerName, l.AssignedLawyerName)
		fill(&p.CompanyName, l.CompanyName)
		fill(&p.CaseType, l.CaseType)
		fill(&p.CaseDescription, l.CaseDescription)
		fill(&p.Status, l.Status)
		fill(&p.PaymentStatus, l.PaymentStatus)
	}
}

func fill(dst *string, legacy string) {
	if *dst == "" {
		*dst = legacy
	}
}

// storedPasswordHash is the single place that knows about legacy field names.
func storedPasswordHash(d *identityDocument) string {
	if d.PasswordHash != "" {
		return d.PasswordHash
	}
	return d.LegacyPassword
}

// IdentityRepository stores firm clients in firm_clients and every other
// role in users.
type IdentityRepository struct {
	users       *mongo.Collection
	firmClients *mongo.Collection
}

func NewIdentityRepository(db *mongo.Database) *IdentityRepository {
	return &IdentityRepository{
		users:       db.Collection(collUsers),
		firmClients: db.Collection(collFirmClients),
	}
}

var _ ports.IdentityRepository = (*IdentityRepository)(nil)

func (r *IdentityRepository) collection(role domain.Role) *mongo.Collection {
	if role == domain.RoleFirmClient {
		return r.firmClients
	}
	return r.users
}

// scoped adds the role to filter. Firm client records predate the
// user_type field, so their collection alone scopes them.
func scoped(filter bson.M, role domain.Role) bson.M {
	if role != domain.RoleFirmClient {
		filter["user_type"] = role
	}
	return filter
}

func (r *IdentityRepository) Create(ctx context.Context, i *domain.Identity) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.collection(i.Role).InsertOne(ctx, newIdentityDocument(i))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateIdentity
		}
		return wrapErr("insert identity", err)
	}
	return nil
}

func (r *IdentityRepository) FindByEmail(ctx context.Context, email string, role domain.Role) (*domain.Identity, error) {
	return r.findOne(ctx, scoped(bson.M{"email": email}, role), role)
}

func (r *IdentityRepository) FindByID(ctx context.Context, id string, role domain.Role) (*domain.Identity, error) {
	return r.findOne(ctx, scoped(bson.M{"id": id}, role), role)
}

func (r *IdentityRepository) findOne(ctx context.Context, filter bson.M, role domain.Role) (*domain.Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc identityDocument
	if err := r.collection(role).FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, wrapErr("find identity", err)
	}
	return doc.toDomain(role), nil
}

// identityListFilter matches the firm in both the nested and the legacy
// top-level layout.
func identityListFilter(f ports.IdentityFilter) bson.M {
	filter := scoped(bson.M{}, f.Role)
	if f.FirmID == "" {
		return filter
	}
	switch f.Role {
	case domain.RoleFirmLawyer:
		filter["$or"] = bson.A{bson.M{"firm_lawyer.firm_id": f.FirmID}, bson.M{"firm_id": f.FirmID}}
	case domain.RoleFirmClient:
		filter["$or"] = bson.A{bson.M{"firm_client.law_firm_id": f.FirmID}, bson.M{"law_firm_id": f.FirmID}}
	}
	return filter
}

func (r *IdentityRepository) List(ctx context.Context, f ports.IdentityFilter) ([]*domain.Identity, error) {
	filter := identityListFilter(f)
	docs, err := findAll[identityDocument](ctx, r.collection(f.Role), "list identities", filter, newestFirst("created_at", f.Limit))
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Identity, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain(f.Role))
	}
	return out, nil
}

func (r *IdentityRepository) SetActive(ctx context.Context, id string, role domain.Role, active bool) error {
	return r.update(ctx, "set identity active", role, id, bson.M{"is_active": active})
}

func (r *IdentityRepository) AssignLawyer(ctx context.Context, clientID, lawyerID, lawyerName string) error {
	return r.update(ctx, "assign lawyer", domain.RoleFirmClient, clientID, bson.M{
		"firm_client.assigned_lawyer_id":   lawyerID,
		"firm_client.assigned_lawyer_name": lawyerName,
	})
}

func (r *IdentityRepository) RecordLogin(ctx context.Context, id string, role domain.Role, at time.Time) error {
	return r.update(ctx, "record login", role, id, bson.M{"last_login": at.UTC()})
}

func (r *IdentityRepository) update(ctx context.Context, op string, role domain.Role, id string, set bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.collection(role).UpdateOne(ctx, scoped(bson.M{"id": id}, role), bson.M{"$set": set})
	if err != nil {
		return wrapErr(op, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrIdentityNotFound
	}
	return nil
}

func (r *IdentityRepository) Delete(ctx context.Context, id string, role domain.Role) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.collection(role).DeleteOne(ctx, scoped(bson.M{"id": id}, role))
	if err != nil {
		return wrapErr("delete identity", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrIdentityNotFound
	}
	return nil
}

package domain

import (
	"strings"
	"time"
)

// ApplicationKind identifies which identity an application proposes.
type ApplicationKind string

const (
	KindLawyer     ApplicationKind = "lawyer"
	KindLawFirm    ApplicationKind = "law_firm"
	KindFirmLawyer ApplicationKind = "firm_lawyer"
	KindFirmClient ApplicationKind = "firm_client"
)

// Role returns the identity role an approved application materializes.
func (k ApplicationKind) Role() Role {
	switch k {
	case KindLawyer:
		return RoleLawyer
	case KindLawFirm:
		return RoleLawFirm
	case KindFirmLawyer:
		return RoleFirmLawyer
	case KindFirmClient:
		return RoleFirmClient
	}
	return ""
}

// Valid reports whether k is a known kind.
func (k ApplicationKind) Valid() bool { return k.Role() != "" }

// FirmScoped reports whether duplicate checks and manager decisions for this
// kind are scoped to a single law firm.
func (k ApplicationKind) FirmScoped() bool {
	return k == KindFirmLawyer || k == KindFirmClient
}

// DedupScope returns the firm id that duplicate checks for a are scoped to.
// Only firm client applications are deduplicated per firm.
func (a *Application) DedupScope() string {
	if a.Kind == KindFirmClient {
		return a.LawFirmID
	}
	return ""
}

// ApplicationStatus is the lifecycle state of an application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// validDecisions lists the only transitions an application may take.
// Decided applications are terminal.
var validDecisions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationPending: {ApplicationApproved, ApplicationRejected},
}

// CanTransitionTo reports whether a decision from s to next is valid.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	for _, allowed := range validDecisions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Decision records who decided an application and when.
type Decision struct {
	ReviewedBy      string    `json:"reviewed_by" bson:"reviewed_by"`
	ReviewedAt      time.Time `json:"reviewed_at" bson:"reviewed_at"`
	RejectionReason string    `json:"rejection_reason,omitempty" bson:"rejection_reason,omitempty"`
}

type LawyerApplicant struct {
	FullName      string `json:"name" bson:"name"`
	Phone         string `json:"phone" bson:"phone"`
	LawyerProfile `bson:",inline"`
}

type LawFirmApplicant struct {
	ContactName    string `json:"contact_name" bson:"contact_name"`
	ContactPhone   string `json:"contact_phone" bson:"contact_phone"`
	LawFirmProfile `bson:",inline"`
}

type FirmLawyerApplicant struct {
	FullName          string `json:"full_name" bson:"full_name"`
	Phone             string `json:"phone" bson:"phone"`
	FirmLawyerProfile `bson:",inline"`
}

type FirmClientApplicant struct {
	FullName          string `json:"full_name" bson:"full_name"`
	Phone             string `json:"phone" bson:"phone"`
	FirmClientProfile `bson:",inline"`
}

// Application is a proposal for a new identity. Exactly one payload matching
// Kind is set.
type Application struct {
	ID           string            `json:"id" bson:"id"`
	Kind         ApplicationKind   `json:"kind" bson:"kind"`
	Email        string            `json:"email" bson:"email"`
	PasswordHash string            `json:"-" bson:"password_hash,omitempty"`
	Status       ApplicationStatus `json:"status" bson:"status"`
	CreatedAt    time.Time         `json:"created_at" bson:"created_at"`
	Decision     *Decision         `json:"decision,omitempty" bson:"decision,omitempty"`
	// IdentityID points at the identity created on approval.
	IdentityID string `json:"identity_id,omitempty" bson:"identity_id,omitempty"`
	// LawFirmID scopes firm lawyer and firm client applications.
	LawFirmID string `json:"law_firm_id,omitempty" bson:"law_firm_id,omitempty"`

	Lawyer     *LawyerApplicant     `json:"lawyer,omitempty" bson:"lawyer,omitempty"`
	LawFirm    *LawFirmApplicant    `json:"law_firm,omitempty" bson:"law_firm,omitempty"`
	FirmLawyer *FirmLawyerApplicant `json:"firm_lawyer,omitempty" bson:"firm_lawyer,omitempty"`
	FirmClient *FirmClientApplicant `json:"firm_client,omitempty" bson:"firm_client,omitempty"`
}

// Validate checks the envelope and that exactly the payload for Kind is set.
func (a *Application) Validate() error {
	if !a.Kind.Valid() {
		return NewValidationError("kind", "is not a known application kind")
	}
	if strings.TrimSpace(a.Email) == "" {
		return NewValidationError("email", "is required")
	}

	set := 0
	for _, present := range []bool{a.Lawyer != nil, a.LawFirm != nil, a.FirmLawyer != nil, a.FirmClient != nil} {
		if present {
			set++
		}
	}
	matches := (a.Kind == KindLawyer && a.Lawyer != nil) ||
		(a.Kind == KindLawFirm && a.LawFirm != nil) ||
		(a.Kind == KindFirmLawyer && a.FirmLawyer != nil) ||
		(a.Kind == KindFirmClient && a.FirmClient != nil)
	if set != 1 || !matches {
		return NewValidationError("payload", "must match the application kind")
	}

	if a.Kind.FirmScoped() && a.LawFirmID == "" {
		return NewValidationError("law_firm_id", "is required")
	}
	return nil
}

// NewIdentity synthesizes the identity an approval creates, reusing the
// stored password hash verbatim.
func (a *Application) NewIdentity(id string, now time.Time) *Identity {
	ident := &Identity{
		ID:           id,
		Email:        a.Email,
		Role:         a.Kind.Role(),
		PasswordHash: a.PasswordHash,
		IsActive:     true,
		CreatedAt:    now,
	}

	switch a.Kind {
	case KindLawyer:
		profile := a.Lawyer.LawyerProfile
		profile.Rating = 4.5
		profile.IsVerified = true
		ident.FullName, ident.Phone = a.Lawyer.FullName, a.Lawyer.Phone
		ident.Lawyer = &profile
	case KindLawFirm:
		profile := a.LawFirm.LawFirmProfile
		ident.FullName, ident.Phone = a.LawFirm.ContactName, a.LawFirm.ContactPhone
		ident.LawFirm = &profile
	case KindFirmLawyer:
		profile := a.FirmLawyer.FirmLawyerProfile
		profile.FirmID = a.LawFirmID
		if profile.Rating == 0 {
			profile.Rating = 4.5
		}
		ident.FullName, ident.Phone = a.FirmLawyer.FullName, a.FirmLawyer.Phone
		ident.FirmLawyer = &profile
	case KindFirmClient:
		profile := a.FirmClient.FirmClientProfile
		profile.LawFirmID = a.LawFirmID
		profile.Status = "active"
		ident.FullName, ident.Phone = a.FirmClient.FullName, a.FirmClient.Phone
		ident.FirmClient = &profile
	}
	return ident
}

// ApplicationStats counts applications per status.
type ApplicationStats struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// CountApplications tallies apps by status.
func CountApplications(apps []*Application) ApplicationStats {
	var s ApplicationStats
	for _, a := range apps {
		switch a.Status {
		case ApplicationPending:
			s.Pending++
		case ApplicationApproved:
			s.Approved++
		case ApplicationRejected:
			s.Rejected++
		}
	}
	return s
}

// TemporaryPassword derives the one-time password handed to an approved firm
// client: "Client@" followed by the first four characters of the email
// local-part and of the application id.
func TemporaryPassword(email, applicationID string) string {
	local, _, _ := strings.Cut(email, "@")
	return "Client@" + firstRunes(local, 4) + firstRunes(applicationID, 4)
}

func firstRunes(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}

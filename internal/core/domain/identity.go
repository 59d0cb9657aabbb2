package domain

import (
	"strings"
	"time"
)

// Role is the account kind a principal authenticates as.
type Role string

const (
	RoleClient     Role = "client"
	RoleLawyer     Role = "lawyer"
	RoleLawFirm    Role = "law_firm"
	RoleFirmLawyer Role = "firm_lawyer"
	RoleFirmClient Role = "firm_client"
	RoleAdmin      Role = "admin"
)

// IsIdentityRole reports whether r names a persisted account kind. Admin is
// a configured credential pair, not an identity.
func (r Role) IsIdentityRole() bool {
	switch r {
	case RoleClient, RoleLawyer, RoleLawFirm, RoleFirmLawyer, RoleFirmClient:
		return true
	}
	return false
}

// LawyerProfile holds the public profile of an independent lawyer.
type LawyerProfile struct {
	Photo            string   `json:"photo,omitempty" bson:"photo,omitempty"`
	BarCouncilNumber string   `json:"bar_council_number" bson:"bar_council_number"`
	Specialization   string   `json:"specialization" bson:"specialization"`
	Experience       int      `json:"experience" bson:"experience"`
	CasesWon         int      `json:"cases_won" bson:"cases_won"`
	State            string   `json:"state" bson:"state"`
	City             string   `json:"city" bson:"city"`
	Court            string   `json:"court" bson:"court"`
	Education        string   `json:"education" bson:"education"`
	Languages        []string `json:"languages" bson:"languages"`
	FeeRange         string   `json:"fee_range" bson:"fee_range"`
	Bio              string   `json:"bio" bson:"bio"`
	Rating           float64  `json:"rating,omitempty" bson:"rating,omitempty"`
	IsVerified       bool     `json:"is_verified" bson:"is_verified"`
}

// LawFirmProfile holds the registration details of a law firm.
type LawFirmProfile struct {
	FirmName           string   `json:"firm_name" bson:"firm_name"`
	RegistrationNumber string   `json:"registration_number,omitempty" bson:"registration_number,omitempty"`
	EstablishedYear    int      `json:"established_year,omitempty" bson:"established_year,omitempty"`
	Website            string   `json:"website,omitempty" bson:"website,omitempty"`
	ContactDesignation string   `json:"contact_designation,omitempty" bson:"contact_designation,omitempty"`
	Address            string   `json:"address,omitempty" bson:"address,omitempty"`
	City               string   `json:"city,omitempty" bson:"city,omitempty"`
	State              string   `json:"state,omitempty" bson:"state,omitempty"`
	Pincode            string   `json:"pincode,omitempty" bson:"pincode,omitempty"`
	PracticeAreas      []string `json:"practice_areas,omitempty" bson:"practice_areas,omitempty"`
	TotalLawyers       int      `json:"total_lawyers,omitempty" bson:"total_lawyers,omitempty"`
	TotalStaff         int      `json:"total_staff,omitempty" bson:"total_staff,omitempty"`
	Description        string   `json:"description,omitempty" bson:"description,omitempty"`
	Achievements       string   `json:"achievements,omitempty" bson:"achievements,omitempty"`
}

// FirmLawyerProfile links a lawyer to the firm that employs them.
type FirmLawyerProfile struct {
	FirmID           string   `json:"firm_id" bson:"firm_id"`
	FirmName         string   `json:"firm_name" bson:"firm_name"`
	Specialization   string   `json:"specialization" bson:"specialization"`
	ExperienceYears  int      `json:"experience_years" bson:"experience_years"`
	BarCouncilNumber string   `json:"bar_council_number,omitempty" bson:"bar_council_number,omitempty"`
	Languages        []string `json:"languages,omitempty" bson:"languages,omitempty"`
	Rating           float64  `json:"rating,omitempty" bson:"rating,omitempty"`
}

// FirmClientProfile describes a client retained by a law firm.
type FirmClientProfile struct {
	CompanyName        string   `json:"company_name,omitempty" bson:"company_name,omitempty"`
	CaseType           string   `json:"case_type" bson:"case_type"`
	CaseDescription    string   `json:"case_description" bson:"case_description"`
	LawFirmID          string   `json:"law_firm_id" bson:"law_firm_id"`
	LawFirmName        string   `json:"law_firm_name" bson:"law_firm_name"`
	AssignedLawyerID   string   `json:"assigned_lawyer_id,omitempty" bson:"assigned_lawyer_id,omitempty"`
	AssignedLawyerName string   `json:"assigned_lawyer_name,omitempty" bson:"assigned_lawyer_name,omitempty"`
	Status             string   `json:"status" bson:"status"`
	PaymentStatus      string   `json:"payment_status,omitempty" bson:"payment_status,omitempty"`
	PaymentAmount      *float64 `json:"payment_amount,omitempty" bson:"payment_amount,omitempty"`
}

// Identity is a persisted account usable for login, scoped by role. The same
// email may hold one identity per role.
type Identity struct {
	ID       string `json:"id" bson:"id"`
	Email    string `json:"email" bson:"email"`
	FullName string `json:"full_name" bson:"full_name"`
	Role     Role   `json:"user_type" bson:"user_type"`
	Phone    string `json:"phone,omitempty" bson:"phone,omitempty"`

	PasswordHash string `json:"-" bson:"password_hash,omitempty"`
	// TempPasswordHash is set when a firm client is approved by a manager.
	TempPasswordHash string `json:"-" bson:"temp_password_hash,omitempty"`

	// IsActive is only enforced for firm lawyers.
	IsActive  bool       `json:"is_active" bson:"-"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty" bson:"last_login,omitempty"`

	Lawyer     *LawyerProfile     `json:"lawyer,omitempty" bson:"lawyer,omitempty"`
	LawFirm    *LawFirmProfile    `json:"law_firm,omitempty" bson:"law_firm,omitempty"`
	FirmLawyer *FirmLawyerProfile `json:"firm_lawyer,omitempty" bson:"firm_lawyer,omitempty"`
	FirmClient *FirmClientProfile `json:"firm_client,omitempty" bson:"firm_client,omitempty"`
}

// FirmID returns the id of the law firm this identity belongs to, if any.
// A law firm belongs to itself.
func (i *Identity) FirmID() string {
	switch {
	case i.Role == RoleLawFirm:
		return i.ID
	case i.FirmLawyer != nil:
		return i.FirmLawyer.FirmID
	case i.FirmClient != nil:
		return i.FirmClient.LawFirmID
	}
	return ""
}

// DisplayFirmName returns the firm name for a law firm identity.
func (i *Identity) DisplayFirmName() string {
	if i.LawFirm != nil && i.LawFirm.FirmName != "" {
		return i.LawFirm.FirmName
	}
	return i.FullName
}

// NormalizeEmail lowercases and trims an email address for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

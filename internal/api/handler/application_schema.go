package handler

import "github.com/nyaaysathi/legal-api/internal/core/domain"

// --- Request / Response types ---

type lawyerApplicationRequest struct {
	Name             string   `json:"name"               validate:"required"`
	Email            string   `json:"email"              validate:"required,email"`
	Phone            string   `json:"phone"              validate:"required"`
	Password         string   `json:"password"           validate:"required,min=6"`
	Photo            string   `json:"photo"`
	BarCouncilNumber string   `json:"bar_council_number" validate:"required"`
	Specialization   string   `json:"specialization"     validate:"required"`
	Experience       int      `json:"experience"         validate:"gte=0"`
	CasesWon         int      `json:"cases_won"          validate:"gte=0"`
	State            string   `json:"state"              validate:"required"`
	City             string   `json:"city"               validate:"required"`
	Court            string   `json:"court"              validate:"required"`
	Education        string   `json:"education"          validate:"required"`
	Languages        []string `json:"languages"          validate:"required,min=1"`
	FeeRange         string   `json:"fee_range"          validate:"required"`
	Bio              string   `json:"bio"                validate:"required"`
}

func (r lawyerApplicationRequest) toDomain() *domain.Application {
	return &domain.Application{
		Kind:  domain.KindLawyer,
		Email: r.Email,
		Lawyer: &domain.LawyerApplicant{
			FullName: r.Name,
			Phone:    r.Phone,
			LawyerProfile: domain.LawyerProfile{
				Photo:            r.Photo,
				BarCouncilNumber: r.BarCouncilNumber,
				Specialization:   r.Specialization,
				Experience:       r.Experience,
				CasesWon:         r.CasesWon,
				State:            r.State,
				City:             r.City,
				Court:            r.Court,
				Education:        r.Education,
				Languages:        r.Languages,
				FeeRange:         r.FeeRange,
				Bio:              r.Bio,
			},
		},
	}
}

type lawFirmApplicationRequest struct {
	FirmName           string   `json:"firm_name"           validate:"required"`
	RegistrationNumber string   `json:"registration_number" validate:"required"`
	EstablishedYear    int      `json:"established_year"    validate:"required,gt=0"`
	Website            string   `json:"website"`
	ContactName        string   `json:"contact_name"        validate:"required"`
	ContactEmail       string   `json:"contact_email"       validate:"required,email"`
	ContactPhone       string   `json:"contact_phone"       validate:"required"`
	ContactDesignation string   `json:"contact_designation"`
	Password           string   `json:"password"            validate:"required,min=6"`
	Address            string   `json:"address"`
	City               string   `json:"city"                validate:"required"`
	State              string   `json:"state"               validate:"required"`
	Pincode            string   `json:"pincode"`
	PracticeAreas      []string `json:"practice_areas"      validate:"required,min=1"`
	TotalLawyers       int      `json:"total_lawyers"       validate:"gte=0"`
	TotalStaff         int      `json:"total_staff"         validate:"gte=0"`
	Description        string   `json:"description"         validate:"required"`
	Achievements       string   `json:"achievements"`
}

func (r lawFirmApplicationRequest) toDomain() *domain.Application {
	return &domain.Application{
		Kind:  domain.KindLawFirm,
		Email: r.ContactEmail,
		LawFirm: &domain.LawFirmApplicant{
			ContactName:  r.ContactName,
			ContactPhone: r.ContactPhone,
			LawFirmProfile: domain.LawFirmProfile{
				FirmName:           r.FirmName,
				RegistrationNumber: r.RegistrationNumber,
				EstablishedYear:    r.EstablishedYear,
				Website:            r.Website,
				ContactDesignation: r.ContactDesignation,
				Address:            r.Address,
				City:               r.City,
				State:              r.State,
				Pincode:            r.Pincode,
				PracticeAreas:      r.PracticeAreas,
				TotalLawyers:       r.TotalLawyers,
				TotalStaff:         r.TotalStaff,
				Description:        r.Description,
				Achievements:       r.Achievements,
			},
		},
	}
}

type firmLawyerApplicationRequest struct {
	FullName         string   `json:"full_name"          validate:"required"`
	Email            string   `json:"email"              validate:"required,email"`
	Password         string   `json:"password"           validate:"required,min=6"`
	Phone            string   `json:"phone"              validate:"required"`
	LawFirmID        string   `json:"law_firm_id"        validate:"required"`
	FirmName         string   `json:"firm_name"`
	Specialization   string   `json:"specialization"     validate:"required"`
	ExperienceYears  int      `json:"experience_years"   validate:"gte=0"`
	BarCouncilNumber string   `json:"bar_council_number"`
	Languages        []string `json:"languages"`
}

func (r firmLawyerApplicationRequest) toDomain() *domain.Application {
	return &domain.Application{
		Kind:      domain.KindFirmLawyer,
		Email:     r.Email,
		LawFirmID: r.LawFirmID,
		FirmLawyer: &domain.FirmLawyerApplicant{
			FullName: r.FullName,
			Phone:    r.Phone,
			FirmLawyerProfile: domain.FirmLawyerProfile{
				FirmID:           r.LawFirmID,
				FirmName:         r.FirmName,
				Specialization:   r.Specialization,
				ExperienceYears:  r.ExperienceYears,
				BarCouncilNumber: r.BarCouncilNumber,
				Languages:        r.Languages,
			},
		},
	}
}

// firmClientApplicationRequest takes an optional password; approved clients
// always receive a temporary one.
type firmClientApplicationRequest struct {
	FullName        string `json:"full_name"        validate:"required"`
	Email           string `json:"email"            validate:"required,email"`
	Phone           string `json:"phone"            validate:"required"`
	Password        string `json:"password"         validate:"omitempty,min=6"`
	CompanyName     string `json:"company_name"`
	CaseType        string `json:"case_type"        validate:"required"`
	CaseDescription string `json:"case_description" validate:"required"`
	LawFirmID       string `json:"law_firm_id"      validate:"required"`
	LawFirmName     string `json:"law_firm_name"    validate:"required"`
}

func (r firmClientApplicationRequest) toDomain() *domain.Application {
	return &domain.Application{
		Kind:      domain.KindFirmClient,
		Email:     r.Email,
		LawFirmID: r.LawFirmID,
		FirmClient: &domain.FirmClientApplicant{
			FullName: r.FullName,
			Phone:    r.Phone,
			FirmClientProfile: domain.FirmClientProfile{
				CompanyName:     r.CompanyName,
				CaseType:        r.CaseType,
				CaseDescription: r.CaseDescription,
				LawFirmID:       r.LawFirmID,
				LawFirmName:     r.LawFirmName,
			},
		},
	}
}

type rejectRequest struct {
	Reason          string `json:"reason"`
	RejectionReason string `json:"rejection_reason"`
}

func (r rejectRequest) reason() string {
	if r.RejectionReason != "" {
		return r.RejectionReason
	}
	return r.Reason
}

type decisionStatusRequest struct {
	Status           string `json:"status"             validate:"required,oneof=approved rejected"`
	RejectionReason  string `json:"rejection_reason"`
	AssignedLawyerID string `json:"assigned_lawyer_id"`
}

type submissionResponse struct {
	Message       string                   `json:"message"`
	ApplicationID string                   `json:"application_id"`
	Status        domain.ApplicationStatus `json:"status"`
}

type applicationListResponse struct {
	Applications []*domain.Application   `json:"applications"`
	Stats        domain.ApplicationStats `json:"stats"`
}

type decisionResponse struct {
	Message      string              `json:"message"`
	Application  *domain.Application `json:"application"`
	IdentityID   string              `json:"identity_id,omitempty"`
	ClientID     string              `json:"client_id,omitempty"`
	TempPassword string              `json:"temp_password,omitempty"`
}

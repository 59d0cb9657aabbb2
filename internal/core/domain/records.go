package domain

import "time"

// Case is a legal matter tracked by its owner.
type Case struct {
	ID          string    `json:"id" bson:"id"`
	UserID      string    `json:"user_id" bson:"user_id"`
	Title       string    `json:"title" bson:"title"`
	CaseNumber  string    `json:"case_number" bson:"case_number"`
	Description string    `json:"description" bson:"description"`
	Status      string    `json:"status" bson:"status"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// Document is metadata for a file attached to a case. FileURL is opaque.
type Document struct {
	ID         string    `json:"id" bson:"id"`
	CaseID     string    `json:"case_id" bson:"case_id"`
	UserID     string    `json:"user_id" bson:"user_id"`
	Title      string    `json:"title" bson:"title"`
	FileURL    string    `json:"file_url" bson:"file_url"`
	FileType   string    `json:"file_type" bson:"file_type"`
	UploadedAt time.Time `json:"uploaded_at" bson:"uploaded_at"`
}

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// Booking is a consultation a client requests with a lawyer.
type Booking struct {
	ID          string        `json:"id" bson:"id"`
	ClientID    string        `json:"client_id" bson:"client_id"`
	LawyerID    string        `json:"lawyer_id" bson:"lawyer_id"`
	Date        string        `json:"date" bson:"date"`
	Time        string        `json:"time" bson:"time"`
	Description string        `json:"description" bson:"description"`
	Status      BookingStatus `json:"status" bson:"status"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
}

type WaitlistEntry struct {
	ID        string    `json:"id" bson:"id"`
	Email     string    `json:"email" bson:"email"`
	FullName  string    `json:"full_name" bson:"full_name"`
	Message   string    `json:"message,omitempty" bson:"message,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// ChatExchange is one logged message/response pair.
type ChatExchange struct {
	ID        string    `json:"id" bson:"id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	SessionID string    `json:"session_id" bson:"session_id"`
	Message   string    `json:"message" bson:"message"`
	Response  string    `json:"response" bson:"response"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// CaseUpdate is a progress note a firm posts for one of its clients.
type CaseUpdate struct {
	ID          string    `json:"id" bson:"id"`
	ClientID    string    `json:"client_id" bson:"client_id"`
	LawFirmID   string    `json:"law_firm_id" bson:"law_firm_id"`
	UpdateType  string    `json:"update_type" bson:"update_type"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	CreatedBy   string    `json:"created_by" bson:"created_by"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

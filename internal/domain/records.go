package domain

import "time"

type ExpoStatus string

const (
	ExpoDraft     ExpoStatus = "draft"
	ExpoPublished ExpoStatus = "published"
	ExpoCompleted ExpoStatus = "completed"
	ExpoCancelled ExpoStatus = "cancelled"
)

type BoothSize string

const (
	BoothSmall  BoothSize = "small"
	BoothMedium BoothSize = "medium"
	BoothLarge  BoothSize = "large"
)

type BoothStatus string

const (
	BoothAvailable BoothStatus = "available"
	BoothReserved  BoothStatus = "reserved"
	BoothOccupied  BoothStatus = "occupied"
)

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleExhibitor Role = "exhibitor"
	RoleAttendee  Role = "attendee"
)

type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "planning"
	ProjectInProgress ProjectStatus = "in-progress"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectOnHold     ProjectStatus = "on-hold"
)

// NilID stands in for an unknown sender or recipient on contact messages.
const NilID = "00000000-0000-0000-0000-000000000000"

// Expo is a trade show managed from the dashboard.
type Expo struct {
	ID          string     `json:"id"`
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	Theme       string     `json:"theme"`
	Location    string     `json:"location" validate:"required"`
	StartDate   string     `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string     `json:"end_date" validate:"required,datetime=2006-01-02"`
	Status      ExpoStatus `json:"status" validate:"omitempty,oneof=draft published completed cancelled"`
	CreatedBy   string     `json:"created_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Booth is a rentable floor slot of an expo.
type Booth struct {
	ID          string      `json:"id"`
	ExpoID      string      `json:"expo_id" validate:"required"`
	BoothNumber string      `json:"booth_number" validate:"required"`
	Size        BoothSize   `json:"size" validate:"required,oneof=small medium large"`
	Price       float64     `json:"price" validate:"gte=0"`
	Status      BoothStatus `json:"status"`
	ExhibitorID string      `json:"exhibitor_id,omitempty"`
}

// Session is a talk or workshop scheduled during an expo.
type Session struct {
	ID          string    `json:"id"`
	ExpoID      string    `json:"expo_id" validate:"required"`
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	SpeakerName string    `json:"speaker_name"`
	Location    string    `json:"location"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" validate:"required,gtefield=StartTime"`
	Capacity    int       `json:"capacity" validate:"gt=0"`
}

// Application is an exhibitor's request for a booth at an expo.
type Application struct {
	ID               string            `json:"id"`
	ExpoID           string            `json:"expo_id" validate:"required"`
	ExhibitorID      string            `json:"exhibitor_id" validate:"required"`
	CompanyName      string            `json:"company_name" validate:"required"`
	ProductsServices string            `json:"products_services"`
	Website          string            `json:"website,omitempty" validate:"omitempty,url"`
	BoothPreference  BoothSize         `json:"booth_preference" validate:"required,oneof=small medium large"`
	Status           ApplicationStatus `json:"status"`
	AssignedBoothID  string            `json:"assigned_booth_id,omitempty"`
	SubmittedAt      time.Time         `json:"submitted_at"`
	ReviewedAt       *time.Time        `json:"reviewed_at,omitempty"`
}

// ExpoRegistration records an attendee signed up for an expo.
type ExpoRegistration struct {
	ID               string    `json:"id"`
	ExpoID           string    `json:"expo_id"`
	AttendeeID       string    `json:"attendee_id"`
	RegistrationType string    `json:"registration_type"`
	RegisteredAt     time.Time `json:"registered_at"`
}

// SessionRegistration records an attendee signed up for a session.
type SessionRegistration struct {
	ID           string    `json:"id"`
	SessionID    string    `json:"session_id"`
	AttendeeID   string    `json:"attendee_id"`
	RegisteredAt time.Time `json:"registered_at"`
}

// Message is a dashboard inbox message between two profiles.
type Message struct {
	ID          string    `json:"id"`
	SenderID    string    `json:"sender_id" validate:"required"`
	RecipientID string    `json:"recipient_id" validate:"required"`
	Subject     string    `json:"subject" validate:"required"`
	Content     string    `json:"content" validate:"required"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}

// Profile is a dashboard user.
type Profile struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	Role        Role      `json:"role"`
	CompanyName string    `json:"company_name,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Service is an offering listed on the marketing site.
type Service struct {
	ID           string    `json:"id" yaml:"id"`
	Title        string    `json:"title" yaml:"title"`
	Description  string    `json:"description" yaml:"description"`
	Icon         string    `json:"icon" yaml:"icon"`
	Features     []string  `json:"features" yaml:"features"`
	Gradient     string    `json:"gradient,omitempty" yaml:"gradient"`
	DisplayOrder int       `json:"display_order,omitempty" yaml:"display_order"`
	IsActive     bool      `json:"is_active" yaml:"is_active"`
	CreatedAt    time.Time `json:"created_at" yaml:"-"`
}

// Project is a portfolio entry listed on the marketing site.
type Project struct {
	ID           string        `json:"id" yaml:"id"`
	Title        string        `json:"title" yaml:"title"`
	Description  string        `json:"description" yaml:"description"`
	Category     string        `json:"category" yaml:"category"`
	Technologies []string      `json:"technologies" yaml:"technologies"`
	ImageURL     string        `json:"image_url,omitempty" yaml:"image_url"`
	Gradient     string        `json:"gradient,omitempty" yaml:"gradient"`
	LiveURL      string        `json:"live_url,omitempty" yaml:"live_url"`
	GithubURL    string        `json:"github_url,omitempty" yaml:"github_url"`
	Status       ProjectStatus `json:"status" yaml:"status"`
	Featured     bool          `json:"featured" yaml:"featured"`
	CreatedAt    time.Time     `json:"created_at" yaml:"-"`
	UpdatedAt    time.Time     `json:"updated_at" yaml:"-"`
}

// BoothAssignment approves an application and hands the booth to its
// exhibitor.
type BoothAssignment struct {
	ApplicationID string
	BoothID       string
	ExhibitorID   string
	ReviewedAt    time.Time
}

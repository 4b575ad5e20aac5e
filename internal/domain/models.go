package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns an id when the caller did not provide one.
// Assigned here rather than in the database so sqlite test databases
// behave the same as postgres.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// AccountStatus represents the lifecycle status of a client account
type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "active"
	AccountStatusArchived AccountStatus = "archived"
)

// Account represents a client billing account with its transaction ledger.
// TotalDebt, TotalPaid and Balance are never stored; they are derived from
// the transaction log on every read.
type Account struct {
	BaseModel
	Name     string        `gorm:"type:varchar(200);not null;index"`
	Company  string        `gorm:"type:varchar(200);not null"`
	Status   AccountStatus `gorm:"type:varchar(50);not null;default:'active';index"`
	Currency string        `gorm:"type:varchar(3);not null;default:'USD'"`
	// Portal credentials are opaque payload for the client portal; the API
	// never interprets them beyond storage.
	PortalUsername string        `gorm:"type:varchar(100);column:portal_username"`
	PortalPassword string        `gorm:"type:varchar(200);column:portal_password"`
	ArchivedAt     *time.Time    `gorm:"column:archived_at"`
	Transactions   []Transaction `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
	Projects       []Project     `gorm:"foreignKey:AccountID"`
}

// TransactionType classifies a ledger entry
type TransactionType string

const (
	TransactionTypeDebt    TransactionType = "debt"
	TransactionTypePayment TransactionType = "payment"
)

// IsValid checks if the TransactionType is a valid enum value
func (tt TransactionType) IsValid() bool {
	switch tt {
	case TransactionTypeDebt, TransactionTypePayment:
		return true
	}
	return false
}

// Transaction is an immutable ledger entry. Entries are appended in
// chronological order and never edited or removed; the only way one
// disappears is a cascading hard delete of its account.
type Transaction struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	AccountID   uuid.UUID       `gorm:"type:uuid;not null;index;column:account_id"`
	Account     *Account        `gorm:"foreignKey:AccountID"`
	Type        TransactionType `gorm:"type:varchar(50);not null"`
	Amount      float64         `gorm:"type:decimal(15,2);not null"`
	Description string          `gorm:"type:varchar(500)"`
	Date        time.Time       `gorm:"type:date;not null"`
	CreatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns an id when the caller did not provide one
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// ProjectStatus represents the status of a project
type ProjectStatus string

const (
	ProjectStatusPlanning   ProjectStatus = "planning"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusReview     ProjectStatus = "review"
	ProjectStatusCompleted  ProjectStatus = "completed"
)

// IsValid checks if the ProjectStatus is a valid enum value
func (ps ProjectStatus) IsValid() bool {
	switch ps {
	case ProjectStatusPlanning, ProjectStatusInProgress, ProjectStatusReview, ProjectStatusCompleted:
		return true
	}
	return false
}

// Project represents a unit of client work.
// Progress is derived from the task list whenever tasks exist; for projects
// without tasks it is whatever the admin last set.
type Project struct {
	BaseModel
	// (Client, Title) is the natural identity used by reconciliation; the
	// unique index lets the store suppress duplicates under concurrent syncs.
	Title     string        `gorm:"type:varchar(200);not null;uniqueIndex:idx_projects_client_title"`
	Client    string        `gorm:"type:varchar(200);not null;uniqueIndex:idx_projects_client_title"`
	AccountID *uuid.UUID    `gorm:"type:uuid;index;column:account_id"`
	Account   *Account      `gorm:"foreignKey:AccountID"`
	Status    ProjectStatus `gorm:"type:varchar(50);not null;default:'planning';index"`
	Progress  int           `gorm:"not null;default:0"`
	Tasks     []Task        `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Files     []string      `gorm:"serializer:json"`
	Team      []string      `gorm:"serializer:json"`
	Gallery   []string      `gorm:"serializer:json"`
}

// TaskStatus represents the completion state of a task
type TaskStatus string

const (
	TaskStatusToDo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// IsValid checks if the TaskStatus is a valid enum value
func (ts TaskStatus) IsValid() bool {
	switch ts {
	case TaskStatusToDo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// TaskPriority represents task priority
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Task represents a work item inside a project
type Task struct {
	BaseModel
	ProjectID uuid.UUID    `gorm:"type:uuid;not null;index;column:project_id"`
	Project   *Project     `gorm:"foreignKey:ProjectID"`
	Title     string       `gorm:"type:varchar(200);not null"`
	Status    TaskStatus   `gorm:"type:varchar(50);not null;default:'todo'"`
	Priority  TaskPriority `gorm:"type:varchar(50);not null;default:'medium'"`
}

// IsDone reports whether the task counts toward project completion
func (t *Task) IsDone() bool {
	return t.Status == TaskStatusDone
}

// ProposalStatus represents the status of a proposal
type ProposalStatus string

const (
	ProposalStatusDraft    ProposalStatus = "draft"
	ProposalStatusSent     ProposalStatus = "sent"
	ProposalStatusAccepted ProposalStatus = "accepted"
	ProposalStatusRejected ProposalStatus = "rejected"
)

// IsValid checks if the ProposalStatus is a valid enum value
func (ps ProposalStatus) IsValid() bool {
	switch ps {
	case ProposalStatusDraft, ProposalStatusSent, ProposalStatusAccepted, ProposalStatusRejected:
		return true
	}
	return false
}

// Proposal represents a priced client document.
// Pricing runs in one of two modes: per-item (line totals summed) or
// direct-total (TotalAmount entered by the operator, items descriptive only).
type Proposal struct {
	BaseModel
	Title          string         `gorm:"type:varchar(200);not null;index"`
	ClientName     string         `gorm:"type:varchar(200);not null;column:client_name"`
	Date           time.Time      `gorm:"type:date;not null"`
	ValidUntil     *time.Time     `gorm:"type:date;column:valid_until"`
	Currency       string         `gorm:"type:varchar(3);not null;default:'USD'"`
	CurrencySymbol string         `gorm:"type:varchar(10);not null;default:'$';column:currency_symbol"`
	TaxRate        float64        `gorm:"type:decimal(5,2);not null;default:0;column:tax_rate"`
	ShowTax        bool           `gorm:"not null;default:false;column:show_tax"`
	UseDirectTotal bool           `gorm:"not null;default:false;column:use_direct_total"`
	TotalAmount    float64        `gorm:"type:decimal(15,2);not null;default:0;column:total_amount"`
	Status         ProposalStatus `gorm:"type:varchar(50);not null;default:'draft';index"`
	Items          []ProposalItem `gorm:"foreignKey:ProposalID;constraint:OnDelete:CASCADE"`
}

// ProposalItem is one row of a priced document.
// A zero unit price marks a manually-totalled line: Total is taken verbatim
// instead of Quantity*UnitPrice. Carried over from the source system; a
// genuinely free per-unit line cannot be expressed.
type ProposalItem struct {
	BaseModel
	ProposalID  uuid.UUID `gorm:"type:uuid;not null;index;column:proposal_id"`
	Proposal    *Proposal `gorm:"foreignKey:ProposalID"`
	Description string    `gorm:"type:varchar(500);not null"`
	Quantity    float64   `gorm:"type:decimal(10,2);not null;default:0"`
	UnitPrice   float64   `gorm:"type:decimal(15,2);not null;default:0;column:unit_price"`
	Total       float64   `gorm:"type:decimal(15,2);not null;default:0"`
	SortOrder   int       `gorm:"not null;default:0;column:sort_order"`
}

// InvoiceStatus represents the status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// IsValid checks if the InvoiceStatus is a valid enum value
func (is InvoiceStatus) IsValid() bool {
	switch is {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	}
	return false
}

// Invoice is a billing record consumed by the revenue aggregates
type Invoice struct {
	BaseModel
	Number         string        `gorm:"type:varchar(50);unique;index"`
	ClientName     string        `gorm:"type:varchar(200);not null;column:client_name"`
	Amount         float64       `gorm:"type:decimal(15,2);not null"`
	Currency       string        `gorm:"type:varchar(3);not null;default:'USD'"`
	CurrencySymbol string        `gorm:"type:varchar(10);not null;default:'$';column:currency_symbol"`
	IssueDate      time.Time     `gorm:"type:date;not null;column:issue_date"`
	DueDate        *time.Time    `gorm:"type:date;column:due_date"`
	Status         InvoiceStatus `gorm:"type:varchar(50);not null;default:'draft';index"`
}

// Expense is a cost record consumed by the expense aggregates
type Expense struct {
	BaseModel
	Description string    `gorm:"type:varchar(500);not null"`
	Category    string    `gorm:"type:varchar(100);index"`
	Amount      float64   `gorm:"type:decimal(15,2);not null"`
	Currency    string    `gorm:"type:varchar(3);not null;default:'USD'"`
	Date        time.Time `gorm:"type:date;not null"`
}

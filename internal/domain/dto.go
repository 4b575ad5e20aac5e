package domain

import (
	"github.com/google/uuid"
)

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// PaginatedResponse wraps a list response with paging metadata
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

// ---------------------------------------------------------------------------
// Accounts & ledger

// LedgerTotalsDTO carries the derived ledger figures for an account
type LedgerTotalsDTO struct {
	TotalDebt          float64 `json:"totalDebt"`
	TotalPaid          float64 `json:"totalPaid"`
	Balance            float64 `json:"balance"`
	FormattedTotalDebt string  `json:"formattedTotalDebt"`
	FormattedTotalPaid string  `json:"formattedTotalPaid"`
	FormattedBalance   string  `json:"formattedBalance"`
}

type AccountDTO struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Company        string          `json:"company"`
	Status         AccountStatus   `json:"status"`
	Currency       string          `json:"currency"`
	PortalUsername string          `json:"portalUsername,omitempty"`
	Ledger         LedgerTotalsDTO `json:"ledger"`
	Transactions   []TransactionDTO `json:"transactions,omitempty"`
	ProjectCount   int             `json:"projectCount"`
	CreatedAt      string          `json:"createdAt"` // ISO 8601
	UpdatedAt      string          `json:"updatedAt"` // ISO 8601
}

type TransactionDTO struct {
	ID          uuid.UUID       `json:"id"`
	AccountID   uuid.UUID       `json:"accountId"`
	Type        TransactionType `json:"type"`
	Amount      float64         `json:"amount"`
	Description string          `json:"description,omitempty"`
	Date        string          `json:"date"` // ISO 8601 date
	CreatedAt   string          `json:"createdAt"`
}

type CreateAccountRequest struct {
	Name           string `json:"name" validate:"required,max=200"`
	Company        string `json:"company" validate:"required,max=200"`
	Currency       string `json:"currency,omitempty" validate:"omitempty,len=3,alpha"`
	PortalUsername string `json:"portalUsername,omitempty" validate:"max=100"`
	PortalPassword string `json:"portalPassword,omitempty" validate:"max=200"`
}

type UpdateAccountRequest struct {
	Name           string `json:"name" validate:"required,max=200"`
	Company        string `json:"company" validate:"required,max=200"`
	Currency       string `json:"currency,omitempty" validate:"omitempty,len=3,alpha"`
	PortalUsername string `json:"portalUsername,omitempty" validate:"max=100"`
	PortalPassword string `json:"portalPassword,omitempty" validate:"max=200"`
}

// CreateTransactionRequest appends one ledger entry. Amount must be
// non-negative: validation is the boundary's job, the ledger assumes it.
type CreateTransactionRequest struct {
	Type        TransactionType `json:"type" validate:"required,oneof=debt payment"`
	Amount      float64         `json:"amount" validate:"gte=0"`
	Description string          `json:"description,omitempty" validate:"max=500"`
	Date        string          `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// DeleteAccountResponse reports how the delete was applied
type DeleteAccountResponse struct {
	// Archived is true when linked projects forced a soft delete
	Archived bool `json:"archived"`
}

// ---------------------------------------------------------------------------
// Projects & tasks

type ProjectDTO struct {
	ID        uuid.UUID     `json:"id"`
	Title     string        `json:"title"`
	Client    string        `json:"client"`
	AccountID *uuid.UUID    `json:"accountId,omitempty"`
	Status    ProjectStatus `json:"status"`
	Progress  int           `json:"progress"`
	Tasks     []TaskDTO     `json:"tasks"`
	Files     []string      `json:"files,omitempty"`
	Team      []string      `json:"team,omitempty"`
	Gallery   []string      `json:"gallery,omitempty"`
	CreatedAt string        `json:"createdAt"`
	UpdatedAt string        `json:"updatedAt"`
}

type TaskDTO struct {
	ID       uuid.UUID    `json:"id"`
	Title    string       `json:"title"`
	Status   TaskStatus   `json:"status"`
	Priority TaskPriority `json:"priority"`
}

type CreateProjectRequest struct {
	Title     string     `json:"title" validate:"required,max=200"`
	Client    string     `json:"client" validate:"required,max=200"`
	AccountID *uuid.UUID `json:"accountId,omitempty"`
	Status    ProjectStatus `json:"status,omitempty"`
	// Progress only applies while the project has no tasks
	Progress int      `json:"progress,omitempty" validate:"gte=0,lte=100"`
	Team     []string `json:"team,omitempty"`
	Files    []string `json:"files,omitempty"`
	Gallery  []string `json:"gallery,omitempty"`
}

type UpdateProjectRequest struct {
	Title     string        `json:"title" validate:"required,max=200"`
	Client    string        `json:"client" validate:"required,max=200"`
	AccountID *uuid.UUID    `json:"accountId,omitempty"`
	Status    ProjectStatus `json:"status,omitempty"`
	Progress  int           `json:"progress,omitempty" validate:"gte=0,lte=100"`
	Team      []string      `json:"team,omitempty"`
	Files     []string      `json:"files,omitempty"`
	Gallery   []string      `json:"gallery,omitempty"`
}

type CreateTaskRequest struct {
	Title    string       `json:"title" validate:"required,max=200"`
	Status   TaskStatus   `json:"status,omitempty" validate:"omitempty,oneof=todo in_progress done"`
	Priority TaskPriority `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
}

type UpdateTaskRequest struct {
	Title    string       `json:"title" validate:"required,max=200"`
	Status   TaskStatus   `json:"status" validate:"required,oneof=todo in_progress done"`
	Priority TaskPriority `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
}

// ---------------------------------------------------------------------------
// Proposals

// PricingTotalsDTO carries the derived document totals.
// Tax and FormattedTax are present only when the document shows tax; a
// hidden tax line is absent, not zeroed.
type PricingTotalsDTO struct {
	Subtotal          float64  `json:"subtotal"`
	Tax               *float64 `json:"tax,omitempty"`
	Total             float64  `json:"total"`
	FormattedSubtotal string   `json:"formattedSubtotal"`
	FormattedTax      string   `json:"formattedTax,omitempty"`
	FormattedTotal    string   `json:"formattedTotal"`
}

type ProposalDTO struct {
	ID             uuid.UUID         `json:"id"`
	Title          string            `json:"title"`
	ClientName     string            `json:"clientName"`
	Date           string            `json:"date"`
	ValidUntil     string            `json:"validUntil,omitempty"`
	Currency       string            `json:"currency"`
	CurrencySymbol string            `json:"currencySymbol"`
	TaxRate        float64           `json:"taxRate"`
	ShowTax        bool              `json:"showTax"`
	UseDirectTotal bool              `json:"useDirectTotal"`
	TotalAmount    float64           `json:"totalAmount"`
	Status         ProposalStatus    `json:"status"`
	Items          []ProposalItemDTO `json:"items"`
	Totals         PricingTotalsDTO  `json:"totals"`
	CreatedAt      string            `json:"createdAt"`
	UpdatedAt      string            `json:"updatedAt"`
}

type ProposalItemDTO struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Quantity    float64   `json:"quantity"`
	UnitPrice   float64   `json:"unitPrice"`
	Total       float64   `json:"total"`
}

type ProposalItemRequest struct {
	Description string  `json:"description" validate:"required,max=500"`
	Quantity    float64 `json:"quantity" validate:"gte=0"`
	UnitPrice   float64 `json:"unitPrice" validate:"gte=0"`
	// Total is authoritative for the line when unitPrice is zero
	Total float64 `json:"total" validate:"gte=0"`
}

type CreateProposalRequest struct {
	Title          string                `json:"title" validate:"required,max=200"`
	ClientName     string                `json:"clientName" validate:"required,max=200"`
	Date           string                `json:"date" validate:"required,datetime=2006-01-02"`
	ValidUntil     string                `json:"validUntil,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Currency       string                `json:"currency,omitempty" validate:"omitempty,len=3,alpha"`
	CurrencySymbol string                `json:"currencySymbol,omitempty" validate:"max=10"`
	TaxRate        float64               `json:"taxRate" validate:"gte=0,lte=100"`
	ShowTax        bool                  `json:"showTax"`
	UseDirectTotal bool                  `json:"useDirectTotal"`
	TotalAmount    float64               `json:"totalAmount" validate:"gte=0"`
	Items          []ProposalItemRequest `json:"items" validate:"dive"`
}

type UpdateProposalRequest struct {
	Title          string                `json:"title" validate:"required,max=200"`
	ClientName     string                `json:"clientName" validate:"required,max=200"`
	Date           string                `json:"date" validate:"required,datetime=2006-01-02"`
	ValidUntil     string                `json:"validUntil,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Currency       string                `json:"currency,omitempty" validate:"omitempty,len=3,alpha"`
	CurrencySymbol string                `json:"currencySymbol,omitempty" validate:"max=10"`
	TaxRate        float64               `json:"taxRate" validate:"gte=0,lte=100"`
	ShowTax        bool                  `json:"showTax"`
	UseDirectTotal bool                  `json:"useDirectTotal"`
	TotalAmount    float64               `json:"totalAmount" validate:"gte=0"`
	Status         ProposalStatus        `json:"status,omitempty" validate:"omitempty,oneof=draft sent accepted rejected"`
	Items          []ProposalItemRequest `json:"items" validate:"dive"`
}

// ---------------------------------------------------------------------------
// Invoices & expenses

type InvoiceDTO struct {
	ID              uuid.UUID     `json:"id"`
	Number          string        `json:"number"`
	ClientName      string        `json:"clientName"`
	Amount          float64       `json:"amount"`
	FormattedAmount string        `json:"formattedAmount"`
	Currency        string        `json:"currency"`
	CurrencySymbol  string        `json:"currencySymbol"`
	IssueDate       string        `json:"issueDate"`
	DueDate         string        `json:"dueDate,omitempty"`
	Status          InvoiceStatus `json:"status"`
	CreatedAt       string        `json:"createdAt"`
	UpdatedAt       string        `json:"updatedAt"`
}

type CreateInvoiceRequest struct {
	Number         string        `json:"number" validate:"required,max=50"`
	ClientName     string        `json:"clientName" validate:"required,max=200"`
	Amount         float64       `json:"amount" validate:"gte=0"`
	Currency       string        `json:"currency,omitempty" validate:"omitempty,len=3,alpha"`
	CurrencySymbol string        `json:"currencySymbol,omitempty" validate:"max=10"`
	IssueDate      string        `json:"issueDate" validate:"required,datetime=2006-01-02"`
	DueDate        string        `json:"dueDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status         InvoiceStatus `json:"status,omitempty" validate:"omitempty,oneof=draft sent paid overdue"`
}

type UpdateInvoiceRequest = CreateInvoiceRequest

type ExpenseDTO struct {
	ID              uuid.UUID `json:"id"`
	Description     string    `json:"description"`
	Category        string    `json:"category,omitempty"`
	Amount          float64   `json:"amount"`
	FormattedAmount string    `json:"formattedAmount"`
	Currency        string    `json:"currency"`
	Date            string    `json:"date"`
	CreatedAt       string    `json:"createdAt"`
}

type CreateExpenseRequest struct {
	Description string  `json:"description" validate:"required,max=500"`
	Category    string  `json:"category,omitempty" validate:"max=100"`
	Amount      float64 `json:"amount" validate:"gte=0"`
	Currency    string  `json:"currency,omitempty" validate:"omitempty,len=3,alpha"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
}

// ---------------------------------------------------------------------------
// Sync

// SyncProjectRecord is one client-held project in a sync batch. The id is
// client-generated and only echoed back in reporting; identity in the store
// is the (client, title) natural key.
type SyncProjectRecord struct {
	ID       string        `json:"id" validate:"required,max=100"`
	Title    string        `json:"title" validate:"required,max=200"`
	Client   string        `json:"client" validate:"required,max=200"`
	Status   ProjectStatus `json:"status,omitempty"`
	Progress int           `json:"progress,omitempty" validate:"gte=0,lte=100"`
	Team     []string      `json:"team,omitempty"`
}

type SyncProjectsRequest struct {
	Projects []SyncProjectRecord `json:"projects" validate:"required,dive"`
}

type SyncProjectsResponse struct {
	Synced  int `json:"synced"`
	Skipped int `json:"skipped"`
}

// ---------------------------------------------------------------------------
// Dashboard

type DashboardMetrics struct {
	TotalRevenue       float64               `json:"totalRevenue"`
	TotalExpenses      float64               `json:"totalExpenses"`
	NetProfit          float64               `json:"netProfit"`
	OutstandingBalance float64               `json:"outstandingBalance"`
	ProjectsByStatus   map[ProjectStatus]int `json:"projectsByStatus"`
	AverageProgress    float64               `json:"averageProgress"`
	ProposalsByStatus  map[ProposalStatus]int `json:"proposalsByStatus"`
	AccountCount       int                   `json:"accountCount"`
	ProjectCount       int                   `json:"projectCount"`
}

// ---------------------------------------------------------------------------
// Auth

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=200"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
	Role      string `json:"role"`
}

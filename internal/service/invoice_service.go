package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/atelierhq/agency-api/internal/domain"
	"github.com/atelierhq/agency-api/internal/mapper"
	"github.com/atelierhq/agency-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type InvoiceService struct {
	invoiceRepo *repository.InvoiceRepository
	logger      *zap.Logger
}

func NewInvoiceService(invoiceRepo *repository.InvoiceRepository, logger *zap.Logger) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		logger:      logger,
	}
}

func (s *InvoiceService) Create(ctx context.Context, req *domain.CreateInvoiceRequest) (*domain.InvoiceDTO, error) {
	invoice, err := buildInvoice(req)
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	dto := mapper.ToInvoiceDTO(invoice)
	return &dto, nil
}

func (s *InvoiceService) GetByID(ctx context.Context, id uuid.UUID) (*domain.InvoiceDTO, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	dto := mapper.ToInvoiceDTO(invoice)
	return &dto, nil
}

func (s *InvoiceService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateInvoiceRequest) (*domain.InvoiceDTO, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	updated, err := buildInvoice(req)
	if err != nil {
		return nil, err
	}
	updated.BaseModel = invoice.BaseModel

	if err := s.invoiceRepo.Update(ctx, updated); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	dto := mapper.ToInvoiceDTO(updated)
	return &dto, nil
}

func (s *InvoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.invoiceRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get invoice: %w", err)
	}

	if err := s.invoiceRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	return nil
}

func (s *InvoiceService) List(ctx context.Context, page, pageSize int, search string, status *domain.InvoiceStatus) (*domain.PaginatedResponse, error) {
	invoices, total, err := s.invoiceRepo.List(ctx, page, pageSize, search, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	dtos := make([]domain.InvoiceDTO, 0, len(invoices))
	for i := range invoices {
		dtos = append(dtos, mapper.ToInvoiceDTO(&invoices[i]))
	}

	return &domain.PaginatedResponse{
		Data:       dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

func buildInvoice(req *domain.CreateInvoiceRequest) (*domain.Invoice, error) {
	issueDate, err := time.Parse("2006-01-02", req.IssueDate)
	if err != nil {
		return nil, ErrInvalidInput
	}

	invoice := &domain.Invoice{
		Number:         req.Number,
		ClientName:     req.ClientName,
		Amount:         req.Amount,
		Currency:       req.Currency,
		CurrencySymbol: req.CurrencySymbol,
		IssueDate:      issueDate,
		Status:         req.Status,
	}
	if invoice.Currency == "" {
		invoice.Currency = "USD"
	}
	if invoice.CurrencySymbol == "" {
		invoice.CurrencySymbol = "$"
	}
	if invoice.Status == "" {
		invoice.Status = domain.InvoiceStatusDraft
	}

	if req.DueDate != "" {
		dueDate, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			return nil, ErrInvalidInput
		}
		invoice.DueDate = &dueDate
	}

	return invoice, nil
}

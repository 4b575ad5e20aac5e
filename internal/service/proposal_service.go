package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/atelierhq/agency-api/internal/domain"
	"github.com/atelierhq/agency-api/internal/finance"
	"github.com/atelierhq/agency-api/internal/mapper"
	"github.com/atelierhq/agency-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProposalService struct {
	proposalRepo *repository.ProposalRepository
	logger       *zap.Logger
}

func NewProposalService(proposalRepo *repository.ProposalRepository, logger *zap.Logger) *ProposalService {
	return &ProposalService{
		proposalRepo: proposalRepo,
		logger:       logger,
	}
}

func (s *ProposalService) Create(ctx context.Context, req *domain.CreateProposalRequest) (*domain.ProposalDTO, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidInput
	}

	proposal := &domain.Proposal{
		Title:          req.Title,
		ClientName:     req.ClientName,
		Date:           date,
		Currency:       req.Currency,
		CurrencySymbol: req.CurrencySymbol,
		TaxRate:        req.TaxRate,
		ShowTax:        req.ShowTax,
		UseDirectTotal: req.UseDirectTotal,
		TotalAmount:    req.TotalAmount,
		Status:         domain.ProposalStatusDraft,
		Items:          buildItems(req.Items),
	}
	if proposal.Currency == "" {
		proposal.Currency = "USD"
	}
	if proposal.CurrencySymbol == "" {
		proposal.CurrencySymbol = "$"
	}

	if req.ValidUntil != "" {
		validUntil, err := time.Parse("2006-01-02", req.ValidUntil)
		if err != nil {
			return nil, ErrInvalidInput
		}
		proposal.ValidUntil = &validUntil
	}

	s.applyPricing(proposal)

	if err := s.proposalRepo.Create(ctx, proposal); err != nil {
		return nil, fmt.Errorf("failed to create proposal: %w", err)
	}

	dto := mapper.ToProposalDTO(proposal)
	return &dto, nil
}

func (s *ProposalService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProposalDTO, error) {
	proposal, err := s.proposalRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get proposal: %w", err)
	}

	dto := mapper.ToProposalDTO(proposal)
	return &dto, nil
}

func (s *ProposalService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateProposalRequest) (*domain.ProposalDTO, error) {
	proposal, err := s.proposalRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get proposal: %w", err)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidInput
	}

	proposal.Title = req.Title
	proposal.ClientName = req.ClientName
	proposal.Date = date
	proposal.TaxRate = req.TaxRate
	proposal.ShowTax = req.ShowTax
	proposal.UseDirectTotal = req.UseDirectTotal
	proposal.TotalAmount = req.TotalAmount
	proposal.Items = buildItems(req.Items)
	if req.Currency != "" {
		proposal.Currency = req.Currency
	}
	if req.CurrencySymbol != "" {
		proposal.CurrencySymbol = req.CurrencySymbol
	}
	if req.Status != "" {
		if !req.Status.IsValid() {
			return nil, ErrInvalidInput
		}
		proposal.Status = req.Status
	}

	proposal.ValidUntil = nil
	if req.ValidUntil != "" {
		validUntil, err := time.Parse("2006-01-02", req.ValidUntil)
		if err != nil {
			return nil, ErrInvalidInput
		}
		proposal.ValidUntil = &validUntil
	}

	s.applyPricing(proposal)

	if err := s.proposalRepo.Update(ctx, proposal); err != nil {
		return nil, fmt.Errorf("failed to update proposal: %w", err)
	}

	dto := mapper.ToProposalDTO(proposal)
	return &dto, nil
}

func (s *ProposalService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.proposalRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get proposal: %w", err)
	}

	if err := s.proposalRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete proposal: %w", err)
	}
	return nil
}

func (s *ProposalService) List(ctx context.Context, page, pageSize int, search string, status *domain.ProposalStatus) (*domain.PaginatedResponse, error) {
	proposals, total, err := s.proposalRepo.List(ctx, page, pageSize, search, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}

	dtos := make([]domain.ProposalDTO, 0, len(proposals))
	for i := range proposals {
		dtos = append(dtos, mapper.ToProposalDTO(&proposals[i]))
	}

	return &domain.PaginatedResponse{
		Data:       dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

// applyPricing recomputes every line total and, for per-item documents, the
// stored grand total before a write. Runs synchronously with the edit so the
// persisted figures can never lag the lines. Direct-total documents keep the
// operator's TotalAmount untouched.
func (s *ProposalService) applyPricing(proposal *domain.Proposal) {
	for i := range proposal.Items {
		proposal.Items[i].Total = finance.LineTotal(proposal.Items[i])
	}

	totals := finance.PriceDocument(
		proposal.Items,
		proposal.UseDirectTotal,
		proposal.TotalAmount,
		proposal.TaxRate,
		proposal.ShowTax,
	)
	if !proposal.UseDirectTotal {
		proposal.TotalAmount = totals.Total
	}
}

func buildItems(reqs []domain.ProposalItemRequest) []domain.ProposalItem {
	items := make([]domain.ProposalItem, 0, len(reqs))
	for i, item := range reqs {
		items = append(items, domain.ProposalItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       item.Total,
			SortOrder:   i,
		})
	}
	return items
}

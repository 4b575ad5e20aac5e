package service_test

import (
	"context"
	"testing"

	"github.com/atelierhq/agency-api/internal/domain"
	"github.com/atelierhq/agency-api/internal/repository"
	"github.com/atelierhq/agency-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProposalService(t *testing.T) *service.ProposalService {
	db := setupTestDB(t)
	return service.NewProposalService(repository.NewProposalRepository(db), testLogger())
}

func TestProposalService_PerItemTotals(t *testing.T) {
	svc := newProposalService(t)
	ctx := context.Background()

	proposal, err := svc.Create(ctx, &domain.CreateProposalRequest{
		Title:      "Site Build",
		ClientName: "Acme Corp",
		Date:       "2026-08-01",
		TaxRate:    20,
		ShowTax:    true,
		Items: []domain.ProposalItemRequest{
			{Description: "Design", Quantity: 2, UnitPrice: 100},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 200.0, proposal.Totals.Subtotal)
	require.NotNil(t, proposal.Totals.Tax)
	assert.Equal(t, 40.0, *proposal.Totals.Tax)
	assert.Equal(t, 240.0, proposal.Totals.Total)
	// Stored grand total follows the derived figure for per-item documents
	assert.Equal(t, 240.0, proposal.TotalAmount)
}

func TestProposalService_ManualLineUsesStoredTotal(t *testing.T) {
	svc := newProposalService(t)
	ctx := context.Background()

	proposal, err := svc.Create(ctx, &domain.CreateProposalRequest{
		Title:      "Mixed Work",
		ClientName: "Beta LLC",
		Date:       "2026-08-01",
		Items: []domain.ProposalItemRequest{
			{Description: "Development", Quantity: 10, UnitPrice: 50},
			{Description: "Flat-fee audit", Quantity: 3, UnitPrice: 0, Total: 200},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 700.0, proposal.Totals.Subtotal)
	assert.Nil(t, proposal.Totals.Tax)
	assert.Equal(t, 700.0, proposal.Totals.Total)
	assert.Equal(t, 200.0, proposal.Items[1].Total)
}

func TestProposalService_DirectTotalIgnoresItems(t *testing.T) {
	svc := newProposalService(t)
	ctx := context.Background()

	proposal, err := svc.Create(ctx, &domain.CreateProposalRequest{
		Title:          "Fixed Bid",
		ClientName:     "Gamma Inc",
		Date:           "2026-08-01",
		UseDirectTotal: true,
		TotalAmount:    10000,
		Items: []domain.ProposalItemRequest{
			{Description: "Phase one", Quantity: 4, UnitPrice: 500},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 10000.0, proposal.Totals.Subtotal)
	assert.Equal(t, 10000.0, proposal.Totals.Total)
	// The operator's figure survives untouched
	assert.Equal(t, 10000.0, proposal.TotalAmount)
}

func TestProposalService_UpdateRecomputesSynchronously(t *testing.T) {
	svc := newProposalService(t)
	ctx := context.Background()

	proposal, err := svc.Create(ctx, &domain.CreateProposalRequest{
		Title:      "Evolving Scope",
		ClientName: "Delta Co",
		Date:       "2026-08-01",
		Items: []domain.ProposalItemRequest{
			{Description: "Sprint 1", Quantity: 1, UnitPrice: 1000},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 1000.0, proposal.TotalAmount)

	updated, err := svc.Update(ctx, proposal.ID, &domain.UpdateProposalRequest{
		Title:      "Evolving Scope",
		ClientName: "Delta Co",
		Date:       "2026-08-01",
		Status:     domain.ProposalStatusSent,
		Items: []domain.ProposalItemRequest{
			{Description: "Sprint 1", Quantity: 1, UnitPrice: 1000},
			{Description: "Sprint 2", Quantity: 1, UnitPrice: 1500},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2500.0, updated.TotalAmount)
	assert.Equal(t, domain.ProposalStatusSent, updated.Status)

	// A fresh read agrees with the write response
	fetched, err := svc.GetByID(ctx, proposal.ID)
	require.NoError(t, err)
	assert.Equal(t, 2500.0, fetched.Totals.Total)
	assert.Len(t, fetched.Items, 2)
}

func TestProposalService_HiddenTaxOmitted(t *testing.T) {
	svc := newProposalService(t)
	ctx := context.Background()

	proposal, err := svc.Create(ctx, &domain.CreateProposalRequest{
		Title:      "No Tax Line",
		ClientName: "Epsilon Ltd",
		Date:       "2026-08-01",
		TaxRate:    25,
		ShowTax:    false,
		Items: []domain.ProposalItemRequest{
			{Description: "Consulting", Quantity: 1, UnitPrice: 400},
		},
	})
	require.NoError(t, err)

	// Tax rate is stored but contributes nothing while hidden
	assert.Equal(t, 25.0, proposal.TaxRate)
	assert.Nil(t, proposal.Totals.Tax)
	assert.Equal(t, 400.0, proposal.Totals.Total)
}

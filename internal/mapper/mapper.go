package mapper

import (
	"github.com/atelierhq/agency-api/internal/domain"
	"github.com/atelierhq/agency-api/internal/finance"
)

const timeFormat = "2006-01-02T15:04:05Z"
const dateFormat = "2006-01-02"

// ToLedgerTotalsDTO derives the ledger figures from an account's
// transaction log. Nothing here is read from stored columns, so the DTO
// can never disagree with the log.
func ToLedgerTotalsDTO(account *domain.Account) domain.LedgerTotalsDTO {
	totals := finance.ComputeLedger(account.Transactions)
	return domain.LedgerTotalsDTO{
		TotalDebt:          totals.TotalDebt,
		TotalPaid:          totals.TotalPaid,
		Balance:            totals.Balance,
		FormattedTotalDebt: finance.Format(totals.TotalDebt, account.Currency, ""),
		FormattedTotalPaid: finance.Format(totals.TotalPaid, account.Currency, ""),
		FormattedBalance:   finance.Format(totals.Balance, account.Currency, ""),
	}
}

// ToAccountDTO converts Account to AccountDTO. Portal passwords stay out of
// every response shape.
func ToAccountDTO(account *domain.Account, projectCount int) domain.AccountDTO {
	dto := domain.AccountDTO{
		ID:             account.ID,
		Name:           account.Name,
		Company:        account.Company,
		Status:         account.Status,
		Currency:       account.Currency,
		PortalUsername: account.PortalUsername,
		Ledger:         ToLedgerTotalsDTO(account),
		ProjectCount:   projectCount,
		CreatedAt:      account.CreatedAt.Format(timeFormat),
		UpdatedAt:      account.UpdatedAt.Format(timeFormat),
	}

	if len(account.Transactions) > 0 {
		dto.Transactions = make([]domain.TransactionDTO, 0, len(account.Transactions))
		for i := range account.Transactions {
			dto.Transactions = append(dto.Transactions, ToTransactionDTO(&account.Transactions[i]))
		}
	}

	return dto
}

// ToTransactionDTO converts Transaction to TransactionDTO
func ToTransactionDTO(tx *domain.Transaction) domain.TransactionDTO {
	return domain.TransactionDTO{
		ID:          tx.ID,
		AccountID:   tx.AccountID,
		Type:        tx.Type,
		Amount:      tx.Amount,
		Description: tx.Description,
		Date:        tx.Date.Format(dateFormat),
		CreatedAt:   tx.CreatedAt.Format(timeFormat),
	}
}

// ToProjectDTO converts Project to ProjectDTO. Progress is re-derived from
// the loaded tasks when any exist; the stored column only speaks for
// taskless projects.
func ToProjectDTO(project *domain.Project) domain.ProjectDTO {
	progress := project.Progress
	if derived, ok := finance.DeriveProgress(project.Tasks); ok {
		progress = derived
	}

	tasks := make([]domain.TaskDTO, 0, len(project.Tasks))
	for i := range project.Tasks {
		tasks = append(tasks, ToTaskDTO(&project.Tasks[i]))
	}

	return domain.ProjectDTO{
		ID:        project.ID,
		Title:     project.Title,
		Client:    project.Client,
		AccountID: project.AccountID,
		Status:    project.Status,
		Progress:  progress,
		Tasks:     tasks,
		Files:     project.Files,
		Team:      project.Team,
		Gallery:   project.Gallery,
		CreatedAt: project.CreatedAt.Format(timeFormat),
		UpdatedAt: project.UpdatedAt.Format(timeFormat),
	}
}

// ToTaskDTO converts Task to TaskDTO
func ToTaskDTO(task *domain.Task) domain.TaskDTO {
	return domain.TaskDTO{
		ID:       task.ID,
		Title:    task.Title,
		Status:   task.Status,
		Priority: task.Priority,
	}
}

// ToPricingTotalsDTO derives the document totals for a proposal. The tax
// fields are omitted entirely when the document hides tax.
func ToPricingTotalsDTO(proposal *domain.Proposal) domain.PricingTotalsDTO {
	totals := finance.PriceDocument(
		proposal.Items,
		proposal.UseDirectTotal,
		proposal.TotalAmount,
		proposal.TaxRate,
		proposal.ShowTax,
	)

	dto := domain.PricingTotalsDTO{
		Subtotal:          totals.Subtotal,
		Total:             totals.Total,
		FormattedSubtotal: finance.Format(totals.Subtotal, proposal.Currency, proposal.CurrencySymbol),
		FormattedTotal:    finance.Format(totals.Total, proposal.Currency, proposal.CurrencySymbol),
	}

	if totals.TaxVisible {
		tax := totals.Tax
		dto.Tax = &tax
		dto.FormattedTax = finance.Format(tax, proposal.Currency, proposal.CurrencySymbol)
	}

	return dto
}

// ToProposalDTO converts Proposal to ProposalDTO
func ToProposalDTO(proposal *domain.Proposal) domain.ProposalDTO {
	items := make([]domain.ProposalItemDTO, 0, len(proposal.Items))
	for i := range proposal.Items {
		items = append(items, ToProposalItemDTO(&proposal.Items[i]))
	}

	dto := domain.ProposalDTO{
		ID:             proposal.ID,
		Title:          proposal.Title,
		ClientName:     proposal.ClientName,
		Date:           proposal.Date.Format(dateFormat),
		Currency:       proposal.Currency,
		CurrencySymbol: proposal.CurrencySymbol,
		TaxRate:        proposal.TaxRate,
		ShowTax:        proposal.ShowTax,
		UseDirectTotal: proposal.UseDirectTotal,
		TotalAmount:    proposal.TotalAmount,
		Status:         proposal.Status,
		Items:          items,
		Totals:         ToPricingTotalsDTO(proposal),
		CreatedAt:      proposal.CreatedAt.Format(timeFormat),
		UpdatedAt:      proposal.UpdatedAt.Format(timeFormat),
	}

	if proposal.ValidUntil != nil {
		dto.ValidUntil = proposal.ValidUntil.Format(dateFormat)
	}

	return dto
}

// ToProposalItemDTO converts ProposalItem to ProposalItemDTO. The exposed
// line total is always the derived one.
func ToProposalItemDTO(item *domain.ProposalItem) domain.ProposalItemDTO {
	return domain.ProposalItemDTO{
		ID:          item.ID,
		Description: item.Description,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		Total:       finance.LineTotal(*item),
	}
}

// ToInvoiceDTO converts Invoice to InvoiceDTO
func ToInvoiceDTO(invoice *domain.Invoice) domain.InvoiceDTO {
	dto := domain.InvoiceDTO{
		ID:              invoice.ID,
		Number:          invoice.Number,
		ClientName:      invoice.ClientName,
		Amount:          invoice.Amount,
		FormattedAmount: finance.Format(invoice.Amount, invoice.Currency, invoice.CurrencySymbol),
		Currency:        invoice.Currency,
		CurrencySymbol:  invoice.CurrencySymbol,
		IssueDate:       invoice.IssueDate.Format(dateFormat),
		Status:          invoice.Status,
		CreatedAt:       invoice.CreatedAt.Format(timeFormat),
		UpdatedAt:       invoice.UpdatedAt.Format(timeFormat),
	}

	if invoice.DueDate != nil {
		dto.DueDate = invoice.DueDate.Format(dateFormat)
	}

	return dto
}

// ToExpenseDTO converts Expense to ExpenseDTO
func ToExpenseDTO(expense *domain.Expense) domain.ExpenseDTO {
	return domain.ExpenseDTO{
		ID:              expense.ID,
		Description:     expense.Description,
		Category:        expense.Category,
		Amount:          expense.Amount,
		FormattedAmount: finance.Format(expense.Amount, expense.Currency, ""),
		Currency:        expense.Currency,
		Date:            expense.Date.Format(dateFormat),
		CreatedAt:       expense.CreatedAt.Format(timeFormat),
	}
}

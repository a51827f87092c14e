package services

import (
	"context"

	"khqrpay/internal/models/db_models"
	"khqrpay/internal/models/response_models"
	"khqrpay/internal/repositories"
	"khqrpay/pkg/utils"
)

type StatusQueryServiceInterface interface {
	GetStatus(ctx context.Context, reference string) (*response_models.PaymentStatusResponse, error)
	ListTransactions(ctx context.Context, status string, page, pageSize int) ([]response_models.TransactionListItem, error)
}

type StatusQueryService struct {
	repo repositories.TransactionRepositoryInterface
}

func NewStatusQueryService(repo repositories.TransactionRepositoryInterface) StatusQueryServiceInterface {
	return &StatusQueryService{repo: repo}
}

func (s *StatusQueryService) GetStatus(ctx context.Context, reference string) (*response_models.PaymentStatusResponse, error) {
	txn, err := s.repo.GetByReference(ctx, reference)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if txn == nil {
		return nil, utils.ErrTransactionNotFound
	}

	return &response_models.PaymentStatusResponse{
		ReferenceNumber: txn.ReferenceNumber,
		Status:          string(txn.Status),
		Amount:          txn.Amount.StringFixed(2),
		Currency:        txn.CurrencyCode,
	}, nil
}

func (s *StatusQueryService) ListTransactions(ctx context.Context, status string, page, pageSize int) ([]response_models.TransactionListItem, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	txns, err := s.repo.List(ctx, db_models.TransactionStatus(status), page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	items := make([]response_models.TransactionListItem, 0, len(txns))
	for _, txn := range txns {
		items = append(items, response_models.TransactionListItem{
			ReferenceNumber:   txn.ReferenceNumber,
			BankTransactionID: txn.BankTransactionID,
			SaleID:            txn.SaleID,
			Amount:            txn.Amount.StringFixed(2),
			Currency:          txn.CurrencyCode,
			Status:            string(txn.Status),
			ExpiresAt:         txn.ExpiresAt,
			CreatedAt:         txn.CreatedAt,
			UpdatedAt:         txn.UpdatedAt,
		})
	}
	return items, nil
}

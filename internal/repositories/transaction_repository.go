package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"khqrpay/internal/models/db_models"
)

type TransactionRepositoryInterface interface {
	Create(ctx context.Context, txn *db_models.KhqrTransaction) error
	GetByReference(ctx context.Context, reference string) (*db_models.KhqrTransaction, error)
	// ApplyCallback performs the conditional status transition for an
	// inbound callback. It matches strictly on the
	// (reference_number, bank_transaction_id) pair and reports whether a
	// row was matched. The single UPDATE is the whole critical section, so
	// two concurrent callbacks for the same reference serialize on the row
	// and a redelivery is a harmless overwrite with the same values.
	ApplyCallback(ctx context.Context, reference, bankTransactionID string, status db_models.TransactionStatus, raw datatypes.JSON) (bool, error)
	List(ctx context.Context, status db_models.TransactionStatus, page, pageSize int) ([]db_models.KhqrTransaction, error)
}

func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &TransactionRepository{db: db}
}

type TransactionRepository struct {
	db *gorm.DB
}

func (r *TransactionRepository) Create(ctx context.Context, txn *db_models.KhqrTransaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *TransactionRepository) GetByReference(ctx context.Context, reference string) (*db_models.KhqrTransaction, error) {
	var txn db_models.KhqrTransaction
	err := r.db.WithContext(ctx).
		Where("reference_number = ?", reference).
		First(&txn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &txn, nil
}

func (r *TransactionRepository) ApplyCallback(ctx context.Context, reference, bankTransactionID string, status db_models.TransactionStatus, raw datatypes.JSON) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&db_models.KhqrTransaction{}).
		Where("reference_number = ? AND bank_transaction_id = ?", reference, bankTransactionID).
		Updates(map[string]interface{}{
			"status":        status,
			"response_data": raw,
			"updated_at":    time.Now().Unix(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *TransactionRepository) List(ctx context.Context, status db_models.TransactionStatus, page, pageSize int) ([]db_models.KhqrTransaction, error) {
	query := r.db.WithContext(ctx).Model(&db_models.KhqrTransaction{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var txns []db_models.KhqrTransaction
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}

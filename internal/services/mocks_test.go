package services

import (
	"context"
	"sync"
	"time"

	"gorm.io/datatypes"

	"khqrpay/internal/gateway"
	"khqrpay/internal/models/db_models"
)

// mockTransactionRepo is an in-memory TransactionRepositoryInterface. The
// mutex makes ApplyCallback a single critical section per record, matching
// the conditional UPDATE the real repository issues.
type mockTransactionRepo struct {
	mu    sync.Mutex
	byRef map[string]*db_models.KhqrTransaction

	createErr error
	applyErr  error

	createCalls int
}

func newMockTransactionRepo() *mockTransactionRepo {
	return &mockTransactionRepo{byRef: make(map[string]*db_models.KhqrTransaction)}
}

func (m *mockTransactionRepo) Create(ctx context.Context, txn *db_models.KhqrTransaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	if m.createErr != nil {
		return m.createErr
	}
	cp := *txn
	m.byRef[txn.ReferenceNumber] = &cp
	return nil
}

func (m *mockTransactionRepo) GetByReference(ctx context.Context, reference string) (*db_models.KhqrTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	txn, ok := m.byRef[reference]
	if !ok {
		return nil, nil
	}
	cp := *txn
	return &cp, nil
}

func (m *mockTransactionRepo) ApplyCallback(ctx context.Context, reference, bankTransactionID string, status db_models.TransactionStatus, raw datatypes.JSON) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.applyErr != nil {
		return false, m.applyErr
	}
	txn, ok := m.byRef[reference]
	if !ok || txn.BankTransactionID == nil || *txn.BankTransactionID != bankTransactionID {
		return false, nil
	}
	txn.Status = status
	txn.ResponseData = raw
	txn.UpdatedAt = time.Now().Unix()
	return true, nil
}

func (m *mockTransactionRepo) List(ctx context.Context, status db_models.TransactionStatus, page, pageSize int) ([]db_models.KhqrTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []db_models.KhqrTransaction
	for _, txn := range m.byRef {
		if status != "" && txn.Status != status {
			continue
		}
		out = append(out, *txn)
	}
	return out, nil
}

type mockGateway struct {
	resp *gateway.RegisterResponse
	err  error

	lastRequest *gateway.RegisterRequest
	calls       int
}

func (m *mockGateway) RegisterPayment(ctx context.Context, req gateway.RegisterRequest) (*gateway.RegisterResponse, error) {
	m.calls++
	m.lastRequest = &req
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

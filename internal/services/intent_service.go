package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"khqrpay/internal/gateway"
	"khqrpay/internal/models/db_models"
	"khqrpay/internal/models/request_models"
	"khqrpay/internal/models/response_models"
	"khqrpay/internal/repositories"
	"khqrpay/pkg/config"
	"khqrpay/pkg/utils"
)

// QR codes stay scannable for this long after intent creation.
const qrValidity = 10 * time.Minute

const referencePrefix = "POS-KHQR-"

type PaymentIntentServiceInterface interface {
	CreateIntent(ctx context.Context, req request_models.GenerateKhqrRequest) (*response_models.GenerateKhqrResponse, error)
}

type PaymentIntentService struct {
	repo    repositories.TransactionRepositoryInterface
	gateway gateway.PspGatewayInterface
	cfg     config.Config
	logger  *zap.Logger
}

func NewPaymentIntentService(
	repo repositories.TransactionRepositoryInterface,
	gw gateway.PspGatewayInterface,
	cfg config.Config,
	logger *zap.Logger,
) PaymentIntentServiceInterface {
	return &PaymentIntentService{
		repo:    repo,
		gateway: gw,
		cfg:     cfg,
		logger:  logger,
	}
}

// CreateIntent registers a payment with the bank and persists the pending
// transaction. Exactly one store write on success; none if the bank call
// fails, so a rejected intent never leaves a dangling pending record.
func (s *PaymentIntentService) CreateIntent(ctx context.Context, req request_models.GenerateKhqrRequest) (*response_models.GenerateKhqrResponse, error) {
	amount := req.Amount
	if !amount.IsPositive() {
		return nil, utils.ErrInvalidAmount
	}
	currency := strings.ToUpper(req.CurrencyCode)

	if !s.cfg.HasMerchantCredentials() {
		return nil, utils.ErrMerchantConfig
	}

	// Assigned exactly once, before any persistence. Entropy makes reuse
	// practically impossible; the unique index on reference_number is the
	// actual guarantee.
	reference := referencePrefix + uuid.New().String()

	resp, err := s.gateway.RegisterPayment(ctx, gateway.RegisterRequest{
		Amount:            amount.StringFixed(2),
		Currency:          currency,
		MerchantReference: reference,
		CallbackURL:       s.cfg.AppBaseURL + "/api/v1/khqr/callback",
	})
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(qrValidity).Unix()
	txn := &db_models.KhqrTransaction{
		SaleID:          req.SaleID,
		Amount:          amount,
		CurrencyCode:    currency,
		ReferenceNumber: reference,
		KhqrString:      resp.KhqrString,
		Status:          db_models.TxnStatusPending,
		ResponseData:    datatypes.JSON(resp.Raw),
		ExpiresAt:       &expiresAt,
	}
	if resp.BankTransactionID != "" {
		txn.BankTransactionID = &resp.BankTransactionID
	}

	if err := s.repo.Create(ctx, txn); err != nil {
		// Surfaced, never swallowed: the bank knows about this intent but
		// we failed to record it, and the caller has to know.
		s.logger.Error("Failed to persist KHQR transaction",
			zap.String("reference_number", reference),
			zap.Error(err),
		)
		return nil, utils.ErrDatabaseError
	}

	s.logger.Info("KHQR payment intent created",
		zap.String("reference_number", reference),
		zap.String("amount", amount.StringFixed(2)),
		zap.String("currency", currency),
	)

	return &response_models.GenerateKhqrResponse{
		ReferenceNumber: reference,
		KhqrString:      resp.KhqrString,
		KhqrParams: response_models.KhqrParams{
			MerchantName:    s.cfg.MerchantName,
			MerchantCity:    s.cfg.MerchantCity,
			CountryCode:     "KH",
			Amount:          amount.StringFixed(2),
			Currency:        currency,
			BillNumber:      reference,
			MerchantID:      s.cfg.MerchantID,
			BakongAccountID: s.cfg.BakongAccountID,
			AcquiringBank:   s.cfg.AcquiringBank,
		},
	}, nil
}

package services

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"khqrpay/internal/models/db_models"
	"khqrpay/internal/repositories"
	"khqrpay/pkg/config"
	"khqrpay/pkg/utils"
)

type CallbackProcessorInterface interface {
	HandleCallback(ctx context.Context, rawBody []byte, signature string) error
}

type CallbackProcessor struct {
	repo   repositories.TransactionRepositoryInterface
	cfg    config.Config
	logger *zap.Logger
}

func NewCallbackProcessor(
	repo repositories.TransactionRepositoryInterface,
	cfg config.Config,
	logger *zap.Logger,
) CallbackProcessorInterface {
	return &CallbackProcessor{
		repo:   repo,
		cfg:    cfg,
		logger: logger,
	}
}

type callbackPayload struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	MerchantRef   string `json:"merchant_ref"`
}

// HandleCallback verifies and applies a bank webhook. The signature check
// runs against the raw bytes before anything is parsed; an unsigned or
// mis-signed delivery never touches state. Lookup is strictly by the
// (reference, bank transaction id) pair, so a callback quoting a provider id
// we never stored is rejected rather than fuzzy-matched on reference alone.
func (p *CallbackProcessor) HandleCallback(ctx context.Context, rawBody []byte, signature string) error {
	// An absent secret must never degrade into verifying against the empty
	// key; without it no callback can be authentic.
	if p.cfg.WebhookSecret == "" {
		p.logger.Warn("KHQR webhook secret not configured, rejecting callback")
		return utils.ErrCallbackUnauthorized
	}

	if !utils.VerifySignature(p.cfg.WebhookSecret, rawBody, signature) {
		p.logger.Warn("Invalid KHQR callback signature")
		return utils.ErrCallbackUnauthorized
	}

	var payload callbackPayload
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		p.logger.Error("Unparseable KHQR callback payload", zap.Error(err))
		return utils.ErrCallbackMalformed
	}
	if payload.MerchantRef == "" || payload.TransactionID == "" {
		p.logger.Error("KHQR callback missing merchant_ref or transaction_id",
			zap.String("reference_number", payload.MerchantRef),
			zap.String("bank_transaction_id", payload.TransactionID),
		)
		return utils.ErrCallbackMalformed
	}

	status := db_models.MapProviderStatus(payload.Status)
	if status == db_models.TxnStatusUnknown {
		p.logger.Warn("Unrecognized provider status in KHQR callback",
			zap.String("reference_number", payload.MerchantRef),
			zap.String("provider_status", payload.Status),
		)
	}

	matched, err := p.repo.ApplyCallback(ctx, payload.MerchantRef, payload.TransactionID, status, datatypes.JSON(rawBody))
	if err != nil {
		p.logger.Error("Failed to apply KHQR callback",
			zap.String("reference_number", payload.MerchantRef),
			zap.Error(err),
		)
		return utils.ErrDatabaseError
	}
	if !matched {
		p.logger.Warn("Unmatched KHQR callback received",
			zap.String("reference_number", payload.MerchantRef),
			zap.String("bank_transaction_id", payload.TransactionID),
		)
		return utils.ErrCallbackUnmatched
	}

	p.logger.Info("KHQR callback processed",
		zap.String("reference_number", payload.MerchantRef),
		zap.String("status", string(status)),
	)
	return nil
}

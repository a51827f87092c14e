package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"khqrpay/pkg/config"
	"khqrpay/pkg/utils"
)

const requestTimeout = 10 * time.Second

type RegisterRequest struct {
	Amount            string `json:"amount"`
	Currency          string `json:"currency"`
	MerchantReference string `json:"merchant_reference"`
	CallbackURL       string `json:"callback_url"`
}

type RegisterResponse struct {
	BankTransactionID string
	KhqrString        *string
	Raw               json.RawMessage
}

type PspGatewayInterface interface {
	RegisterPayment(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
}

// BakongClient registers payment intents with the acquiring bank's API. One
// synchronous round-trip per call, hard timeout, no internal retry; retrying
// means the caller issues a fresh intent with a new reference.
type BakongClient struct {
	endpoint string
	apiKey   string
	client   *http.Client
	logger   *zap.Logger
}

func NewBakongClient(cfg config.Config, logger *zap.Logger) PspGatewayInterface {
	return &BakongClient{
		endpoint: cfg.BankAPIEndpoint,
		apiKey:   cfg.BankAPIKey,
		client:   &http.Client{Timeout: requestTimeout},
		logger:   logger,
	}
}

type registerResult struct {
	TransactionID string  `json:"transaction_id"`
	KhqrString    *string `json:"khqr_string"`
}

type bankErrorBody struct {
	Message string `json:"message"`
}

func (b *BakongClient) RegisterPayment(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	if b.endpoint == "" || b.apiKey == "" {
		return nil, utils.ErrGatewayConfig
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+b.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(httpReq)
	if err != nil {
		// The underlying error may carry the endpoint URL but never the
		// API key; still, the caller only sees a generic failure.
		b.logger.Error("Bank API connection error",
			zap.String("merchant_reference", req.MerchantReference),
			zap.Error(err),
		)
		return nil, utils.ErrGatewayTransport
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		b.logger.Error("Bank API response read error",
			zap.String("merchant_reference", req.MerchantReference),
			zap.Error(err),
		)
		return nil, utils.ErrGatewayTransport
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var result registerResult
		if err := json.Unmarshal(raw, &result); err != nil {
			b.logger.Error("Bank API returned unparseable body",
				zap.String("merchant_reference", req.MerchantReference),
				zap.Error(err),
			)
			return nil, utils.ErrGatewayTransport
		}
		return &RegisterResponse{
			BankTransactionID: result.TransactionID,
			KhqrString:        result.KhqrString,
			Raw:               raw,
		}, nil

	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		var bankErr bankErrorBody
		_ = json.Unmarshal(raw, &bankErr)
		if bankErr.Message == "" {
			bankErr.Message = "Unknown client error"
		}
		b.logger.Warn("Bank API rejected payment registration",
			zap.String("merchant_reference", req.MerchantReference),
			zap.Int("status_code", resp.StatusCode),
			zap.String("bank_message", bankErr.Message),
		)
		return nil, &utils.GatewayRejectionError{
			StatusCode: resp.StatusCode,
			Message:    bankErr.Message,
		}

	default:
		b.logger.Error("Bank API server error",
			zap.String("merchant_reference", req.MerchantReference),
			zap.Int("status_code", resp.StatusCode),
		)
		return nil, utils.ErrGatewayTransport
	}
}

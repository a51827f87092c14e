package response_models

// KhqrParams is the block the frontend feeds into the bakong-khqr SDK when
// it renders the QR itself. Values mirror the merchant registration with the
// acquiring bank.
type KhqrParams struct {
	MerchantName    string `json:"merchantName"`
	MerchantCity    string `json:"merchantCity"`
	CountryCode     string `json:"countryCode"`
	Amount          string `json:"amount"`
	Currency        string `json:"currency"`
	BillNumber      string `json:"billNumber"`
	MerchantID      string `json:"merchantID"`
	BakongAccountID string `json:"bakongAccountID"`
	AcquiringBank   string `json:"acquiringBank"`
}

type GenerateKhqrResponse struct {
	ReferenceNumber string     `json:"reference_number"`
	KhqrString      *string    `json:"khqr_string"`
	KhqrParams      KhqrParams `json:"khqr_params"`
}

// PaymentStatusResponse is the reduced polling view. Raw bank payloads are
// never exposed to the polling client.
type PaymentStatusResponse struct {
	ReferenceNumber string `json:"reference_number"`
	Status          string `json:"status"`
	Amount          string `json:"amount"`
	Currency        string `json:"currency"`
}

type TransactionListItem struct {
	ReferenceNumber   string  `json:"reference_number"`
	BankTransactionID *string `json:"bank_transaction_id"`
	SaleID            *int64  `json:"sale_id"`
	Amount            string  `json:"amount"`
	Currency          string  `json:"currency"`
	Status            string  `json:"status"`
	ExpiresAt         *int64  `json:"expires_at"`
	CreatedAt         int64   `json:"created_at"`
	UpdatedAt         int64   `json:"updated_at"`
}

package request_models

import "github.com/shopspring/decimal"

type GenerateKhqrRequest struct {
	// decimal.Decimal unmarshals both JSON number and string forms, so
	// clients may send 10.00 or "10.00".
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode string          `json:"currency_code" binding:"required,len=3"`
	SaleID       *int64          `json:"sale_id"`
}

type ListTransactionsQuery struct {
	Status   string `form:"status"`
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"page_size,default=20"`
}

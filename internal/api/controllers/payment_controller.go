package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"khqrpay/internal/models/request_models"
	"khqrpay/internal/services"
	"khqrpay/pkg/utils"
)

// Header the bank uses to carry the HMAC signature of the callback body.
const callbackSignatureHeader = "X-Callback-Signature"

type PaymentController struct {
	intentService   services.PaymentIntentServiceInterface
	statusService   services.StatusQueryServiceInterface
	callbackService services.CallbackProcessorInterface
}

func NewPaymentController(
	intentService services.PaymentIntentServiceInterface,
	statusService services.StatusQueryServiceInterface,
	callbackService services.CallbackProcessorInterface,
) *PaymentController {
	return &PaymentController{
		intentService:   intentService,
		statusService:   statusService,
		callbackService: callbackService,
	}
}

// GenerateKhqr godoc
// @Summary Create a KHQR payment intent
// @Description Register a payment with the bank and return the reference plus QR parameters
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.GenerateKhqrRequest true "Generate KHQR Request"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /khqr/generate [post]
func (p *PaymentController) GenerateKhqr(c *gin.Context) {
	var request request_models.GenerateKhqrRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	result, err := p.intentService.CreateIntent(c.Request.Context(), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "KHQR generation requested successfully")
}

// GetPaymentStatus godoc
// @Summary Poll payment status by reference
// @Tags Payments
// @Produce json
// @Param reference path string true "Reference number"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /khqr/status/{reference} [get]
func (p *PaymentController) GetPaymentStatus(c *gin.Context) {
	reference := c.Param("reference")

	result, err := p.statusService.GetStatus(c.Request.Context(), reference)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "")
}

func (p *PaymentController) ListTransactions(c *gin.Context) {
	var query request_models.ListTransactionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	items, err := p.statusService.ListTransactions(c.Request.Context(), query.Status, query.Page, query.PageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, items, "")
}

// HandleCallback ingests the bank webhook. No JWT here: authenticity comes
// from the HMAC signature over the raw body.
func (p *PaymentController) HandleCallback(c *gin.Context) {
	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Failed to read request body")
		return
	}

	signature := c.GetHeader(callbackSignatureHeader)
	if err := p.callbackService.HandleCallback(c.Request.Context(), rawBody, signature); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Callback received and processed successfully")
}

func (p *PaymentController) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

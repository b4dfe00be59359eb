package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/gymrat/internal/domain/model"
	"github.com/polkiloo/gymrat/internal/server/http/dto"
)

// PaymentHandler manages payment endpoints.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// Create handles POST /payments/.
func (h *PaymentHandler) Create(c *gin.Context) {
	var req dto.CreatePaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	payment, err := req.ToModel()
	if err != nil {
		abortDetail(c, http.StatusBadRequest, err.Error())
		return
	}
	writeOutcome(c, h.facade.AddPayment(c.Request.Context(), payment))
}

// List handles GET /payments/.
func (h *PaymentHandler) List(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortDetail(c, http.StatusBadRequest, dto.Describe(err))
		return
	}
	order, err := query.PaymentOrder()
	if err != nil {
		abortDetail(c, http.StatusBadRequest, err.Error())
		return
	}
	writeOutcome(c, h.facade.Payments(c.Request.Context(), order))
}

// ByMember handles GET /payments/member/{id}.
func (h *PaymentHandler) ByMember(c *gin.Context) {
	id := model.MemberID(c.Param("id"))
	writeOutcome(c, h.facade.MemberPayments(c.Request.Context(), id))
}

// Delete handles DELETE /payments/{id}.
func (h *PaymentHandler) Delete(c *gin.Context) {
	id := model.PaymentID(c.Param("id"))
	writeOutcome(c, h.facade.DeletePayment(c.Request.Context(), id))
}

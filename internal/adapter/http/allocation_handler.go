package http

import (
	"net/http"

	appDomain "ebursary-backend/internal/domain/application"
	"ebursary-backend/internal/domain/queue"
	allocuc "ebursary-backend/internal/usecase/allocation"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// AllocationHandler serves the staff routes: review transitions, allocation
// and disbursement.
type AllocationHandler struct{ uc *allocuc.Usecase }

func NewAllocationHandler(uc *allocuc.Usecase) *AllocationHandler {
	return &AllocationHandler{uc: uc}
}

type transitionReq struct {
	Status string `json:"status" validate:"required,status"`
	Reason string `json:"reason"`
}

type allocateReq struct {
	Amount     decimal.Decimal `json:"amount"       validate:"required,decpos,dec2"`
	FundSource string          `json:"fund_source"  validate:"required"`
	Override   bool            `json:"override"`
}

// Amount is optional; omitted means the full allocated amount.
type disburseReq struct {
	Amount *decimal.Decimal `json:"amount" validate:"omitempty,decpos,dec2"`
}

type bulkAllocateReq struct {
	ApplicationIDs []string `json:"application_ids"  validate:"required,min=1,dive,hex32"`
	FundSource     string   `json:"fund_source"      validate:"required"`
}

type queueReq struct {
	Search         string `query:"q"`
	Institution    string `query:"institution"`
	EducationLevel string `query:"education_level"`
	FundCategory   string `query:"fund_category"`
	SortBy         string `query:"sort_by"    validate:"omitempty,oneof=applicationDate requestedAmount studentName institutionName"`
	Direction      string `query:"direction"  validate:"omitempty,oneof=asc desc"`
}

type bulkAllocateResp struct {
	Count int                     `json:"count"`
	Items []appDomain.Application `json:"items"`
}

func (h *AllocationHandler) Transition(c echo.Context) error {
	actor, applicationID, code, resp := request(c, true)
	if resp != nil {
		return c.JSON(code, resp)
	}
	var req transitionReq
	if code, resp := decode(c, &req); resp != nil {
		return c.JSON(code, resp)
	}
	a, err := h.uc.Transition(c.Request().Context(), actor, applicationID, appDomain.Status(req.Status), req.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *AllocationHandler) Allocate(c echo.Context) error {
	actor, applicationID, code, resp := request(c, true)
	if resp != nil {
		return c.JSON(code, resp)
	}
	var req allocateReq
	if code, resp := decode(c, &req); resp != nil {
		return c.JSON(code, resp)
	}
	a, err := h.uc.Allocate(c.Request().Context(), actor, applicationID, allocuc.AllocateInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *AllocationHandler) Disburse(c echo.Context) error {
	actor, applicationID, code, resp := request(c, true)
	if resp != nil {
		return c.JSON(code, resp)
	}
	var req disburseReq
	if code, resp := decode(c, &req); resp != nil {
		return c.JSON(code, resp)
	}
	var amount decimal.NullDecimal
	if req.Amount != nil {
		amount = decimal.NewNullDecimal(*req.Amount)
	}
	a, err := h.uc.Disburse(c.Request().Context(), actor, applicationID, amount)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *AllocationHandler) Queue(c echo.Context) error {
	actor, _, code, resp := request(c, false)
	if resp != nil {
		return c.JSON(code, resp)
	}
	var req queueReq
	if code, resp := decode(c, &req); resp != nil {
		return c.JSON(code, resp)
	}
	res, err := h.uc.Queue(c.Request().Context(), actor, queue.Criteria{
		Search:         req.Search,
		Institution:    queue.Filter(req.Institution),
		EducationLevel: queue.Filter(req.EducationLevel),
		FundCategory:   queue.Filter(req.FundCategory),
		SortBy:         queue.SortKey(req.SortBy),
		Direction:      queue.Direction(req.Direction),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// BulkAllocate is all-or-nothing: one refused application rejects the batch.
func (h *AllocationHandler) BulkAllocate(c echo.Context) error {
	actor, _, code, resp := request(c, false)
	if resp != nil {
		return c.JSON(code, resp)
	}
	var req bulkAllocateReq
	if code, resp := decode(c, &req); resp != nil {
		return c.JSON(code, resp)
	}
	items, err := h.uc.BulkAllocate(c.Request().Context(), actor, allocuc.BulkInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, bulkAllocateResp{Count: len(items), Items: items})
}

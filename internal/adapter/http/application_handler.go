package http

import (
	"net/http"

	appDomain "ebursary-backend/internal/domain/application"
	"ebursary-backend/internal/domain/history"
	appuc "ebursary-backend/internal/usecase/application"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ApplicationHandler struct{ uc *appuc.Usecase }

func NewApplicationHandler(uc *appuc.Usecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

type createApplicationReq struct {
	InstitutionID   string          `json:"institution_id"`
	InstitutionName string          `json:"institution_name"  validate:"required"`
	EducationLevel  string          `json:"education_level"   validate:"required"`
	CourseOfStudy   string          `json:"course_of_study"   validate:"required"`
	RequestedAmount decimal.Decimal `json:"requested_amount"  validate:"required,decpos,dec2"`
	FundCategory    string          `json:"fund_category"`
}

type applicationList struct {
	Items []appDomain.Application `json:"items"`
}

type historyList struct {
	Items []history.Entry `json:"items"`
}

type transitionsResp struct {
	ApplicationID string             `json:"application_id"`
	Transitions   []appDomain.Status `json:"transitions"`
}

func (h *ApplicationHandler) Create(c echo.Context) error {
	actor, _, code, resp := request(c, false)
	if resp != nil {
		return c.JSON(code, resp)
	}
	var req createApplicationReq
	if code, resp := decode(c, &req); resp != nil {
		return c.JSON(code, resp)
	}
	a, err := h.uc.Create(c.Request().Context(), actor, appuc.CreateInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *ApplicationHandler) List(c echo.Context) error {
	actor, _, code, resp := request(c, false)
	if resp != nil {
		return c.JSON(code, resp)
	}
	items, err := h.uc.ListMine(c.Request().Context(), actor)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, applicationList{Items: items})
}

func (h *ApplicationHandler) Get(c echo.Context) error {
	actor, applicationID, code, resp := request(c, true)
	if resp != nil {
		return c.JSON(code, resp)
	}
	a, err := h.uc.Get(c.Request().Context(), actor, applicationID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *ApplicationHandler) Discard(c echo.Context) error {
	actor, applicationID, code, resp := request(c, true)
	if resp != nil {
		return c.JSON(code, resp)
	}
	if err := h.uc.Discard(c.Request().Context(), actor, applicationID); err != nil {
		return writeError(c, err)
	}
	// a body is returned so the idempotency layer can replay it
	return c.JSON(http.StatusOK, map[string]any{"application_id": applicationID, "discarded": true})
}

func (h *ApplicationHandler) Submit(c echo.Context) error {
	actor, applicationID, code, resp := request(c, true)
	if resp != nil {
		return c.JSON(code, resp)
	}
	a, err := h.uc.Submit(c.Request().Context(), actor, applicationID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *ApplicationHandler) Transitions(c echo.Context) error {
	actor, applicationID, code, resp := request(c, true)
	if resp != nil {
		return c.JSON(code, resp)
	}
	next, err := h.uc.Transitions(c.Request().Context(), actor, applicationID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, transitionsResp{ApplicationID: applicationID, Transitions: next})
}

func (h *ApplicationHandler) History(c echo.Context) error {
	actor, applicationID, code, resp := request(c, true)
	if resp != nil {
		return c.JSON(code, resp)
	}
	items, err := h.uc.History(c.Request().Context(), actor, applicationID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, historyList{Items: items})
}

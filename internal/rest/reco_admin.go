package rest

import (
	"net/http"

	"skinMatch/business/reco"
	"skinMatch/domain"

	"github.com/labstack/echo/v4"
)

type RecoAdminHandler struct {
	cfgRepo reco.ConfigRepository
}

func NewRecoAdminHandler(cfgRepo reco.ConfigRepository) *RecoAdminHandler {
	return &RecoAdminHandler{
		cfgRepo: cfgRepo,
	}
}

// GET /api/v1/admin/reco/config?scope=default
func (h *RecoAdminHandler) GetConfig(c echo.Context) error {
	ctx := c.Request().Context()
	scope := c.QueryParam("scope")

	if scope == "" {
		scope = "default"
	}

	cfg, ok, err := h.cfgRepo.GetConfig(ctx, scope)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": err.Error(),
		})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "config not found",
		})
	}

	return c.JSON(http.StatusOK, cfg)
}

// PUT /api/v1/admin/reco/config
// body: RecoConfig JSON
func (h *RecoAdminHandler) UpsertConfig(c echo.Context) error {
	ctx := c.Request().Context()

	var body domain.RecoConfig
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "invalid body: " + err.Error(),
		})
	}
	if body.Scope == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "scope is required",
		})
	}

	if err := h.cfgRepo.UpsertConfig(ctx, body); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status": "ok",
	})
}

package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/catalog"
	"github.com/trezcool/darasa/core/progress"
)

type progressApi struct {
	cat      *catalog.Catalog
	svc      progress.Service
	validate *validator.Validate
}

func registerProgressAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps Deps) {
	api := progressApi{
		cat:      deps.Catalog,
		svc:      deps.ProgressSvc,
		validate: deps.Validate,
	}

	pg := g.Group("/progress", jwt)
	pg.GET("", api.retrieve)
	pg.POST("/toggle", api.toggle)
}

// Handlers

func (api *progressApi) retrieve(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	done := api.svc.Get(ctx.Request().Context(), claims.Subject)
	return ctx.JSON(http.StatusOK, ProgressResponse{ItemIDs: done.IDs(), Count: done.Len()})
}

func (api *progressApi) toggle(ctx echo.Context) error {
	var data ToggleRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ToggleRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	if _, ok := api.cat.Item(data.ItemID); !ok {
		return core.NewValidationError(nil, core.FieldError{Field: "item_id", Error: "unknown item"})
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	done, completed := api.svc.Toggle(ctx.Request().Context(), claims.Subject, data.ItemID)
	return ctx.JSON(http.StatusOK, ToggleResponse{
		ItemID:    data.ItemID,
		Completed: completed,
		ItemIDs:   done.IDs(),
		Count:     done.Len(),
	})
}

type (
	ProgressResponse struct {
		ItemIDs []string `json:"item_ids"`
		Count   int      `json:"count"`
	}

	ToggleRequest struct {
		ItemID string `json:"item_id" validate:"required"`
	}

	ToggleResponse struct {
		ItemID    string   `json:"item_id"`
		Completed bool     `json:"completed"`
		ItemIDs   []string `json:"item_ids"`
		Count     int      `json:"count"`
	}
)

func (tr *ToggleRequest) Validate(validate *validator.Validate) error {
	tr.ItemID = core.CleanString(tr.ItemID)
	return validate.Struct(tr)
}

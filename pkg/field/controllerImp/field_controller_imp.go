package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"citronix/entities"
	"citronix/pkg/dto"
	"citronix/pkg/field/controller"
	"citronix/pkg/field/service"
	"citronix/pkg/httpx"
)

type FieldCtrl struct {
	s   service.FieldService
	now func() time.Time
}

func New(s service.FieldService, now func() time.Time) controller.FieldController {
	if now == nil {
		now = time.Now
	}
	return &FieldCtrl{s: s, now: now}
}

type fieldReq struct {
	Area   *float64 `json:"area" validate:"required,gt=0"`
	FarmID uint     `json:"farm_id" validate:"required"`
}

func (h *FieldCtrl) Create(c echo.Context) error {
	var req fieldReq
	if err := httpx.Bind(c, &req); err != nil {
		return err
	}
	f, err := h.s.CreateField(c.Request().Context(), service.FieldInput{FarmID: req.FarmID, Area: *req.Area})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.Field(f, 0, h.now()))
}

func (h *FieldCtrl) Update(c echo.Context) error {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req fieldReq
	if err := httpx.Bind(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	f, err := h.s.UpdateField(ctx, id, service.FieldInput{FarmID: req.FarmID, Area: *req.Area})
	if err != nil {
		return err
	}
	return h.one(ctx, c, f)
}

func (h *FieldCtrl) Get(c echo.Context) error {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	f, err := h.s.GetField(ctx, id)
	if err != nil {
		return err
	}
	return h.one(ctx, c, f)
}

func (h *FieldCtrl) GetWithTrees(c echo.Context) error {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		return err
	}
	f, err := h.s.GetFieldWithTrees(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.Field(f, len(f.Trees), h.now()))
}

func (h *FieldCtrl) List(c echo.Context) error {
	ctx := c.Request().Context()
	list, err := h.s.ListFields(ctx)
	if err != nil {
		return err
	}
	return h.many(ctx, c, list)
}

func (h *FieldCtrl) ByFarm(c echo.Context) error {
	farmID, err := httpx.ParamID(c, "farmId")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	list, err := h.s.FieldsByFarm(ctx, farmID)
	if err != nil {
		return err
	}
	return h.many(ctx, c, list)
}

func (h *FieldCtrl) ByMaxArea(c echo.Context) error {
	maxArea, err := httpx.ParseFloat("maxArea", c.Param("maxArea"))
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	list, err := h.s.FieldsByMaxArea(ctx, maxArea)
	if err != nil {
		return err
	}
	return h.many(ctx, c, list)
}

func (h *FieldCtrl) CountByFarm(c echo.Context) error {
	farmID, err := httpx.ParamID(c, "farmId")
	if err != nil {
		return err
	}
	n, err := h.s.CountByFarm(c.Request().Context(), farmID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"farm_id": farmID, "count": n})
}

func (h *FieldCtrl) TotalAreaByFarm(c echo.Context) error {
	farmID, err := httpx.ParamID(c, "farmId")
	if err != nil {
		return err
	}
	total, err := h.s.TotalAreaByFarm(c.Request().Context(), farmID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"farm_id": farmID, "total_area": total})
}

func (h *FieldCtrl) Delete(c echo.Context) error {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.s.DeleteField(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *FieldCtrl) one(ctx context.Context, c echo.Context, f *entities.Field) error {
	counts, err := h.s.TreeCounts(ctx, f.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.Field(f, counts[f.ID], h.now()))
}

func (h *FieldCtrl) many(ctx context.Context, c echo.Context, list []entities.Field) error {
	ids := make([]uint, 0, len(list))
	for _, f := range list {
		ids = append(ids, f.ID)
	}
	counts, err := h.s.TreeCounts(ctx, ids...)
	if err != nil {
		return err
	}
	out := make([]dto.FieldResponse, 0, len(list))
	for i := range list {
		out = append(out, dto.Field(&list[i], counts[list[i].ID], h.now()))
	}
	return c.JSON(http.StatusOK, out)
}

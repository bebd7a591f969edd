package controllerImp

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"citronix/pkg/dto"
	"citronix/pkg/httpx"
	"citronix/pkg/tree/controller"
	"citronix/pkg/tree/service"
)

type TreeCtrl struct{ s service.TreeService }

func New(s service.TreeService) controller.TreeController { return &TreeCtrl{s: s} }

type treeReq struct {
	PlantDate string `json:"plant_date" validate:"required,datetime=2006-01-02"`
	FieldID   uint   `json:"field_id" validate:"required"`
}

type batchReq struct {
	FieldID    uint     `json:"field_id" validate:"required"`
	PlantDates []string `json:"plant_dates" validate:"required,min=1,dive,datetime=2006-01-02"`
}

func (r treeReq) input() (service.TreeInput, error) {
	d, err := httpx.ParseDate("plant_date", r.PlantDate)
	if err != nil {
		return service.TreeInput{}, err
	}
	return service.TreeInput{FieldID: r.FieldID, PlantDate: d}, nil
}

func (h *TreeCtrl) Plant(c echo.Context) error {
	var req treeReq
	if err := httpx.Bind(c, &req); err != nil {
		return err
	}
	in, err := req.input()
	if err != nil {
		return err
	}
	t, err := h.s.PlantTree(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.Tree(t, h.s.Now()))
}

func (h *TreeCtrl) PlantBatch(c echo.Context) error {
	var req batchReq
	if err := httpx.Bind(c, &req); err != nil {
		return err
	}
	dates := make([]time.Time, 0, len(req.PlantDates))
	for _, raw := range req.PlantDates {
		d, err := httpx.ParseDate("plant_dates", raw)
		if err != nil {
			return err
		}
		dates = append(dates, d)
	}
	list, err := h.s.PlantTrees(c.Request().Context(), req.FieldID, dates)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.Trees(list, h.s.Now()))
}

func (h *TreeCtrl) Update(c echo.Context) error {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req treeReq
	if err := httpx.Bind(c, &req); err != nil {
		return err
	}
	in, err := req.input()
	if err != nil {
		return err
	}
	t, err := h.s.UpdateTree(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.Tree(t, h.s.Now()))
}

func (h *TreeCtrl) Get(c echo.Context) error {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		return err
	}
	t, err := h.s.GetTree(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.Tree(t, h.s.Now()))
}

func (h *TreeCtrl) List(c echo.Context) error {
	list, err := h.s.ListTrees(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.Trees(list, h.s.Now()))
}

func (h *TreeCtrl) ByField(c echo.Context) error {
	fieldID, err := httpx.ParamID(c, "fieldId")
	if err != nil {
		return err
	}
	list, err := h.s.TreesByField(c.Request().Context(), fieldID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.Trees(list, h.s.Now()))
}

func (h *TreeCtrl) ByPlantingPeriod(c echo.Context) error {
	start, end, err := httpx.QueryDateRange(c, "start", "end")
	if err != nil {
		return err
	}
	list, err := h.s.TreesByPlantingPeriod(c.Request().Context(), start, end)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.Trees(list, h.s.Now()))
}

func (h *TreeCtrl) OlderThan(c echo.Context) error {
	years, err := httpx.ParseInt("age", c.Param("age"))
	if err != nil {
		return err
	}
	list, err := h.s.TreesOlderThan(c.Request().Context(), years)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.Trees(list, h.s.Now()))
}

func (h *TreeCtrl) CountByField(c echo.Context) error {
	fieldID, err := httpx.ParamID(c, "fieldId")
	if err != nil {
		return err
	}
	n, err := h.s.CountByField(c.Request().Context(), fieldID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"field_id": fieldID, "count": n})
}

func (h *TreeCtrl) CountPlantedInPeriod(c echo.Context) error {
	fieldID, err := httpx.ParamID(c, "fieldId")
	if err != nil {
		return err
	}
	start, end, err := httpx.QueryDateRange(c, "start", "end")
	if err != nil {
		return err
	}
	n, err := h.s.CountPlantedInPeriod(c.Request().Context(), fieldID, start, end)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"field_id": fieldID, "count": n})
}

func (h *TreeCtrl) Productivity(c echo.Context) error {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		return err
	}
	p, err := h.s.Productivity(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"tree_id":        p.TreeID,
		"age":            p.Age,
		"productivity":   p.Productivity,
		"reference_date": httpx.FormatDate(p.ReferenceDate),
	})
}

func (h *TreeCtrl) Delete(c echo.Context) error {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.s.DeleteTree(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

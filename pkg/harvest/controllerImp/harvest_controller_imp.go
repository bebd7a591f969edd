package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"citronix/pkg/dto"
	"citronix/pkg/harvest/controller"
	"citronix/pkg/harvest/service"
	"citronix/pkg/httpx"
)

type HarvestCtrl struct{ s service.HarvestService }

func New(s service.HarvestService) controller.HarvestController { return &HarvestCtrl{s: s} }

type harvestReq struct {
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
	Season string `json:"season" validate:"required"`
}

func (r harvestReq) input() (service.HarvestInput, error) {
	d, err := httpx.ParseDate("date", r.Date)
	if err != nil {
		return service.HarvestInput{}, err
	}
	s, err := httpx.ParseSeason("season", r.Season)
	if err != nil {
		return service.HarvestInput{}, err
	}
	return service.HarvestInput{Date: d, Season: s}, nil
}

func (h *HarvestCtrl) Create(c echo.Context) error {
	var req harvestReq
	if err := httpx.Bind(c, &req); err != nil {
		return err
	}
	in, err := req.input()
	if err != nil {
		return err
	}
	out, err := h.s.CreateHarvest(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.Harvest(out))
}

func (h *HarvestCtrl) Update(c echo.Context) error {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req harvestReq
	if err := httpx.Bind(c, &req); err != nil {
		return err
	}
	in, err := req.input()
	if err != nil {
		return err
	}
	out, err := h.s.UpdateHarvest(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.Harvest(out))
}

func (h *HarvestCtrl) Get(c echo.Context) error {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.s.GetHarvest(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.Harvest(out))
}

func (h *HarvestCtrl) GetWithDetails(c echo.Context) error {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.s.GetHarvestWithDetails(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.Harvest(out))
}

func (h *HarvestCtrl) List(c echo.Context) error {
	list, err := h.s.ListHarvests(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.Harvests(list))
}

func (h *HarvestCtrl) BySeason(c echo.Context) error {
	s, err := httpx.ParseSeason("season", c.Param("season"))
	if err != nil {
		return err
	}
	list, err := h.s.HarvestsBySeason(c.Request().Context(), s)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.Harvests(list))
}

func (h *HarvestCtrl) ByDateRange(c echo.Context) error {
	start, end, err := httpx.QueryDateRange(c, "start", "end")
	if err != nil {
		return err
	}
	list, err := h.s.HarvestsByDateRange(c.Request().Context(), start, end)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.Harvests(list))
}

func (h *HarvestCtrl) TotalQuantityBetween(c echo.Context) error {
	start, end, err := httpx.QueryDateRange(c, "start", "end")
	if err != nil {
		return err
	}
	total, err := h.s.TotalQuantityBetween(c.Request().Context(), start, end)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"start":          httpx.FormatDate(start),
		"end":            httpx.FormatDate(end),
		"total_quantity": total,
	})
}

func (h *HarvestCtrl) Recompute(c echo.Context) error {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		return err
	}
	total, err := h.s.RecomputeTotal(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"harvest_id": id, "total_quantity": total})
}

func (h *HarvestCtrl) Delete(c echo.Context) error {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.s.DeleteHarvest(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

package controllerImp

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"citronix/pkg/apperr"
	"citronix/pkg/dto"
	"citronix/pkg/farm/controller"
	"citronix/pkg/farm/service"
	"citronix/pkg/httpx"
)

type FarmCtrl struct {
	s   service.FarmService
	now func() time.Time
}

func New(s service.FarmService, now func() time.Time) controller.FarmController {
	if now == nil {
		now = time.Now
	}
	return &FarmCtrl{s: s, now: now}
}

type farmReq struct {
	Name         string   `json:"name" validate:"required"`
	Location     string   `json:"location" validate:"required"`
	Area         *float64 `json:"area" validate:"required,gt=0"`
	CreationDate string   `json:"creation_date" validate:"required,datetime=2006-01-02"`
}

func (r farmReq) input() (service.FarmInput, error) {
	d, err := httpx.ParseDate("creation_date", r.CreationDate)
	if err != nil {
		return service.FarmInput{}, err
	}
	return service.FarmInput{Name: r.Name, Location: r.Location, Area: *r.Area, CreationDate: d}, nil
}

func (h *FarmCtrl) Create(c echo.Context) error {
	var req farmReq
	if err := httpx.Bind(c, &req); err != nil {
		return err
	}
	in, err := req.input()
	if err != nil {
		return err
	}
	f, err := h.s.CreateFarm(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.Farm(f, h.now()))
}

func (h *FarmCtrl) Update(c echo.Context) error {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req farmReq
	if err := httpx.Bind(c, &req); err != nil {
		return err
	}
	in, err := req.input()
	if err != nil {
		return err
	}
	f, err := h.s.UpdateFarm(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.Farm(f, h.now()))
}

func (h *FarmCtrl) Get(c echo.Context) error {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		return err
	}
	f, err := h.s.GetFarm(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.Farm(f, h.now()))
}

func (h *FarmCtrl) GetWithFields(c echo.Context) error {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		return err
	}
	f, err := h.s.GetFarmWithFields(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.Farm(f, h.now()))
}

func (h *FarmCtrl) List(c echo.Context) error {
	list, err := h.s.ListFarms(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.Farms(list, h.now()))
}

func (h *FarmCtrl) LeftArea(c echo.Context) error {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		return err
	}
	left, err := h.s.LeftArea(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"farm_id": id, "left_area": left})
}

func (h *FarmCtrl) Delete(c echo.Context) error {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.s.DeleteFarm(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *FarmCtrl) ByMinArea(c echo.Context) error {
	minArea, err := httpx.ParseFloat("minArea", c.Param("minArea"))
	if err != nil {
		return err
	}
	list, err := h.s.FarmsByMinArea(c.Request().Context(), minArea)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.Farms(list, h.now()))
}

func (h *FarmCtrl) ByDateRange(c echo.Context) error {
	start, end, err := httpx.QueryDateRange(c, "start", "end")
	if err != nil {
		return err
	}
	list, err := h.s.FarmsByCreationDate(c.Request().Context(), start, end)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.Farms(list, h.now()))
}

func (h *FarmCtrl) NameExists(c echo.Context) error {
	name := c.QueryParam("name")
	if name == "" {
		return apperr.Malformed("name is required", map[string]string{"name": "required"})
	}
	ok, err := h.s.NameExists(c.Request().Context(), name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"name": name, "exists": ok})
}

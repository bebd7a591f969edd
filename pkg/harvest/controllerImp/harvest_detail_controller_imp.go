package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"citronix/pkg/dto"
	"citronix/pkg/harvest/controller"
	"citronix/pkg/harvest/service"
	"citronix/pkg/httpx"
)

type DetailCtrl struct{ s service.HarvestDetailService }

func NewDetail(s service.HarvestDetailService) controller.HarvestDetailController {
	return &DetailCtrl{s: s}
}

type detailReq struct {
	TreeID uint `json:"tree_id" validate:"required"`
}

type treeSeasonReq struct {
	TreeID uint   `json:"tree_id" validate:"required"`
	Season string `json:"season" validate:"required"`
	Year   int    `json:"year" validate:"required,gt=0"`
}

func (h *DetailCtrl) Add(c echo.Context) error {
	harvestID, err := httpx.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req detailReq
	if err := httpx.Bind(c, &req); err != nil {
		return err
	}
	d, err := h.s.AddDetail(c.Request().Context(), harvestID, req.TreeID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.HarvestDetail(d))
}

func (h *DetailCtrl) Update(c echo.Context) error {
	id, err := httpx.ParamID(c, "detailId")
	if err != nil {
		return err
	}
	var req detailReq
	if err := httpx.Bind(c, &req); err != nil {
		return err
	}
	d, err := h.s.UpdateDetail(c.Request().Context(), id, req.TreeID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.HarvestDetail(d))
}

func (h *DetailCtrl) Get(c echo.Context) error {
	id, err := httpx.ParamID(c, "detailId")
	if err != nil {
		return err
	}
	d, err := h.s.GetDetail(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.HarvestDetail(d))
}

func (h *DetailCtrl) List(c echo.Context) error {
	list, err := h.s.ListDetails(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.HarvestDetails(list))
}

func (h *DetailCtrl) ByHarvest(c echo.Context) error {
	harvestID, err := httpx.ParamID(c, "id")
	if err != nil {
		return err
	}
	list, err := h.s.DetailsByHarvest(c.Request().Context(), harvestID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.HarvestDetails(list))
}

func (h *DetailCtrl) ByTree(c echo.Context) error {
	treeID, err := httpx.ParamID(c, "treeId")
	if err != nil {
		return err
	}
	list, err := h.s.DetailsByTree(c.Request().Context(), treeID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.HarvestDetails(list))
}

func (h *DetailCtrl) Delete(c echo.Context) error {
	id, err := httpx.ParamID(c, "detailId")
	if err != nil {
		return err
	}
	if err := h.s.DeleteDetail(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *DetailCtrl) TotalQuantity(c echo.Context) error {
	harvestID, err := httpx.ParamID(c, "id")
	if err != nil {
		return err
	}
	total, err := h.s.TotalQuantity(c.Request().Context(), harvestID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"harvest_id": harvestID, "total_quantity": total})
}

func (h *DetailCtrl) ValidateTreeSeason(c echo.Context) error {
	var req treeSeasonReq
	if err := httpx.Bind(c, &req); err != nil {
		return err
	}
	s, err := httpx.ParseSeason("season", req.Season)
	if err != nil {
		return err
	}
	harvested, err := h.s.IsTreeHarvestedInSeason(c.Request().Context(), req.TreeID, s, req.Year)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"tree_id":   req.TreeID,
		"season":    s,
		"year":      req.Year,
		"harvested": harvested,
	})
}

func (h *DetailCtrl) BulkForField(c echo.Context) error {
	harvestID, err := httpx.ParamID(c, "id")
	if err != nil {
		return err
	}
	fieldID, err := httpx.ParamID(c, "fieldId")
	if err != nil {
		return err
	}
	list, err := h.s.BulkForField(c.Request().Context(), harvestID, fieldID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.HarvestDetails(list))
}

func (h *DetailCtrl) BulkForFarm(c echo.Context) error {
	harvestID, err := httpx.ParamID(c, "id")
	if err != nil {
		return err
	}
	farmID, err := httpx.ParamID(c, "farmId")
	if err != nil {
		return err
	}
	list, err := h.s.BulkForFarm(c.Request().Context(), harvestID, farmID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.HarvestDetails(list))
}

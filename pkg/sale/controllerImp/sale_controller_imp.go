package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"citronix/pkg/dto"
	"citronix/pkg/httpx"
	"citronix/pkg/sale/controller"
	"citronix/pkg/sale/service"
)

type SaleCtrl struct{ s service.SaleService }

func New(s service.SaleService) controller.SaleController { return &SaleCtrl{s: s} }

type saleReq struct {
	Date      string  `json:"date" validate:"required,datetime=2006-01-02"`
	UnitPrice float64 `json:"unit_price" validate:"required,gt=0"`
	Customer  string  `json:"customer" validate:"required"`
	HarvestID uint    `json:"harvest_id" validate:"required"`
}

func (r saleReq) input() (service.SaleInput, error) {
	d, err := httpx.ParseDate("date", r.Date)
	if err != nil {
		return service.SaleInput{}, err
	}
	return service.SaleInput{Date: d, UnitPrice: r.UnitPrice, Customer: r.Customer, HarvestID: r.HarvestID}, nil
}

func (h *SaleCtrl) Create(c echo.Context) error {
	var req saleReq
	if err := httpx.Bind(c, &req); err != nil {
		return err
	}
	in, err := req.input()
	if err != nil {
		return err
	}
	s, err := h.s.CreateSale(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.Sale(s))
}

func (h *SaleCtrl) Update(c echo.Context) error {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req saleReq
	if err := httpx.Bind(c, &req); err != nil {
		return err
	}
	in, err := req.input()
	if err != nil {
		return err
	}
	s, err := h.s.UpdateSale(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.Sale(s))
}

func (h *SaleCtrl) Get(c echo.Context) error {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		return err
	}
	s, err := h.s.GetSale(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.Sale(s))
}

func (h *SaleCtrl) List(c echo.Context) error {
	list, err := h.s.ListSales(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.Sales(list))
}

func (h *SaleCtrl) ByHarvest(c echo.Context) error {
	harvestID, err := httpx.ParamID(c, "harvestId")
	if err != nil {
		return err
	}
	list, err := h.s.SalesByHarvest(c.Request().Context(), harvestID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.Sales(list))
}

func (h *SaleCtrl) ByDateRange(c echo.Context) error {
	start, end, err := httpx.QueryDateRange(c, "start", "end")
	if err != nil {
		return err
	}
	list, err := h.s.SalesByDateRange(c.Request().Context(), start, end)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.Sales(list))
}

func (h *SaleCtrl) ByCustomer(c echo.Context) error {
	list, err := h.s.SalesByCustomer(c.Request().Context(), c.Param("customer"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.Sales(list))
}

func (h *SaleCtrl) Delete(c echo.Context) error {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.s.DeleteSale(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *SaleCtrl) TotalRevenue(c echo.Context) error {
	start, end, err := httpx.QueryDateRange(c, "start", "end")
	if err != nil {
		return err
	}
	total, err := h.s.TotalRevenueBetween(c.Request().Context(), start, end)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"start":         httpx.FormatDate(start),
		"end":           httpx.FormatDate(end),
		"total_revenue": total,
	})
}

func (h *SaleCtrl) AveragePriceBySeason(c echo.Context) error {
	se, err := httpx.ParseSeason("season", c.Param("season"))
	if err != nil {
		return err
	}
	avg, err := h.s.AverageUnitPriceBySeason(c.Request().Context(), se)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"season": se, "average_unit_price": avg})
}

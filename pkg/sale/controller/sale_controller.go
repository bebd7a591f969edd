package controller

import "github.com/labstack/echo/v4"

type SaleController interface {
	Create(c echo.Context) error
	Update(c echo.Context) error
	Get(c echo.Context) error
	List(c echo.Context) error
	ByHarvest(c echo.Context) error
	ByDateRange(c echo.Context) error
	ByCustomer(c echo.Context) error
	Delete(c echo.Context) error
	TotalRevenue(c echo.Context) error
	AveragePriceBySeason(c echo.Context) error
}

package controller

import "github.com/labstack/echo/v4"

type HarvestController interface {
	Create(c echo.Context) error
	Update(c echo.Context) error
	Get(c echo.Context) error
	GetWithDetails(c echo.Context) error
	List(c echo.Context) error
	BySeason(c echo.Context) error
	ByDateRange(c echo.Context) error
	TotalQuantityBetween(c echo.Context) error
	Recompute(c echo.Context) error
	Delete(c echo.Context) error
}

type HarvestDetailController interface {
	Add(c echo.Context) error
	Update(c echo.Context) error
	Get(c echo.Context) error
	List(c echo.Context) error
	ByHarvest(c echo.Context) error
	ByTree(c echo.Context) error
	Delete(c echo.Context) error
	TotalQuantity(c echo.Context) error
	ValidateTreeSeason(c echo.Context) error
	BulkForField(c echo.Context) error
	BulkForFarm(c echo.Context) error
}

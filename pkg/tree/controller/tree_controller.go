package controller

import "github.com/labstack/echo/v4"

type TreeController interface {
	Plant(c echo.Context) error
	PlantBatch(c echo.Context) error
	Update(c echo.Context) error
	Get(c echo.Context) error
	List(c echo.Context) error
	ByField(c echo.Context) error
	ByPlantingPeriod(c echo.Context) error
	OlderThan(c echo.Context) error
	CountByField(c echo.Context) error
	CountPlantedInPeriod(c echo.Context) error
	Productivity(c echo.Context) error
	Delete(c echo.Context) error
}

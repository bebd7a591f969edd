package controller

import "github.com/labstack/echo/v4"

type FarmController interface {
	Create(c echo.Context) error
	Update(c echo.Context) error
	Get(c echo.Context) error
	GetWithFields(c echo.Context) error
	List(c echo.Context) error
	LeftArea(c echo.Context) error
	Delete(c echo.Context) error
	ByMinArea(c echo.Context) error
	ByDateRange(c echo.Context) error
	NameExists(c echo.Context) error
}

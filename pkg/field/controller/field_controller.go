package controller

import "github.com/labstack/echo/v4"

type FieldController interface {
	Create(c echo.Context) error
	Update(c echo.Context) error
	Get(c echo.Context) error
	GetWithTrees(c echo.Context) error
	List(c echo.Context) error
	ByFarm(c echo.Context) error
	ByMaxArea(c echo.Context) error
	CountByFarm(c echo.Context) error
	TotalAreaByFarm(c echo.Context) error
	Delete(c echo.Context) error
}

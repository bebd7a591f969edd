package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	farmCtrl "citronix/pkg/farm/controller"
	fieldCtrl "citronix/pkg/field/controller"
	harvestCtrl "citronix/pkg/harvest/controller"
	healthCtrl "citronix/pkg/health/controller"
	saleCtrl "citronix/pkg/sale/controller"
	treeCtrl "citronix/pkg/tree/controller"
)

type Controllers struct {
	Farm    farmCtrl.FarmController
	Field   fieldCtrl.FieldController
	Tree    treeCtrl.TreeController
	Harvest harvestCtrl.HarvestController
	Detail  harvestCtrl.HarvestDetailController
	Sale    saleCtrl.SaleController
	Report  interface{ SalesXLSX(echo.Context) error }
	Health  healthCtrl.HealthController
	Metrics http.Handler
}

func New(e *echo.Echo, c Controllers) *echo.Echo {
	e.GET("/health", c.Health.Health)
	if c.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(c.Metrics))
	}

	farms := e.Group("/farms")
	farms.POST("", c.Farm.Create)
	farms.GET("", c.Farm.List)
	farms.GET("/exists", c.Farm.NameExists)
	farms.GET("/by-min-area/:minArea", c.Farm.ByMinArea)
	farms.GET("/by-date-range", c.Farm.ByDateRange)
	farms.GET("/:id", c.Farm.Get)
	farms.GET("/:id/with-fields", c.Farm.GetWithFields)
	farms.GET("/:id/left-area", c.Farm.LeftArea)
	farms.PUT("/:id", c.Farm.Update)
	farms.DELETE("/:id", c.Farm.Delete)

	fields := e.Group("/fields")
	fields.POST("", c.Field.Create)
	fields.GET("", c.Field.List)
	fields.GET("/by-farm/:farmId", c.Field.ByFarm)
	fields.GET("/by-max-area/:maxArea", c.Field.ByMaxArea)
	fields.GET("/count/by-farm/:farmId", c.Field.CountByFarm)
	fields.GET("/total-area/by-farm/:farmId", c.Field.TotalAreaByFarm)
	fields.GET("/:id", c.Field.Get)
	fields.GET("/:id/with-trees", c.Field.GetWithTrees)
	fields.PUT("/:id", c.Field.Update)
	fields.DELETE("/:id", c.Field.Delete)

	trees := e.Group("/trees")
	trees.POST("", c.Tree.Plant)
	trees.POST("/batch", c.Tree.PlantBatch)
	trees.GET("", c.Tree.List)
	trees.GET("/by-field/:fieldId", c.Tree.ByField)
	trees.GET("/by-planting-period", c.Tree.ByPlantingPeriod)
	trees.GET("/older-than/:age", c.Tree.OlderThan)
	trees.GET("/count/by-field/:fieldId", c.Tree.CountByField)
	trees.GET("/count/by-field/:fieldId/planted-in-period", c.Tree.CountPlantedInPeriod)
	trees.GET("/:id", c.Tree.Get)
	trees.GET("/:id/productivity", c.Tree.Productivity)
	trees.PUT("/:id", c.Tree.Update)
	trees.DELETE("/:id", c.Tree.Delete)

	harvests := e.Group("/harvests")
	harvests.POST("", c.Harvest.Create)
	harvests.GET("", c.Harvest.List)
	harvests.GET("/by-season/:season", c.Harvest.BySeason)
	harvests.GET("/by-date-range", c.Harvest.ByDateRange)
	harvests.GET("/total-quantity/by-date-range", c.Harvest.TotalQuantityBetween)
	harvests.GET("/:id", c.Harvest.Get)
	harvests.GET("/:id/with-details", c.Harvest.GetWithDetails)
	harvests.POST("/:id/recompute", c.Harvest.Recompute)
	harvests.PUT("/:id", c.Harvest.Update)
	harvests.DELETE("/:id", c.Harvest.Delete)

	harvests.GET("/details", c.Detail.List)
	harvests.GET("/details/by-tree/:treeId", c.Detail.ByTree)
	harvests.GET("/details/:detailId", c.Detail.Get)
	harvests.PUT("/details/:detailId", c.Detail.Update)
	harvests.DELETE("/details/:detailId", c.Detail.Delete)
	harvests.POST("/validate-tree-season", c.Detail.ValidateTreeSeason)
	harvests.POST("/:id/details", c.Detail.Add)
	harvests.GET("/:id/details", c.Detail.ByHarvest)
	harvests.GET("/:id/total-quantity", c.Detail.TotalQuantity)
	harvests.POST("/:id/details/by-field/:fieldId", c.Detail.BulkForField)
	harvests.POST("/:id/details/by-farm/:farmId", c.Detail.BulkForFarm)

	sales := e.Group("/sales")
	sales.POST("", c.Sale.Create)
	sales.GET("", c.Sale.List)
	sales.GET("/by-harvest/:harvestId", c.Sale.ByHarvest)
	sales.GET("/by-date-range", c.Sale.ByDateRange)
	sales.GET("/by-customer/:customer", c.Sale.ByCustomer)
	sales.GET("/total-revenue/by-date-range", c.Sale.TotalRevenue)
	sales.GET("/average-price/by-season/:season", c.Sale.AveragePriceBySeason)
	sales.GET("/:id", c.Sale.Get)
	sales.PUT("/:id", c.Sale.Update)
	sales.DELETE("/:id", c.Sale.Delete)

	e.GET("/reports/sales.xlsx", c.Report.SalesXLSX)
	return e
}

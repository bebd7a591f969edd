package router

import (
	"time"

	"gorm.io/gorm"

	"citronix/database"
	farmCtrlImp "citronix/pkg/farm/controllerImp"
	farmRepoImp "citronix/pkg/farm/repositoryImp"
	farmSvcImp "citronix/pkg/farm/serviceImp"
	fieldCtrlImp "citronix/pkg/field/controllerImp"
	fieldRepoImp "citronix/pkg/field/repositoryImp"
	fieldSvcImp "citronix/pkg/field/serviceImp"
	harvestCtrlImp "citronix/pkg/harvest/controllerImp"
	harvestRepoImp "citronix/pkg/harvest/repositoryImp"
	harvestSvcImp "citronix/pkg/harvest/serviceImp"
	healthCtrlImp "citronix/pkg/health/controllerImp"
	"citronix/pkg/logger"
	"citronix/pkg/metrics"
	"citronix/pkg/report"
	reportCtrlImp "citronix/pkg/report/controllerImp"
	saleCtrlImp "citronix/pkg/sale/controllerImp"
	saleRepoImp "citronix/pkg/sale/repositoryImp"
	saleSvcImp "citronix/pkg/sale/serviceImp"
	treeCtrlImp "citronix/pkg/tree/controllerImp"
	treeRepoImp "citronix/pkg/tree/repositoryImp"
	treeSvcImp "citronix/pkg/tree/serviceImp"
)

type Deps struct {
	DB      *gorm.DB
	Log     *logger.Logger
	Metrics *metrics.Metrics
	Env     string
	// Now is the clock for ages and productivity; nil means time.Now.
	Now func() time.Time
}

// Wire builds repositories, services and controllers over one database.
func Wire(d Deps) Controllers {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	tx := database.NewTxRunner(d.DB)

	farmRepo := farmRepoImp.New(d.DB)
	fieldRepo := fieldRepoImp.New(d.DB)
	treeRepo := treeRepoImp.New(d.DB)
	harvestRepo := harvestRepoImp.New(d.DB)
	detailRepo := harvestRepoImp.NewDetailRepository(d.DB)
	saleRepo := saleRepoImp.New(d.DB)

	farmSvc := farmSvcImp.NewFarmService(tx, farmRepo, d.Log)
	fieldSvc := fieldSvcImp.NewFieldService(tx, fieldRepo, farmRepo, d.Log)
	treeSvc := treeSvcImp.NewTreeService(tx, treeRepo, fieldRepo, d.Log, now)
	harvestSvc := harvestSvcImp.NewHarvestService(tx, harvestRepo, d.Log)
	detailSvc := harvestSvcImp.NewHarvestDetailService(tx, harvestSvcImp.Deps{
		Harvests: harvestRepo,
		Details:  detailRepo,
		Trees:    treeRepo,
		Fields:   fieldRepo,
		Farms:    farmRepo,
	}, d.Log, now)
	saleSvc := saleSvcImp.NewSaleService(tx, saleRepo, harvestRepo, d.Log)

	c := Controllers{
		Farm:    farmCtrlImp.New(farmSvc, now),
		Field:   fieldCtrlImp.New(fieldSvc, now),
		Tree:    treeCtrlImp.New(treeSvc),
		Harvest: harvestCtrlImp.New(harvestSvc),
		Detail:  harvestCtrlImp.NewDetail(detailSvc),
		Sale:    saleCtrlImp.New(saleSvc),
		Report:  reportCtrlImp.New(report.NewBuilder(harvestSvc, saleSvc)),
		Health:  healthCtrlImp.New(d.DB, d.Env),
	}
	if d.Metrics != nil {
		c.Metrics = d.Metrics.Handler()
	}
	return c
}

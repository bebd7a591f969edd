package serviceImp

import (
	"context"
	"strings"
	"time"

	"citronix/database"
	"citronix/entities"
	"citronix/pkg/apperr"
	"citronix/pkg/dbctx"
	harvestRepo "citronix/pkg/harvest/repository"
	"citronix/pkg/logger"
	"citronix/pkg/rules"
	"citronix/pkg/sale/repository"
	"citronix/pkg/sale/service"
	"citronix/pkg/season"
)

type saleSvc struct {
	tx       database.TxRunner
	r        repository.SaleRepository
	harvests harvestRepo.HarvestRepository
	log      *logger.Logger
}

func NewSaleService(tx database.TxRunner, r repository.SaleRepository, harvests harvestRepo.HarvestRepository, log *logger.Logger) service.SaleService {
	return &saleSvc{tx: tx, r: r, harvests: harvests, log: log.With("service", "sale")}
}

func normalize(in service.SaleInput) (service.SaleInput, error) {
	in.Customer = strings.TrimSpace(in.Customer)
	in.Date = rules.DateOf(in.Date)
	if in.Customer == "" {
		return in, apperr.Malformed("customer is required", map[string]string{"customer": "required"})
	}
	if in.UnitPrice <= 0 {
		return in, apperr.Malformed("unit price must be positive", map[string]string{"unit_price": "must be positive"})
	}
	return in, nil
}

func (s *saleSvc) CreateSale(ctx context.Context, in service.SaleInput) (*entities.Sale, error) {
	in, err := normalize(in)
	if err != nil {
		return nil, err
	}
	var out *entities.Sale
	err = s.tx.InTx(ctx, func(dbc dbctx.Context) error {
		h, err := s.harvests.FindByID(dbc, in.HarvestID)
		if err != nil {
			return err
		}
		if err := rules.ValidateHarvestHasQuantity(h.TotalQuantity); err != nil {
			return err
		}
		if err := rules.ValidateSaleNotBeforeHarvest(in.Date, h.Date); err != nil {
			return err
		}
		sold, err := s.r.CountByHarvest(dbc, h.ID)
		if err != nil {
			return err
		}
		if err := rules.ValidateHarvestNotAlreadySold(h.ID, sold > 0); err != nil {
			return err
		}
		sale := &entities.Sale{Date: in.Date, UnitPrice: in.UnitPrice, Customer: in.Customer, HarvestID: h.ID}
		if err := s.r.Create(dbc, sale); err != nil {
			return err
		}
		sale.Harvest = h
		out = sale
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("sale created", "sale_id", out.ID, "harvest_id", out.HarvestID, "revenue", out.Revenue())
	return out, nil
}

func (s *saleSvc) UpdateSale(ctx context.Context, id uint, in service.SaleInput) (*entities.Sale, error) {
	in, err := normalize(in)
	if err != nil {
		return nil, err
	}
	var out *entities.Sale
	err = s.tx.InTx(ctx, func(dbc dbctx.Context) error {
		sale, err := s.r.FindByID(dbc, id)
		if err != nil {
			return err
		}
		h, err := s.harvests.FindByID(dbc, in.HarvestID)
		if err != nil {
			return err
		}
		if err := rules.ValidateSaleNotBeforeHarvest(in.Date, h.Date); err != nil {
			return err
		}
		if err := rules.ValidateHarvestHasQuantity(h.TotalQuantity); err != nil {
			return err
		}
		sale.Date, sale.UnitPrice, sale.Customer, sale.HarvestID = in.Date, in.UnitPrice, in.Customer, h.ID
		if err := s.r.Update(dbc, sale); err != nil {
			return err
		}
		sale.Harvest = h
		out = sale
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("sale updated", "sale_id", id, "harvest_id", out.HarvestID)
	return out, nil
}

func (s *saleSvc) GetSale(ctx context.Context, id uint) (*entities.Sale, error) {
	return s.r.FindByID(dbctx.Of(ctx), id)
}

func (s *saleSvc) ListSales(ctx context.Context) ([]entities.Sale, error) {
	return s.r.List(dbctx.Of(ctx))
}

func (s *saleSvc) SalesByHarvest(ctx context.Context, harvestID uint) ([]entities.Sale, error) {
	dbc := dbctx.Of(ctx)
	if _, err := s.harvests.FindByID(dbc, harvestID); err != nil {
		return nil, err
	}
	return s.r.FindByHarvest(dbc, harvestID)
}

func (s *saleSvc) SalesByDateRange(ctx context.Context, start, end time.Time) ([]entities.Sale, error) {
	if err := rules.ValidateDateRange(start, end); err != nil {
		return nil, err
	}
	return s.r.FindByDateBetween(dbctx.Of(ctx), rules.DateOf(start), rules.DateOf(end))
}

func (s *saleSvc) SalesByCustomer(ctx context.Context, customer string) ([]entities.Sale, error) {
	return s.r.FindByCustomer(dbctx.Of(ctx), strings.TrimSpace(customer))
}

func (s *saleSvc) DeleteSale(ctx context.Context, id uint) error {
	err := s.tx.InTx(ctx, func(dbc dbctx.Context) error {
		return s.r.Delete(dbc, id)
	})
	if err != nil {
		return err
	}
	s.log.Info("sale deleted", "sale_id", id)
	return nil
}

func (s *saleSvc) TotalRevenueBetween(ctx context.Context, start, end time.Time) (float64, error) {
	if err := rules.ValidateDateRange(start, end); err != nil {
		return 0, err
	}
	return s.r.TotalRevenueBetween(dbctx.Of(ctx), rules.DateOf(start), rules.DateOf(end))
}

func (s *saleSvc) AverageUnitPriceBySeason(ctx context.Context, se season.Season) (float64, error) {
	return s.r.AverageUnitPriceBySeason(dbctx.Of(ctx), se)
}

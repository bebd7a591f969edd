package serviceImp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"citronix/database"
	"citronix/entities"
	"citronix/pkg/apperr"
	farmRepoImp "citronix/pkg/farm/repositoryImp"
	fieldRepoImp "citronix/pkg/field/repositoryImp"
	"citronix/pkg/harvest/repositoryImp"
	"citronix/pkg/harvest/service"
	"citronix/pkg/season"
	"citronix/pkg/testutil"
	treeRepoImp "citronix/pkg/tree/repositoryImp"
)

var (
	today      = testutil.Date(2024, time.June, 15)
	springDay  = testutil.Date(2024, time.April, 10)
	summerDay  = testutil.Date(2024, time.July, 10)
	matureTree = testutil.Date(2014, time.April, 1)
	oldTree    = testutil.Date(2000, time.April, 1)
	youngTree  = testutil.Date(2021, time.April, 1)
	middleTree = testutil.Date(2018, time.April, 1)
)

type fixture struct {
	harvests service.HarvestService
	details  service.HarvestDetailService
	db       *gorm.DB
}

func newFixture(t *testing.T) fixture {
	db := testutil.DB(t)
	tx := database.NewTxRunner(db)
	log := testutil.Logger(t)
	hr := repositoryImp.New(db)
	return fixture{
		harvests: NewHarvestService(tx, hr, log),
		details: NewHarvestDetailService(tx, Deps{
			Harvests: hr,
			Details:  repositoryImp.NewDetailRepository(db),
			Trees:    treeRepoImp.New(db),
			Fields:   fieldRepoImp.New(db),
			Farms:    farmRepoImp.New(db),
		}, log, testutil.Clock(today)),
		db: db,
	}
}

func seedField(t *testing.T, db *gorm.DB) *entities.Field {
	farm := testutil.SeedFarm(t, db, t.Name(), 100)
	return testutil.SeedField(t, db, farm.ID, 10)
}

func isRule(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindBusinessRule), "got %v", err)
}

func TestCreateHarvest_ScenarioD(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	h, err := f.harvests.CreateHarvest(ctx, service.HarvestInput{Date: springDay, Season: season.Spring})
	require.NoError(t, err)
	assert.Equal(t, 2024, h.Year)
	assert.False(t, h.Locked)

	_, err = f.harvests.CreateHarvest(ctx, service.HarvestInput{Date: testutil.Date(2024, time.April, 20), Season: season.Spring})
	isRule(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = f.harvests.CreateHarvest(ctx, service.HarvestInput{Date: springDay, Season: season.Winter})
	isRule(t, err)

	_, err = f.harvests.CreateHarvest(ctx, service.HarvestInput{Date: testutil.Date(2025, time.April, 20), Season: season.Spring})
	assert.NoError(t, err, "same season in another year")
}

func TestUpdateHarvest_LockedAfterFirstDetail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	field := seedField(t, f.db)
	tree := testutil.SeedTree(t, f.db, field.ID, matureTree)

	h, err := f.harvests.CreateHarvest(ctx, service.HarvestInput{Date: springDay, Season: season.Spring})
	require.NoError(t, err)

	moved, err := f.harvests.UpdateHarvest(ctx, h.ID, service.HarvestInput{Date: testutil.Date(2024, time.May, 2), Season: season.Spring})
	require.NoError(t, err, "open harvests can move")
	assert.Equal(t, testutil.Date(2024, time.May, 2), moved.Date)

	_, err = f.details.AddDetail(ctx, h.ID, tree.ID)
	require.NoError(t, err)

	_, err = f.harvests.UpdateHarvest(ctx, h.ID, service.HarvestInput{Date: springDay, Season: season.Spring})
	isRule(t, err)

	_, err = f.harvests.UpdateHarvest(ctx, h.ID, service.HarvestInput{Date: testutil.Date(2024, time.May, 2), Season: season.Spring})
	assert.NoError(t, err)
}

func TestUpdateHarvest_SeasonTakenByAnother(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.harvests.CreateHarvest(ctx, service.HarvestInput{Date: springDay, Season: season.Spring})
	require.NoError(t, err)
	summer, err := f.harvests.CreateHarvest(ctx, service.HarvestInput{Date: summerDay, Season: season.Summer})
	require.NoError(t, err)

	_, err = f.harvests.UpdateHarvest(ctx, summer.ID, service.HarvestInput{Date: testutil.Date(2024, time.May, 1), Season: season.Spring})
	isRule(t, err)

	_, err = f.harvests.UpdateHarvest(ctx, 999, service.HarvestInput{Date: summerDay, Season: season.Summer})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestAddDetail_CapturesProductivityAtHarvestDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	field := seedField(t, f.db)
	tree := testutil.SeedTree(t, f.db, field.ID, matureTree)
	h := testutil.SeedHarvest(t, f.db, springDay)

	d, err := f.details.AddDetail(ctx, h.ID, tree.ID)
	require.NoError(t, err)
	assert.Equal(t, 12.0, d.Quantity)

	got, err := f.harvests.GetHarvestWithDetails(ctx, h.ID)
	require.NoError(t, err)
	assert.True(t, got.Locked)
	assert.Equal(t, 12.0, got.TotalQuantity)
	assert.Len(t, got.Details, 1)

	_, err = f.details.AddDetail(ctx, h.ID, tree.ID)
	isRule(t, err)
	assert.Contains(t, err.Error(), "already been harvested")
}

func TestAddDetail_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	field := seedField(t, f.db)
	old := testutil.SeedTree(t, f.db, field.ID, oldTree)
	h := testutil.SeedHarvest(t, f.db, springDay)

	_, err := f.details.AddDetail(ctx, h.ID, old.ID)
	isRule(t, err)

	_, err = f.details.AddDetail(ctx, h.ID, 999)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	_, err = f.details.AddDetail(ctx, 999, old.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	got, err := f.harvests.GetHarvest(ctx, h.ID)
	require.NoError(t, err)
	assert.False(t, got.Locked, "rejected details leave the harvest open")
}

func TestUpdateDetail_RepointsTree(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	field := seedField(t, f.db)
	a := testutil.SeedTree(t, f.db, field.ID, matureTree)
	b := testutil.SeedTree(t, f.db, field.ID, youngTree)
	c := testutil.SeedTree(t, f.db, field.ID, middleTree)
	h := testutil.SeedHarvest(t, f.db, springDay)

	d, err := f.details.AddDetail(ctx, h.ID, a.ID)
	require.NoError(t, err)
	_, err = f.details.AddDetail(ctx, h.ID, c.ID)
	require.NoError(t, err)

	same, err := f.details.UpdateDetail(ctx, d.ID, a.ID)
	require.NoError(t, err, "keeping the same tree is allowed")
	assert.Equal(t, 12.0, same.Quantity)

	_, err = f.details.UpdateDetail(ctx, d.ID, c.ID)
	isRule(t, err)

	moved, err := f.details.UpdateDetail(ctx, d.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 12.0, moved.Quantity)

	total, err := f.details.TotalQuantity(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, 24.0, total)
}

func TestDeleteDetail_KeepsHarvestLocked(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	field := seedField(t, f.db)
	tree := testutil.SeedTree(t, f.db, field.ID, matureTree)
	h := testutil.SeedHarvest(t, f.db, springDay)

	d, err := f.details.AddDetail(ctx, h.ID, tree.ID)
	require.NoError(t, err)
	require.NoError(t, f.details.DeleteDetail(ctx, d.ID))

	got, err := f.harvests.GetHarvest(ctx, h.ID)
	require.NoError(t, err)
	assert.True(t, got.Locked)
	assert.Equal(t, 0.0, got.TotalQuantity)

	_, err = f.details.GetDetail(ctx, d.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

// Field bulk drops trees aged 3 or younger at the current date; farm bulk keeps them.
func TestBulk_FieldFiltersYoungTreesFarmDoesNot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	field := seedField(t, f.db)
	testutil.SeedTree(t, f.db, field.ID, youngTree)
	testutil.SeedTree(t, f.db, field.ID, middleTree)

	spring := testutil.SeedHarvest(t, f.db, springDay)
	byField, err := f.details.BulkForField(ctx, spring.ID, field.ID)
	require.NoError(t, err)
	require.Len(t, byField, 1)

	summer := testutil.SeedHarvest(t, f.db, summerDay)
	byFarm, err := f.details.BulkForFarm(ctx, summer.ID, field.FarmID)
	require.NoError(t, err)
	assert.Len(t, byFarm, 2)

	got, err := f.harvests.GetHarvest(ctx, summer.ID)
	require.NoError(t, err)
	assert.True(t, got.Locked)
	assert.Equal(t, 24.0, got.TotalQuantity)
}

func TestBulk_AllHarvestedWritesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	field := seedField(t, f.db)
	testutil.SeedTrees(t, f.db, field.ID, middleTree, 3)
	h := testutil.SeedHarvest(t, f.db, springDay)

	_, err := f.details.BulkForField(ctx, h.ID, field.ID)
	require.NoError(t, err)

	_, err = f.details.BulkForFarm(ctx, h.ID, field.FarmID)
	isRule(t, err)
	assert.Contains(t, err.Error(), "already been harvested")

	list, err := f.details.DetailsByHarvest(ctx, h.ID)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestBulkForFarm_NoFields(t *testing.T) {
	f := newFixture(t)
	farm := testutil.SeedFarm(t, f.db, "empty", 10)
	h := testutil.SeedHarvest(t, f.db, springDay)

	_, err := f.details.BulkForFarm(context.Background(), h.ID, farm.ID)
	isRule(t, err)
	assert.Contains(t, err.Error(), "No fields found")

	_, err = f.details.BulkForField(context.Background(), h.ID, 999)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestIsTreeHarvestedInSeason(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	field := seedField(t, f.db)
	tree := testutil.SeedTree(t, f.db, field.ID, matureTree)
	h := testutil.SeedHarvest(t, f.db, springDay)

	ok, err := f.details.IsTreeHarvestedInSeason(ctx, tree.ID, season.Spring, 2024)
	require.NoError(t, err)
	assert.False(t, ok)

	testutil.SeedDetail(t, f.db, h.ID, tree.ID, 12)
	ok, err = f.details.IsTreeHarvestedInSeason(ctx, tree.ID, season.Spring, 2024)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.details.IsTreeHarvestedInSeason(ctx, tree.ID, season.Spring, 2023)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = f.details.IsTreeHarvestedInSeason(ctx, 999, season.Spring, 2024)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestRecomputeTotal_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	field := seedField(t, f.db)
	trees := testutil.SeedTrees(t, f.db, field.ID, matureTree, 2)
	h := testutil.SeedHarvest(t, f.db, springDay)
	testutil.SeedDetail(t, f.db, h.ID, trees[0].ID, 12)
	testutil.SeedDetail(t, f.db, h.ID, trees[1].ID, 12)
	require.NoError(t, f.db.Model(&entities.Harvest{}).Where("id = ?", h.ID).Update("total_quantity", 1).Error)

	first, err := f.harvests.RecomputeTotal(ctx, h.ID)
	require.NoError(t, err)
	second, err := f.harvests.RecomputeTotal(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, 24.0, first)
	assert.Equal(t, first, second)
}

func TestDeleteHarvest_CascadesDetailsAndSales(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	field := seedField(t, f.db)
	tree := testutil.SeedTree(t, f.db, field.ID, matureTree)
	h := testutil.SeedHarvest(t, f.db, springDay)
	testutil.SeedDetail(t, f.db, h.ID, tree.ID, 12)
	testutil.SeedSale(t, f.db, h.ID, springDay, 3, "Acme")

	require.NoError(t, f.harvests.DeleteHarvest(ctx, h.ID))

	var details, sales int64
	require.NoError(t, f.db.Model(&entities.HarvestDetail{}).Count(&details).Error)
	require.NoError(t, f.db.Model(&entities.Sale{}).Count(&sales).Error)
	assert.Zero(t, details)
	assert.Zero(t, sales)

	assert.True(t, apperr.IsKind(f.harvests.DeleteHarvest(ctx, h.ID), apperr.KindNotFound))
}

func TestHarvestQueries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	field := seedField(t, f.db)
	tree := testutil.SeedTree(t, f.db, field.ID, matureTree)
	spring := testutil.SeedHarvest(t, f.db, springDay)
	testutil.SeedHarvest(t, f.db, summerDay)
	testutil.SeedDetail(t, f.db, spring.ID, tree.ID, 12)

	list, err := f.harvests.HarvestsBySeason(ctx, season.Spring)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, spring.ID, list[0].ID)

	inRange, err := f.harvests.HarvestsByDateRange(ctx, testutil.Date(2024, time.January, 1), testutil.Date(2024, time.June, 30))
	require.NoError(t, err)
	assert.Len(t, inRange, 1)

	total, err := f.harvests.TotalQuantityBetween(ctx, testutil.Date(2024, time.January, 1), testutil.Date(2024, time.December, 31))
	require.NoError(t, err)
	assert.Equal(t, 12.0, total)

	_, err = f.harvests.HarvestsByDateRange(ctx, summerDay, springDay)
	isRule(t, err)

	byTree, err := f.details.DetailsByTree(ctx, tree.ID)
	require.NoError(t, err)
	assert.Len(t, byTree, 1)

	all, err := f.harvests.ListHarvests(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

package database_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"citronix/database"
	"citronix/entities"
	"citronix/pkg/dbctx"
	"citronix/pkg/testutil"
)

func TestPurgeTrees_RecomputesHarvestTotals(t *testing.T) {
	db := testutil.DB(t)
	farm := testutil.SeedFarm(t, db, "Orange Grove", 10)
	field := testutil.SeedField(t, db, farm.ID, 2)
	t1 := testutil.SeedTree(t, db, field.ID, testutil.Date(2015, time.April, 1))
	t2 := testutil.SeedTree(t, db, field.ID, testutil.Date(2015, time.April, 1))
	h := testutil.SeedHarvest(t, db, testutil.Date(2024, time.April, 10))
	testutil.SeedDetail(t, db, h.ID, t1.ID, 12)
	testutil.SeedDetail(t, db, h.ID, t2.ID, 12)

	require.NoError(t, database.PurgeTrees(db, []uint{t1.ID}))

	var got entities.Harvest
	require.NoError(t, db.First(&got, h.ID).Error)
	assert.Equal(t, 12.0, got.TotalQuantity)
	assert.True(t, got.Locked)

	var trees int64
	db.Model(&entities.Tree{}).Count(&trees)
	assert.EqualValues(t, 1, trees)
}

func TestPurgeFields_CascadesToTrees(t *testing.T) {
	db := testutil.DB(t)
	farm := testutil.SeedFarm(t, db, "Lemon Valley", 10)
	f1 := testutil.SeedField(t, db, farm.ID, 2)
	f2 := testutil.SeedField(t, db, farm.ID, 2)
	testutil.SeedTrees(t, db, f1.ID, testutil.Date(2020, time.March, 1), 3)
	keep := testutil.SeedTree(t, db, f2.ID, testutil.Date(2020, time.March, 1))

	require.NoError(t, database.PurgeFields(db, []uint{f1.ID}))

	var ids []uint
	require.NoError(t, db.Model(&entities.Tree{}).Pluck("id", &ids).Error)
	assert.Equal(t, []uint{keep.ID}, ids)
}

func TestPurgeHarvest_RemovesDetailsAndSales(t *testing.T) {
	db := testutil.DB(t)
	farm := testutil.SeedFarm(t, db, "Citrus Hill", 10)
	field := testutil.SeedField(t, db, farm.ID, 2)
	tree := testutil.SeedTree(t, db, field.ID, testutil.Date(2015, time.April, 1))
	h := testutil.SeedHarvest(t, db, testutil.Date(2024, time.April, 10))
	testutil.SeedDetail(t, db, h.ID, tree.ID, 12)
	testutil.SeedSale(t, db, h.ID, testutil.Date(2024, time.April, 12), 3, "ACME")

	require.NoError(t, database.PurgeHarvest(db, h.ID))

	var n int64
	db.Model(&entities.HarvestDetail{}).Count(&n)
	assert.Zero(t, n)
	db.Model(&entities.Sale{}).Count(&n)
	assert.Zero(t, n)
	db.Model(&entities.Tree{}).Count(&n)
	assert.EqualValues(t, 1, n)
}

func TestTxRunner_RollsBack(t *testing.T) {
	db := testutil.DB(t)
	runner := database.NewTxRunner(db)
	boom := errors.New("boom")

	err := runner.InTx(context.Background(), func(dbc dbctx.Context) error {
		if err := dbc.DB(db).Create(&entities.Farm{Name: "Tmp", Location: "x", Area: 1, CreationDate: time.Now()}).Error; err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var n int64
	db.Model(&entities.Farm{}).Count(&n)
	assert.Zero(t, n)
}

func TestUniqueIndexes(t *testing.T) {
	db := testutil.DB(t)
	testutil.SeedFarm(t, db, "Same", 10)
	err := db.Create(&entities.Farm{Name: "Same", Location: "x", Area: 1, CreationDate: time.Now()}).Error
	assert.Error(t, err)

	testutil.SeedHarvest(t, db, testutil.Date(2024, time.April, 10))
	dup := &entities.Harvest{Date: testutil.Date(2024, time.April, 20), Season: "SPRING", Year: 2024}
	assert.Error(t, db.Omit("Details", "Sales").Create(dup).Error)
}

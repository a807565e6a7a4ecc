package catalogrepo_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/catalogrepo"
	"marketplace/internal/adapters/out/postgres/migrations"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type CatalogReaderIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	reader    *catalogrepo.GormCatalogReader
}

func (suite *CatalogReaderIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)
	suite.Require().NoError(migrations.Up(connStr))

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db
	suite.reader = catalogrepo.NewGormCatalogReader(db)
}

func (suite *CatalogReaderIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE menu_items, restaurants").Error)
}

func (suite *CatalogReaderIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CatalogReaderIntegrationTestSuite) TestGetRestaurant() {
	ctx := suite.T().Context()
	id, ownerID := kernel.NewUUID(), kernel.NewUUID()
	suite.Require().NoError(suite.db.Create(&catalogrepo.RestaurantDTO{
		ID:           id.Bytes(),
		OwnerID:      ownerID.Bytes(),
		Name:         "Spice Route",
		Approved:     true,
		Active:       true,
		MinimumOrder: decimal.NewFromInt(150),
		DeliveryFee:  decimal.RequireFromString("29.50"),
	}).Error)

	r, err := suite.reader.GetRestaurant(ctx, id)
	suite.Require().NoError(err)
	suite.Equal("Spice Route", r.Name())
	suite.Equal(ownerID, r.OwnerID())
	suite.True(r.AcceptsOrders())
	suite.True(decimal.NewFromInt(150).Equal(r.MinimumOrder()))
	suite.True(decimal.RequireFromString("29.50").Equal(r.DeliveryFee()))

	_, err = suite.reader.GetRestaurant(ctx, kernel.NewUUID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CatalogReaderIntegrationTestSuite) TestGetMenuItems_IncludesUnavailableItems() {
	ctx := suite.T().Context()
	restaurantID, otherID := kernel.NewUUID(), kernel.NewUUID()
	for _, id := range []kernel.UUID{restaurantID, otherID} {
		suite.Require().NoError(suite.db.Create(&catalogrepo.RestaurantDTO{
			ID: id.Bytes(), OwnerID: kernel.NewUUID().Bytes(), Name: "Kitchen", Approved: true, Active: true,
		}).Error)
	}
	items := []catalogrepo.MenuItemDTO{
		{ID: kernel.NewUUID().Bytes(), RestaurantID: restaurantID.Bytes(), Name: "Paneer tikka", Price: decimal.NewFromInt(120), Available: true},
		{ID: kernel.NewUUID().Bytes(), RestaurantID: restaurantID.Bytes(), Name: "Butter chicken", Price: decimal.NewFromInt(240), Available: false},
		{ID: kernel.NewUUID().Bytes(), RestaurantID: otherID.Bytes(), Name: "Idli", Price: decimal.NewFromInt(40), Available: true},
	}
	suite.Require().NoError(suite.db.Create(&items).Error)

	got, err := suite.reader.GetMenuItems(ctx, restaurantID)
	suite.Require().NoError(err)
	suite.Require().Len(got, 2)
	suite.Equal("Butter chicken", got[0].Name())
	suite.False(got[0].Available())
	suite.Equal("Paneer tikka", got[1].Name())
	suite.True(decimal.NewFromInt(120).Equal(got[1].Price()))
}

func TestCatalogReaderIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogReaderIntegrationTestSuite))
}

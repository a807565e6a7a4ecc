package queries_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/agentrepo"
	"marketplace/internal/adapters/out/postgres/migrations"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/agent"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetAvailableAgentsQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetAvailableAgentsQueryHandler
	agents    *agentrepo.GormAgentRepository
}

func (suite *GetAvailableAgentsQueryHandlerTestSuite) SetupSuite() {
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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)
	suite.Require().NoError(migrations.Up(dsn))

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.handler = queries.NewGetAvailableAgentsQueryHandler(db)
	suite.agents = agentrepo.NewGormAgentRepository(db, nil)
}

func (suite *GetAvailableAgentsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetAvailableAgentsQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE delivery_agents").Error
	suite.Require().NoError(err)
}

func (suite *GetAvailableAgentsQueryHandlerTestSuite) TestHandle_EmptyDirectory_ReturnsEmptySlice() {
	result, err := suite.handler.Handle(suite.T().Context(), suite.query())

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetAvailableAgentsQueryHandlerTestSuite) TestHandle_ReturnsAvailableAgentsBestFirst() {
	ravi := suite.addAgent("Ravi", true, "4.90", 120)
	arjun := suite.addAgent("Arjun", true, "4.50", 4)
	meena := suite.addAgent("Meena", true, "4.50", 40)
	suite.addAgent("Off shift", false, "5.00", 300)

	result, err := suite.handler.Handle(suite.T().Context(), suite.query())
	suite.Require().NoError(err)
	suite.Require().Len(result, 3)

	suite.Equal(ravi.ID(), result[0].ID)
	suite.Equal("Ravi", result[0].Name)
	suite.True(decimal.RequireFromString("4.90").Equal(result[0].Rating))
	suite.Equal(120, result[0].TotalDeliveries)
	suite.Equal(arjun.ID(), result[1].ID)
	suite.Equal(meena.ID(), result[2].ID)
}

func (suite *GetAvailableAgentsQueryHandlerTestSuite) TestNewQuery_CustomersAreRejected() {
	customer, err := actor.NewActor(kernel.NewUUID(), actor.RoleCustomer, nil)
	suite.Require().NoError(err)

	_, err = queries.NewGetAvailableAgentsQuery(customer)
	suite.ErrorIs(err, errs.ErrPermissionDenied)
}

func (suite *GetAvailableAgentsQueryHandlerTestSuite) query() queries.GetAvailableAgentsQuery {
	admin, err := actor.NewActor(kernel.NewUUID(), actor.RoleAdmin, nil)
	suite.Require().NoError(err)
	q, err := queries.NewGetAvailableAgentsQuery(admin)
	suite.Require().NoError(err)
	return q
}

func (suite *GetAvailableAgentsQueryHandlerTestSuite) addAgent(name string, available bool, rating string, deliveries int) *agent.DeliveryAgent {
	a, err := agent.RestoreDeliveryAgent(kernel.NewUUID(), name, "+91 98100 00001", available, decimal.RequireFromString(rating), deliveries)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.agents.Add(suite.T().Context(), a))
	return a
}

func TestGetAvailableAgentsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetAvailableAgentsQueryHandlerTestSuite))
}

package transactionrepo_test

import (
	"context"
	"testing"
	"time"

	"mealdelivery/internal/adapters/out/postgres/pgtest"
	"mealdelivery/internal/adapters/out/postgres/transactionrepo"
	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/core/domain/model/transaction"
	"mealdelivery/internal/core/domain/model/user"

	"github.com/stretchr/testify/suite"
)

type TransactionRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *transactionrepo.GormTransactionRepository
	owner      *user.User
}

func (suite *TransactionRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *TransactionRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())

	owner, err := user.NewUser(kernel.NewUUID(), "Ann", "Baker St 1")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.database.DB.Exec(
		"INSERT INTO users (id, name, address, balance, credit) VALUES (?, ?, ?, 0, 0)",
		owner.ID().String(), owner.Name(), owner.Address(),
	).Error)
	suite.owner = owner

	suite.repository = transactionrepo.NewGormTransactionRepository(suite.database.DB)
}

func (suite *TransactionRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *TransactionRepositoryIntegrationTestSuite) TestAdd_And_GetAllByUser() {
	ctx := suite.T().Context()
	clock := kernel.NewFixedClock(time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC))

	income, err := transaction.NewTransaction(transaction.Income, kernel.NewMoney(50), suite.owner, clock)
	suite.Require().NoError(err)
	suite.Require().NoError(income.MarkPaidAtString("2025-03-01"))

	clock.Advance(time.Minute)
	outcome, err := transaction.NewTransaction(transaction.Outcome, kernel.NewMoney(20), suite.owner, clock)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Add(ctx, income))
	suite.Require().NoError(suite.repository.Add(ctx, outcome))

	got, err := suite.repository.GetAllByUser(ctx, suite.owner.ID())
	suite.Require().NoError(err)
	suite.Require().Len(got, 2)

	suite.True(got[0].ID().IsEqual(outcome.ID()))
	suite.Equal(transaction.Outcome, got[0].Type())
	suite.True(got[0].Amount().IsEqual(kernel.NewMoney(20)))
	_, paid := got[0].PaidAt()
	suite.False(paid)

	suite.True(got[1].ID().IsEqual(income.ID()))
	paidAt, paid := got[1].PaidAt()
	suite.True(paid)
	suite.Equal("2025-03-01", paidAt.UTC().Format(time.DateOnly))
}

func (suite *TransactionRepositoryIntegrationTestSuite) TestGetAllByUser_Empty() {
	got, err := suite.repository.GetAllByUser(suite.T().Context(), kernel.NewUUID())

	suite.Require().NoError(err)
	suite.Empty(got)
}

func TestTransactionRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionRepositoryIntegrationTestSuite))
}

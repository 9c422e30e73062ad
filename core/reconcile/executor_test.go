package reconcile

import (
	"context"
	"errors"
	"testing"

	"enum-sync/core/enumdef"
	"enum-sync/core/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestApplyPlan_FullPlan(t *testing.T) {
	db, mock := setupMockDB(t)

	plan := &Plan{
		Table:  "order_status",
		Insert: []enumdef.Row{{ID: 4, Name: "RETURNED"}, {ID: 5, Name: "LOST"}},
		Update: []enumdef.Row{{ID: 3, Name: "DELIVERED"}},
		Delete: []int64{1, 2},
	}

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS `order_status`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `order_status` WHERE id IN").
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("UPDATE `order_status` SET `name`=").
		WithArgs("DELIVERED", 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `order_status`").
		WithArgs(4, "RETURNED", 5, "LOST").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	result, err := ApplyPlan(context.Background(), db, plan, logger.Nop())
	assert.NoError(t, err)
	assert.Equal(t, TableResult{Table: "order_status", Inserted: 2, Updated: 1, Deleted: 2}, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyPlan_DeleteRunsBeforeInsert(t *testing.T) {
	db, mock := setupMockDB(t)

	// ID 5 is retired and reissued to a new row in the same pass; the
	// expectations are ordered, so a reversed executor would fail here
	plan := &Plan{
		Table:  "order_status",
		Insert: []enumdef.Row{{ID: 5, Name: "REISSUED"}},
		Delete: []int64{5},
	}

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS `order_status`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `order_status` WHERE id IN").
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `order_status`").
		WithArgs(5, "REISSUED").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	_, err := ApplyPlan(context.Background(), db, plan, logger.Nop())
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyPlan_EmptyPlanIssuesNoMutations(t *testing.T) {
	db, mock := setupMockDB(t)

	plan := &Plan{Table: "order_status"}

	// Only the idempotent create runs; no transaction is opened
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS `order_status`").
		WillReturnResult(sqlmock.NewResult(0, 0))

	result, err := ApplyPlan(context.Background(), db, plan, logger.Nop())
	assert.NoError(t, err)
	assert.Equal(t, TableResult{Table: "order_status"}, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyPlan_RollsBackOnFailure(t *testing.T) {
	db, mock := setupMockDB(t)

	plan := &Plan{
		Table:  "order_status",
		Insert: []enumdef.Row{{ID: 4, Name: "RETURNED"}},
		Delete: []int64{9},
	}

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS `order_status`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `order_status` WHERE id IN").
		WithArgs(9).
		WillReturnError(errors.New("lock wait timeout"))
	mock.ExpectRollback()

	result, err := ApplyPlan(context.Background(), db, plan, logger.Nop())
	assert.Error(t, err)
	assert.True(t, IsDataAccess(err))
	assert.Zero(t, result.Deleted)
	assert.Zero(t, result.Inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyPlan_CreateFailureSkipsMutations(t *testing.T) {
	db, mock := setupMockDB(t)

	plan := &Plan{
		Table:  "order_status",
		Insert: []enumdef.Row{{ID: 1, Name: "PLACED"}},
	}

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS `order_status`").
		WillReturnError(errors.New("permission denied"))

	_, err := ApplyPlan(context.Background(), db, plan, logger.Nop())
	assert.Error(t, err)
	assert.True(t, IsDataAccess(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTableSQL_Dialects(t *testing.T) {
	db, _ := setupMockDB(t)

	sql := createTableSQL(db, "order_status")
	assert.Contains(t, sql, "CREATE TABLE IF NOT EXISTS `order_status`")
	assert.Contains(t, sql, "`id` BIGINT NOT NULL PRIMARY KEY")
	assert.Contains(t, sql, "`name` VARCHAR(255) NOT NULL")
}

package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return gdb, mock
}

func TestUserRepoFindByIDNotFound(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewUserRepo(gdb)

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id =`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email"}))

	user, err := repo.FindByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoFindByEmail(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewUserRepo(gdb)

	id := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "username", "email", "image_url", "ideas", "password_hash", "password_salt"}).
		AddRow(id.String(), "alice", "alice@x.com", "", 0, "hash", "salt")

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE email =`).
		WithArgs("alice@x.com", 1).
		WillReturnRows(rows)

	user, err := repo.FindByEmail(context.Background(), "alice@x.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoEmailTaken(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewUserRepo(gdb)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE email =`).
		WithArgs("alice@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	taken, err := repo.EmailTaken(context.Background(), "alice@x.com", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, taken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoUsernameTakenExcludesSelf(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewUserRepo(gdb)

	self := uuid.New()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE username = (.+) AND id <>`).
		WithArgs("alice", self).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	taken, err := repo.UsernameTaken(context.Background(), "alice", self)
	require.NoError(t, err)
	assert.False(t, taken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoDelete(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewUserRepo(gdb)

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "users" WHERE id =`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	deleted, err := repo.Delete(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, deleted)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "users" WHERE id =`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	deleted, err = repo.Delete(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoFindPropagatesError(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewUserRepo(gdb)

	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnError(errors.New("connection refused"))

	_, err := repo.Find(context.Background(), UserFilter{}, Page{Number: 1})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

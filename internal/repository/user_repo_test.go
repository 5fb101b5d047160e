package repository

import (
	"context"
	"testing"
	"time"

	"vehicle_rental/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
)

func TestUserRepository_FindByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)
	now := time.Now()

	mock.ExpectQuery("SELECT id, name, email, password, role, phone, created_at, updated_at FROM users WHERE email =").
		WithArgs("john@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "password", "role", "phone", "created_at", "updated_at"}).
			AddRow(1, "John Doe", "john@example.com", "hashed", "customer", "+998901234567", now, now))

	user, err := repo.FindByEmail(context.Background(), "john@example.com")

	assert.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, "John Doe", user.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail_Missing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)

	mock.ExpectQuery("SELECT id, name, email, password, role, phone, created_at, updated_at FROM users WHERE email =").
		WithArgs("ghost@example.com").
		WillReturnError(pgx.ErrNoRows)

	user, err := repo.FindByEmail(context.Background(), "ghost@example.com")

	// Missing users are (nil, nil); the service decides what that means.
	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Update_NoFields(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)

	_, err = repo.Update(context.Background(), 1, model.UpdateUserRequest{}, false)
	assert.ErrorIs(t, err, ErrNoFieldsToUpdate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Update_RoleIgnoredWithoutPermission(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)

	// A role value with allowRole false contributes nothing to the SET list.
	role := model.RoleAdmin
	_, err = repo.Update(context.Background(), 1, model.UpdateUserRequest{Role: &role}, false)
	assert.ErrorIs(t, err, ErrNoFieldsToUpdate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Update_NormalizesEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)
	now := time.Now()

	email := "  John@Example.COM "
	mock.ExpectQuery("UPDATE users SET email =").
		WithArgs("john@example.com", 1).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "role", "phone", "created_at", "updated_at"}).
			AddRow(1, "John Doe", "john@example.com", "customer", "+998901234567", now, now))

	user, err := repo.Update(context.Background(), 1, model.UpdateUserRequest{Email: &email}, false)

	assert.NoError(t, err)
	assert.Equal(t, "john@example.com", user.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Delete_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)

	mock.ExpectExec("DELETE FROM users WHERE id =").
		WithArgs(99).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err = repo.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_HasActiveBooking(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(7).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	active, err := repo.HasActiveBooking(context.Background(), 7)
	assert.NoError(t, err)
	assert.True(t, active)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"

	"github.com/MKhiriev/go-upload-desk/internal/logger"
	"github.com/MKhiriev/go-upload-desk/models"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock) {
	db, mock, conn := newMockDB(t)
	t.Cleanup(func() { conn.Close() })

	return &userRepository{db: db, logger: logger.Nop()}, mock
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	user := models.User{
		Username: "john",
		Email:    "john@example.com",
		Password: "hash",
		IsActive: true,
	}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.Username, user.Email, user.Password, "", "", true, false, false, "contributor", sqlmock.AnyArg()).
		WillReturnRows(userRows(models.User{ID: 1, Username: "john", Email: "john@example.com", Password: "hash", IsActive: true, Role: models.RoleContributor}))

	created, err := repo.CreateUser(context.Background(), user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("expected ID=1, got %d", created.ID)
	}
	if created.Role != models.RoleContributor {
		t.Errorf("expected default role contributor, got %q", created.Role)
	}
	if !created.DateJoined.Equal(testTime) {
		t.Errorf("expected date joined %v, got %v", testTime, created.DateJoined)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		want       error
	}{
		{"username", "users_username_key", ErrUsernameAlreadyExists},
		{"email", "users_email_key", ErrEmailAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestUserRepo(t)

			mock.ExpectQuery("INSERT INTO users").
				WillReturnError(pgError(pgerrcode.UniqueViolation, tt.constraint))

			_, err := repo.CreateUser(context.Background(), models.User{Username: "john"})
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(context.Background(), models.User{Username: "john"})
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestFindUserByUsername(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE username = \\$1").
		WithArgs("john").
		WillReturnRows(userRows(models.User{ID: 3, Username: "john", Role: models.RoleViewer}))

	user, err := repo.FindUserByUsername(context.Background(), "john")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 3 || user.Role != models.RoleViewer {
		t.Errorf("unexpected user: %+v", user)
	}
}

func TestFindUserByID_NotFound(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := repo.FindUserByID(context.Background(), 99)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestEmailTaken(t *testing.T) {
	t.Run("taken by other user", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)

		mock.ExpectQuery("SELECT 1 FROM users WHERE email = \\$1 AND id <> \\$2").
			WithArgs("a@b.io", int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

		taken, err := repo.EmailTaken(context.Background(), "a@b.io", 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !taken {
			t.Error("expected email to be taken")
		}
	})

	t.Run("free without exclusion", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)

		mock.ExpectQuery("SELECT 1 FROM users WHERE email = \\$1 LIMIT 1").
			WithArgs("a@b.io").
			WillReturnRows(sqlmock.NewRows([]string{"1"}))

		taken, err := repo.EmailTaken(context.Background(), "a@b.io", 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if taken {
			t.Error("expected email to be free")
		}
	})
}

func TestUpdateProfile_OnlyProvidedFields(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	first := "Jane"
	mock.ExpectQuery("UPDATE users SET first_name = \\$1 WHERE id = \\$2 RETURNING").
		WithArgs("Jane", int64(1)).
		WillReturnRows(userRows(models.User{ID: 1, Username: "jane", FirstName: "Jane"}))

	user, err := repo.UpdateProfile(context.Background(), 1, models.ProfileUpdate{FirstName: &first})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.FirstName != "Jane" {
		t.Errorf("expected first name Jane, got %q", user.FirstName)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateProfile_Empty(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
		WithArgs(int64(1)).
		WillReturnRows(userRows(models.User{ID: 1, Username: "jane"}))

	if _, err := repo.UpdateProfile(context.Background(), 1, models.ProfileUpdate{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdateProfile_EmailConflict(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	email := "taken@example.com"
	mock.ExpectQuery("UPDATE users").
		WillReturnError(pgError(pgerrcode.UniqueViolation, "users_email_key"))

	_, err := repo.UpdateProfile(context.Background(), 1, models.ProfileUpdate{Email: &email})
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestSetActive_DeactivateRevokesToken(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE users SET is_active = \\$1 WHERE id = \\$2 RETURNING").
		WithArgs(false, int64(4)).
		WillReturnRows(userRows(models.User{ID: 4, Username: "bob", IsActive: false}))
	mock.ExpectExec("DELETE FROM auth_tokens WHERE user_id = \\$1").
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	user, err := repo.SetActive(context.Background(), 4, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.IsActive {
		t.Error("expected user to be inactive")
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSetActive_ActivateKeepsTokens(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE users SET is_active").
		WithArgs(true, int64(4)).
		WillReturnRows(userRows(models.User{ID: 4, IsActive: true}))
	mock.ExpectCommit()

	if _, err := repo.SetActive(context.Background(), 4, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSetActive_NotFoundRollsBack(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE users SET is_active").
		WillReturnRows(sqlmock.NewRows(userColumns))
	mock.ExpectRollback()

	_, err := repo.SetActive(context.Background(), 4, false)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestTouchLastLogin_NotFound(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec("UPDATE users SET last_login").
		WithArgs(testTime, int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.TouchLastLogin(context.Background(), 8, testTime); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestStats(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\)").
		WillReturnRows(sqlmock.NewRows([]string{"total", "active", "staff"}).AddRow(10, 7, 2))

	stats, err := repo.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := models.UserStats{TotalUsers: 10, ActiveUsers: 7, InactiveUsers: 3, StaffUsers: 2}
	if stats != want {
		t.Errorf("expected %+v, got %+v", want, stats)
	}
}

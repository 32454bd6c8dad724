package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jiseti/jiseti-api/internal/dto"
	"github.com/jiseti/jiseti-api/internal/models"
	"github.com/jiseti/jiseti-api/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSignup() *dto.SignupRequest {
	return &dto.SignupRequest{
		Username:  "citizen_one",
		Email:     "Jane.Doe@Example.com",
		Password:  "Password1",
		FirstName: "Jane",
		LastName:  "Doe",
	}
}

func TestSignupCreatesUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	resp, err := svc.Signup(validSignup())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "jane.doe@example.com", resp.User.Email, "email is stored normalized")
	assert.Equal(t, models.RoleUser, resp.User.Role)

	var stored models.User
	require.NoError(t, db.First(&stored, "username = ?", "citizen_one").Error)
	assert.NotEqual(t, "Password1", stored.Password, "password must never be stored in plaintext")
}

func TestSignupTokenCarriesSubjectAndExpiry(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	svc := NewAuthService(db, cfg)

	resp, err := svc.Signup(validSignup())
	require.NoError(t, err)

	token, err := jwt.Parse(resp.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, resp.User.ID.String(), claims["sub"])

	exp, _ := claims.GetExpirationTime()
	iat, _ := claims.GetIssuedAt()
	assert.Equal(t, cfg.TokenExpiry, exp.Sub(iat.Time))
}

func TestSignupRejectsMissingFields(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	req := validSignup()
	req.FirstName = ""

	_, err := svc.Signup(req)
	var ve *validation.Error
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "first_name", ve.Field)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Zero(t, count, "no row persisted on validation failure")
}

func TestSignupRejectsDuplicates(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Signup(validSignup())
	require.NoError(t, err)

	// Same username, different email.
	dup := validSignup()
	dup.Email = "other@example.com"
	_, err = svc.Signup(dup)
	assert.ErrorIs(t, err, ErrUserExists)

	// Same email, different username.
	dup = validSignup()
	dup.Username = "citizen_two"
	_, err = svc.Signup(dup)
	assert.ErrorIs(t, err, ErrUserExists)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestLoginSucceedsWithCorrectCredentials(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Signup(validSignup())
	require.NoError(t, err)

	resp, err := svc.Login(&dto.LoginRequest{Email: "jane.doe@example.com", Password: "Password1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Signup(validSignup())
	require.NoError(t, err)

	_, wrongPassword := svc.Login(&dto.LoginRequest{Email: "jane.doe@example.com", Password: "Wrong1pass"})
	_, unknownEmail := svc.Login(&dto.LoginRequest{Email: "nobody@example.com", Password: "Password1"})

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error(),
		"message must not reveal whether the email exists")
}

func TestDeleteAccountRestrictedWhileRecordsExist(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	user, _ := createTestUser(t, db, "citizen_one", "jane@example.com", models.RoleUser)
	createTestRecord(t, db, user, models.StatusPending)

	err := svc.DeleteAccount(user.ID, "Password1")
	assert.ErrorIs(t, err, ErrUserHasRecords)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestDeleteAccountRemovesUserAndNotifications(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	user, _ := createTestUser(t, db, "citizen_one", "jane@example.com", models.RoleUser)
	require.NoError(t, db.Create(&models.Notification{
		ID:         uuid.New(),
		Message:    "welcome",
		ApprovedAt: time.Now().UTC(),
		UserID:     user.ID,
	}).Error)

	require.NoError(t, svc.DeleteAccount(user.ID, "Password1"))

	var users, notifications int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Notification{}).Count(&notifications)
	assert.Zero(t, users)
	assert.Zero(t, notifications)
}

func TestDeleteAccountRequiresPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	user, _ := createTestUser(t, db, "citizen_one", "jane@example.com", models.RoleUser)

	err := svc.DeleteAccount(user.ID, "WrongPassword1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

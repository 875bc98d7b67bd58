// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/dzboutik/dzboutik-backend/internal/config"
	"github.com/dzboutik/dzboutik-backend/internal/models"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db   *gorm.DB
	auth *AuthService
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret"
	cfg.JWT.AccessTokenTTL = 1
	cfg.JWT.RefreshTokenTTL = 24

	suite.auth = NewAuthService(suite.db, cfg)
}

func (suite *AuthServiceTestSuite) createUser(email, password string, active bool) *models.User {
	user := &models.User{
		Username: "staff",
		Email:    email,
		Role:     models.UserRoleEditor,
		Active:   active,
	}
	suite.Require().NoError(user.SetPassword(password))
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *AuthServiceTestSuite) TestLoginSuccess() {
	suite.createUser("staff@example.com", "Secret123!", true)

	auth, err := suite.auth.Login(&LoginRequest{
		Email:    "staff@example.com",
		Password: "Secret123!",
	})
	suite.Require().NoError(err)
	suite.NotEmpty(auth.Token)
	suite.NotEmpty(auth.RefreshToken)
	suite.NotNil(auth.User.LastLoginAt)
}

func (suite *AuthServiceTestSuite) TestLoginWrongPassword() {
	suite.createUser("staff@example.com", "Secret123!", true)

	_, err := suite.auth.Login(&LoginRequest{
		Email:    "staff@example.com",
		Password: "wrong",
	})
	suite.ErrorIs(err, ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestLoginUnknownEmail() {
	_, err := suite.auth.Login(&LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	suite.ErrorIs(err, ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestLoginDisabledAccount() {
	suite.createUser("staff@example.com", "Secret123!", false)

	_, err := suite.auth.Login(&LoginRequest{
		Email:    "staff@example.com",
		Password: "Secret123!",
	})
	suite.ErrorIs(err, ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestChangePassword() {
	user := suite.createUser("staff@example.com", "Secret123!", true)

	err := suite.auth.ChangePassword(user.ID, &ChangePasswordRequest{
		CurrentPassword: "Secret123!",
		NewPassword:     "NewSecret456!",
	})
	suite.Require().NoError(err)

	_, err = suite.auth.Login(&LoginRequest{Email: "staff@example.com", Password: "NewSecret456!"})
	suite.NoError(err)
	_, err = suite.auth.Login(&LoginRequest{Email: "staff@example.com", Password: "Secret123!"})
	suite.ErrorIs(err, ErrInvalidCredentials)
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

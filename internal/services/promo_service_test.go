// internal/services/promo_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/dzboutik/dzboutik-backend/internal/models"
)

type PromoServiceTestSuite struct {
	suite.Suite
	db    *gorm.DB
	promo *PromoService
}

func (suite *PromoServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.promo = NewPromoService(suite.db)
}

func (suite *PromoServiceTestSuite) createCode(code string, discount float64, typ models.DiscountType, from, until time.Time, active bool) {
	promo := &models.PromoCode{
		Code:       code,
		Discount:   discount,
		Type:       typ,
		ValidFrom:  from,
		ValidUntil: until,
		Active:     active,
	}
	suite.Require().NoError(suite.db.Create(promo).Error)
}

func (suite *PromoServiceTestSuite) TestCheckValidCode() {
	now := time.Now()
	suite.createCode("SUMMER10", 10, models.DiscountTypePercentage, now.Add(-time.Hour), now.Add(time.Hour), true)

	promo, err := suite.promo.CheckCode("SUMMER10")
	suite.NoError(err)
	suite.Equal(10.0, promo.Discount)
	suite.Equal(models.DiscountTypePercentage, promo.Type)
}

func (suite *PromoServiceTestSuite) TestCheckUnknownCode() {
	_, err := suite.promo.CheckCode("NOPE")
	suite.ErrorIs(err, ErrNotFound)
}

func (suite *PromoServiceTestSuite) TestCheckExpiredCode() {
	now := time.Now()
	suite.createCode("OLD", 10, models.DiscountTypeFixed, now.Add(-48*time.Hour), now.Add(-24*time.Hour), true)

	_, err := suite.promo.CheckCode("OLD")
	suite.ErrorIs(err, ErrPromoInvalid)
}

func (suite *PromoServiceTestSuite) TestCheckNotYetValidCode() {
	now := time.Now()
	suite.createCode("SOON", 10, models.DiscountTypeFixed, now.Add(24*time.Hour), now.Add(48*time.Hour), true)

	_, err := suite.promo.CheckCode("SOON")
	suite.ErrorIs(err, ErrPromoInvalid)
}

func (suite *PromoServiceTestSuite) TestCheckInactiveCode() {
	now := time.Now()
	suite.createCode("OFF", 10, models.DiscountTypeFixed, now.Add(-time.Hour), now.Add(time.Hour), false)

	_, err := suite.promo.CheckCode("OFF")
	suite.ErrorIs(err, ErrPromoInvalid)
}

func (suite *PromoServiceTestSuite) TestResolvePercentageDiscount() {
	now := time.Now()
	suite.createCode("TEN", 10, models.DiscountTypePercentage, now.Add(-time.Hour), now.Add(time.Hour), true)

	discount, err := suite.promo.ResolveDiscount("TEN", 2500)
	suite.NoError(err)
	suite.Equal(250.0, discount)
}

func (suite *PromoServiceTestSuite) TestResolveFixedDiscount() {
	now := time.Now()
	suite.createCode("FLAT300", 300, models.DiscountTypeFixed, now.Add(-time.Hour), now.Add(time.Hour), true)

	// Fixed codes ignore the subtotal.
	discount, err := suite.promo.ResolveDiscount("FLAT300", 99999)
	suite.NoError(err)
	suite.Equal(300.0, discount)
}

func (suite *PromoServiceTestSuite) TestCreateDuplicateCode() {
	now := time.Now()
	suite.createCode("DUP", 10, models.DiscountTypeFixed, now.Add(-time.Hour), now.Add(time.Hour), true)

	_, err := suite.promo.CreatePromoCode(&CreatePromoCodeRequest{
		Code:       "DUP",
		Discount:   20,
		Type:       models.DiscountTypeFixed,
		ValidFrom:  now,
		ValidUntil: now.Add(time.Hour),
	})
	suite.ErrorIs(err, ErrDuplicate)
}

func (suite *PromoServiceTestSuite) TestCreateInactiveCodePersistsInactive() {
	now := time.Now()
	inactive := false
	created, err := suite.promo.CreatePromoCode(&CreatePromoCodeRequest{
		Code:       "DRAFT",
		Discount:   10,
		Type:       models.DiscountTypeFixed,
		ValidFrom:  now.Add(-time.Hour),
		ValidUntil: now.Add(time.Hour),
		Active:     &inactive,
	})
	suite.Require().NoError(err)
	suite.False(created.Active)

	// The inactive flag reaches the database row, not just the struct.
	var stored models.PromoCode
	suite.Require().NoError(suite.db.Where("code = ?", "DRAFT").First(&stored).Error)
	suite.False(stored.Active)

	_, err = suite.promo.CheckCode("DRAFT")
	suite.ErrorIs(err, ErrPromoInvalid)
}

func (suite *PromoServiceTestSuite) TestUpdatePromoCodeSparseFields() {
	now := time.Now()
	suite.createCode("EDIT", 10, models.DiscountTypePercentage, now.Add(-time.Hour), now.Add(time.Hour), true)

	var promo models.PromoCode
	suite.Require().NoError(suite.db.Where("code = ?", "EDIT").First(&promo).Error)

	newDiscount := 15.0
	inactive := false
	updated, err := suite.promo.UpdatePromoCode(promo.ID, &UpdatePromoCodeRequest{
		Discount: &newDiscount,
		Active:   &inactive,
	})
	suite.NoError(err)
	suite.Equal(15.0, updated.Discount)
	suite.False(updated.Active)
	// Untouched fields survive.
	suite.Equal(models.DiscountTypePercentage, updated.Type)
}

func TestPromoServiceSuite(t *testing.T) {
	suite.Run(t, new(PromoServiceTestSuite))
}

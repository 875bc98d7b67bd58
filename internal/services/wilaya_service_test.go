// internal/services/wilaya_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/dzboutik/dzboutik-backend/internal/models"
)

type WilayaServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	wilayas *WilayaService
}

func (suite *WilayaServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.wilayas = NewWilayaService(suite.db)
}

func (suite *WilayaServiceTestSuite) TestCreateInactiveWilayaPersistsInactive() {
	inactive := false
	created, err := suite.wilayas.CreateWilaya(&CreateWilayaRequest{
		Name:           "Tindouf",
		ShippingPrices: map[string]float64{"home": 1800},
		Active:         &inactive,
	})
	suite.Require().NoError(err)
	suite.False(created.Active)

	// The inactive flag reaches the database row, not just the struct.
	var stored models.Wilaya
	suite.Require().NoError(suite.db.Where("name = ?", "Tindouf").First(&stored).Error)
	suite.False(stored.Active)
}

func (suite *WilayaServiceTestSuite) TestActiveOnlyListingExcludesInactiveZones() {
	_, err := suite.wilayas.CreateWilaya(&CreateWilayaRequest{
		Name:           "Alger",
		ShippingPrices: map[string]float64{"home": 1200, "desk": 600},
	})
	suite.Require().NoError(err)

	inactive := false
	_, err = suite.wilayas.CreateWilaya(&CreateWilayaRequest{
		Name:           "Tindouf",
		ShippingPrices: map[string]float64{"home": 1800},
		Active:         &inactive,
	})
	suite.Require().NoError(err)

	// Storefront view: only the active zone.
	active, total, err := suite.wilayas.GetWilayas(defaultPaginationParams(), true)
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Require().Len(active, 1)
	suite.Equal("Alger", active[0].Name)

	// Back-office view: both.
	all, total, err := suite.wilayas.GetWilayas(defaultPaginationParams(), false)
	suite.Require().NoError(err)
	suite.Equal(int64(2), total)
	suite.Len(all, 2)
}

func (suite *WilayaServiceTestSuite) TestDuplicateName() {
	_, err := suite.wilayas.CreateWilaya(&CreateWilayaRequest{Name: "Oran"})
	suite.Require().NoError(err)

	_, err = suite.wilayas.CreateWilaya(&CreateWilayaRequest{Name: "Oran"})
	suite.ErrorIs(err, ErrDuplicate)
}

func TestWilayaServiceSuite(t *testing.T) {
	suite.Run(t, new(WilayaServiceTestSuite))
}

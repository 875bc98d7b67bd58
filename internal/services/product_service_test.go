// internal/services/product_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/dzboutik/dzboutik-backend/internal/config"
	"github.com/dzboutik/dzboutik-backend/internal/models"
)

type ProductServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	products *ProductService
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())

	cfg := &config.Config{}
	cfg.Uploads.LocalDir = suite.T().TempDir()
	cfg.Uploads.BaseURL = "http://localhost:8080/uploads"
	storage, err := NewStorageService(cfg)
	suite.Require().NoError(err)

	suite.products = NewProductService(suite.db, storage)
}

func (suite *ProductServiceTestSuite) TestCreateProductWithVariants() {
	product, err := suite.products.CreateProduct(&CreateProductRequest{
		Name:  "Shirt",
		Price: 1500,
		Variants: []VariantInput{
			{Attributes: map[string]string{"color": "red", "size": "M"}, Stock: 5},
			{Attributes: map[string]string{"color": "blue", "size": "M"}, Stock: 3},
		},
	})
	suite.Require().NoError(err)
	suite.Len(product.Variants, 2)
	suite.True(product.HasVariants())
}

func (suite *ProductServiceTestSuite) TestCreateProductRejectsDuplicateVariants() {
	_, err := suite.products.CreateProduct(&CreateProductRequest{
		Name:  "Shirt",
		Price: 1500,
		Variants: []VariantInput{
			{Attributes: map[string]string{"color": "red", "size": "M"}, Stock: 5},
			{Attributes: map[string]string{"size": "M", "color": "red"}, Stock: 3},
		},
	})
	suite.ErrorIs(err, ErrDuplicate)

	// Nothing was written.
	var count int64
	suite.db.Model(&models.Product{}).Count(&count)
	suite.Equal(int64(0), count)
}

func (suite *ProductServiceTestSuite) TestAddVariantRejectsDuplicateAttributes() {
	product, err := suite.products.CreateProduct(&CreateProductRequest{
		Name:  "Shirt",
		Price: 1500,
		Variants: []VariantInput{
			{Attributes: map[string]string{"color": "red"}, Stock: 5},
		},
	})
	suite.Require().NoError(err)

	_, err = suite.products.AddVariant(product.ID, &VariantInput{
		Attributes: map[string]string{"color": "red"},
		Stock:      2,
	})
	suite.ErrorIs(err, ErrDuplicate)

	// A distinct attribute set is accepted.
	variant, err := suite.products.AddVariant(product.ID, &VariantInput{
		Attributes: map[string]string{"color": "green"},
		Stock:      2,
	})
	suite.NoError(err)
	suite.Equal(2, variant.Stock)
}

func (suite *ProductServiceTestSuite) TestUpdateProductSparseFields() {
	product, err := suite.products.CreateProduct(&CreateProductRequest{
		Name:     "Shirt",
		Price:    1500,
		Quantity: 10,
	})
	suite.Require().NoError(err)

	newPrice := 1200.0
	updated, err := suite.products.UpdateProduct(product.ID, &UpdateProductRequest{Price: &newPrice})
	suite.Require().NoError(err)

	suite.Equal(1200.0, updated.Price)
	suite.Equal("Shirt", updated.Name)
	suite.Equal(10, updated.Quantity)
}

func (suite *ProductServiceTestSuite) TestDeleteProductRemovesVariants() {
	product, err := suite.products.CreateProduct(&CreateProductRequest{
		Name:  "Shirt",
		Price: 1500,
		Variants: []VariantInput{
			{Attributes: map[string]string{"color": "red"}, Stock: 5},
		},
	})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.products.DeleteProduct(product.ID))

	_, err = suite.products.GetProduct(product.ID)
	suite.ErrorIs(err, ErrNotFound)

	var variantCount int64
	suite.db.Model(&models.Variant{}).Where("product_id = ?", product.ID).Count(&variantCount)
	suite.Equal(int64(0), variantCount)
}

func (suite *ProductServiceTestSuite) TestGetProductsFiltersByCategory() {
	category := &models.Category{Name: "Vêtements"}
	suite.Require().NoError(suite.db.Create(category).Error)

	_, err := suite.products.CreateProduct(&CreateProductRequest{Name: "Shirt", Price: 1500, CategoryID: &category.ID})
	suite.Require().NoError(err)
	_, err = suite.products.CreateProduct(&CreateProductRequest{Name: "Mug", Price: 400})
	suite.Require().NoError(err)

	params := defaultPaginationParams()
	products, total, err := suite.products.GetProducts(params, ProductFilters{CategoryID: &category.ID})
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Require().Len(products, 1)
	suite.Equal("Shirt", products[0].Name)
}

func TestProductServiceSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}

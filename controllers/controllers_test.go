package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Priyam-804/WearNest/config"
	"github.com/Priyam-804/WearNest/models"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// One connection keeps every goroutine on the same in-memory database
	// and serialises writes the way a contended pool would.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.MigrateModels(db))

	config.DB = db
	return db
}

func seedUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	suffix := uuid.New().String()[:8]
	user := models.User{
		Username: "user-" + suffix,
		Email:    fmt.Sprintf("user-%s@example.com", suffix),
		Phone:    "9876543210",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedAdmin(t *testing.T, db *gorm.DB) models.Admin {
	t.Helper()
	admin := models.Admin{
		Email:    fmt.Sprintf("admin-%s@example.com", uuid.New().String()[:8]),
		Password: "hashed",
		IsActive: true,
	}
	require.NoError(t, db.Create(&admin).Error)
	return admin
}

func seedAddress(t *testing.T, db *gorm.DB, userID uint) models.Address {
	t.Helper()
	address := models.Address{
		UserID:     userID,
		Line1:      "12 MG Road",
		City:       "Bengaluru",
		State:      "Karnataka",
		Country:    "India",
		PostalCode: "560001",
		Phone:      "9876543210",
	}
	require.NoError(t, db.Create(&address).Error)
	return address
}

func seedVariant(t *testing.T, db *gorm.DB, price float64, stock int) models.ProductVariant {
	t.Helper()
	variant := models.ProductVariant{
		ProductID: 1,
		Name:      "Classic Tee",
		Size:      "M",
		Color:     "Black",
		Price:     price,
		Stock:     stock,
		Active:    true,
	}
	require.NoError(t, db.Create(&variant).Error)
	return variant
}

func seedCoupon(t *testing.T, db *gorm.DB, code, ctype string, value, minOrder float64, userID *uint) models.Coupon {
	t.Helper()
	coupon := models.Coupon{
		Code:      code,
		Type:      ctype,
		Value:     value,
		MinOrder:  minOrder,
		ExpiresAt: time.Now().AddDate(0, 0, 7),
		UserID:    userID,
		Active:    true,
	}
	require.NoError(t, db.Create(&coupon).Error)
	return coupon
}

// seedOrder creates an order directly, bypassing checkout, for lifecycle tests.
func seedOrder(t *testing.T, db *gorm.DB, user models.User, mutate func(*models.Order)) models.Order {
	t.Helper()
	address := seedAddress(t, db, user.ID)
	variant := seedVariant(t, db, 500, 10)

	order := models.Order{
		UserID:        user.ID,
		AddressID:     address.ID,
		Subtotal:      500,
		Shipping:      49,
		Tax:           27.45,
		TotalPrice:    576.45,
		PaymentMethod: models.PaymentMethodCOD,
		Status:        models.OrderStatusPending,
		OrderItems: []models.OrderItem{{
			VariantID: variant.ID,
			Name:      variant.Name,
			Size:      variant.Size,
			Color:     variant.Color,
			Quantity:  1,
			UnitPrice: variant.Price,
			Total:     variant.Price,
		}},
	}
	if mutate != nil {
		mutate(&order)
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

type testResponse struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message"`
	Kind    string                 `json:"kind"`
	Data    map[string]interface{} `json:"data"`
}

// invoke runs a handler with an authenticated context and returns the
// recorder plus the decoded envelope.
func invoke(t *testing.T, handler gin.HandlerFunc, method string, body interface{},
	ctxValues map[string]interface{}, params gin.Params) (*httptest.ResponseRecorder, testResponse) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	c.Request = httptest.NewRequest(method, "/", reader)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params
	for k, v := range ctxValues {
		c.Set(k, v)
	}

	handler(c)

	var resp testResponse
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "application/pdf" {
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
	}
	return w, resp
}

func asUser(user models.User) map[string]interface{} {
	return map[string]interface{}{"user": user}
}

func asAdmin(admin models.Admin) map[string]interface{} {
	return map[string]interface{}{"admin": admin}
}

func idParam(id uint) gin.Params {
	return gin.Params{{Key: "id", Value: fmt.Sprintf("%d", id)}}
}

func hoursAgo(h int) time.Time {
	return time.Now().Add(-time.Duration(h) * time.Hour)
}

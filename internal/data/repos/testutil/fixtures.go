package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CATyPH67/shop-api/internal/domain/shop"
)

func SeedUser(tb testing.TB, db *gorm.DB, email string) *shop.User {
	tb.Helper()
	u := &shop.User{
		Username: fmt.Sprintf("user-%s", uuid.NewString()[:8]),
		Email:    email,
		Password: "pw",
	}
	if err := db.Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedSize(tb testing.TB, db *gorm.DB, name string) *shop.Size {
	tb.Helper()
	s := &shop.Size{Name: name}
	if err := db.Create(s).Error; err != nil {
		tb.Fatalf("seed size: %v", err)
	}
	return s
}

func SeedCategory(tb testing.TB, db *gorm.DB, name string, parentID *uint) *shop.Category {
	tb.Helper()
	c := &shop.Category{Name: name, ParentID: parentID}
	if err := db.Create(c).Error; err != nil {
		tb.Fatalf("seed category: %v", err)
	}
	return c
}

func SeedProduct(tb testing.TB, db *gorm.DB, name string, price float64, sizeID uint, categories ...shop.Category) *shop.Product {
	tb.Helper()
	p := &shop.Product{
		Name:       name,
		Price:      price,
		SizeID:     sizeID,
		Categories: categories,
	}
	if err := db.Create(p).Error; err != nil {
		tb.Fatalf("seed product: %v", err)
	}
	return p
}

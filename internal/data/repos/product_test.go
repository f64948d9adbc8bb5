package repos_test

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/CATyPH67/shop-api/internal/data/repos"
	"github.com/CATyPH67/shop-api/internal/data/repos/testutil"
	"github.com/CATyPH67/shop-api/internal/domain/shop"
	"github.com/CATyPH67/shop-api/internal/platform/dbctx"
)

func ptrf(v float64) *float64 { return &v }

// seedShirtCatalog creates one category with three products at 50, 150 and
// 100, plus an unrelated category holding a fourth product.
func seedShirtCatalog(t *testing.T, db *gorm.DB) (shirts shop.Category, ids [3]uint) {
	t.Helper()
	size := testutil.SeedSize(t, db, "M")
	shirtsC := testutil.SeedCategory(t, db, "Shirts", nil)
	other := testutil.SeedCategory(t, db, "Shoes", nil)

	a := testutil.SeedProduct(t, db, "Basic", 50, size.ID, *shirtsC)
	b := testutil.SeedProduct(t, db, "Premium", 150, size.ID, *shirtsC)
	c := testutil.SeedProduct(t, db, "Regular", 100, size.ID, *shirtsC)
	testutil.SeedProduct(t, db, "Sneaker", 80, size.ID, *other)

	return *shirtsC, [3]uint{a.ID, b.ID, c.ID}
}

func productIDs(rows []shop.Product) []uint {
	out := make([]uint, 0, len(rows))
	for _, p := range rows {
		out = append(out, p.ID)
	}
	return out
}

func equalIDs(a, b []uint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestProductListFilteredByCategory(t *testing.T) {
	db := testutil.DB(t)
	repo := repos.NewProductRepo(db, testutil.Logger(t))
	shirts, ids := seedShirtCatalog(t, db)
	dbc := dbctx.Context{Ctx: context.Background()}

	rows, err := repo.ListFiltered(dbc, repos.ProductFilter{CategoryID: shirts.ID})
	if err != nil {
		t.Fatalf("ListFiltered: %v", err)
	}
	if !equalIDs(productIDs(rows), ids[:]) {
		t.Fatalf("expected %v in id order, got %v", ids, productIDs(rows))
	}
}

func TestProductListFilteredPriceBounds(t *testing.T) {
	db := testutil.DB(t)
	repo := repos.NewProductRepo(db, testutil.Logger(t))
	shirts, ids := seedShirtCatalog(t, db)
	dbc := dbctx.Context{Ctx: context.Background()}

	rows, err := repo.ListFiltered(dbc, repos.ProductFilter{CategoryID: shirts.ID, MinPrice: ptrf(60)})
	if err != nil {
		t.Fatalf("ListFiltered min: %v", err)
	}
	if !equalIDs(productIDs(rows), []uint{ids[1], ids[2]}) {
		t.Fatalf("min bound: got %v", productIDs(rows))
	}

	rows, err = repo.ListFiltered(dbc, repos.ProductFilter{CategoryID: shirts.ID, MaxPrice: ptrf(120)})
	if err != nil {
		t.Fatalf("ListFiltered max: %v", err)
	}
	if !equalIDs(productIDs(rows), []uint{ids[0], ids[2]}) {
		t.Fatalf("max bound: got %v", productIDs(rows))
	}

	rows, err = repo.ListFiltered(dbc, repos.ProductFilter{CategoryID: shirts.ID, MinPrice: ptrf(60), MaxPrice: ptrf(120)})
	if err != nil {
		t.Fatalf("ListFiltered both: %v", err)
	}
	if !equalIDs(productIDs(rows), []uint{ids[2]}) {
		t.Fatalf("both bounds: got %v", productIDs(rows))
	}
}

func TestProductListFilteredSortByPrice(t *testing.T) {
	db := testutil.DB(t)
	repo := repos.NewProductRepo(db, testutil.Logger(t))
	shirts, ids := seedShirtCatalog(t, db)
	dbc := dbctx.Context{Ctx: context.Background()}

	rows, err := repo.ListFiltered(dbc, repos.ProductFilter{CategoryID: shirts.ID, Sort: repos.SortPriceAsc})
	if err != nil {
		t.Fatalf("ListFiltered asc: %v", err)
	}
	if !equalIDs(productIDs(rows), []uint{ids[0], ids[2], ids[1]}) {
		t.Fatalf("asc: got %v", productIDs(rows))
	}

	rows, err = repo.ListFiltered(dbc, repos.ProductFilter{CategoryID: shirts.ID, Sort: repos.SortPriceDesc})
	if err != nil {
		t.Fatalf("ListFiltered desc: %v", err)
	}
	if !equalIDs(productIDs(rows), []uint{ids[1], ids[2], ids[0]}) {
		t.Fatalf("desc: got %v", productIDs(rows))
	}
}

func TestProductListFilteredPaging(t *testing.T) {
	db := testutil.DB(t)
	repo := repos.NewProductRepo(db, testutil.Logger(t))
	shirts, ids := seedShirtCatalog(t, db)
	dbc := dbctx.Context{Ctx: context.Background()}

	rows, err := repo.ListFiltered(dbc, repos.ProductFilter{CategoryID: shirts.ID, Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("ListFiltered paged: %v", err)
	}
	if !equalIDs(productIDs(rows), []uint{ids[1], ids[2]}) {
		t.Fatalf("paged: got %v", productIDs(rows))
	}
}

func TestProductGetByIDPreloadsRelations(t *testing.T) {
	db := testutil.DB(t)
	repo := repos.NewProductRepo(db, testutil.Logger(t))
	shirts, ids := seedShirtCatalog(t, db)
	dbc := dbctx.Context{Ctx: context.Background()}

	p, err := repo.GetByID(dbc, ids[0])
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if p == nil {
		t.Fatalf("expected product")
	}
	if p.Size == nil || p.Size.Name != "M" {
		t.Fatalf("expected size preloaded, got %+v", p.Size)
	}
	if len(p.Categories) != 1 || p.Categories[0].ID != shirts.ID {
		t.Fatalf("expected categories preloaded, got %+v", p.Categories)
	}
}

func TestProductGetByIDAbsent(t *testing.T) {
	db := testutil.DB(t)
	repo := repos.NewProductRepo(db, testutil.Logger(t))

	p, err := repo.GetByID(dbctx.Context{Ctx: context.Background()}, 999)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if p != nil {
		t.Fatalf("expected nil for absent product, got %+v", p)
	}
}

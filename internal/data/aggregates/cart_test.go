package aggregates

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/CATyPH67/shop-api/internal/data/repos"
	"github.com/CATyPH67/shop-api/internal/data/repos/testutil"
	"github.com/CATyPH67/shop-api/internal/domain/shop"
)

func newCartHarness(t *testing.T) (shop.CartAggregate, *gorm.DB) {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	agg := NewCartAggregate(CartAggregateDeps{
		Base:  BaseDeps{DB: db, Log: log},
		Carts: repos.NewCartRepo(db, log),
		Lines: repos.NewCartLineRepo(db, log),
	})
	return agg, db
}

func checkTotals(t *testing.T, snap shop.CartSnapshot) {
	t.Helper()
	price, qty := cartTotals(snap.Lines)
	if snap.Cart.TotalPrice != price || snap.Cart.TotalQuantity != qty {
		t.Fatalf("cart totals diverged from lines: cart=(%v, %d) lines=(%v, %d)",
			snap.Cart.TotalPrice, snap.Cart.TotalQuantity, price, qty)
	}
}

func TestCartGetOrCreate(t *testing.T) {
	agg, _ := newCartHarness(t)
	ctx := context.Background()

	snap, err := agg.GetOrCreate(ctx, 11)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if snap.Cart.ID == 0 {
		t.Fatalf("expected created cart to have an id")
	}
	if snap.Cart.TotalPrice != 0 || snap.Cart.TotalQuantity != 0 || len(snap.Lines) != 0 {
		t.Fatalf("fresh cart must be empty, got %+v", snap)
	}

	again, err := agg.GetOrCreate(ctx, 11)
	if err != nil {
		t.Fatalf("GetOrCreate again: %v", err)
	}
	if again.Cart.ID != snap.Cart.ID {
		t.Fatalf("expected the same cart, got %d then %d", snap.Cart.ID, again.Cart.ID)
	}
}

func TestCartGetOrCreateRejectsMissingOwner(t *testing.T) {
	agg, _ := newCartHarness(t)

	_, err := agg.GetOrCreate(context.Background(), 0)
	if !shop.IsCode(err, shop.CodeInvalidArgument) {
		t.Fatalf("expected invalid_argument, got %v", err)
	}
}

func TestCartAddLineMergesExistingProduct(t *testing.T) {
	agg, _ := newCartHarness(t)
	ctx := context.Background()

	snap, err := agg.AddLine(ctx, shop.AddLineInput{OwnerID: 21, ProductID: 7, Quantity: 2, UnitPrice: 100})
	if err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if len(snap.Lines) != 1 || snap.Lines[0].Quantity != 2 || snap.Lines[0].PriceSnapshot != 200 {
		t.Fatalf("unexpected first line: %+v", snap.Lines)
	}

	snap, err = agg.AddLine(ctx, shop.AddLineInput{OwnerID: 21, ProductID: 7, Quantity: 3, UnitPrice: 100})
	if err != nil {
		t.Fatalf("AddLine merge: %v", err)
	}
	if len(snap.Lines) != 1 {
		t.Fatalf("expected one merged line, got %d", len(snap.Lines))
	}
	if snap.Lines[0].Quantity != 5 || snap.Lines[0].PriceSnapshot != 500 {
		t.Fatalf("expected qty 5 value 500, got qty %d value %v",
			snap.Lines[0].Quantity, snap.Lines[0].PriceSnapshot)
	}
	if snap.Cart.TotalPrice != 500 || snap.Cart.TotalQuantity != 5 {
		t.Fatalf("unexpected totals: %v / %d", snap.Cart.TotalPrice, snap.Cart.TotalQuantity)
	}
	checkTotals(t, snap)
}

func TestCartAddLineMergeRepricesFromCurrentUnitPrice(t *testing.T) {
	agg, _ := newCartHarness(t)
	ctx := context.Background()

	if _, err := agg.AddLine(ctx, shop.AddLineInput{OwnerID: 22, ProductID: 7, Quantity: 2, UnitPrice: 100}); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	// The product was repriced between the two adds; the merged snapshot is
	// recomputed wholesale at the new price.
	snap, err := agg.AddLine(ctx, shop.AddLineInput{OwnerID: 22, ProductID: 7, Quantity: 1, UnitPrice: 120})
	if err != nil {
		t.Fatalf("AddLine reprice: %v", err)
	}
	if snap.Lines[0].Quantity != 3 || snap.Lines[0].PriceSnapshot != 360 {
		t.Fatalf("expected qty 3 value 360, got qty %d value %v",
			snap.Lines[0].Quantity, snap.Lines[0].PriceSnapshot)
	}
	checkTotals(t, snap)
}

func TestCartAddLineRejectsNonPositiveQuantity(t *testing.T) {
	agg, _ := newCartHarness(t)
	ctx := context.Background()

	for _, qty := range []int{0, -1} {
		_, err := agg.AddLine(ctx, shop.AddLineInput{OwnerID: 23, ProductID: 7, Quantity: qty, UnitPrice: 100})
		if !shop.IsCode(err, shop.CodeInvalidArgument) {
			t.Fatalf("qty %d: expected invalid_argument, got %v", qty, err)
		}
	}
	snap, err := agg.GetOrCreate(ctx, 23)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if len(snap.Lines) != 0 {
		t.Fatalf("rejected adds must not leave lines behind")
	}
}

func TestCartSetLineIsIdempotent(t *testing.T) {
	agg, _ := newCartHarness(t)
	ctx := context.Background()

	snap, err := agg.AddLine(ctx, shop.AddLineInput{OwnerID: 24, ProductID: 7, Quantity: 1, UnitPrice: 100})
	if err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	lineID := snap.Lines[0].ID

	for i := 0; i < 2; i++ {
		snap, err = agg.SetLine(ctx, shop.SetLineInput{OwnerID: 24, LineID: lineID, Quantity: 3, UnitPrice: 100})
		if err != nil {
			t.Fatalf("SetLine #%d: %v", i+1, err)
		}
		if snap.Lines[0].Quantity != 3 || snap.Lines[0].PriceSnapshot != 300 {
			t.Fatalf("SetLine #%d: expected qty 3 value 300, got %+v", i+1, snap.Lines[0])
		}
		checkTotals(t, snap)
	}
}

func TestCartSetLineZeroQuantityDeletes(t *testing.T) {
	agg, _ := newCartHarness(t)
	ctx := context.Background()

	snap, err := agg.AddLine(ctx, shop.AddLineInput{OwnerID: 25, ProductID: 7, Quantity: 2, UnitPrice: 100})
	if err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	snap, err = agg.SetLine(ctx, shop.SetLineInput{OwnerID: 25, LineID: snap.Lines[0].ID, Quantity: 0})
	if err != nil {
		t.Fatalf("SetLine: %v", err)
	}
	if len(snap.Lines) != 0 {
		t.Fatalf("expected line removed, got %+v", snap.Lines)
	}
	if snap.Cart.TotalPrice != 0 || snap.Cart.TotalQuantity != 0 {
		t.Fatalf("expected zero totals, got %v / %d", snap.Cart.TotalPrice, snap.Cart.TotalQuantity)
	}
}

func TestCartSetLineRejectsNegativeQuantity(t *testing.T) {
	agg, _ := newCartHarness(t)

	_, err := agg.SetLine(context.Background(), shop.SetLineInput{OwnerID: 26, LineID: 1, Quantity: -1})
	if !shop.IsCode(err, shop.CodeInvalidArgument) {
		t.Fatalf("expected invalid_argument, got %v", err)
	}
}

func TestCartSetLineUnknownLine(t *testing.T) {
	agg, _ := newCartHarness(t)
	ctx := context.Background()

	if _, err := agg.GetOrCreate(ctx, 27); err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	_, err := agg.SetLine(ctx, shop.SetLineInput{OwnerID: 27, LineID: 999, Quantity: 1, UnitPrice: 100})
	if !shop.IsCode(err, shop.CodeNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestCartSetLineWithoutCart(t *testing.T) {
	agg, _ := newCartHarness(t)

	_, err := agg.SetLine(context.Background(), shop.SetLineInput{OwnerID: 28, LineID: 1, Quantity: 1, UnitPrice: 100})
	if !shop.IsCode(err, shop.CodeNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestCartRemoveLine(t *testing.T) {
	agg, _ := newCartHarness(t)
	ctx := context.Background()

	snap, err := agg.AddLine(ctx, shop.AddLineInput{OwnerID: 29, ProductID: 7, Quantity: 2, UnitPrice: 100})
	if err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if _, err := agg.AddLine(ctx, shop.AddLineInput{OwnerID: 29, ProductID: 8, Quantity: 1, UnitPrice: 50}); err != nil {
		t.Fatalf("AddLine second product: %v", err)
	}

	snap, err = agg.RemoveLine(ctx, shop.RemoveLineInput{OwnerID: 29, LineID: snap.Lines[0].ID})
	if err != nil {
		t.Fatalf("RemoveLine: %v", err)
	}
	if len(snap.Lines) != 1 || snap.Lines[0].ProductID != 8 {
		t.Fatalf("expected only product 8 to remain, got %+v", snap.Lines)
	}
	if snap.Cart.TotalPrice != 50 || snap.Cart.TotalQuantity != 1 {
		t.Fatalf("unexpected totals after removal: %v / %d", snap.Cart.TotalPrice, snap.Cart.TotalQuantity)
	}
	checkTotals(t, snap)
}

func TestCartRemoveLineUnknownLine(t *testing.T) {
	agg, _ := newCartHarness(t)
	ctx := context.Background()

	if _, err := agg.GetOrCreate(ctx, 30); err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	_, err := agg.RemoveLine(ctx, shop.RemoveLineInput{OwnerID: 30, LineID: 999})
	if !shop.IsCode(err, shop.CodeNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestCartLinesKeepInsertionOrder(t *testing.T) {
	agg, _ := newCartHarness(t)
	ctx := context.Background()

	for _, pid := range []uint{5, 3, 9} {
		if _, err := agg.AddLine(ctx, shop.AddLineInput{OwnerID: 31, ProductID: pid, Quantity: 1, UnitPrice: 10}); err != nil {
			t.Fatalf("AddLine product %d: %v", pid, err)
		}
	}
	snap, err := agg.GetOrCreate(ctx, 31)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	want := []uint{5, 3, 9}
	for i, l := range snap.Lines {
		if l.ProductID != want[i] {
			t.Fatalf("line %d: expected product %d, got %d", i, want[i], l.ProductID)
		}
	}
}

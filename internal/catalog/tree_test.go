package catalog

import (
	"testing"

	"github.com/CATyPH67/shop-api/internal/domain/shop"
)

func ptr(v uint) *uint { return &v }

func TestBuildForestNestsChildrenUnderPresentParents(t *testing.T) {
	rows := []shop.Category{
		{ID: 1, Name: "Electronics"},
		{ID: 2, Name: "Phones", ParentID: ptr(1)},
		{ID: 3, Name: "Laptops", ParentID: ptr(1)},
		{ID: 4, Name: "Books"},
		{ID: 5, Name: "Fiction", ParentID: ptr(4)},
	}

	roots := BuildForest(rows)
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
	if roots[0].Name != "Electronics" || roots[1].Name != "Books" {
		t.Fatalf("roots out of order: %q, %q", roots[0].Name, roots[1].Name)
	}
	if len(roots[0].Children) != 2 {
		t.Fatalf("expected 2 children under Electronics, got %d", len(roots[0].Children))
	}
	if roots[0].Children[0].Name != "Phones" || roots[0].Children[1].Name != "Laptops" {
		t.Fatalf("children out of order: %q, %q", roots[0].Children[0].Name, roots[0].Children[1].Name)
	}
	if len(roots[1].Children) != 1 || roots[1].Children[0].Name != "Fiction" {
		t.Fatalf("expected Fiction under Books")
	}
}

func TestBuildForestPromotesOrphansToRoots(t *testing.T) {
	// A page sliced out of the middle of the table: the parent of both rows
	// was loaded on an earlier page.
	rows := []shop.Category{
		{ID: 7, Name: "Phones", ParentID: ptr(1)},
		{ID: 8, Name: "Laptops", ParentID: ptr(1)},
	}

	roots := BuildForest(rows)
	if len(roots) != 2 {
		t.Fatalf("orphans must become roots, got %d roots", len(roots))
	}
	for _, r := range roots {
		if len(r.Children) != 0 {
			t.Fatalf("unexpected children under orphan %q", r.Name)
		}
	}
}

func TestBuildForestOrphanWithParentOnLaterPage(t *testing.T) {
	// Ids are not monotonic with hierarchy depth: the parent's id is higher
	// than the child's and falls on a later page.
	rows := []shop.Category{
		{ID: 2, Name: "Sale", ParentID: ptr(9)},
		{ID: 3, Name: "New"},
	}

	roots := BuildForest(rows)
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
	if roots[0].Name != "Sale" {
		t.Fatalf("expected Sale first, got %q", roots[0].Name)
	}
}

func TestBuildForestEmptyInput(t *testing.T) {
	roots := BuildForest(nil)
	if len(roots) != 0 {
		t.Fatalf("expected no roots, got %d", len(roots))
	}
}

package utils

import (
	"strings"
	"testing"

	"smartstock/models"
)

func TestCreatePagination(t *testing.T) {
	p := CreatePagination(95, 2, 10)
	if p.TotalPages != 10 {
		t.Fatalf("expected 10 pages for 95 items at size 10, got %d", p.TotalPages)
	}
	if p.CurrentPage != 2 || p.PageSize != 10 || p.TotalItems != 95 {
		t.Fatalf("unexpected pagination: %+v", p)
	}
}

func TestCreatePaginationDefaults(t *testing.T) {
	p := CreatePagination(5, 0, 0)
	if p.CurrentPage != 1 {
		t.Fatalf("expected page to default to 1, got %d", p.CurrentPage)
	}
	if p.PageSize != 10 {
		t.Fatalf("expected page size to default to 10, got %d", p.PageSize)
	}
	if p.TotalPages != 1 {
		t.Fatalf("expected 1 page, got %d", p.TotalPages)
	}
}

func TestPaginationOffset(t *testing.T) {
	p := CreatePagination(100, 3, 20)
	if got := p.Offset(); got != 40 {
		t.Fatalf("expected offset 40 for page 3 size 20, got %d", got)
	}
}

func TestBuildLowStockMessage(t *testing.T) {
	msg := BuildLowStockMessage([]models.LowStockAlert{
		{Product: "Widget", SKU: "WID-1", Store: "Main", Quantity: 2},
	})
	for _, want := range []string{"Widget", "WID-1", "Main", "Quantity: 2"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("alert message missing %q:\n%s", want, msg)
		}
	}
}

func TestBuildLowStockMessageEmpty(t *testing.T) {
	if msg := BuildLowStockMessage(nil); msg != "" {
		t.Fatalf("expected empty message for no items, got %q", msg)
	}
}

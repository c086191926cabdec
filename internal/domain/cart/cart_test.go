package cart

import (
	"reflect"
	"testing"

	"github.com/dbhs-alumni/merchstore/internal/domain/product"
)

func catalog() []product.Product {
	return []product.Product{
		product.Reconstruct("hoodie", product.Attributes{Name: "Alumni Hoodie", Price: 6500}, 2),
		product.Reconstruct("mug", product.Attributes{Name: "Alumni Mug", Price: 1800}, 1),
	}
}

func TestNew_DropsInvalidEntries(t *testing.T) {
	c := New(map[string]int{"hoodie": 2, "mug": 0, "pin": -1, "": 3})
	want := map[string]int{"hoodie": 2}
	if got := c.Quantities(); !reflect.DeepEqual(got, want) {
		t.Errorf("Quantities() = %v, want %v", got, want)
	}
}

func TestChange(t *testing.T) {
	c := New(nil).Add("mug").Add("mug").Change("hoodie", 3)
	if c.Qty("mug") != 2 || c.Qty("hoodie") != 3 {
		t.Fatalf("unexpected quantities: %v", c.Quantities())
	}

	c = c.Change("mug", -2)
	if _, ok := c.Quantities()["mug"]; ok {
		t.Error("mug should be removed at zero")
	}

	c = c.Change("pin", -1)
	if _, ok := c.Quantities()["pin"]; ok {
		t.Error("negative delta on missing id must not create an entry")
	}
}

func TestImmutability(t *testing.T) {
	orig := New(map[string]int{"mug": 1})
	_ = orig.Add("mug").Remove("mug")
	if orig.Qty("mug") != 1 {
		t.Error("mutation leaked into original cart")
	}

	q := orig.Quantities()
	q["mug"] = 99
	if orig.Qty("mug") != 1 {
		t.Error("Quantities() must return a copy")
	}
}

func TestLines(t *testing.T) {
	c := New(map[string]int{"mug": 2, "hoodie": 1, "ghost": 4})
	lines := c.Lines(catalog())

	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Product.ID() != "hoodie" || lines[1].Product.ID() != "mug" {
		t.Errorf("lines should follow catalog order, got %s, %s", lines[0].Product.ID(), lines[1].Product.ID())
	}
	if lines[1].LineTotal() != 3600 {
		t.Errorf("LineTotal() = %v, want 3600", lines[1].LineTotal())
	}
	if got := c.Missing(catalog()); !reflect.DeepEqual(got, []string{"ghost"}) {
		t.Errorf("Missing() = %v", got)
	}
}

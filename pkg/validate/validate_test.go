package validate_test

import (
	"testing"

	"github.com/shashiranjanraj/bazaar/pkg/validate"
)

type productInput struct {
	Name        string  `json:"name"        validate:"required,min=2,max=255"`
	Description string  `json:"description" validate:"nullable"`
	Price       float64 `json:"price"       validate:"required,numeric,gte=0"`
	Stock       int     `json:"stock"       validate:"integer,gte=0,lte=100000"`
	SKU         string  `json:"sku"         validate:"required,max=100"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(productInput{
		Name:        "Mechanical Keyboard",
		Description: "", // nullable — allowed to be empty
		Price:       89.99,
		Stock:       40,
		SKU:         "KB-87-BLK",
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(productInput{})
	if !validate.HasErrors(errs) {
		t.Error("expected required errors")
	}
	if _, ok := errs["name"]; !ok {
		t.Error("expected name to be required")
	}
	if _, ok := errs["sku"]; !ok {
		t.Error("expected sku to be required")
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	errs := validate.Struct(in{Email: "not-an-email"})
	if _, ok := errs["email"]; !ok {
		t.Error("expected email validation error")
	}
	errs = validate.Struct(in{Email: "valid@example.com"})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRangeRules(t *testing.T) {
	type in struct {
		Quantity int `json:"quantity" validate:"required,integer,gte=1,lte=100"`
	}
	if errs := validate.Struct(in{Quantity: 0}); !validate.HasErrors(errs) {
		t.Error("expected error for quantity below range")
	}
	if errs := validate.Struct(in{Quantity: 101}); !validate.HasErrors(errs) {
		t.Error("expected error for quantity above range")
	}
	if errs := validate.Struct(in{Quantity: 50}); validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

// The in rule carries commas inside its value list; make sure the tag
// splitter keeps the full list intact.
func TestInRule(t *testing.T) {
	type in struct {
		Status string `json:"status" validate:"required,in=pending,paid,shipped,delivered,cancelled"`
	}
	if errs := validate.Struct(in{Status: "teleported"}); !validate.HasErrors(errs) {
		t.Error("expected error for status outside allowed set")
	}
	for _, s := range []string{"pending", "paid", "shipped", "delivered", "cancelled"} {
		if errs := validate.Struct(in{Status: s}); validate.HasErrors(errs) {
			t.Errorf("status %q: expected no errors, got: %v", s, errs)
		}
	}
}

func TestMinMaxStrings(t *testing.T) {
	type in struct {
		Password string `json:"password" validate:"required,min=8,max=72"`
	}
	if errs := validate.Struct(in{Password: "short"}); !validate.HasErrors(errs) {
		t.Error("expected error for short password")
	}
	if errs := validate.Struct(in{Password: "long-enough-password"}); validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

package validation

import (
	"errors"
	"testing"

	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/core/registry"
	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/core/schema"
)

func boolPtr(b bool) *bool { return &b }

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	reg := registry.New()
	err := reg.Declare(schema.Schema{
		Name:       "CatalogItem",
		Collection: "product",
		Fields: []schema.Field{
			{Name: "title", Type: schema.FieldTypeString, Required: boolPtr(true)},
			{Name: "description", Type: schema.FieldTypeString, Required: boolPtr(true)},
			{Name: "price", Type: schema.FieldTypeDecimal, Required: boolPtr(true),
				Constraints: []schema.Constraint{{Type: schema.ConstraintMin, Value: 0}}},
			{Name: "category", Type: schema.FieldTypeString, Required: boolPtr(true)},
			{Name: "image", Type: schema.FieldTypeURL, Required: boolPtr(true)},
			{Name: "in_stock", Type: schema.FieldTypeBoolean, Default: true},
		},
	})
	if err != nil {
		t.Fatalf("Declare(CatalogItem) error = %v", err)
	}
	return reg
}

func validPayload() map[string]any {
	return map[string]any{
		"title":       "Test",
		"description": "d",
		"price":       9.99,
		"category":    "Audio",
		"image":       "http://x",
		"in_stock":    true,
	}
}

func TestValidator_Validate_ValidPayload(t *testing.T) {
	v := New(testRegistry(t))

	doc, err := v.Validate("CatalogItem", validPayload())
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	for _, name := range []string{"title", "description", "price", "category", "image", "in_stock"} {
		if _, ok := doc[name]; !ok {
			t.Errorf("document missing declared field %q", name)
		}
	}
	if doc["price"] != 9.99 {
		t.Errorf("price = %v, want 9.99", doc["price"])
	}
}

func TestValidator_Validate_UnknownFieldsDropped(t *testing.T) {
	v := New(testRegistry(t))

	payload := validPayload()
	payload["color"] = "orange"
	payload["_id"] = "injected"

	doc, err := v.Validate("CatalogItem", payload)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if _, ok := doc["color"]; ok {
		t.Errorf("unknown field %q copied into document", "color")
	}
	if _, ok := doc["_id"]; ok {
		t.Errorf("unknown field %q copied into document", "_id")
	}
	if len(doc) != 6 {
		t.Errorf("document has %d fields, want 6", len(doc))
	}
}

func TestValidator_Validate_MissingRequired(t *testing.T) {
	v := New(testRegistry(t))

	for _, name := range []string{"title", "description", "price", "category", "image"} {
		t.Run(name, func(t *testing.T) {
			payload := validPayload()
			delete(payload, name)

			_, err := v.Validate("CatalogItem", payload)
			if err == nil {
				t.Fatalf("Validate() without %q succeeded, want error", name)
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error = %T, want *ValidationError", err)
			}
			if verr.Field != name {
				t.Errorf("ValidationError.Field = %q, want %q", verr.Field, name)
			}
			if verr.Reason != ReasonMissing {
				t.Errorf("ValidationError.Reason = %q, want %q", verr.Reason, ReasonMissing)
			}
		})
	}
}

func TestValidator_Validate_DefaultSubstituted(t *testing.T) {
	v := New(testRegistry(t))

	payload := validPayload()
	delete(payload, "in_stock")

	doc, err := v.Validate("CatalogItem", payload)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if doc["in_stock"] != true {
		t.Errorf("in_stock = %v, want default true", doc["in_stock"])
	}
}

func TestValidator_Validate_TextualDecimalCoerced(t *testing.T) {
	v := New(testRegistry(t))

	payload := validPayload()
	payload["price"] = "129.99"

	doc, err := v.Validate("CatalogItem", payload)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if doc["price"] != 129.99 {
		t.Errorf("price = %v (%T), want coerced 129.99", doc["price"], doc["price"])
	}
}

func TestValidator_Validate_TypeMismatch(t *testing.T) {
	v := New(testRegistry(t))

	payload := validPayload()
	payload["price"] = true

	_, err := v.Validate("CatalogItem", payload)
	if err == nil {
		t.Fatalf("Validate() with boolean price succeeded, want error")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Validate() error = %T, want *ValidationError", err)
	}
	if verr.Field != "price" || verr.Reason != ReasonTypeMismatch {
		t.Errorf("ValidationError = %+v, want price type-mismatch", verr)
	}
	if verr.Expected != "decimal" {
		t.Errorf("ValidationError.Expected = %q, want %q", verr.Expected, "decimal")
	}
	if verr.Got != "boolean" {
		t.Errorf("ValidationError.Got = %q, want %q", verr.Got, "boolean")
	}
}

func TestValidator_Validate_NegativePriceRejected(t *testing.T) {
	v := New(testRegistry(t))

	payload := validPayload()
	payload["price"] = -1.5

	_, err := v.Validate("CatalogItem", payload)
	if err == nil {
		t.Fatalf("Validate() with negative price succeeded, want error")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Validate() error = %T, want *ValidationError", err)
	}
	if verr.Field != "price" || verr.Reason != ReasonOutOfRange {
		t.Errorf("ValidationError = %+v, want price out-of-range", verr)
	}
}

func TestValidator_Validate_NullTreatedAsAbsent(t *testing.T) {
	v := New(testRegistry(t))

	t.Run("null optional takes default", func(t *testing.T) {
		payload := validPayload()
		payload["in_stock"] = nil

		doc, err := v.Validate("CatalogItem", payload)
		if err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
		if doc["in_stock"] != true {
			t.Errorf("in_stock = %v, want default true", doc["in_stock"])
		}
	})

	t.Run("null required fails missing", func(t *testing.T) {
		payload := validPayload()
		payload["title"] = nil

		_, err := v.Validate("CatalogItem", payload)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("Validate() error = %v, want *ValidationError", err)
		}
		if verr.Field != "title" || verr.Reason != ReasonMissing {
			t.Errorf("ValidationError = %+v, want title missing", verr)
		}
	})
}

func TestValidator_Validate_FirstErrorInDeclarationOrder(t *testing.T) {
	v := New(testRegistry(t))

	_, err := v.Validate("CatalogItem", map[string]any{})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Validate() error = %v, want *ValidationError", err)
	}
	if verr.Field != "title" {
		t.Errorf("first reported field = %q, want %q (declaration order)", verr.Field, "title")
	}
}

func TestValidator_Validate_InvalidImageURL(t *testing.T) {
	v := New(testRegistry(t))

	payload := validPayload()
	payload["image"] = "not a url"

	_, err := v.Validate("CatalogItem", payload)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Validate() error = %v, want *ValidationError", err)
	}
	if verr.Field != "image" || verr.Reason != ReasonTypeMismatch {
		t.Errorf("ValidationError = %+v, want image type-mismatch", verr)
	}
}

func TestValidator_Validate_UnknownSchema(t *testing.T) {
	v := New(testRegistry(t))

	_, err := v.Validate("Basket", map[string]any{})
	var uerr *UnknownSchemaError
	if !errors.As(err, &uerr) {
		t.Fatalf("Validate() error = %T, want *UnknownSchemaError", err)
	}
	if uerr.Name != "Basket" {
		t.Errorf("UnknownSchemaError.Name = %q, want %q", uerr.Name, "Basket")
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "missing",
			err:  &ValidationError{Field: "title", Reason: ReasonMissing},
			want: "title: missing",
		},
		{
			name: "type mismatch",
			err:  &ValidationError{Field: "price", Reason: ReasonTypeMismatch, Expected: "decimal", Got: "boolean"},
			want: "price: type-mismatch (expected decimal, got boolean)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

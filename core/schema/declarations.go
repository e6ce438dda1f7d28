package schema

// Built-in schema declarations. These are the document kinds this backend
// serves; they are registered once during bootstrap and drive validation,
// the /schema endpoint, and the generated OpenAPI document.

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// CatalogItem declares the storefront product schema. Documents live in the
// "product" collection.
func CatalogItem() Schema {
	return Schema{
		Name:        "CatalogItem",
		Collection:  "product",
		Description: "A sellable storefront product",
		Fields: []Field{
			{Name: "title", Type: FieldTypeString, Required: boolPtr(true), Description: "Display name"},
			{Name: "description", Type: FieldTypeString, Required: boolPtr(true), Description: "Long-form copy"},
			{Name: "price", Type: FieldTypeDecimal, Required: boolPtr(true), Description: "Unit price",
				Constraints: []Constraint{{Type: ConstraintMin, Value: 0}}},
			{Name: "category", Type: FieldTypeString, Required: boolPtr(true), Description: "Browse category"},
			{Name: "image", Type: FieldTypeURL, Required: boolPtr(true), Description: "Primary image URL"},
			{Name: "in_stock", Type: FieldTypeBoolean, Default: true, Description: "Availability flag"},
		},
	}
}

// Order declares the customer order schema. Documents live in the "order"
// collection.
func Order() Schema {
	return Schema{
		Name:        "Order",
		Collection:  "order",
		Description: "A customer purchase order",
		Fields: []Field{
			{Name: "customer_name", Type: FieldTypeString, Required: boolPtr(true), Description: "Purchaser display name"},
			{Name: "email", Type: FieldTypeString, Required: boolPtr(true), Description: "Contact email"},
			{Name: "address", Type: FieldTypeString, Required: boolPtr(true), Description: "Shipping address"},
			{Name: "items", Type: FieldTypeArray, Required: boolPtr(true), Description: "Ordered line items"},
			{Name: "total", Type: FieldTypeDecimal, Required: boolPtr(true), Description: "Order total",
				Constraints: []Constraint{{Type: ConstraintMin, Value: 0}}},
			{Name: "status", Type: FieldTypeString, Default: "received", Description: "Fulfilment state"},
		},
	}
}

// Declarations returns every built-in schema in registration order.
func Declarations() []Schema {
	return []Schema{
		CatalogItem(),
		Order(),
	}
}

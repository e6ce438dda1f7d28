// Package openapi generates an OpenAPI 3.0 document from the schema registry.
// The document is rebuilt from the live registry on every request, so the
// published contract can never drift from what validation enforces.
package openapi

import (
	"encoding/json"

	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/core/registry"
	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/core/schema"
)

// Spec represents an OpenAPI 3.0 specification.
type Spec struct {
	OpenAPI    string              `json:"openapi"`
	Info       Info                `json:"info"`
	Servers    []Server            `json:"servers,omitempty"`
	Paths      map[string]PathItem `json:"paths"`
	Components Components          `json:"components"`
	Tags       []Tag               `json:"tags,omitempty"`
}

// Info provides API metadata.
type Info struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version"`
}

// Server represents a server URL.
type Server struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// PathItem contains the operations served on a path.
type PathItem struct {
	Get  *Operation `json:"get,omitempty"`
	Post *Operation `json:"post,omitempty"`
}

// Operation represents an API operation.
type Operation struct {
	Tags        []string            `json:"tags,omitempty"`
	Summary     string              `json:"summary,omitempty"`
	Description string              `json:"description,omitempty"`
	OperationID string              `json:"operationId,omitempty"`
	Parameters  []Parameter         `json:"parameters,omitempty"`
	RequestBody *RequestBody        `json:"requestBody,omitempty"`
	Responses   map[string]Response `json:"responses"`
}

// Parameter represents a query parameter.
type Parameter struct {
	Name        string  `json:"name"`
	In          string  `json:"in"`
	Description string  `json:"description,omitempty"`
	Required    bool    `json:"required,omitempty"`
	Schema      *Schema `json:"schema,omitempty"`
}

// RequestBody represents a request body.
type RequestBody struct {
	Description string               `json:"description,omitempty"`
	Required    bool                 `json:"required,omitempty"`
	Content     map[string]MediaType `json:"content"`
}

// Response represents an API response.
type Response struct {
	Description string               `json:"description"`
	Content     map[string]MediaType `json:"content,omitempty"`
}

// MediaType represents a media type.
type MediaType struct {
	Schema *Schema `json:"schema,omitempty"`
}

// Schema represents a JSON Schema.
type Schema struct {
	Type        string             `json:"type,omitempty"`
	Format      string             `json:"format,omitempty"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Ref         string             `json:"$ref,omitempty"`
	Minimum     *float64           `json:"minimum,omitempty"`
	Maximum     *float64           `json:"maximum,omitempty"`
	Default     any                `json:"default,omitempty"`
}

// Components contains reusable schemas.
type Components struct {
	Schemas map[string]*Schema `json:"schemas,omitempty"`
}

// Tag provides metadata for a group of operations.
type Tag struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Generator builds OpenAPI specs from the schema registry.
type Generator struct {
	reg     *registry.Registry
	info    Info
	servers []Server
}

// NewGenerator creates a new OpenAPI generator.
func NewGenerator(reg *registry.Registry) *Generator {
	return &Generator{
		reg: reg,
		info: Info{
			Title:       "CARTX API",
			Version:     "1.0.0",
			Description: "Storefront backend: products, orders, seeding, and schema introspection.",
		},
	}
}

// SetInfo sets the API info.
func (g *Generator) SetInfo(info Info) {
	g.info = info
}

// AddServer adds a server URL.
func (g *Generator) AddServer(url, description string) {
	g.servers = append(g.servers, Server{
		URL:         url,
		Description: description,
	})
}

// Generate creates the OpenAPI specification. Component schemas come from the
// registry in declaration order; paths mirror the routes the server mounts.
func (g *Generator) Generate() *Spec {
	spec := &Spec{
		OpenAPI: "3.0.3",
		Info:    g.info,
		Servers: g.servers,
		Paths:   make(map[string]PathItem),
		Components: Components{
			Schemas: make(map[string]*Schema),
		},
	}

	for _, s := range g.reg.List() {
		spec.Components.Schemas[s.Name] = componentSchema(s)
		spec.Tags = append(spec.Tags, Tag{Name: s.Collection, Description: s.Description})
	}
	spec.Components.Schemas["Error"] = errorSchema()
	spec.Tags = append(spec.Tags, Tag{Name: "system", Description: "Service status and introspection"})

	g.addRootPath(spec)
	g.addProductPaths(spec)
	g.addOrderPaths(spec)
	g.addSystemPaths(spec)

	return spec
}

// refFor returns a $ref to the component schema registered for a collection,
// falling back to a free-form object when none is declared.
func (g *Generator) refFor(collection string) *Schema {
	if s, ok := g.reg.GetByCollection(collection); ok {
		return &Schema{Ref: "#/components/schemas/" + s.Name}
	}
	return &Schema{Type: "object"}
}

func (g *Generator) addRootPath(spec *Spec) {
	spec.Paths["/"] = PathItem{
		Get: &Operation{
			Tags:        []string{"system"},
			Summary:     "Service banner",
			OperationID: "getRoot",
			Responses: map[string]Response{
				"200": jsonResponse("Backend is running", &Schema{
					Type: "object",
					Properties: map[string]*Schema{
						"message": {Type: "string"},
					},
				}),
			},
		},
	}
}

func (g *Generator) addProductPaths(spec *Spec) {
	itemRef := g.refFor("product")

	spec.Paths["/api/products"] = PathItem{
		Get: &Operation{
			Tags:        []string{"product"},
			Summary:     "List products",
			Description: "Returns products, optionally narrowed to an exact category match.",
			OperationID: "listProducts",
			Parameters: []Parameter{{
				Name:        "category",
				In:          "query",
				Description: "Exact category filter",
				Schema:      &Schema{Type: "string"},
			}},
			Responses: map[string]Response{
				"200": jsonResponse("Matching products", listSchema(itemRef)),
				"500": errorResponse("Store failure"),
				"503": errorResponse("Store not configured"),
			},
		},
		Post: &Operation{
			Tags:        []string{"product"},
			Summary:     "Create a product",
			OperationID: "createProduct",
			RequestBody: jsonBody("Product payload", true, itemRef),
			Responses: map[string]Response{
				"200": jsonResponse("Created", idSchema()),
				"400": errorResponse("Validation failure or malformed body"),
				"500": errorResponse("Store failure"),
				"503": errorResponse("Store not configured"),
			},
		},
	}

	spec.Paths["/api/seed"] = PathItem{
		Post: &Operation{
			Tags:        []string{"product"},
			Summary:     "Seed sample products",
			Description: "Inserts the sample catalog unless products already exist. Safe to call repeatedly.",
			OperationID: "seedProducts",
			Responses: map[string]Response{
				"200": jsonResponse("Seed outcome", &Schema{
					Type: "object",
					Properties: map[string]*Schema{
						"status": {Type: "string"},
						"count":  {Type: "integer"},
						"ids":    {Type: "array", Items: &Schema{Type: "string"}},
					},
					Required: []string{"status"},
				}),
				"500": errorResponse("Store failure"),
				"503": errorResponse("Store not configured"),
			},
		},
	}
}

func (g *Generator) addOrderPaths(spec *Spec) {
	itemRef := g.refFor("order")

	spec.Paths["/api/orders"] = PathItem{
		Get: &Operation{
			Tags:        []string{"order"},
			Summary:     "List orders",
			OperationID: "listOrders",
			Parameters: []Parameter{{
				Name:        "limit",
				In:          "query",
				Description: "Maximum number of orders returned",
				Schema:      &Schema{Type: "integer", Default: 50},
			}},
			Responses: map[string]Response{
				"200": jsonResponse("Orders", listSchema(itemRef)),
				"500": errorResponse("Store failure"),
				"503": errorResponse("Store not configured"),
			},
		},
		Post: &Operation{
			Tags:        []string{"order"},
			Summary:     "Create an order",
			OperationID: "createOrder",
			RequestBody: jsonBody("Order payload", true, itemRef),
			Responses: map[string]Response{
				"200": jsonResponse("Created", &Schema{
					Type: "object",
					Properties: map[string]*Schema{
						"_id":    {Type: "string"},
						"status": {Type: "string"},
					},
				}),
				"400": errorResponse("Validation failure or malformed body"),
				"500": errorResponse("Store failure"),
				"503": errorResponse("Store not configured"),
			},
		},
	}
}

func (g *Generator) addSystemPaths(spec *Spec) {
	spec.Paths["/schema"] = PathItem{
		Get: &Operation{
			Tags:        []string{"system"},
			Summary:     "Describe registered schemas",
			OperationID: "getSchema",
			Responses: map[string]Response{
				"200": jsonResponse("Registered document schemas", &Schema{
					Type: "object",
					Properties: map[string]*Schema{
						"models": {Type: "array", Items: &Schema{Type: "object"}},
					},
				}),
			},
		},
	}

	spec.Paths["/test"] = PathItem{
		Get: &Operation{
			Tags:        []string{"system"},
			Summary:     "Backend and database diagnostics",
			Description: "Always returns 200; problems surface as status strings.",
			OperationID: "testDatabase",
			Responses: map[string]Response{
				"200": jsonResponse("Diagnostics report", &Schema{
					Type: "object",
					Properties: map[string]*Schema{
						"backend":           {Type: "string"},
						"database":          {Type: "string"},
						"database_url":      {Type: "string"},
						"database_name":     {Type: "string"},
						"connection_status": {Type: "string"},
						"collections":       {Type: "array", Items: &Schema{Type: "string"}},
					},
				}),
			},
		},
	}

	statusSchema := &Schema{
		Type: "object",
		Properties: map[string]*Schema{
			"status": {Type: "string"},
		},
	}
	spec.Paths["/health/live"] = PathItem{
		Get: &Operation{
			Tags:        []string{"system"},
			Summary:     "Liveness probe",
			OperationID: "healthLive",
			Responses: map[string]Response{
				"200": jsonResponse("Process is up", statusSchema),
			},
		},
	}
	spec.Paths["/health/ready"] = PathItem{
		Get: &Operation{
			Tags:        []string{"system"},
			Summary:     "Readiness probe",
			OperationID: "healthReady",
			Responses: map[string]Response{
				"200": jsonResponse("Store reachable", statusSchema),
				"503": jsonResponse("Store unavailable", statusSchema),
			},
		},
	}
}

// componentSchema converts a document schema declaration into a JSON Schema.
func componentSchema(s schema.Schema) *Schema {
	out := &Schema{
		Type:        "object",
		Description: s.Description,
		Properties:  make(map[string]*Schema, len(s.Fields)),
	}
	for _, f := range s.Fields {
		out.Properties[f.Name] = fieldSchema(f)
		if f.IsRequired() {
			out.Required = append(out.Required, f.Name)
		}
	}
	return out
}

// fieldSchema maps one field declaration to its JSON Schema.
func fieldSchema(f schema.Field) *Schema {
	out := &Schema{
		Description: f.Description,
		Default:     f.Default,
	}

	switch f.Type {
	case schema.FieldTypeString:
		out.Type = "string"
	case schema.FieldTypeInteger:
		out.Type = "integer"
	case schema.FieldTypeDecimal:
		out.Type = "number"
		out.Format = "double"
	case schema.FieldTypeBoolean:
		out.Type = "boolean"
	case schema.FieldTypeURL:
		out.Type = "string"
		out.Format = "uri"
	case schema.FieldTypeTimestamp:
		out.Type = "string"
		out.Format = "date-time"
	case schema.FieldTypeObject:
		out.Type = "object"
	case schema.FieldTypeArray:
		out.Type = "array"
		out.Items = &Schema{}
	default:
		out.Type = "string"
	}

	for _, c := range f.Constraints {
		v, ok := numeric(c.Value)
		if !ok {
			continue
		}
		switch c.Type {
		case schema.ConstraintMin:
			out.Minimum = &v
		case schema.ConstraintMax:
			out.Maximum = &v
		}
	}

	return out
}

// errorSchema is the body shape of every non-2xx response.
func errorSchema() *Schema {
	return &Schema{
		Type: "object",
		Properties: map[string]*Schema{
			"detail": {Type: "string", Description: "Human-readable failure message"},
		},
		Required: []string{"detail"},
	}
}

func errorResponse(description string) Response {
	return jsonResponse(description, &Schema{Ref: "#/components/schemas/Error"})
}

func jsonResponse(description string, s *Schema) Response {
	return Response{
		Description: description,
		Content:     map[string]MediaType{"application/json": {Schema: s}},
	}
}

func jsonBody(description string, required bool, s *Schema) *RequestBody {
	return &RequestBody{
		Description: description,
		Required:    required,
		Content:     map[string]MediaType{"application/json": {Schema: s}},
	}
}

// listSchema documents the {"items": [...]} envelope served by the list
// endpoints.
func listSchema(item *Schema) *Schema {
	return &Schema{
		Type: "object",
		Properties: map[string]*Schema{
			"items": {Type: "array", Items: item},
		},
	}
}

func idSchema() *Schema {
	return &Schema{
		Type: "object",
		Properties: map[string]*Schema{
			"_id": {Type: "string"},
		},
	}
}

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// ToJSON serializes the spec to indented JSON.
func (spec *Spec) ToJSON() ([]byte, error) {
	return json.MarshalIndent(spec, "", "  ")
}

// ToJSONCompact serializes the spec to compact JSON.
func (spec *Spec) ToJSONCompact() ([]byte, error) {
	return json.Marshal(spec)
}

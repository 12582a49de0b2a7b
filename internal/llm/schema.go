package llm

import (
	"encoding/json"
	"fmt"
)

// SchemaType is the JSON type of a schema node
type SchemaType string

const (
	TypeString SchemaType = "string"
	TypeArray  SchemaType = "array"
	TypeObject SchemaType = "object"
)

// Schema is a provider-neutral descriptor of an expected JSON response.
// Object properties keep their declared order.
type Schema struct {
	Type       SchemaType
	Items      *Schema
	Properties []Property
	Required   []string
}

// Property is a named field of an object schema
type Property struct {
	Name   string
	Schema *Schema
}

func String() *Schema {
	return &Schema{Type: TypeString}
}

func ArrayOf(items *Schema) *Schema {
	return &Schema{Type: TypeArray, Items: items}
}

func Object(props ...Property) *Schema {
	return &Schema{Type: TypeObject, Properties: props}
}

func Field(name string, s *Schema) Property {
	return Property{Name: name, Schema: s}
}

// Require marks the named properties as required and returns s.
func (s *Schema) Require(names ...string) *Schema {
	s.Required = append(s.Required, names...)
	return s
}

// JSONSchema renders s as a JSON Schema document.
func (s *Schema) JSONSchema() map[string]any {
	if s == nil {
		return nil
	}
	out := map[string]any{"type": string(s.Type)}
	switch s.Type {
	case TypeArray:
		if s.Items != nil {
			out["items"] = s.Items.JSONSchema()
		}
	case TypeObject:
		props := make(map[string]any, len(s.Properties))
		for _, p := range s.Properties {
			props[p.Name] = p.Schema.JSONSchema()
		}
		out["properties"] = props
		if len(s.Required) > 0 {
			out["required"] = append([]string(nil), s.Required...)
		}
	}
	return out
}

// instruction describes s in plain text for providers without native
// structured output.
func (s *Schema) instruction() string {
	doc, err := json.MarshalIndent(s.JSONSchema(), "", "  ")
	if err != nil {
		return "Respond with valid JSON only."
	}
	return fmt.Sprintf("Respond with valid JSON only, no markdown and no explanation. The JSON must match this JSON Schema:\n%s", doc)
}

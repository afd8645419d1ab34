package symvalidation

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/Gobd/symvalidation/formula"
)

// ClassificationExtension is the OpenAPI extension carrying the
// classification of a described schema.
const ClassificationExtension = "x-classification"

func scalarSchema(sort formula.Sort) *openapi3.Schema {
	if sort == formula.SortInt {
		return openapi3.NewIntegerSchema()
	}
	return openapi3.NewStringSchema()
}

// objectAt returns the object schema at path below root, creating
// intermediate objects as needed.
func objectAt(root *openapi3.Schema, path []string) *openapi3.Schema {
	cur := root
	for _, seg := range path {
		ref, ok := cur.Properties[seg]
		if !ok || ref.Value == nil {
			child := openapi3.NewObjectSchema()
			cur.Properties[seg] = &openapi3.SchemaRef{Value: child}
			cur.Required = append(cur.Required, seg)
			cur = child
			continue
		}
		cur = ref.Value
	}
	return cur
}

// OpenAPISchema describes d as an OpenAPI 3 schema. Field rules set enums,
// lengths, bounds and patterns on their properties; constraint messages and
// the classification, when known, are attached to the root.
func (d *Descriptor) OpenAPISchema() *openapi3.Schema {
	var root *openapi3.Schema
	if d.value && len(d.bindings) == 1 {
		b := d.bindings[0]
		root = scalarSchema(b.v.Sort)
		ref := &openapi3.SchemaRef{Value: root}
		for _, fn := range b.describe {
			fn(ref)
		}
	} else {
		root = openapi3.NewObjectSchema()
		for _, b := range d.bindings {
			if len(b.path) == 0 {
				continue
			}
			parent := objectAt(root, b.path[:len(b.path)-1])
			name := b.path[len(b.path)-1]
			ref := &openapi3.SchemaRef{Value: scalarSchema(b.v.Sort)}
			for _, fn := range b.describe {
				fn(ref)
			}
			parent.Properties[name] = ref
			parent.Required = append(parent.Required, name)
		}
	}

	root.Title = d.Entity
	if len(d.Constraints) > 0 {
		msgs := make([]string, len(d.Constraints))
		for i, c := range d.Constraints {
			msgs[i] = c.Rule + ": " + c.Message
		}
		ref := &openapi3.SchemaRef{Value: root}
		appendDescription(ref, "Constraints: "+strings.Join(msgs, "; ")+".")
	}
	if d.Classification != nil {
		if root.Extensions == nil {
			root.Extensions = map[string]any{}
		}
		root.Extensions[ClassificationExtension] = d.Classification.Kind.String()
	}
	return root
}

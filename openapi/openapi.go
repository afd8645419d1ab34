package openapi

import (
	"errors"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/Gobd/symvalidation"
)

// Response describes an HTTP response with a description and body schemas.
type Response struct {
	Desc   string
	Bodies []*openapi3.Schema
}

// Endpoint describes a single API operation for [Get] and [Post].
type Endpoint struct {
	Summary     string
	Description string
	Request     *openapi3.Schema    // single request body schema
	Requests    []*openapi3.Schema  // multiple request body schemas (oneOf)
	Response    *openapi3.Schema    // single 200 response schema
	Responses   map[string]Response // full response map (overrides Response if both set)
}

// NewRequestMust is like [NewRequest] but panics on error.
func NewRequestMust(schemas ...*openapi3.Schema) *openapi3.RequestBodyRef {
	o, err := NewRequest(schemas...)
	if err != nil {
		panic(err)
	}
	return o
}

// NewRequest builds a JSON request body from the given schemas.
func NewRequest(schemas ...*openapi3.Schema) (*openapi3.RequestBodyRef, error) {
	if len(schemas) == 0 {
		return nil, errors.New("no schemas given")
	}
	return &openapi3.RequestBodyRef{
		Value: &openapi3.RequestBody{
			Required: true,
			Content:  jsonContent(schemas),
		},
	}, nil
}

// NewResponseMust is like [NewResponse] but panics on error.
// Map key is status code (e.g. "200", "4xx").
func NewResponseMust(vs map[string]Response) *openapi3.Responses {
	o, err := NewResponse(vs)
	if err != nil {
		panic(err)
	}
	return o
}

// NewResponse creates an OpenAPI responses object.
// Map key is status code (e.g. "200", "4xx").
func NewResponse(vs map[string]Response) (*openapi3.Responses, error) {
	if len(vs) == 0 {
		return nil, errors.New("no values given")
	}

	opts := make([]openapi3.NewResponsesOption, 0, len(vs))
	for statusCode, r := range vs {
		desc := r.Desc
		resp := &openapi3.Response{Description: &desc}
		if len(r.Bodies) > 0 {
			resp.Content = jsonContent(r.Bodies)
		}
		opts = append(opts, openapi3.WithName(statusCode, resp))
	}
	return openapi3.NewResponses(opts...), nil
}

// jsonContent wraps schemas in an application/json media type, as a oneOf
// when there is more than one.
func jsonContent(schemas []*openapi3.Schema) openapi3.Content {
	ref := &openapi3.SchemaRef{Value: &openapi3.Schema{}}
	for _, s := range schemas {
		ref.Value.OneOf = append(ref.Value.OneOf, &openapi3.SchemaRef{Value: s})
	}
	if len(ref.Value.OneOf) == 1 {
		ref = ref.Value.OneOf[0]
	}
	return openapi3.Content{"application/json": &openapi3.MediaType{Schema: ref}}
}

// DocBase returns a basic OpenAPI 3.0.3 document structure.
func DocBase(serviceName, description, version string) *openapi3.T {
	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       serviceName,
			Description: description,
			Version:     version,
		},
		Paths: &openapi3.Paths{},
	}
}

// AddPath adds an operation to the OpenAPI spec at the given path and method.
func AddPath(path, method string, s *openapi3.T, op *openapi3.Operation) {
	p := s.Paths.Value(path)
	if p == nil {
		p = &openapi3.PathItem{}
	}

	switch method {
	case http.MethodGet:
		p.Get = op
	case http.MethodPost:
		p.Post = op
	}

	s.Paths.Set(path, p)
}

func addEndpoint(doc *openapi3.T, path, method, operationID string, ep Endpoint) {
	op := &openapi3.Operation{
		OperationID: operationID,
		Summary:     ep.Summary,
		Description: ep.Description,
	}

	switch {
	case len(ep.Requests) > 0:
		op.RequestBody = NewRequestMust(ep.Requests...)
	case ep.Request != nil:
		op.RequestBody = NewRequestMust(ep.Request)
	}

	responses := ep.Responses
	if responses == nil && ep.Response != nil {
		responses = map[string]Response{
			"200": {Desc: "OK", Bodies: []*openapi3.Schema{ep.Response}},
		}
	}
	if responses != nil {
		op.Responses = NewResponseMust(responses)
	} else {
		op.Responses = openapi3.NewResponses()
	}

	AddPath(path, method, doc, op)
}

// Get registers a GET endpoint on doc.
func Get(doc *openapi3.T, path, operationID string, ep Endpoint) {
	addEndpoint(doc, path, http.MethodGet, operationID, ep)
}

// Post registers a POST endpoint on doc.
func Post(doc *openapi3.T, path, operationID string, ep Endpoint) {
	addEndpoint(doc, path, http.MethodPost, operationID, ep)
}

// ErrorsSchema is the body of a rejected instance: field or rule names
// mapped to messages.
func ErrorsSchema() *openapi3.Schema {
	s := openapi3.NewObjectSchema().WithAdditionalProperties(openapi3.NewStringSchema())
	s.Description = "Field or rule name to error message."
	return s
}

// Document describes one validation service: for every descriptor,
// POST /validate/{entity} accepts an instance and echoes it back when it
// is valid, and GET /schemas/{entity} returns its JSON schema.
func Document(title, version string, ds ...*symvalidation.Descriptor) *openapi3.T {
	doc := DocBase(title, "Validation of "+entityList(ds)+".", version)
	for _, d := range ds {
		schema := d.OpenAPISchema()
		Post(doc, "/validate/"+d.Entity, "validate"+d.Entity, Endpoint{
			Summary:     "Validate a " + d.Entity,
			Description: d.String(),
			Request:     schema,
			Responses: map[string]Response{
				"200": {Desc: "The instance is valid.", Bodies: []*openapi3.Schema{schema}},
				"409": {Desc: "The schema is unsatisfiable; no instance is valid."},
				"422": {Desc: "The instance is invalid.", Bodies: []*openapi3.Schema{ErrorsSchema()}},
			},
		})
		Get(doc, "/schemas/"+d.Entity, "describe"+d.Entity, Endpoint{
			Summary:  "JSON schema of a " + d.Entity,
			Response: schema,
		})
	}
	return doc
}

func entityList(ds []*symvalidation.Descriptor) string {
	if len(ds) == 0 {
		return "nothing"
	}
	s := ""
	for i, d := range ds {
		switch {
		case i == 0:
		case i == len(ds)-1:
			s += " and "
		default:
			s += ", "
		}
		s += d.Entity
	}
	return s
}

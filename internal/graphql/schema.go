// Package graphql собирает GraphQL-схему из областей users и links
// и JWT-мутаций.
package graphql

import (
	"context"
	"fmt"

	"website_backend/internal/services"
	"website_backend/internal/validator"
	"website_backend/pkg/apperrors"

	gql "github.com/graphql-go/graphql"
)

// area - поля Query и Mutation одной функциональной области
type area struct {
	query    gql.Fields
	mutation gql.Fields
}

type resolver struct {
	services  *services.ServiceContainer
	validator *validator.Validator
}

// NewSchema объединяет поля всех областей в общие Query и Mutation.
func NewSchema(sc *services.ServiceContainer, v *validator.Validator) (gql.Schema, error) {
	r := &resolver{services: sc, validator: v}

	query := gql.Fields{}
	mutation := gql.Fields{}
	for _, a := range []area{r.usersArea(), r.linksArea(), r.jwtArea()} {
		if err := merge(query, a.query); err != nil {
			return gql.Schema{}, err
		}
		if err := merge(mutation, a.mutation); err != nil {
			return gql.Schema{}, err
		}
	}

	return gql.NewSchema(gql.SchemaConfig{
		Query:    gql.NewObject(gql.ObjectConfig{Name: "Query", Fields: query}),
		Mutation: gql.NewObject(gql.ObjectConfig{Name: "Mutation", Fields: mutation}),
	})
}

func merge(dst, src gql.Fields) error {
	for name, field := range src {
		if _, dup := dst[name]; dup {
			return fmt.Errorf("graphql: field %q defined twice", name)
		}
		dst[name] = field
	}
	return nil
}

// Params - разобранный GraphQL-запрос
type Params struct {
	Query         string                 `json:"query" form:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName" form:"operationName"`
}

// Execute выполняет запрос; ctx должен быть подготовлен через WithRequest
func Execute(ctx context.Context, schema gql.Schema, p Params) *gql.Result {
	return gql.Do(gql.Params{
		Schema:         schema,
		RequestString:  p.Query,
		VariableValues: p.Variables,
		OperationName:  p.OperationName,
		Context:        ctx,
	})
}

func (r *resolver) validate(obj interface{}) error {
	if err := r.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			return apperrors.ValidationError(vErr.Errors)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func stringArg(p gql.ResolveParams, name string) string {
	s, _ := p.Args[name].(string)
	return s
}

package graphql

import (
	gql "github.com/graphql-go/graphql"
)

var obtainTokenPayload = gql.NewObject(gql.ObjectConfig{
	Name: "ObtainJSONWebToken",
	Fields: gql.Fields{
		"token":            &gql.Field{Type: gql.NewNonNull(gql.String)},
		"payload":          &gql.Field{Type: gql.NewNonNull(GenericScalar)},
		"refreshExpiresIn": &gql.Field{Type: gql.NewNonNull(gql.Int)},
	},
})

var verifyPayload = gql.NewObject(gql.ObjectConfig{
	Name: "Verify",
	Fields: gql.Fields{
		"payload": &gql.Field{Type: gql.NewNonNull(GenericScalar)},
	},
})

var refreshPayload = gql.NewObject(gql.ObjectConfig{
	Name: "Refresh",
	Fields: gql.Fields{
		"token":            &gql.Field{Type: gql.NewNonNull(gql.String)},
		"payload":          &gql.Field{Type: gql.NewNonNull(GenericScalar)},
		"refreshExpiresIn": &gql.Field{Type: gql.NewNonNull(gql.Int)},
	},
})

func jwtResult(token string, payload map[string]interface{}, refreshExpiresIn int64) map[string]interface{} {
	return map[string]interface{}{
		"token":            token,
		"payload":          payload,
		"refreshExpiresIn": refreshExpiresIn,
	}
}

func (r *resolver) jwtArea() area {
	return area{
		mutation: gql.Fields{
			"tokenAuth": &gql.Field{
				Type: obtainTokenPayload,
				Args: gql.FieldConfigArgument{
					"email":    &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
					"password": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					resp, err := r.services.AuthService.ObtainToken(dbFrom(p.Context), stringArg(p, "email"), stringArg(p, "password"))
					if err != nil {
						return nil, publicError(p.Context, err)
					}
					return jwtResult(resp.Token, resp.Payload, resp.RefreshExpiresIn), nil
				},
			},
			"verifyToken": &gql.Field{
				Type: verifyPayload,
				Args: gql.FieldConfigArgument{
					"token": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					payload, err := r.services.AuthService.VerifyToken(stringArg(p, "token"))
					if err != nil {
						return nil, publicError(p.Context, err)
					}
					return map[string]interface{}{"payload": payload}, nil
				},
			},
			"refreshToken": &gql.Field{
				Type: refreshPayload,
				Args: gql.FieldConfigArgument{
					"token": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					resp, err := r.services.AuthService.RefreshToken(stringArg(p, "token"))
					if err != nil {
						return nil, publicError(p.Context, err)
					}
					return jwtResult(resp.Token, resp.Payload, resp.RefreshExpiresIn), nil
				},
			},
		},
	}
}

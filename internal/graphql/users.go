package graphql

import (
	"website_backend/internal/services/dto"
	"website_backend/pkg/apperrors"

	gql "github.com/graphql-go/graphql"
)

var createUserPayload = gql.NewObject(gql.ObjectConfig{
	Name: "CreateUser",
	Fields: gql.Fields{
		"user": &gql.Field{Type: userType},
	},
})

func (r *resolver) usersArea() area {
	return area{
		query: gql.Fields{
			"me": &gql.Field{
				Type: userType,
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					claims := claimsFrom(p.Context)
					if claims == nil {
						return nil, publicError(p.Context, apperrors.ErrNotLoggedIn)
					}
					user, err := r.services.UserService.Get(dbFrom(p.Context), claims.UserID)
					if err != nil {
						return nil, publicError(p.Context, err)
					}
					return userToMap(user), nil
				},
			},
			"users": &gql.Field{
				Type: gql.NewList(userType),
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					users, err := r.services.UserService.All(dbFrom(p.Context))
					if err != nil {
						return nil, publicError(p.Context, err)
					}
					out := make([]map[string]interface{}, 0, len(users))
					for i := range users {
						out = append(out, userToMap(&users[i]))
					}
					return out, nil
				},
			},
		},
		mutation: gql.Fields{
			"createUser": &gql.Field{
				Type: createUserPayload,
				Args: gql.FieldConfigArgument{
					"username": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
					"password": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
					"email":    &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					req := &dto.CreateUserRequest{
						Username: stringArg(p, "username"),
						Password: stringArg(p, "password"),
						Email:    stringArg(p, "email"),
					}
					req.Normalize()
					if err := r.validate(req); err != nil {
						return nil, publicError(p.Context, err)
					}

					user, err := r.services.UserService.Create(dbFrom(p.Context), req)
					if err != nil {
						return nil, publicError(p.Context, err)
					}
					return map[string]interface{}{"user": userToMap(user)}, nil
				},
			},
		},
	}
}

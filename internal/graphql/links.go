package graphql

import (
	"website_backend/internal/services/dto"

	gql "github.com/graphql-go/graphql"
)

var createLinkPayload = gql.NewObject(gql.ObjectConfig{
	Name: "CreateLink",
	Fields: gql.Fields{
		"link": &gql.Field{Type: linkType},
	},
})

func (r *resolver) linksArea() area {
	return area{
		query: gql.Fields{
			"links": &gql.Field{
				Type: gql.NewList(linkType),
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					links, err := r.services.LinkService.All(dbFrom(p.Context))
					if err != nil {
						return nil, publicError(p.Context, err)
					}
					out := make([]map[string]interface{}, 0, len(links))
					for i := range links {
						out = append(out, linkToMap(&links[i]))
					}
					return out, nil
				},
			},
		},
		mutation: gql.Fields{
			// аноним может добавить ссылку, postedBy тогда null
			"createLink": &gql.Field{
				Type: createLinkPayload,
				Args: gql.FieldConfigArgument{
					"url":         &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
					"description": &gql.ArgumentConfig{Type: gql.String},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					req := &dto.CreateLinkRequest{
						URL:         stringArg(p, "url"),
						Description: stringArg(p, "description"),
					}
					if err := r.validate(req); err != nil {
						return nil, publicError(p.Context, err)
					}

					db := dbFrom(p.Context)
					var postedBy *uint
					if claims := claimsFrom(p.Context); claims != nil {
						id := claims.UserID
						postedBy = &id
					}

					link, err := r.services.LinkService.Create(db, req, postedBy)
					if err != nil {
						return nil, publicError(p.Context, err)
					}
					if postedBy != nil {
						if user, err := r.services.UserService.Get(db, *postedBy); err == nil {
							link.PostedBy = user
						}
					}
					return map[string]interface{}{"link": linkToMap(link)}, nil
				},
			},
		},
	}
}

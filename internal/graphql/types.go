package graphql

import (
	"strconv"

	"website_backend/internal/models"

	gql "github.com/graphql-go/graphql"
)

// GenericScalar отдает произвольное JSON-значение (payload токена)
var GenericScalar = gql.NewScalar(gql.ScalarConfig{
	Name:        "GenericScalar",
	Description: "Arbitrary JSON value",
	Serialize: func(value interface{}) interface{} {
		return value
	},
})

var userType = gql.NewObject(gql.ObjectConfig{
	Name: "User",
	Fields: gql.Fields{
		"id":          &gql.Field{Type: gql.NewNonNull(gql.ID)},
		"email":       &gql.Field{Type: gql.NewNonNull(gql.String)},
		"username":    &gql.Field{Type: gql.NewNonNull(gql.String)},
		"name":        &gql.Field{Type: gql.String},
		"firstName":   &gql.Field{Type: gql.String},
		"lastName":    &gql.Field{Type: gql.String},
		"isStaff":     &gql.Field{Type: gql.NewNonNull(gql.Boolean)},
		"isSuperuser": &gql.Field{Type: gql.NewNonNull(gql.Boolean)},
		"isActive":    &gql.Field{Type: gql.NewNonNull(gql.Boolean)},
		"dateJoined":  &gql.Field{Type: gql.NewNonNull(gql.DateTime)},
		"lastLogin":   &gql.Field{Type: gql.DateTime},
	},
})

var linkType = gql.NewObject(gql.ObjectConfig{
	Name: "Link",
	Fields: gql.Fields{
		"id":          &gql.Field{Type: gql.NewNonNull(gql.ID)},
		"url":         &gql.Field{Type: gql.NewNonNull(gql.String)},
		"description": &gql.Field{Type: gql.String},
		"postedBy":    &gql.Field{Type: userType},
	},
})

func userToMap(u *models.User) map[string]interface{} {
	if u == nil {
		return nil
	}
	m := map[string]interface{}{
		"id":          strconv.FormatUint(uint64(u.ID), 10),
		"email":       u.Email,
		"username":    u.Username,
		"name":        u.Name,
		"firstName":   u.FirstName,
		"lastName":    u.LastName,
		"isStaff":     u.IsStaff,
		"isSuperuser": u.IsSuperuser,
		"isActive":    u.IsActive,
		"dateJoined":  u.DateJoined,
		"lastLogin":   nil,
	}
	if u.LastLogin != nil {
		m["lastLogin"] = *u.LastLogin
	}
	return m
}

func linkToMap(l *models.Link) map[string]interface{} {
	return map[string]interface{}{
		"id":          strconv.FormatUint(uint64(l.ID), 10),
		"url":         l.URL,
		"description": l.Description,
		"postedBy":    userToMap(l.PostedBy),
	}
}

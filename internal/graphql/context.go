package graphql

import (
	"context"

	"website_backend/internal/auth"
	"website_backend/pkg/contextkeys"

	"gorm.io/gorm"
)

// WithRequest кладет в контекст соединение с БД и claims (nil для анонима)
func WithRequest(ctx context.Context, db *gorm.DB, claims *auth.Claims) context.Context {
	ctx = context.WithValue(ctx, contextkeys.DBContextKey, db)
	if claims != nil {
		ctx = context.WithValue(ctx, contextkeys.ClaimsContextKey, claims)
	}
	return ctx
}

func dbFrom(ctx context.Context) *gorm.DB {
	db, _ := ctx.Value(contextkeys.DBContextKey).(*gorm.DB)
	if db == nil {
		panic("graphql: db is not set in request context")
	}
	return db.WithContext(ctx)
}

func claimsFrom(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(contextkeys.ClaimsContextKey).(*auth.Claims)
	return claims
}

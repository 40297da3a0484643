package handlers

import (
	"encoding/json"
	"net/http"

	"website_backend/internal/graphql"
	"website_backend/internal/logger"
	"website_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	gql "github.com/graphql-go/graphql"
)

type GraphQLHandler struct {
	*BaseHandler
	schema gql.Schema
}

func NewGraphQLHandler(base *BaseHandler, schema gql.Schema) *GraphQLHandler {
	return &GraphQLHandler{
		BaseHandler: base,
		schema:      schema,
	}
}

func (h *GraphQLHandler) RegisterRoutes(r gin.IRoutes, mw *Middlewares) {
	r.POST("/graphql/", mw.OptionalAuth, h.Serve)
	r.GET("/graphql/", mw.OptionalAuth, h.Serve)
}

func graphqlError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"errors": []gin.H{{"message": message}}})
}

// Serve godoc
// @Summary GraphQL endpoint
// @Tags graphql
// @Accept json
// @Produce json
// @Param body body graphql.Params false "GraphQL запрос"
// @Success 200 {object} map[string]interface{}
// @Router /graphql/ [post]
func (h *GraphQLHandler) Serve(c *gin.Context) {
	var params graphql.Params

	if c.Request.Method == http.MethodGet {
		params.Query = c.Query("query")
		params.OperationName = c.Query("operationName")
		if raw := c.Query("variables"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &params.Variables); err != nil {
				graphqlError(c, http.StatusBadRequest, "Variables are invalid JSON.")
				return
			}
		}
	} else if err := c.ShouldBindJSON(&params); err != nil {
		logger.CtxWarn(c.Request.Context(), "invalid graphql body", "error", err)
		graphqlError(c, http.StatusBadRequest, "POST body sent invalid JSON.")
		return
	}

	if params.Query == "" {
		graphqlError(c, http.StatusBadRequest, "Must provide query string.")
		return
	}

	if c.Request.Method == http.MethodGet && graphql.IsMutation(params) {
		c.Header("Allow", "POST")
		graphqlError(c, http.StatusMethodNotAllowed, "Can only perform a mutation operation from a POST request.")
		return
	}

	ctx := graphql.WithRequest(c.Request.Context(), h.GetDB(c), middleware.GetClaims(c))
	result := graphql.Execute(ctx, h.schema, params)
	c.JSON(http.StatusOK, result)
}

package graphql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMutation(t *testing.T) {
	cases := []struct {
		name string
		p    Params
		want bool
	}{
		{"shorthand query", Params{Query: `{ users { email } }`}, false},
		{"anonymous mutation", Params{Query: `mutation { createLink(url: "https://go.dev") { link { id } } }`}, true},
		{"named query selected", Params{
			Query:         `query Q { users { email } } mutation M { createLink(url: "https://go.dev") { link { id } } }`,
			OperationName: "Q",
		}, false},
		{"named mutation selected", Params{
			Query:         `query Q { users { email } } mutation M { createLink(url: "https://go.dev") { link { id } } }`,
			OperationName: "M",
		}, true},
		{"ambiguous document", Params{Query: `query Q { users { email } } mutation M { verifyToken(token: "x") { payload } }`}, false},
		{"syntax error", Params{Query: `mutation {`}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsMutation(tc.p))
		})
	}
}

// Package graphql wraps schema construction for the read-only query surface.
package graphql

import (
	"github.com/graphql-go/graphql"
)

// NewSchema creates a query-only GraphQL schema from the provided root query.
func NewSchema(query *graphql.Object) (graphql.Schema, error) {
	return graphql.NewSchema(graphql.SchemaConfig{
		Query: query,
	})
}

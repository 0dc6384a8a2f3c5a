// Package graphql exposes a read-only catalog query surface alongside the
// REST API. Mutations stay REST-only.
package graphql

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/pethive/pethive/app/models"
	"github.com/pethive/pethive/app/repositories"
	"github.com/pethive/pethive/app/services"
	pkggraphql "github.com/pethive/pethive/pkg/graphql"
	"github.com/pethive/pethive/pkg/response"
)

var categoryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Category",
	Fields: graphql.Fields{
		"id":   &graphql.Field{Type: graphql.Int},
		"name": &graphql.Field{Type: graphql.String},
		"slug": &graphql.Field{Type: graphql.String},
	},
})

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.Int},
		"name":        &graphql.Field{Type: graphql.String},
		"description": &graphql.Field{Type: graphql.String},
		"price":       &graphql.Field{Type: graphql.Float},
		"stock":       &graphql.Field{Type: graphql.Int},
		"discount":    &graphql.Field{Type: graphql.Float},
		"isOffer":     &graphql.Field{Type: graphql.Boolean},
		"images": &graphql.Field{
			Type: graphql.NewList(graphql.String),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				product, ok := p.Source.(models.Product)
				if !ok {
					return nil, nil
				}
				return []string(product.Images), nil
			},
		},
		"category": &graphql.Field{
			Type: categoryType,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				product, ok := p.Source.(models.Product)
				if !ok || product.Category == nil {
					return nil, nil
				}
				return *product.Category, nil
			},
		},
	},
})

// NewQuery builds the root query over the catalog service so GraphQL reads
// share the REST path's demo-data degradation.
func NewQuery(catalog *services.CatalogService) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"categories": &graphql.Field{
				Type: graphql.NewList(categoryType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return catalog.ListCategories(), nil
				},
			},
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"category": &graphql.ArgumentConfig{Type: graphql.String},
					"search":   &graphql.ArgumentConfig{Type: graphql.String},
					"page":     &graphql.ArgumentConfig{Type: graphql.Int},
					"limit":    &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					filter := repositories.ProductFilter{}
					if v, ok := p.Args["category"].(string); ok {
						filter.CategorySlug = v
					}
					if v, ok := p.Args["search"].(string); ok {
						filter.Search = v
					}
					if v, ok := p.Args["page"].(int); ok {
						filter.Page = v
					}
					if v, ok := p.Args["limit"].(int); ok {
						filter.Limit = v
					}
					return catalog.ListProducts(filter).Products, nil
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(int)
					product, err := catalog.GetProduct(uint(id))
					if err != nil {
						return nil, nil
					}
					return product, nil
				},
			},
		},
	})
}

// Handler serves POST /api/graphql.
func Handler(catalog *services.CatalogService) (http.HandlerFunc, error) {
	schema, err := pkggraphql.NewSchema(NewQuery(catalog))
	if err != nil {
		return nil, err
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Query     string                 `json:"query"`
			Variables map[string]interface{} `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  body.Query,
			VariableValues: body.Variables,
			Context:        r.Context(),
		})

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result) //nolint:errcheck
	}, nil
}

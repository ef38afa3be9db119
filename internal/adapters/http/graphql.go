package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/samirrijal/aeroprofile/internal/adapters/profilejson"
	"github.com/samirrijal/aeroprofile/internal/core/domain"
)

// generated is the GraphQL view of an ad-hoc generation.
type generated struct {
	Fingerprint string
	Set         *domain.GeometrySet
}

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	coordType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Coord",
		Fields: graphql.Fields{
			"x": &graphql.Field{Type: graphql.Float},
			"y": &graphql.Field{Type: graphql.Float},
		},
	})

	warningType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Warning",
		Fields: graphql.Fields{
			"code":    &graphql.Field{Type: graphql.String},
			"message": &graphql.Field{Type: graphql.String},
		},
	})

	featureType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Feature",
		Fields: graphql.Fields{
			"kind": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return string(p.Source.(domain.Feature).Kind), nil
				},
			},
			"coordinates": &graphql.Field{Type: graphql.NewList(coordType)},
			"id":          &graphql.Field{Type: graphql.String},
			"symbol":      &graphql.Field{Type: graphql.String},
			"txt_label":   &graphql.Field{Type: graphql.String},
			"remarks":     &graphql.Field{Type: graphql.String},
			"layer":       &graphql.Field{Type: graphql.String},
			"rotation":    &graphql.Field{Type: graphql.Float},
			"size":        &graphql.Field{Type: graphql.Int},
		},
	})

	geometryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Geometry",
		Fields: graphql.Fields{
			"fingerprint": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(generated).Fingerprint, nil
				},
			},
			"features": &graphql.Field{
				Type: graphql.NewList(featureType),
				Args: graphql.FieldConfigArgument{
					"layer": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					all := p.Source.(generated).Set.Features()
					layer, _ := p.Args["layer"].(string)
					if layer == "" {
						return all, nil
					}
					var out []domain.Feature
					for _, f := range all {
						if f.Layer == layer {
							out = append(out, f)
						}
					}
					return out, nil
				},
			},
			"warnings": &graphql.Field{
				Type: graphql.NewList(warningType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(generated).Set.Warnings, nil
				},
			},
		},
	})

	profileType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Profile",
		Fields: graphql.Fields{
			"id":               &graphql.Field{Type: graphql.String},
			"name":             &graphql.Field{Type: graphql.String},
			"runway_direction": &graphql.Field{Type: graphql.String},
			"point_count":      &graphql.Field{Type: graphql.Int},
			"created_at":       &graphql.Field{Type: graphql.DateTime},
		},
	})

	scaleType := graphql.NewObject(graphql.ObjectConfig{
		Name: "VerticalScale",
		Fields: graphql.Fields{
			"id":   &graphql.Field{Type: graphql.String},
			"name": &graphql.Field{Type: graphql.String},
			"denominator": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(domain.VerticalScale).Spec.Denominator, nil
				},
			},
			"created_at": &graphql.Field{Type: graphql.DateTime},
		},
	})

	chartType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Chart",
		Fields: graphql.Fields{
			"profile_id":   &graphql.Field{Type: graphql.String},
			"profile_name": &graphql.Field{Type: graphql.String},
			"fingerprint":  &graphql.Field{Type: graphql.String},
			"generated_at": &graphql.Field{Type: graphql.DateTime},
			"feature_count": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*domain.ChartEvent).Geometry.Len(), nil
				},
			},
			"warnings": &graphql.Field{
				Type: graphql.NewList(warningType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*domain.ChartEvent).Geometry.Warnings, nil
				},
			},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"profile": &graphql.Field{
				Type:        profileType,
				Description: "Get a stored profile by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					prof, err := deps.Profiles.Get(p.Context, p.Args["id"].(string))
					if err != nil {
						return nil, err
					}
					return domain.ProfileSummary{
						ID:              prof.ID,
						Name:            prof.Name,
						RunwayDirection: prof.Config.Runway.Direction,
						PointCount:      len(prof.Config.Points),
						CreatedAt:       prof.CreatedAt,
					}, nil
				},
			},
			"profiles": &graphql.Field{
				Type:        graphql.NewList(profileType),
				Description: "List stored profiles, newest first",
				Args: graphql.FieldConfigArgument{
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 50},
					"offset": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Profiles.List(p.Context, p.Args["limit"].(int), p.Args["offset"].(int))
				},
			},
			"verticalScales": &graphql.Field{
				Type:        graphql.NewList(scaleType),
				Description: "List stored vertical scale bars",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Scales.List(p.Context)
				},
			},
			"generate": &graphql.Field{
				Type:        geometryType,
				Description: "Generate the geometry of a profile configuration file",
				Args: graphql.FieldConfigArgument{
					"document": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					res, err := profilejson.Decode([]byte(p.Args["document"].(string)),
						profilejson.WithDefaultExaggeration(deps.DefaultExaggeration))
					if err != nil {
						return nil, err
					}
					set, err := deps.Charts.Generate(p.Context, res.Config, res.Style)
					if err != nil {
						return nil, err
					}
					fp, _ := deps.Charts.Fingerprint(res.Config, res.Style)
					return generated{Fingerprint: fp, Set: set}, nil
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"renderProfile": &graphql.Field{
				Type:        chartType,
				Description: "Generate a stored profile and publish the result",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Profiles.Render(p.Context, p.Args["id"].(string))
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}

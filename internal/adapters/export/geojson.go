// Package export turns generated geometry sets into files a map host can load:
// GeoJSON feature collections for layer insertion and PDF previews.
package export

import (
	"fmt"

	geojson "github.com/paulmach/go.geojson"

	"github.com/samirrijal/aeroprofile/internal/core/domain"
	"github.com/samirrijal/aeroprofile/internal/pkg/metrics"
)

// Feature property keys. They match the attribute names of the target layers.
const (
	PropID       = "id"
	PropSymbol   = "symbol"
	PropLabel    = "txt_label"
	PropRemarks  = "remarks"
	PropLayer    = "layer"
	PropRotation = "rotation"
	PropSize     = "size"
)

// FeatureCollection converts a set into a GeoJSON feature collection in
// point, line, polygon order. Coordinates stay in the set's linear units.
func FeatureCollection(set *domain.GeometrySet) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, f := range set.Features() {
		gf := toFeature(f)
		if gf == nil {
			continue
		}
		fc.AddFeature(gf)
	}
	return fc
}

// GeoJSON encodes a set as a GeoJSON document.
func GeoJSON(set *domain.GeometrySet) ([]byte, error) {
	data, err := FeatureCollection(set).MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encode geojson: %w", err)
	}
	metrics.ChartsExported.WithLabelValues("geojson").Inc()
	return data, nil
}

// FromGeoJSON reads a collection written by GeoJSON back into a set.
// Features without a known geometry type are skipped.
func FromGeoJSON(data []byte) (*domain.GeometrySet, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode geojson: %w", err)
	}
	set := &domain.GeometrySet{}
	for _, gf := range fc.Features {
		if gf.Geometry == nil {
			continue
		}
		f := domain.Feature{
			ID:       gf.PropertyMustString(PropID, ""),
			Symbol:   gf.PropertyMustString(PropSymbol, ""),
			TxtLabel: gf.PropertyMustString(PropLabel, ""),
			Remarks:  gf.PropertyMustString(PropRemarks, ""),
			Layer:    gf.PropertyMustString(PropLayer, ""),
			Rotation: gf.PropertyMustFloat64(PropRotation, 0),
			Size:     int(gf.PropertyMustFloat64(PropSize, 0)),
		}
		g := gf.Geometry
		switch {
		case g.IsPoint():
			f.Kind = domain.KindPoint
			f.Coords = coords([][]float64{g.Point})
		case g.IsLineString():
			f.Kind = domain.KindLine
			f.Coords = coords(g.LineString)
		case g.IsPolygon() && len(g.Polygon) > 0:
			f.Kind = domain.KindPolygon
			f.Coords = coords(g.Polygon[0])
		default:
			continue
		}
		set.Add(f)
	}
	return set, nil
}

func toFeature(f domain.Feature) *geojson.Feature {
	var gf *geojson.Feature
	switch f.Kind {
	case domain.KindPoint:
		if len(f.Coords) == 0 {
			return nil
		}
		gf = geojson.NewPointFeature(position(f.Coords[0]))
	case domain.KindLine:
		gf = geojson.NewLineStringFeature(positions(f.Coords))
	case domain.KindPolygon:
		gf = geojson.NewPolygonFeature([][][]float64{positions(f.Coords)})
	default:
		return nil
	}
	gf.SetProperty(PropID, f.ID)
	gf.SetProperty(PropSymbol, f.Symbol)
	gf.SetProperty(PropLabel, f.TxtLabel)
	gf.SetProperty(PropRemarks, f.Remarks)
	gf.SetProperty(PropLayer, f.Layer)
	if f.Rotation != 0 {
		gf.SetProperty(PropRotation, f.Rotation)
	}
	if f.Size != 0 {
		gf.SetProperty(PropSize, f.Size)
	}
	return gf
}

func position(c domain.Coord) []float64 { return []float64{c.X, c.Y} }

func positions(cs []domain.Coord) [][]float64 {
	out := make([][]float64, len(cs))
	for i, c := range cs {
		out[i] = position(c)
	}
	return out
}

func coords(ps [][]float64) []domain.Coord {
	out := make([]domain.Coord, 0, len(ps))
	for _, p := range ps {
		if len(p) < 2 {
			continue
		}
		out = append(out, domain.Coord{X: p[0], Y: p[1]})
	}
	return out
}

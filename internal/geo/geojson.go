package geo

// GeoJSONFeatureCollection represents a collection of geographic features.
// It follows the standard GeoJSON structure.
type GeoJSONFeatureCollection struct {
	Type     string           `json:"type" yaml:"type"`
	Features []GeoJSONFeature `json:"features" yaml:"features"`
}

// GeoJSONFeature represents a single geographic feature with geometry and properties.
type GeoJSONFeature struct {
	Properties map[string]interface{} `json:"properties" yaml:"properties"`
	Type       string                 `json:"type" yaml:"type"`
	Geometry   GeoJSONGeometry        `json:"geometry" yaml:"geometry"`
}

// GeoJSONGeometry represents the geometry of a feature (Point or LineString).
// Coordinates is a [lon, lat] pair or a list of them.
type GeoJSONGeometry struct {
	Type        string      `json:"type" yaml:"type"`
	Coordinates interface{} `json:"coordinates" yaml:"coordinates"`
}

// NewFeatureCollection wraps features into a FeatureCollection.
func NewFeatureCollection(features ...GeoJSONFeature) GeoJSONFeatureCollection {
	if features == nil {
		features = []GeoJSONFeature{}
	}

	return GeoJSONFeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}

// NewPointFeature builds a GeoJSON Point feature from a geodesy point.
func NewPointFeature(p Point, properties map[string]interface{}) GeoJSONFeature {
	return GeoJSONFeature{
		Type:       "Feature",
		Properties: properties,
		Geometry: GeoJSONGeometry{
			Type:        "Point",
			Coordinates: []float64{p.Lon, p.Lat},
		},
	}
}

// NewLineStringFeature builds a GeoJSON LineString feature from an ordered
// list of geodesy points.
func NewLineStringFeature(points []Point, properties map[string]interface{}) GeoJSONFeature {
	coords := make([][]float64, 0, len(points))
	for _, p := range points {
		coords = append(coords, []float64{p.Lon, p.Lat})
	}

	return GeoJSONFeature{
		Type:       "Feature",
		Properties: properties,
		Geometry: GeoJSONGeometry{
			Type:        "LineString",
			Coordinates: coords,
		},
	}
}

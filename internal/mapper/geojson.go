package mapper

import (
	"fmt"
	"os"

	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geojson"

	"github.com/tdmtools/delaycast/internal/netdiff"
)

// WriteGeoJSON writes the annotated build network (centroid connectors were
// already dropped by the differ) as a GeoJSON FeatureCollection. Each
// feature carries the link's WKT geometry and every derived column as
// properties, so the file drops straight into a desktop GIS for QA.
//
// Links without parseable geometry are skipped rather than failing the run;
// the link detail CSV still carries their values.
func WriteGeoJSON(path string, links []netdiff.LinkRecord) error {
	fc := geojson.NewFeatureCollection()
	for i := range links {
		l := &links[i]
		if l.Geometry == "" {
			continue
		}
		line, err := wkt.UnmarshalLineString(l.Geometry)
		if err != nil {
			continue
		}
		f := geojson.NewFeature(line)
		cells := linkDetailRow(l)
		for ci, col := range linkDetailColumns {
			f.Properties[col] = cells[ci]
		}
		fc.Append(f)
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode geojson: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write geojson: %w", err)
	}
	return nil
}

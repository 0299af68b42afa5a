// Package gpx renders a stored GPS track as a GPX 1.1 document. The
// output structure is fixed line by line because downstream GPS tooling
// consumes these files byte for byte.
package gpx

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/sportplus/backend/internal/model"
)

// ContentType is the media type handlers should declare when serving an
// exported document.
const ContentType = "application/gpx+xml"

var (
	// ErrNoTrackData means the activity has no stored track at all.
	ErrNoTrackData = errors.New("activity has no GPS track")
	// ErrMalformedTrack means the stored payload is not a JSON array of
	// {lat, lon} points.
	ErrMalformedTrack = errors.New("GPS track is malformed")
	// ErrEmptyTrack means the payload parsed but contains zero points.
	ErrEmptyTrack = errors.New("GPS track is empty")
)

// point mirrors one stored track point. Go's JSON decoder matches the
// field names case-insensitively, which the stored payloads rely on.
type point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Export converts the activity's stored track into a GPX 1.1 document:
// XML declaration, a namespaced <gpx> root, one <metadata> block with
// the escaped activity name and its UTC creation time, and a single
// <trk>/<trkseg> holding one <trkpt> per point in original order.
func Export(a model.Activity) ([]byte, error) {
	if a.GpsTrack == nil || *a.GpsTrack == "" {
		return nil, ErrNoTrackData
	}

	var points []point
	if err := json.Unmarshal([]byte(*a.GpsTrack), &points); err != nil {
		return nil, ErrMalformedTrack
	}
	if len(points) == 0 {
		return nil, ErrEmptyTrack
	}

	name := escape(a.Name)
	created := a.CreatedAt.UTC().Format("2006-01-02T15:04:05Z")

	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<gpx xmlns=\"http://www.topografix.com/gpx/1/1\" version=\"1.1\" creator=\"Sport+ App\">\n")
	b.WriteString("  <metadata>\n")
	b.WriteString("    <name>" + name + "</name>\n")
	b.WriteString("    <time>" + created + "</time>\n")
	b.WriteString("  </metadata>\n")
	b.WriteString("  <trk>\n")
	b.WriteString("    <name>" + name + "</name>\n")
	b.WriteString("    <trkseg>\n")
	for _, p := range points {
		b.WriteString("      <trkpt lat=\"" + coord(p.Lat) + "\" lon=\"" + coord(p.Lon) + "\"></trkpt>\n")
	}
	b.WriteString("    </trkseg>\n")
	b.WriteString("  </trk>\n")
	b.WriteString("</gpx>\n")
	return []byte(b.String()), nil
}

// coord renders a coordinate in shortest decimal form with a plain '.'
// separator regardless of locale, so 52.5 stays "52.5" everywhere.
func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// escape replaces the five XML special characters in text content and
// attribute values.
func escape(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\"", "&quot;",
		"'", "&apos;",
	)
	return r.Replace(s)
}

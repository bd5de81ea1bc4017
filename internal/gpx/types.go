package gpx

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/golang/geo/s2"
)

// RawXML keeps an extension block's inner XML without interpreting it, so
// vendor extensions (Garmin, Strava, etc.) never break decoding.
type RawXML []byte

func (r *RawXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	type inner struct {
		Content string `xml:",innerxml"`
	}

	var data inner
	if err := d.DecodeElement(&data, &start); err != nil {
		return err
	}

	if len(data.Content) == 0 {
		*r = nil
		return nil
	}

	*r = append((*r)[:0], data.Content...)
	return nil
}

// Layouts accepted for <time>, tried in order. Fractional seconds are
// accepted by all of them; times without a zone are UTC.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// Timestamp is a <time> value parsed leniently.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("invalid time %q", s)
}

// Point represents a GPS track point
type Point struct {
	Lat       float64    `xml:"lat,attr"`
	Lon       float64    `xml:"lon,attr"`
	Elevation *float64   `xml:"ele"`
	Time      *Timestamp `xml:"time"`

	Extensions RawXML `xml:"extensions"`

	// Position within the track, filled in by FlattenPoints
	SegIdx, PtIdx int `xml:"-"`
}

// LatLng returns the point's position.
func (p Point) LatLng() s2.LatLng {
	return s2.LatLngFromDegrees(p.Lat, p.Lon)
}

// Track represents a GPX track with segments
type Track struct {
	Name        string         `xml:"name"`
	Description string         `xml:"desc"`
	Type        string         `xml:"type"`
	Segments    []TrackSegment `xml:"trkseg"`
	Extensions  RawXML         `xml:"extensions"`
}

// TrackSegment represents a track segment
type TrackSegment struct {
	Points     []Point `xml:"trkpt"`
	Extensions RawXML  `xml:"extensions"`
}

// GPX represents the parts of a GPX file gpxstat reads
type GPX struct {
	XMLName xml.Name `xml:"gpx"`
	Version string   `xml:"version,attr"`
	Creator string   `xml:"creator,attr"`

	Metadata   Metadata `xml:"metadata"`
	Tracks     []Track  `xml:"trk"`
	Extensions RawXML   `xml:"extensions"`
}

// Metadata represents GPX metadata
type Metadata struct {
	Name        string     `xml:"name"`
	Description string     `xml:"desc"`
	Time        *Timestamp `xml:"time"`
	Extensions  RawXML     `xml:"extensions"`
}

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/woozymasta/latlon/internal/dms"
	"github.com/woozymasta/latlon/internal/geo"

	"github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v3"
)

type Options struct {
	Radius float64 `short:"r" long:"radius" env:"SPHERE_RADIUS" description:"Sphere radius in metres" default:"6371000"`
	Format string  `short:"f" long:"format" description:"Output format" choice:"text" choice:"json" choice:"yaml" default:"text"`
	Style  string  `short:"s" long:"style"  description:"Point notation" choice:"dec" choice:"d" choice:"dm" choice:"dms" default:"dec"`

	Distance     DistanceCmd     `command:"distance"          description:"Great-circle distance between two points"`
	Bearing      BearingCmd      `command:"bearing"           description:"Initial and final bearing between two points"`
	Midpoint     MidpointCmd     `command:"midpoint"          description:"Great-circle midpoint of two points"`
	Intermediate IntermediateCmd `command:"intermediate"      description:"Point at a fraction along the great circle"`
	Destination  DestinationCmd  `command:"destination"       description:"Destination point for distance and bearing"`
	Intersection IntersectionCmd `command:"intersection"      description:"Crossing of two point-and-bearing paths"`
	CrossTrack   CrossTrackCmd   `command:"crosstrack"        description:"Signed distance from a point to a path"`
	MaxLat       MaxLatCmd       `command:"maxlat"            description:"Clairaut maximum latitude for a path"`
	Parallels    ParallelsCmd    `command:"parallels"         description:"Longitudes where a great circle crosses a parallel"`
	RhumbDist    RhumbDistCmd    `command:"rhumb-distance"    description:"Rhumb-line distance between two points"`
	RhumbBrng    RhumbBrngCmd    `command:"rhumb-bearing"     description:"Constant bearing between two points"`
	RhumbDest    RhumbDestCmd    `command:"rhumb-destination" description:"Rhumb-line destination point"`
	RhumbMid     RhumbMidCmd     `command:"rhumb-midpoint"    description:"Loxodromic midpoint of two points"`
	Fmt          FmtCmd          `command:"format"            description:"Reformat a point"`
}

var opts Options

// pointOut is a point prepared for output in the selected style.
type pointOut struct {
	Lat       float64 `json:"lat" yaml:"lat"`
	Lon       float64 `json:"lon" yaml:"lon"`
	Formatted string  `json:"formatted,omitempty" yaml:"formatted,omitempty"`
}

func newPointOut(p geo.Point) pointOut {
	out := pointOut{Lat: p.Lat, Lon: p.Lon}
	if opts.Style != "dec" {
		style, _ := dms.ParseStyle(opts.Style)
		out.Formatted = p.Format(style, -1)
	}

	return out
}

func (p pointOut) String() string {
	if p.Formatted != "" {
		return p.Formatted
	}

	return fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lon)
}

// emit prints the result in the selected output format. Text format prints
// "key: value" lines in field order.
func emit(pairs ...any) {
	switch opts.Format {
	case "json":
		m := make(map[string]any, len(pairs)/2)
		for i := 0; i+1 < len(pairs); i += 2 {
			m[pairs[i].(string)] = pairs[i+1]
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(m)

	case "yaml":
		m := make(map[string]any, len(pairs)/2)
		for i := 0; i+1 < len(pairs); i += 2 {
			m[pairs[i].(string)] = pairs[i+1]
		}
		data, _ := yaml.Marshal(m)
		fmt.Print(string(data))

	default:
		for i := 0; i+1 < len(pairs); i += 2 {
			value := pairs[i+1]
			if f, ok := value.(float64); ok {
				fmt.Printf("%s: %.6f\n", pairs[i], f)
				continue
			}
			fmt.Printf("%s: %v\n", pairs[i], value)
		}
	}
}

// twoPoints holds the "lat,lon lat,lon" positional arguments shared by the
// pairwise commands.
type twoPoints struct {
	Args struct {
		From string `positional-arg-name:"FROM" description:"Start point, \"lat,lon\" decimal or DMS"`
		To   string `positional-arg-name:"TO"   description:"End point, \"lat,lon\" decimal or DMS"`
	} `positional-args:"yes" required:"yes"`
}

func (t *twoPoints) points() (geo.Point, geo.Point, error) {
	from, err := geo.ParsePoint(t.Args.From)
	if err != nil {
		return geo.Point{}, geo.Point{}, err
	}
	to, err := geo.ParsePoint(t.Args.To)
	if err != nil {
		return geo.Point{}, geo.Point{}, err
	}

	return from, to, nil
}

type DistanceCmd struct{ twoPoints }

func (c *DistanceCmd) Execute(_ []string) error {
	from, to, err := c.points()
	if err != nil {
		return err
	}

	emit("distance", geo.Distance(from, to, opts.Radius))
	return nil
}

type BearingCmd struct {
	Compass bool `long:"compass" description:"Append the 16-wind compass point"`
	twoPoints
}

func (c *BearingCmd) Execute(_ []string) error {
	from, to, err := c.points()
	if err != nil {
		return err
	}

	initial := from.BearingTo(to)
	pairs := []any{
		"initial", initial,
		"final", from.FinalBearingTo(to),
	}
	if c.Compass {
		pairs = append(pairs, "compass", dms.CompassPoint(initial, 3))
	}

	emit(pairs...)
	return nil
}

type MidpointCmd struct{ twoPoints }

func (c *MidpointCmd) Execute(_ []string) error {
	from, to, err := c.points()
	if err != nil {
		return err
	}

	emit("midpoint", newPointOut(from.MidpointTo(to)))
	return nil
}

type IntermediateCmd struct {
	Fraction float64 `short:"n" long:"fraction" description:"Fraction along the path, 0..1" default:"0.5"`
	twoPoints
}

func (c *IntermediateCmd) Execute(_ []string) error {
	from, to, err := c.points()
	if err != nil {
		return err
	}

	emit("point", newPointOut(from.IntermediatePointTo(to, c.Fraction)))
	return nil
}

type DestinationCmd struct {
	Rhumb bool `long:"rhumb" description:"Follow the rhumb line instead of the great circle"`

	Args struct {
		From     string  `positional-arg-name:"FROM"     description:"Start point, \"lat,lon\""`
		Distance float64 `positional-arg-name:"DISTANCE" description:"Distance in radius units"`
		Bearing  float64 `positional-arg-name:"BEARING"  description:"Initial bearing in degrees"`
	} `positional-args:"yes" required:"yes"`
}

func (c *DestinationCmd) Execute(_ []string) error {
	from, err := geo.ParsePoint(c.Args.From)
	if err != nil {
		return err
	}

	dest := geo.Destination(from, c.Args.Distance, c.Args.Bearing, opts.Radius)
	if c.Rhumb {
		dest = geo.RhumbDestination(from, c.Args.Distance, c.Args.Bearing, opts.Radius)
	}

	emit("destination", newPointOut(dest))
	return nil
}

type IntersectionCmd struct {
	Args struct {
		P1     string  `positional-arg-name:"P1"     description:"First start point, \"lat,lon\""`
		Brng1  float64 `positional-arg-name:"BRNG1"  description:"First path bearing in degrees"`
		P2     string  `positional-arg-name:"P2"     description:"Second start point, \"lat,lon\""`
		Brng2  float64 `positional-arg-name:"BRNG2"  description:"Second path bearing in degrees"`
	} `positional-args:"yes" required:"yes"`
}

func (c *IntersectionCmd) Execute(_ []string) error {
	p1, err := geo.ParsePoint(c.Args.P1)
	if err != nil {
		return err
	}
	p2, err := geo.ParsePoint(c.Args.P2)
	if err != nil {
		return err
	}

	point, ok := geo.Intersection(p1, c.Args.Brng1, p2, c.Args.Brng2)
	if !ok {
		return fmt.Errorf("paths do not intersect")
	}

	emit("intersection", newPointOut(point))
	return nil
}

type CrossTrackCmd struct {
	Args struct {
		Point string `positional-arg-name:"POINT" description:"Point, \"lat,lon\""`
		Start string `positional-arg-name:"START" description:"Path start, \"lat,lon\""`
		End   string `positional-arg-name:"END"   description:"Path end, \"lat,lon\""`
	} `positional-args:"yes" required:"yes"`
}

func (c *CrossTrackCmd) Execute(_ []string) error {
	point, err := geo.ParsePoint(c.Args.Point)
	if err != nil {
		return err
	}
	start, err := geo.ParsePoint(c.Args.Start)
	if err != nil {
		return err
	}
	end, err := geo.ParsePoint(c.Args.End)
	if err != nil {
		return err
	}

	emit("crosstrack", geo.CrossTrackDistance(point, start, end, opts.Radius))
	return nil
}

type MaxLatCmd struct {
	Args struct {
		Point   string  `positional-arg-name:"POINT"   description:"Start point, \"lat,lon\""`
		Bearing float64 `positional-arg-name:"BEARING" description:"Initial bearing in degrees"`
	} `positional-args:"yes" required:"yes"`
}

func (c *MaxLatCmd) Execute(_ []string) error {
	point, err := geo.ParsePoint(c.Args.Point)
	if err != nil {
		return err
	}

	emit("maxlat", point.MaxLatitude(c.Args.Bearing))
	return nil
}

type ParallelsCmd struct {
	Latitude float64 `short:"l" long:"latitude" description:"Parallel of latitude in degrees" required:"true"`
	twoPoints
}

func (c *ParallelsCmd) Execute(_ []string) error {
	from, to, err := c.points()
	if err != nil {
		return err
	}

	lon1, lon2, ok := geo.CrossingParallels(from, to, c.Latitude)
	if !ok {
		return fmt.Errorf("great circle does not reach latitude %v", c.Latitude)
	}

	emit("lon1", lon1, "lon2", lon2)
	return nil
}

type RhumbDistCmd struct{ twoPoints }

func (c *RhumbDistCmd) Execute(_ []string) error {
	from, to, err := c.points()
	if err != nil {
		return err
	}

	emit("distance", geo.RhumbDistance(from, to, opts.Radius))
	return nil
}

type RhumbBrngCmd struct {
	Compass bool `long:"compass" description:"Append the 16-wind compass point"`
	twoPoints
}

func (c *RhumbBrngCmd) Execute(_ []string) error {
	from, to, err := c.points()
	if err != nil {
		return err
	}

	bearing := from.RhumbBearingTo(to)
	pairs := []any{"bearing", bearing}
	if c.Compass {
		pairs = append(pairs, "compass", dms.CompassPoint(bearing, 3))
	}

	emit(pairs...)
	return nil
}

type RhumbDestCmd struct {
	Args struct {
		From     string  `positional-arg-name:"FROM"     description:"Start point, \"lat,lon\""`
		Distance float64 `positional-arg-name:"DISTANCE" description:"Distance in radius units"`
		Bearing  float64 `positional-arg-name:"BEARING"  description:"Constant bearing in degrees"`
	} `positional-args:"yes" required:"yes"`
}

func (c *RhumbDestCmd) Execute(_ []string) error {
	from, err := geo.ParsePoint(c.Args.From)
	if err != nil {
		return err
	}

	emit("destination", newPointOut(geo.RhumbDestination(from, c.Args.Distance, c.Args.Bearing, opts.Radius)))
	return nil
}

type RhumbMidCmd struct{ twoPoints }

func (c *RhumbMidCmd) Execute(_ []string) error {
	from, to, err := c.points()
	if err != nil {
		return err
	}

	emit("midpoint", newPointOut(from.RhumbMidpointTo(to)))
	return nil
}

type FmtCmd struct {
	Decimals int `short:"d" long:"decimals" description:"Decimal places, -1 for the style default" default:"-1"`

	Args struct {
		Point string `positional-arg-name:"POINT" description:"Point, \"lat,lon\" decimal or DMS"`
	} `positional-args:"yes" required:"yes"`
}

func (c *FmtCmd) Execute(_ []string) error {
	point, err := geo.ParsePoint(c.Args.Point)
	if err != nil {
		return err
	}

	style := dms.DMS
	if opts.Style != "dec" {
		style, _ = dms.ParseStyle(opts.Style)
	}

	emit(
		"lat", point.Lat,
		"lon", point.Lon,
		"formatted", point.Format(style, c.Decimals),
	)
	return nil
}

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		if _, ok := err.(*flags.Error); !ok {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

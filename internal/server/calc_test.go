package server

import (
	"math"
	"testing"

	"github.com/woozymasta/latlon/internal/geo"
)

func TestDispatchDistance(t *testing.T) {
	resp := Dispatch(CalcRequest{
		Seq:    7,
		Action: "distance",
		Lat1:   52.205, Lon1: 0.119,
		Lat2: 48.857, Lon2: 2.351,
	}, geo.EarthRadius)

	if resp.Seq != 7 {
		t.Errorf("Seq = %d, want 7", resp.Seq)
	}
	if resp.Error != "" {
		t.Fatalf("Error = %q", resp.Error)
	}
	if resp.Distance == nil || math.Abs(*resp.Distance-404300) > 100 {
		t.Errorf("Distance = %v, want ~404300", resp.Distance)
	}
	if resp.Lat != nil || resp.Lon != nil {
		t.Error("distance reply carries coordinates")
	}
}

func TestDispatchMidpoint(t *testing.T) {
	resp := Dispatch(CalcRequest{
		Seq:    8,
		Action: "midpoint",
		Lat1:   52.205, Lon1: 0.119,
		Lat2: 48.857, Lon2: 2.351,
	}, geo.EarthRadius)

	if resp.Error != "" {
		t.Fatalf("Error = %q", resp.Error)
	}
	if resp.Lat == nil || resp.Lon == nil {
		t.Fatal("midpoint reply carries no coordinates")
	}
	if math.Abs(*resp.Lat-50.5363) > 0.001 || math.Abs(*resp.Lon-1.2746) > 0.001 {
		t.Errorf("midpoint = %v,%v, want 50.5363,1.2746", *resp.Lat, *resp.Lon)
	}
}

func TestDispatchDestination(t *testing.T) {
	resp := Dispatch(CalcRequest{
		Seq:    9,
		Action: "destination",
		Lat:    51.4778, Lon: -0.0015,
		Distance: 7794, Degree: 300.7,
	}, geo.EarthRadius)

	if resp.Error != "" {
		t.Fatalf("Error = %q", resp.Error)
	}
	if resp.Lat == nil || resp.Lon == nil {
		t.Fatal("destination reply carries no coordinates")
	}
	if math.Abs(*resp.Lat-51.5135) > 0.001 || math.Abs(*resp.Lon+0.0983) > 0.001 {
		t.Errorf("destination = %v,%v, want 51.5135,-0.0983", *resp.Lat, *resp.Lon)
	}
}

func TestDispatchCustomRadius(t *testing.T) {
	// half the radius halves the distance
	full := Dispatch(CalcRequest{Action: "distance", Lat2: 10}, geo.EarthRadius)
	half := Dispatch(CalcRequest{Action: "distance", Lat2: 10}, geo.EarthRadius/2)

	if *half.Distance*2 != *full.Distance {
		t.Errorf("radius not applied: %v vs %v", *half.Distance, *full.Distance)
	}
}

func TestDispatchUnknownAction(t *testing.T) {
	resp := Dispatch(CalcRequest{Seq: 3, Action: "teleport"}, geo.EarthRadius)

	if resp.Seq != 3 {
		t.Errorf("Seq = %d, want 3", resp.Seq)
	}
	if resp.Error == "" {
		t.Error("unknown action produced no error")
	}
	if resp.Distance != nil || resp.Lat != nil || resp.Lon != nil {
		t.Error("error reply carries a result")
	}
}

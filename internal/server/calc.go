package server

import (
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/woozymasta/latlon/internal/geo"
	"github.com/woozymasta/latlon/internal/metrics"
)

// CalcRequest is one tagged calculator message. Depending on the action it
// carries either two points (lat1..lon2) or a point plus distance and
// initial bearing (lat, lon, distance, degree).
type CalcRequest struct {
	Seq      int64   `json:"seq"`
	Action   string  `json:"action"`
	Lat1     float64 `json:"lat1,omitempty"`
	Lon1     float64 `json:"lon1,omitempty"`
	Lat2     float64 `json:"lat2,omitempty"`
	Lon2     float64 `json:"lon2,omitempty"`
	Lat      float64 `json:"lat,omitempty"`
	Lon      float64 `json:"lon,omitempty"`
	Distance float64 `json:"distance,omitempty"`
	Degree   float64 `json:"degree,omitempty"`
}

// CalcResponse carries the sequence identifier of its request and either a
// numeric result or an error.
type CalcResponse struct {
	Seq      int64    `json:"seq"`
	Distance *float64 `json:"distance,omitempty"`
	Lat      *float64 `json:"lat,omitempty"`
	Lon      *float64 `json:"lon,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// Dispatch answers one calculator request. It is a pure function over the
// request value; every action maps to a single library call.
func Dispatch(req CalcRequest, radius float64) CalcResponse {
	resp := CalcResponse{Seq: req.Seq}

	switch req.Action {
	case "distance":
		d := geo.Distance(geo.New(req.Lat1, req.Lon1), geo.New(req.Lat2, req.Lon2), radius)
		resp.Distance = &d

	case "midpoint":
		mid := geo.New(req.Lat1, req.Lon1).MidpointTo(geo.New(req.Lat2, req.Lon2))
		resp.Lat = &mid.Lat
		resp.Lon = &mid.Lon

	case "destination":
		dest := geo.Destination(geo.New(req.Lat, req.Lon), req.Distance, req.Degree, radius)
		resp.Lat = &dest.Lat
		resp.Lon = &dest.Lon

	default:
		resp.Error = fmt.Sprintf("unknown action %q", req.Action)
	}

	return resp
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// the calculator UI is served from the same origin; embedding is fine
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleCalc upgrades the connection and answers calculator requests in
// order. Each message maps to exactly one library call and completes
// synchronously; no state is shared between messages.
func (s *ServerContext) HandleCalc(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("ip", r.RemoteAddr).Msg("WebSocket upgrade failed")
		return
	}
	defer func() { _ = conn.Close() }()

	metrics.CalcConnectionsGauge.Inc()
	defer metrics.CalcConnectionsGauge.Dec()

	log.Debug().Str("ip", r.RemoteAddr).Msg("Calculator connection opened")

	for {
		var req CalcRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("ip", r.RemoteAddr).Msg("Calculator read failed")
			}
			return
		}

		resp := Dispatch(req, s.Radius)
		if resp.Error != "" {
			metrics.RecordCalcRequest(req.Action, fmt.Errorf("%s", resp.Error))
		} else {
			metrics.RecordCalcRequest(req.Action, nil)
		}

		if err := conn.WriteJSON(resp); err != nil {
			log.Warn().Err(err).Str("ip", r.RemoteAddr).Msg("Calculator write failed")
			return
		}
	}
}

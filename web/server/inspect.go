package server

import (
	"fmt"
	"math"
	"net/http"
	"net/url"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/renderer"
)

// InspectResponse represents the JSON response for pixel inspection
type InspectResponse struct {
	Hit         bool       `json:"hit"`
	SphereIndex int        `json:"sphereIndex"`
	Color       string     `json:"color"` // Hex of the shaded pixel color
	Albedo      [3]float64 `json:"albedo"`
	Center      [3]float64 `json:"center"`
	Radius      float64    `json:"radius"`
	Point       [3]float64 `json:"point"`
	Normal      [3]float64 `json:"normal"`
	Distance    float64    `json:"distance"`
	Shade       float64    `json:"shade"`
	Policy      string     `json:"policy"`
}

// handleInspect reports which sphere, if any, is visible at pixel (x, y)
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	query := r.URL.Query()
	x, err := parseRequiredInt(query, "x", req.Width)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	y, err := parseRequiredInt(query, "y", req.Height)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ray := renderer.NewCamera(req.Width, req.Height).GetRay(x, y)
	color := renderer.NewShader(sceneObj).ShadeRay(ray)

	response := InspectResponse{
		SphereIndex: -1,
		Color:       hexColor(color),
		Policy:      sceneObj.Policy.String(),
	}

	if hit, ok := sceneObj.Nearest(ray); ok {
		sphere := sceneObj.Sphere(hit)
		normal := sphere.Normal(hit.Point)

		response.Hit = true
		response.SphereIndex = hit.Index
		response.Albedo = toArray(sphere.Color)
		response.Center = toArray(sphere.Center)
		response.Radius = sphere.Radius
		response.Point = toArray(hit.Point)
		response.Normal = finite(toArray(normal))
		response.Distance = hit.Distance
		response.Shade = math.Abs(ray.Direction.Dot(normal))
		if math.IsNaN(response.Shade) {
			response.Shade = 0
		}
	}

	writeJSON(w, http.StatusOK, response)
}

// parseRequiredInt parses a pixel coordinate that must lie in [0, limit)
func parseRequiredInt(values url.Values, key string, limit int) (int, error) {
	if values.Get(key) == "" {
		return 0, fmt.Errorf("missing %s coordinate", key)
	}
	return parseIntParam(values, key, 0, 0, limit-1)
}

func toArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// finite zeroes NaN components, which encoding/json refuses to marshal
func finite(v [3]float64) [3]float64 {
	for i := range v {
		if math.IsNaN(v[i]) || math.IsInf(v[i], 0) {
			v[i] = 0
		}
	}
	return v
}

func hexColor(c core.Vec3) string {
	f := renderer.QuantizationFactor(renderer.RGB8)
	return fmt.Sprintf("#%02x%02x%02x",
		renderer.Quantize(c.X, f), renderer.Quantize(c.Y, f), renderer.Quantize(c.Z, f))
}


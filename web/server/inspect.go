package server

import (
	"fmt"
	"math"
	"net/http"

	"github.com/df07/go-normals-raytracer/pkg/core"
	"github.com/df07/go-normals-raytracer/pkg/geometry"
	"github.com/df07/go-normals-raytracer/pkg/renderer"
	"github.com/df07/go-normals-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Color        string                 `json:"color"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// InspectResult contains the shape hit by an inspection ray
type InspectResult struct {
	Hit       bool
	Ray       core.Ray
	HitRecord geometry.HitRecord
	Shape     geometry.Shape
}

// inspectPixel casts an unjittered ray through the centre of pixel (x, y),
// where y counts rows from the top of the image
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY int) InspectResult {
	u := (float64(pixelX) + 0.5) / float64(width)
	v := (float64(height-1-pixelY) + 0.5) / float64(height)
	ray := sceneObj.GetCamera().GetRay(u, v)

	shape, hit, isHit := sceneObj.HitShape(ray, renderer.HitEpsilon, math.Inf(1))
	return InspectResult{Hit: isHit, Ray: ray, HitRecord: hit, Shape: shape}
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = geom.Center.Array()
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Plane:
		properties["point"] = geom.Point.Array()
		properties["normal"] = geom.Normal.Array()
		return "plane", properties

	default:
		return "unknown", properties
	}
}

func hexColor(pixel uint32) string {
	r, g, b, _ := renderer.UnpackARGB(pixel)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req, err := parseRenderRequest(query)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := parseIntParam(query, "x", -1, 0, req.Width-1)
	if err != nil || pixelX < 0 {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := parseIntParam(query, "y", -1, 0, req.Height-1)
	if err != nil || pixelY < 0 {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sceneObj := s.createScene(w, req.Scene)
	if sceneObj == nil {
		return
	}

	result := inspectPixel(sceneObj, req.Width, req.Height, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{
			Hit:   false,
			Color: hexColor(renderer.ToPixel(renderer.BackgroundGradient(result.Ray))),
		})
		return
	}

	geometryType, properties := extractGeometryInfo(result.Shape)
	rec := result.HitRecord
	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		GeometryType: geometryType,
		Point:        rec.Point.Array(),
		Normal:       rec.Normal.Array(),
		Distance:     rec.T,
		Color:        hexColor(renderer.ToPixel(renderer.NormalColor(rec.Normal))),
		Properties:   properties,
	})
}

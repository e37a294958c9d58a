package camera

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// orbitControllerImpl orbits the camera around its target using spherical coordinates (radius, azimuth, elevation)
// derived from the camera's current offset each time input is applied.
type orbitControllerImpl struct {
	mu *sync.Mutex

	enabled bool

	pendingAzimuth   float32
	pendingElevation float32
	pendingZoom      float32

	// Orbit constraints
	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	mouseSensitivity float32
	zoomSpeed        float32
}

var _ CameraController = &orbitControllerImpl{}

// NewOrbitController creates a new orbit controller with sensible defaults.
// The controller starts disabled unless WithEnabled(true) is passed.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewOrbitController(options ...CameraControllerOption) CameraController {
	cc := &orbitControllerImpl{
		mu: &sync.Mutex{},

		minRadius:    0.5,
		maxRadius:    100.0,
		minElevation: -float32(math.Pi/2 - 0.05),
		maxElevation: float32(math.Pi/2 - 0.05),

		mouseSensitivity: 0.005,
		zoomSpeed:        0.5,
	}

	for _, option := range options {
		option(cc)
	}
	return cc
}

func (cc *orbitControllerImpl) Enabled() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.enabled
}

func (cc *orbitControllerImpl) SetEnabled(enabled bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.enabled = enabled
}

func (cc *orbitControllerImpl) Rotate(dx, dy float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.pendingAzimuth -= dx * cc.mouseSensitivity
	cc.pendingElevation += dy * cc.mouseSensitivity
}

func (cc *orbitControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.pendingZoom += delta * cc.zoomSpeed
}

func (cc *orbitControllerImpl) Update(cam Camera) {
	cc.mu.Lock()
	dAzim, dElev, dZoom := cc.pendingAzimuth, cc.pendingElevation, cc.pendingZoom
	cc.pendingAzimuth, cc.pendingElevation, cc.pendingZoom = 0, 0, 0
	enabled := cc.enabled
	cc.mu.Unlock()

	if !enabled || cam == nil || (dAzim == 0 && dElev == 0 && dZoom == 0) {
		return
	}

	target := cam.Target()
	offset := cam.Position().Sub(target)
	radius := offset.Len()
	if radius < 1e-6 {
		return
	}
	azimuth := float32(math.Atan2(float64(offset.X()), float64(offset.Z())))
	elevation := float32(math.Asin(float64(offset.Y() / radius)))

	azimuth += dAzim
	elevation = clamp(elevation+dElev, cc.minElevation, cc.maxElevation)
	radius = clamp(radius-dZoom, cc.minRadius, cc.maxRadius)

	cam.SetPosition(target.Add(spherical(radius, azimuth, elevation)))
}

func (cc *orbitControllerImpl) MinRadius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.minRadius
}

func (cc *orbitControllerImpl) MaxRadius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.maxRadius
}

func (cc *orbitControllerImpl) MouseSensitivity() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.mouseSensitivity
}

func (cc *orbitControllerImpl) ZoomSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.zoomSpeed
}

// spherical converts orbit coordinates into an offset from the target.
func spherical(radius, azimuth, elevation float32) mgl32.Vec3 {
	cosElev := float32(math.Cos(float64(elevation)))
	sinElev := float32(math.Sin(float64(elevation)))
	cosAzim := float32(math.Cos(float64(azimuth)))
	sinAzim := float32(math.Sin(float64(azimuth)))
	return mgl32.Vec3{radius * cosElev * sinAzim, radius * sinElev, radius * cosElev * cosAzim}
}

func clamp(v, lo, hi float32) float32 {
	return max(lo, min(hi, v))
}

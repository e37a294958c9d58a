package camera

// CameraController defines the interface for input-driven camera controls.
// Input handlers queue raw deltas with Rotate and Zoom; Update, called once per frame on the frame loop, resolves the pending
// input into a new camera position. A disabled controller discards queued input and leaves the camera untouched.
type CameraController interface {
	// Enabled reports whether the controller applies input to the camera.
	//
	// Returns:
	//   - bool: true if input is applied
	Enabled() bool

	// SetEnabled enables or disables the controller.
	//
	// Parameters:
	//   - enabled: whether input should be applied
	SetEnabled(enabled bool)

	// Rotate queues an orbit around the camera target.
	// Deltas are in window pixels and are scaled by MouseSensitivity when applied.
	//
	// Parameters:
	//   - dx: horizontal drag distance
	//   - dy: vertical drag distance
	Rotate(dx, dy float32)

	// Zoom queues a dolly toward (positive) or away from (negative) the target.
	//
	// Parameters:
	//   - delta: zoom amount scaled by ZoomSpeed
	Zoom(delta float32)

	// Update applies pending input to the camera and clears it.
	//
	// Parameters:
	//   - cam: the camera to adjust
	Update(cam Camera)

	// MinRadius returns the minimum allowed orbit radius.
	//
	// Returns:
	//   - float32: minimum zoom distance
	MinRadius() float32

	// MaxRadius returns the maximum allowed orbit radius.
	//
	// Returns:
	//   - float32: maximum zoom distance
	MaxRadius() float32

	// MouseSensitivity returns the drag sensitivity in radians per pixel.
	//
	// Returns:
	//   - float32: multiplier for mouse movement
	MouseSensitivity() float32

	// ZoomSpeed returns the zoom speed multiplier.
	//
	// Returns:
	//   - float32: multiplier for zoom input
	ZoomSpeed() float32
}

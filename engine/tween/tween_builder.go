package tween

import "github.com/tanema/gween/ease"

// TweenBuilderOption configures a Tween during NewTween.
type TweenBuilderOption func(*tweenImpl)

// WithEasing sets the easing curve. The default is linear.
//
// Parameters:
//   - easing: the easing function, e.g. ease.InQuad
//
// Returns:
//   - TweenBuilderOption: a function that sets the easing
func WithEasing(easing ease.TweenFunc) TweenBuilderOption {
	return func(t *tweenImpl) {
		if easing != nil {
			t.easing = easing
		}
	}
}

// WithOnUpdate registers a callback invoked after every step with the value just written to the field.
//
// Parameters:
//   - fn: the update callback
//
// Returns:
//   - TweenBuilderOption: a function that sets the update callback
func WithOnUpdate(fn func(value float32)) TweenBuilderOption {
	return func(t *tweenImpl) {
		t.onUpdate = fn
	}
}

// WithOnComplete registers a callback invoked once when the tween reaches its target.
//
// Parameters:
//   - fn: the completion callback
//
// Returns:
//   - TweenBuilderOption: a function that sets the completion callback
func WithOnComplete(fn func()) TweenBuilderOption {
	return func(t *tweenImpl) {
		t.onComplete = fn
	}
}

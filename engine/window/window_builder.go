package window

// Config holds the settings a platform window is created with.
type Config struct {
	Title     string
	Width     int
	Height    int
	MinWidth  int
	MinHeight int
	MaxWidth  int
	MaxHeight int
}

// WindowBuilderOption is a functional option for configuring a window.
// Use the With* functions to create options.
type WindowBuilderOption func(c *Config)

// NewConfig returns the default window configuration with options applied.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Config: the resolved configuration
func NewConfig(options ...WindowBuilderOption) Config {
	c := Config{
		Title:     "Default Window Title",
		Width:     1280,
		Height:    720,
		MinWidth:  320,
		MinHeight: 200,
		MaxWidth:  3840,
		MaxHeight: 2160,
	}
	for _, opt := range options {
		opt(&c)
	}
	return c
}

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(c *Config) {
		c.Title = title
	}
}

// WithWidth sets the initial window width.
//
// Parameters:
//   - width: initial width in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithWidth(width int) WindowBuilderOption {
	return func(c *Config) {
		c.Width = width
	}
}

// WithHeight sets the initial window height.
//
// Parameters:
//   - height: initial height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithHeight(height int) WindowBuilderOption {
	return func(c *Config) {
		c.Height = height
	}
}

// WithMinSize sets the minimum allowed window size.
//
// Parameters:
//   - width: minimum width in pixels
//   - height: minimum height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMinSize(width, height int) WindowBuilderOption {
	return func(c *Config) {
		c.MinWidth, c.MinHeight = width, height
	}
}

// WithMaxSize sets the maximum allowed window size.
//
// Parameters:
//   - width: maximum width in pixels
//   - height: maximum height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMaxSize(width, height int) WindowBuilderOption {
	return func(c *Config) {
		c.MaxWidth, c.MaxHeight = width, height
	}
}

package loader

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-grove/engine/model"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithDispatcher is an option builder that sets where asynchronous load callbacks run.
// Without a dispatcher callbacks run on the worker goroutine that finished the load.
//
// Parameters:
//   - d: the dispatcher
//
// Returns:
//   - LoaderBuilderOption: a function that applies the dispatcher option to a loader
func WithDispatcher(d Dispatcher) LoaderBuilderOption {
	return func(l *loader) {
		l.dispatch = d
	}
}

// WithWorkers is an option builder that sets the maximum number of concurrent loads.
//
// Parameters:
//   - n: the number of load workers (minimum 1)
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker count to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		l.workers = max(n, 1)
	}
}

// WithLogger is an option builder that sets the logger for load diagnostics.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - LoaderBuilderOption: a function that applies the logger option to a loader
func WithLogger(logger *slog.Logger) LoaderBuilderOption {
	return func(l *loader) {
		if logger != nil {
			l.logger = logger.With("component", "loader")
		}
	}
}

// WithModel is an option builder that pre-populates the cache with a model for a request.
//
// Parameters:
//   - req: the request the model answers
//   - m: the model to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the model option to a loader
func WithModel(req Request, m *model.ImportedModel) LoaderBuilderOption {
	return func(l *loader) {
		l.cache[req.key()] = m
	}
}

// TaskOption is a functional option for configuring a single asynchronous load.
type TaskOption func(*taskImpl)

// WithOnError replaces the default debug-log error handler of a load. The handler runs through the dispatcher.
//
// Parameters:
//   - fn: the error handler
//
// Returns:
//   - TaskOption: a function that applies the error handler to a task
func WithOnError(fn func(error)) TaskOption {
	return func(t *taskImpl) {
		if fn != nil {
			t.onError = fn
		}
	}
}

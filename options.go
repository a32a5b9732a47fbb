package pathfx

// EngineOption configures an Engine during creation.
//
// Example:
//
//	eng := pathfx.NewEngine(
//	    pathfx.WithTolerance(0.1),
//	    pathfx.WithCacheSize(64),
//	)
//	defer eng.Close()
type EngineOption func(*engineOptions)

// engineOptions holds optional configuration for Engine creation.
type engineOptions struct {
	tolerance float64
	cacheSize int
	workers   int
}

// DefaultCacheSize is the number of measures an Engine keeps by default.
const DefaultCacheSize = 128

// defaultOptions returns the default engine options.
func defaultOptions() engineOptions {
	return engineOptions{
		tolerance: DefaultTolerance,
		cacheSize: DefaultCacheSize,
		workers:   0, // GOMAXPROCS
	}
}

// WithTolerance sets the flattening tolerance used for every measure the
// engine builds. Non-positive values keep DefaultTolerance.
func WithTolerance(tolerance float64) EngineOption {
	return func(o *engineOptions) {
		if tolerance > 0 {
			o.tolerance = tolerance
		}
	}
}

// WithCacheSize sets the soft limit of the measure cache. Zero means
// unlimited; negative values keep the default.
func WithCacheSize(n int) EngineOption {
	return func(o *engineOptions) {
		if n >= 0 {
			o.cacheSize = n
		}
	}
}

// WithWorkers sets the number of goroutines MeasureAll uses.
// Zero or negative selects GOMAXPROCS.
func WithWorkers(n int) EngineOption {
	return func(o *engineOptions) {
		o.workers = n
	}
}

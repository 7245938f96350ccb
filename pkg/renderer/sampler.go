package renderer

// Sampler is a uniform random source over [0,1). *rand.Rand satisfies it.
// The renderer never seeds or owns it.
type Sampler interface {
	Float64() float64
}

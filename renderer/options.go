package renderer

type Options struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Number of samples.
	SamplesPerPixel uint32

	// Number of samples added to each pixel per pass. The block scheduler
	// rebalances the tracer workload between passes.
	SamplesPerPass uint32

	// Number of cpu tracers. A zero value selects one tracer per cpu.
	Workers int

	// Base seed for the tracer random generators.
	Seed int64

	// Use a BVH for ray queries instead of testing every object.
	UseBVH bool
}

package tracer

import "time"

// A unit of work that is processed by a tracer.
type BlockRequest struct {
	// Block start row and height. Row 0 is the top of the frame.
	BlockY uint32
	BlockH uint32

	// The number of samples to add to each pixel in the block.
	SamplesPerPixel uint32

	// Zero-based index of the pass this request belongs to.
	Pass uint32

	// A channel to signal on block completion with the number of completed rows.
	DoneChan chan<- uint32

	// A channel to signal if an error occurs.
	ErrChan chan<- error
}

// Tracer statistics for the last processed block.
type Stats struct {
	// The rendered block height
	BlockH uint32

	// The time for rendering this block
	RenderTime time.Duration

	// Number of rays intersected against the scene while rendering this
	// block.
	Rays uint64
}

type Tracer interface {
	// Get tracer id.
	Id() string

	// Get the tracer's computation speed estimate compared to a
	// baseline cpu implementation.
	Speed() uint32

	// Enqueue block request.
	Enqueue(BlockRequest)

	// Retrieve last block statistics. The returned value must only be
	// read after the tracer has signaled block completion.
	Stats() *Stats

	// Shutdown and cleanup tracer.
	Close()
}

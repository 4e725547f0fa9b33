package utils

import (
	"image"
	"runtime"
	"sync"

	"go.viam.com/utils"
)

// ParallelFactor controls the max level of parallelization. This might be useful
// to set in tests where too much parallelism actually slows tests down in
// aggregate.
var ParallelFactor = runtime.GOMAXPROCS(0)

func init() {
	if ParallelFactor <= 0 {
		ParallelFactor = 1
	}
}

// ParallelForEachPixel calls f once for every [x, y] position of an image of
// the given size. Rows are split into ParallelFactor bands and each band runs
// in its own goroutine. f must be safe to call concurrently for distinct
// positions.
func ParallelForEachPixel(size image.Point, f func(x, y int)) {
	if size.X <= 0 || size.Y <= 0 {
		return
	}
	bands := ParallelFactor
	if bands > size.Y {
		bands = size.Y
	}
	rowsPerBand := size.Y / bands

	var waitGroup sync.WaitGroup
	waitGroup.Add(bands)
	for band := 0; band < bands; band++ {
		startY := band * rowsPerBand
		endY := startY + rowsPerBand
		if band == bands-1 {
			endY = size.Y
		}
		utils.PanicCapturingGo(func() {
			defer waitGroup.Done()
			for y := startY; y < endY; y++ {
				for x := 0; x < size.X; x++ {
					f(x, y)
				}
			}
		})
	}
	waitGroup.Wait()
}

package buddy

import "slateos/kernel"

// Watermarks bounding the single-page cache. Acquiring below the low
// watermark refills the cache up to the mid watermark; releasing above the
// high watermark shrinks it back down to the mid watermark. The hysteresis
// between the two batch operations keeps the cache from oscillating around a
// single threshold.
const (
	lowWatermark  = 10
	highWatermark = 70
	midWatermark  = (lowWatermark + highWatermark) / 2
)

func (z *Zone) cachePush(pg *Page) {
	pg.cacheNext = z.cacheHead
	z.cacheHead = pg
	z.cacheSize++
}

func (z *Zone) cachePop() *Page {
	pg := z.cacheHead
	if pg != nil {
		z.cacheHead = pg.cacheNext
		pg.cacheNext = nil
		z.cacheSize--
	}
	return pg
}

func (z *Zone) cacheExtend(count uint32) *kernel.Error {
	for i := uint32(0); i < count; i++ {
		pg, err := z.AllocPages(0)
		if err != nil {
			return err
		}
		z.cachePush(pg)
	}
	return nil
}

func (z *Zone) cacheShrink(count uint32) *kernel.Error {
	for i := uint32(0); i < count; i++ {
		if err := z.FreePages(z.cachePop()); err != nil {
			return err
		}
	}
	return nil
}

// AllocPageCached returns a single page from the zone's page cache. When the
// cache has dropped below the low watermark it is first refilled up to the
// mid watermark with order-0 allocations from the buddy core; a refill the
// core cannot satisfy surfaces as ErrOutOfMemory.
func (z *Zone) AllocPageCached() (*Page, *kernel.Error) {
	if z.cacheSize < lowWatermark {
		if err := z.cacheExtend(midWatermark - z.cacheSize); err != nil {
			return nil, err
		}
	}
	return z.cachePop(), nil
}

// FreePageCached places a single previously allocated page into the zone's
// page cache. Crossing the high watermark returns the excess above the mid
// watermark to the buddy core.
func (z *Zone) FreePageCached(pg *Page) *kernel.Error {
	z.cachePush(pg)
	if z.cacheSize > highWatermark {
		return z.cacheShrink(z.cacheSize - midWatermark)
	}
	return nil
}

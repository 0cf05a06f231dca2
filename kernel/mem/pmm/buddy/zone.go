// Package buddy implements the binary buddy allocator that manages the
// physical page frames of a memory zone. Blocks are tracked in power-of-two
// sizes: allocation splits the first suitably sized free block down to the
// requested order and freeing coalesces a block with its buddy as long as a
// true buddy is available. A watermarked front-end cache (cache.go) amortizes
// the split/merge cost of the extremely common single-page case.
//
// The allocator assumes single-threaded, run-to-completion invocation; the
// caller is responsible for serializing access.
package buddy

import (
	"github.com/dustin/go-humanize"

	"slateos/kernel"
	"slateos/kernel/kfmt"
	"slateos/kernel/mem"
	"slateos/kernel/mem/pmm"
)

var (
	// ErrOutOfMemory is returned by allocations when no free area of the
	// requested or any larger order holds a free block. It is the only
	// recoverable allocator error; the caller decides whether to retry,
	// reclaim or fail the request.
	ErrOutOfMemory = &kernel.Error{Module: "buddy", Message: "out of memory"}

	errInvalidOrder   = &kernel.Error{Module: "buddy", Message: "page order out of range"}
	errZoneMisaligned = &kernel.Error{Module: "buddy", Message: "zone size is not a multiple of the maximum block size", Fatal: true}
	errDoubleFree     = &kernel.Error{Module: "buddy", Message: "double deallocation or non-root page", Fatal: true}
	errPageCorrupted  = &kernel.Error{Module: "buddy", Message: "free area contains a corrupted page descriptor", Fatal: true}
)

// Zone manages one contiguous range of physical page frames.
type Zone struct {
	name      string
	baseFrame pmm.Frame

	// pages is the descriptor store; entry i describes frame baseFrame+i.
	pages []Page

	// freeArea[k] tracks the free blocks of order k.
	freeArea [mem.MaxPageOrder]freeArea

	// Single-page allocation cache (see cache.go).
	cacheHead *Page
	cacheSize uint32
}

// Init configures the zone to manage pageCount frames starting at baseFrame,
// partitioning the whole range into blocks of the maximum order. The range
// must divide evenly into maximum-order blocks; a zone that does not is a
// configuration error and unrecoverable.
func (z *Zone) Init(name string, baseFrame pmm.Frame, pageCount uint32) *kernel.Error {
	maxOrder := mem.MaxPageOrder - 1
	blockPages := uint32(1) << maxOrder
	if pageCount == 0 || pageCount%blockPages != 0 {
		return errZoneMisaligned
	}

	z.name = name
	z.baseFrame = baseFrame
	z.pages = make([]Page, pageCount)
	for index := range z.pages {
		pg := &z.pages[index]
		pg.frame = baseFrame + pmm.Frame(index)
		pg.index = uint32(index)
		pg.free = true
	}

	for order := range z.freeArea {
		z.freeArea[order] = freeArea{}
	}
	z.cacheHead = nil
	z.cacheSize = 0

	// Initially all memory is divided into maximum-order blocks, kept in
	// address order on the top free list.
	for index := uint32(0); index < pageCount; index += blockPages {
		pg := &z.pages[index]
		pg.order = maxOrder
		pg.root = true
		z.freeArea[maxOrder].insertTail(pg)
	}

	return nil
}

// AllocPages reserves a block of exactly 2^order contiguous frames and
// returns its root page. The free areas are scanned from the requested order
// upwards (first fit by order, not by address); a larger block is halved
// repeatedly, with the second half of each split becoming the root of a free
// block one order below.
func (z *Zone) AllocPages(order mem.PageOrder) (*Page, *kernel.Error) {
	if order >= mem.MaxPageOrder {
		return nil, errInvalidOrder
	}

	current := order
	for ; current < mem.MaxPageOrder; current++ {
		if z.freeArea[current].head != nil {
			break
		}
	}
	if current == mem.MaxPageOrder {
		return nil, ErrOutOfMemory
	}

	pg := z.freeArea[current].pop()
	if !pg.free || !pg.root {
		return nil, errPageCorrupted
	}
	pg.free = false

	size := uint32(1) << current
	for current > order {
		current--
		size >>= 1

		// The buddy of the retained half roots the released half.
		buddy := &z.pages[pg.index+size]
		if !buddy.free || buddy.root {
			return nil, errPageCorrupted
		}
		buddy.order = current
		buddy.root = true
		z.freeArea[current].insertHead(buddy)
	}

	pg.order = order
	return pg, nil
}

// FreePages returns a previously allocated block to the zone and coalesces it
// with its buddy at each order until no true buddy remains. Freeing a page
// that is already free, or that does not root a block, indicates a
// use-after-free or accounting bug; the resulting error is unrecoverable and
// must not be masked.
func (z *Zone) FreePages(pg *Page) *kernel.Error {
	if pg == nil || pg.free || !pg.root {
		return errDoubleFree
	}

	index := pg.index
	order := pg.order
	pg.free = true

	for order < mem.MaxPageOrder-1 {
		buddyIndex := index ^ (uint32(1) << order)
		buddy := &z.pages[buddyIndex]

		// A true buddy is free and tracked at the same order.
		if !buddy.free || buddy.order != order {
			break
		}

		z.freeArea[order].remove(buddy)
		buddy.root = false
		z.pages[index].root = false

		// The merged block is rooted at the lower of the two indices.
		index &= buddyIndex
		order++
	}

	root := &z.pages[index]
	root.root = true
	root.order = order
	z.freeArea[order].insertHead(root)

	return nil
}

// Name returns the name assigned to the zone at initialization.
func (z *Zone) Name() string { return z.name }

// TotalSpace returns the total number of bytes managed by the zone.
func (z *Zone) TotalSpace() mem.Size {
	return mem.Size(len(z.pages)) * mem.PageSize
}

// FreeSpace returns the number of bytes currently sitting on the zone's free
// lists. Pages held by the single-page cache are not counted as free.
func (z *Zone) FreeSpace() mem.Size {
	var size mem.Size
	for order := mem.PageOrder(0); order < mem.MaxPageOrder; order++ {
		size += mem.Size(z.freeArea[order].nrFree) * (mem.PageSize << order)
	}
	return size
}

// CachedSpace returns the number of bytes held by the single-page cache.
func (z *Zone) CachedSpace() mem.Size {
	return mem.Size(z.cacheSize) * mem.PageSize
}

// Dump prints a diagnostic line with the zone name, the free block count of
// each order and the total free space in human units.
func (z *Zone) Dump() {
	kfmt.Printf("Zone %-12s ", z.name)
	for order := mem.PageOrder(0); order < mem.MaxPageOrder; order++ {
		kfmt.Printf("%2d ", z.freeArea[order].nrFree)
	}
	kfmt.Printf(": %s\n", humanize.IBytes(uint64(z.FreeSpace())))
}

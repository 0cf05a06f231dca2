package buddy

import (
	"slateos/kernel/mem"
	"slateos/kernel/mem/pmm"
)

// Page is the descriptor that the zone keeps for each physical frame it
// manages. Only root descriptors carry a meaningful order: a root page is the
// first descriptor of a block that is currently tracked as a unit, either on
// a free-area list or handed out to a client.
//
// A page participates in at most one list at any instant: the free-list links
// are populated only while the page roots a free block, and the cache link is
// populated only while the page sits in the zone's single-page cache.
type Page struct {
	frame pmm.Frame
	index uint32

	free bool
	root bool

	// order is the log2 block size in pages. It is meaningful only while
	// the page roots a free or just-allocated block.
	order mem.PageOrder

	// freePrev/freeNext link the page into the free-area list of its
	// order.
	freePrev, freeNext *Page

	// cacheNext links the page into the zone's page cache.
	cacheNext *Page
}

// Frame returns the physical frame described by this page.
func (p *Page) Frame() pmm.Frame { return p.frame }

// Order returns the order of the block rooted at this page.
func (p *Page) Order() mem.PageOrder { return p.order }

// IsFree returns true if the page has not been handed out to a client.
func (p *Page) IsFree() bool { return p.free }

// IsRoot returns true if the page is the first descriptor of a tracked block.
func (p *Page) IsRoot() bool { return p.root }

// freeArea collects the root pages of the free blocks of a single order.
// nrFree always equals the length of the list.
type freeArea struct {
	head, tail *Page
	nrFree     uint32
}

func (a *freeArea) insertHead(pg *Page) {
	pg.freePrev = nil
	pg.freeNext = a.head
	if a.head != nil {
		a.head.freePrev = pg
	} else {
		a.tail = pg
	}
	a.head = pg
	a.nrFree++
}

func (a *freeArea) insertTail(pg *Page) {
	pg.freeNext = nil
	pg.freePrev = a.tail
	if a.tail != nil {
		a.tail.freeNext = pg
	} else {
		a.head = pg
	}
	a.tail = pg
	a.nrFree++
}

func (a *freeArea) remove(pg *Page) {
	if pg.freePrev != nil {
		pg.freePrev.freeNext = pg.freeNext
	} else {
		a.head = pg.freeNext
	}
	if pg.freeNext != nil {
		pg.freeNext.freePrev = pg.freePrev
	} else {
		a.tail = pg.freePrev
	}
	pg.freePrev, pg.freeNext = nil, nil
	a.nrFree--
}

func (a *freeArea) pop() *Page {
	pg := a.head
	if pg != nil {
		a.remove(pg)
	}
	return pg
}

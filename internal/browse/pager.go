package browse

import (
	"context"
	"fmt"
	"sync"

	"cinequiz/internal/catalog"
	"cinequiz/internal/domain"
)

// Lister is the slice of the catalog client the pager depends on.
type Lister interface {
	ListCategory(ctx context.Context, category catalog.Category, page int) (catalog.Page, error)
}

// PrefetchThreshold is how many unviewed items remain before the next page
// should already be loading, so scrolling never stalls at the end of the list.
const PrefetchThreshold = 8

// Pager walks a category listing one page at a time, deduplicating movies by
// ID across pages. Loading stops permanently once the catalog reports the
// last page reached.
type Pager struct {
	lister   Lister
	category catalog.Category

	mu       sync.Mutex
	movies   []domain.Movie
	seen     map[int]struct{}
	nextPage int
	more     bool
	inflight bool
}

func NewPager(lister Lister, category catalog.Category) *Pager {
	return &Pager{
		lister:   lister,
		category: category,
		seen:     make(map[int]struct{}),
		nextPage: 1,
		more:     true,
	}
}

// LoadMore fetches the next page. Overlapping calls no-op, as does calling
// past the last page.
func (p *Pager) LoadMore(ctx context.Context) error {
	p.mu.Lock()
	if !p.more || p.inflight {
		p.mu.Unlock()
		return nil
	}
	p.inflight = true
	page := p.nextPage
	p.mu.Unlock()

	result, err := p.lister.ListCategory(ctx, p.category, page)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.inflight = false
	if err != nil {
		return fmt.Errorf("load %s page %d: %w", p.category, page, err)
	}

	for _, movie := range result.Results {
		if _, dup := p.seen[movie.ID]; dup {
			continue
		}
		p.seen[movie.ID] = struct{}{}
		p.movies = append(p.movies, movie)
	}

	p.nextPage = result.Page + 1
	if result.Page >= result.TotalPages {
		p.more = false
	}
	return nil
}

// Movies returns a copy of everything loaded so far.
func (p *Pager) Movies() []domain.Movie {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.Movie(nil), p.movies...)
}

// More reports whether the catalog has pages left.
func (p *Pager) More() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.more
}

// ShouldPrefetch is the proximity trigger: true when the viewer is within
// PrefetchThreshold items of the end and more pages remain.
func (p *Pager) ShouldPrefetch(viewedIndex int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.more && len(p.movies)-viewedIndex <= PrefetchThreshold
}

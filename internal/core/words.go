package core

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
)

var ErrCatalogTooSmall = errors.New("word catalog too small")

// WordPool hands out words without repetition until the catalog is exhausted.
// It is shared by every room of the process, so all draws go through one lock.
type WordPool struct {
	mu      sync.Mutex
	catalog []string
	used    map[string]struct{}
	resets  int
	intn    func(n int) int
}

func NewWordPool(catalog []string) *WordPool {
	return &WordPool{
		catalog: append([]string(nil), catalog...),
		used:    make(map[string]struct{}, len(catalog)),
		intn:    rand.IntN,
	}
}

// Draw returns n distinct words not handed out since the last reset. Words listed in
// exclude are never returned by this call and are not marked as used.
// When fewer than n unused words remain the used set is cleared before drawing.
func (p *WordPool) Draw(n int, exclude ...string) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	skip := make(map[string]struct{}, len(exclude))
	for _, w := range exclude {
		skip[w] = struct{}{}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if avail := len(p.eligible(skip, false)); avail < n {
		return nil, fmt.Errorf("%w: need %d words, catalog offers %d", ErrCatalogTooSmall, n, avail)
	}
	eligible := p.eligible(skip, true)
	if len(eligible) < n {
		clear(p.used)
		p.resets++
		eligible = p.eligible(skip, false)
	}

	// partial Fisher-Yates: the first n slots end up uniformly chosen
	for i := 0; i < n; i++ {
		j := i + p.intn(len(eligible)-i)
		eligible[i], eligible[j] = eligible[j], eligible[i]
	}
	out := make([]string, n)
	copy(out, eligible[:n])
	for _, w := range out {
		p.used[w] = struct{}{}
	}
	return out, nil
}

func (p *WordPool) eligible(skip map[string]struct{}, unusedOnly bool) []string {
	out := make([]string, 0, len(p.catalog))
	for _, w := range p.catalog {
		if _, ok := skip[w]; ok {
			continue
		}
		if _, ok := p.used[w]; unusedOnly && ok {
			continue
		}
		out = append(out, w)
	}
	return out
}

// Stats reports the catalog size, the number of words used since the last reset and
// how many resets happened.
func (p *WordPool) Stats() (catalog, used, resets int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.catalog), len(p.used), p.resets
}

package present

import (
	"context"
	"runtime"

	"github.com/codahale/present/internal/bitslice"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/cpu"
)

// worker is one goroutine's bitsliced scratch state. Workers sit side by side in a slice, so each is padded onto its
// own cache lines.
type worker struct {
	s bitslice.State[word]
	_ cpu.CacheLinePad
}

// EncryptBlocksParallel is EncryptBlocks with the groups of Lanes blocks divided between up to GOMAXPROCS goroutines.
// It stops early and returns ctx.Err() if ctx is cancelled, in which case dst is partially written.
func (c *Cipher) EncryptBlocksParallel(ctx context.Context, dst, src []byte) error {
	return c.parallel(ctx, dst, src, bitslice.EncryptExpanded[word], c.Encrypt)
}

// DecryptBlocksParallel is DecryptBlocks with the groups of Lanes blocks divided between up to GOMAXPROCS goroutines.
// It stops early and returns ctx.Err() if ctx is cancelled, in which case dst is partially written.
func (c *Cipher) DecryptBlocksParallel(ctx context.Context, dst, src []byte) error {
	return c.parallel(ctx, dst, src, bitslice.DecryptExpanded[word], c.Decrypt)
}

func (c *Cipher) parallel(ctx context.Context, dst, src []byte, slice sliceFunc, scalar blockFunc) error {
	if err := checkLengths(dst, src); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	groups := len(src) / groupSize
	n := min(runtime.GOMAXPROCS(0), groups)
	if n > 0 {
		workers := make([]worker, n)
		per := (groups + n - 1) / n

		g, ctx := errgroup.WithContext(ctx)
		for i := range workers {
			lo, hi := i*per, min((i+1)*per, groups)
			if lo >= hi {
				break
			}

			w := &workers[i]
			g.Go(func() error {
				for j := lo; j < hi; j++ {
					if err := ctx.Err(); err != nil {
						return err
					}
					off := j * groupSize
					c.group(&w.s, dst[off:off+groupSize], src[off:off+groupSize], slice)
				}
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return err
		}
	}

	off := groups * groupSize
	c.tail(dst[off:], src[off:], scalar)
	return nil
}

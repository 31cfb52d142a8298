package main

import (
	"context"
	"fmt"
	"go/token"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/IvanBrykalov/textcache/cache"
)

// tokenKind is the value the keyed pool associates with token text.
type tokenKind uint8

const (
	kindIdent tokenKind = iota
	kindKeyword
)

func classify(b []byte) tokenKind {
	if token.IsKeyword(string(b)) {
		return kindKeyword
	}
	return kindIdent
}

// hotTokens are frequent Go tokens, mostly keywords.
var hotTokens = []string{
	"func", "return", "if", "var", "err", "nil", "for", "range", "type",
	"struct", "else", "const", "switch", "case", "default", "break",
	"continue", "go", "defer", "select", "chan", "map", "interface",
	"package", "import", "fallthrough", "goto",
}

var identWords = []string{
	"buf", "ctx", "node", "parse", "scope", "value", "index", "token",
	"reader", "writer", "name", "offset", "field", "method", "symbol", "block",
}

// corpus is the synthetic vocabulary. hotTokens come first so a Zipf draw
// makes them the most frequent, as in real source.
type corpus struct {
	tokens [][]byte
}

// newCorpus builds len(hotTokens)+idents tokens. Every 64th identifier is
// non-ASCII so the InternUTF8 path sees both kinds of input.
func newCorpus(idents int) corpus {
	toks := make([][]byte, 0, len(hotTokens)+idents)
	for _, k := range hotTokens {
		toks = append(toks, []byte(k))
	}
	n := len(identWords)
	var sb strings.Builder
	for i := 0; i < idents; i++ {
		sb.Reset()
		if i%64 == 63 {
			sb.WriteString("δ")
		}
		sb.WriteString(identWords[i%n])
		w := identWords[(i/n)%n]
		sb.WriteString(strings.ToUpper(w[:1]))
		sb.WriteString(w[1:])
		sb.WriteString(strconv.Itoa(i))
		toks = append(toks, []byte(sb.String()))
	}
	return corpus{tokens: toks}
}

// tally counts what one worker did.
type tally struct {
	tokens   uint64
	idents   uint64
	keywords uint64
	meta     uint64
	files    uint64
}

func (t *tally) add(o tally) {
	t.tokens += o.tokens
	t.idents += o.idents
	t.keywords += o.keywords
	t.meta += o.meta
	t.files += o.files
}

// workload lexes synthetic files. Each worker owns one StringTable and one
// KeyedCache per file and swaps them at file boundaries, the way a
// compiler hands tables between parse jobs.
type workload struct {
	corpus     corpus
	strings    *cache.StringPool
	kinds      *cache.KeyedPool[tokenKind]
	seed       int64
	zipfS      float64
	zipfV      float64
	fileTokens int
	metaPct    int
}

// run starts workers and stops them when d elapses or ctx is done.
func (w *workload) run(ctx context.Context, workers int, d time.Duration) (tally, error) {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	tallies := make([]tally, workers)
	g, ctx := errgroup.WithContext(ctx)
	for id := 0; id < workers; id++ {
		id := id
		g.Go(func() error {
			t, err := w.work(ctx, id)
			tallies[id] = t
			return err
		})
	}
	err := g.Wait()

	var sum tally
	for _, t := range tallies {
		sum.add(t)
	}
	return sum, err
}

func (w *workload) work(ctx context.Context, id int) (tally, error) {
	// rand.Rand is not goroutine-safe: one per worker.
	r := rand.New(rand.NewSource(w.seed + int64(id)*9973))
	z := rand.NewZipf(r, w.zipfS, w.zipfV, uint64(len(w.corpus.tokens)-1))

	var t tally
	for {
		done, err := w.lexFile(ctx, id, r, z, &t)
		if err != nil || done {
			return t, err
		}
		t.files++
	}
}

// lexFile processes one synthetic file. It reports done once ctx ends.
func (w *workload) lexFile(ctx context.Context, id int, r *rand.Rand, z *rand.Zipf, t *tally) (bool, error) {
	tbl := w.strings.Acquire()
	kc := w.kinds.Acquire()
	defer func() {
		kc.Release()
		tbl.Release()
	}()

	for i := 0; i < w.fileTokens; i++ {
		if i&255 == 0 && ctx.Err() != nil {
			return true, nil
		}
		tok := w.corpus.tokens[z.Uint64()]
		t.tokens++

		if r.Intn(100) < w.metaPct {
			if s := w.strings.InternUTF8(tok); s != string(tok) {
				return true, fmt.Errorf("worker %d: InternUTF8(%q) = %q", id, tok, s)
			}
			t.meta++
			continue
		}

		h := cache.Hash(tok)
		kind, ok := kc.Find(tok, h)
		if !ok {
			kind = classify(tok)
			if key := kc.Insert(tok, h, kind); key != string(tok) {
				return true, fmt.Errorf("worker %d: keyed insert %q canonicalized to %q", id, tok, key)
			}
		}
		if kind == kindKeyword {
			t.keywords++
			continue
		}
		if s := tbl.Intern(tok); s != string(tok) {
			return true, fmt.Errorf("worker %d: interned %q as %q", id, tok, s)
		}
		t.idents++
	}
	return false, nil
}

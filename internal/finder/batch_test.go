package finder

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/profile-finder/internal/model"
	"github.com/sells-group/profile-finder/pkg/search"
)

var batchNames = []string{"Ada Lovelace", "Alan Turing", "Grace Hopper", "Edsger Dijkstra", "Barbara Liskov"}

func slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

// echoClient returns one profile hit named after the quoted name in the
// query, after a random delay.
func echoClient(inflight, peak *int64) search.ClientFunc {
	return func(ctx context.Context, query string) ([]search.Hit, error) {
		n := atomic.AddInt64(inflight, 1)
		defer atomic.AddInt64(inflight, -1)
		for {
			p := atomic.LoadInt64(peak)
			if n <= p || atomic.CompareAndSwapInt64(peak, p, n) {
				break
			}
		}

		time.Sleep(time.Duration(rand.IntN(30)) * time.Millisecond)

		name := strings.Trim(strings.TrimPrefix(query, "linkedin "), `"`)
		if strings.Contains(name, "Bad Actor") {
			panic("boom")
		}
		return []search.Hit{{
			Title: name + " - Engineer | LinkedIn",
			URL:   "https://www.linkedin.com/in/" + slug(name),
		}}, nil
	}
}

func batchQueries(names ...string) []model.Query {
	out := make([]model.Query, len(names))
	for i, n := range names {
		out[i] = model.Query{Name: n}
	}
	return out
}

func batchResolver(client search.Client) *Resolver {
	opts := testOptions()
	opts.CompanySimilarityThreshold = 0
	return NewResolver(client, NewPacer(0), opts)
}

func TestScheduler_PreservesInputOrder(t *testing.T) {
	var inflight, peak int64
	s := NewScheduler(batchResolver(echoClient(&inflight, &peak)), 3)

	out := s.Run(context.Background(), batchQueries(batchNames...))

	require.Len(t, out, len(batchNames))
	for i, name := range batchNames {
		assert.True(t, out[i].Success, name)
		assert.Equal(t, "https://www.linkedin.com/in/"+slug(name), out[i].ProfileURL)
		assert.Equal(t, `linkedin "`+name+`"`, out[i].QueryUsed)
	}
	assert.Equal(t, 5, model.CountFound(out))
}

func TestScheduler_BoundsConcurrency(t *testing.T) {
	var inflight, peak int64
	s := NewScheduler(batchResolver(echoClient(&inflight, &peak)), 2)

	names := append(append([]string{}, batchNames...), batchNames...)
	out := s.Run(context.Background(), batchQueries(names...))

	require.Len(t, out, len(names))
	assert.LessOrEqual(t, atomic.LoadInt64(&peak), int64(2))
	assert.Positive(t, atomic.LoadInt64(&peak))
}

func TestScheduler_PanicIsIsolated(t *testing.T) {
	var inflight, peak int64
	s := NewScheduler(batchResolver(echoClient(&inflight, &peak)), 3)

	out := s.Run(context.Background(), batchQueries("Ada Lovelace", "Bad Actor", "Grace Hopper"))

	require.Len(t, out, 3)
	assert.True(t, out[0].Success)
	assert.Equal(t, model.Failed(model.ErrInternal), out[1])
	assert.True(t, out[2].Success)
}

func TestScheduler_InvalidQueryDoesNotAffectSiblings(t *testing.T) {
	var inflight, peak int64
	s := NewScheduler(batchResolver(echoClient(&inflight, &peak)), 2)

	out := s.Run(context.Background(), batchQueries("Ada Lovelace", "", "Alan Turing"))

	assert.True(t, out[0].Success)
	assert.Equal(t, model.ErrInvalidQuery, out[1].Error)
	assert.True(t, out[2].Success)
}

func TestScheduler_Progress(t *testing.T) {
	var inflight, peak int64

	var (
		mu      sync.Mutex
		done    []int
		indexes = map[int]bool{}
	)
	s := NewScheduler(batchResolver(echoClient(&inflight, &peak)), 3,
		WithProgress(func(d, total, index int, res model.SearchResult) {
			mu.Lock()
			defer mu.Unlock()
			assert.Equal(t, len(batchNames), total)
			assert.True(t, res.Success)
			done = append(done, d)
			indexes[index] = true
		}),
	)

	s.Run(context.Background(), batchQueries(batchNames...))

	assert.Equal(t, []int{1, 2, 3, 4, 5}, done)
	assert.Len(t, indexes, len(batchNames))
}

func TestScheduler_Empty(t *testing.T) {
	s := NewScheduler(batchResolver(search.ClientFunc(nil)), 3)
	out := s.Run(context.Background(), nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestNewScheduler_MinimumOneWorker(t *testing.T) {
	assert.Equal(t, 1, NewScheduler(nil, 0).workers)
	assert.Equal(t, 1, NewScheduler(nil, -4).workers)
	assert.Equal(t, 4, NewScheduler(nil, 4).workers)
}

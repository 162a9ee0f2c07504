package carousel

import (
	"math/rand/v2"
)

const (
	// ChunkSize is the number of items in one base chunk.
	ChunkSize = 13
	// ChunkCount is the number of rows shown on the home page.
	ChunkCount = 2
)

// Shuffler randomizes catalog order. *rand.Rand satisfies it; tests inject a
// deterministic implementation.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

type globalShuffler struct{}

func (globalShuffler) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// BuildChunks pads items by self-concatenation until they cover count chunks
// of size, shuffles them and cuts the chunks. The input slice is not modified.
func BuildChunks(items []Item, size, count int, shuffler Shuffler) ([][]Item, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCatalog
	}
	if size <= 0 {
		size = ChunkSize
	}
	if count <= 0 {
		count = ChunkCount
	}
	if shuffler == nil {
		shuffler = globalShuffler{}
	}

	pool := append([]Item(nil), items...)
	for len(pool) < size*count {
		pool = append(pool, pool...)
	}
	shuffler.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	chunks := make([][]Item, 0, count)
	for i := 0; i < count; i++ {
		chunk := make([]Item, size)
		copy(chunk, pool[i*size:(i+1)*size])
		chunks = append(chunks, chunk)
	}
	return chunks, nil
}

// Tile concatenates chunk with itself times times.
func Tile(chunk []Item, times int) []Item {
	if times <= 0 || len(chunk) == 0 {
		return nil
	}
	out := make([]Item, 0, len(chunk)*times)
	for i := 0; i < times; i++ {
		out = append(out, chunk...)
	}
	return out
}

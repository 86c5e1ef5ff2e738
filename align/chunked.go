package align

import (
	"sync"

	"github.com/grailbio/base/log"
	"github.com/vargraph/vgraph/graph"
)

// Chunk is a contiguous slice of reads routed to one worker, plus a start
// node each read in the chunk should be aligned from.
type Chunk struct {
	Reads      []string
	StartNodes []int64
}

// RunChunked partitions reads into fixed-size chunks and dispatches each to
// one of workers goroutines, each scoring against g under p/mode and
// invoking emit per record. It mirrors the teacher's shard-channel +
// sync.WaitGroup fan-out (markduplicates.processBAM): a buffered channel of
// chunks is filled up front and closed, then workers drain it until empty.
// emit is called concurrently from worker goroutines and must be safe for
// that, or do its own serialization.
func RunChunked(g *graph.Graph, chunkSize, workers int, reads []string, startNodes []int64, p ScoreParams, mode Mode, emit func(*Result)) error {
	if chunkSize <= 0 {
		chunkSize = 1
	}
	if workers <= 0 {
		workers = 1
	}

	var chunks []Chunk
	for i := 0; i < len(reads); i += chunkSize {
		end := i + chunkSize
		if end > len(reads) {
			end = len(reads)
		}
		chunks = append(chunks, Chunk{Reads: reads[i:end], StartNodes: startNodes[i:end]})
	}

	chunkCh := make(chan Chunk, len(chunks))
	for _, c := range chunks {
		chunkCh <- c
	}
	close(chunkCh)

	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for chunk := range chunkCh {
				log.Debug.Printf("align: worker %d starting chunk of %d reads", worker, len(chunk.Reads))
				for i, read := range chunk.Reads {
					res, err := Score(g, chunk.StartNodes[i], read, p, mode)
					if err != nil {
						errs <- err
						return
					}
					emit(res)
				}
			}
		}(w)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

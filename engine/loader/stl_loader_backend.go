package loader

import (
	"encoding/binary"
	"math"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-stl/common"
	"github.com/Carmen-Shannon/oxy-stl/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// Binary STL layout.
const (
	stlHeaderSize  = 80
	stlCountSize   = 4
	stlPreamble    = stlHeaderSize + stlCountSize
	stlRecordSize  = 50 // 12 float32 + uint16 attribute
	stlPoolQueue   = 256
	stlMinChunk    = 4096
	stlIdleTimeout = 1 * time.Second
)

// stlLoaderBackendImpl decodes the standard binary stereolithography layout.
// Payloads with at least parallelThreshold triangles are split into chunks that are decoded
// on a shared worker pool; smaller payloads are decoded inline.
type stlLoaderBackendImpl struct {
	logger common.Logger

	workers           int
	parallelThreshold int

	poolOnce sync.Once
	pool     worker.DynamicWorkerPool
}

var _ loaderBackend = &stlLoaderBackendImpl{}

// newSTLLoaderBackend creates a binary STL backend.
//
// Parameters:
//   - logger: destination for decode diagnostics
//   - workers: worker goroutines used for large payloads (<= 0 selects NumCPU-1)
//   - parallelThreshold: triangle count from which decoding fans out (<= 0 disables fan-out)
//
// Returns:
//   - *stlLoaderBackendImpl: the backend
func newSTLLoaderBackend(logger common.Logger, workers, parallelThreshold int) *stlLoaderBackendImpl {
	if workers <= 0 {
		workers = max(runtime.NumCPU()-1, 1)
	}
	return &stlLoaderBackendImpl{
		logger:            common.LoggerOrNop(logger),
		workers:           workers,
		parallelThreshold: parallelThreshold,
	}
}

func (b *stlLoaderBackendImpl) Extensions() []string {
	return []string{".stl"}
}

func (b *stlLoaderBackendImpl) Decode(payload []byte) (*model.MeshGeometry, error) {
	size := len(payload)
	if size < stlPreamble {
		return nil, malformed(size, nil, "truncated header: need %d bytes for header and triangle count", stlPreamble)
	}

	count := uint64(binary.LittleEndian.Uint32(payload[stlHeaderSize:stlPreamble]))
	want := uint64(stlPreamble) + count*stlRecordSize
	switch {
	case uint64(size) < want:
		return nil, malformed(size, nil, "truncated body: header declares %d triangles (%d bytes), payload has %d", count, want, size)
	case uint64(size) > want:
		return nil, malformed(size, nil, "%d trailing bytes after %d declared triangles", uint64(size)-want, count)
	}

	header := strings.TrimRight(string(payload[:stlHeaderSize]), " \x00")
	body := payload[stlPreamble:]
	triangles := make([]model.Triangle, count)

	n := int(count)
	if b.parallelThreshold > 0 && n >= b.parallelThreshold && b.workers > 1 {
		b.decodeParallel(body, triangles)
	} else {
		decodeRange(body, triangles, 0, n)
	}

	b.logger.Debugf("decoded %d triangles (%d bytes)", n, size)
	return model.NewMeshGeometry(header, triangles), nil
}

// decodeParallel splits the records into at most stlPoolQueue chunks and decodes them on the pool.
// Chunks write disjoint ranges of out, so no further synchronisation is needed beyond the barrier.
func (b *stlLoaderBackendImpl) decodeParallel(body []byte, out []model.Triangle) {
	b.poolOnce.Do(func() {
		b.pool = worker.NewDynamicWorkerPool(b.workers, stlPoolQueue, stlIdleTimeout)
	})

	n := len(out)
	chunk := max(stlMinChunk, (n+stlPoolQueue-1)/stlPoolQueue)

	var wg sync.WaitGroup
	taskID := 0
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		from, to := start, end
		b.pool.SubmitTask(worker.Task{
			ID: taskID,
			Do: func() (any, error) {
				defer wg.Done()
				decodeRange(body, out, from, to)
				return nil, nil
			},
		})
		taskID++
	}
	wg.Wait()
	b.logger.Debugf("parallel decode: %d triangles in %d chunks on %d workers", n, taskID, b.workers)
}

// decodeRange decodes records [from, to) of body into out. The caller has already checked
// that body holds at least to records.
func decodeRange(body []byte, out []model.Triangle, from, to int) {
	for i := from; i < to; i++ {
		rec := body[i*stlRecordSize : (i+1)*stlRecordSize]
		t := &out[i]
		t.Normal = readVec3(rec[0:12])
		t.Vertices[0] = readVec3(rec[12:24])
		t.Vertices[1] = readVec3(rec[24:36])
		t.Vertices[2] = readVec3(rec[36:48])
		t.Attribute = binary.LittleEndian.Uint16(rec[48:50])
	}
}

func readVec3(b []byte) mgl32.Vec3 {
	return mgl32.Vec3{
		math.Float32frombits(binary.LittleEndian.Uint32(b[0:4])),
		math.Float32frombits(binary.LittleEndian.Uint32(b[4:8])),
		math.Float32frombits(binary.LittleEndian.Uint32(b[8:12])),
	}
}

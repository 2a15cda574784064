package baking

import (
	"image"
	"runtime"
	"sync"

	"github.com/df07/go-lightmap-baker/pkg/lightmap"
)

// FaceBaker bakes one face and returns its image and the number of samples taken
type FaceBaker func(faceID int) (*lightmap.BorderedImage, int)

// FaceTask asks a worker to bake one face
type FaceTask struct {
	FaceID int
}

// FaceResult is the baked image of one face. Canceled results carry an
// empty image.
type FaceResult struct {
	FaceID   int
	Image    *lightmap.BorderedImage
	Samples  int
	Canceled bool
}

// WorkerPool bakes the faces of one stage in parallel
type WorkerPool struct {
	taskQueue   chan FaceTask
	resultQueue chan FaceResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker bakes faces from the task queue until it is closed
type Worker struct {
	ID          int
	bake        FaceBaker
	cancel      *Cancel
	taskQueue   chan FaceTask
	resultQueue chan FaceResult
}

// NewWorkerPool creates a pool for numTasks faces. numWorkers <= 0 uses all CPUs.
func NewWorkerPool(bake FaceBaker, cancel *Cancel, numTasks, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan FaceTask, numTasks),
		resultQueue: make(chan FaceResult, numTasks),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			bake:        bake,
			cancel:      cancel,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop waits for queued tasks to finish and shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask queues a face. Never blocks for up to numTasks submissions.
func (wp *WorkerPool) SubmitTask(task FaceTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a finished face
func (wp *WorkerPool) GetResult() (FaceResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		if w.cancel.IsCanceled() {
			w.resultQueue <- FaceResult{
				FaceID:   task.FaceID,
				Image:    lightmap.NewBorderedImage(image.Point{}),
				Canceled: true,
			}
			continue
		}

		img, samples := w.bake(task.FaceID)
		w.resultQueue <- FaceResult{
			FaceID:  task.FaceID,
			Image:   img,
			Samples: samples,
		}
	}
}

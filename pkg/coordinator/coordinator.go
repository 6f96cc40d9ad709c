// Package coordinator implements the WorkCoordinator: the HTTP surface
// toward worker pods and, supplementally, the user-facing job control
// endpoints named in spec.md §6. It holds no work-ordering state of its
// own — every mutation goes through jobstore.JobStore inside one
// transaction, per spec.md §4.6 ("the coordinator is stateless between
// requests — all work ordering is in JobStore").
package coordinator

import (
	"context"
	"crypto/subtle"
	"sync"

	"github.com/rs/zerolog"

	herrors "github.com/Azure/harmony/pkg/herrors"
	"github.com/Azure/harmony/pkg/jobstore"
	"github.com/Azure/harmony/pkg/logging"
	"github.com/Azure/harmony/pkg/scheduler"
)

// ImageMap resolves a service name to its current container image tag,
// refreshed by the deployment-callback handler (spec.md §4.6).
type ImageMap struct {
	mu     sync.RWMutex
	images map[string]string
}

// NewImageMap builds an ImageMap seeded from env-derived initial values.
func NewImageMap(initial map[string]string) *ImageMap {
	images := make(map[string]string, len(initial))
	for k, v := range initial {
		images[k] = v
	}
	return &ImageMap{images: images}
}

// Get returns the current image for service, and whether it is known.
func (m *ImageMap) Get(service string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	image, ok := m.images[service]
	return image, ok
}

// Set refreshes service's image, called from the deployment callback.
func (m *ImageMap) Set(service, image string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.images[service] = image
}

// Coordinator implements spec.md §4.6's HTTP contract.
type Coordinator struct {
	store          jobstore.JobStore
	scheduler      *scheduler.Scheduler
	flusher        *scheduler.BatchFlusher
	advancer       *StepAdvancer
	images         *ImageMap
	deploySecret   string
	maxCmrGranules int
	log            zerolog.Logger
}

// Options configures a Coordinator.
type Options struct {
	Store          jobstore.JobStore
	Scheduler      *scheduler.Scheduler
	Flusher        *scheduler.BatchFlusher
	NewItemID      func() string
	Images         *ImageMap
	DeploySecret   string
	MaxCmrGranules int
}

// New constructs a Coordinator.
func New(opts Options) *Coordinator {
	flusher := opts.Flusher
	if flusher == nil {
		flusher = scheduler.NewBatchFlusher()
	}
	images := opts.Images
	if images == nil {
		images = NewImageMap(nil)
	}

	var advancer *StepAdvancer
	if opts.NewItemID != nil {
		advancer = NewStepAdvancer(opts.Store, flusher, opts.NewItemID)
	}

	return &Coordinator{
		store:          opts.Store,
		scheduler:      opts.Scheduler,
		flusher:        flusher,
		advancer:       advancer,
		images:         images,
		deploySecret:   opts.DeploySecret,
		maxCmrGranules: opts.MaxCmrGranules,
		log:            logging.New("coordinator"),
	}
}

// checkSecret performs a constant-time comparison against the
// coordinator's deployment-callback shared secret.
func (c *Coordinator) checkSecret(given string) bool {
	if c.deploySecret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(given), []byte(c.deploySecret)) == 1
}

// refreshImage records image as the current image for service in the
// image map; the deployment-callback handler calls it on notification,
// per spec.md §4.6.
func (c *Coordinator) refreshImage(ctx context.Context, service, image string) error {
	if service == "" || image == "" {
		return herrors.Validation("deployment callback requires both service and image").Build()
	}
	c.images.Set(service, image)
	return nil
}


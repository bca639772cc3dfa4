package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dspolyakov/buildpad/internal/client/models"
	"github.com/dspolyakov/buildpad/internal/client/repositories/ideas"
	"github.com/dspolyakov/buildpad/internal/client/repositories/projects"
	"github.com/dspolyakov/buildpad/internal/common"
	"github.com/dspolyakov/buildpad/internal/logging"
	"github.com/dspolyakov/buildpad/internal/merge"
	"github.com/dspolyakov/buildpad/internal/remote"
)

// SyncResult is what one full reconciliation pass produced: the merged
// collections as they now sit in the local cache, plus a per-kind report of
// what happened against the remote store.
type SyncResult struct {
	Projects []models.Project
	Ideas    []models.Idea

	ProjectReport merge.Report
	IdeaReport    merge.Report
}

// Clean reports whether both pipelines completed without any degradation.
func (r *SyncResult) Clean() bool {
	return r.ProjectReport.Clean() && r.IdeaReport.Clean()
}

// SyncService reconciles the local cache with the remote store. All
// collaborators are injected; the service holds no global state.
type SyncService struct {
	projectRepo projects.Repository
	ideaRepo    ideas.Repository

	projectEngine *merge.Engine[models.Project, remote.ProjectRecord]
	ideaEngine    *merge.Engine[models.Idea, remote.IdeaRecord]

	projectStore merge.Store[remote.ProjectRecord]
	ideaStore    merge.Store[remote.IdeaRecord]

	log         logging.Logger
	callTimeout time.Duration

	// One mutex per owner: concurrent Sync calls for the same owner would
	// race on ReplaceAll and double-upload, so they are serialized here.
	mu     sync.Mutex
	owners map[string]*sync.Mutex
}

// NewSyncService wires a sync service from its stores and repositories.
// callTimeout bounds each remote pipeline; zero means no bound beyond the
// caller's context.
func NewSyncService(
	projectRepo projects.Repository,
	ideaRepo ideas.Repository,
	projectStore merge.Store[remote.ProjectRecord],
	ideaStore merge.Store[remote.IdeaRecord],
	log logging.Logger,
	callTimeout time.Duration,
) *SyncService {
	return &SyncService{
		projectRepo:   projectRepo,
		ideaRepo:      ideaRepo,
		projectStore:  projectStore,
		ideaStore:     ideaStore,
		projectEngine: merge.NewEngine[models.Project](projectStore, remote.ProjectCodec{}, log),
		ideaEngine:    merge.NewEngine[models.Idea](ideaStore, remote.IdeaCodec{}, log),
		log:           log,
		callTimeout:   callTimeout,
		owners:        make(map[string]*sync.Mutex),
	}
}

func (s *SyncService) ownerLock(ownerID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.owners[ownerID]
	if !ok {
		m = &sync.Mutex{}
		s.owners[ownerID] = m
	}
	return m
}

func (s *SyncService) pipelineCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.callTimeout)
}

// Sync runs a full two-kind reconciliation pass for one owner: read the
// cache, merge each kind against the remote store, persist the merged
// collections back. Remote trouble degrades into the reports rather than
// failing the pass; only cache errors or a missing owner abort it.
func (s *SyncService) Sync(ctx context.Context, ownerID string) (*SyncResult, error) {
	if ownerID == "" {
		return nil, common.ErrNoOwner
	}

	lock := s.ownerLock(ownerID)
	lock.Lock()
	defer lock.Unlock()

	localProjects, err := s.projectRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cached projects: %w", err)
	}
	localIdeas, err := s.ideaRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cached ideas: %w", err)
	}

	result := &SyncResult{}

	// The two kinds are independent, so their remote round-trips run in
	// parallel. Each writes only its own fields of the result.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		pctx, cancel := s.pipelineCtx(ctx)
		defer cancel()
		result.Projects, result.ProjectReport = s.projectEngine.Reconcile(pctx, ownerID, localProjects)
	}()
	go func() {
		defer wg.Done()
		pctx, cancel := s.pipelineCtx(ctx)
		defer cancel()
		result.Ideas, result.IdeaReport = s.ideaEngine.Reconcile(pctx, ownerID, localIdeas)
	}()
	wg.Wait()

	if err := s.projectRepo.ReplaceAll(ctx, result.Projects); err != nil {
		return nil, fmt.Errorf("failed to store merged projects: %w", err)
	}
	if err := s.ideaRepo.ReplaceAll(ctx, result.Ideas); err != nil {
		return nil, fmt.Errorf("failed to store merged ideas: %w", err)
	}

	s.log.Info(ctx, "sync finished",
		"owner_id", ownerID,
		"projects", len(result.Projects),
		"ideas", len(result.Ideas),
		"clean", result.Clean(),
	)
	return result, nil
}

// DeleteProject removes a project from the cache and, best effort, from the
// remote store. With no deletion markers kept anywhere, a record removed
// here while the remote delete fails will come back on the next sync.
func (s *SyncService) DeleteProject(ctx context.Context, ownerID, id string) error {
	if ownerID == "" {
		return common.ErrNoOwner
	}
	lock := s.ownerLock(ownerID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.projectRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete cached project: %w", err)
	}
	if err := s.projectStore.Delete(ctx, id); err != nil {
		s.log.Warn(ctx, "remote project delete failed, record may resurface",
			"id", id, "error", err)
	}
	return nil
}

// DeleteIdea removes an idea the same way DeleteProject removes a project.
func (s *SyncService) DeleteIdea(ctx context.Context, ownerID, id string) error {
	if ownerID == "" {
		return common.ErrNoOwner
	}
	lock := s.ownerLock(ownerID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.ideaRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete cached idea: %w", err)
	}
	if err := s.ideaStore.Delete(ctx, id); err != nil {
		s.log.Warn(ctx, "remote idea delete failed, record may resurface",
			"id", id, "error", err)
	}
	return nil
}

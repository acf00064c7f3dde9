package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/synthetica-health/platform/pkg/analysis"
	"github.com/synthetica-health/platform/pkg/analysis/dsl"
	"github.com/synthetica-health/platform/pkg/common/kafka"
	"github.com/synthetica-health/platform/pkg/common/logger"
	"github.com/synthetica-health/platform/pkg/common/models"
	"github.com/synthetica-health/platform/pkg/observability/metrics"
	"github.com/synthetica-health/platform/pkg/profile"
	"github.com/synthetica-health/platform/pkg/synth"
)

// Service orchestrates dataset generation: it resolves the request
// against a profile library, runs the synthesizer, exports the CSV,
// persists metadata, warms the summary cache, and emits a bus event.
type Service struct {
	repo      *Repository
	producer  *kafka.Producer
	dlq       *kafka.Producer
	cache     *SummaryCache
	profiles  profile.Library
	outputDir string
}

func NewService(repo *Repository, producer, dlq *kafka.Producer, cache *SummaryCache, profiles profile.Library, outputDir string) *Service {
	return &Service{
		repo:      repo,
		producer:  producer,
		dlq:       dlq,
		cache:     cache,
		profiles:  profiles,
		outputDir: outputDir,
	}
}

// ResolveConfig turns an API request into a full generation config:
// profile (or built-in defaults) first, explicit overrides on top.
func (s *Service) ResolveConfig(req models.GenerateRequest) (synth.GenerationConfig, error) {
	base := synth.DefaultConfig()
	if req.Profile != "" {
		p, ok := s.profiles.Lookup(req.Profile)
		if !ok {
			return synth.GenerationConfig{}, synth.InvalidParameterError{Field: "profile", Reason: fmt.Sprintf("unknown cohort profile %q", req.Profile)}
		}
		base = p.ToConfig(base.SampleCount, base.Seed)
	}
	return req.Apply(base), nil
}

// Generate runs one atomic generation call. Validation failures surface
// before anything is written; later failures mark the stored record
// failed instead of leaving partial state silently.
func (s *Service) Generate(ctx context.Context, req models.GenerateRequest) (*models.GenerateResponse, error) {
	cfg, err := s.ResolveConfig(req)
	if err != nil {
		return nil, err
	}

	rs, err := synth.Generate(cfg)
	if err != nil {
		metrics.ObserveGenerationFailed()
		return nil, err
	}

	id := uuid.New().String()
	name := req.Name
	if name == "" {
		name = DefaultFilename(time.Now().UTC())
	}
	name = EnsureCSVExt(name)
	path := filepath.Join(s.outputDir, name)

	rec := &Record{
		ID:       id,
		Name:     name,
		RowCount: rs.Len(),
		Seed:     cfg.Seed,
		Config:   configPayload(cfg),
		Path:     path,
		Status:   StatusPending,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		metrics.ObserveGenerationFailed()
		return nil, fmt.Errorf("persisting dataset metadata: %w", err)
	}

	if err := s.writeFile(path, rs); err != nil {
		s.repo.UpdateStatus(ctx, id, StatusFailed, err.Error())
		metrics.ObserveGenerationFailed()
		s.publish(ctx, "dataset.failed", map[string]interface{}{
			"dataset_id": id,
			"name":       name,
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("exporting dataset: %w", err)
	}
	if err := s.repo.UpdateStatus(ctx, id, StatusGenerated, ""); err != nil {
		metrics.ObserveGenerationFailed()
		return nil, fmt.Errorf("finalizing dataset metadata: %w", err)
	}

	metrics.ObserveGeneration(rs.Len())

	stats := summarize(id, rs, "")
	s.cache.Put(ctx, id, stats)

	s.publish(ctx, "dataset.generated", map[string]interface{}{
		"dataset_id": id,
		"name":       name,
		"row_count":  rs.Len(),
		"seed":       cfg.Seed,
		"path":       path,
	})

	return &models.GenerateResponse{
		ID:        id,
		Name:      name,
		RowCount:  rs.Len(),
		Path:      path,
		Status:    StatusGenerated,
		Timestamp: time.Now().UTC(),
	}, nil
}

func (s *Service) writeFile(path string, rs *synth.RecordSet) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, rs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *Service) publish(ctx context.Context, eventType string, payload map[string]interface{}) {
	if s.producer == nil {
		return
	}
	if err := s.producer.PublishEvent(ctx, eventType, "generator", payload); err != nil {
		logger.Log.WithError(err).Error("failed to publish dataset event")
		if s.dlq != nil {
			if dlqErr := s.dlq.PublishEvent(ctx, eventType, "generator", payload); dlqErr != nil {
				logger.Log.WithError(dlqErr).Error("failed to push dataset event to DLQ")
			}
		}
	}
}

func (s *Service) Get(ctx context.Context, id string) (*Record, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, limit int) ([]Record, error) {
	return s.repo.List(ctx, limit)
}

// Export streams a stored dataset's CSV to w.
func (s *Service) Export(ctx context.Context, id string, w io.Writer) error {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	f, err := os.Open(rec.Path)
	if err != nil {
		return fmt.Errorf("opening dataset file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return err
	}
	metrics.ObserveExport()
	return nil
}

// Stats loads a dataset and summarizes it. An optional selection
// expression restricts columns and rows. Full-table summaries are served
// from the cache when warm.
func (s *Service) Stats(ctx context.Context, id, query string) (models.DatasetStats, error) {
	if query == "" {
		if cached, ok := s.cache.Get(ctx, id); ok {
			return cached, nil
		}
	}

	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return models.DatasetStats{}, err
	}

	f, err := os.Open(rec.Path)
	if err != nil {
		return models.DatasetStats{}, fmt.Errorf("opening dataset file: %w", err)
	}
	defer f.Close()

	rs, err := ReadCSV(f)
	if err != nil {
		return models.DatasetStats{}, fmt.Errorf("reading dataset file: %w", err)
	}

	if query != "" {
		rs, err = applyQuery(rs, query)
		if err != nil {
			return models.DatasetStats{}, err
		}
	}

	stats := summarize(id, rs, query)
	if query == "" {
		s.cache.Put(ctx, id, stats)
	}
	return stats, nil
}

// Cleanup drops expired datasets: the CSV file, the cached summary, and
// the metadata row. Invoked periodically by the service main.
func (s *Service) Cleanup(ctx context.Context, ttl time.Duration) error {
	recs, err := s.repo.Expired(ctx, ttl)
	if err != nil {
		return err
	}
	for _, rec := range recs {
		if err := os.Remove(rec.Path); err != nil && !os.IsNotExist(err) {
			logger.Log.WithError(err).WithField("dataset_id", rec.ID).Warn("failed to remove dataset file")
		}
		s.cache.Invalidate(ctx, rec.ID)
		if err := s.repo.Delete(ctx, rec.ID); err != nil {
			return err
		}
	}
	if len(recs) > 0 {
		logger.Log.WithField("count", len(recs)).Info("expired datasets removed")
	}
	return nil
}

// applyQuery parses and applies a selection expression. Both failure
// modes are caller mistakes, so they wrap ErrInvalidQuery to keep them
// apart from storage faults.
func applyQuery(rs *synth.RecordSet, query string) (*synth.RecordSet, error) {
	parsed, err := dsl.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	out, err := analysis.Select(rs, parsed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	return out, nil
}

func summarize(id string, rs *synth.RecordSet, query string) models.DatasetStats {
	matrix, err := analysis.Correlate(rs, nil)
	if err != nil {
		// Correlate over the record set's own fields cannot miss.
		logger.Log.WithError(err).Warn("correlation summary failed")
	}
	return models.DatasetStats{
		DatasetID:   id,
		RowCount:    rs.Len(),
		Columns:     analysis.Describe(rs),
		Correlation: matrix,
		Query:       query,
	}
}

func configPayload(cfg synth.GenerationConfig) datatypes.JSONMap {
	data, err := json.Marshal(cfg)
	if err != nil {
		return datatypes.JSONMap{}
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return datatypes.JSONMap{}
	}
	return datatypes.JSONMap(payload)
}

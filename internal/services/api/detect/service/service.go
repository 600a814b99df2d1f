// Package service runs detections for the HTTP API and records their metrics
package service

import (
	"context"
	"sync"
	"time"

	"langid/internal/core/langid"
	"langid/internal/core/langmodel"
	perr "langid/internal/platform/errors"
	"langid/internal/platform/logger"
	"langid/internal/platform/metrics"
	"langid/internal/services/api/detect/domain"

	"github.com/google/uuid"
)

// Service is the detect service contract
type Service interface {
	domain.ServicePort
}

// Options tunes the service
type Options struct {
	MaxBatch int // texts per batch request
	Workers  int // batch concurrency, 0 means GOMAXPROCS
}

type svc struct {
	opt      Options
	detector func() (*langid.Detector, error)
	newID    func() string
}

// New builds the service over a model provider. The model loads on first use
func New(models *langmodel.Provider, opt Options) Service {
	if opt.MaxBatch <= 0 {
		opt.MaxBatch = 256
	}
	return &svc{
		opt: opt,
		detector: sync.OnceValues(func() (*langid.Detector, error) {
			return langid.NewFromProvider(models, langid.WithWorkers(opt.Workers))
		}),
		newID: uuid.NewString,
	}
}

// Detect runs one detection
func (s *svc) Detect(ctx context.Context, in domain.DetectInput) (langid.Result, error) {
	d, err := s.detector()
	if err != nil {
		return langid.Result{}, err
	}

	start := time.Now()
	res, err := d.Detect(in.Text, in.Options())
	if err != nil {
		return langid.Result{}, perr.WithOp(err, "detect")
	}
	elapsed := time.Since(start)

	top := res.Top()
	metrics.RecordDetection(top.Code, res.Reliable, res.TextBytes, elapsed)
	logger.C(ctx).Debug().
		Str("language", top.Code).
		Bool("reliable", res.Reliable).
		Int("bytes", res.TextBytes).
		Dur("took", elapsed).
		Msg("detected")
	return res, nil
}

// DetectBatch runs detections over many texts under one batch id
func (s *svc) DetectBatch(ctx context.Context, in domain.BatchInput) (domain.BatchOutput, error) {
	if len(in.Texts) > s.opt.MaxBatch {
		return domain.BatchOutput{}, perr.WithField(perr.InvalidArgf("at most %d texts per batch", s.opt.MaxBatch), "texts")
	}
	d, err := s.detector()
	if err != nil {
		return domain.BatchOutput{}, err
	}

	out := domain.BatchOutput{BatchID: s.newID()}
	ctx = logger.WithBatch(ctx, out.BatchID)
	start := time.Now()

	items, err := d.DetectBatch(ctx, in.Texts, in.Options())
	if err != nil {
		return domain.BatchOutput{}, perr.WithOp(err, "detect_batch")
	}
	elapsed := time.Since(start)
	metrics.RecordBatch(len(items))

	out.Items = make([]domain.BatchItem, len(items))
	failed := 0
	for i, it := range items {
		out.Items[i].Index = it.Index
		if it.Err != nil {
			w := perr.WireFrom(it.Err)
			out.Items[i].Error = &w
			failed++
			continue
		}
		res := it.Result
		out.Items[i].Result = &res
		metrics.RecordDetection(res.Top().Code, res.Reliable, res.TextBytes, elapsed/time.Duration(len(items)))
	}

	logger.C(ctx).Info().
		Int("texts", len(items)).
		Int("failed", failed).
		Dur("took", elapsed).
		Msg("batch detected")
	return out, nil
}

// Languages lists the model's language table
func (s *svc) Languages(_ context.Context) (domain.LanguagesOutput, error) {
	d, err := s.detector()
	if err != nil {
		return domain.LanguagesOutput{}, err
	}
	m := d.Model()
	return domain.LanguagesOutput{Model: m.Name, Revision: m.Revision, Languages: m.Languages()}, nil
}

package services

import (
	"context"

	"github.com/ivrlabs/callstore/internal/models"
	"github.com/ivrlabs/callstore/internal/store"
)

type CallService struct {
	store *store.Store
}

func NewCallService(st *store.Store) *CallService {
	return &CallService{store: st}
}

type CallListParams struct {
	Statuses       []string
	ResponseTypes  []string
	ActionRequired []string
	MinConfidence  *float64
	Limit          uint64
	Offset         uint64
}

type CallListResult struct {
	Calls []models.CallRecord
	Total int
}

func (s *CallService) List(ctx context.Context, params CallListParams) (*CallListResult, error) {
	opts := s.buildListOptions(params)

	calls, err := s.store.Calls().List(ctx, opts...)
	if err != nil {
		return nil, err
	}

	// Get total count without pagination
	countOpts := s.buildListOptions(CallListParams{
		Statuses:       params.Statuses,
		ResponseTypes:  params.ResponseTypes,
		ActionRequired: params.ActionRequired,
		MinConfidence:  params.MinConfidence,
	})
	total, err := s.store.Calls().Count(ctx, countOpts...)
	if err != nil {
		return nil, err
	}

	return &CallListResult{
		Calls: calls,
		Total: total,
	}, nil
}

func (s *CallService) Get(ctx context.Context, id int) (*models.CallRecord, error) {
	return s.store.Calls().Get(ctx, id)
}

func (s *CallService) Create(ctx context.Context, rec models.CallRecord) (*models.CallRecord, error) {
	return s.store.Calls().Create(ctx, rec)
}

func (s *CallService) Replace(ctx context.Context, id int, rec models.CallRecord) (*models.CallRecord, error) {
	return s.store.Calls().Replace(ctx, id, rec)
}

func (s *CallService) Patch(ctx context.Context, id int, patch models.CallPatch) (*models.CallRecord, error) {
	return s.store.Calls().Patch(ctx, id, patch)
}

func (s *CallService) Delete(ctx context.Context, id int) error {
	return s.store.Calls().Delete(ctx, id)
}

func (s *CallService) buildListOptions(params CallListParams) []store.ListOption {
	var opts []store.ListOption

	if len(params.Statuses) > 0 {
		opts = append(opts, store.ByStatuses(params.Statuses...))
	}
	if len(params.ResponseTypes) > 0 {
		opts = append(opts, store.ByResponseTypes(params.ResponseTypes...))
	}
	if len(params.ActionRequired) > 0 {
		opts = append(opts, store.ByActionRequired(params.ActionRequired...))
	}
	if params.MinConfidence != nil {
		opts = append(opts, store.ByMinConfidence(*params.MinConfidence))
	}

	if params.Limit > 0 {
		opts = append(opts, store.WithLimit(params.Limit))
	}
	if params.Offset > 0 {
		opts = append(opts, store.WithOffset(params.Offset))
	}

	return opts
}

/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	claimantModel "github.com/masonvector/claim-import-service/internal/claimant/model"
	claimantStore "github.com/masonvector/claim-import-service/internal/claimant/store"
	"github.com/masonvector/claim-import-service/internal/import_job/dedup"
	"github.com/masonvector/claim-import-service/internal/import_job/inference"
	"github.com/masonvector/claim-import-service/internal/import_job/mapping"
	"github.com/masonvector/claim-import-service/internal/import_job/model"
	"github.com/masonvector/claim-import-service/internal/import_job/parser"
	"github.com/masonvector/claim-import-service/internal/import_job/store"
	"github.com/masonvector/claim-import-service/internal/system/config"
	"github.com/masonvector/claim-import-service/internal/system/constants"
	errors2 "github.com/masonvector/claim-import-service/internal/system/errors"
	"github.com/masonvector/claim-import-service/internal/system/locks"
	"github.com/masonvector/claim-import-service/internal/system/log"
	"github.com/masonvector/claim-import-service/internal/system/metrics"
)

const (
	defaultPreviewLimit = 200
	ingestLockTTL       = 10 * time.Minute
)

// ImportServiceInterface drives an import from upload to ingest.
type ImportServiceInterface interface {
	Submit(ctx context.Context, req model.SubmitRequest) (*model.SubmitResult, error)
	Preview(ctx context.Context, req model.PreviewRequest) (*model.PreviewResult, error)
	ApplyMapping(ctx context.Context, importID string, m model.Mapping) (*model.ImportSummary, error)
	Ingest(ctx context.Context, importID, org string) (*model.IngestResult, error)
	Get(ctx context.Context, importID string) (*model.ImportSummary, error)
	CleanupExpired(ctx context.Context) (int, error)
}

// Settings are the import tunables the service needs.
type Settings struct {
	DefaultOrg         string
	PreviewLimit       int
	Retention          time.Duration
	TombstoneRetention time.Duration
}

// SettingsFromConfig picks the service settings out of the import section.
func SettingsFromConfig(cfg config.ImportConfig) Settings {
	return Settings{
		DefaultOrg:         cfg.DefaultOrg,
		PreviewLimit:       cfg.PreviewLimit,
		Retention:          cfg.Retention,
		TombstoneRetention: cfg.TombstoneRetention,
	}
}

// ImportService is the default implementation of ImportServiceInterface.
type ImportService struct {
	claimants claimantStore.ClaimantStore
	snapshots store.SnapshotStore
	engine    *inference.Engine
	locks     locks.DistributedLock
	settings  Settings
	now       func() time.Time
	newID     func() string
}

// Option customises an ImportService.
type Option func(*ImportService)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *ImportService) { s.now = now }
}

// WithIngestLock makes Ingest hold a lease on the import id for the whole batch.
func WithIngestLock(lock locks.DistributedLock) Option {
	return func(s *ImportService) { s.locks = lock }
}

// WithIDGenerator replaces the uuid generator used for import and claimant ids.
func WithIDGenerator(newID func() string) Option {
	return func(s *ImportService) { s.newID = newID }
}

// NewImportService wires the service to its stores.
func NewImportService(claimants claimantStore.ClaimantStore, snapshots store.SnapshotStore,
	engine *inference.Engine, settings Settings, opts ...Option) *ImportService {

	if settings.PreviewLimit <= 0 {
		settings.PreviewLimit = defaultPreviewLimit
	}
	if settings.DefaultOrg == "" {
		settings.DefaultOrg = constants.DefaultOrg
	}
	if settings.Retention <= 0 {
		settings.Retention = 24 * time.Hour
	}
	if settings.TombstoneRetention <= 0 {
		settings.TombstoneRetention = 7 * 24 * time.Hour
	}
	s := &ImportService{
		claimants: claimants,
		snapshots: snapshots,
		engine:    engine,
		settings:  settings,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ImportService) clock() time.Time {
	return s.now().UTC()
}

func (s *ImportService) orgOrDefault(org string) string {
	if org = strings.TrimSpace(org); org != "" {
		return org
	}
	return s.settings.DefaultOrg
}

// parseUpload turns raw upload bytes into a table with at least a header line.
func parseUpload(fileName string, content []byte) (model.Table, error) {
	if len(content) == 0 {
		return model.Table{}, errors2.NewClientError(errors2.NO_FILE, http.StatusBadRequest)
	}
	table, err := parser.Parse(fileName, content)
	if err != nil {
		return model.Table{}, errors2.NewClientErrorWithDescription(errors2.PARSE_FAILED, err.Error(),
			http.StatusUnprocessableEntity)
	}
	if len(table.Headers) == 0 {
		return model.Table{}, errors2.NewClientErrorWithDescription(errors2.PARSE_FAILED,
			"The file does not contain a header line.", http.StatusUnprocessableEntity)
	}
	return table, nil
}

// Submit parses an upload, computes its preview and persists it as a new snapshot.
func (s *ImportService) Submit(ctx context.Context, req model.SubmitRequest) (*model.SubmitResult, error) {

	logger := log.GetLogger().WithContext(ctx)
	org := s.orgOrDefault(req.Org)
	table, err := parseUpload(req.FileName, req.Content)
	if err != nil {
		return nil, err
	}

	suggested := s.engine.Infer(table.Headers)
	existing, err := s.claimants.ListByOrg(ctx, org)
	if err != nil {
		return nil, err
	}
	duplicates := detectDuplicates(table.Rows, inference.AutoMapping(suggested), existing)

	now := s.clock()
	snapshot := model.Snapshot{
		ImportID:         s.newID(),
		OrgHandle:        org,
		FileName:         req.FileName,
		RowCount:         len(table.Rows),
		Headers:          table.Headers,
		Preview:          s.previewOf(table.Rows),
		Rows:             table.Rows,
		SuggestedMapping: &suggested,
		Duplicates:       duplicates,
		State:            constants.ImportStateSubmitted,
		CreatedAt:        now,
		UpdatedAt:        now,
		ExpiresAt:        now.Add(s.settings.Retention),
		PurgeAt:          now.Add(s.settings.Retention + s.settings.TombstoneRetention),
	}
	if err := s.saveSnapshot(ctx, snapshot); err != nil {
		return nil, err
	}

	metrics.ImportSubmitted(snapshot.RowCount)
	s.audit(ctx, log.ActionSubmitImport, snapshot, map[string]interface{}{
		"file_name":  snapshot.FileName,
		"rows":       snapshot.RowCount,
		"duplicates": len(duplicates),
	})
	logger.Info("Import submitted", log.String("import_id", snapshot.ImportID), log.String("org", org),
		log.Int("rows", snapshot.RowCount))

	if _, err := s.CleanupExpired(ctx); err != nil {
		logger.Warn("Cleanup of expired import snapshots failed", log.Error(err))
	}

	return &model.SubmitResult{
		ImportID:         snapshot.ImportID,
		Total:            snapshot.RowCount,
		Preview:          snapshot.Preview,
		SuggestedMapping: suggested,
		Duplicates:       duplicates,
	}, nil
}

// Preview runs parsing, inference and duplicate detection without persisting anything.
func (s *ImportService) Preview(ctx context.Context, req model.PreviewRequest) (*model.PreviewResult, error) {

	org := s.orgOrDefault(req.Org)
	table, err := parseUpload(req.FileName, req.Content)
	if err != nil {
		return nil, err
	}

	suggested := s.engine.Infer(table.Headers)
	effective := inference.AutoMapping(suggested)
	if len(req.Mapping) > 0 {
		if err := s.validateMapping(req.Mapping, table.Headers); err != nil {
			return nil, err
		}
		effective = req.Mapping
	}

	existing, err := s.claimants.ListByOrg(ctx, org)
	if err != nil {
		return nil, err
	}

	return &model.PreviewResult{
		Total:            len(table.Rows),
		Preview:          s.previewOf(table.Rows),
		Duplicates:       detectDuplicates(table.Rows, effective, existing),
		SuggestedMapping: suggested,
		Mapping:          effective,
	}, nil
}

// ApplyMapping transforms every row of a live snapshot. An empty mapping accepts the suggested one.
func (s *ImportService) ApplyMapping(ctx context.Context, importID string, m model.Mapping) (*model.ImportSummary, error) {

	snapshot, err := s.loadLive(ctx, importID)
	if err != nil {
		return nil, err
	}
	if snapshot.State == constants.ImportStateIngested {
		return nil, errors2.NewClientErrorWithDescription(errors2.IMPORT_INVALID_STATE,
			"The import has already been ingested; upload the file again to change its mapping.", http.StatusConflict)
	}

	if len(m) == 0 {
		suggested := snapshot.SuggestedMapping
		if suggested == nil {
			inferred := s.engine.Infer(snapshot.Headers)
			suggested = &inferred
		}
		m = inference.AutoMapping(*suggested)
	} else if err := s.validateMapping(m, snapshot.Headers); err != nil {
		return nil, err
	}

	snapshot.Mapping = m
	snapshot.MappedRows = mapping.ApplyMappingToRows(snapshot.Rows, m)
	snapshot.State = constants.ImportStateMapped
	snapshot.UpdatedAt = s.clock()
	if err := s.saveSnapshot(ctx, *snapshot); err != nil {
		return nil, err
	}

	s.audit(ctx, log.ActionApplyImportMapping, *snapshot, map[string]interface{}{"mapping": m})
	summary := toSummary(*snapshot)
	return &summary, nil
}

// Ingest resolves every mapped row against the org's claimants, updating matches and creating the rest.
// Row failures are collected and do not stop the batch.
func (s *ImportService) Ingest(ctx context.Context, importID, org string) (*model.IngestResult, error) {

	started := time.Now()
	defer func() { metrics.ObserveIngest(time.Since(started)) }()

	snapshot, err := s.loadLive(ctx, importID)
	if err != nil {
		return nil, err
	}
	if snapshot.State != constants.ImportStateMapped && snapshot.State != constants.ImportStateIngested {
		return nil, errors2.NewClientErrorWithDescription(errors2.IMPORT_INVALID_STATE,
			"A mapping must be applied before the import can be ingested.", http.StatusConflict)
	}
	if org = strings.TrimSpace(org); org == "" {
		org = snapshot.OrgHandle
	}

	// Writes already made are not rolled back, so a dropped request must not cut the batch short.
	ctx = context.WithoutCancel(ctx)
	if s.locks != nil {
		release, err := s.acquireIngestLease(ctx, snapshot.ImportID)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := release(ctx); err != nil {
				log.GetLogger().WithContext(ctx).Warn("Failed to release ingest lock",
					log.String("import_id", snapshot.ImportID), log.Error(err))
			}
		}()
	}

	existing, err := s.claimants.ListByOrg(ctx, org)
	if err != nil {
		return nil, err
	}

	result := model.IngestResult{Errors: []string{}}
	for i, row := range snapshot.MappedRows {
		var outcome string
		existing, outcome, err = s.ingestRow(ctx, row, org, existing)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %s", i+1, rowErrorMessage(err)))
			metrics.RowIngested(metrics.OutcomeError)
			continue
		}
		if outcome == metrics.OutcomeCreated {
			result.Created++
		} else {
			result.Updated++
		}
		metrics.RowIngested(outcome)
	}

	snapshot.IngestResult = &result
	snapshot.State = constants.ImportStateIngested
	snapshot.UpdatedAt = s.clock()
	if err := s.saveSnapshot(ctx, *snapshot); err != nil {
		return nil, err
	}

	s.audit(ctx, log.ActionIngestImport, *snapshot, map[string]interface{}{
		"org":     org,
		"created": result.Created,
		"updated": result.Updated,
		"errors":  len(result.Errors),
	})
	log.GetLogger().WithContext(ctx).Info("Import ingested", log.String("import_id", importID),
		log.Int("created", result.Created), log.Int("updated", result.Updated), log.Int("errors", len(result.Errors)))
	return &result, nil
}

// ingestRow updates the claimant the row duplicates or creates a new one, and returns the
// local claimant list with the change applied.
func (s *ImportService) ingestRow(ctx context.Context, row model.Row, org string,
	existing []claimantModel.Claimant) ([]claimantModel.Claimant, string, error) {

	incoming, err := mapping.ProjectClaimant(row, org)
	if err != nil {
		return existing, "", err
	}
	now := s.clock()

	if match := dedup.FindDuplicate(mapping.IdentityOf(row), existing); match != nil {
		merged := mapping.MergeClaimant(match.Record, incoming)
		merged.UpdatedAt = now
		if err := s.claimants.Update(ctx, merged); err != nil {
			return existing, "", err
		}
		existing[match.RecordIndex] = merged
		return existing, metrics.OutcomeUpdated, nil
	}

	if incoming.ID == "" {
		incoming.ID = s.newID()
	}
	incoming.CreatedAt = now
	incoming.UpdatedAt = now
	if err := s.claimants.Create(ctx, incoming); err != nil {
		return existing, "", err
	}
	return append(existing, incoming), metrics.OutcomeCreated, nil
}

// Get returns the result view data of a live import.
func (s *ImportService) Get(ctx context.Context, importID string) (*model.ImportSummary, error) {

	snapshot, err := s.loadLive(ctx, importID)
	if err != nil {
		return nil, err
	}
	summary := toSummary(*snapshot)
	return &summary, nil
}

// CleanupExpired replaces snapshots past their retention window with tombstones and returns how
// many it replaced. Tombstones are dropped by the store at PurgeAt.
func (s *ImportService) CleanupExpired(ctx context.Context) (int, error) {

	ids, err := s.snapshots.ListIDs(ctx)
	if err != nil {
		return 0, errors2.NewServerErrorWithDescription(errors2.CLEANUP_IMPORT_SNAPSHOTS,
			"Failed to list import snapshots.", err)
	}

	now := s.clock()
	expired := 0
	var failures []error
	for _, id := range ids {
		snapshot, err := s.snapshots.Get(ctx, id)
		if err != nil {
			if !errors.Is(err, store.ErrSnapshotNotFound) {
				failures = append(failures, err)
			}
			continue
		}
		if snapshot.Expired || now.Before(snapshot.ExpiresAt) {
			continue
		}
		if err := s.snapshots.Save(ctx, snapshot.Tombstone()); err != nil {
			failures = append(failures, err)
			continue
		}
		expired++
		s.auditAs(ctx, log.InitiatorTypeSystem, log.ActionExpireImport, *snapshot, nil)
	}

	if expired > 0 {
		metrics.SnapshotsExpired(expired)
		log.GetLogger().Info("Expired import snapshots", log.Int("count", expired))
	}
	if len(failures) > 0 {
		return expired, errors2.NewServerErrorWithDescription(errors2.CLEANUP_IMPORT_SNAPSHOTS,
			fmt.Sprintf("%d snapshot(s) could not be expired.", len(failures)), errors.Join(failures...))
	}
	return expired, nil
}

// loadLive reads a snapshot and tells an unknown id apart from an expired one.
func (s *ImportService) loadLive(ctx context.Context, importID string) (*model.Snapshot, error) {
	importID = strings.TrimSpace(importID)
	if importID == "" {
		return nil, errors2.NewClientError(errors2.IMPORT_ID_REQUIRED, http.StatusBadRequest)
	}

	snapshot, err := s.snapshots.Get(ctx, importID)
	if err != nil {
		if errors.Is(err, store.ErrSnapshotNotFound) {
			return nil, errors2.NewClientErrorWithDescription(errors2.IMPORT_NOT_FOUND,
				fmt.Sprintf("No import exists with id '%s'.", importID), http.StatusNotFound)
		}
		return nil, errors2.NewServerErrorWithDescription(errors2.FETCH_IMPORT_SNAPSHOT,
			fmt.Sprintf("Failed to read import snapshot: %s", importID), err)
	}
	if snapshot.IsExpired(s.clock()) {
		return nil, errors2.NewClientError(errors2.IMPORT_EXPIRED, http.StatusGone)
	}
	return snapshot, nil
}

func (s *ImportService) saveSnapshot(ctx context.Context, snapshot model.Snapshot) error {
	if err := s.snapshots.Save(ctx, snapshot); err != nil {
		return errors2.NewServerErrorWithDescription(errors2.SAVE_IMPORT_SNAPSHOT,
			fmt.Sprintf("Failed to save import snapshot: %s", snapshot.ImportID), err)
	}
	return nil
}

// validateMapping checks targets and that every mapped header belongs to the file.
func (s *ImportService) validateMapping(m model.Mapping, headers []string) error {
	if err := mapping.ValidateMapping(m, s.engine); err != nil {
		return err
	}
	known := make(map[string]bool, len(headers))
	for _, h := range headers {
		known[h] = true
	}
	var unknown []string
	for header := range m {
		if !known[header] {
			unknown = append(unknown, fmt.Sprintf("'%s'", header))
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return errors2.NewClientErrorWithDescription(errors2.INVALID_MAPPING,
			"Mapping refers to headers that are not in the file: "+strings.Join(unknown, ", "), http.StatusBadRequest)
	}
	return nil
}

func (s *ImportService) previewOf(rows []model.Row) []model.Row {
	if len(rows) <= s.settings.PreviewLimit {
		return rows
	}
	return rows[:s.settings.PreviewLimit]
}

func (s *ImportService) audit(ctx context.Context, action string, snapshot model.Snapshot, data interface{}) {
	s.auditAs(ctx, log.InitiatorTypeUser, action, snapshot, data)
}

func (s *ImportService) auditAs(ctx context.Context, initiatorType, action string, snapshot model.Snapshot,
	data interface{}) {

	logger := log.GetLogger().WithContext(ctx)
	logger.Audit(log.AuditEvent{
		InitiatorID:   snapshot.OrgHandle,
		InitiatorType: initiatorType,
		TargetID:      snapshot.ImportID,
		TargetType:    log.TargetTypeImport,
		ActionID:      action,
		Data:          data,
	})
}

// detectDuplicates flags rows that match an existing claimant once mapped. Row numbers are 1-based.
func detectDuplicates(rows []model.Row, m model.Mapping, existing []claimantModel.Claimant) []model.DuplicateEntry {
	identities := make([]dedup.Identity, len(rows))
	for i, row := range rows {
		identities[i] = mapping.IdentityOf(mapping.ApplyMapping(row, m))
	}

	matches := dedup.FindPotentialDuplicates(identities, existing)
	entries := make([]model.DuplicateEntry, 0, len(matches))
	for _, match := range matches {
		entries = append(entries, model.DuplicateEntry{
			Row:      match.CandidateIndex + 1,
			Reason:   match.Reason,
			Score:    match.Score,
			Claimant: match.Record.Summary(),
		})
		metrics.DuplicateFound(match.Reason)
	}
	return entries
}

func (s *ImportService) acquireIngestLease(ctx context.Context, importID string) (func(context.Context) error, error) {
	release, acquired, err := s.locks.Acquire(ctx, "ingest:"+importID, ingestLockTTL)
	if err != nil {
		return nil, errors2.NewServerErrorWithDescription(errors2.ACQUIRE_LOCK,
			fmt.Sprintf("Failed to lock import %s for ingest.", importID), err)
	}
	if !acquired {
		return nil, errors2.NewClientError(errors2.INGEST_IN_PROGRESS, http.StatusConflict)
	}
	return release, nil
}

func rowErrorMessage(err error) string {
	var clientError *errors2.ClientError
	if errors.As(err, &clientError) {
		if clientError.Description != "" {
			return clientError.Description
		}
		return clientError.Message
	}
	if errors.Is(err, claimantStore.ErrDuplicateClaimant) || errors.Is(err, claimantStore.ErrClaimantNotFound) {
		return err.Error()
	}
	var serverError *errors2.ServerError
	if errors.As(err, &serverError) {
		log.GetLogger().Error(serverError.Message, log.String("description", serverError.Description),
			log.Error(serverError.Err))
		return serverError.Message
	}
	log.GetLogger().Error("Unexpected error while ingesting row", log.Error(err))
	return "unexpected error"
}

func toSummary(snapshot model.Snapshot) model.ImportSummary {
	preview := snapshot.Preview
	if preview == nil {
		preview = []model.Row{}
	}
	duplicates := snapshot.Duplicates
	if duplicates == nil {
		duplicates = []model.DuplicateEntry{}
	}
	return model.ImportSummary{
		ImportID:         snapshot.ImportID,
		Org:              snapshot.OrgHandle,
		FileName:         snapshot.FileName,
		State:            snapshot.State,
		Total:            snapshot.RowCount,
		Headers:          snapshot.Headers,
		Preview:          preview,
		SuggestedMapping: snapshot.SuggestedMapping,
		Duplicates:       duplicates,
		Mapping:          snapshot.Mapping,
		Results:          snapshot.IngestResult,
		ExpiresAt:        snapshot.ExpiresAt.Format(time.RFC3339),
	}
}

package listings

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"listing-backend/internal/budget"
	"listing-backend/internal/listings/validators"
	"listing-backend/internal/llm"
	"listing-backend/internal/prompts"
	"listing-backend/internal/shared/metrics"
	"listing-backend/internal/shared/telemetry"
)

const maxFieldAttempts = 2

// Service orchestrates the listing generation pipeline: budget check,
// dump cleaning, preflight guards, classifier, per-field generation with
// retries, validation and persistence.
type Service struct {
	Repo    Repo
	LLM     llm.Client
	Prompts *prompts.Library
	Budget  *budget.Guard
}

// NewService constructs a Service.
func NewService(repo Repo, client llm.Client, lib *prompts.Library, guard *budget.Guard) *Service {
	return &Service{Repo: repo, LLM: client, Prompts: lib, Budget: guard}
}

// Get returns a run by ID.
func (s *Service) Get(ctx context.Context, runID string) (Run, error) {
	return s.Repo.GetByID(ctx, runID)
}

// List returns runs for a user, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Run, error) {
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Generate runs the full pipeline for a raw dump and returns the
// completed run. On pipeline failure the returned error is a
// *PipelineError and the run (when already persisted) carries the
// failure state, including any validation warnings.
func (s *Service) Generate(ctx context.Context, userID, rawText string, opts Options) (Run, error) {
	start := time.Now()
	metrics.IncGenerationStarted()

	status, err := s.Budget.Precheck(ctx)
	if err != nil {
		metrics.IncGenerationFailed()
		return Run{}, pipelineErr(ErrorCodeInternal, "budget check failed", err)
	}
	if !status.OK && status.Hard {
		metrics.IncGenerationFailed()
		return Run{}, pipelineErr(ErrorCodeBudgetExhausted, "Daily budget reached. Try again later.", nil)
	}

	effectiveText, cleaningSkipped := CleanDump(rawText)
	if cleaningSkipped {
		telemetry.Info("run.cleaning_skipped", map[string]any{"user_id": userID})
	}
	if effectiveText == "" {
		metrics.IncGenerationFailed()
		return Run{}, pipelineErr(ErrorCodeGenerationFailed, "input is empty", nil)
	}

	if msg := PreflightCheck(effectiveText); msg != "" {
		metrics.IncGenerationFailed()
		return Run{}, pipelineErr(ErrorCodeGenerationFailed, msg, nil)
	}

	runID := strings.TrimSpace(opts.RunID)
	if runID == "" {
		runID = uuid.NewString()
	}
	run := Run{
		ID:        runID,
		UserID:    userID,
		Status:    StatusProcessing,
		RawText:   rawText,
		Options:   opts,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, run); err != nil {
		metrics.IncGenerationFailed()
		return Run{}, pipelineErr(ErrorCodeStorage, "failed to persist run", err)
	}
	telemetry.Info("run.status", map[string]any{"run_id": run.ID, "status": run.Status})

	var stages []StageUsage

	classifier, perr := s.runClassifier(ctx, &run, effectiveText, opts, &stages)
	if perr != nil {
		return s.failRun(ctx, run, start, stages, perr)
	}
	// Request options override what the classifier inferred.
	if opts.AllowHandmade != nil {
		classifier.AllowHandmade = *opts.AllowHandmade
	}
	if opts.GiftMode != nil {
		classifier.GiftMode = *opts.GiftMode
	}
	run.Classifier = &classifier

	fields := Fields{}

	title, perr := s.generateTitle(ctx, &run, rawText, classifier, classifier.AllowHandmade, &stages)
	if perr != nil {
		return s.failRun(ctx, run, start, stages, perr)
	}
	fields.Title = title

	tags, perr := s.generateTags(ctx, &run, rawText, classifier, fields.Title, &stages)
	if perr != nil {
		return s.failRun(ctx, run, start, stages, perr)
	}
	fields.Tags = tags

	description, perr := s.generateDescription(ctx, &run, rawText, classifier, fields, &stages)
	if perr != nil {
		return s.failRun(ctx, run, start, stages, perr)
	}
	fields.Description = description
	run.Fields = &fields

	vr := validators.RunAll(validators.Output{
		Title:       fields.Title,
		HasTitle:    true,
		Tags:        fields.Tags,
		HasTags:     true,
		Description: fields.Description,
	}, validators.Context{
		GiftMode:        classifier.GiftMode,
		AllowHandmade:   classifier.AllowHandmade,
		Audience:        classifier.Audience,
		FallbackProfile: classifier.FallbackProfile,
	})
	run.Validation = &vr
	run.QualityScore = validators.QualityScore(&vr)
	metrics.ObserveQualityScore(float64(run.QualityScore))
	telemetry.Info("validation.result", map[string]any{
		"run_id":        run.ID,
		"is_valid":      vr.IsValid,
		"is_soft_fail":  vr.IsSoftFail,
		"warnings":      len(vr.Warnings),
		"quality_score": run.QualityScore,
	})

	if hard, ok := validators.FirstHardWarning(vr.Warnings); ok && !opts.BypassHardFail {
		msg := hardFailMessage(hard)
		return s.failRun(ctx, run, start, stages, pipelineErr(ErrorCodeValidationHard, msg, nil))
	}

	durationMs := float64(time.Since(start)) / float64(time.Millisecond)
	run.Summary = newRunSummary(stages, durationMs)
	run.Status = StatusCompleted
	if err := s.Repo.Update(ctx, run); err != nil {
		metrics.IncGenerationFailed()
		return run, pipelineErr(ErrorCodeStorage, "failed to persist run", err)
	}

	metrics.IncGenerationCompleted()
	metrics.ObserveGenerationDurationMs(durationMs)
	if vr.IsSoftFail {
		metrics.IncGenerationSoftFail()
	}
	telemetry.Info("run.summary", map[string]any{
		"run_id":        run.ID,
		"status":        run.Status,
		"tokens_in":     run.Summary.TokensIn,
		"tokens_out":    run.Summary.TokensOut,
		"cost_usd":      run.Summary.CostUSD,
		"duration_ms":   durationMs,
		"quality_score": run.QualityScore,
		"warnings":      len(vr.Warnings),
	})
	return run, nil
}

func (s *Service) runClassifier(ctx context.Context, run *Run, effectiveText string, opts Options, stages *[]StageUsage) (ClassifierContext, *PipelineError) {
	prompt, err := s.Prompts.Get(prompts.StageClassifier)
	if err != nil {
		return ClassifierContext{}, pipelineErr(ErrorCodeConfig, "Classifier prompt validation failed", err)
	}

	res, err := s.LLM.Classify(ctx, llm.ClassifyRequest{
		Prompt:       prompt.Text,
		RawText:      effectiveText,
		PersonaLevel: opts.PersonaLevel,
	})
	if err != nil {
		return ClassifierContext{}, pipelineErr(ErrorCodeInternal, "classifier request failed", err)
	}
	s.recordStage(ctx, run, stages, "classifier", res.Model, res.TokensIn, res.TokensOut)

	classifier, notes, err := ParseClassifierOutput(res.Raw)
	if err != nil {
		return ClassifierContext{}, pipelineErr(ErrorCodeClassifierSchema, "classifier response was not valid JSON", err)
	}
	if len(notes) > 0 {
		return ClassifierContext{}, pipelineErr(ErrorCodeClassifierSchema,
			"Classifier output validation failed: "+strings.Join(notes, ", "), nil)
	}
	return classifier, nil
}

func (s *Service) generateTitle(ctx context.Context, run *Run, rawText string, classifier ClassifierContext, allowHandmade bool, stages *[]StageUsage) (string, *PipelineError) {
	prompt, err := s.Prompts.Get(prompts.StageTitle)
	if err != nil {
		return "", pipelineErr(ErrorCodeConfig, "Title prompt validation failed", err)
	}

	contextBlock := s.Prompts.Rules("title")
	if classifier.GiftMode {
		contextBlock += "\n\n[GIFT MODE ACTIVE] This is explicitly marketed as a gift. Use gift-friendly language and hooks."
	}
	if len(classifier.Audience) > 0 {
		contextBlock += "\n\n[TARGET AUDIENCE] Primary: " + classifier.Audience[0]
		if len(classifier.Audience) > 1 {
			contextBlock += ", Secondary: " + strings.Join(classifier.Audience[1:], ", ")
		}
	}

	title, perr := s.generateWithRetry(ctx, run, llm.FieldTitle, prompt.Text, contextBlock, rawText, stages,
		func(res llm.FieldResult) (string, StructuralResult) {
			return res.Text, ValidateTitleStructure(res.Text)
		})
	if perr != nil {
		return "", perr
	}

	if !allowHandmade {
		title = RewriteHandmade(title)
	}
	return title, nil
}

func (s *Service) generateTags(ctx context.Context, run *Run, rawText string, classifier ClassifierContext, title string, stages *[]StageUsage) ([]string, *PipelineError) {
	prompt, err := s.Prompts.Get(prompts.StageTags)
	if err != nil {
		return nil, pipelineErr(ErrorCodeConfig, "Tags prompt validation failed", err)
	}

	contextBlock := s.Prompts.Rules("tags") + "\nTITLE: " + title
	if classifier.GiftMode {
		contextBlock += "\n\n[GIFT MODE] Include gift-related tags (gift, present, for her, for him, etc.)"
	}
	if len(classifier.Audience) > 0 {
		contextBlock += "\n\n[AUDIENCES] Target: " + strings.Join(classifier.Audience, ", ") + " - include audience-specific tags"
	}

	var tags []string
	_, perr := s.generateWithRetry(ctx, run, llm.FieldTags, prompt.Text, contextBlock, rawText, stages,
		func(res llm.FieldResult) (string, StructuralResult) {
			tags = res.Tags
			return "", ValidateTagsStructure(res.Tags)
		})
	if perr != nil {
		return nil, perr
	}

	deduped := validators.DedupeByStem(tags)
	if len(deduped.Dropped) > 0 {
		telemetry.Info("tags.deduped", map[string]any{
			"run_id":  run.ID,
			"dropped": len(deduped.Dropped),
		})
	}
	return deduped.Unique, nil
}

func (s *Service) generateDescription(ctx context.Context, run *Run, rawText string, classifier ClassifierContext, fields Fields, stages *[]StageUsage) (string, *PipelineError) {
	prompt, err := s.Prompts.Get(prompts.StageDescription)
	if err != nil {
		return "", pipelineErr(ErrorCodeConfig, "Description prompt validation failed", err)
	}

	keyTerms := fields.Tags
	if len(keyTerms) > 5 {
		keyTerms = keyTerms[:5]
	}
	contextBlock := s.Prompts.Rules("description") +
		"\nTITLE: " + fields.Title +
		"\nKEY_TERMS: " + strings.Join(keyTerms, ", ")
	if classifier.GiftMode {
		contextBlock += "\n\n[GIFT MODE] Emphasize gift-giving benefits, occasions, and recipient satisfaction."
	}
	if len(classifier.Audience) > 0 {
		contextBlock += "\n\n[TARGET AUDIENCES] Write for: " + strings.Join(classifier.Audience, " and ") + ". Address their specific needs and interests."
	}
	if len(classifier.Audience) > 1 {
		contextBlock += "\n\n[COMPOSITE AUDIENCE] This product appeals to multiple audiences - highlight versatility and broad appeal."
	}

	return s.generateWithRetry(ctx, run, llm.FieldDescription, prompt.Text, contextBlock, rawText, stages,
		func(res llm.FieldResult) (string, StructuralResult) {
			return res.Text, ValidateDescriptionStructure(res.Text)
		})
}

// generateWithRetry runs the two-attempt loop for one field. The check
// callback extracts the usable value and validates its structure.
func (s *Service) generateWithRetry(ctx context.Context, run *Run, field, prompt, contextBlock, rawText string, stages *[]StageUsage, check func(llm.FieldResult) (string, StructuralResult)) (string, *PipelineError) {
	var lastReason string
	for attempt := 0; attempt < maxFieldAttempts; attempt++ {
		res, err := s.LLM.GenerateField(ctx, llm.FieldRequest{
			Field:        field,
			Prompt:       prompt,
			ContextBlock: contextBlock,
			RawInput:     rawText,
			Attempt:      attempt,
		})
		if err != nil {
			lastReason = err.Error()
			telemetry.Error("field.attempt_failed", map[string]any{
				"run_id":  run.ID,
				"field":   field,
				"attempt": attempt,
				"error":   lastReason,
			})
			continue
		}

		value, structural := check(res)
		s.recordStage(ctx, run, stages, field, res.Model, res.TokensIn, res.TokensOut)
		if structural.Valid {
			telemetry.Info("field.generated", map[string]any{
				"run_id":     run.ID,
				"field":      field,
				"attempt":    attempt,
				"tokens_in":  res.TokensIn,
				"tokens_out": res.TokensOut,
				"model":      res.Model,
			})
			return value, nil
		}
		lastReason = structural.Reason
		telemetry.Info("field.structural_retry", map[string]any{
			"run_id":  run.ID,
			"field":   field,
			"attempt": attempt,
			"notes":   structural.Notes,
		})
	}
	return "", pipelineErr(ErrorCodeGenerationFailed,
		fmt.Sprintf("%s generation failed: %s", capitalize(field), lastReason), nil)
}

func (s *Service) recordStage(ctx context.Context, run *Run, stages *[]StageUsage, stage, model string, tokensIn, tokensOut int) {
	cost := EstimateCost(model, tokensIn, tokensOut)
	*stages = append(*stages, StageUsage{
		Stage:     stage,
		Model:     model,
		TokensIn:  tokensIn,
		TokensOut: tokensOut,
		CostUSD:   cost,
	})
	if _, err := s.Budget.Add(ctx, cost); err != nil {
		telemetry.Error("budget.add_failed", map[string]any{"run_id": run.ID, "error": err.Error()})
	}
}

func (s *Service) failRun(ctx context.Context, run Run, start time.Time, stages []StageUsage, perr *PipelineError) (Run, error) {
	metrics.IncGenerationFailed()
	durationMs := float64(time.Since(start)) / float64(time.Millisecond)
	run.Summary = newRunSummary(stages, durationMs)
	run.Status = StatusFailed
	run.ErrorCode = perr.Code
	run.ErrorMessage = sanitizeMessage(perr.Message)
	if err := s.Repo.Update(ctx, run); err != nil {
		telemetry.Error("run.persist_failed", map[string]any{"run_id": run.ID, "error": err.Error()})
	}
	telemetry.Error("run.status", map[string]any{
		"run_id": run.ID,
		"status": run.Status,
		"code":   perr.Code,
		"error":  perr.Message,
	})
	return run, perr
}

var (
	handmadeRe     = regexp.MustCompile(`(?i)\bhand[-\s]?made\b`)
	fieldHintRe    = regexp.MustCompile(`(?i)(title|tag|description)`)
	fieldHintNames = map[string]string{"title": "title", "tag": "tags", "description": "description"}
)

// RewriteHandmade replaces handmade claims with "Artisan". Applied when
// the shop is not allowed to market items as handmade.
func RewriteHandmade(title string) string {
	return handmadeRe.ReplaceAllString(title, "Artisan")
}

func hardFailMessage(w validators.Warning) string {
	field := w.Field
	if field == "" {
		if m := fieldHintRe.FindString(strings.ToLower(w.Message)); m != "" {
			field = fieldHintNames[m]
		}
	}
	pretty := "Validation"
	if field != "" {
		pretty = capitalize(field)
	}
	msg := w.Message
	if msg == "" {
		msg = "invalid"
	}
	return fmt.Sprintf("%s generation failed: %s", pretty, msg)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

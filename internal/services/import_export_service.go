package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/quizhub/quiz-service/internal/models"
	"github.com/quizhub/quiz-service/internal/repositories"
	"github.com/quizhub/quiz-service/internal/validator"
	"github.com/xuri/excelize/v2"
)

const (
	questionSheet   = "Questions"
	optionSeparator = '|'
	tagSeparator    = ','
	cellEscape      = '\\'

	// MaxImportBytes caps the size of an uploaded workbook.
	MaxImportBytes = 10 << 20
)

// Column layout shared by export and import.
var questionColumns = []string{
	"Question", "Options", "Correct Answer", "Category", "Difficulty",
	"Time Limit", "Explanation", "Tags", "Approved",
}

// importExportService moves questions in and out of .xlsx workbooks
type importExportService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	maxBytes  int64
}

func NewImportExportService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) ImportExportService {
	return &importExportService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		maxBytes:  MaxImportBytes,
	}
}

// ===== EXPORT OPERATIONS =====

func (s *importExportService) ExportQuestions(ctx context.Context, query ExportQuery) ([]byte, error) {
	questions, err := s.repo.Question().List(ctx, repositories.QuestionFilters{
		Category:     query.Category,
		OnlyApproved: query.OnlyApproved,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load questions for export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), questionSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	header := make([]interface{}, len(questionColumns))
	for i, c := range questionColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(questionSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, q := range questions {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			q.Question,
			joinCell(q.Options, optionSeparator),
			q.CorrectAnswer,
			q.Category,
			q.Difficulty,
			q.TimeLimit,
			q.Explanation,
			joinCell(q.Tags, tagSeparator),
			q.IsApproved,
		}
		if err := f.SetSheetRow(questionSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.InfoContext(ctx, "Questions exported", "count", len(questions))
	return buf.Bytes(), nil
}

// ===== IMPORT OPERATIONS =====

// ImportQuestions creates one approved question per valid row of the first
// sheet. Invalid rows are reported and skipped; they never abort the import.
func (s *importExportService) ImportQuestions(ctx context.Context, r io.Reader, adminID string) (*models.ImportResult, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, NewValidationError("file", fmt.Sprintf("must not exceed %d bytes", s.maxBytes), nil)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, NewValidationError("file", "must be an .xlsx workbook", nil)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, NewValidationError("file", "workbook has no sheets", nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read Excel rows: %w", err)
	}
	if len(rows) < 1 {
		return nil, NewValidationError("file", "workbook must have a header row", nil)
	}

	headerMap := make(map[string]int)
	for i, h := range rows[0] {
		headerMap[normalizeHeader(h)] = i
	}
	for _, required := range []string{"question", "options", "correctanswer", "category", "difficulty"} {
		if _, ok := headerMap[required]; !ok {
			return nil, NewValidationError("file", "missing column "+required, nil)
		}
	}

	result := &models.ImportResult{
		CreatedQuestions: []string{},
		Errors:           []models.ImportRowError{},
	}

	for i, row := range rows[1:] {
		rowNum := i + 2
		if isBlankRow(row) {
			continue
		}
		result.TotalRows++

		req, rowErrs := parseQuestionRow(row, headerMap, rowNum)
		if len(rowErrs) == 0 {
			rowErrs = s.validateRow(req, adminID, rowNum)
		}
		if len(rowErrs) > 0 {
			result.ErrorCount++
			result.Errors = append(result.Errors, rowErrs...)
			continue
		}

		question := newQuestion(req)
		question.IsApproved = true
		question.CreatedBy = &adminID
		if err := s.repo.Question().Create(ctx, question); err != nil {
			return nil, fmt.Errorf("failed to create question from row %d: %w", rowNum, err)
		}

		result.SuccessCount++
		result.CreatedQuestions = append(result.CreatedQuestions, question.ID)
	}

	s.logger.InfoContext(ctx, "Excel import completed",
		"total_rows", result.TotalRows,
		"success_count", result.SuccessCount,
		"error_count", result.ErrorCount)

	return result, nil
}

func (s *importExportService) validateRow(req *CreateQuestionRequest, adminID string, rowNum int) []models.ImportRowError {
	err := s.validator.ValidateStruct(req)
	if err == nil {
		q := newQuestion(req)
		q.CreatedBy = &adminID
		err = s.validator.Validate(q)
	}
	if err == nil {
		return nil
	}

	ve, ok := err.(ValidationErrors)
	if !ok {
		return []models.ImportRowError{{Row: rowNum, Field: "row", Message: err.Error()}}
	}
	out := make([]models.ImportRowError, 0, len(ve))
	for _, e := range ve {
		out = append(out, models.ImportRowError{Row: rowNum, Field: e.Field, Message: e.Message})
	}
	return out
}

func parseQuestionRow(row []string, headerMap map[string]int, rowNum int) (*CreateQuestionRequest, []models.ImportRowError) {
	get := func(name string) string {
		if idx, ok := headerMap[name]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	req := &CreateQuestionRequest{
		Question:      get("question"),
		Options:       splitCell(get("options"), optionSeparator),
		CorrectAnswer: get("correctanswer"),
		Category:      get("category"),
		Difficulty:    get("difficulty"),
		Explanation:   get("explanation"),
		Tags:          splitCell(get("tags"), tagSeparator),
	}

	if raw := get("timelimit"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil {
			return nil, []models.ImportRowError{{Row: rowNum, Field: "timeLimit", Message: "must be a whole number of seconds"}}
		}
		req.TimeLimit = &seconds
	}
	return req, nil
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(h), " ", ""))
}

// joinCell writes a list into one cell. Separators and escapes inside a
// value are backslash-escaped so splitCell restores the exact list.
func joinCell(values []string, sep rune) string {
	var b strings.Builder
	for i, v := range values {
		if i > 0 {
			b.WriteRune(sep)
		}
		for _, r := range v {
			if r == sep || r == cellEscape {
				b.WriteRune(cellEscape)
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// splitCell is the inverse of joinCell. Parts are trimmed and empty ones
// dropped, so hand-written cells like "a | b" also parse.
func splitCell(raw string, sep rune) []string {
	out := []string{}
	var part strings.Builder
	flush := func() {
		if p := strings.TrimSpace(part.String()); p != "" {
			out = append(out, p)
		}
		part.Reset()
	}

	escaped := false
	for _, r := range raw {
		switch {
		case escaped:
			part.WriteRune(r)
			escaped = false
		case r == cellEscape:
			escaped = true
		case r == sep:
			flush()
		default:
			part.WriteRune(r)
		}
	}
	if escaped {
		part.WriteRune(cellEscape)
	}
	flush()
	return out
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

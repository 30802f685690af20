// Package packing bundles document reading, BOM extraction, the review
// round-trip, and form generation behind one facade the CLI drives.
package packing

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bomtools/dd1750/internal/bom"
	"github.com/bomtools/dd1750/internal/form"
	"github.com/bomtools/dd1750/internal/review"
)

// DefaultMaxFileSize caps source documents at 100MB.
const DefaultMaxFileSize = 100 * 1024 * 1024

// Service ties the extraction and generation pipelines together.
type Service struct {
	maxFileSize  int64
	templatePath string
	logger       *zap.Logger
}

// NewService creates a service with the specified constraints. A
// non-positive size falls back to DefaultMaxFileSize; a nil logger is
// replaced with a no-op one.
func NewService(maxFileSize int64, templatePath string, logger *zap.Logger) *Service {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		maxFileSize:  maxFileSize,
		templatePath: templatePath,
		logger:       logger,
	}
}

// Request Types

// ExtractFileRequest represents a request to extract BOM items from a PDF.
type ExtractFileRequest struct {
	Path      string `json:"path"`
	StartPage int    `json:"start_page"`
}

// GenerateFileRequest represents a request to render items onto the form.
type GenerateFileRequest struct {
	Items      []bom.Item      `json:"items"`
	Header     form.HeaderInfo `json:"header"`
	OutputPath string          `json:"output_path"`
}

// ConvertFileRequest represents a one-shot extract-and-generate request.
type ConvertFileRequest struct {
	Path       string          `json:"path"`
	OutputPath string          `json:"output_path"`
	StartPage  int             `json:"start_page"`
	Header     form.HeaderInfo `json:"header"`
}

// Response Types

// ExtractFileResult represents the result of an extraction run.
type ExtractFileResult struct {
	Path    string          `json:"path"`
	Session *review.Session `json:"session"`
}

// GenerateFileResult represents the result of a generation run.
type GenerateFileResult struct {
	OutputPath string `json:"output_path"`
	Items      int    `json:"items"`
	Pages      int    `json:"pages"`
}

// ConvertFileResult represents the result of a one-shot conversion.
type ConvertFileResult struct {
	OutputPath string   `json:"output_path"`
	Items      int      `json:"items"`
	Pages      int      `json:"pages"`
	Format     string   `json:"format"`
	Warnings   []string `json:"warnings,omitempty"`
	Errors     []string `json:"errors,omitempty"`
}

// ExtractFile pulls packing-list items out of a BOM export and wraps them
// in a review session. Page-level extraction problems live inside the
// session; only unusable requests return an error.
func (s *Service) ExtractFile(req ExtractFileRequest) (*ExtractFileResult, error) {
	if err := s.validateFile(req.Path); err != nil {
		return nil, err
	}

	result := bom.ExtractFile(req.Path, req.StartPage)
	session := review.NewSession(result)

	for _, msg := range result.Errors {
		s.logger.Warn("extraction issue",
			zap.String("path", req.Path),
			zap.String("detail", msg),
		)
	}
	for _, msg := range result.Warnings {
		s.logger.Warn("extraction warning",
			zap.String("path", req.Path),
			zap.String("detail", msg),
		)
	}
	s.logger.Info("extraction complete",
		zap.String("path", req.Path),
		zap.String("session_id", session.ID),
		zap.String("format", string(result.Format)),
		zap.Int("items", session.ItemCount),
		zap.Int("pages_processed", session.PagesProcessed),
	)

	return &ExtractFileResult{Path: req.Path, Session: session}, nil
}

// GenerateFile renders items onto the form template and writes the result.
func (s *Service) GenerateFile(req GenerateFileRequest) (*GenerateFileResult, error) {
	if req.OutputPath == "" {
		return nil, fmt.Errorf("output path cannot be empty")
	}

	template, err := form.ResolveTemplate(s.templatePath)
	if err != nil {
		return nil, err
	}

	header := applyHeaderDefaults(req.Header)
	if err := form.GenerateFile(template, req.Items, header, req.OutputPath); err != nil {
		return nil, err
	}

	result := &GenerateFileResult{
		OutputPath: req.OutputPath,
		Items:      len(req.Items),
		Pages:      form.PageCount(len(req.Items)),
	}
	s.logger.Info("packing list generated",
		zap.String("template", template),
		zap.String("output", result.OutputPath),
		zap.Int("items", result.Items),
		zap.Int("pages", result.Pages),
	)
	return result, nil
}

// GenerateFromSession renders a reviewed session, filling header gaps from
// the session's own metadata.
func (s *Service) GenerateFromSession(session *review.Session, header form.HeaderInfo, outputPath string) (*GenerateFileResult, error) {
	session.Normalize()
	return s.GenerateFile(GenerateFileRequest{
		Items:      session.Items,
		Header:     sessionHeader(session, header),
		OutputPath: outputPath,
	})
}

// ConvertFile runs extraction and generation in one shot. Extraction
// warnings and page errors ride along in the result rather than aborting
// the conversion.
func (s *Service) ConvertFile(req ConvertFileRequest) (*ConvertFileResult, error) {
	extracted, err := s.ExtractFile(ExtractFileRequest{Path: req.Path, StartPage: req.StartPage})
	if err != nil {
		return nil, err
	}

	session := extracted.Session
	generated, err := s.GenerateFile(GenerateFileRequest{
		Items:      session.Items,
		Header:     sessionHeader(session, req.Header),
		OutputPath: req.OutputPath,
	})
	if err != nil {
		return nil, err
	}

	return &ConvertFileResult{
		OutputPath: generated.OutputPath,
		Items:      generated.Items,
		Pages:      generated.Pages,
		Format:     session.Metadata.Format,
		Warnings:   session.Warnings,
		Errors:     session.Errors,
	}, nil
}

// validateFile performs basic validation on a source PDF path.
func (s *Service) validateFile(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}

	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return fmt.Errorf("file is not a PDF: %s", path)
	}
	if fileInfo.Size() > s.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), s.maxFileSize)
	}

	return nil
}

// sessionHeader fills header fields the caller left blank from what the
// extraction pass learned about the end item.
func sessionHeader(session *review.Session, header form.HeaderInfo) form.HeaderInfo {
	if header.EndItem == "" {
		header.EndItem = session.Metadata.EndItemDescription
	}
	return header
}

// applyHeaderDefaults pins the fields the form should never leave blank.
func applyHeaderDefaults(h form.HeaderInfo) form.HeaderInfo {
	if h.NumBoxes == "" {
		h.NumBoxes = "1"
	}
	if h.Date == "" {
		h.Date = time.Now().Format("2006-01-02")
	}
	return h
}

// Package noteservice implements obi's read-only commands over a single vault.
package noteservice

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/starford/obi/internal/apperr"
	"github.com/starford/obi/internal/graph"
	"github.com/starford/obi/internal/models"
	"github.com/starford/obi/internal/parser"
	"github.com/starford/obi/internal/storage"
)

// Service coordinates storage, parsing and graph operations for one vault.
type Service struct {
	vault  string
	store  storage.Provider
	logger *slog.Logger
}

// NewService creates a new note service for the named vault.
func NewService(vaultName string, store storage.Provider, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{vault: vaultName, store: store, logger: logger}
}

// Vault returns the vault name the service runs against.
func (s *Service) Vault() string {
	return s.vault
}

// ParseNote reads and parses a single note. notePath may omit the .md
// extension.
func (s *Service) ParseNote(_ context.Context, notePath string) (*models.ParsedNote, error) {
	resolved := parser.WithExt(notePath)
	data, err := s.store.Read(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || !s.store.Exists(resolved) {
			return nil, apperr.NoteNotFound(resolved)
		}
		return nil, err
	}
	note := parser.Parse(resolved, data)
	if len(note.Frontmatter) == 0 && strings.HasPrefix(note.Body, "---") {
		s.logger.Debug("frontmatter ignored", slog.String("path", resolved))
	}
	return note, nil
}

// BuildGraph lists the vault and builds a fresh link graph.
func (s *Service) BuildGraph(_ context.Context) (graph.Graph, []string, error) {
	paths, err := s.store.List()
	if err != nil {
		return nil, nil, err
	}
	g, err := graph.Build(s.store, paths)
	if err != nil {
		return nil, nil, err
	}
	s.logger.Debug("link graph built", slog.Int("notes", len(paths)))
	return g, paths, nil
}

// Read returns a note with its raw outgoing links and resolved backlinks.
// A non-empty section restricts the body to that heading's section.
func (s *Service) Read(ctx context.Context, notePath, section string) (*models.ReadResult, error) {
	note, err := s.ParseNote(ctx, notePath)
	if err != nil {
		return nil, err
	}

	body := note.Body
	if section != "" {
		extracted, ok := parser.ExtractSection(body, section)
		if !ok {
			return nil, apperr.SectionNotFound(note.Path, section)
		}
		body = extracted
	}

	g, _, err := s.BuildGraph(ctx)
	if err != nil {
		return nil, err
	}

	return &models.ReadResult{
		Path:          note.Path,
		Vault:         s.vault,
		Frontmatter:   note.Frontmatter,
		Body:          body,
		OutgoingLinks: note.OutgoingLinks,
		IncomingLinks: g.Incoming(note.Path),
	}, nil
}

// TOC returns the heading outline of a note.
func (s *Service) TOC(ctx context.Context, notePath string) (*models.TocResult, error) {
	note, err := s.ParseNote(ctx, notePath)
	if err != nil {
		return nil, err
	}
	return &models.TocResult{
		Path:     note.Path,
		Vault:    s.vault,
		Headings: note.Headings,
	}, nil
}

// Links returns outgoing, incoming and two-hop connections of a note.
func (s *Service) Links(ctx context.Context, notePath string) (*models.LinksResult, error) {
	resolved := parser.WithExt(notePath)
	if !s.store.Exists(resolved) {
		return nil, apperr.NoteNotFound(resolved)
	}
	g, _, err := s.BuildGraph(ctx)
	if err != nil {
		return nil, err
	}
	return &models.LinksResult{
		Links: g.Query(resolved),
		Vault: s.vault,
	}, nil
}

// Section extracts a heading's section from a note.
func (s *Service) Section(ctx context.Context, notePath, heading string) (string, error) {
	note, err := s.ParseNote(ctx, notePath)
	if err != nil {
		return "", err
	}
	section, ok := parser.ExtractSection(note.Body, heading)
	if !ok {
		return "", apperr.SectionNotFound(note.Path, heading)
	}
	return section, nil
}

// parseAll parses every note in the vault.
func (s *Service) parseAll() ([]*models.ParsedNote, error) {
	paths, err := s.store.List()
	if err != nil {
		return nil, err
	}
	return s.parseAllPaths(paths)
}

func (s *Service) parseAllPaths(paths []string) ([]*models.ParsedNote, error) {
	return graph.ParseAll(s.store, paths)
}

func wordCount(body string) int {
	return len(strings.Fields(body))
}

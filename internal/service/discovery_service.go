package service

import (
	"context"
	"fmt"

	"docflow/internal/domain"
	"docflow/internal/port"
)

// DiscoveryService lists the remote projects, classifiers and extractors a
// processing configuration can select. Empty listings are reported as
// domain.ErrNotFound.
type DiscoveryService interface {
	Projects(ctx context.Context) ([]domain.Project, error)
	Classifiers(ctx context.Context, projectID string) ([]domain.ClassifierInfo, error)
	Extractors(ctx context.Context, projectID string) ([]domain.ExtractorInfo, error)
}

type discoveryService struct {
	discovery port.Discovery
}

// NewDiscoveryService creates a new DiscoveryService implementation.
func NewDiscoveryService(discovery port.Discovery) DiscoveryService {
	return &discoveryService{discovery: discovery}
}

func (s *discoveryService) Projects(ctx context.Context) ([]domain.Project, error) {
	projects, err := s.discovery.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	if len(projects) == 0 {
		return nil, fmt.Errorf("no projects found: %w", domain.ErrNotFound)
	}
	return projects, nil
}

func (s *discoveryService) Classifiers(ctx context.Context, projectID string) ([]domain.ClassifierInfo, error) {
	classifiers, err := s.discovery.ListClassifiers(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing classifiers for project %s: %w", projectID, err)
	}
	if len(classifiers) == 0 {
		return nil, fmt.Errorf("no classifiers found: %w", domain.ErrNotFound)
	}
	return classifiers, nil
}

func (s *discoveryService) Extractors(ctx context.Context, projectID string) ([]domain.ExtractorInfo, error) {
	extractors, err := s.discovery.ListExtractors(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing extractors for project %s: %w", projectID, err)
	}
	if len(extractors) == 0 {
		return nil, fmt.Errorf("no extractors found: %w", domain.ErrNotFound)
	}
	return extractors, nil
}

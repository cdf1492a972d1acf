package remote

import (
	"context"
	"fmt"
	"net/http"

	"docflow/internal/domain"
)

// Discovery lists remote projects and the classifiers and extractors they publish.
type Discovery struct {
	client *Client
}

// NewDiscovery creates a Discovery.
func NewDiscovery(client *Client) *Discovery {
	return &Discovery{client: client}
}

func (d *Discovery) ListProjects(ctx context.Context) ([]domain.Project, error) {
	var out struct {
		Projects []domain.Project `json:"projects"`
	}
	if err := d.client.doJSON(ctx, http.MethodGet, d.client.endpoint(), nil, &out); err != nil {
		return nil, fmt.Errorf("fetching projects: %w", err)
	}
	return out.Projects, nil
}

func (d *Discovery) ListClassifiers(ctx context.Context, projectID string) ([]domain.ClassifierInfo, error) {
	var out struct {
		Classifiers []domain.ClassifierInfo `json:"classifiers"`
	}
	if err := d.client.doJSON(ctx, http.MethodGet, d.client.endpoint(projectID, "classifiers"), nil, &out); err != nil {
		return nil, fmt.Errorf("fetching classifiers: %w", err)
	}
	return out.Classifiers, nil
}

func (d *Discovery) ListExtractors(ctx context.Context, projectID string) ([]domain.ExtractorInfo, error) {
	var out struct {
		Extractors []domain.ExtractorInfo `json:"extractors"`
	}
	if err := d.client.doJSON(ctx, http.MethodGet, d.client.endpoint(projectID, "extractors"), nil, &out); err != nil {
		return nil, fmt.Errorf("fetching extractors: %w", err)
	}
	return out.Extractors, nil
}

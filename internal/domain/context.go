package domain

import "context"

// PredefinedProjectID is the remote platform's built-in project, used when
// no project is selected.
const PredefinedProjectID = "00000000-0000-0000-0000-000000000000"

type projectIDKey struct{}

// WithProjectID returns a context carrying the remote project a run targets.
func WithProjectID(ctx context.Context, projectID string) context.Context {
	return context.WithValue(ctx, projectIDKey{}, projectID)
}

// ProjectIDFromContext returns the project set by WithProjectID, falling back
// to PredefinedProjectID.
func ProjectIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(projectIDKey{}).(string); ok && id != "" {
		return id
	}
	return PredefinedProjectID
}

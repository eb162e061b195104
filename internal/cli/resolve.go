package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/gantry/internal/domain"
)

// resolveProject finds a project by short ID or full ID.
func resolveProject(ctx context.Context, app *App, ref string) (*domain.Project, error) {
	if ref == "" {
		return nil, fmt.Errorf("project ID is required")
	}
	p, err := app.Projects.Resolve(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("project %q: %w", ref, err)
	}
	return p, nil
}

// resolveItem finds an item of the project by WBS code or full ID.
func resolveItem(ctx context.Context, app *App, projectID, ref string) (*domain.WBSItem, error) {
	w, err := app.Items.Resolve(ctx, projectID, ref)
	if err != nil {
		return nil, fmt.Errorf("item %q: %w", ref, err)
	}
	return w, nil
}

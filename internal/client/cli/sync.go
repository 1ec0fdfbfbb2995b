package cli

import (
	"context"
	"fmt"
)

// Sync runs a sync cycle on demand, outside the background schedule.
func (a *App) Sync(ctx context.Context) error {
	if err := a.syncer.RunCycle(ctx); err != nil {
		return err
	}
	fmt.Println("Synced.")
	return nil
}

// Ping checks whether the sync server is reachable.
func (a *App) Ping(ctx context.Context) error {
	if err := a.remote.Ping(ctx); err != nil {
		return err
	}
	fmt.Println("Server is up.")
	return nil
}

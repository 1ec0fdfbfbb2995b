package cli

import (
	"context"
	"os"
)

func (a *App) SetSetting(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Setting name", os.Stdout)
	if err != nil {
		return err
	}

	value, err := getSimpleText(a.reader, "Value", os.Stdout)
	if err != nil {
		return err
	}

	return a.tracker.SetSetting(ctx, name, value)
}

func (a *App) ListSettings(ctx context.Context) error {
	rows, err := a.tracker.ListSettings(ctx)
	if err != nil {
		return err
	}
	printRows(rows, "name", "value")
	return nil
}

package cli

import (
	"context"
	"fmt"
	"os"
)

// AddWeight prompts for a weight measurement and an optional note, and logs
// it with the current time.
func (a *App) AddWeight(ctx context.Context) error {
	weight, err := GetFloat(a.reader, "Weight (kg)", os.Stdout)
	if err != nil {
		return err
	}

	note, err := getSimpleText(a.reader, "Note (optional)", os.Stdout)
	if err != nil {
		return err
	}

	id, err := a.tracker.AddWeightLog(ctx, weight, nowFn(), note)
	if err != nil {
		return err
	}

	fmt.Println("Added:", id)
	return nil
}

func (a *App) ListWeights(ctx context.Context) error {
	rows, err := a.tracker.ListWeightLogs(ctx)
	if err != nil {
		return err
	}
	printRows(rows, "weight_kg", "logged_at", "note")
	return nil
}

func (a *App) DeleteWeight(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Weight log id", os.Stdout)
	if err != nil {
		return err
	}
	return a.tracker.DeleteWeightLog(ctx, id)
}

package cli

import (
	"context"
	"fmt"
	"os"
)

// AddSchedule prompts for a dosing schedule. Dates are free-form text, the
// server does not interpret them.
func (a *App) AddSchedule(ctx context.Context) error {
	medication, err := getSimpleText(a.reader, "Medication", os.Stdout)
	if err != nil {
		return err
	}

	dose, err := GetFloat(a.reader, "Dose (mg)", os.Stdout)
	if err != nil {
		return err
	}

	frequency, err := getSimpleText(a.reader, "Frequency (e.g. weekly)", os.Stdout)
	if err != nil {
		return err
	}

	startDate, err := getSimpleText(a.reader, "Start date (YYYY-MM-DD)", os.Stdout)
	if err != nil {
		return err
	}

	endDate, err := getSimpleText(a.reader, "End date (optional)", os.Stdout)
	if err != nil {
		return err
	}

	id, err := a.tracker.AddSchedule(ctx, medication, dose, frequency, startDate, endDate)
	if err != nil {
		return err
	}

	fmt.Println("Added:", id)
	return nil
}

func (a *App) ListSchedules(ctx context.Context) error {
	rows, err := a.tracker.ListSchedules(ctx)
	if err != nil {
		return err
	}
	printRows(rows, "medication", "dose_mg", "frequency", "start_date", "end_date", "active")
	return nil
}

func (a *App) StopSchedule(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Schedule id", os.Stdout)
	if err != nil {
		return err
	}
	return a.tracker.DeactivateSchedule(ctx, id)
}

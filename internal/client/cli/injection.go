package cli

import (
	"context"
	"fmt"
	"os"
)

// AddInjection prompts for an injection record and logs it with the current
// time.
func (a *App) AddInjection(ctx context.Context) error {
	medication, err := getSimpleText(a.reader, "Medication", os.Stdout)
	if err != nil {
		return err
	}

	dose, err := GetFloat(a.reader, "Dose (mg)", os.Stdout)
	if err != nil {
		return err
	}

	site, err := getSimpleText(a.reader, "Injection site", os.Stdout)
	if err != nil {
		return err
	}

	note, err := getSimpleText(a.reader, "Note (optional)", os.Stdout)
	if err != nil {
		return err
	}

	id, err := a.tracker.AddInjectionLog(ctx, medication, dose, site, nowFn(), note)
	if err != nil {
		return err
	}

	fmt.Println("Added:", id)
	return nil
}

func (a *App) ListInjections(ctx context.Context) error {
	rows, err := a.tracker.ListInjectionLogs(ctx)
	if err != nil {
		return err
	}
	printRows(rows, "medication", "dose_mg", "injection_site", "injected_at", "note")
	return nil
}

func (a *App) DeleteInjection(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Injection log id", os.Stdout)
	if err != nil {
		return err
	}
	return a.tracker.DeleteInjectionLog(ctx, id)
}

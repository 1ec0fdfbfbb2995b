package cli

import (
	"context"
	"fmt"
	"os"
)

func (a *App) AddGoal(ctx context.Context) error {
	goalType, err := getSimpleText(a.reader, "Goal type (e.g. target_weight)", os.Stdout)
	if err != nil {
		return err
	}

	target, err := GetFloat(a.reader, "Target value", os.Stdout)
	if err != nil {
		return err
	}

	targetDate, err := getSimpleText(a.reader, "Target date (optional)", os.Stdout)
	if err != nil {
		return err
	}

	id, err := a.tracker.AddGoal(ctx, goalType, target, targetDate)
	if err != nil {
		return err
	}

	fmt.Println("Added:", id)
	return nil
}

func (a *App) ListGoals(ctx context.Context) error {
	rows, err := a.tracker.ListGoals(ctx)
	if err != nil {
		return err
	}
	printRows(rows, "goal_type", "target_value", "target_date", "achieved")
	return nil
}

func (a *App) MarkGoalDone(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Goal id", os.Stdout)
	if err != nil {
		return err
	}
	return a.tracker.MarkGoalAchieved(ctx, id)
}

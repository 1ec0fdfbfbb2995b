package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dsemenov/dosetrack/internal/client/models"
	"github.com/dsemenov/dosetrack/internal/client/repositories/rows"
	"github.com/dsemenov/dosetrack/internal/schema"
	"github.com/dsemenov/dosetrack/internal/syncwire"
)

// Tracker exposes the domain mutations the CLI works with. Every mutating
// call goes through the Writer so it lands in the outbox; reads go straight
// to the row repository.
type Tracker struct {
	writer *Writer
	rows   rows.Repository
}

func NewTracker(writer *Writer, rw rows.Repository) *Tracker {
	return &Tracker{writer: writer, rows: rw}
}

// AddWeightLog records a weight measurement and returns the new row id.
func (t *Tracker) AddWeightLog(ctx context.Context, weightKg float64, loggedAt time.Time, note string) (string, error) {
	id := uuid.NewString()
	err := t.writer.Write(ctx, string(schema.TableWeightLogs), id, syncwire.OpInsert, map[string]any{
		"weight_kg": weightKg,
		"logged_at": syncwire.FormatTime(loggedAt),
		"note":      note,
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (t *Tracker) DeleteWeightLog(ctx context.Context, id string) error {
	return t.writer.Write(ctx, string(schema.TableWeightLogs), id, syncwire.OpDelete, nil)
}

func (t *Tracker) ListWeightLogs(ctx context.Context) ([]*models.Row, error) {
	return t.list(ctx, schema.TableWeightLogs)
}

// AddInjectionLog records an injection and returns the new row id.
func (t *Tracker) AddInjectionLog(ctx context.Context, medication string, doseMg float64, site string, injectedAt time.Time, note string) (string, error) {
	id := uuid.NewString()
	err := t.writer.Write(ctx, string(schema.TableInjectionLogs), id, syncwire.OpInsert, map[string]any{
		"medication":     medication,
		"dose_mg":        doseMg,
		"injection_site": site,
		"injected_at":    syncwire.FormatTime(injectedAt),
		"note":           note,
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (t *Tracker) DeleteInjectionLog(ctx context.Context, id string) error {
	return t.writer.Write(ctx, string(schema.TableInjectionLogs), id, syncwire.OpDelete, nil)
}

func (t *Tracker) ListInjectionLogs(ctx context.Context) ([]*models.Row, error) {
	return t.list(ctx, schema.TableInjectionLogs)
}

// AddSchedule creates a dosing schedule and returns the new row id.
func (t *Tracker) AddSchedule(ctx context.Context, medication string, doseMg float64, frequency string, startDate, endDate string) (string, error) {
	id := uuid.NewString()
	err := t.writer.Write(ctx, string(schema.TableSchedules), id, syncwire.OpInsert, map[string]any{
		"medication": medication,
		"dose_mg":    doseMg,
		"frequency":  frequency,
		"start_date": startDate,
		"end_date":   endDate,
		"active":     true,
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (t *Tracker) DeactivateSchedule(ctx context.Context, id string) error {
	return t.writer.Write(ctx, string(schema.TableSchedules), id, syncwire.OpUpdate, map[string]any{
		"active": false,
	})
}

func (t *Tracker) ListSchedules(ctx context.Context) ([]*models.Row, error) {
	return t.list(ctx, schema.TableSchedules)
}

// AddGoal creates a goal and returns the new row id.
func (t *Tracker) AddGoal(ctx context.Context, goalType string, targetValue float64, targetDate string) (string, error) {
	id := uuid.NewString()
	err := t.writer.Write(ctx, string(schema.TableGoals), id, syncwire.OpInsert, map[string]any{
		"goal_type":    goalType,
		"target_value": targetValue,
		"target_date":  targetDate,
		"achieved":     false,
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (t *Tracker) MarkGoalAchieved(ctx context.Context, id string) error {
	return t.writer.Write(ctx, string(schema.TableGoals), id, syncwire.OpUpdate, map[string]any{
		"achieved": true,
	})
}

func (t *Tracker) ListGoals(ctx context.Context) ([]*models.Row, error) {
	return t.list(ctx, schema.TableGoals)
}

// SetSetting upserts a named setting: updates the existing row when the
// name is already present, inserts a new one otherwise.
func (t *Tracker) SetSetting(ctx context.Context, name, value string) error {
	existing, err := t.list(ctx, schema.TableSettings)
	if err != nil {
		return err
	}
	for _, row := range existing {
		if row.Values["name"] == name {
			return t.writer.Write(ctx, string(schema.TableSettings), row.ID, syncwire.OpUpdate, map[string]any{
				"value": value,
			})
		}
	}
	return t.writer.Write(ctx, string(schema.TableSettings), uuid.NewString(), syncwire.OpInsert, map[string]any{
		"name":  name,
		"value": value,
	})
}

func (t *Tracker) ListSettings(ctx context.Context) ([]*models.Row, error) {
	return t.list(ctx, schema.TableSettings)
}

func (t *Tracker) list(ctx context.Context, table schema.Table) ([]*models.Row, error) {
	d, err := schema.Lookup(string(table))
	if err != nil {
		return nil, err
	}
	return t.rows.List(ctx, d)
}

package core

import (
	"context"
	"time"

	"github.com/huangsam/shipboard/internal/contract"
	"github.com/huangsam/shipboard/schema"
)

// DeveloperSnapshots flattens a dashboard into one history row per developer.
func DeveloperSnapshots(dashboard schema.Dashboard, data schema.DashboardData, at time.Time) []schema.DeveloperSnapshot {
	bugsIntroduced := make(map[string]int, len(data.Developers))
	for _, p := range data.Developers {
		bugsIntroduced[p.DeveloperKey] = p.QualityStats.BugsIntroduced
	}
	autoFixes := make(map[string]int)
	for _, b := range data.BugFixes {
		if b.IsAutoFix() {
			autoFixes[b.AuthorKey]++
		}
	}
	coverage := make(map[string]int, len(dashboard.Coverage.Developers))
	for _, c := range dashboard.Coverage.Developers {
		coverage[c.DeveloperKey] = c.Pct
	}

	snapshots := make([]schema.DeveloperSnapshot, 0, len(dashboard.Breakdowns))
	for _, b := range dashboard.Breakdowns {
		snapshots = append(snapshots, schema.DeveloperSnapshot{
			SnapshotTime:   at,
			DeveloperKey:   b.DeveloperKey,
			Releases:       b.Breakdown.Total,
			Feat:           b.Breakdown.Feat,
			Fix:            b.Breakdown.Fix,
			Refacto:        b.Breakdown.Refacto,
			Chore:          b.Breakdown.Chore,
			BugsIntroduced: bugsIntroduced[b.DeveloperKey],
			AutoFixes:      autoFixes[b.DeveloperKey],
			CoveragePct:    coverage[b.DeveloperKey],
		})
	}
	return snapshots
}

// recordSnapshot stores the dashboard in the history store when one is configured.
// Tracking failures are logged and never fail the command.
func recordSnapshot(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, dashboard schema.Dashboard, data schema.DashboardData, startTime time.Time) {
	if mgr == nil {
		return
	}
	store := mgr.GetHistoryStore()
	if store == nil {
		return
	}

	configParams := map[string]any{
		"mode":    string(cfg.Filter.Mode),
		"from":    cfg.Filter.From,
		"to":      cfg.Filter.To,
		"api_url": cfg.APIURL,
	}
	if cfg.Filter.SprintID != nil {
		configParams["sprint_id"] = *cfg.Filter.SprintID
	}

	snapshotID, err := store.BeginSnapshot(startTime, dashboard.Period.Label, configParams)
	if err != nil {
		contract.LogWarn("Snapshot tracking initialization failed", err)
		return
	}
	ctx = withSnapshotID(ctx, snapshotID)

	snapshots := DeveloperSnapshots(dashboard, data, startTime)
	recordDeveloperSnapshots(ctx, store, snapshots)

	if err := store.EndSnapshot(snapshotID, time.Now(), len(snapshots)); err != nil {
		contract.LogWarn("Failed to finalize snapshot tracking", err)
	}
}

func recordDeveloperSnapshots(ctx context.Context, store contract.HistoryStore, snapshots []schema.DeveloperSnapshot) {
	snapshotID, ok := getSnapshotID(ctx)
	if !ok {
		return
	}
	for _, s := range snapshots {
		if err := store.RecordDeveloperSnapshot(snapshotID, s); err != nil {
			contract.LogWarn("Failed to record developer snapshot", err)
		}
	}
}

package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/zulandar/greenlight/internal/hierarchy"
	"github.com/zulandar/greenlight/internal/models"
)

// mockAdapter records sent events and can be told to fail.
type mockAdapter struct {
	sent   []Event
	err    error
	closed bool
}

func (m *mockAdapter) Send(ctx context.Context, evt Event) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, evt)
	return nil
}

func (m *mockAdapter) Close() error {
	m.closed = true
	return nil
}

func TestNotifier_FanOut(t *testing.T) {
	a, b := &mockAdapter{}, &mockAdapter{}
	n := NewNotifier(a, b)

	n.Notify(context.Background(), Event{Type: EventProductionReady, Title: "ready"})
	if len(a.sent) != 1 || len(b.sent) != 1 {
		t.Errorf("sent = %d/%d, want 1/1", len(a.sent), len(b.sent))
	}
}

func TestNotifier_FailingAdapterDoesNotBlockOthers(t *testing.T) {
	bad := &mockAdapter{err: errors.New("boom")}
	good := &mockAdapter{}
	n := NewNotifier(bad, good)

	n.Notify(context.Background(), Event{Type: EventDailyDigest})
	if len(good.sent) != 1 {
		t.Error("healthy adapter should still receive the event")
	}
}

func TestNotifier_Close(t *testing.T) {
	a, b := &mockAdapter{}, &mockAdapter{}
	n := NewNotifier(a, b)
	n.Close()
	if !a.closed || !b.closed {
		t.Error("Close should close every adapter")
	}
}

func TestNotifier_Enabled(t *testing.T) {
	if NewNotifier().Enabled() {
		t.Error("no adapters should mean disabled")
	}
	if !NewNotifier(&mockAdapter{}).Enabled() {
		t.Error("one adapter should mean enabled")
	}
}

func TestProductionReadyEvent(t *testing.T) {
	project := models.Project{ID: "prj-1", Name: "Portal"}
	inst := models.ChecklistInstance{
		TemplateName: "Launch", CompletedRequiredItems: 2, RequiredItems: 2,
		CompletedItems: 3, TotalItems: 5,
	}

	evt := ProductionReadyEvent(project, inst)
	if evt.Type != EventProductionReady {
		t.Errorf("type = %q", evt.Type)
	}
	if evt.Severity != "success" || evt.Color != colorSuccess {
		t.Errorf("severity/color = %q/%q", evt.Severity, evt.Color)
	}
	if len(evt.Fields) != 4 {
		t.Errorf("fields = %d, want 4", len(evt.Fields))
	}
}

func TestInstanceCompletedEvent(t *testing.T) {
	evt := InstanceCompletedEvent(models.Project{Name: "Portal"},
		models.ChecklistInstance{TemplateName: "Launch", CompletedItems: 5, TotalItems: 5})
	if evt.Type != EventInstanceCompleted || evt.Severity != "success" {
		t.Errorf("evt = %+v", evt)
	}
}

func TestOrphanWarningEvent(t *testing.T) {
	warnings := []*hierarchy.OrphanCategoryError{
		{ItemID: "itm-1", Category: ""},
		{ItemID: "itm-2", Category: "bogus"},
	}
	evt := OrphanWarningEvent("prj-1", warnings)
	if evt.Type != EventOrphanCategories || evt.Severity != "warning" {
		t.Errorf("evt = %+v", evt)
	}
	if evt.Body == "" {
		t.Error("body should list the skipped items")
	}
}

func TestNextCronDuration(t *testing.T) {
	d := nextCronDuration("* * * * *")
	if d < 0 || d > time.Minute {
		t.Errorf("every-minute schedule duration = %v", d)
	}
	if got := nextCronDuration("not a cron"); got != 0 {
		t.Errorf("invalid expression duration = %v, want 0", got)
	}
}

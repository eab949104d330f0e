package checklist

import (
	"math"
	"time"

	"github.com/zulandar/greenlight/internal/models"
)

// ProjectCompletion summarizes checklist completion across all of a
// project's instances.
type ProjectCompletion struct {
	OverallProgress    int // rounded percentage, 0 when there are no items
	TotalItems         int
	CompletedItems     int
	AllProductionReady bool
	InstanceCount      int
	CompletedInstances int
}

// RecomputeProgress returns a copy of the instance with its completion
// aggregates recalculated from its items. ProductionReady holds when
// every required item is completed, vacuously so at zero required
// items. CompletedAt is set on entering completed and cleared on
// leaving it.
func RecomputeProgress(inst models.ChecklistInstance) models.ChecklistInstance {
	completed := 0
	completedRequired := 0
	for _, item := range inst.Items {
		if item.Completed {
			completed++
			if item.Required {
				completedRequired++
			}
		}
	}

	inst.TotalItems = len(inst.Items)
	inst.CompletedItems = completed
	inst.CompletedRequiredItems = completedRequired
	inst.ProductionReady = completedRequired == inst.RequiredItems

	prev := inst.Status
	switch {
	case completed == inst.TotalItems && inst.TotalItems > 0:
		inst.Status = models.InstanceCompleted
	case completed > 0:
		inst.Status = models.InstanceInProgress
	default:
		inst.Status = models.InstanceNotStarted
	}

	if inst.Status == models.InstanceCompleted && prev != models.InstanceCompleted {
		now := time.Now()
		inst.CompletedAt = &now
	}
	if inst.Status != models.InstanceCompleted {
		inst.CompletedAt = nil
	}

	return inst
}

// ProjectProgress rolls up completion across instances. The overall
// percentage is guarded against division by zero, and production
// readiness is the AND of every instance's flag — vacuously true for
// an empty instance list.
func ProjectProgress(instances []models.ChecklistInstance) ProjectCompletion {
	pc := ProjectCompletion{
		AllProductionReady: true,
		InstanceCount:      len(instances),
	}

	for _, inst := range instances {
		pc.TotalItems += inst.TotalItems
		pc.CompletedItems += inst.CompletedItems
		if !inst.ProductionReady {
			pc.AllProductionReady = false
		}
		if inst.Status == models.InstanceCompleted {
			pc.CompletedInstances++
		}
	}

	if pc.TotalItems > 0 {
		pc.OverallProgress = int(math.Round(100 * float64(pc.CompletedItems) / float64(pc.TotalItems)))
	}
	return pc
}

package services

import (
	"testing"

	domainEvents "github.com/PulseWireMedia/pulsewire-go/internal/domain/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessEventsAppliesBatch(t *testing.T) {
	prefSvc, _, tenantCtx := newTestPreferenceService(t)
	require.NoError(t, prefSvc.SetConsent(tenantCtx, "device-1", true))
	svc := NewEventProcessingService(prefSvc, newTestLogger(t))

	events := []domainEvents.Event{
		{Type: domainEvents.TypeVisit, CategorySlug: "politics"},
		{Type: domainEvents.TypeVisit, CategorySlug: "politics"},
		{Type: domainEvents.TypeRead, CategorySlug: "politics", ArticleSlug: "budget-2026"},
	}

	state, processed := svc.ProcessEvents(tenantCtx, "device-1", events)

	assert.Equal(t, 3, processed)
	assert.Equal(t, 3, state.CategoryVisitCount("politics"))
	assert.Equal(t, 1, state.ArticleReads["budget-2026"])
}

func TestProcessEventsSkipsMalformed(t *testing.T) {
	prefSvc, _, tenantCtx := newTestPreferenceService(t)
	require.NoError(t, prefSvc.SetConsent(tenantCtx, "device-1", true))
	svc := NewEventProcessingService(prefSvc, newTestLogger(t))

	events := []domainEvents.Event{
		{Type: "unknown", CategorySlug: "politics"},
		{Type: domainEvents.TypeRead, CategorySlug: "politics"}, // read without article
		{Type: domainEvents.TypeVisit, CategorySlug: "politics"},
	}

	state, processed := svc.ProcessEvents(tenantCtx, "device-1", events)

	assert.Equal(t, 1, processed)
	assert.Equal(t, 1, state.CategoryVisitCount("politics"))
}

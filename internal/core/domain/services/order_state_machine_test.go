package services_test

import (
	"testing"
	"time"

	"repairdesk/internal/core/domain/model/access"
	"repairdesk/internal/core/domain/model/kernel"
	"repairdesk/internal/core/domain/model/order"
	"repairdesk/internal/core/domain/model/status"
	"repairdesk/internal/core/domain/services"
	"repairdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gateFixture struct {
	a, b     *status.Status
	registry *status.Registry
	s1       order.ContractedService
}

// newGateFixture builds the two-status workflow A -> B where B notifies the client,
// and an order in A with one unconfirmed contracted service S1.
func newGateFixture(t *testing.T) (gateFixture, *order.ServiceOrder) {
	t.Helper()
	aID, bID := kernel.NewUUID(), kernel.NewUUID()

	a, err := status.NewStatus(aID, status.Definition{
		Name: "A", Order: 0, Color: "grey",
		Flags:       status.Flags{Initial: true},
		AllowedNext: kernel.NewUUIDSet(bID),
	})
	require.NoError(t, err)
	b, err := status.NewStatus(bID, status.Definition{
		Name: "B", Order: 1, Color: "green",
		Flags: status.Flags{TriggersEmail: true},
	})
	require.NoError(t, err)
	registry, err := status.NewRegistry([]*status.Status{a, b})
	require.NoError(t, err)

	s1, err := order.NewContractedService(kernel.NewUUID(), "S1")
	require.NoError(t, err)

	number, err := order.NewOrderNumber(1)
	require.NoError(t, err)
	so, err := order.NewServiceOrder(kernel.NewUUID(), number, a, order.Intake{
		Details: order.Details{
			ClientID:        kernel.NewUUID(),
			Equipment:       order.Equipment{Type: "Notebook"},
			ReportedProblem: "does not boot",
		},
		Analyst:     "ana",
		Services:    []order.ContractedService{s1},
		Responsible: "ana",
		At:          time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	return gateFixture{a: a, b: b, registry: registry, s1: s1}, so
}

func TestOrderStateMachine_ConfirmationGate(t *testing.T) {
	f, so := newGateFixture(t)
	machine := services.NewOrderStateMachine()
	tech := access.NewPrincipal("joao", []string{string(access.UpdateOrder)})
	at := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	// Moving to B with S1 unconfirmed is blocked and leaves no trace.
	_, err := machine.Apply(so, f.registry, tech, services.TransitionRequest{StatusID: f.b.ID(), At: at})

	require.ErrorIs(t, err, services.ErrServicesNotConfirmed)
	var blocked *services.ServicesNotConfirmedError
	require.ErrorAs(t, err, &blocked)
	assert.Equal(t, []kernel.UUID{f.s1.ID()}, blocked.Missing)
	assert.Len(t, so.Logs(), 1)
	assert.Equal(t, f.a.ID(), so.StatusID())

	// Confirming S1 in the same request lets it through.
	confirmed := kernel.NewUUIDSet(f.s1.ID())
	outcome, err := machine.Apply(so, f.registry, tech, services.TransitionRequest{
		StatusID:            f.b.ID(),
		Observation:         "all done",
		ConfirmedServiceIDs: &confirmed,
		At:                  at,
	})

	require.NoError(t, err)
	assert.True(t, outcome.StatusChanged)
	assert.True(t, outcome.NotifyRequested)
	assert.Same(t, f.a, outcome.From)
	assert.Same(t, f.b, outcome.To)

	require.Len(t, so.Logs(), 2)
	last := so.LastLog()
	assert.Equal(t, 2, last.Seq())
	assert.Equal(t, f.a.ID(), last.FromStatus())
	assert.Equal(t, f.b.ID(), last.ToStatus())
	assert.Equal(t, "joao", last.Responsible())
	assert.Equal(t, "all done", last.Observation())
	assert.Equal(t, f.b.ID(), so.StatusID())
	assert.True(t, so.ConfirmedServiceIDs().Contains(f.s1.ID()))
}

func TestOrderStateMachine_Apply(t *testing.T) {
	at := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	machine := services.NewOrderStateMachine()
	tech := access.NewPrincipal("joao", []string{string(access.UpdateOrder)})
	viewer := access.NewPrincipal("visitor", nil)

	t.Run("a request that changes nothing is not saved", func(t *testing.T) {
		f, so := newGateFixture(t)
		same := ""
		empty := kernel.NewUUIDSet()

		_, err := machine.Apply(so, f.registry, tech, services.TransitionRequest{
			StatusID:            f.a.ID(),
			TechnicalSolution:   &same,
			ConfirmedServiceIDs: &empty,
			At:                  at,
		})

		require.ErrorIs(t, err, services.ErrNothingToSave)
		assert.Len(t, so.Logs(), 1)
	})

	t.Run("a new technical solution is logged as a same-status entry", func(t *testing.T) {
		f, so := newGateFixture(t)
		solution := "  replaced the power supply "

		outcome, err := machine.Apply(so, f.registry, viewer, services.TransitionRequest{
			StatusID:          f.a.ID(),
			TechnicalSolution: &solution,
			At:                at,
		})

		require.NoError(t, err)
		assert.False(t, outcome.StatusChanged)
		assert.False(t, outcome.NotifyRequested)
		assert.Equal(t, "replaced the power supply", so.TechnicalSolution())
		assert.Equal(t, f.a.ID(), so.LastLog().FromStatus())
		assert.Equal(t, f.a.ID(), so.LastLog().ToStatus())
	})

	t.Run("confirming services requires the update capability", func(t *testing.T) {
		f, so := newGateFixture(t)
		confirmed := kernel.NewUUIDSet(f.s1.ID())

		_, err := machine.Apply(so, f.registry, viewer, services.TransitionRequest{
			StatusID:            f.a.ID(),
			ConfirmedServiceIDs: &confirmed,
			At:                  at,
		})

		require.ErrorIs(t, err, access.ErrForbidden)
		assert.Len(t, so.Logs(), 1)
		assert.True(t, so.ConfirmedServiceIDs().IsEmpty())
	})

	t.Run("confirming a service that was not contracted fails", func(t *testing.T) {
		f, so := newGateFixture(t)
		confirmed := kernel.NewUUIDSet(f.s1.ID(), kernel.NewUUID())

		_, err := machine.Apply(so, f.registry, tech, services.TransitionRequest{
			StatusID:            f.a.ID(),
			ConfirmedServiceIDs: &confirmed,
			At:                  at,
		})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Len(t, so.Logs(), 1)
	})

	t.Run("an unreachable target is rejected", func(t *testing.T) {
		f, so := newGateFixture(t)
		other, err := status.NewStatus(kernel.NewUUID(), status.Definition{Name: "C", Order: 2, Color: "red"})
		require.NoError(t, err)
		registry, err := status.NewRegistry(append(f.registry.All(), other))
		require.NoError(t, err)

		_, err = machine.Apply(so, registry, tech, services.TransitionRequest{StatusID: other.ID(), At: at})
		require.ErrorIs(t, err, services.ErrTransitionNotAllowed)

		admin := access.NewPrincipal("root", []string{string(access.UnrestrictedTransition)})
		outcome, err := machine.Apply(so, registry, admin, services.TransitionRequest{StatusID: other.ID(), At: at})
		require.NoError(t, err)
		assert.False(t, outcome.NotifyRequested)
		assert.Equal(t, other.ID(), so.StatusID())
	})

	t.Run("a final status accepts nothing, not even a new solution", func(t *testing.T) {
		f, so := newGateFixture(t)
		closed, err := status.NewStatus(kernel.NewUUID(), status.Definition{
			Name: "Closed", Order: 9, Color: "black",
			Flags: status.Flags{Final: true},
		})
		require.NoError(t, err)
		registry, err := status.NewRegistry(append(f.registry.All(), closed))
		require.NoError(t, err)

		admin := access.NewPrincipal("root", []string{string(access.UnrestrictedTransition)})
		_, err = machine.Apply(so, registry, admin, services.TransitionRequest{StatusID: closed.ID(), At: at})
		require.NoError(t, err)

		solution := "late note"
		_, err = machine.Apply(so, registry, admin, services.TransitionRequest{
			StatusID:          closed.ID(),
			TechnicalSolution: &solution,
			At:                at,
		})
		require.ErrorIs(t, err, services.ErrTransitionNotAllowed)
		assert.Len(t, so.Logs(), 2)
	})

	t.Run("requires an actor", func(t *testing.T) {
		f, so := newGateFixture(t)
		_, err := machine.Apply(so, f.registry, nil, services.TransitionRequest{StatusID: f.b.ID(), At: at})
		require.ErrorIs(t, err, services.ErrActorIsRequired)
	})
}

package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var applied = time.Date(2025, time.June, 2, 9, 30, 0, 0, time.UTC)

func newRequest(t *testing.T, role Role) *Request {
	t.Helper()

	r, err := New(NewParams{
		ID:           "l-1",
		EmployeeID:   "E001",
		EmployeeName: "Jane Doe",
		Type:         TypeAnnual,
		StartDate:    time.Date(2025, time.June, 9, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2025, time.June, 13, 0, 0, 0, 0, time.UTC),
		Reason:       "family trip",
		Role:         role,
		AppliedAt:    applied,
	})
	require.NoError(t, err)

	return r
}

func TestNew_InitialStatusByRole(t *testing.T) {
	tests := []struct {
		name    string
		role    Role
		want    Status
		decided bool
	}{
		{name: "self-service submitter", role: RoleESS, want: StatusPending},
		{name: "admin submitter", role: RoleAdmin, want: StatusApproved, decided: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRequest(t, tt.role)

			assert.Equal(t, tt.want, r.Status())
			assert.Equal(t, 5, r.WorkingDays())
			assert.Equal(t, tt.decided, r.DecidedAt != nil)
		})
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		params  NewParams
		wantErr error
	}{
		{
			name:    "missing employee",
			params:  NewParams{Type: TypeSick, Role: RoleESS},
			wantErr: ErrInvalidRequest,
		},
		{
			name:    "missing type",
			params:  NewParams{EmployeeID: "E001", Role: RoleESS},
			wantErr: ErrInvalidRequest,
		},
		{
			name:    "unknown role",
			params:  NewParams{EmployeeID: "E001", Type: TypeSick, Role: "manager"},
			wantErr: ErrUnknownRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.params)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNew_InvertedDatesGiveZeroDays(t *testing.T) {
	r, err := New(NewParams{
		EmployeeID: "E001",
		Type:       TypeSick,
		StartDate:  time.Date(2025, time.June, 13, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, time.June, 9, 0, 0, 0, 0, time.UTC),
		Role:       RoleESS,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, r.WorkingDays())
}

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		role    Role
		actions []Action
		want    Status
		wantErr error
	}{
		{name: "approve pending", role: RoleESS, actions: []Action{ActionApprove}, want: StatusApproved},
		{name: "reject pending", role: RoleESS, actions: []Action{ActionReject}, want: StatusRejected},
		{name: "approve twice", role: RoleESS, actions: []Action{ActionApprove, ActionApprove}, want: StatusApproved, wantErr: ErrInvalidStateTransition},
		{name: "reject after approve", role: RoleESS, actions: []Action{ActionApprove, ActionReject}, want: StatusApproved, wantErr: ErrInvalidStateTransition},
		{name: "approve after reject", role: RoleESS, actions: []Action{ActionReject, ActionApprove}, want: StatusRejected, wantErr: ErrInvalidStateTransition},
		{name: "reject auto-approved", role: RoleAdmin, actions: []Action{ActionReject}, want: StatusApproved, wantErr: ErrInvalidStateTransition},
		{name: "unknown action", role: RoleESS, actions: []Action{"cancel"}, want: StatusPending, wantErr: ErrUnknownAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRequest(t, tt.role)

			var err error
			for _, a := range tt.actions {
				err = r.Apply(a, applied.Add(time.Hour))
			}

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, r.Status())
		})
	}
}

func TestReschedule(t *testing.T) {
	r := newRequest(t, RoleESS)

	err := r.Reschedule(
		time.Date(2025, time.June, 13, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.June, 17, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	assert.Equal(t, 3, r.WorkingDays())

	require.NoError(t, r.Apply(ActionApprove, applied))

	err = r.Reschedule(
		time.Date(2025, time.June, 9, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.June, 9, 0, 0, 0, 0, time.UTC),
	)
	assert.ErrorIs(t, err, ErrInvalidStateTransition)
	assert.Equal(t, 3, r.WorkingDays())
}

func TestRestore_RecomputesWorkingDays(t *testing.T) {
	r := Restore(Request{
		ID:          "l-9",
		EmployeeID:  "E002",
		Type:        TypeUnpaid,
		StartDate:   time.Date(2025, time.June, 9, 15, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
		workingDays: 42,
	}, StatusRejected)

	assert.Equal(t, 2, r.WorkingDays())
	assert.Equal(t, StatusRejected, r.Status())
	assert.ErrorIs(t, r.Apply(ActionApprove, applied), ErrInvalidStateTransition)
}

func TestParseType(t *testing.T) {
	tests := map[string]Type{
		"annual":          TypeAnnual,
		" Sick Leave ":    TypeSick,
		"MATERNITY":       TypeMaternity,
		"paternity leave": TypePaternity,
		"Unpaid":          TypeUnpaid,
		"Study Leave":     Type("Study Leave"),
	}

	for in, want := range tests {
		assert.Equal(t, want, ParseType(in), in)
	}
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("Approved")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, s)

	_, err = ParseStatus("cancelled")
	assert.Error(t, err)
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("ESS")
	require.NoError(t, err)
	assert.Equal(t, RoleESS, r)

	_, err = ParseRole("guest")
	assert.ErrorIs(t, err, ErrUnknownRole)
}

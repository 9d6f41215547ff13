package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusFromFlags(t *testing.T) {
	cases := []struct {
		name      string
		isActive  bool
		isPending bool
		want      Status
	}{
		{"pending", false, true, StatusPending},
		{"active", true, false, StatusActive},
		{"inactive", false, false, StatusInactive},
		{"pending wins over active", true, true, StatusPending},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, StatusFromFlags(tc.isActive, tc.isPending))
		})
	}
}

func TestStatusFlagsRoundTrip(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusActive, StatusInactive} {
		t.Run(s.String(), func(t *testing.T) {
			isActive, isPending := s.Flags()
			require.Equal(t, s, StatusFromFlags(isActive, isPending))
			// Exactly one of the three states, never active and pending.
			require.False(t, isActive && isPending)
		})
	}
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("active")
	require.NoError(t, err)
	require.Equal(t, StatusActive, s)

	_, err = ParseStatus("approved")
	require.Error(t, err)
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("administrator")
	require.NoError(t, err)
	require.Equal(t, RoleAdministrator, r)

	_, err = ParseRole("root")
	require.Error(t, err)
}

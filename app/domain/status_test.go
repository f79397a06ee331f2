package domain_test

import (
	"testing"

	"github.com/shashiranjanraj/bazaar/app/domain"
)

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to domain.Status
		ok       bool
	}{
		{domain.StatusPending, domain.StatusPaid, true},
		{domain.StatusPending, domain.StatusCancelled, true},
		{domain.StatusPending, domain.StatusShipped, false},
		{domain.StatusPending, domain.StatusDelivered, false},
		{domain.StatusPaid, domain.StatusShipped, true},
		{domain.StatusPaid, domain.StatusCancelled, true},
		{domain.StatusPaid, domain.StatusPending, false},
		{domain.StatusShipped, domain.StatusDelivered, true},
		{domain.StatusShipped, domain.StatusCancelled, false},
		{domain.StatusDelivered, domain.StatusCancelled, false},
		{domain.StatusCancelled, domain.StatusPending, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransition(c.to); got != c.ok {
			t.Errorf("%s → %s: got %v, want %v", c.from, c.to, got, c.ok)
		}
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []domain.Status{
		domain.StatusPending, domain.StatusPaid, domain.StatusShipped,
		domain.StatusDelivered, domain.StatusCancelled,
	} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if domain.Status("teleported").Valid() {
		t.Error("unknown status should not be valid")
	}
}

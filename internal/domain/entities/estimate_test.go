package entities

import (
	"testing"
	"time"
)

func TestEstimateStatusCanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to EstimateStatus
		want     bool
	}{
		{EstimateStatusDraft, EstimateStatusSent, true},
		{EstimateStatusDraft, EstimateStatusApproved, false},
		{EstimateStatusSent, EstimateStatusApproved, true},
		{EstimateStatusSent, EstimateStatusRejected, true},
		{EstimateStatusSent, EstimateStatusConverted, false},
		{EstimateStatusSent, EstimateStatusExpired, false},
		{EstimateStatusApproved, EstimateStatusConverted, true},
		{EstimateStatusApproved, EstimateStatusRejected, false},
		{EstimateStatusRejected, EstimateStatusApproved, false},
		{EstimateStatusConverted, EstimateStatusSent, false},
		{EstimateStatusExpired, EstimateStatusApproved, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestEstimateStatusEditable(t *testing.T) {
	for _, s := range []EstimateStatus{EstimateStatusDraft, EstimateStatusSent} {
		if !s.Editable() {
			t.Errorf("%s should be editable", s)
		}
	}
	for _, s := range []EstimateStatus{EstimateStatusApproved, EstimateStatusRejected, EstimateStatusConverted} {
		if s.Editable() {
			t.Errorf("%s should not be editable", s)
		}
	}
}

func TestEstimateExpiredAt(t *testing.T) {
	now := time.Now()
	e := Estimate{}
	if e.ExpiredAt(now) {
		t.Fatal("estimate without valid_until never expires")
	}
	past := now.Add(-time.Hour)
	e.ValidUntil = &past
	if !e.ExpiredAt(now) {
		t.Fatal("estimate past valid_until must be expired")
	}
}

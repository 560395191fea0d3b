package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestPeriodCloseAndReopen(t *testing.T) {
	period := AccountingPeriod{Status: PeriodOpen}

	if err := period.Close(1, time.Now()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := period.Close(1, time.Now()); err != ErrInvalidTransition {
		t.Errorf("double close: got %v, want ErrInvalidTransition", err)
	}

	if err := period.Reopen(); err != nil {
		t.Fatalf("Reopen: %v", err)
	}
	if period.ClosedAt != nil || period.ClosedBy != 0 {
		t.Errorf("Reopen did not clear close metadata: %+v", period)
	}
	if err := period.Reopen(); err != ErrInvalidTransition {
		t.Errorf("reopen of open period: got %v, want ErrInvalidTransition", err)
	}
}

func TestJournalEntryIsBalanced(t *testing.T) {
	tests := []struct {
		name  string
		lines []JournalLine
		want  bool
	}{
		{
			"balanced cash sale",
			[]JournalLine{
				{AccountCode: "571", Debit: decimal.NewFromInt(15000)},
				{AccountCode: "701", Credit: decimal.NewFromInt(15000)},
			},
			true,
		},
		{
			"unbalanced",
			[]JournalLine{
				{AccountCode: "571", Debit: decimal.NewFromInt(15000)},
				{AccountCode: "701", Credit: decimal.NewFromInt(14000)},
			},
			false,
		},
		{
			"multi-line balanced",
			[]JournalLine{
				{AccountCode: "571", Debit: decimal.NewFromInt(10000)},
				{AccountCode: "521", Debit: decimal.NewFromInt(5000)},
				{AccountCode: "701", Credit: decimal.NewFromInt(15000)},
			},
			true,
		},
		{
			"no lines",
			nil,
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := JournalEntry{Lines: tt.lines}
			if got := entry.IsBalanced(); got != tt.want {
				t.Errorf("IsBalanced() = %v, want %v", got, tt.want)
			}
		})
	}
}

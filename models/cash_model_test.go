package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func move(typ, category, method string, amount int64) *CashMovement {
	return &CashMovement{Type: typ, Category: category, PaymentMethod: method, Amount: decimal.NewFromInt(amount)}
}

func TestCashSessionApplyDispatch(t *testing.T) {
	session := CashRegisterSession{Status: CashSessionOpen}

	movements := []*CashMovement{
		move(CashMoveIn, CashCategorySale, PaymentCash, 5000),
		move(CashMoveIn, CashCategorySale, PaymentCard, 3000),
		move(CashMoveIn, CashCategorySale, PaymentMobileMoney, 2000),
		move(CashMoveIn, CashCategorySale, PaymentOther, 1000),
		move(CashMoveIn, CashCategorySupply, PaymentCash, 10000),
		move(CashMoveOut, CashCategoryExpense, PaymentCash, 1500),
	}
	for i, m := range movements {
		if err := session.Apply(m); err != nil {
			t.Fatalf("movement %d: %v", i, err)
		}
	}

	checks := []struct {
		name string
		got  decimal.Decimal
		want int64
	}{
		{"CashSales", session.CashSales, 5000},
		{"CardSales", session.CardSales, 3000},
		{"MobileSales", session.MobileSales, 2000},
		{"OtherSales", session.OtherSales, 1000},
		{"CashIn", session.CashIn, 10000},
		{"CashOut", session.CashOut, 1500},
	}
	for _, c := range checks {
		if !c.got.Equal(decimal.NewFromInt(c.want)) {
			t.Errorf("%s = %s, want %d", c.name, c.got, c.want)
		}
	}
	if session.TransactionsCount != len(movements) {
		t.Errorf("TransactionsCount = %d, want %d", session.TransactionsCount, len(movements))
	}
}

func TestCashSessionApplyRejectsUnknownType(t *testing.T) {
	session := CashRegisterSession{Status: CashSessionOpen}
	if err := session.Apply(move("sideways", CashCategoryOther, PaymentCash, 100)); err != ErrInvalidTransition {
		t.Errorf("got %v, want ErrInvalidTransition", err)
	}
}

func TestCashSessionApplyRejectsClosedSession(t *testing.T) {
	session := CashRegisterSession{Status: CashSessionClosed}
	if err := session.Apply(move(CashMoveIn, CashCategorySale, PaymentCash, 100)); err != ErrSessionClosed {
		t.Errorf("got %v, want ErrSessionClosed", err)
	}
}

func TestCashSessionCloseWith(t *testing.T) {
	session := CashRegisterSession{
		Status:         CashSessionOpen,
		OpeningBalance: decimal.NewFromInt(10000),
		CashSales:      decimal.NewFromInt(25000),
		CardSales:      decimal.NewFromInt(8000), // excluded from the drawer
		CashIn:         decimal.NewFromInt(5000),
		CashOut:        decimal.NewFromInt(3000),
	}

	if err := session.CloseWith(decimal.NewFromInt(36500), 1, "evening count", time.Now()); err != nil {
		t.Fatalf("CloseWith: %v", err)
	}

	if !session.ExpectedBalance.Equal(decimal.NewFromInt(37000)) {
		t.Errorf("ExpectedBalance = %s, want 37000", session.ExpectedBalance)
	}
	if !session.Difference.Equal(decimal.NewFromInt(-500)) {
		t.Errorf("Difference = %s, want -500", session.Difference)
	}
	if session.Status != CashSessionClosed {
		t.Errorf("Status = %s, want closed", session.Status)
	}

	if err := session.CloseWith(decimal.Zero, 1, "", time.Now()); err != ErrInvalidTransition {
		t.Errorf("double close: got %v, want ErrInvalidTransition", err)
	}
}

func TestRemittanceTransitions(t *testing.T) {
	tests := []struct {
		from   string
		to     string
		wantOK bool
	}{
		{RemittancePending, RemittanceReceived, true},
		{RemittancePending, RemittanceRejected, true},
		{RemittancePending, RemittanceValidated, false},
		{RemittanceReceived, RemittanceValidated, true},
		{RemittanceReceived, RemittanceRejected, true},
		{RemittanceValidated, RemittanceRejected, false},
		{RemittanceRejected, RemittanceReceived, false},
	}

	for _, tt := range tests {
		r := CashRemittance{Status: tt.from}
		if got := r.CanTransition(tt.to); got != tt.wantOK {
			t.Errorf("%s -> %s: got %v, want %v", tt.from, tt.to, got, tt.wantOK)
		}
	}
}

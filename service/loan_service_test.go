package service

import (
	"errors"
	"math"
	"testing"

	"loan-planner/domain"
	"loan-planner/finance"
)

func TestCalculateLoan_WithInterest(t *testing.T) {

	service := NewLoanService(nil)

	input := domain.LoanInput{
		Amount:       10000,
		InterestRate: 12,
		TermMonths:   24,
	}

	result, err := service.CalculateLoan(input)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 1% mensual a 24 meses
	expected := 470.73
	if result.MonthlyPayment != expected {
		t.Errorf("expected %.2f, got %.2f", expected, result.MonthlyPayment)
	}
	// 24 × 470.73
	if result.TotalPayment != 11297.52 {
		t.Errorf("total %.2f does not match 24 payments of %.2f", result.TotalPayment, result.MonthlyPayment)
	}
	if result.TotalInterest != 1297.52 {
		t.Errorf("expected interest 1297.52, got %.2f", result.TotalInterest)
	}
}

func TestCalculateLoan_ZeroInterest(t *testing.T) {

	service := NewLoanService(nil)

	input := domain.LoanInput{
		Amount:       1200,
		InterestRate: 0,
		TermMonths:   12,
	}

	result, err := service.CalculateLoan(input)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := 100.0
	if result.MonthlyPayment != expected {
		t.Errorf("expected %.2f, got %.2f", expected, result.MonthlyPayment)
	}
	if result.TotalInterest != 0 {
		t.Errorf("expected no interest, got %.2f", result.TotalInterest)
	}
}

func TestCalculateLoan_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input domain.LoanInput
	}{
		{"zero amount", domain.LoanInput{Amount: 0, InterestRate: 10, TermMonths: 12}},
		{"amount over max", domain.LoanInput{Amount: MaxLoanAmount + 1, InterestRate: 10, TermMonths: 12}},
		{"negative rate", domain.LoanInput{Amount: 1000, InterestRate: -1, TermMonths: 12}},
		{"rate over max", domain.LoanInput{Amount: 1000, InterestRate: MaxInterestRate + 1, TermMonths: 12}},
		{"zero term", domain.LoanInput{Amount: 1000, InterestRate: 10, TermMonths: 0}},
		{"term over max", domain.LoanInput{Amount: 1000, InterestRate: 10, TermMonths: MaxTermMonths + 1}},
		{"NaN amount", domain.LoanInput{Amount: math.NaN(), InterestRate: 10, TermMonths: 12}},
	}

	service := NewLoanService(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CalculateLoan(tt.input)
			if !errors.Is(err, finance.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

package models

import (
	"strings"
	"testing"
)

func TestNormalizeCategoryName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Alimentação", "ALIMENTACAO"},
		{"  transporte  ", "TRANSPORTE"},
		{"Saúde", "SAUDE"},
		{"cartão   de  crédito", "CARTAO DE CREDITO"},
		{"EDUCAÇÃO", "EDUCACAO"},
	}
	for _, tc := range cases {
		if got := NormalizeCategoryName(tc.in); got != tc.want {
			t.Errorf("NormalizeCategoryName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValidateCategoryName(t *testing.T) {
	if _, err := ValidateCategoryName("   "); err == nil {
		t.Error("expected error for blank name")
	}
	if _, err := ValidateCategoryName(strings.Repeat("A", MaxCategoryNameLen+1)); err == nil {
		t.Error("expected error for oversized name")
	}
	got, err := ValidateCategoryName("lazer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "LAZER" {
		t.Errorf("expected LAZER, got %s", got)
	}
}

func TestIsPredefinedCategory(t *testing.T) {
	if !IsPredefinedCategory("ALIMENTACAO", CategoryTypeExpense) {
		t.Error("ALIMENTACAO should be a predefined expense category")
	}
	if IsPredefinedCategory("ALIMENTACAO", CategoryTypeIncome) {
		t.Error("ALIMENTACAO should not be a predefined income category")
	}
	if !IsPredefinedCategory("SALARIO", CategoryTypeIncome) {
		t.Error("SALARIO should be a predefined income category")
	}
	if IsPredefinedCategory("PERSONALIZADA", CategoryTypeExpense) {
		t.Error("unknown names should not be predefined")
	}
}

func TestCategoryKindFor(t *testing.T) {
	kind, err := CategoryKindFor(TransactionTypeExpense)
	if err != nil || kind != CategoryTypeExpense {
		t.Errorf("expected expense kind, got %s (%v)", kind, err)
	}
	kind, err = CategoryKindFor(TransactionTypeIncome)
	if err != nil || kind != CategoryTypeIncome {
		t.Errorf("expected income kind, got %s (%v)", kind, err)
	}
	if _, err := CategoryKindFor(TransactionType("transfer")); err == nil {
		t.Error("expected error for unknown type")
	}
}

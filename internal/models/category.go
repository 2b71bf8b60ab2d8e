package models

import (
	"strings"

	apperrors "financehouse/internal/errors"
)

// CategoryType represents the kind of category
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// MaxCategoryNameLen caps normalized category names.
const MaxCategoryNameLen = 60

// Category represents a transaction category. Predefined categories have no
// owner; custom categories belong to the user that created them.
type Category struct {
	Base
	UserID       string       `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Name         string       `gorm:"not null" json:"name"`
	Type         CategoryType `gorm:"not null" json:"type"`
	IsPredefined bool         `gorm:"default:false" json:"is_predefined"`
}

// PredefinedExpenseCategories are the seeded expense categories.
var PredefinedExpenseCategories = []string{
	"ALIMENTACAO", "TRANSPORTE", "MORADIA", "SAUDE", "EDUCACAO",
	"LAZER", "VESTUARIO", "POUPANCA", "OUTROS",
}

// PredefinedIncomeCategories are the seeded income categories.
var PredefinedIncomeCategories = []string{
	"SALARIO", "FREELANCE", "INVESTIMENTO", "PRESENTE", "OUTROS",
}

// accentReplacer folds the accented characters common in Portuguese category
// names so "Alimentação" and "ALIMENTACAO" normalize identically.
var accentReplacer = strings.NewReplacer(
	"Á", "A", "À", "A", "Â", "A", "Ã", "A", "Ä", "A",
	"É", "E", "Ê", "E", "Ë", "E",
	"Í", "I", "Î", "I", "Ï", "I",
	"Ó", "O", "Ô", "O", "Õ", "O", "Ö", "O",
	"Ú", "U", "Û", "U", "Ü", "U",
	"Ç", "C",
)

// NormalizeCategoryName uppercases, trims, folds accents and collapses
// internal whitespace.
func NormalizeCategoryName(name string) string {
	upper := accentReplacer.Replace(strings.ToUpper(strings.TrimSpace(name)))
	return strings.Join(strings.Fields(upper), " ")
}

// ValidateCategoryName normalizes a raw category name and rejects blank or
// oversized names.
func ValidateCategoryName(name string) (string, error) {
	normalized := NormalizeCategoryName(name)
	if normalized == "" || len(normalized) > MaxCategoryNameLen {
		return "", apperrors.ErrInvalidCategory
	}
	return normalized, nil
}

// IsPredefinedCategory reports whether the normalized name is one of the
// seeded categories for the given kind.
func IsPredefinedCategory(name string, kind CategoryType) bool {
	list := PredefinedExpenseCategories
	if kind == CategoryTypeIncome {
		list = PredefinedIncomeCategories
	}
	for _, n := range list {
		if n == name {
			return true
		}
	}
	return false
}

// CategoryKindFor returns the category kind matching a transaction type.
func CategoryKindFor(txType TransactionType) (CategoryType, error) {
	switch txType {
	case TransactionTypeIncome:
		return CategoryTypeIncome, nil
	case TransactionTypeExpense:
		return CategoryTypeExpense, nil
	default:
		return "", apperrors.ErrInvalidTransactionType
	}
}

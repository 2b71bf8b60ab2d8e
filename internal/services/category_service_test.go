package services

import (
	"testing"

	"financehouse/internal/models"
	"financehouse/internal/pagination"
	"financehouse/internal/testutil"
)

func TestSeedPredefined(t *testing.T) {
	svc := newTestServices(t)

	testutil.AssertNoError(t, svc.categories.SeedPredefined())
	// Seeding twice never duplicates.
	testutil.AssertNoError(t, svc.categories.SeedPredefined())

	var count int64
	if err := svc.db.Model(&models.Category{}).Where("is_predefined = ?", true).Count(&count).Error; err != nil {
		t.Fatalf("failed to count categories: %v", err)
	}
	want := int64(len(models.PredefinedExpenseCategories) + len(models.PredefinedIncomeCategories))
	if count != want {
		t.Errorf("expected %d predefined categories, got %d", want, count)
	}
}

func TestResolveCategory(t *testing.T) {
	svc := newTestServices(t)
	testutil.AssertNoError(t, svc.categories.SeedPredefined())
	user := testutil.CreateTestUser(t, svc.db)

	t.Run("maps accented input to the predefined category", func(t *testing.T) {
		cat, err := svc.categories.ResolveCategory(user.ID, "Alimentação", models.CategoryTypeExpense)
		testutil.AssertNoError(t, err)
		if cat.Name != "ALIMENTACAO" || !cat.IsPredefined {
			t.Errorf("expected predefined ALIMENTACAO, got %q predefined=%v", cat.Name, cat.IsPredefined)
		}
	})

	t.Run("creates a custom category on first use and reuses it", func(t *testing.T) {
		first, err := svc.categories.ResolveCategory(user.ID, "Assinaturas", models.CategoryTypeExpense)
		testutil.AssertNoError(t, err)
		if first.IsPredefined {
			t.Error("expected a custom category")
		}
		if first.UserID != user.ID {
			t.Errorf("expected category owned by %s, got %s", user.ID, first.UserID)
		}

		second, err := svc.categories.ResolveCategory(user.ID, "assinaturas", models.CategoryTypeExpense)
		testutil.AssertNoError(t, err)
		if second.ID != first.ID {
			t.Errorf("expected the same category reused, got %s and %s", first.ID, second.ID)
		}
	})

	t.Run("the same name can exist per kind", func(t *testing.T) {
		expense, err := svc.categories.ResolveCategory(user.ID, "Extras", models.CategoryTypeExpense)
		testutil.AssertNoError(t, err)
		income, err := svc.categories.ResolveCategory(user.ID, "Extras", models.CategoryTypeIncome)
		testutil.AssertNoError(t, err)
		if expense.ID == income.ID {
			t.Error("expected distinct categories per kind")
		}
	})

	t.Run("rejects a blank name", func(t *testing.T) {
		_, err := svc.categories.ResolveCategory(user.ID, "   ", models.CategoryTypeExpense)
		testutil.AssertAppError(t, err, "INVALID_CATEGORY")
	})
}

func TestGetUserCategories(t *testing.T) {
	svc := newTestServices(t)
	testutil.AssertNoError(t, svc.categories.SeedPredefined())
	user := testutil.CreateTestUser(t, svc.db)
	other := testutil.CreateTestUser(t, svc.db)

	_, err := svc.categories.ResolveCategory(user.ID, "Assinaturas", models.CategoryTypeExpense)
	testutil.AssertNoError(t, err)
	_, err = svc.categories.ResolveCategory(other.ID, "Comissoes", models.CategoryTypeIncome)
	testutil.AssertNoError(t, err)

	predefined := int64(len(models.PredefinedExpenseCategories) + len(models.PredefinedIncomeCategories))

	page, err := svc.categories.GetUserCategories(user.ID, pagination.PageRequest{PageSize: 100})
	testutil.AssertNoError(t, err)
	if page.TotalItems != predefined+1 {
		t.Errorf("expected %d categories, got %d", predefined+1, page.TotalItems)
	}
	for _, cat := range page.Data {
		if !cat.IsPredefined && cat.UserID != user.ID {
			t.Errorf("leaked another user's category %q", cat.Name)
		}
	}
}

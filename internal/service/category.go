package service

import (
	"slices"

	"github.com/carson-networks/budget-tracker/internal/storage/sqlconfig"
)

type Category struct {
	ID    string
	Name  string
	Group string
}

var incomeCategories = []Category{
	{ID: "salary", Name: "Salary", Group: "regular"},
	{ID: "freelance", Name: "Freelance", Group: "regular"},
	{ID: "investments", Name: "Investments", Group: "investments"},
	{ID: "rental", Name: "Rental", Group: "investments"},
	{ID: "gifts", Name: "Gifts", Group: "other"},
	{ID: "refunds", Name: "Refunds", Group: "other"},
	{ID: "lottery", Name: "Lottery", Group: "other"},
	{ID: "other", Name: "Other", Group: "other"},
}

var expenseCategories = []Category{
	{ID: "rent", Name: "Rent", Group: "bills"},
	{ID: "phone", Name: "Phone Bill", Group: "bills"},
	{ID: "water", Name: "Water Bill", Group: "bills"},
	{ID: "gas", Name: "Gas Bill", Group: "bills"},
	{ID: "internet", Name: "Internet Bill", Group: "bills"},
	{ID: "tv", Name: "TV", Group: "bills"},
	{ID: "grocery", Name: "Grocery", Group: "food"},
	{ID: "restaurants", Name: "Restaurants", Group: "food"},
	{ID: "coffee", Name: "Tea & Coffee", Group: "food"},
	{ID: "drinks", Name: "Drinks", Group: "food"},
	{ID: "doctor", Name: "Doctor", Group: "health"},
	{ID: "medicine", Name: "Medicine", Group: "health"},
	{ID: "exercise", Name: "Exercise", Group: "health"},
	{ID: "run", Name: "Run", Group: "health"},
	{ID: "cycling", Name: "Cycling", Group: "health"},
	{ID: "swim", Name: "Swim", Group: "health"},
	{ID: "entertainment", Name: "Entertainment", Group: "other"},
	{ID: "education", Name: "Education", Group: "other"},
	{ID: "shopping", Name: "Shopping", Group: "other"},
	{ID: "transportation", Name: "Transportation", Group: "other"},
	{ID: "other", Name: "Other", Group: "other"},
}

// Categories returns the fixed category list for a transaction type.
func Categories(t sqlconfig.TransactionType) []Category {
	switch t {
	case sqlconfig.TransactionTypeIncome:
		return slices.Clone(incomeCategories)
	case sqlconfig.TransactionTypeExpense:
		return slices.Clone(expenseCategories)
	}
	return nil
}

func validCategory(t sqlconfig.TransactionType, id string) bool {
	return slices.ContainsFunc(Categories(t), func(c Category) bool { return c.ID == id })
}

// knownCategory reports whether id belongs to either list.
func knownCategory(id string) bool {
	return validCategory(sqlconfig.TransactionTypeIncome, id) || validCategory(sqlconfig.TransactionTypeExpense, id)
}

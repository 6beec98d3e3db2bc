package domain

// Category is the closed spending category vocabulary. Budgets and
// recurring payments reference expense categories by exact string
// equality, so the set is validated at the entry boundary rather than
// left as free-form text.
type Category string

const (
	CategoryFoodDining     Category = "Food & Dining"
	CategoryTransportation Category = "Transportation"
	CategoryShopping       Category = "Shopping"
	CategoryBills          Category = "Bills & Utilities"
	CategoryEntertainment  Category = "Entertainment"
	CategoryHealthcare     Category = "Healthcare"
	CategoryEducation      Category = "Education"
	CategoryTravel         Category = "Travel"
	CategoryOther          Category = "Other"

	// CategoryUncategorized is the display fallback for records persisted
	// before category validation existed. It is never accepted on write.
	CategoryUncategorized Category = "Uncategorized"
)

// Income categories form a separate vocabulary from spending
// categories; "Refund" marks reversals of earlier income.
const (
	IncomeCategorySalary     Category = "Salary"
	IncomeCategoryFreelance  Category = "Freelance"
	IncomeCategoryInvestment Category = "Investment"
	IncomeCategoryPartTime   Category = "Part-time Job"
	IncomeCategoryScholar    Category = "Scholarship"
	IncomeCategoryGift       Category = "Gift"
	IncomeCategoryBusiness   Category = "Business"
	IncomeCategoryRental     Category = "Rental Income"
	IncomeCategoryRefund     Category = "Refund"
	IncomeCategoryOther      Category = "Other"
)

// Categories returns the valid categories in display order.
func Categories() []Category {
	return []Category{
		CategoryFoodDining,
		CategoryTransportation,
		CategoryShopping,
		CategoryBills,
		CategoryEntertainment,
		CategoryHealthcare,
		CategoryEducation,
		CategoryTravel,
		CategoryOther,
	}
}

// IncomeCategories returns the valid income categories in display order.
func IncomeCategories() []Category {
	return []Category{
		IncomeCategorySalary,
		IncomeCategoryFreelance,
		IncomeCategoryInvestment,
		IncomeCategoryPartTime,
		IncomeCategoryScholar,
		IncomeCategoryGift,
		IncomeCategoryBusiness,
		IncomeCategoryRental,
		IncomeCategoryRefund,
		IncomeCategoryOther,
	}
}

// IsValid reports whether c is a member of the closed spending category
// set referenced by budgets and recurring payments.
func (c Category) IsValid() bool {
	for _, v := range Categories() {
		if c == v {
			return true
		}
	}
	return false
}

// IsValidIncome reports whether c is a member of the income vocabulary.
func (c Category) IsValidIncome() bool {
	for _, v := range IncomeCategories() {
		if c == v {
			return true
		}
	}
	return false
}

// OrUncategorized returns the category itself, or the display fallback
// when the stored value is empty.
func (c Category) OrUncategorized() Category {
	if c == "" {
		return CategoryUncategorized
	}
	return c
}

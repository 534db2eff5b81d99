package sqlconfig

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

type RegularPeriod string

const (
	RegularPeriodWeekly    RegularPeriod = "weekly"
	RegularPeriodMonthly   RegularPeriod = "monthly"
	RegularPeriodQuarterly RegularPeriod = "quarterly"
	RegularPeriodYearly    RegularPeriod = "yearly"
)

func (p RegularPeriod) Valid() bool {
	switch p {
	case RegularPeriodWeekly, RegularPeriodMonthly, RegularPeriodQuarterly, RegularPeriodYearly:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodBank       PaymentMethod = "bank"
	PaymentMethodCash       PaymentMethod = "cash"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentMethodCreditCard, PaymentMethodBank, PaymentMethodCash:
		return true
	}
	return false
}

// SortField names a column transactions can be ordered by.
type SortField string

const (
	SortByDate      SortField = "date"
	SortByAmount    SortField = "amount"
	SortByCreatedAt SortField = "created_at"
)

type SortOrder string

const (
	SortDesc SortOrder = "desc"
	SortAsc  SortOrder = "asc"
)

package routing

// Department codes, in routing precedence order for the keyword table.
const (
	DeptAccount  = "ACCOUNT"
	DeptATM      = "ATM"
	DeptCard     = "CARD"
	DeptContact  = "CONTACT"
	DeptFees     = "FEES"
	DeptFind     = "FIND"
	DeptLoan     = "LOAN"
	DeptPassword = "PASSWORD"
	DeptTransfer = "TRANSFER"
)

var Departments = []string{
	DeptAccount, DeptATM, DeptCard, DeptContact, DeptFees,
	DeptFind, DeptLoan, DeptPassword, DeptTransfer,
}

var deptLabels = map[string]string{
	DeptAccount:  "Accounts & Onboarding",
	DeptATM:      "ATM / Channel Support",
	DeptCard:     "Cards & Wallets",
	DeptContact:  "Customer Care",
	DeptFees:     "Charges & Pricing",
	DeptFind:     "ATM / Branch Locator",
	DeptLoan:     "Loans & Mortgages",
	DeptPassword: "Security & Passwords",
	DeptTransfer: "Payments & Transfers",
}

// Label returns the display name for a department code.
func Label(dept string) string {
	if label, ok := deptLabels[dept]; ok {
		return label
	}
	return dept
}

func Valid(dept string) bool {
	_, ok := deptLabels[dept]
	return ok
}

type keywordRule struct {
	dept     string
	keywords []string
}

// keywordRules is scanned in order; the first substring hit wins, so
// more specific channels (ATM, CARD) sit ahead of the ACCOUNT catch-all.
var keywordRules = []keywordRule{
	{DeptATM, []string{"atm", "cash withdrawal", "swallowed", "debit but no cash"}},
	{DeptCard, []string{"card", "visa", "mastercard", "debit card", "credit card"}},
	{DeptLoan, []string{"loan", "mortgage", "repayment", "interest", "borrow"}},
	{DeptTransfer, []string{"transfer", "send money", "reversal", "pending", "reverse transaction"}},
	{DeptPassword, []string{"password", "pin reset", "forgot", "login problem"}},
	{DeptFees, []string{"fees", "charges", "annual fee", "pricing"}},
	{DeptFind, []string{"find atm", "branch", "nearest atm", "locator"}},
	{DeptContact, []string{"agent", "customer care", "call center", "contact support"}},
	{DeptAccount, []string{"account", "statement", "transactions", "close account", "balance"}},
}

type trainingSet struct {
	dept    string
	samples []string
}

// trainingSets back the TF-IDF stage for texts no keyword catches.
var trainingSets = []trainingSet{
	{DeptAccount, []string{
		"open account", "create account", "close account", "account frozen",
		"recent transactions", "bank statement", "account verification", "kyc update",
		"check balance", "account balance",
	}},
	{DeptATM, []string{
		"atm swallowed my card", "no cash but debited", "failed withdrawal",
		"atm reversal", "withdrawal dispute",
	}},
	{DeptCard, []string{
		"activate card", "block card", "cancel card", "card not working",
		"international usage", "annual fee", "card balance",
	}},
	{DeptContact, []string{
		"customer care", "speak to agent", "human agent", "call center", "contact support",
	}},
	{DeptFees, []string{
		"charges too high", "check fees", "annual charges", "fee dispute",
	}},
	{DeptFind, []string{
		"find atm", "nearest atm", "find branch", "branch near me",
	}},
	{DeptLoan, []string{
		"apply for loan", "loan repayment", "mortgage", "cancel loan",
		"loan status", "interest rate", "borrow money",
	}},
	{DeptPassword, []string{
		"reset password", "forgot password", "set up password", "login problem",
	}},
	{DeptTransfer, []string{
		"cancel transfer", "make transfer", "wrong transfer", "pending transfer",
		"reverse transaction", "send money",
	}},
}

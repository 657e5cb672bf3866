package domain

// Answer is a validated value for a single survey question.
// Its String form is the label shown on the keyboard and written to the sink.
type Answer interface {
	Question() Question
	String() string
}

// AgeRange is the answer to the age question.
type AgeRange int

const (
	AgeUnset AgeRange = iota
	AgeEighteenToTwentyFive
	AgeTwentyFiveToForty
	AgeFortyToFifty
	AgeFiftyPlus
)

var ageLabels = []string{"", "18-25", "25-40", "40-50", "50+"}

func (a AgeRange) String() string   { return labelOf(ageLabels, int(a)) }
func (AgeRange) Question() Question { return QuestionAge }

// InvestmentStatus is the self-reported result of past investing.
type InvestmentStatus int

const (
	StatusUnset InvestmentStatus = iota
	StatusNoExperience
	StatusNegative
	StatusBreakeven
	StatusPositive
	StatusStronglyPositive
)

var statusLabels = []string{"", "Не было опыта", "Минус", "В нуле", "Плюс", "Большой плюс"}

func (s InvestmentStatus) String() string   { return labelOf(statusLabels, int(s)) }
func (InvestmentStatus) Question() Question { return QuestionInvestmentStatus }

// InvestmentInstrument is the instrument used (or preferred, without experience).
type InvestmentInstrument int

const (
	InstrumentUnset InvestmentInstrument = iota
	// InstrumentNone is representable but never offered as a choice.
	InstrumentNone
	InstrumentStocks
	InstrumentRealEstate
	InstrumentCrypto
	InstrumentBankDeposits
)

var instrumentLabels = []string{"", "Нет", "Акции", "Недвижимость", "Криптовалюта", "Вклады"}

func (i InvestmentInstrument) String() string   { return labelOf(instrumentLabels, int(i)) }
func (InvestmentInstrument) Question() Question { return QuestionInstrument }

// FundingCapacity is the budget the user is ready to invest.
type FundingCapacity int

const (
	FundingUnset FundingCapacity = iota
	FundingUnder1M
	Funding1Mto5M
	Funding5Mto10M
	FundingOver10M
)

var fundingLabels = []string{"", "<1 миллиона", "1-5 миллионов", "5-10 миллионов", "Более 10 миллионов"}

func (f FundingCapacity) String() string   { return labelOf(fundingLabels, int(f)) }
func (FundingCapacity) Question() Question { return QuestionFundingCapacity }

// ContactReference is the phone number shared by the user.
type ContactReference string

func (c ContactReference) String() string   { return string(c) }
func (ContactReference) Question() Question { return QuestionContact }

func labelOf(labels []string, i int) string {
	if i <= 0 || i >= len(labels) {
		return ""
	}
	return labels[i]
}

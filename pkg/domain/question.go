package domain

// Question identifies a survey question.
type Question string

const (
	QuestionAge              Question = "age"
	QuestionInvestmentStatus Question = "investment_status"
	QuestionInstrument       Question = "instrument"
	QuestionFundingCapacity  Question = "funding_capacity"
	QuestionContact          Question = "contact"
)

// QuestionSpec describes how a question is asked.
// Choices is nil for the contact question, which expects a contact payload instead of text.
type QuestionSpec struct {
	ID      Question
	Prompt  string
	Choices []Answer
}

// Labels returns the ordered choice labels of the question.
func (q QuestionSpec) Labels() []string {
	labels := make([]string, len(q.Choices))
	for i, c := range q.Choices {
		labels[i] = c.String()
	}
	return labels
}

// RequestsContact reports whether the question is answered with a contact payload.
func (q QuestionSpec) RequestsContact() bool {
	return q.ID == QuestionContact
}

// CompletionText is sent to the user once the record is complete.
const CompletionText = "Ожидайте, с вами свяжется наш представитель!"

// questions is the static catalog, in the order the survey asks them.
// Prompt rendering and validation both read from here.
var questions = []QuestionSpec{
	{
		ID:     QuestionAge,
		Prompt: "Добрый день!\nСколько вам лет?",
		Choices: []Answer{
			AgeEighteenToTwentyFive,
			AgeTwentyFiveToForty,
			AgeFortyToFifty,
			AgeFiftyPlus,
		},
	},
	{
		ID:     QuestionInvestmentStatus,
		Prompt: "Отлично, если вы занимались инвестициями, каких результатов вы добились на 2023 год?",
		Choices: []Answer{
			StatusNoExperience,
			StatusNegative,
			StatusBreakeven,
			StatusPositive,
			StatusStronglyPositive,
		},
	},
	{
		ID:     QuestionInstrument,
		Prompt: "Какой инструмент вы использовали?\nЕсли не было опыта - выберите наиболее привлекательный.",
		Choices: []Answer{
			InstrumentStocks,
			InstrumentRealEstate,
			InstrumentCrypto,
			InstrumentBankDeposits,
		},
	},
	{
		ID:     QuestionFundingCapacity,
		Prompt: "Какую сумму вы готовы инвестировать?",
		Choices: []Answer{
			FundingUnder1M,
			Funding1Mto5M,
			Funding5Mto10M,
			FundingOver10M,
		},
	},
	{
		ID:     QuestionContact,
		Prompt: "Отправьте нам ваш контакт для дальнейшего взаимодействия!",
	},
}

// Questions returns the catalog in asking order.
func Questions() []QuestionSpec {
	out := make([]QuestionSpec, len(questions))
	copy(out, questions)
	return out
}

// LookupQuestion returns the catalog entry for id.
func LookupQuestion(id Question) (QuestionSpec, bool) {
	for _, q := range questions {
		if q.ID == id {
			return q, true
		}
	}
	return QuestionSpec{}, false
}

package prompt

import (
	"strings"
	"time"

	"utfpr.edu.br/menfin/internal/locale"
	"utfpr.edu.br/menfin/internal/store"
)

const sectionBreak = "\n\n"

// Input carries everything a template may draw from. Profile is required by
// every template; callers check for it before building.
type Input struct {
	Profile      store.Profile
	Transactions []store.Transaction
	Feedback     []store.Feedback
	Goals        []store.Goal
	History      []store.ChatMessage
	Question     string
	Month        time.Time
}

// A Section renders one block of a prompt.
type Section func(in Input) string

// Template is the ordered list of sections a prompt is made of.
type Template []Section

// Render joins every section with a blank line.
func (t Template) Render(in Input) string {
	parts := make([]string, 0, len(t))
	for _, section := range t {
		parts = append(parts, section(in))
	}
	return strings.Join(parts, sectionBreak)
}

// Text is a section with fixed content.
func Text(s string) Section {
	return func(Input) string { return s }
}

var (
	Identity     Section = func(Input) string { return IdentityBlock() }
	Profile      Section = func(in Input) string { return ProfileBlock(in.Profile) }
	Transactions Section = func(in Input) string { return TransactionsBlock(in.Transactions) }
	Goals        Section = func(in Input) string { return GoalsBlock(in.Goals) }
	Feedback     Section = func(in Input) string { return FeedbackBlock(in.Feedback) }
	History      Section = func(in Input) string { return HistoryBlock(in.History) }
	Question     Section = func(in Input) string { return "--- PERGUNTA DO USUÁRIO ---\n" + in.Question }
	MonthIntro   Section = func(in Input) string { return strings.ReplaceAll(monthSummaryInstruction, "{month}", locale.MonthName(in.Month)) }
)

const (
	keepContextInstruction = "Mantenha o contexto da conversa anterior."

	answerInstruction = "Com base em todo este contexto, responda à pergunta do usuário."

	lastMessageInstruction = "--- INSTRUÇÃO ---\n" +
		"Com base em todo o contexto fornecido, responda à ÚLTIMA mensagem do usuário."

	insightsInstruction = `Você é um mentor financeiro amigável e prestativo chamado MenFin.
É um especialista em finanças e seu trabalho é analisar os dados de um usuário e gerar insights acionáveis.
Sua resposta DEVE ser um JSON válido contendo uma lista de objetos.
Cada objeto deve ter duas chaves: "text" (o insight) e "type" ("POSITIVE" ou "ATTENTION").
Exemplo de formato de saída:
[
  {
    "text": "Seu progresso na meta 'Reserva de Emergência' está excelente. Continue assim!",
    "type": "POSITIVE"
  },
  {
    "text": "Sua meta 'Viagem' precisa de atenção. O ritmo de economia atual não será suficiente para atingir o prazo.",
    "type": "ATTENTION"
  }
]`

	insightsFinalInstruction = `--- INSTRUÇÃO FINAL ---
Analise TODOS os dados fornecidos e gere de 3 a 4 insights concisos e úteis para o usuário, seguindo estritamente o formato JSON especificado.
Os insights precisam ser direcionados as metas definidas.
IMPORTANTE: Quero a resposta em rawText, não quero que venha formatado como markdown ou qualquer outro tipo de formatação.`

	monthSummaryInstruction = `Você é um mentor financeiro amigável e prestativo chamado MenFin.
Seu trabalho é resumir o mês de {month} do usuário em poucas frases curtas, olhando apenas os lançamentos desse mês.
Sua resposta DEVE ser um JSON válido contendo uma lista de objetos.
Cada objeto deve ter duas chaves: "text" (o insight, com no máximo uma frase) e "type" ("POSITIVE" ou "ATTENTION").`

	monthSummaryFinalInstruction = `--- INSTRUÇÃO FINAL ---
Gere de 2 a 3 insights sobre o mês, seguindo estritamente o formato JSON especificado.
IMPORTANTE: Quero a resposta em rawText, não quero que venha formatado como markdown ou qualquer outro tipo de formatação.`
)

var (
	QuestionTemplate = Template{
		Identity, Profile, Transactions, Feedback, Question, Text(answerInstruction),
	}

	ChatTemplate = Template{
		Identity, Text(keepContextInstruction), Profile, Transactions, Feedback, History, Text(lastMessageInstruction),
	}

	InsightsTemplate = Template{
		Text(insightsInstruction), Profile, Transactions, Goals, Feedback, Text(insightsFinalInstruction),
	}

	MonthSummaryTemplate = Template{
		MonthIntro, Profile, Transactions, Feedback, Text(monthSummaryFinalInstruction),
	}
)

// BuildPrompt is the one-shot question prompt.
func BuildPrompt(profile store.Profile, transactions []store.Transaction, feedback []store.Feedback, question string) string {
	return QuestionTemplate.Render(Input{
		Profile:      profile,
		Transactions: transactions,
		Feedback:     feedback,
		Question:     question,
	})
}

// BuildChatPrompt expects history in chronological order, ending with the
// message to answer.
func BuildChatPrompt(profile store.Profile, transactions []store.Transaction, history []store.ChatMessage, feedback []store.Feedback) string {
	return ChatTemplate.Render(Input{
		Profile:      profile,
		Transactions: transactions,
		Feedback:     feedback,
		History:      history,
	})
}

func BuildInsightsPrompt(profile store.Profile, transactions []store.Transaction, feedback []store.Feedback, goals []store.Goal) string {
	return InsightsTemplate.Render(Input{
		Profile:      profile,
		Transactions: transactions,
		Feedback:     feedback,
		Goals:        goals,
	})
}

// BuildMonthSummaryPrompt expects transactions already filtered to month.
func BuildMonthSummaryPrompt(profile store.Profile, transactions []store.Transaction, feedback []store.Feedback, month time.Time) string {
	return MonthSummaryTemplate.Render(Input{
		Profile:      profile,
		Transactions: transactions,
		Feedback:     feedback,
		Month:        month,
	})
}

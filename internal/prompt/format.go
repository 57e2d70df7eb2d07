// Package prompt renders stored records into the Portuguese text the mentor
// model is prompted with, and assembles those blocks into full prompts.
package prompt

import (
	"fmt"
	"strings"

	"utfpr.edu.br/menfin/internal/locale"
	"utfpr.edu.br/menfin/internal/store"
)

const (
	identityText = "Você é um mentor financeiro amigável e prestativo chamado MenFin.\n" +
		"Seu objetivo é ajudar o usuário a entender suas finanças de forma simples e clara.\n" +
		"Responda de forma concisa (no máximo 3 frases) e motivadora. Use **negrito** para destacar valores e pontos importantes."

	profileHeader      = "--- CONTEXTO DO USUÁRIO ---"
	transactionsHeader = "--- LANÇAMENTOS CADASTRADOS PELO USUÁRIO ---"
	goalsHeader        = "--- METAS CADASTRADAS PELO USUÁRIO ---"
	feedbackHeader     = "--- FEEDBACKS DO USUÁRIO (Com base nas suas respostas anteriores) ---"
	historyHeader      = "--- HISTÓRICO DA CONVERSA ATUAL ---"

	NoTransactions = "O usuário ainda não registrou nenhum lançamento."
	NoGoals        = "O usuário ainda não cadastrou nenhuma meta."
	NoFeedback     = "O usuário ainda não enviou nenhum feedback."
)

func IdentityBlock() string {
	return identityText
}

func ProfileBlock(p store.Profile) string {
	var b strings.Builder
	b.WriteString(profileHeader + "\n")
	b.WriteString("Remuneração mensal: " + locale.FormatBRL(p.MonthlyIncome) + "\n")
	b.WriteString("Possui nome negativado: " + p.NegativeCredit.Label() + "\n")
	b.WriteString("Possui dependentes: " + p.HasDependents.Label() + "\n")
	b.WriteString("Nível de conhecimento em finanças: " + p.KnowledgeLevel.Label() + "\n")
	b.WriteString("Seu principal objetivo é: " + p.MainGoal)
	return b.String()
}

// TransactionsBlock keeps the order it is given.
func TransactionsBlock(txs []store.Transaction) string {
	return listBlock(transactionsHeader, NoTransactions, txs, TransactionLine)
}

func TransactionLine(tx store.Transaction) string {
	kind := "[-] DESPESA"
	if tx.Kind == store.KindRevenue {
		kind = "[+] RECEITA"
	}
	return fmt.Sprintf("%s: %s de %s - %s (Categoria: %s)",
		locale.FormatDate(tx.Date), kind, locale.FormatBRL(tx.Amount), tx.Description, tx.Category.Label())
}

func GoalsBlock(goals []store.Goal) string {
	return listBlock(goalsHeader, NoGoals, goals, func(g store.Goal) string {
		return fmt.Sprintf("Meta: %s - Valor: %s - Prazo: %s (Prioridade: %s)",
			g.Description, locale.FormatBRL(g.Target), locale.FormatDate(g.TargetDate), g.Priority.Label())
	})
}

func FeedbackBlock(fbs []store.Feedback) string {
	return listBlock(feedbackHeader, NoFeedback, fbs, func(fb store.Feedback) string {
		return fmt.Sprintf("Data: %s - Avaliação: %d - Comentário: %s",
			locale.FormatDate(fb.CreatedAt), fb.Rating, fb.Comment)
	})
}

// HistoryBlock renders one "SENDER: text" line per turn under the history
// header. An empty history leaves only the header.
func HistoryBlock(history []store.ChatMessage) string {
	var b strings.Builder
	b.WriteString(historyHeader)
	for _, msg := range history {
		b.WriteString("\n" + msg.Sender.Label() + ": " + msg.Text)
	}
	return b.String()
}

func listBlock[T any](header, empty string, items []T, line func(T) string) string {
	if len(items) == 0 {
		return header + "\n" + empty
	}
	lines := make([]string, 0, len(items)+1)
	lines = append(lines, header)
	for _, item := range items {
		lines = append(lines, line(item))
	}
	return strings.Join(lines, "\n")
}

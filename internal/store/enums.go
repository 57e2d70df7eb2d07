package store

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Every enum below is persisted as its token (e.g. "REVENUE") and rendered to
// users through its Portuguese label (e.g. "Receita"). Scan rejects unknown
// tokens so a bad row surfaces as an error instead of a zero value.

type TransactionKind string

const (
	KindRevenue TransactionKind = "REVENUE"
	KindExpense TransactionKind = "EXPENSE"
)

var kindLabels = map[TransactionKind]string{
	KindRevenue: "Receita",
	KindExpense: "Despesa",
}


func ParseTransactionKind(s string) (TransactionKind, error) {
	v, ok := lookup(s, kindLabels)
	if !ok {
		return "", fmt.Errorf("unknown transaction kind %q", s)
	}
	return v, nil
}

func (k *TransactionKind) Scan(src any) error { return scanEnum(src, k, ParseTransactionKind) }
func (k TransactionKind) Value() (driver.Value, error) { return string(k), nil }

type Category string

const (
	CategoryFood      Category = "FOOD"
	CategoryTransport Category = "TRANSPORT"
	CategoryHousing   Category = "HOUSING"
	CategoryLeisure   Category = "LEISURE"
	CategoryHealth    Category = "HEALTH"
	CategorySalary    Category = "SALARY"
	CategoryOther     Category = "OTHER"
)

var categoryLabels = map[Category]string{
	CategoryFood:      "Alimentação",
	CategoryTransport: "Transporte",
	CategoryHousing:   "Moradia",
	CategoryLeisure:   "Lazer",
	CategoryHealth:    "Saúde",
	CategorySalary:    "Salário",
	CategoryOther:     "Outros",
}

func (c Category) Label() string { return categoryLabels[c] }

func ParseCategory(s string) (Category, error) {
	v, ok := lookup(s, categoryLabels)
	if !ok {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return v, nil
}

// CategoryOrOther maps unknown categories to CategoryOther, the way the
// transaction form always did.
func CategoryOrOther(s string) Category {
	if c, err := ParseCategory(s); err == nil {
		return c
	}
	return CategoryOther
}

func (c *Category) Scan(src any) error { return scanEnum(src, c, ParseCategory) }
func (c Category) Value() (driver.Value, error) { return string(c), nil }

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

var priorityLabels = map[Priority]string{
	PriorityLow:    "Baixa",
	PriorityMedium: "Média",
	PriorityHigh:   "Alta",
}

func (p Priority) Label() string { return priorityLabels[p] }

func ParsePriority(s string) (Priority, error) {
	v, ok := lookup(s, priorityLabels)
	if !ok {
		return "", fmt.Errorf("unknown priority %q", s)
	}
	return v, nil
}

func (p *Priority) Scan(src any) error { return scanEnum(src, p, ParsePriority) }
func (p Priority) Value() (driver.Value, error) { return string(p), nil }

type YesNo string

const (
	Yes YesNo = "YES"
	No  YesNo = "NO"
)

var yesNoLabels = map[YesNo]string{
	Yes: "Sim",
	No:  "Não",
}

func (y YesNo) Label() string { return yesNoLabels[y] }

func ParseYesNo(s string) (YesNo, error) {
	v, ok := lookup(s, yesNoLabels)
	if !ok {
		return "", fmt.Errorf("unknown yes/no value %q", s)
	}
	return v, nil
}

func (y *YesNo) Scan(src any) error { return scanEnum(src, y, ParseYesNo) }
func (y YesNo) Value() (driver.Value, error) { return string(y), nil }

type KnowledgeLevel string

const (
	KnowledgeNone         KnowledgeLevel = "NONE"
	KnowledgeBeginner     KnowledgeLevel = "BEGINNER"
	KnowledgeIntermediate KnowledgeLevel = "INTERMEDIATE"
	KnowledgeAdvanced     KnowledgeLevel = "ADVANCED"
)

var knowledgeLabels = map[KnowledgeLevel]string{
	KnowledgeNone:         "Nenhum",
	KnowledgeBeginner:     "Baixo",
	KnowledgeIntermediate: "Médio",
	KnowledgeAdvanced:     "Alto",
}

func (k KnowledgeLevel) Label() string { return knowledgeLabels[k] }

func ParseKnowledgeLevel(s string) (KnowledgeLevel, error) {
	v, ok := lookup(s, knowledgeLabels)
	if !ok {
		return "", fmt.Errorf("unknown knowledge level %q", s)
	}
	return v, nil
}

func (k *KnowledgeLevel) Scan(src any) error { return scanEnum(src, k, ParseKnowledgeLevel) }
func (k KnowledgeLevel) Value() (driver.Value, error) { return string(k), nil }

type Readiness string

const (
	ReadyYes      Readiness = "YES"
	ReadyOfCourse Readiness = "OF_COURSE"
)

var readinessLabels = map[Readiness]string{
	ReadyYes:      "Sim",
	ReadyOfCourse: "Com certeza",
}


func ParseReadiness(s string) (Readiness, error) {
	v, ok := lookup(s, readinessLabels)
	if !ok {
		return "", fmt.Errorf("unknown readiness %q", s)
	}
	return v, nil
}

func (r *Readiness) Scan(src any) error { return scanEnum(src, r, ParseReadiness) }
func (r Readiness) Value() (driver.Value, error) { return string(r), nil }

// Sender only has persisted variants. The "mentor is typing" placeholder is a
// transient value owned by the chat queue and never reaches this table.
type Sender string

const (
	SenderUser   Sender = "USER"
	SenderMentor Sender = "MENTOR"
)

var senderLabels = map[Sender]string{
	SenderUser:   "USER",
	SenderMentor: "MENTOR",
}

func (s Sender) Label() string { return senderLabels[s] }

func ParseSender(s string) (Sender, error) {
	v, ok := lookup(s, senderLabels)
	if !ok {
		return "", fmt.Errorf("unknown sender %q", s)
	}
	return v, nil
}

func (s *Sender) Scan(src any) error { return scanEnum(src, s, ParseSender) }
func (s Sender) Value() (driver.Value, error) { return string(s), nil }

// lookup matches either the token (case-insensitive) or the exact label.
func lookup[T ~string](s string, labels map[T]string) (T, bool) {
	s = strings.TrimSpace(s)
	for token, label := range labels {
		if strings.EqualFold(string(token), s) || label == s {
			return token, true
		}
	}
	return "", false
}

func scanEnum[T ~string](src any, dst *T, parse func(string) (T, error)) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into %T", src, dst)
	}
	parsed, err := parse(raw)
	if err != nil {
		return err
	}
	*dst = parsed
	return nil
}

// Package pipeline implementa a limpeza e as agregações das transações de varejo.
//
// Todas as consultas recebem uma coleção Cleaned imutável e não alteram estado
// compartilhado, portanto podem ser executadas em paralelo sobre a mesma coleção.
package pipeline

import (
	"iter"

	"github.com/diillson/retail-sales-dashboard-go/internal/domain/entity"
)

// ProgressLogger recebe as mensagens de progresso da limpeza (contagem de linhas).
type ProgressLogger interface {
	LogInfo(format string, a ...interface{})
}

// Cleaned is the read-only collection of cleaned transactions produced by one run.
type Cleaned struct {
	rows []entity.CleanedTransaction
}

// NewCleaned copies rows into a new read-only collection.
func NewCleaned(rows []entity.CleanedTransaction) Cleaned {
	cp := make([]entity.CleanedTransaction, len(rows))
	copy(cp, rows)
	return Cleaned{rows: cp}
}

// Len returns the number of cleaned rows.
func (c Cleaned) Len() int {
	return len(c.rows)
}

// At returns the i-th row in input order.
func (c Cleaned) At(i int) entity.CleanedTransaction {
	return c.rows[i]
}

// All iterates over the rows in input order.
func (c Cleaned) All() iter.Seq[entity.CleanedTransaction] {
	return func(yield func(entity.CleanedTransaction) bool) {
		for _, r := range c.rows {
			if !yield(r) {
				return
			}
		}
	}
}

// Rows returns a copy of the rows.
func (c Cleaned) Rows() []entity.CleanedTransaction {
	cp := make([]entity.CleanedTransaction, len(c.rows))
	copy(cp, c.rows)
	return cp
}

// Pipeline runs the cleaning step and reports progress to an optional logger.
type Pipeline struct {
	logger ProgressLogger
}

// New cria um novo Pipeline. logger pode ser nil.
func New(logger ProgressLogger) *Pipeline {
	return &Pipeline{logger: logger}
}

func (p *Pipeline) logInfo(format string, a ...interface{}) {
	if p.logger != nil {
		p.logger.LogInfo(format, a...)
	}
}

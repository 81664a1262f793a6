package types

// ConsoleInterface define a interface para saída no console.
type ConsoleInterface interface {
	Print(a ...interface{})

	LogInfo(format string, a ...interface{})
	LogWarning(format string, a ...interface{})
	LogError(format string, a ...interface{})
	LogSuccess(format string, a ...interface{})

	Status(message string) StatusHandle
	ProgressWithTotal(total int, title string) ProgressHandle

	CreateTable() TableInterface
	DisplayTrendBars(monthlySales []MonthlySales)
}

// StatusHandle encerra um spinner de status.
type StatusHandle interface {
	Stop()
}

// ProgressHandle é uma interface para atualizar uma barra de progresso.
type ProgressHandle interface {
	Increment()
	Stop()
}

// TableInterface define a interface para criar e manipular tabelas.
type TableInterface interface {
	AddColumn(name string)
	AddRow(cells ...interface{})
	Render() string
}

// MonthlySales representa o total de vendas de um mês, usado nos gráficos de tendência.
type MonthlySales struct {
	Month string  `json:"month"`
	Sales float64 `json:"sales"`
}

package models

// HistoryPoint 单个聚合点：某天在某类别下的消费总额
type HistoryPoint struct {
	Date  Date    `json:"date"`
	Total float64 `json:"total"`
}

// CategoryHistory 某类别在时间窗口内按日聚合的历史，history 按日期升序
type CategoryHistory struct {
	CategoryName Category       `json:"categoryname"`
	History      []HistoryPoint `json:"history"`
}

// CategoryTotals 存储层 top-N 查询的单类别结果
// Total 是窗口内该类别全部记录的总额，TopExpenses 只取金额最大的前 N 条
type CategoryTotals struct {
	Total       float64
	TopExpenses []Expense
}

// CategoryStats 月度统计中的单类别条目
type CategoryStats struct {
	CategoryName Category  `json:"categoryname"`
	Total        float64   `json:"total"`
	ExpenseList  []Expense `json:"expenselist"`
}

// MonthlyStats 月度统计：总额 + 各类别小计与 top-N 明细
type MonthlyStats struct {
	MonthTotal    float64         `json:"monthtotal"`
	CategoryStats []CategoryStats `json:"categorystats"`
}

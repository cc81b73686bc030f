package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementTransaction represents one normalized row from a bank statement
// export. Every parser emits this shape regardless of the bank's layout.
type StatementTransaction struct {
	Line        int // 1-based data row in the source statement
	Date        time.Time
	Description string
	Amount      decimal.Decimal // negative = expense, positive = income
}

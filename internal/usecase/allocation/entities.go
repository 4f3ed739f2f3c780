package allocation

import (
	appDomain "ebursary-backend/internal/domain/application"
	"ebursary-backend/internal/domain/queue"

	"github.com/shopspring/decimal"
)

type AllocateInput struct {
	Amount     decimal.Decimal
	FundSource string
	Override   bool
}

type BulkInput struct {
	ApplicationIDs []string
	FundSource     string
}

type QueueResult struct {
	Items []appDomain.Application `json:"items"`
	Stats queue.Stats             `json:"stats"`
}

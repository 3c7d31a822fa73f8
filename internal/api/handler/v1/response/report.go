package response

import (
	"github.com/shopspring/decimal"

	"github.com/festijeux/market-api/internal/domain"
)

// ReportResponse is the chart-ready form of a report. Series are plain
// numbers so front ends can plot them directly.
type ReportResponse struct {
	Status                 domain.ReportStatus `json:"status"`
	CumulativeFinalPrice   []float64           `json:"cumulative_final_price"`
	CumulativeFees         []float64           `json:"cumulative_fees"`
	CumulativeRawPrice     []float64           `json:"cumulative_raw_price"`
	XAxis                  []int               `json:"x_axis"`
	TotalQuantityDeposited int64               `json:"total_quantity_deposited"`
	TotalQuantitySold      int64               `json:"total_quantity_sold"`
	TotalFinalPrice        float64             `json:"total_final_price"`
	TotalFees              float64             `json:"total_fees"`
	TotalRawPrice          float64             `json:"total_raw_price"`
	FixedCharges           float64             `json:"fixed_charges"`
}

func NewReportResponse(r domain.Report) ReportResponse {
	return ReportResponse{
		Status:                 r.Status,
		CumulativeFinalPrice:   toFloats(r.CumulativeFinal),
		CumulativeFees:         toFloats(r.CumulativeFees),
		CumulativeRawPrice:     toFloats(r.CumulativeRaw),
		XAxis:                  nonNilInts(r.XAxis),
		TotalQuantityDeposited: r.TotalQuantityDeposited,
		TotalQuantitySold:      r.TotalQuantitySold,
		TotalFinalPrice:        r.TotalFinal.InexactFloat64(),
		TotalFees:              r.TotalFees.InexactFloat64(),
		TotalRawPrice:          r.TotalRaw.InexactFloat64(),
		FixedCharges:           r.FixedCharges.InexactFloat64(),
	}
}

func toFloats(values []decimal.Decimal) []float64 {
	result := make([]float64, 0, len(values))
	for _, v := range values {
		result = append(result, v.InexactFloat64())
	}

	return result
}

func nonNilInts(values []int) []int {
	if values == nil {
		return []int{}
	}

	return values
}

package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type ReportStatus string

const (
	ReportReady           ReportStatus = "ok"
	ReportNothingToReport ReportStatus = "nothing_to_report"
)

// ReportFilter scopes a report. A nil field means every seller or every session.
type ReportFilter struct {
	SellerEmail *string
	SessionID   *uint
}

// SaleWithFees is a sale joined with the fees of the session it happened in.
type SaleWithFees struct {
	SaleRecord
	FixedFee   decimal.Decimal
	PercentFee decimal.Decimal
}

// Report holds running totals with one point per unit sold, in sale order.
type Report struct {
	Status                 ReportStatus      `json:"status"`
	CumulativeFinal        []decimal.Decimal `json:"cumulative_final_price"`
	CumulativeFees         []decimal.Decimal `json:"cumulative_fees"`
	CumulativeRaw          []decimal.Decimal `json:"cumulative_raw_price"`
	XAxis                  []int             `json:"x_axis"`
	TotalQuantityDeposited int64             `json:"total_quantity_deposited"`
	TotalQuantitySold      int64             `json:"total_quantity_sold"`
	TotalFinal             decimal.Decimal   `json:"total_final_price"`
	TotalFees              decimal.Decimal   `json:"total_fees"`
	TotalRaw               decimal.Decimal   `json:"total_raw_price"`
	FixedCharges           decimal.Decimal   `json:"fixed_charges"`
}

func NothingToReport(totalDeposited int64, fixedCharges decimal.Decimal) Report {
	return Report{
		Status:                 ReportNothingToReport,
		TotalQuantityDeposited: totalDeposited,
		FixedCharges:           fixedCharges,
	}
}

// BuildReport expects sales ordered by ascending sale id.
func BuildReport(sales []SaleWithFees, totalDeposited int64, fixedCharges decimal.Decimal) (Report, error) {
	if len(sales) == 0 {
		return NothingToReport(totalDeposited, fixedCharges), nil
	}

	var units int
	for _, s := range sales {
		units += s.QuantitySold
	}

	report := Report{
		Status:                 ReportReady,
		CumulativeFinal:        make([]decimal.Decimal, 0, units),
		CumulativeFees:         make([]decimal.Decimal, 0, units),
		CumulativeRaw:          make([]decimal.Decimal, 0, units),
		XAxis:                  make([]int, 0, units),
		TotalQuantityDeposited: totalDeposited,
		FixedCharges:           fixedCharges,
	}

	runningFinal, runningFees, runningRaw := decimal.Zero, decimal.Zero, decimal.Zero
	for _, s := range sales {
		fee, err := FeeAmount(s.UnitPrice, s.FixedFee, s.PercentFee)
		if err != nil {
			return Report{}, fmt.Errorf("sale %d: %w", s.ID, err)
		}
		final, err := ComputeFinalPrice(s.UnitPrice, s.FixedFee, s.PercentFee)
		if err != nil {
			return Report{}, fmt.Errorf("sale %d: %w", s.ID, err)
		}

		for i := 0; i < s.QuantitySold; i++ {
			runningFinal = runningFinal.Add(final)
			runningFees = runningFees.Add(fee)
			runningRaw = runningRaw.Add(s.UnitPrice)

			report.CumulativeFinal = append(report.CumulativeFinal, runningFinal)
			report.CumulativeFees = append(report.CumulativeFees, runningFees)
			report.CumulativeRaw = append(report.CumulativeRaw, runningRaw)
			report.XAxis = append(report.XAxis, len(report.XAxis)+1)
		}
		report.TotalQuantitySold += int64(s.QuantitySold)
	}

	report.TotalFinal = runningFinal
	report.TotalFees = runningFees
	report.TotalRaw = runningRaw

	return report, nil
}

package matcher

import (
	"github.com/ornge-julius/TradeJournal-2/src/models"
	"github.com/ornge-julius/TradeJournal-2/src/utils"
)

// buildTrade constructs one trade from an open leg, a close leg and the
// quantity matched between them, which may be smaller than either leg's
// full quantity.
//
// Cash amounts are apportioned per unit: each leg contributes
// total_amount / quantity per contract, scaled by the matched quantity.
// The open leg's amount is already negative (cost) and the close leg's
// positive (proceeds), so profit is simply their sum, rounded to 2
// decimals. Zero profit counts as a Loss.
//
// Entry and exit prices are the legs' original quoted unit prices, not
// apportioned values. A pairing with an undeterminable position type or
// an unset leg timestamp is rejected: no trade, one warning.
func buildTrade(openTx, closeTx *models.Transaction, matchedQty int, meta Metadata) (models.Trade, *models.Warning) {
	if openTx.PositionType == models.PositionTypeUnknown {
		return models.Trade{}, &models.Warning{
			Stage:       models.WarningStageMatch,
			Symbol:      openTx.Symbol,
			Description: openTx.Description,
			Quantity:    matchedQty,
			Reason:      "could not determine position type",
		}
	}
	if openTx.Timestamp.IsZero() || closeTx.Timestamp.IsZero() {
		return models.Trade{}, &models.Warning{
			Stage:       models.WarningStageMatch,
			Symbol:      openTx.Symbol,
			Description: openTx.Description,
			Quantity:    matchedQty,
			Reason:      "missing entry or exit date",
		}
	}

	openPerUnit := perUnitAmount(openTx)
	closePerUnit := perUnitAmount(closeTx)
	profit := utils.RoundFloat(
		closePerUnit*float64(matchedQty)+openPerUnit*float64(matchedQty), 2)

	result := models.ResultLoss
	if profit > 0 {
		result = models.ResultWin
	}

	return models.Trade{
		Symbol:       openTx.Symbol,
		PositionType: openTx.PositionType,
		EntryPrice:   openTx.UnitPrice,
		ExitPrice:    closeTx.UnitPrice,
		Quantity:     matchedQty,
		EntryDate:    openTx.Timestamp,
		ExitDate:     closeTx.Timestamp,
		Source:       meta.Source,
		Reasoning:    meta.Reasoning,
		Result:       result,
		Notes:        meta.Notes,
		AccountID:    meta.AccountID,
		UserID:       meta.UserID,
		Profit:       profit,
		Option:       openTx.Description,
	}, nil
}

// perUnitAmount is the leg's cash flow per contract. Legs always carry
// a positive quantity; anything else contributes nothing.
func perUnitAmount(tx *models.Transaction) float64 {
	if tx.Quantity <= 0 {
		return 0
	}
	return tx.TotalAmount / float64(tx.Quantity)
}

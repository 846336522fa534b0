package types

import "encoding/json"

// PriceData is the quoted price of one asset in a reference currency.
type PriceData struct {
	Asset             string `json:"asset"`
	ReferenceCurrency string `json:"referenceCurrency"`
	Price             string `json:"price"`
}

// AssetRecord is one entry of a curated asset list. Curators publish
// differing shapes, so the record is carried unparsed.
type AssetRecord = json.RawMessage

// AddLiquidityRequest builds a transaction depositing both assets of a
// pair. Amounts are stroops.
type AddLiquidityRequest struct {
	AssetA      string `json:"assetA" validate:"required"`
	AssetB      string `json:"assetB" validate:"required,nefield=AssetA"`
	AmountA     int64  `json:"amountA" validate:"required,gt=0"`
	AmountB     int64  `json:"amountB" validate:"required,gt=0"`
	To          string `json:"to" validate:"required"`
	SlippageBps *int   `json:"slippageBps,omitempty" validate:"omitempty,gte=0,lte=10000"`
}

// AddLiquidityResponse carries the deposit envelope ready for signing.
type AddLiquidityResponse struct {
	TransactionXDR string `json:"transactionXdr"`
}
